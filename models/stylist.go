package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stylist is a chair in the salon. Deactivation is a soft delete:
// inactive stylists stay referenced by historical appointments.
type Stylist struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name     string    `gorm:"not null" json:"name"`
	HireDate string    `gorm:"type:date" json:"hire_date"` // YYYY-MM-DD
	Active   bool      `gorm:"default:true" json:"active"`

	Appointments []Appointment `gorm:"foreignKey:StylistID" json:"-"`
}

func (s *Stylist) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
