package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus = string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusNoShow    AppointmentStatus = "no_show"
	StatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	StylistID  uuid.UUID `gorm:"type:uuid;index;not null" json:"stylist_id"`
	ClientName string    `gorm:"not null" json:"client_name"`
	Service    string    `gorm:"not null" json:"service"`
	Price      float64   `gorm:"type:decimal(10,2);not null" json:"price"`

	ScheduledAt time.Time         `gorm:"index;not null" json:"scheduled_at"`
	Status      AppointmentStatus `gorm:"type:varchar(20);default:'scheduled'" json:"status"`
	CreatedAt   time.Time         `json:"created_at"`

	Stylist *Stylist `gorm:"foreignKey:StylistID" json:"stylist,omitempty"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
