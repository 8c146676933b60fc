package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RevenueGoal is a monthly target, unique per (user, month).
type RevenueGoal struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_month,priority:1" json:"user_id"`
	Month      string    `gorm:"type:varchar(7);not null;uniqueIndex:idx_user_month,priority:2" json:"month"` // YYYY-MM
	GoalAmount float64   `gorm:"type:decimal(10,2);not null" json:"goal_amount"`
}

func (g *RevenueGoal) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return
}
