package models

import "time"

// ToolCallLog records one MCP tools/call invocation for the admin
// usage report.
type ToolCallLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Tool      string    `gorm:"type:varchar(64);index;not null" json:"tool"`
	UserID    string    `gorm:"type:varchar(64)" json:"user_id"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}
