package models

import (
	"time"

	"gorm.io/datatypes"
)

// AlertEvent is one published low-stock alert kept for history queries
type AlertEvent struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	AlertID   string         `gorm:"uniqueIndex;not null" json:"alert_id"` // UUID
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

// TableName returns the table name for AlertEvent model
func (AlertEvent) TableName() string {
	return "alert_events"
}
