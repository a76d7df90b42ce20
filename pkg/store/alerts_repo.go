package store

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"tiendascan/internal/models"
)

// RecordAlert persists one published alert. Implements alerts.Recorder.
func (s *Store) RecordAlert(ctx context.Context, id, message string, createdAt time.Time) error {
	payload, err := json.Marshal(map[string]string{"mensaje": message})
	if err != nil {
		return err
	}

	event := models.AlertEvent{
		AlertID:   id,
		Payload:   datatypes.JSON(payload),
		CreatedAt: createdAt,
	}
	return s.db.WithContext(ctx).Create(&event).Error
}

// RecentAlertEvents returns the latest persisted alerts, newest first
func (s *Store) RecentAlertEvents(ctx context.Context, limit int) ([]models.AlertEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	var events []models.AlertEvent
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
