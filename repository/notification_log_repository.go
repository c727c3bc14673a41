package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sufal54/bolpurmart-admin-sub000/models"
)

// NotificationLogRepository keeps the SQL audit trail of every customer
// notification the admin surface emitted.
type NotificationLogRepository struct {
	db *gorm.DB
}

func NewNotificationLogRepository(db *gorm.DB) *NotificationLogRepository {
	return &NotificationLogRepository{db: db}
}

func (r *NotificationLogRepository) Append(ctx context.Context, log *models.NotificationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *NotificationLogRepository) Recent(ctx context.Context, limit int) ([]models.NotificationLog, error) {
	var logs []models.NotificationLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
