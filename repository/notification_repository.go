package repository

import (
	"github.com/fabiomatricardi/cm-log-system/entity"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(n *entity.Notification) error {
	return r.DB.Create(n).Error
}

// Recent lists the latest attempts, newest first.
func (r *NotificationRepository) Recent(limit int) ([]entity.Notification, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []entity.Notification
	err := r.DB.Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

// ForLog lists every attempt made for one log entry.
func (r *NotificationRepository) ForLog(logID int64) ([]entity.Notification, error) {
	var out []entity.Notification
	err := r.DB.Where("log_id = ?", logID).Order("id ASC").Find(&out).Error
	return out, err
}
