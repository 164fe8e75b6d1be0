package repository

import (
	"context"

	"gorm.io/gorm"

	"ridenbite/internal/model"
)

// NotificationRepository defines admin notification persistence operations.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.AdminNotification) error
	// ListRecent returns the newest notifications up to limit, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.AdminNotification, error)
	// CountUnread counts every unread row, not just the listed page.
	CountUnread(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.AdminNotification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) ListRecent(ctx context.Context, limit int) ([]model.AdminNotification, error) {
	var notifications []model.AdminNotification
	err := r.db.WithContext(ctx).Preload("Restaurant").
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AdminNotification{}).
		Where("`read` = ?", false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&model.AdminNotification{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.AdminNotification{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// MarkAllRead is a blanket update over read=false rows. Read state is
// platform-global, not per admin.
func (r *notificationRepository) MarkAllRead(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&model.AdminNotification{}).
		Where("`read` = ?", false).
		Update("read", true).Error
}
