package repository

import (
	"context"
	"time"

	"github.com/absence-management-api/internal/domain"
	"gorm.io/gorm"
)

// NotificationRepository определяет интерфейс для работы с уведомлениями
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID int64, status domain.NotificationStatus, limit, offset int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
	MarkRead(ctx context.Context, id, recipientID int64) error
	MarkAllRead(ctx context.Context, recipientID int64) error
	Delete(ctx context.Context, id, recipientID int64) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository создаёт новый экземпляр репозитория
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID int64, status domain.NotificationStatus, limit, offset int) ([]domain.Notification, error) {
	q := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var notifications []domain.Notification
	err := q.Order("sent_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("recipient_id = ? AND status = ?", recipientID, domain.NotificationUnread).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, recipientID int64) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Updates(map[string]any{
			"status":    domain.NotificationRead,
			"read_date": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("recipient_id = ? AND status = ?", recipientID, domain.NotificationUnread).
		Updates(map[string]any{
			"status":    domain.NotificationRead,
			"read_date": time.Now(),
		}).Error
}

func (r *notificationRepository) Delete(ctx context.Context, id, recipientID int64) error {
	result := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Delete(&domain.Notification{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
