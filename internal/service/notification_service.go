package service

import (
	"context"

	"github.com/absence-management-api/internal/domain"
	"github.com/absence-management-api/internal/dto"
	"github.com/absence-management-api/internal/repository"
)

// Notifier — узкий контракт отправки уведомлений для движка заявок
type Notifier interface {
	Notify(ctx context.Context, recipientID int64, t domain.NotificationType, content string, requestID *int64) error
}

// NotificationService определяет интерфейс сервиса уведомлений
type NotificationService interface {
	Notifier
	Inbox(ctx context.Context, ident domain.Identity, query *dto.NotificationListQuery) (*dto.NotificationInbox, error)
	MarkRead(ctx context.Context, ident domain.Identity, id int64) error
	MarkAllRead(ctx context.Context, ident domain.Identity) error
	Delete(ctx context.Context, ident domain.Identity, id int64) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService создаёт новый экземпляр сервиса
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) Notify(ctx context.Context, recipientID int64, t domain.NotificationType, content string, requestID *int64) error {
	n := &domain.Notification{
		RequestID:   requestID,
		RecipientID: recipientID,
		Type:        t,
		Status:      domain.NotificationUnread,
		Content:     content,
	}
	return s.repo.Create(ctx, n)
}

func (s *notificationService) Inbox(ctx context.Context, ident domain.Identity, query *dto.NotificationListQuery) (*dto.NotificationInbox, error) {
	notifications, err := s.repo.ListByRecipient(ctx, ident.AccountID, domain.NotificationStatus(query.Status), query.Limit, query.Offset)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, ident.AccountID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, dto.NotificationResponse{
			ID:        n.ID,
			RequestID: n.RequestID,
			Type:      string(n.Type),
			Status:    string(n.Status),
			Content:   n.Content,
			SentDate:  n.SentDate,
			ReadDate:  n.ReadDate,
		})
	}

	return &dto.NotificationInbox{
		Count:         len(items),
		UnreadCount:   unread,
		Notifications: items,
	}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, ident domain.Identity, id int64) error {
	return s.repo.MarkRead(ctx, id, ident.AccountID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, ident domain.Identity) error {
	return s.repo.MarkAllRead(ctx, ident.AccountID)
}

func (s *notificationService) Delete(ctx context.Context, ident domain.Identity, id int64) error {
	return s.repo.Delete(ctx, id, ident.AccountID)
}
