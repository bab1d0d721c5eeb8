package repository

import (
	"context"
	"errors"
	"time"

	"github.com/absence-management-api/internal/domain"
	"gorm.io/gorm"
)

// RegistryRepository определяет интерфейс для работы с реестром согласований
type RegistryRepository interface {
	Create(ctx context.Context, reg *domain.AbsenceRegistry) error
	GetByRequestID(ctx context.Context, requestID int64) (*domain.AbsenceRegistry, error)
	SetStatus(ctx context.Context, requestID int64, status domain.RequestStatus) error
	Touch(ctx context.Context, requestID int64) error
	MarkNotificationSent(ctx context.Context, requestID int64) error
}

type registryRepository struct {
	db *gorm.DB
}

// NewRegistryRepository создаёт новый экземпляр репозитория
func NewRegistryRepository(db *gorm.DB) RegistryRepository {
	return &registryRepository{db: db}
}

func (r *registryRepository) Create(ctx context.Context, reg *domain.AbsenceRegistry) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *registryRepository) GetByRequestID(ctx context.Context, requestID int64) (*domain.AbsenceRegistry, error) {
	var reg domain.AbsenceRegistry
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		First(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &reg, nil
}

// SetStatus зеркалирует статус заявки и обновляет дату изменения
func (r *registryRepository) SetStatus(ctx context.Context, requestID int64, status domain.RequestStatus) error {
	result := r.db.WithContext(ctx).
		Model(&domain.AbsenceRegistry{}).
		Where("request_id = ?", requestID).
		Updates(map[string]any{
			"approval_status":   status,
			"modification_date": today(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func (r *registryRepository) Touch(ctx context.Context, requestID int64) error {
	result := r.db.WithContext(ctx).
		Model(&domain.AbsenceRegistry{}).
		Where("request_id = ?", requestID).
		Update("modification_date", today())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func (r *registryRepository) MarkNotificationSent(ctx context.Context, requestID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.AbsenceRegistry{}).
		Where("request_id = ?", requestID).
		Update("notification_sent", true).Error
}

// today возвращает текущую дату без времени
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
