package repository

import (
	"context"
	"errors"

	"github.com/absence-management-api/internal/domain"
	"gorm.io/gorm"
)

// AccountRepository определяет интерфейс для работы с учётными записями
type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository создаёт новый экземпляр репозитория
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var acc domain.Account
	err := r.db.WithContext(ctx).First(&acc, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &acc, nil
}
