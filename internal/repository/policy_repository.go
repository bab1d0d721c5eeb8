package repository

import (
	"context"
	"errors"

	"github.com/absence-management-api/internal/domain"
	"gorm.io/gorm"
)

// PolicyRepository определяет интерфейс чтения политик отсутствий.
// Движок политики не изменяет.
type PolicyRepository interface {
	GetByDepartmentID(ctx context.Context, departmentID int64) (*domain.AbsencePolicy, error)
}

type policyRepository struct {
	db *gorm.DB
}

// NewPolicyRepository создаёт новый экземпляр репозитория
func NewPolicyRepository(db *gorm.DB) PolicyRepository {
	return &policyRepository{db: db}
}

func (r *policyRepository) GetByDepartmentID(ctx context.Context, departmentID int64) (*domain.AbsencePolicy, error) {
	var policy domain.AbsencePolicy
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		First(&policy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPolicyNotFound
		}
		return nil, err
	}
	return &policy, nil
}
