package repository

import (
	"context"
	"errors"

	"github.com/absence-management-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LeaveBalanceRepository определяет интерфейс для работы с остатками дней
type LeaveBalanceRepository interface {
	Get(ctx context.Context, employeeID int64, year int) (*domain.LeaveBalance, error)
	// Debit списывает дни с остатка по типу отсутствия. Остаток может уйти
	// в минус — движок это не блокирует (см. DESIGN.md).
	Debit(ctx context.Context, employeeID int64, year int, t domain.AbsenceType, days float64) error
	// Credit возвращает дни на остаток
	Credit(ctx context.Context, employeeID int64, year int, t domain.AbsenceType, days float64) error
	Upsert(ctx context.Context, balance *domain.LeaveBalance) error
}

type leaveBalanceRepository struct {
	db *gorm.DB
}

// NewLeaveBalanceRepository создаёт новый экземпляр репозитория
func NewLeaveBalanceRepository(db *gorm.DB) LeaveBalanceRepository {
	return &leaveBalanceRepository{db: db}
}

func (r *leaveBalanceRepository) Get(ctx context.Context, employeeID int64, year int) (*domain.LeaveBalance, error) {
	var balance domain.LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND year = ?", employeeID, year).
		First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBalanceNotFound
		}
		return nil, err
	}
	return &balance, nil
}

func (r *leaveBalanceRepository) Debit(ctx context.Context, employeeID int64, year int, t domain.AbsenceType, days float64) error {
	column, err := balanceColumn(t)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&domain.LeaveBalance{}).
		Where("employee_id = ? AND year = ?", employeeID, year).
		Update(column, gorm.Expr(column+" - ?", days))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrBalanceNotFound
	}
	return nil
}

func (r *leaveBalanceRepository) Credit(ctx context.Context, employeeID int64, year int, t domain.AbsenceType, days float64) error {
	return r.Debit(ctx, employeeID, year, t, -days)
}

func (r *leaveBalanceRepository) Upsert(ctx context.Context, balance *domain.LeaveBalance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{"vacation_days", "sick_days", "personal_days", "updated_at"}),
		}).
		Create(balance).Error
}

// balanceColumn сопоставляет тип отсутствия колонке остатка
func balanceColumn(t domain.AbsenceType) (string, error) {
	switch t {
	case domain.AbsenceVacation:
		return "vacation_days", nil
	case domain.AbsenceSick:
		return "sick_days", nil
	case domain.AbsencePersonal:
		return "personal_days", nil
	}
	return "", domain.Validation("invalid absence type")
}
