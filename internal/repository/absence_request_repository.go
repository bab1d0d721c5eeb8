package repository

import (
	"context"
	"errors"
	"time"

	"github.com/absence-management-api/internal/domain"
	"gorm.io/gorm"
)

// AbsenceFilter - фильтры выборки заявок. AccountID/ManagerID задают область
// видимости роли, остальные поля — пользовательские фильтры.
type AbsenceFilter struct {
	AccountID    *int64
	ManagerID    *int64
	Status       domain.RequestStatus
	Type         domain.AbsenceType
	StartFrom    *time.Time
	EndTo        *time.Time
	EmployeeID   *int64
	DepartmentID *int64
}

// AbsenceRequestRepository определяет интерфейс для работы с заявками
type AbsenceRequestRepository interface {
	Create(ctx context.Context, req *domain.AbsenceRequest) error
	GetByID(ctx context.Context, id int64) (*domain.AbsenceRequest, error)
	GetDetails(ctx context.Context, id int64, filter AbsenceFilter) (*domain.AbsenceRequestDetails, error)
	List(ctx context.Context, filter AbsenceFilter) ([]domain.AbsenceRequestDetails, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	// SetStatusIf переводит заявку из статуса from в to; false — заявка уже
	// не в статусе from (конкурирующий переход сериализуется блокировкой
	// строки на время транзакции).
	SetStatusIf(ctx context.Context, id int64, from, to domain.RequestStatus) (bool, error)
	ListApprovedByEmployeeYear(ctx context.Context, employeeID int64, year int) ([]domain.AbsenceRequest, error)
}

type absenceRequestRepository struct {
	db *gorm.DB
}

// NewAbsenceRequestRepository создаёт новый экземпляр репозитория.
// Передача транзакционного *gorm.DB привязывает репозиторий к транзакции.
func NewAbsenceRequestRepository(db *gorm.DB) AbsenceRequestRepository {
	return &absenceRequestRepository{db: db}
}

func (r *absenceRequestRepository) Create(ctx context.Context, req *domain.AbsenceRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *absenceRequestRepository) GetByID(ctx context.Context, id int64) (*domain.AbsenceRequest, error) {
	var req domain.AbsenceRequest
	err := r.db.WithContext(ctx).First(&req, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

const detailsSelect = `
	absence_requests.id, absence_requests.employee_id,
	employees.account_id AS employee_account_id,
	accounts.full_name AS employee_name, accounts.email AS employee_email,
	absence_requests.start_date, absence_requests.end_date,
	absence_requests.type, absence_requests.status,
	absence_requests.has_documentation, absence_requests.comments,
	absence_requests.submission_time,
	departments.id AS department_id, departments.name AS department_name`

func (r *absenceRequestRepository) detailsQuery(ctx context.Context, filter AbsenceFilter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&domain.AbsenceRequest{}).
		Joins("JOIN employees ON employees.id = absence_requests.employee_id").
		Joins("JOIN accounts ON accounts.id = employees.account_id").
		Joins("JOIN departments ON departments.id = employees.department_id")

	if filter.AccountID != nil {
		q = q.Where("employees.account_id = ?", *filter.AccountID)
	}
	if filter.ManagerID != nil {
		q = q.Where("employees.manager_id = ?", *filter.ManagerID)
	}
	if filter.Status != "" {
		q = q.Where("absence_requests.status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("absence_requests.type = ?", filter.Type)
	}
	if filter.StartFrom != nil {
		q = q.Where("absence_requests.start_date >= ?", *filter.StartFrom)
	}
	if filter.EndTo != nil {
		q = q.Where("absence_requests.end_date <= ?", *filter.EndTo)
	}
	if filter.EmployeeID != nil {
		q = q.Where("absence_requests.employee_id = ?", *filter.EmployeeID)
	}
	if filter.DepartmentID != nil {
		q = q.Where("departments.id = ?", *filter.DepartmentID)
	}

	return q
}

func (r *absenceRequestRepository) GetDetails(ctx context.Context, id int64, filter AbsenceFilter) (*domain.AbsenceRequestDetails, error) {
	var details domain.AbsenceRequestDetails
	err := r.detailsQuery(ctx, filter).
		Select(detailsSelect+`,
			absence_registry.approval_status, absence_registry.manager_id`).
		Joins("LEFT JOIN absence_registry ON absence_registry.request_id = absence_requests.id").
		Where("absence_requests.id = ?", id).
		Take(&details).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &details, nil
}

func (r *absenceRequestRepository) List(ctx context.Context, filter AbsenceFilter) ([]domain.AbsenceRequestDetails, error) {
	var requests []domain.AbsenceRequestDetails
	err := r.detailsQuery(ctx, filter).
		Select(detailsSelect).
		Order("absence_requests.submission_time DESC").
		Scan(&requests).Error
	return requests, err
}

func (r *absenceRequestRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&domain.AbsenceRequest{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func (r *absenceRequestRepository) SetStatusIf(ctx context.Context, id int64, from, to domain.RequestStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.AbsenceRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *absenceRequestRepository) ListApprovedByEmployeeYear(ctx context.Context, employeeID int64, year int) ([]domain.AbsenceRequest, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	var requests []domain.AbsenceRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status = ?", employeeID, domain.StatusApproved).
		Where("start_date >= ? AND start_date < ?", yearStart, yearEnd).
		Find(&requests).Error
	return requests, err
}
