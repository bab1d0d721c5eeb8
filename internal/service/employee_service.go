package service

import (
	"context"

	"github.com/absence-management-api/internal/domain"
	"github.com/absence-management-api/internal/dto"
	"github.com/absence-management-api/internal/repository"
	"gorm.io/gorm"
)

// EmployeeService определяет интерфейс сервиса сотрудников
type EmployeeService interface {
	Create(ctx context.Context, ident domain.Identity, departmentID int64, req *dto.CreateEmployeeRequest) (*domain.Employee, error)
	GetByDepartmentID(ctx context.Context, departmentID int64) ([]domain.Employee, error)
}

type employeeService struct {
	db *gorm.DB
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(db *gorm.DB) EmployeeService {
	return &employeeService{db: db}
}

func (s *employeeService) Create(ctx context.Context, ident domain.Identity, departmentID int64, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	if ident.Role != domain.RoleAdmin {
		return nil, domain.Authorization("only administrators can manage employees")
	}

	if _, err := repository.NewDepartmentRepository(s.db).GetByID(ctx, departmentID); err != nil {
		return nil, err
	}
	if _, err := repository.NewAccountRepository(s.db).GetByID(ctx, req.AccountID); err != nil {
		return nil, err
	}
	if req.ManagerID != nil {
		manager, err := repository.NewAccountRepository(s.db).GetByID(ctx, *req.ManagerID)
		if err != nil {
			return nil, err
		}
		if !manager.Role.Privileged() {
			return nil, domain.Validation("employee manager must have a manager or admin role")
		}
	}

	employee := &domain.Employee{
		AccountID:    req.AccountID,
		DepartmentID: departmentID,
		Position:     req.Position,
		ManagerID:    req.ManagerID,
		Status:       "active",
	}
	if req.HireDate != nil {
		hireDate, err := parseDate(*req.HireDate)
		if err != nil {
			return nil, err
		}
		employee.HireDate = &hireDate
	}

	// Счётчик сотрудников подразделения обновляется в одной транзакции с
	// созданием записи
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewEmployeeRepository(tx).Create(ctx, employee); err != nil {
			return err
		}
		return repository.NewDepartmentRepository(tx).AdjustEmployeeCount(ctx, departmentID, 1)
	})
	if err != nil {
		return nil, err
	}

	return employee, nil
}

func (s *employeeService) GetByDepartmentID(ctx context.Context, departmentID int64) ([]domain.Employee, error) {
	return repository.NewEmployeeRepository(s.db).GetByDepartmentID(ctx, departmentID)
}
