package service

import (
	"context"

	"github.com/absence-management-api/internal/domain"
	"github.com/absence-management-api/internal/dto"
	"github.com/absence-management-api/internal/repository"
)

// DepartmentService определяет интерфейс сервиса подразделений
type DepartmentService interface {
	Create(ctx context.Context, ident domain.Identity, req *dto.CreateDepartmentRequest) (*domain.Department, error)
	GetByID(ctx context.Context, id int64, includeEmployees bool) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	Update(ctx context.Context, ident domain.Identity, id int64, req *dto.UpdateDepartmentRequest) (*domain.Department, error)
	Delete(ctx context.Context, ident domain.Identity, id int64) error
}

type departmentService struct {
	departments repository.DepartmentRepository
	employees   repository.EmployeeRepository
	accounts    repository.AccountRepository
}

// NewDepartmentService создаёт новый экземпляр сервиса
func NewDepartmentService(
	departments repository.DepartmentRepository,
	employees repository.EmployeeRepository,
	accounts repository.AccountRepository,
) DepartmentService {
	return &departmentService{
		departments: departments,
		employees:   employees,
		accounts:    accounts,
	}
}

func (s *departmentService) Create(ctx context.Context, ident domain.Identity, req *dto.CreateDepartmentRequest) (*domain.Department, error) {
	if ident.Role != domain.RoleAdmin {
		return nil, domain.Authorization("only administrators can manage departments")
	}
	if req.ManagerID != nil {
		if err := s.requireManagerAccount(ctx, *req.ManagerID); err != nil {
			return nil, err
		}
	}

	dept := &domain.Department{
		Name:      req.Name,
		ManagerID: req.ManagerID,
		Location:  req.Location,
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *departmentService) GetByID(ctx context.Context, id int64, includeEmployees bool) (*domain.Department, error) {
	if includeEmployees {
		return s.departments.GetByIDWithEmployees(ctx, id)
	}
	return s.departments.GetByID(ctx, id)
}

func (s *departmentService) List(ctx context.Context) ([]domain.Department, error) {
	return s.departments.List(ctx)
}

func (s *departmentService) Update(ctx context.Context, ident domain.Identity, id int64, req *dto.UpdateDepartmentRequest) (*domain.Department, error) {
	if ident.Role != domain.RoleAdmin {
		return nil, domain.Authorization("only administrators can manage departments")
	}

	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.ManagerID != nil {
		if err := s.requireManagerAccount(ctx, *req.ManagerID); err != nil {
			return nil, err
		}
		dept.ManagerID = req.ManagerID
	}
	if req.Location != nil {
		dept.Location = req.Location
	}

	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *departmentService) Delete(ctx context.Context, ident domain.Identity, id int64) error {
	if ident.Role != domain.RoleAdmin {
		return domain.Authorization("only administrators can manage departments")
	}

	employees, err := s.employees.GetByDepartmentID(ctx, id)
	if err != nil {
		return err
	}
	if len(employees) > 0 {
		return domain.BusinessLogic("cannot delete a department with employees")
	}

	return s.departments.Delete(ctx, id)
}

// requireManagerAccount проверяет, что учётная запись существует и имеет
// привилегированную роль
func (s *departmentService) requireManagerAccount(ctx context.Context, accountID int64) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.Role.Privileged() {
		return domain.Validation("department manager must have a manager or admin role")
	}
	return nil
}
