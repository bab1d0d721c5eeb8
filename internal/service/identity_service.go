package service

import (
	"context"
	"errors"

	"github.com/absence-management-api/internal/domain"
	"github.com/absence-management-api/internal/repository"
)

// IdentityService разрешает учётную запись в идентичность вызывающего
type IdentityService interface {
	Resolve(ctx context.Context, accountID int64) (*domain.Identity, error)
}

type identityService struct {
	accounts  repository.AccountRepository
	employees repository.EmployeeRepository
}

// NewIdentityService создаёт новый экземпляр сервиса
func NewIdentityService(accounts repository.AccountRepository, employees repository.EmployeeRepository) IdentityService {
	return &identityService{accounts: accounts, employees: employees}
}

func (s *identityService) Resolve(ctx context.Context, accountID int64) (*domain.Identity, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(string(account.Role))
	if err != nil {
		return nil, err
	}

	ident := &domain.Identity{
		AccountID: account.ID,
		Role:      role,
		FullName:  account.FullName,
	}

	// Учётная запись без записи сотрудника допустима (например, админ):
	// такая идентичность не может подавать заявки
	employee, err := s.employees.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return ident, nil
		}
		return nil, err
	}
	ident.EmployeeID = &employee.ID

	return ident, nil
}
