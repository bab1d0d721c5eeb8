package service

import (
	"context"
	"errors"

	"github.com/absence-management-api/internal/domain"
	"github.com/absence-management-api/internal/dto"
	"github.com/absence-management-api/internal/repository"
)

// LeaveBalanceService определяет интерфейс сервиса остатков дней отпуска
type LeaveBalanceService interface {
	GetOwn(ctx context.Context, ident domain.Identity, year int) (*dto.LeaveBalanceSummary, error)
	GetForEmployee(ctx context.Context, ident domain.Identity, employeeID int64, year int) (*dto.LeaveBalanceSummary, error)
	Set(ctx context.Context, ident domain.Identity, employeeID int64, req *dto.SetLeaveBalanceRequest) (*domain.LeaveBalance, error)
}

type leaveBalanceService struct {
	balances  repository.LeaveBalanceRepository
	requests  repository.AbsenceRequestRepository
	employees repository.EmployeeRepository
	policies  repository.PolicyRepository
}

// NewLeaveBalanceService создаёт новый экземпляр сервиса
func NewLeaveBalanceService(
	balances repository.LeaveBalanceRepository,
	requests repository.AbsenceRequestRepository,
	employees repository.EmployeeRepository,
	policies repository.PolicyRepository,
) LeaveBalanceService {
	return &leaveBalanceService{
		balances:  balances,
		requests:  requests,
		employees: employees,
		policies:  policies,
	}
}

func (s *leaveBalanceService) GetOwn(ctx context.Context, ident domain.Identity, year int) (*dto.LeaveBalanceSummary, error) {
	if ident.EmployeeID == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return s.summary(ctx, *ident.EmployeeID, year)
}

func (s *leaveBalanceService) GetForEmployee(ctx context.Context, ident domain.Identity, employeeID int64, year int) (*dto.LeaveBalanceSummary, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	switch ident.Role {
	case domain.RoleAdmin:
	case domain.RoleManager:
		if employee.ManagerID == nil || *employee.ManagerID != ident.AccountID {
			return nil, domain.Authorization("employee is outside your team")
		}
	case domain.RoleEmployee:
		if !ident.Owns(employeeID) {
			return nil, domain.Authorization("you can only view your own balance")
		}
	}

	return s.summary(ctx, employeeID, year)
}

// summary собирает остаток, использование по одобренным заявкам года и лимиты
// политики подразделения. Использование считается по датам начала заявок.
func (s *leaveBalanceService) summary(ctx context.Context, employeeID int64, year int) (*dto.LeaveBalanceSummary, error) {
	balance, err := s.balances.Get(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	approved, err := s.requests.ListApprovedByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	var used dto.LeaveDays
	for _, req := range approved {
		days := float64(req.InclusiveDays())
		switch req.Type {
		case domain.AbsenceVacation:
			used.Vacation += days
		case domain.AbsenceSick:
			used.Sick += days
		case domain.AbsencePersonal:
			used.Personal += days
		}
	}

	result := &dto.LeaveBalanceSummary{
		EmployeeID: employeeID,
		Year:       year,
		Balance: dto.LeaveDays{
			Vacation: balance.VacationDays,
			Sick:     balance.SickDays,
			Personal: balance.PersonalDays,
		},
		Used: used,
		Remaining: dto.LeaveDays{
			Vacation: balance.VacationDays,
			Sick:     balance.SickDays,
			Personal: balance.PersonalDays,
		},
	}

	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	policy, err := s.policies.GetByDepartmentID(ctx, employee.DepartmentID)
	if err != nil {
		// Подразделение без политики — остаток отдаётся без лимитов
		if errors.Is(err, domain.ErrPolicyNotFound) {
			return result, nil
		}
		return nil, err
	}
	result.Policy = &dto.PolicyLimits{
		MaxVacationDays: policy.MaxVacationDays,
		MaxSickDays:     policy.MaxSickDays,
		MaxPersonalDays: policy.MaxPersonalDays,
	}

	return result, nil
}

func (s *leaveBalanceService) Set(ctx context.Context, ident domain.Identity, employeeID int64, req *dto.SetLeaveBalanceRequest) (*domain.LeaveBalance, error) {
	if ident.Role != domain.RoleAdmin {
		return nil, domain.Authorization("only administrators can adjust leave balances")
	}
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	balance := &domain.LeaveBalance{
		EmployeeID:   employeeID,
		Year:         req.Year,
		VacationDays: req.VacationDays,
		SickDays:     req.SickDays,
		PersonalDays: req.PersonalDays,
	}
	if err := s.balances.Upsert(ctx, balance); err != nil {
		return nil, err
	}
	return balance, nil
}
