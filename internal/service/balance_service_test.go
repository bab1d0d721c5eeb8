package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/absence-management-api/internal/domain"
	"github.com/absence-management-api/internal/dto"
	"github.com/absence-management-api/internal/repository"
	"github.com/absence-management-api/internal/service"
)

func setupBalanceService(f *engineFixture) service.LeaveBalanceService {
	return service.NewLeaveBalanceService(
		repository.NewLeaveBalanceRepository(f.db),
		repository.NewAbsenceRequestRepository(f.db),
		repository.NewEmployeeRepository(f.db),
		repository.NewPolicyRepository(f.db),
	)
}

func TestBalanceSummary_UsedDays(t *testing.T) {
	f := setupEngine(t, false)
	balances := setupBalanceService(f)

	request := submitRequest(t, f, 7, 4, "vacation")
	if err := f.svc.Process(context.Background(), f.manager, request.ID, &dto.ProcessAbsenceRequest{Action: "approve"}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	summary, err := balances.GetOwn(context.Background(), f.employee, request.StartDate.Year())
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	if summary.Balance.Vacation != 6 {
		t.Errorf("expected vacation balance 6, got %v", summary.Balance.Vacation)
	}
	if summary.Used.Vacation != 4 {
		t.Errorf("expected 4 used vacation days, got %v", summary.Used.Vacation)
	}
	if summary.Used.Sick != 0 {
		t.Errorf("expected 0 used sick days, got %v", summary.Used.Sick)
	}
}

func TestBalanceSummary_PolicyLimits(t *testing.T) {
	f := setupEngine(t, false)
	balances := setupBalanceService(f)

	deptID := int64(1)
	policy := &domain.AbsencePolicy{
		DepartmentID:    &deptID,
		MaxVacationDays: 25,
		MaxSickDays:     12,
		MaxPersonalDays: 5,
	}
	if err := f.db.Create(policy).Error; err != nil {
		t.Fatalf("failed to seed policy: %v", err)
	}

	summary, err := balances.GetOwn(context.Background(), f.employee, time.Now().Year())
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.Policy == nil || summary.Policy.MaxVacationDays != 25 {
		t.Errorf("expected policy limits in summary, got %v", summary.Policy)
	}
}

func TestBalanceSummary_NoPolicy(t *testing.T) {
	f := setupEngine(t, false)
	balances := setupBalanceService(f)

	summary, err := balances.GetOwn(context.Background(), f.employee, time.Now().Year())
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.Policy != nil {
		t.Errorf("expected no policy limits, got %v", summary.Policy)
	}
}

func TestBalanceGetForEmployee_Scope(t *testing.T) {
	f := setupEngine(t, false)
	balances := setupBalanceService(f)
	year := time.Now().Year()

	if _, err := balances.GetForEmployee(context.Background(), f.manager, f.employeeID, year); err != nil {
		t.Errorf("manager lookup failed: %v", err)
	}
	if _, err := balances.GetForEmployee(context.Background(), f.admin, f.employeeID, year); err != nil {
		t.Errorf("admin lookup failed: %v", err)
	}

	other := &domain.Account{Username: "stranger", Password: "x", FullName: "Stranger Manager", Email: "stranger@example.com", Role: domain.RoleManager}
	if err := f.db.Create(other).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	ident := domain.Identity{AccountID: other.ID, Role: domain.RoleManager, FullName: other.FullName}
	if _, err := balances.GetForEmployee(context.Background(), ident, f.employeeID, year); err == nil || kindOf(t, err) != domain.KindAuthorization {
		t.Errorf("expected authorization error for foreign manager, got %v", err)
	}
}

func TestBalanceSet_AdminOnly(t *testing.T) {
	f := setupEngine(t, false)
	balances := setupBalanceService(f)

	req := &dto.SetLeaveBalanceRequest{Year: time.Now().Year(), VacationDays: 20, SickDays: 10, PersonalDays: 5}

	if _, err := balances.Set(context.Background(), f.manager, f.employeeID, req); err == nil || kindOf(t, err) != domain.KindAuthorization {
		t.Errorf("expected authorization error for manager, got %v", err)
	}

	balance, err := balances.Set(context.Background(), f.admin, f.employeeID, req)
	if err != nil {
		t.Fatalf("admin set failed: %v", err)
	}
	if balance.VacationDays != 20 {
		t.Errorf("expected vacation balance 20, got %v", balance.VacationDays)
	}

	stored := balanceFor(t, f, req.Year)
	if stored.VacationDays != 20 || stored.SickDays != 10 || stored.PersonalDays != 5 {
		t.Errorf("stored balance mismatch: %+v", stored)
	}
}

func TestBalanceSet_UnknownEmployee(t *testing.T) {
	f := setupEngine(t, false)
	balances := setupBalanceService(f)

	req := &dto.SetLeaveBalanceRequest{Year: time.Now().Year(), VacationDays: 20}
	_, err := balances.Set(context.Background(), f.admin, 999, req)
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected employee not found, got %v", err)
	}
}

func TestNotificationInbox(t *testing.T) {
	f := setupEngine(t, false)
	notifications := service.NewNotificationService(repository.NewNotificationRepository(f.db))

	request := submitRequest(t, f, 7, 2, "vacation")
	if err := f.svc.Process(context.Background(), f.manager, request.ID, &dto.ProcessAbsenceRequest{Action: "approve"}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	inbox, err := notifications.Inbox(context.Background(), f.employee, &dto.NotificationListQuery{Limit: 50})
	if err != nil {
		t.Fatalf("inbox failed: %v", err)
	}
	if inbox.Count != 1 || inbox.UnreadCount != 1 {
		t.Fatalf("expected one unread notification, got count=%d unread=%d", inbox.Count, inbox.UnreadCount)
	}

	if err := notifications.MarkRead(context.Background(), f.employee, inbox.Notifications[0].ID); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}

	inbox, err = notifications.Inbox(context.Background(), f.employee, &dto.NotificationListQuery{Limit: 50})
	if err != nil {
		t.Fatalf("inbox failed: %v", err)
	}
	if inbox.UnreadCount != 0 {
		t.Errorf("expected no unread notifications, got %d", inbox.UnreadCount)
	}

	// Чужое уведомление нельзя пометить прочитанным
	managerInbox, err := notifications.Inbox(context.Background(), f.manager, &dto.NotificationListQuery{Limit: 50})
	if err != nil {
		t.Fatalf("inbox failed: %v", err)
	}
	if len(managerInbox.Notifications) != 1 {
		t.Fatalf("expected one manager notification, got %d", len(managerInbox.Notifications))
	}
	err = notifications.MarkRead(context.Background(), f.employee, managerInbox.Notifications[0].ID)
	if !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Errorf("expected not found for foreign notification, got %v", err)
	}
}
