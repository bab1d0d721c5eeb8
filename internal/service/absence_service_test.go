package service_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/absence-management-api/internal/domain"
	"github.com/absence-management-api/internal/dto"
	"github.com/absence-management-api/internal/repository"
	"github.com/absence-management-api/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type engineFixture struct {
	db  *gorm.DB
	svc service.AbsenceService

	employee domain.Identity
	manager  domain.Identity
	admin    domain.Identity

	employeeID int64
}

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&domain.Account{},
		&domain.Department{},
		&domain.Employee{},
		&domain.LeaveBalance{},
		&domain.AbsencePolicy{},
		&domain.AbsenceRequest{},
		&domain.AbsenceRegistry{},
		&domain.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func setupEngine(t *testing.T, restoreOnCancel bool) *engineFixture {
	db := setupDB(t)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	managerAcc := &domain.Account{Username: "manager", Password: "x", FullName: "Maria Manager", Email: "manager@example.com", Role: domain.RoleManager}
	employeeAcc := &domain.Account{Username: "employee", Password: "x", FullName: "Ivan Employee", Email: "employee@example.com", Role: domain.RoleEmployee}
	adminAcc := &domain.Account{Username: "admin", Password: "x", FullName: "Anna Admin", Email: "admin@example.com", Role: domain.RoleAdmin}
	for _, acc := range []*domain.Account{managerAcc, employeeAcc, adminAcc} {
		if err := db.Create(acc).Error; err != nil {
			t.Fatalf("failed to seed account: %v", err)
		}
	}

	dept := &domain.Department{Name: "Engineering", ManagerID: &managerAcc.ID}
	if err := db.Create(dept).Error; err != nil {
		t.Fatalf("failed to seed department: %v", err)
	}

	emp := &domain.Employee{AccountID: employeeAcc.ID, DepartmentID: dept.ID, ManagerID: &managerAcc.ID, Status: "active"}
	if err := db.Create(emp).Error; err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}

	balance := &domain.LeaveBalance{
		EmployeeID:   emp.ID,
		Year:         time.Now().Year(),
		VacationDays: 10,
		SickDays:     5,
		PersonalDays: 3,
	}
	if err := db.Create(balance).Error; err != nil {
		t.Fatalf("failed to seed balance: %v", err)
	}

	notifications := service.NewNotificationService(repository.NewNotificationRepository(db))
	svc := service.NewAbsenceService(db, notifications, logger, restoreOnCancel)

	return &engineFixture{
		db:  db,
		svc: svc,
		employee: domain.Identity{
			AccountID:  employeeAcc.ID,
			Role:       domain.RoleEmployee,
			EmployeeID: &emp.ID,
			FullName:   employeeAcc.FullName,
		},
		manager: domain.Identity{
			AccountID: managerAcc.ID,
			Role:      domain.RoleManager,
			FullName:  managerAcc.FullName,
		},
		admin: domain.Identity{
			AccountID: adminAcc.ID,
			Role:      domain.RoleAdmin,
			FullName:  adminAcc.FullName,
		},
		employeeID: emp.ID,
	}
}

// dateIn возвращает дату через offset дней от сегодня в формате YYYY-MM-DD
func dateIn(offset int) string {
	return time.Now().UTC().AddDate(0, 0, offset).Format("2006-01-02")
}

func submitRequest(t *testing.T, f *engineFixture, startOffset, days int, absenceType string) *domain.AbsenceRequest {
	t.Helper()
	request, err := f.svc.Submit(context.Background(), f.employee, &dto.CreateAbsenceRequest{
		StartDate: dateIn(startOffset),
		EndDate:   dateIn(startOffset + days - 1),
		Type:      absenceType,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	return request
}

func balanceFor(t *testing.T, f *engineFixture, year int) *domain.LeaveBalance {
	t.Helper()
	balance, err := repository.NewLeaveBalanceRepository(f.db).Get(context.Background(), f.employeeID, year)
	if err != nil {
		t.Fatalf("failed to load balance: %v", err)
	}
	return balance
}

func registryFor(t *testing.T, f *engineFixture, requestID int64) *domain.AbsenceRegistry {
	t.Helper()
	registry, err := repository.NewRegistryRepository(f.db).GetByRequestID(context.Background(), requestID)
	if err != nil {
		t.Fatalf("failed to load registry: %v", err)
	}
	return registry
}

func requestByID(t *testing.T, f *engineFixture, id int64) *domain.AbsenceRequest {
	t.Helper()
	request, err := repository.NewAbsenceRequestRepository(f.db).GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to load request: %v", err)
	}
	return request
}

func notificationsFor(t *testing.T, f *engineFixture, recipientID int64) []domain.Notification {
	t.Helper()
	items, err := repository.NewNotificationRepository(f.db).ListByRecipient(context.Background(), recipientID, "", 100, 0)
	if err != nil {
		t.Fatalf("failed to load notifications: %v", err)
	}
	return items
}

func kindOf(t *testing.T, err error) domain.Kind {
	t.Helper()
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %v", err)
	}
	return domainErr.Kind
}

func TestSubmit_Success(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 7, 5, "vacation")

	if request.Status != domain.StatusPending {
		t.Errorf("expected status pending, got %s", request.Status)
	}
	if request.InclusiveDays() != 5 {
		t.Errorf("expected 5 inclusive days, got %d", request.InclusiveDays())
	}

	registry := registryFor(t, f, request.ID)
	if registry.ApprovalStatus != domain.StatusPending {
		t.Errorf("expected registry status pending, got %s", registry.ApprovalStatus)
	}
	if registry.ManagerID == nil || *registry.ManagerID != f.manager.AccountID {
		t.Errorf("expected registry manager %d, got %v", f.manager.AccountID, registry.ManagerID)
	}

	// Остаток при подаче не списывается
	balance := balanceFor(t, f, time.Now().Year())
	if balance.VacationDays != 10 {
		t.Errorf("expected vacation balance 10, got %v", balance.VacationDays)
	}

	// Руководитель получает уведомление о новой заявке
	items := notificationsFor(t, f, f.manager.AccountID)
	if len(items) != 1 || items[0].Type != domain.NotificationApprovalRequest {
		t.Errorf("expected one approval_request notification, got %v", items)
	}

	if registryFor(t, f, request.ID).NotificationSent != true {
		t.Error("expected notification_sent flag to be set")
	}
}

func TestSubmit_SingleDay(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 3, 1, "personal")
	if request.InclusiveDays() != 1 {
		t.Errorf("expected 1 inclusive day, got %d", request.InclusiveDays())
	}
}

func TestSubmit_InsufficientBalance(t *testing.T) {
	f := setupEngine(t, false)

	_, err := f.svc.Submit(context.Background(), f.employee, &dto.CreateAbsenceRequest{
		StartDate: dateIn(7),
		EndDate:   dateIn(26),
		Type:      "vacation",
	})
	if err == nil {
		t.Fatal("expected error for 20 days against balance of 10")
	}
	if kindOf(t, err) != domain.KindBusinessLogic {
		t.Errorf("expected business logic error, got %v", err)
	}
	if err.Error() != "insufficient vacation day balance" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestSubmit_StartAfterEnd(t *testing.T) {
	f := setupEngine(t, false)

	_, err := f.svc.Submit(context.Background(), f.employee, &dto.CreateAbsenceRequest{
		StartDate: dateIn(10),
		EndDate:   dateIn(5),
		Type:      "vacation",
	})
	if err == nil || kindOf(t, err) != domain.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSubmit_MissingBalanceRow(t *testing.T) {
	f := setupEngine(t, false)

	// Сотрудник без строки остатка на текущий год
	acc := &domain.Account{Username: "new", Password: "x", FullName: "New Employee", Email: "new@example.com", Role: domain.RoleEmployee}
	if err := f.db.Create(acc).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	emp := &domain.Employee{AccountID: acc.ID, DepartmentID: 1, Status: "active"}
	if err := f.db.Create(emp).Error; err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
	ident := domain.Identity{AccountID: acc.ID, Role: domain.RoleEmployee, EmployeeID: &emp.ID, FullName: acc.FullName}

	_, err := f.svc.Submit(context.Background(), ident, &dto.CreateAbsenceRequest{
		StartDate: dateIn(7),
		EndDate:   dateIn(8),
		Type:      "sick",
	})
	if !errors.Is(err, domain.ErrBalanceNotFound) {
		t.Errorf("expected balance not found, got %v", err)
	}
}

func TestSubmit_ManagerForbidden(t *testing.T) {
	f := setupEngine(t, false)

	_, err := f.svc.Submit(context.Background(), f.manager, &dto.CreateAbsenceRequest{
		StartDate: dateIn(7),
		EndDate:   dateIn(8),
		Type:      "vacation",
	})
	if err == nil || kindOf(t, err) != domain.KindAuthorization {
		t.Errorf("expected authorization error, got %v", err)
	}
}

func TestApprove_DebitsBalance(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 7, 5, "vacation")

	err := f.svc.Process(context.Background(), f.manager, request.ID, &dto.ProcessAbsenceRequest{Action: "approve"})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if got := requestByID(t, f, request.ID).Status; got != domain.StatusApproved {
		t.Errorf("expected status approved, got %s", got)
	}
	if got := registryFor(t, f, request.ID).ApprovalStatus; got != domain.StatusApproved {
		t.Errorf("expected registry status approved, got %s", got)
	}

	balance := balanceFor(t, f, request.StartDate.Year())
	if balance.VacationDays != 5 {
		t.Errorf("expected vacation balance 5 after approving 5 days, got %v", balance.VacationDays)
	}

	items := notificationsFor(t, f, f.employee.AccountID)
	if len(items) != 1 || items[0].Type != domain.NotificationRequestApproved {
		t.Errorf("expected one request_approved notification, got %v", items)
	}
}

func TestApprove_SecondCallFails(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 7, 5, "vacation")

	if err := f.svc.Process(context.Background(), f.manager, request.ID, &dto.ProcessAbsenceRequest{Action: "approve"}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	err := f.svc.Process(context.Background(), f.manager, request.ID, &dto.ProcessAbsenceRequest{Action: "approve"})
	if err == nil || kindOf(t, err) != domain.KindBusinessLogic {
		t.Errorf("expected business logic error on repeated approve, got %v", err)
	}

	// Дни списаны ровно один раз
	balance := balanceFor(t, f, request.StartDate.Year())
	if balance.VacationDays != 5 {
		t.Errorf("expected vacation balance 5, got %v", balance.VacationDays)
	}
}

func TestReject_KeepsBalance(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 7, 3, "sick")

	comments := "need documentation"
	err := f.svc.Process(context.Background(), f.manager, request.ID, &dto.ProcessAbsenceRequest{Action: "reject", Comments: &comments})
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	if got := requestByID(t, f, request.ID).Status; got != domain.StatusRejected {
		t.Errorf("expected status rejected, got %s", got)
	}
	balance := balanceFor(t, f, request.StartDate.Year())
	if balance.SickDays != 5 {
		t.Errorf("expected sick balance untouched at 5, got %v", balance.SickDays)
	}

	items := notificationsFor(t, f, f.employee.AccountID)
	if len(items) != 1 || items[0].Type != domain.NotificationRequestRejected {
		t.Fatalf("expected one request_rejected notification, got %v", items)
	}
	if items[0].Content != "Your absence request has been rejected: need documentation" {
		t.Errorf("unexpected notification content: %s", items[0].Content)
	}
}

func TestProcess_EmployeeForbidden(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 7, 2, "vacation")

	err := f.svc.Process(context.Background(), f.employee, request.ID, &dto.ProcessAbsenceRequest{Action: "approve"})
	if err == nil || kindOf(t, err) != domain.KindAuthorization {
		t.Errorf("expected authorization error, got %v", err)
	}
}

func TestProcess_OutsideTeam(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 7, 2, "vacation")

	other := &domain.Account{Username: "other", Password: "x", FullName: "Other Manager", Email: "other@example.com", Role: domain.RoleManager}
	if err := f.db.Create(other).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	ident := domain.Identity{AccountID: other.ID, Role: domain.RoleManager, FullName: other.FullName}

	err := f.svc.Process(context.Background(), ident, request.ID, &dto.ProcessAbsenceRequest{Action: "approve"})
	if err == nil || kindOf(t, err) != domain.KindAuthorization {
		t.Errorf("expected authorization error for foreign team, got %v", err)
	}

	// Администратору командная принадлежность не важна
	if err := f.svc.Process(context.Background(), f.admin, request.ID, &dto.ProcessAbsenceRequest{Action: "approve"}); err != nil {
		t.Errorf("admin approve failed: %v", err)
	}
}

func TestCancel_Pending(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 7, 3, "vacation")

	if err := f.svc.Cancel(context.Background(), f.employee, request.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if got := requestByID(t, f, request.ID).Status; got != domain.StatusCancelled {
		t.Errorf("expected status cancelled, got %s", got)
	}
	if got := registryFor(t, f, request.ID).ApprovalStatus; got != domain.StatusCancelled {
		t.Errorf("expected registry status cancelled, got %s", got)
	}
}

func TestCancel_ApprovedBeforeStart(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 1, 3, "vacation")
	if err := f.svc.Process(context.Background(), f.manager, request.ID, &dto.ProcessAbsenceRequest{Action: "approve"}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if err := f.svc.Cancel(context.Background(), f.employee, request.ID); err != nil {
		t.Fatalf("cancel of future approved request failed: %v", err)
	}

	// По умолчанию списанные дни не возвращаются
	balance := balanceFor(t, f, request.StartDate.Year())
	if balance.VacationDays != 7 {
		t.Errorf("expected vacation balance 7 without restore, got %v", balance.VacationDays)
	}
}

func TestCancel_ApprovedAlreadyStarted(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 0, 3, "vacation")
	if err := f.svc.Process(context.Background(), f.manager, request.ID, &dto.ProcessAbsenceRequest{Action: "approve"}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	err := f.svc.Cancel(context.Background(), f.employee, request.ID)
	if err == nil || kindOf(t, err) != domain.KindBusinessLogic {
		t.Errorf("expected business logic error for started request, got %v", err)
	}
	if err.Error() != "cannot cancel an approved request that has already started" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 7, 2, "vacation")
	if err := f.svc.Cancel(context.Background(), f.employee, request.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	err := f.svc.Cancel(context.Background(), f.employee, request.ID)
	if err == nil || kindOf(t, err) != domain.KindBusinessLogic {
		t.Errorf("expected business logic error, got %v", err)
	}
}

func TestCancel_RestoreFlag(t *testing.T) {
	f := setupEngine(t, true)

	request := submitRequest(t, f, 1, 4, "vacation")
	if err := f.svc.Process(context.Background(), f.manager, request.ID, &dto.ProcessAbsenceRequest{Action: "approve"}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if got := balanceFor(t, f, request.StartDate.Year()).VacationDays; got != 6 {
		t.Fatalf("expected vacation balance 6 after approve, got %v", got)
	}

	if err := f.svc.Cancel(context.Background(), f.employee, request.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if got := balanceFor(t, f, request.StartDate.Year()).VacationDays; got != 10 {
		t.Errorf("expected vacation balance restored to 10, got %v", got)
	}
}

func TestUpdate_Pending(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 7, 2, "vacation")

	newEnd := dateIn(10)
	if err := f.svc.Update(context.Background(), f.employee, request.ID, &dto.UpdateAbsenceRequest{EndDate: &newEnd}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	updated := requestByID(t, f, request.ID)
	if updated.EndDate.Format("2006-01-02") != newEnd {
		t.Errorf("expected end date %s, got %s", newEnd, updated.EndDate.Format("2006-01-02"))
	}

	registry := registryFor(t, f, request.ID)
	if registry.ModificationDate == nil {
		t.Error("expected registry modification date to be set")
	}
}

func TestUpdate_NonPending(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 7, 2, "vacation")
	if err := f.svc.Process(context.Background(), f.manager, request.ID, &dto.ProcessAbsenceRequest{Action: "approve"}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	newType := "sick"
	err := f.svc.Update(context.Background(), f.employee, request.ID, &dto.UpdateAbsenceRequest{Type: &newType})
	if err == nil || err.Error() != "only pending requests can be updated" {
		t.Errorf("expected pending-only error, got %v", err)
	}
}

func TestUpdate_EmptyBody(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 7, 2, "vacation")

	err := f.svc.Update(context.Background(), f.employee, request.ID, &dto.UpdateAbsenceRequest{})
	if err == nil || kindOf(t, err) != domain.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdate_ForeignRequest(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 7, 2, "vacation")

	acc := &domain.Account{Username: "peer", Password: "x", FullName: "Peer Employee", Email: "peer@example.com", Role: domain.RoleEmployee}
	if err := f.db.Create(acc).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	emp := &domain.Employee{AccountID: acc.ID, DepartmentID: 1, Status: "active"}
	if err := f.db.Create(emp).Error; err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
	ident := domain.Identity{AccountID: acc.ID, Role: domain.RoleEmployee, EmployeeID: &emp.ID, FullName: acc.FullName}

	comments := "mine now"
	err := f.svc.Update(context.Background(), ident, request.ID, &dto.UpdateAbsenceRequest{Comments: &comments})
	if err == nil || kindOf(t, err) != domain.KindAuthorization {
		t.Errorf("expected authorization error, got %v", err)
	}
}

func TestUpdateStatus_ResetToPending(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 7, 5, "vacation")
	if err := f.svc.Process(context.Background(), f.manager, request.ID, &dto.ProcessAbsenceRequest{Action: "approve"}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if got := balanceFor(t, f, request.StartDate.Year()).VacationDays; got != 5 {
		t.Fatalf("expected vacation balance 5 after approve, got %v", got)
	}

	err := f.svc.UpdateStatus(context.Background(), f.manager, request.ID, &dto.UpdateAbsenceStatusRequest{Status: "pending"})
	if err != nil {
		t.Fatalf("reset to pending failed: %v", err)
	}

	if got := requestByID(t, f, request.ID).Status; got != domain.StatusPending {
		t.Errorf("expected status pending, got %s", got)
	}
	// Списанные при одобрении дни возвращены, повторное одобрение не
	// спишет их дважды
	if got := balanceFor(t, f, request.StartDate.Year()).VacationDays; got != 10 {
		t.Errorf("expected vacation balance 10 after reset, got %v", got)
	}

	if err := f.svc.Process(context.Background(), f.manager, request.ID, &dto.ProcessAbsenceRequest{Action: "approve"}); err != nil {
		t.Fatalf("second approve failed: %v", err)
	}
	if got := balanceFor(t, f, request.StartDate.Year()).VacationDays; got != 5 {
		t.Errorf("expected vacation balance 5 after re-approve, got %v", got)
	}
}

func TestUpdateStatus_ResetByEmployeeForbidden(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 7, 2, "vacation")
	if err := f.svc.Process(context.Background(), f.manager, request.ID, &dto.ProcessAbsenceRequest{Action: "reject"}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	err := f.svc.UpdateStatus(context.Background(), f.employee, request.ID, &dto.UpdateAbsenceStatusRequest{Status: "pending"})
	if err == nil || kindOf(t, err) != domain.KindAuthorization {
		t.Errorf("expected authorization error, got %v", err)
	}
}

func TestUpdateStatus_ApproveDispatch(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 7, 5, "vacation")

	err := f.svc.UpdateStatus(context.Background(), f.manager, request.ID, &dto.UpdateAbsenceStatusRequest{Status: "approved"})
	if err != nil {
		t.Fatalf("status update failed: %v", err)
	}

	if got := requestByID(t, f, request.ID).Status; got != domain.StatusApproved {
		t.Errorf("expected status approved, got %s", got)
	}
	if got := balanceFor(t, f, request.StartDate.Year()).VacationDays; got != 5 {
		t.Errorf("expected vacation balance 5, got %v", got)
	}
}

func TestGetByID_ScopedToOwner(t *testing.T) {
	f := setupEngine(t, false)

	request := submitRequest(t, f, 7, 2, "vacation")

	acc := &domain.Account{Username: "peer2", Password: "x", FullName: "Peer Two", Email: "peer2@example.com", Role: domain.RoleEmployee}
	if err := f.db.Create(acc).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	emp := &domain.Employee{AccountID: acc.ID, DepartmentID: 1, Status: "active"}
	if err := f.db.Create(emp).Error; err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
	ident := domain.Identity{AccountID: acc.ID, Role: domain.RoleEmployee, EmployeeID: &emp.ID, FullName: acc.FullName}

	if _, err := f.svc.GetByID(context.Background(), f.employee, request.ID); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
	if _, err := f.svc.GetByID(context.Background(), ident, request.ID); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Errorf("expected not found for foreign employee, got %v", err)
	}
	if _, err := f.svc.GetByID(context.Background(), f.manager, request.ID); err != nil {
		t.Errorf("manager lookup failed: %v", err)
	}
}

func TestList_RoleScope(t *testing.T) {
	f := setupEngine(t, false)

	submitRequest(t, f, 7, 2, "vacation")
	submitRequest(t, f, 14, 1, "personal")

	own, err := f.svc.List(context.Background(), f.employee, &dto.AbsenceListQuery{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(own) != 2 {
		t.Errorf("expected 2 requests for owner, got %d", len(own))
	}

	team, err := f.svc.List(context.Background(), f.manager, &dto.AbsenceListQuery{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(team) != 2 {
		t.Errorf("expected 2 requests for manager, got %d", len(team))
	}

	filtered, err := f.svc.List(context.Background(), f.admin, &dto.AbsenceListQuery{Type: "personal"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(filtered) != 1 {
		t.Errorf("expected 1 personal request, got %d", len(filtered))
	}
}
