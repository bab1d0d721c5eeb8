package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/absence-management-api/internal/domain"
	"github.com/absence-management-api/internal/dto"
	"github.com/absence-management-api/internal/repository"
	"gorm.io/gorm"
)

// AbsenceService — движок жизненного цикла заявок на отсутствие.
// Переходы статусов:
//
//	(нет)    --submit-->  pending
//	pending  --update-->  pending
//	pending  --approve--> approved   (руководитель/админ)
//	pending  --reject-->  rejected   (руководитель/админ)
//	pending  --cancel-->  cancelled  (владелец или привилегированный)
//	approved --cancel-->  cancelled  (только до даты начала)
//
// Все мутации заявки, реестра и остатка в рамках одной операции выполняются
// в одной транзакции; уведомления отправляются после коммита и не влияют на
// результат операции.
type AbsenceService interface {
	Submit(ctx context.Context, ident domain.Identity, req *dto.CreateAbsenceRequest) (*domain.AbsenceRequest, error)
	List(ctx context.Context, ident domain.Identity, query *dto.AbsenceListQuery) ([]domain.AbsenceRequestDetails, error)
	GetByID(ctx context.Context, ident domain.Identity, id int64) (*domain.AbsenceRequestDetails, error)
	Update(ctx context.Context, ident domain.Identity, id int64, req *dto.UpdateAbsenceRequest) error
	Cancel(ctx context.Context, ident domain.Identity, id int64) error
	Process(ctx context.Context, ident domain.Identity, id int64, req *dto.ProcessAbsenceRequest) error
	UpdateStatus(ctx context.Context, ident domain.Identity, id int64, req *dto.UpdateAbsenceStatusRequest) error
}

type absenceService struct {
	db       *gorm.DB
	notifier Notifier
	logger   *slog.Logger

	// restoreOnCancel: возвращать ли списанные дни при отмене одобренной
	// заявки (см. DESIGN.md, открытый вопрос №1)
	restoreOnCancel bool
}

// NewAbsenceService создаёт новый экземпляр движка
func NewAbsenceService(db *gorm.DB, notifier Notifier, logger *slog.Logger, restoreOnCancel bool) AbsenceService {
	return &absenceService{
		db:              db,
		notifier:        notifier,
		logger:          logger,
		restoreOnCancel: restoreOnCancel,
	}
}

func (s *absenceService) Submit(ctx context.Context, ident domain.Identity, req *dto.CreateAbsenceRequest) (*domain.AbsenceRequest, error) {
	if ident.Role != domain.RoleEmployee || ident.EmployeeID == nil {
		return nil, domain.Authorization("only employees can create absence requests")
	}
	employeeID := *ident.EmployeeID

	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, domain.Validation("start date must be before end date")
	}
	absenceType, err := domain.ParseAbsenceType(req.Type)
	if err != nil {
		return nil, err
	}
	days := domain.InclusiveDays(start, end)

	// Валидация остатка по текущему году. Остаток не резервируется:
	// конкурирующие заявки могут совместно превысить его (DESIGN.md, №2).
	balance, err := repository.NewLeaveBalanceRepository(s.db).Get(ctx, employeeID, time.Now().Year())
	if err != nil {
		return nil, err
	}
	if balance.Days(absenceType) < float64(days) {
		return nil, domain.BusinessLogic(fmt.Sprintf("insufficient %s day balance", absenceType))
	}

	employee, err := repository.NewEmployeeRepository(s.db).GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	request := &domain.AbsenceRequest{
		EmployeeID:       employeeID,
		StartDate:        start,
		EndDate:          end,
		Type:             absenceType,
		Status:           domain.StatusPending,
		HasDocumentation: req.HasDocumentation,
		Comments:         req.Comments,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewAbsenceRequestRepository(tx).Create(ctx, request); err != nil {
			return err
		}
		registry := &domain.AbsenceRegistry{
			RequestID:      request.ID,
			EmployeeID:     employeeID,
			ManagerID:      employee.ManagerID,
			CreationDate:   today(),
			ApprovalStatus: domain.StatusPending,
		}
		return repository.NewRegistryRepository(tx).Create(ctx, registry)
	})
	if err != nil {
		return nil, err
	}

	if employee.ManagerID != nil {
		content := fmt.Sprintf("New absence request from %s", ident.FullName)
		s.notify(ctx, *employee.ManagerID, domain.NotificationApprovalRequest, content, &request.ID)
	}

	return request, nil
}

func (s *absenceService) List(ctx context.Context, ident domain.Identity, query *dto.AbsenceListQuery) ([]domain.AbsenceRequestDetails, error) {
	filter := roleScope(ident)

	if query.Status != "" {
		filter.Status = domain.RequestStatus(query.Status)
	}
	if query.Type != "" {
		filter.Type = domain.AbsenceType(query.Type)
	}
	if query.StartDate != "" {
		from, err := parseDate(query.StartDate)
		if err != nil {
			return nil, err
		}
		filter.StartFrom = &from
	}
	if query.EndDate != "" {
		to, err := parseDate(query.EndDate)
		if err != nil {
			return nil, err
		}
		filter.EndTo = &to
	}
	if query.EmployeeID != nil && ident.Role.Privileged() {
		filter.EmployeeID = query.EmployeeID
	}
	if query.DepartmentID != nil && ident.Role == domain.RoleAdmin {
		filter.DepartmentID = query.DepartmentID
	}

	return repository.NewAbsenceRequestRepository(s.db).List(ctx, filter)
}

func (s *absenceService) GetByID(ctx context.Context, ident domain.Identity, id int64) (*domain.AbsenceRequestDetails, error) {
	return repository.NewAbsenceRequestRepository(s.db).GetDetails(ctx, id, roleScope(ident))
}

func (s *absenceService) Update(ctx context.Context, ident domain.Identity, id int64, req *dto.UpdateAbsenceRequest) error {
	request, err := repository.NewAbsenceRequestRepository(s.db).GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnership(ident, request.EmployeeID); err != nil {
		return err
	}
	if request.Status != domain.StatusPending {
		return domain.BusinessLogic("only pending requests can be updated")
	}

	fields := map[string]any{}

	if req.StartDate != nil && req.EndDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			return err
		}
		end, err := parseDate(*req.EndDate)
		if err != nil {
			return err
		}
		if start.After(end) {
			return domain.Validation("start date must be before end date")
		}
		fields["start_date"] = start
		fields["end_date"] = end
	} else if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			return err
		}
		fields["start_date"] = start
	} else if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			return err
		}
		fields["end_date"] = end
	}

	if req.Type != nil {
		absenceType, err := domain.ParseAbsenceType(*req.Type)
		if err != nil {
			return err
		}
		fields["type"] = absenceType
	}
	if req.HasDocumentation != nil {
		fields["has_documentation"] = *req.HasDocumentation
	}
	if req.Comments != nil {
		fields["comments"] = *req.Comments
	}

	if len(fields) == 0 {
		return domain.Validation("no updates provided")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewAbsenceRequestRepository(tx).UpdateFields(ctx, id, fields); err != nil {
			return err
		}
		return repository.NewRegistryRepository(tx).Touch(ctx, id)
	})
}

func (s *absenceService) Cancel(ctx context.Context, ident domain.Identity, id int64) error {
	request, err := repository.NewAbsenceRequestRepository(s.db).GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnership(ident, request.EmployeeID); err != nil {
		return err
	}
	if request.Status == domain.StatusCancelled {
		return domain.BusinessLogic("request is already cancelled")
	}
	if request.Status == domain.StatusApproved && !request.StartDate.After(today()) {
		return domain.BusinessLogic("cannot cancel an approved request that has already started")
	}

	wasApproved := request.Status == domain.StatusApproved

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := repository.NewAbsenceRequestRepository(tx).SetStatusIf(ctx, id, request.Status, domain.StatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return domain.BusinessLogic("request status has changed, please retry")
		}
		if err := repository.NewRegistryRepository(tx).SetStatus(ctx, id, domain.StatusCancelled); err != nil {
			return err
		}
		if wasApproved && s.restoreOnCancel {
			days := float64(request.InclusiveDays())
			return repository.NewLeaveBalanceRepository(tx).Credit(ctx, request.EmployeeID, request.StartDate.Year(), request.Type, days)
		}
		return nil
	})
	if err != nil {
		return err
	}

	employee, err := repository.NewEmployeeRepository(s.db).GetByID(ctx, request.EmployeeID)
	if err == nil && employee.ManagerID != nil {
		s.notify(ctx, *employee.ManagerID, domain.NotificationRequestCancelled,
			"An absence request has been cancelled", &id)
	}

	return nil
}

func (s *absenceService) Process(ctx context.Context, ident domain.Identity, id int64, req *dto.ProcessAbsenceRequest) error {
	if req.Action != "approve" && req.Action != "reject" {
		return domain.Validation(`action must be either "approve" or "reject"`)
	}
	switch ident.Role {
	case domain.RoleManager, domain.RoleAdmin:
	case domain.RoleEmployee:
		return domain.Authorization("only managers and administrators can process absence requests")
	default:
		return domain.Authorization("only managers and administrators can process absence requests")
	}

	request, err := repository.NewAbsenceRequestRepository(s.db).GetByID(ctx, id)
	if err != nil {
		return err
	}
	employee, err := repository.NewEmployeeRepository(s.db).GetByID(ctx, request.EmployeeID)
	if err != nil {
		return err
	}
	// Руководитель обрабатывает только заявки своих подчинённых; проверка
	// дублируется здесь независимо от слоя маршрутов.
	if ident.Role == domain.RoleManager {
		if employee.ManagerID == nil || *employee.ManagerID != ident.AccountID {
			return domain.Authorization("request is outside your team")
		}
	}
	if request.Status != domain.StatusPending {
		return domain.BusinessLogic(fmt.Sprintf("cannot %s a request that is not pending", req.Action))
	}

	newStatus := domain.StatusApproved
	if req.Action == "reject" {
		newStatus = domain.StatusRejected
	}
	days := request.InclusiveDays()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Конкурирующий вызов Process по той же заявке увидит здесь ноль
		// затронутых строк и откатится.
		ok, err := repository.NewAbsenceRequestRepository(tx).SetStatusIf(ctx, id, domain.StatusPending, newStatus)
		if err != nil {
			return err
		}
		if !ok {
			return domain.BusinessLogic(fmt.Sprintf("cannot %s a request that is not pending", req.Action))
		}
		if err := repository.NewRegistryRepository(tx).SetStatus(ctx, id, newStatus); err != nil {
			return err
		}
		if newStatus == domain.StatusApproved {
			return repository.NewLeaveBalanceRepository(tx).Debit(ctx, request.EmployeeID, request.StartDate.Year(), request.Type, float64(days))
		}
		return nil
	})
	if err != nil {
		return err
	}

	if newStatus == domain.StatusApproved {
		s.notify(ctx, employee.AccountID, domain.NotificationRequestApproved,
			"Your absence request has been approved", &id)
	} else {
		content := "Your absence request has been rejected"
		if req.Comments != nil && *req.Comments != "" {
			content += ": " + *req.Comments
		}
		s.notify(ctx, employee.AccountID, domain.NotificationRequestRejected, content, &id)
	}

	return nil
}

func (s *absenceService) UpdateStatus(ctx context.Context, ident domain.Identity, id int64, req *dto.UpdateAbsenceStatusRequest) error {
	status, err := domain.ParseRequestStatus(req.Status)
	if err != nil {
		return err
	}

	switch status {
	case domain.StatusApproved:
		return s.Process(ctx, ident, id, &dto.ProcessAbsenceRequest{Action: "approve", Comments: req.Comments})
	case domain.StatusRejected:
		return s.Process(ctx, ident, id, &dto.ProcessAbsenceRequest{Action: "reject", Comments: req.Comments})
	case domain.StatusCancelled:
		return s.Cancel(ctx, ident, id)
	case domain.StatusPending:
		return s.reopen(ctx, ident, id)
	}
	return domain.Validation("invalid status")
}

// reopen возвращает заявку в статус pending. Если заявка была одобрена,
// списанные дни возвращаются в той же транзакции — иначе повторное одобрение
// списало бы их дважды.
func (s *absenceService) reopen(ctx context.Context, ident domain.Identity, id int64) error {
	if !ident.Role.Privileged() {
		return domain.Authorization("only managers and administrators can reopen requests")
	}

	request, err := repository.NewAbsenceRequestRepository(s.db).GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ident.Role == domain.RoleManager {
		employee, err := repository.NewEmployeeRepository(s.db).GetByID(ctx, request.EmployeeID)
		if err != nil {
			return err
		}
		if employee.ManagerID == nil || *employee.ManagerID != ident.AccountID {
			return domain.Authorization("request is outside your team")
		}
	}
	if request.Status == domain.StatusPending {
		return domain.BusinessLogic("request is already pending")
	}

	wasApproved := request.Status == domain.StatusApproved

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := repository.NewAbsenceRequestRepository(tx).SetStatusIf(ctx, id, request.Status, domain.StatusPending)
		if err != nil {
			return err
		}
		if !ok {
			return domain.BusinessLogic("request status has changed, please retry")
		}
		if err := repository.NewRegistryRepository(tx).SetStatus(ctx, id, domain.StatusPending); err != nil {
			return err
		}
		if wasApproved {
			days := float64(request.InclusiveDays())
			return repository.NewLeaveBalanceRepository(tx).Credit(ctx, request.EmployeeID, request.StartDate.Year(), request.Type, days)
		}
		return nil
	})
}

// notify отправляет уведомление после коммита; сбой доставки понижается до
// предупреждения и не влияет на результат операции
func (s *absenceService) notify(ctx context.Context, recipientID int64, t domain.NotificationType, content string, requestID *int64) {
	if err := s.notifier.Notify(ctx, recipientID, t, content, requestID); err != nil {
		s.logger.Warn("notification delivery failed",
			slog.Int64("recipient_id", recipientID),
			slog.String("type", string(t)),
			slog.Any("error", err),
		)
		return
	}
	if requestID != nil {
		if err := repository.NewRegistryRepository(s.db).MarkNotificationSent(ctx, *requestID); err != nil {
			s.logger.Warn("failed to mark notification as sent",
				slog.Int64("request_id", *requestID),
				slog.Any("error", err),
			)
		}
	}
}

// roleScope возвращает фильтр видимости заявок для роли вызывающего
func roleScope(ident domain.Identity) repository.AbsenceFilter {
	var filter repository.AbsenceFilter
	switch ident.Role {
	case domain.RoleEmployee:
		accountID := ident.AccountID
		filter.AccountID = &accountID
	case domain.RoleManager:
		managerID := ident.AccountID
		filter.ManagerID = &managerID
	case domain.RoleAdmin:
	}
	return filter
}

// requireOwnership: сотрудник изменяет только собственные заявки,
// привилегированные роли — любые
func requireOwnership(ident domain.Identity, employeeID int64) error {
	switch ident.Role {
	case domain.RoleEmployee:
		if !ident.Owns(employeeID) {
			return domain.Authorization("you do not have permission to modify this request")
		}
		return nil
	case domain.RoleManager, domain.RoleAdmin:
		return nil
	}
	return domain.Authorization("unknown role")
}

// parseDate разбирает дату формата YYYY-MM-DD в UTC без времени
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, domain.Validation("invalid date format")
	}
	return t, nil
}

// today возвращает текущую дату без времени
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
