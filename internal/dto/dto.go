package dto

import (
	"time"
)

// CreateAbsenceRequest - запрос на создание заявки на отсутствие
type CreateAbsenceRequest struct {
	StartDate        string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate          string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Type             string  `json:"type" validate:"required,oneof=vacation sick personal"`
	HasDocumentation bool    `json:"has_documentation"`
	Comments         *string `json:"comments" validate:"omitempty,max=1000"`
}

// UpdateAbsenceRequest - частичное обновление заявки (только pending)
type UpdateAbsenceRequest struct {
	StartDate        *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate          *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Type             *string `json:"type" validate:"omitempty,oneof=vacation sick personal"`
	HasDocumentation *bool   `json:"has_documentation"`
	Comments         *string `json:"comments" validate:"omitempty,max=1000"`
}

// ProcessAbsenceRequest - решение по заявке
type ProcessAbsenceRequest struct {
	Action   string  `json:"action" validate:"required,oneof=approve reject"`
	Comments *string `json:"comments" validate:"omitempty,max=1000"`
}

// UpdateAbsenceStatusRequest - прямая установка статуса заявки
type UpdateAbsenceStatusRequest struct {
	Status   string  `json:"status" validate:"required,oneof=pending approved rejected cancelled"`
	Comments *string `json:"comments" validate:"omitempty,max=1000"`
}

// AbsenceListQuery - фильтры списка заявок
type AbsenceListQuery struct {
	Status       string `validate:"omitempty,oneof=pending approved rejected cancelled"`
	Type         string `validate:"omitempty,oneof=vacation sick personal"`
	StartDate    string `validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `validate:"omitempty,datetime=2006-01-02"`
	EmployeeID   *int64 `validate:"omitempty,min=1"`
	DepartmentID *int64 `validate:"omitempty,min=1"`
}

// SetLeaveBalanceRequest - административная корректировка остатка.
// Отрицательные значения допустимы намеренно.
type SetLeaveBalanceRequest struct {
	Year         int     `json:"year" validate:"required,min=2000,max=2100"`
	VacationDays float64 `json:"vacation_days"`
	SickDays     float64 `json:"sick_days"`
	PersonalDays float64 `json:"personal_days"`
}

// LeaveBalanceSummary - остаток с использованием и лимитами политики
type LeaveBalanceSummary struct {
	EmployeeID int64         `json:"employee_id"`
	Year       int           `json:"year"`
	Balance    LeaveDays     `json:"balance"`
	Used       LeaveDays     `json:"used"`
	Remaining  LeaveDays     `json:"remaining"`
	Policy     *PolicyLimits `json:"policy,omitempty"`
}

// LeaveDays - дни по типам отсутствия
type LeaveDays struct {
	Vacation float64 `json:"vacation"`
	Sick     float64 `json:"sick"`
	Personal float64 `json:"personal"`
}

// PolicyLimits - лимиты политики подразделения
type PolicyLimits struct {
	MaxVacationDays int `json:"max_vacation_days"`
	MaxSickDays     int `json:"max_sick_days"`
	MaxPersonalDays int `json:"max_personal_days"`
}

// NotificationListQuery - фильтры входящих уведомлений
type NotificationListQuery struct {
	Status string `validate:"omitempty,oneof=unread read"`
	Limit  int    `validate:"min=1,max=100"`
	Offset int    `validate:"min=0"`
}

// CreateDepartmentRequest - запрос на создание подразделения
type CreateDepartmentRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=200"`
	ManagerID *int64  `json:"manager_id" validate:"omitempty,min=1"`
	Location  *string `json:"location" validate:"omitempty,max=200"`
}

// UpdateDepartmentRequest - запрос на обновление подразделения
type UpdateDepartmentRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	ManagerID *int64  `json:"manager_id" validate:"omitempty,min=1"`
	Location  *string `json:"location" validate:"omitempty,max=200"`
}

// CreateEmployeeRequest - запрос на создание сотрудника в подразделении
type CreateEmployeeRequest struct {
	AccountID int64   `json:"account_id" validate:"required,min=1"`
	Position  *string `json:"position" validate:"omitempty,max=200"`
	HireDate  *string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	ManagerID *int64  `json:"manager_id" validate:"omitempty,min=1"`
}

// Envelope - стандартный конверт ответа
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SubmittedAbsenceResponse - данные созданной заявки
type SubmittedAbsenceResponse struct {
	RequestID  int64  `json:"request_id"`
	Status     string `json:"status"`
	EmployeeID int64  `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Type       string `json:"type"`
}

// NotificationResponse - уведомление во входящих
type NotificationResponse struct {
	ID        int64      `json:"id"`
	RequestID *int64     `json:"request_id"`
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	Content   string     `json:"content"`
	SentDate  time.Time  `json:"sent_date"`
	ReadDate  *time.Time `json:"read_date,omitempty"`
}

// NotificationInbox - страница входящих с числом непрочитанных
type NotificationInbox struct {
	Count         int                    `json:"count"`
	UnreadCount   int64                  `json:"unread_count"`
	Notifications []NotificationResponse `json:"notifications"`
}

// DepartmentResponse - ответ с данными подразделения
type DepartmentResponse struct {
	ID            int64              `json:"id"`
	Name          string             `json:"name"`
	ManagerID     *int64             `json:"manager_id"`
	Location      *string            `json:"location"`
	EmployeeCount int                `json:"employee_count"`
	CreatedAt     time.Time          `json:"created_at"`
	Employees     []EmployeeResponse `json:"employees,omitempty"`
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID           int64     `json:"id"`
	AccountID    int64     `json:"account_id"`
	DepartmentID int64     `json:"department_id"`
	Position     *string   `json:"position"`
	HireDate     *string   `json:"hire_date,omitempty"`
	ManagerID    *int64    `json:"manager_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
