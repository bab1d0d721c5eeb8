package domain

import (
	"time"
)

// AbsenceType — тип отсутствия
type AbsenceType string

const (
	AbsenceVacation AbsenceType = "vacation"
	AbsenceSick     AbsenceType = "sick"
	AbsencePersonal AbsenceType = "personal"
)

// ParseAbsenceType проверяет и приводит строку к типу отсутствия
func ParseAbsenceType(s string) (AbsenceType, error) {
	switch AbsenceType(s) {
	case AbsenceVacation, AbsenceSick, AbsencePersonal:
		return AbsenceType(s), nil
	}
	return "", Validation("invalid absence type")
}

// RequestStatus — статус заявки на отсутствие
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
)

// ParseRequestStatus проверяет и приводит строку к статусу заявки
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return RequestStatus(s), nil
	}
	return "", Validation("invalid status")
}

// NotificationType — тип уведомления
type NotificationType string

const (
	NotificationApprovalRequest  NotificationType = "approval_request"
	NotificationRequestApproved  NotificationType = "request_approved"
	NotificationRequestRejected  NotificationType = "request_rejected"
	NotificationRequestCancelled NotificationType = "request_cancelled"
)

// NotificationStatus — статус прочтения уведомления
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

// Account представляет учётную запись пользователя
type Account struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string     `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"type:varchar(200);not null"`
	FullName  string     `json:"full_name" gorm:"type:varchar(200);not null"`
	Email     string     `json:"email" gorm:"type:varchar(200);uniqueIndex;not null"`
	Phone     *string    `json:"phone" gorm:"type:varchar(50)"`
	Role      Role       `json:"role" gorm:"type:varchar(20);not null"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Account) TableName() string {
	return "accounts"
}

// Department представляет подразделение организации
type Department struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string    `json:"name" gorm:"type:varchar(200);not null"`
	ManagerID     *int64    `json:"manager_id" gorm:"index"`
	PolicyID      *int64    `json:"policy_id"`
	Location      *string   `json:"location" gorm:"type:varchar(200)"`
	EmployeeCount int       `json:"employee_count" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Manager   *Account   `json:"-" gorm:"foreignKey:ManagerID"`
	Employees []Employee `json:"employees,omitempty" gorm:"foreignKey:DepartmentID"`
}

// TableName задаёт имя таблицы для GORM
func (Department) TableName() string {
	return "departments"
}

// Employee представляет сотрудника. ManagerID ссылается на учётную запись
// руководителя (accounts.id), не на запись сотрудника.
type Employee struct {
	ID           int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	AccountID    int64      `json:"account_id" gorm:"not null;index"`
	DepartmentID int64      `json:"department_id" gorm:"not null;index"`
	Position     *string    `json:"position" gorm:"type:varchar(200)"`
	HireDate     *time.Time `json:"hire_date" gorm:"type:date"`
	ManagerID    *int64     `json:"manager_id" gorm:"index"`
	Status       string     `json:"status" gorm:"type:varchar(20);default:active"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Account    *Account    `json:"-" gorm:"foreignKey:AccountID"`
	Department *Department `json:"-" gorm:"foreignKey:DepartmentID"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// LeaveBalance — остаток дней отпуска сотрудника за год.
// Значения могут быть отрицательными: административные корректировки и
// одобрение конкурирующих заявок не блокируются движком (см. DESIGN.md).
type LeaveBalance struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID   int64     `json:"employee_id" gorm:"not null;uniqueIndex:idx_balance_employee_year"`
	Year         int       `json:"year" gorm:"not null;uniqueIndex:idx_balance_employee_year"`
	VacationDays float64   `json:"vacation_days" gorm:"default:0"`
	SickDays     float64   `json:"sick_days" gorm:"default:0"`
	PersonalDays float64   `json:"personal_days" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName задаёт имя таблицы для GORM
func (LeaveBalance) TableName() string {
	return "leave_balances"
}

// Days возвращает остаток по типу отсутствия
func (b *LeaveBalance) Days(t AbsenceType) float64 {
	switch t {
	case AbsenceVacation:
		return b.VacationDays
	case AbsenceSick:
		return b.SickDays
	case AbsencePersonal:
		return b.PersonalDays
	}
	return 0
}

// AbsencePolicy — политика отсутствий подразделения (только чтение для движка)
type AbsencePolicy struct {
	ID                         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	DepartmentID               *int64    `json:"department_id" gorm:"index"`
	MinDaysNotice              int       `json:"min_days_notice" gorm:"default:0"`
	MaxConsecutiveDays         int       `json:"max_consecutive_days" gorm:"default:30"`
	ApprovalRequired           bool      `json:"approval_required" gorm:"default:true"`
	DocumentationRequiredAfter int       `json:"documentation_required_after" gorm:"default:3"`
	MaxSickDays                int       `json:"max_sick_days" gorm:"default:10"`
	MaxVacationDays            int       `json:"max_vacation_days" gorm:"default:20"`
	MaxPersonalDays            int       `json:"max_personal_days" gorm:"default:3"`
	CreatedAt                  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt                  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName задаёт имя таблицы для GORM
func (AbsencePolicy) TableName() string {
	return "absence_policies"
}

// AbsenceRequest — заявка на отсутствие. Движок никогда не удаляет заявки
// физически: отмена — это переход статуса.
type AbsenceRequest struct {
	ID               int64         `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID       int64         `json:"employee_id" gorm:"not null;index"`
	StartDate        time.Time     `json:"start_date" gorm:"type:date;not null"`
	EndDate          time.Time     `json:"end_date" gorm:"type:date;not null"`
	Type             AbsenceType   `json:"type" gorm:"type:varchar(20);not null"`
	Status           RequestStatus `json:"status" gorm:"type:varchar(20);default:pending;index"`
	HasDocumentation bool          `json:"has_documentation" gorm:"default:false"`
	Comments         *string       `json:"comments"`
	SubmissionTime   time.Time     `json:"submission_time" gorm:"autoCreateTime"`
	CreatedAt        time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	Employee *Employee `json:"-" gorm:"foreignKey:EmployeeID"`
}

// TableName задаёт имя таблицы для GORM
func (AbsenceRequest) TableName() string {
	return "absence_requests"
}

// InclusiveDays возвращает число календарных дней заявки, включая обе границы
func (r *AbsenceRequest) InclusiveDays() int {
	return InclusiveDays(r.StartDate, r.EndDate)
}

// InclusiveDays считает календарные дни между датами, включая обе границы
func InclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// AbsenceRegistry — денормализованная запись реестра согласований, 1:1 с
// заявкой. Инвариант: ApprovalStatus всегда равен статусу заявки после любой
// успешной транзакции.
type AbsenceRegistry struct {
	ID               int64         `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestID        int64         `json:"request_id" gorm:"not null;uniqueIndex"`
	EmployeeID       int64         `json:"employee_id" gorm:"not null;index"`
	ManagerID        *int64        `json:"manager_id"`
	CreationDate     time.Time     `json:"creation_date" gorm:"type:date;not null"`
	ModificationDate *time.Time    `json:"modification_date" gorm:"type:date"`
	ApprovalStatus   RequestStatus `json:"approval_status" gorm:"type:varchar(20);default:pending"`
	NotificationSent bool          `json:"notification_sent" gorm:"default:false"`
	CreatedAt        time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName задаёт имя таблицы для GORM
func (AbsenceRegistry) TableName() string {
	return "absence_registry"
}

// Notification — уведомление в адрес учётной записи
type Notification struct {
	ID          int64              `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestID   *int64             `json:"request_id" gorm:"index"`
	RecipientID int64              `json:"recipient_id" gorm:"not null;index"`
	Type        NotificationType   `json:"type" gorm:"type:varchar(50);not null"`
	Status      NotificationStatus `json:"status" gorm:"type:varchar(20);default:unread"`
	SentDate    time.Time          `json:"sent_date" gorm:"autoCreateTime"`
	ReadDate    *time.Time         `json:"read_date"`
	Content     string             `json:"content"`
	CreatedAt   time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Notification) TableName() string {
	return "notifications"
}

// AbsenceRequestDetails — заявка с данными сотрудника и подразделения для
// чтения списков и карточки заявки
type AbsenceRequestDetails struct {
	ID                int64          `json:"id"`
	EmployeeID        int64          `json:"employee_id"`
	EmployeeAccountID int64          `json:"employee_account_id"`
	EmployeeName      string         `json:"employee_name"`
	EmployeeEmail     string         `json:"employee_email,omitempty"`
	StartDate         time.Time      `json:"start_date"`
	EndDate           time.Time      `json:"end_date"`
	Type              AbsenceType    `json:"type"`
	Status            RequestStatus  `json:"status"`
	HasDocumentation  bool           `json:"has_documentation"`
	Comments          *string        `json:"comments"`
	SubmissionTime    time.Time      `json:"submission_time"`
	DepartmentID      int64          `json:"department_id"`
	DepartmentName    string         `json:"department_name"`
	ApprovalStatus    *RequestStatus `json:"approval_status,omitempty"`
	ManagerID         *int64         `json:"manager_id,omitempty"`
}
