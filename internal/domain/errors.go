package domain

// Kind — категория бизнес-ошибки, определяет HTTP-код в слое хендлеров
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindBusinessLogic
	KindAuthorization
)

// Error — ошибка предметной области с категорией
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation создаёт ошибку некорректного ввода
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFound создаёт ошибку отсутствующей сущности
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// BusinessLogic создаёт ошибку нарушения бизнес-правила
func BusinessLogic(msg string) *Error {
	return &Error{Kind: KindBusinessLogic, Message: msg}
}

// Authorization создаёт ошибку недостатка прав
func Authorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

// Определение типовых ошибок
var (
	ErrRequestNotFound      = NotFound("absence request not found")
	ErrBalanceNotFound      = NotFound("leave balance not found")
	ErrEmployeeNotFound     = NotFound("employee not found")
	ErrAccountNotFound      = NotFound("account not found")
	ErrDepartmentNotFound   = NotFound("department not found")
	ErrNotificationNotFound = NotFound("notification not found")
	ErrPolicyNotFound       = NotFound("absence policy not found")
)
