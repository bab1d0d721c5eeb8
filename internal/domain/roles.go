package domain

// Role — закрытый набор ролей учётных записей
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// ParseRole проверяет и приводит строку к роли
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleEmployee, RoleManager, RoleAdmin:
		return Role(s), nil
	}
	return "", Validation("unknown role")
}

// Privileged сообщает, имеет ли роль расширенные права (руководитель или
// администратор)
func (r Role) Privileged() bool {
	switch r {
	case RoleManager, RoleAdmin:
		return true
	case RoleEmployee:
		return false
	}
	return false
}

// Identity — аутентифицированный вызывающий. Заполняется middleware из
// учётной записи; движок сам никогда не аутентифицирует.
type Identity struct {
	AccountID  int64
	Role       Role
	EmployeeID *int64
	FullName   string
}

// Owns сообщает, принадлежит ли запись сотрудника вызывающему
func (i Identity) Owns(employeeID int64) bool {
	return i.EmployeeID != nil && *i.EmployeeID == employeeID
}
