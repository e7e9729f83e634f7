package entities

import (
	"time"
)

type RoleType string

const (
	RoleManager RoleType = "manager"
	RoleCourier RoleType = "courier"
)

func (r RoleType) String() string {
	return string(r)
}

type ApprovalType string

const (
	ApprovalPending  ApprovalType = "pending"
	ApprovalApproved ApprovalType = "approved"
	ApprovalRejected ApprovalType = "rejected"
)

func (a ApprovalType) String() string {
	return string(a)
}

type User struct {
	ID                  int64
	Email               string
	PasswordHash        string
	FullName            string
	Role                RoleType
	CourierID           *int64
	Approval            ApprovalType
	ResetToken          *string
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
}

type UserModify struct {
	ID                  *int64
	Email               *string
	PasswordHash        *string
	FullName            *string
	Role                *RoleType
	CourierID           *int64
	Approval            *ApprovalType
	ResetToken          *string
	ResetTokenExpiresAt *time.Time
	// ClearResetToken обнуляет токен сброса пароля после использования.
	ClearResetToken bool
}

type UserRegistration struct {
	Email    string
	Password string
	FullName string
}

// Session - аутентифицированный пользователь запроса.
// Передается явно в сервисы, которым нужна роль.
type Session struct {
	UserID    int64
	Email     string
	FullName  string
	Role      RoleType
	CourierID *int64
}

func (s Session) IsManager() bool {
	return s.Role == RoleManager
}

// AuthResult - успешный вход: сессия и подписанный токен.
type AuthResult struct {
	Session   Session
	Token     string
	ExpiresAt time.Time
}

// PasswordReset - запрос на сброс пароля, уходит в очередь уведомлений.
type PasswordReset struct {
	UserID    int64
	Email     string
	Token     string
	ExpiresAt time.Time
}
