package account

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrWeakPassword          = errors.New("password too short")
	ErrInvalidUserID         = errors.New("invalid user id")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountPending     = errors.New("account is waiting for approval")
	ErrAccountRejected    = errors.New("account was rejected")
	ErrUserNotFound       = errors.New("user not found")
	ErrConflict           = errors.New("resource already exists")
	ErrForbidden          = errors.New("forbidden")
	ErrAlreadyDecided     = errors.New("account approval already decided")
	ErrInvalidResetToken  = errors.New("invalid reset token")
	ErrResetTokenExpired  = errors.New("reset token expired")
)
