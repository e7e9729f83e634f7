package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/entities"
	"github.com/google/uuid"
)

type Account struct {
	repository     Repository
	courierService CourierService
	hasher         PasswordHasher
	tokens         TokenIssuer
	notifier       ResetNotifier
	txManager      TxManager
	clock          Clock
	resetTTL       time.Duration
}

func New(
	repository Repository,
	courierService CourierService,
	hasher PasswordHasher,
	tokens TokenIssuer,
	notifier ResetNotifier,
	txManager TxManager,
	clock Clock,
	resetTTL time.Duration,
) *Account {
	return &Account{
		repository:     repository,
		courierService: courierService,
		hasher:         hasher,
		tokens:         tokens,
		notifier:       notifier,
		txManager:      txManager,
		clock:          clock,
		resetTTL:       resetTTL,
	}
}

// Login проверяет пароль и выдает токен. Курьер входит только после одобрения.
func (a *Account) Login(ctx context.Context, email, password string) (*entities.AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrMissingRequiredFields
	}

	user, err := a.repository.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !a.hasher.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	switch user.Approval {
	case entities.ApprovalPending:
		return nil, ErrAccountPending
	case entities.ApprovalRejected:
		return nil, ErrAccountRejected
	}

	session := entities.Session{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		CourierID: user.CourierID,
	}

	token, expiresAt, err := a.tokens.Issue(session)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &entities.AuthResult{
		Session:   session,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Register - самостоятельная регистрация курьера, аккаунт ждет одобрения менеджера.
func (a *Account) Register(ctx context.Context, registration entities.UserRegistration) (*entities.User, error) {
	email := normalizeEmail(registration.Email)
	fullName := strings.TrimSpace(registration.FullName)

	if email == "" || registration.Password == "" || fullName == "" {
		return nil, ErrMissingRequiredFields
	}
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !isValidPassword(registration.Password) {
		return nil, ErrWeakPassword
	}

	hash, err := a.hasher.Hash(registration.Password)
	if err != nil {
		return nil, err
	}

	role := entities.RoleCourier
	approval := entities.ApprovalPending
	user, err := a.repository.Create(ctx, entities.UserModify{
		Email:        &email,
		PasswordHash: &hash,
		FullName:     &fullName,
		Role:         &role,
		Approval:     &approval,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Approve одобряет курьера: в одной транзакции заводится карточка курьера
// и привязывается к аккаунту.
func (a *Account) Approve(ctx context.Context, session entities.Session, userID int64) (*entities.User, error) {
	if !session.IsManager() {
		return nil, ErrForbidden
	}
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	var approved *entities.User
	err := a.txManager.Do(ctx, func(ctx context.Context) error {
		user, err := a.pendingUser(ctx, userID)
		if err != nil {
			return err
		}

		courierID := user.CourierID
		if courierID == nil {
			id, err := a.courierService.CreateCourier(ctx, entities.CourierModify{
				Name:  &user.FullName,
				Email: &user.Email,
			})
			if err != nil {
				return fmt.Errorf("create courier: %w", err)
			}
			courierID = &id
		}

		status := entities.ApprovalApproved
		approved, err = a.repository.Update(ctx, entities.UserModify{
			ID:        &user.ID,
			Approval:  &status,
			CourierID: courierID,
		})
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return approved, nil
}

func (a *Account) Reject(ctx context.Context, session entities.Session, userID int64) (*entities.User, error) {
	if !session.IsManager() {
		return nil, ErrForbidden
	}
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	var rejected *entities.User
	err := a.txManager.Do(ctx, func(ctx context.Context) error {
		user, err := a.pendingUser(ctx, userID)
		if err != nil {
			return err
		}

		status := entities.ApprovalRejected
		rejected, err = a.repository.Update(ctx, entities.UserModify{
			ID:       &user.ID,
			Approval: &status,
		})
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rejected, nil
}

func (a *Account) pendingUser(ctx context.Context, userID int64) (*entities.User, error) {
	user, err := a.repository.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.Approval != entities.ApprovalPending {
		return nil, ErrAlreadyDecided
	}
	return user, nil
}

// RequestPasswordReset выпускает одноразовый токен. Для неизвестного email
// ничего не происходит, чтобы по ответу нельзя было проверить наличие аккаунта.
func (a *Account) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !isValidEmail(email) {
		return ErrInvalidEmail
	}

	user, err := a.repository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("get user: %w", err)
	}

	token := uuid.NewString()
	expiresAt := a.clock.Now().UTC().Add(a.resetTTL)

	_, err = a.repository.Update(ctx, entities.UserModify{
		ID:                  &user.ID,
		ResetToken:          &token,
		ResetTokenExpiresAt: &expiresAt,
	})
	if err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	err = a.notifier.NotifyPasswordReset(ctx, entities.PasswordReset{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return fmt.Errorf("notify password reset: %w", err)
	}

	return nil
}

func (a *Account) ResetPassword(ctx context.Context, token, newPassword string) error {
	if _, err := uuid.Parse(token); err != nil {
		return ErrInvalidResetToken
	}
	if !isValidPassword(newPassword) {
		return ErrWeakPassword
	}

	user, err := a.repository.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("get user: %w", err)
	}

	if user.ResetTokenExpiresAt == nil || !a.clock.Now().Before(*user.ResetTokenExpiresAt) {
		return ErrResetTokenExpired
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	_, err = a.repository.Update(ctx, entities.UserModify{
		ID:              &user.ID,
		PasswordHash:    &hash,
		ClearResetToken: true,
	})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

// CleanupExpiredResetTokens стирает токены, истекшие больше resetTTL назад.
// Недавно истекший токен остается, чтобы на него отвечать ErrResetTokenExpired.
func (a *Account) CleanupExpiredResetTokens(ctx context.Context) (int64, error) {
	before := a.clock.Now().UTC().Add(-a.resetTTL)

	affected, err := a.repository.ClearExpiredResetTokens(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("clear expired reset tokens: %w", err)
	}

	return affected, nil
}

// EnsureManager заводит первого менеджера при старте, если его еще нет.
func (a *Account) EnsureManager(ctx context.Context, email, password, fullName string) error {
	email = normalizeEmail(email)
	if !isValidEmail(email) {
		return ErrInvalidEmail
	}
	if !isValidPassword(password) {
		return ErrWeakPassword
	}

	_, err := a.repository.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return fmt.Errorf("get user: %w", err)
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return err
	}

	role := entities.RoleManager
	approval := entities.ApprovalApproved
	_, err = a.repository.Create(ctx, entities.UserModify{
		Email:        &email,
		PasswordHash: &hash,
		FullName:     &fullName,
		Role:         &role,
		Approval:     &approval,
	})
	if err != nil && !errors.Is(err, ErrConflict) {
		return fmt.Errorf("create manager: %w", err)
	}

	return nil
}
