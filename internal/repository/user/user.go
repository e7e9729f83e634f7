package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/account"
	"github.com/AlekSi/pointer"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const userColumns = "id, email, password_hash, full_name, role, courier_id, approval, " +
	"reset_token, reset_token_expires_at, created_at"

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, userModify entities.UserModify) (*entities.User, error) {
	var role, approval *string
	if userModify.Role != nil {
		role = pointer.To(userModify.Role.String())
	}
	if userModify.Approval != nil {
		approval = pointer.To(userModify.Approval.String())
	}

	query := `INSERT INTO users (email, password_hash, full_name, role, courier_id, approval)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	userDB, err := scanUser(r.querier.QueryRow(
		ctx,
		query,
		userModify.Email,
		userModify.PasswordHash,
		userModify.FullName,
		role,
		userModify.CourierID,
		approval,
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, account.ErrConflict
		}
		return nil, fmt.Errorf("unexpected user repository create error: %w", err)
	}

	return ToDomain(userDB)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	return r.getBy(ctx, sq.Eq{"id": id})
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.getBy(ctx, sq.Eq{"email": email})
}

func (r *Repository) GetByResetToken(ctx context.Context, token string) (*entities.User, error) {
	return r.getBy(ctx, sq.Eq{"reset_token": token})
}

func (r *Repository) Update(ctx context.Context, userModify entities.UserModify) (*entities.User, error) {
	builder := qb.Update("users")

	if userModify.Email != nil {
		builder = builder.Set("email", *userModify.Email)
	}
	if userModify.PasswordHash != nil {
		builder = builder.Set("password_hash", *userModify.PasswordHash)
	}
	if userModify.FullName != nil {
		builder = builder.Set("full_name", *userModify.FullName)
	}
	if userModify.Role != nil {
		builder = builder.Set("role", userModify.Role.String())
	}
	if userModify.CourierID != nil {
		builder = builder.Set("courier_id", *userModify.CourierID)
	}
	if userModify.Approval != nil {
		builder = builder.Set("approval", userModify.Approval.String())
	}

	switch {
	case userModify.ClearResetToken:
		builder = builder.
			Set("reset_token", nil).
			Set("reset_token_expires_at", nil)
	case userModify.ResetToken != nil:
		builder = builder.
			Set("reset_token", *userModify.ResetToken).
			Set("reset_token_expires_at", userModify.ResetTokenExpiresAt)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": userModify.ID}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected user repository update error: %w", err)
	}

	userDB, err := scanUser(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrUserNotFound
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, account.ErrConflict
		}
		return nil, fmt.Errorf("unexpected user repository update error: %w", err)
	}

	return ToDomain(userDB)
}

// ClearExpiredResetTokens стирает токены сброса, истекшие раньше before.
func (r *Repository) ClearExpiredResetTokens(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := qb.Update("users").
		Set("reset_token", nil).
		Set("reset_token_expires_at", nil).
		Where(sq.Lt{"reset_token_expires_at": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected user repository cleanup error: %w", err)
	}

	tag, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("unexpected user repository cleanup error: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *Repository) getBy(ctx context.Context, where sq.Eq) (*entities.User, error) {
	query, args, err := qb.
		Select(userColumns).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected user repository get error: %w", err)
	}

	userDB, err := scanUser(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrUserNotFound
		}
		return nil, fmt.Errorf("unexpected user repository get error: %w", err)
	}

	return ToDomain(userDB)
}

func scanUser(row pgx.Row) (*UserDB, error) {
	var u UserDB
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.Role,
		&u.CourierID,
		&u.Approval,
		&u.ResetToken,
		&u.ResetTokenExpiresAt,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
