package courier

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/courier"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const courierColumns = "id, name, email, latitude, longitude, position_updated_at, created_at, updated_at"

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, courierModifyEntity entities.CourierModify) (int64, error) {
	courierModifyModel := FromDomainModify(&courierModifyEntity)
	query := `INSERT INTO couriers (name, email)
		VALUES ($1, $2)
		RETURNING id`

	var id int64
	err := r.querier.QueryRow(
		ctx,
		query,
		courierModifyModel.Name,
		courierModifyModel.Email,
	).Scan(&id)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return 0, courier.ErrConflict
		}
		return 0, fmt.Errorf("unexpected courier repository create error: %w", err)
	}

	return id, nil
}

func (r *Repository) Update(ctx context.Context, courierModifyEntity entities.CourierModify) (*entities.Courier, error) {
	courierModifyModel := FromDomainModify(&courierModifyEntity)

	builder := qb.
		Update("couriers")

	// опциональные поля
	if courierModifyModel.Name != nil {
		builder = builder.Set("name", courierModifyModel.Name)
	}
	if courierModifyModel.Email != nil {
		builder = builder.Set("email", courierModifyModel.Email)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": courierModifyModel.ID}).
		Suffix("RETURNING " + courierColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository update error: %w", err)
	}

	courierModel, err := scanCourier(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, courier.ErrCourierNotFound
		}

		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, courier.ErrConflict
		}

		return nil, fmt.Errorf("unexpected courier repository update error: %w", err)
	}

	return ToDomain(courierModel), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Courier, error) {
	query := `SELECT ` + courierColumns + `
		FROM couriers
		WHERE id = $1`

	courierModel, err := scanCourier(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, courier.ErrCourierNotFound
		}

		return nil, fmt.Errorf("unexpected courier repository getbyid error: %w", err)
	}

	return ToDomain(courierModel), nil
}

func (r *Repository) GetAll(ctx context.Context) ([]entities.Courier, error) {
	query := `
	SELECT ` + courierColumns + `
	FROM couriers
	ORDER BY name, id`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository getall error: %w", err)
	}
	defer rows.Close()

	courierModels := make([]CourierDB, 0, 8)
	for rows.Next() {
		courierModel, err := scanCourier(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected courier repository getall error: %w", err)
		}
		courierModels = append(courierModels, *courierModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository getall error: %w", err)
	}

	return ToDomainList(courierModels), nil
}

// Delete удаляет курьера. Если за ним числятся доставки, база
// не даст удалить строку по внешнему ключу.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM couriers WHERE id = $1`, id)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return courier.ErrCourierHasDeliveries
		}
		return fmt.Errorf("unexpected courier repository delete error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return courier.ErrCourierNotFound
	}

	return nil
}

// UpdatePosition не трогает updated_at: это время правки карточки, а не трекинга.
// Точка старше уже сохраненной игнорируется, сообщения из очереди могут прийти не по порядку.
func (r *Repository) UpdatePosition(ctx context.Context, position entities.CourierPosition) error {
	query, args, err := qb.
		Update("couriers").
		Set("latitude", position.Latitude).
		Set("longitude", position.Longitude).
		Set("position_updated_at", position.ReportedAt).
		Where(sq.Eq{"id": position.CourierID}).
		Where(sq.Or{
			sq.Eq{"position_updated_at": nil},
			sq.Lt{"position_updated_at": position.ReportedAt},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected courier repository update position error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected courier repository update position error: %w", err)
	}

	if result.RowsAffected() > 0 {
		return nil
	}

	// ноль строк: либо курьера нет, либо точка устарела
	var exists bool
	err = r.querier.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM couriers WHERE id = $1)`, position.CourierID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("unexpected courier repository update position error: %w", err)
	}
	if !exists {
		return courier.ErrCourierNotFound
	}

	return nil
}

func scanCourier(row pgx.Row) (*CourierDB, error) {
	var courierModel CourierDB
	err := row.Scan(
		&courierModel.ID,
		&courierModel.Name,
		&courierModel.Email,
		&courierModel.Latitude,
		&courierModel.Longitude,
		&courierModel.PositionUpdatedAt,
		&courierModel.CreatedAt,
		&courierModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &courierModel, nil
}
