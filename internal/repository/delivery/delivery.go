package delivery

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/board"
	"dispatch/internal/service/customer"
	"dispatch/internal/service/delivery"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	deliveryColumns = "id, order_number, customer_id, customer_name, courier_id, payment_method, " +
		"subtotal, delivery_fee, status, created_at, departure_time, delivered_time, duration_seconds"

	courierFK  = "deliveries_courier_id_fkey"
	customerFK = "deliveries_customer_id_fkey"
)

// Repository обслуживает и CRUD доставок, и хранилище доски.
type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, deliveryModify entities.DeliveryModify) (*entities.Delivery, error) {
	modifyDB := FromDomainModify(&deliveryModify)

	query := `
		INSERT INTO deliveries (order_number, customer_id, customer_name, courier_id,
			payment_method, subtotal, delivery_fee, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + deliveryColumns

	deliveryDB, err := scanDelivery(r.querier.QueryRow(
		ctx,
		query,
		modifyDB.OrderNumber,
		modifyDB.CustomerID,
		modifyDB.CustomerName,
		modifyDB.CourierID,
		modifyDB.PaymentMethod,
		modifyDB.Subtotal,
		modifyDB.DeliveryFee,
		modifyDB.Status,
		modifyDB.CreatedAt,
	))
	if err != nil {
		if fkErr := foreignKeyError(err); fkErr != nil {
			return nil, fkErr
		}
		return nil, fmt.Errorf("unexpected delivery repository create error: %w", err)
	}

	return ToDomain(deliveryDB)
}

// List - доставки по фильтру, новые первыми.
func (r *Repository) List(ctx context.Context, filter entities.DeliveryFilter) ([]entities.Delivery, error) {
	builder := qb.
		Select(deliveryColumns).
		From("deliveries")

	if filter.CourierID != nil {
		builder = builder.Where(sq.Eq{"courier_id": *filter.CourierID})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		builder = builder.Where(sq.Eq{"status": statuses})
	}
	if filter.CreatedFrom != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *filter.CreatedFrom})
	}
	if filter.CreatedTo != nil {
		builder = builder.Where(sq.Lt{"created_at": *filter.CreatedTo})
	}

	query, args, err := builder.
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}

	return r.query(ctx, query, args...)
}

// ListDeliveries - полная выборка для доски.
func (r *Repository) ListDeliveries(ctx context.Context) ([]entities.Delivery, error) {
	return r.List(ctx, entities.DeliveryFilter{})
}

// UpdateStatus пишет только поля, которые изменил переход.
func (r *Repository) UpdateStatus(ctx context.Context, update entities.DeliveryStatusUpdate) (*entities.Delivery, error) {
	builder := qb.
		Update("deliveries").
		Set("status", update.Status.String())

	if update.DepartureTime != nil {
		builder = builder.Set("departure_time", *update.DepartureTime)
	}
	if update.DeliveredTime != nil {
		builder = builder.Set("delivered_time", *update.DeliveredTime)
	}
	if update.DurationSeconds != nil {
		builder = builder.Set("duration_seconds", *update.DurationSeconds)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": update.ID}).
		Suffix("RETURNING " + deliveryColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository update status error: %w", err)
	}

	deliveryDB, err := scanDelivery(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, board.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository update status error: %w", err)
	}

	return ToDomain(deliveryDB)
}

// Replace перезаписывает все поля кроме id и created_at.
func (r *Repository) Replace(ctx context.Context, d entities.Delivery) (*entities.Delivery, error) {
	deliveryDB := FromDomain(d)

	query, args, err := qb.
		Update("deliveries").
		SetMap(map[string]any{
			"order_number":     deliveryDB.OrderNumber,
			"customer_id":      deliveryDB.CustomerID,
			"customer_name":    deliveryDB.CustomerName,
			"courier_id":       deliveryDB.CourierID,
			"payment_method":   deliveryDB.PaymentMethod,
			"subtotal":         deliveryDB.Subtotal,
			"delivery_fee":     deliveryDB.DeliveryFee,
			"status":           deliveryDB.Status,
			"departure_time":   deliveryDB.DepartureTime,
			"delivered_time":   deliveryDB.DeliveredTime,
			"duration_seconds": deliveryDB.DurationSeconds,
		}).
		Where(sq.Eq{"id": deliveryDB.ID}).
		Suffix("RETURNING " + deliveryColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository replace error: %w", err)
	}

	replaced, err := scanDelivery(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, board.ErrDeliveryNotFound
		}
		if fkErr := foreignKeyError(err); fkErr != nil {
			return nil, fkErr
		}
		return nil, fmt.Errorf("unexpected delivery repository replace error: %w", err)
	}

	return ToDomain(replaced)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("unexpected delivery repository delete error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return delivery.ErrDeliveryNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, query string, args ...any) ([]entities.Delivery, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}
	defer rows.Close()

	deliveriesDB := make([]DeliveryDB, 0, 32)
	for rows.Next() {
		deliveryDB, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
		}
		deliveriesDB = append(deliveriesDB, *deliveryDB)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}

	return ToDomainList(deliveriesDB)
}

func foreignKeyError(err error) error {
	if !repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.ConstraintName {
		case courierFK:
			return delivery.ErrCourierNotFound
		case customerFK:
			return customer.ErrCustomerNotFound
		}
	}
	return fmt.Errorf("unexpected delivery reference error: %w", err)
}

func scanDelivery(row pgx.Row) (*DeliveryDB, error) {
	var d DeliveryDB
	err := row.Scan(
		&d.ID,
		&d.OrderNumber,
		&d.CustomerID,
		&d.CustomerName,
		&d.CourierID,
		&d.PaymentMethod,
		&d.Subtotal,
		&d.DeliveryFee,
		&d.Status,
		&d.CreatedAt,
		&d.DepartureTime,
		&d.DeliveredTime,
		&d.DurationSeconds,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
