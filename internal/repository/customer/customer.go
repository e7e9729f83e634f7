package customer

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/service/customer"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const customerColumns = "id, name, street, number, neighborhood, phone, created_at"

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, customerModify entities.CustomerModify) (int64, error) {
	query := `INSERT INTO customers (name, street, number, neighborhood, phone)
		VALUES ($1, $2, COALESCE($3, ''), COALESCE($4, ''), $5)
		RETURNING id`

	var id int64
	err := r.querier.QueryRow(
		ctx,
		query,
		customerModify.Name,
		customerModify.Street,
		customerModify.Number,
		customerModify.Neighborhood,
		phoneValue(customerModify.Phone),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("unexpected customer repository create error: %w", err)
	}

	return id, nil
}

func (r *Repository) Update(ctx context.Context, customerModify entities.CustomerModify) (*entities.Customer, error) {
	builder := qb.Update("customers")

	if customerModify.Name != nil {
		builder = builder.Set("name", *customerModify.Name)
	}
	if customerModify.Street != nil {
		builder = builder.Set("street", *customerModify.Street)
	}
	if customerModify.Number != nil {
		builder = builder.Set("number", *customerModify.Number)
	}
	if customerModify.Neighborhood != nil {
		builder = builder.Set("neighborhood", *customerModify.Neighborhood)
	}
	if customerModify.Phone != nil {
		builder = builder.Set("phone", phoneValue(customerModify.Phone))
	}

	query, args, err := builder.
		Where(sq.Eq{"id": customerModify.ID}).
		Suffix("RETURNING " + customerColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected customer repository update error: %w", err)
	}

	customerDB, err := scanCustomer(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("unexpected customer repository update error: %w", err)
	}

	return ToDomain(customerDB), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customerDB, err := scanCustomer(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("unexpected customer repository getbyid error: %w", err)
	}

	return ToDomain(customerDB), nil
}

func (r *Repository) GetAll(ctx context.Context) ([]entities.Customer, error) {
	rows, err := r.querier.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("unexpected customer repository getall error: %w", err)
	}
	defer rows.Close()

	customersDB := make([]CustomerDB, 0, 16)
	for rows.Next() {
		customerDB, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected customer repository getall error: %w", err)
		}
		customersDB = append(customersDB, *customerDB)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected customer repository getall error: %w", err)
	}

	return ToDomainList(customersDB), nil
}

// Delete - доставки клиента остаются, ссылка на него обнуляется.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("unexpected customer repository delete error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}

	return nil
}

func scanCustomer(row pgx.Row) (*CustomerDB, error) {
	var c CustomerDB
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Street,
		&c.Number,
		&c.Neighborhood,
		&c.Phone,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
