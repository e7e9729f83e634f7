package customer

import (
	"context"
	"fmt"
	"strings"

	"dispatch/internal/entities"
)

type Customer struct {
	repository Repository
}

func New(repository Repository) *Customer {
	return &Customer{
		repository: repository,
	}
}

func (s *Customer) CreateCustomer(ctx context.Context, customerModify entities.CustomerModify) (int64, error) {
	if customerModify.Name == nil ||
		customerModify.Street == nil {
		return 0, ErrMissingRequiredFields
	}

	if err := validate(customerModify); err != nil {
		return 0, err
	}

	id, err := s.repository.Create(ctx, customerModify)
	if err != nil {
		return 0, fmt.Errorf("create customer: %w", err)
	}

	return id, nil
}

func (s *Customer) UpdateCustomer(ctx context.Context, customerModify entities.CustomerModify) (*entities.Customer, error) {
	if customerModify.ID == nil || *customerModify.ID <= 0 {
		return nil, ErrInvalidCustomerID
	}

	if customerModify.Name == nil &&
		customerModify.Street == nil &&
		customerModify.Number == nil &&
		customerModify.Neighborhood == nil &&
		customerModify.Phone == nil {
		return nil, fmt.Errorf("no fields to update: %w", ErrMissingRequiredFields)
	}

	if err := validate(customerModify); err != nil {
		return nil, err
	}

	customer, err := s.repository.Update(ctx, customerModify)
	if err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}

func (s *Customer) GetCustomer(ctx context.Context, id int64) (*entities.Customer, error) {
	if id <= 0 {
		return nil, ErrInvalidCustomerID
	}

	customer, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return customer, nil
}

func (s *Customer) GetCustomers(ctx context.Context) ([]entities.Customer, error) {
	customers, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}

	return customers, nil
}

// DeleteCustomer удаляет клиента. Доставки хранят копию имени и не меняются.
func (s *Customer) DeleteCustomer(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidCustomerID
	}

	err := s.repository.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return nil
}

func validate(customerModify entities.CustomerModify) error {
	if customerModify.Name != nil && !isValidName(*customerModify.Name) {
		return ErrInvalidName
	}

	if customerModify.Street != nil && strings.TrimSpace(*customerModify.Street) == "" {
		return ErrInvalidAddress
	}

	// пустая строка очищает телефон
	if customerModify.Phone != nil && *customerModify.Phone != "" && !isValidPhone(*customerModify.Phone) {
		return ErrInvalidPhone
	}

	return nil
}
