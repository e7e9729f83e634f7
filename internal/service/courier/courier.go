package courier

import (
	"context"
	"fmt"

	"dispatch/internal/entities"
)

type Courier struct {
	repository Repository
	publisher  PositionPublisher
	clock      Clock
}

func New(repository Repository, publisher PositionPublisher, clock Clock) *Courier {
	return &Courier{
		repository: repository,
		publisher:  publisher,
		clock:      clock,
	}
}

func (s *Courier) CreateCourier(ctx context.Context, courierModify entities.CourierModify) (int64, error) {
	if courierModify.Name == nil ||
		courierModify.Email == nil {
		return 0, ErrMissingRequiredFields
	}

	if !isValidName(*courierModify.Name) {
		return 0, ErrInvalidName
	}

	if !isValidEmail(*courierModify.Email) {
		return 0, ErrInvalidEmail
	}

	email := normalizeEmail(*courierModify.Email)
	courierModify.Email = &email

	id, err := s.repository.Create(ctx, courierModify)
	if err != nil {
		return 0, fmt.Errorf("create courier: %w", err)
	}

	return id, nil
}

func (s *Courier) UpdateCourier(ctx context.Context, courierModify entities.CourierModify) (*entities.Courier, error) {
	if courierModify.ID == nil || *courierModify.ID <= 0 {
		return nil, ErrInvalidCourierID
	}

	if courierModify.Name == nil &&
		courierModify.Email == nil {
		return nil, fmt.Errorf("no fields to update: %w", ErrMissingRequiredFields)
	}

	if courierModify.Name != nil && !isValidName(*courierModify.Name) {
		return nil, ErrInvalidName
	}

	if courierModify.Email != nil {
		if !isValidEmail(*courierModify.Email) {
			return nil, ErrInvalidEmail
		}
		email := normalizeEmail(*courierModify.Email)
		courierModify.Email = &email
	}

	courier, err := s.repository.Update(ctx, courierModify)
	if err != nil {
		return nil, fmt.Errorf("failed to update courier: %w", err)
	}

	return courier, nil
}

func (s *Courier) GetCourier(ctx context.Context, id int64) (*entities.Courier, error) {
	if id <= 0 {
		return nil, ErrInvalidCourierID
	}

	courier, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get courier: %w", err)
	}

	return courier, nil
}

func (s *Courier) GetCouriers(ctx context.Context) ([]entities.Courier, error) {
	couriers, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get couriers: %w", err)
	}

	return couriers, nil
}

// DeleteCourier удаляет курьера без доставок. С доставками - ErrCourierHasDeliveries.
func (s *Courier) DeleteCourier(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidCourierID
	}

	err := s.repository.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete courier: %w", err)
	}

	return nil
}

// ReportPosition принимает точку с устройства курьера и отдает ее в очередь.
func (s *Courier) ReportPosition(ctx context.Context, position entities.CourierPosition) error {
	if position.CourierID <= 0 {
		return ErrInvalidCourierID
	}

	if !isValidPosition(position.Latitude, position.Longitude) {
		return ErrInvalidPosition
	}

	if position.ReportedAt.IsZero() {
		position.ReportedAt = s.clock.Now().UTC()
	}

	err := s.publisher.PublishPosition(ctx, position)
	if err != nil {
		return fmt.Errorf("publish courier position: %w", err)
	}

	return nil
}

// SavePosition сохраняет точку, пришедшую из очереди.
func (s *Courier) SavePosition(ctx context.Context, position entities.CourierPosition) error {
	if position.CourierID <= 0 {
		return ErrInvalidCourierID
	}

	if !isValidPosition(position.Latitude, position.Longitude) {
		return ErrInvalidPosition
	}

	err := s.repository.UpdatePosition(ctx, position)
	if err != nil {
		return fmt.Errorf("save courier position: %w", err)
	}

	return nil
}
