package delivery

import (
	"context"
	"fmt"
	"strings"

	"dispatch/internal/entities"
)

type Delivery struct {
	repository      Repository
	customerService CustomerService
	board           Board
	txManager       TxManager
	clock           Clock
}

func New(
	repository Repository,
	customerService CustomerService,
	board Board,
	txManager TxManager,
	clock Clock,
) *Delivery {
	return &Delivery{
		repository:      repository,
		customerService: customerService,
		board:           board,
		txManager:       txManager,
		clock:           clock,
	}
}

// CreateDelivery регистрирует заказ в статусе awaiting. Имя клиента копируется
// в доставку, чтобы история пережила удаление клиента.
func (d *Delivery) CreateDelivery(ctx context.Context, deliveryModify entities.DeliveryModify) (*entities.Delivery, error) {
	if deliveryModify.OrderNumber == nil ||
		deliveryModify.CustomerID == nil ||
		deliveryModify.CourierID == nil ||
		deliveryModify.PaymentMethod == nil ||
		deliveryModify.Subtotal == nil ||
		deliveryModify.DeliveryFee == nil {
		return nil, ErrMissingRequiredFields
	}

	if !isValidOrderNumber(*deliveryModify.OrderNumber) {
		return nil, ErrInvalidOrderNumber
	}
	if *deliveryModify.CustomerID <= 0 {
		return nil, ErrInvalidCustomerID
	}
	if *deliveryModify.CourierID <= 0 {
		return nil, ErrInvalidCourierID
	}
	if !isValidPaymentMethod(*deliveryModify.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}
	if !isValidAmount(*deliveryModify.Subtotal) || !isValidAmount(*deliveryModify.DeliveryFee) {
		return nil, ErrInvalidAmount
	}

	orderNumber := strings.TrimSpace(*deliveryModify.OrderNumber)
	status := entities.DeliveryAwaiting
	createdAt := d.clock.Now().UTC()

	deliveryModify.ID = nil
	deliveryModify.OrderNumber = &orderNumber
	deliveryModify.Status = &status
	deliveryModify.CreatedAt = &createdAt

	var created *entities.Delivery
	err := d.txManager.DoReadCommitted(ctx, func(ctx context.Context) error {
		customer, err := d.customerService.GetCustomer(ctx, *deliveryModify.CustomerID)
		if err != nil {
			return fmt.Errorf("get customer: %w", err)
		}
		deliveryModify.CustomerName = &customer.Name

		created, err = d.repository.Create(ctx, deliveryModify)
		if err != nil {
			return fmt.Errorf("create delivery: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// ReplaceDelivery - ручная правка менеджером, запись заменяется целиком.
// Без CustomerName имя берется из карточки клиента.
func (d *Delivery) ReplaceDelivery(ctx context.Context, edited entities.Delivery) (*entities.Delivery, error) {
	if edited.ID <= 0 {
		return nil, ErrInvalidDeliveryID
	}
	if !isValidOrderNumber(edited.OrderNumber) {
		return nil, ErrInvalidOrderNumber
	}
	if edited.CourierID <= 0 {
		return nil, ErrInvalidCourierID
	}
	if !isValidPaymentMethod(edited.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}
	if !isValidStatus(edited.Status) {
		return nil, ErrInvalidStatus
	}
	if !isValidAmount(edited.Subtotal) || !isValidAmount(edited.DeliveryFee) {
		return nil, ErrInvalidAmount
	}
	if !isValidTimestamps(edited) {
		return nil, ErrInvalidTimestamps
	}

	if edited.CustomerName == "" {
		if edited.CustomerID <= 0 {
			return nil, ErrInvalidCustomerID
		}
		customer, err := d.customerService.GetCustomer(ctx, edited.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("get customer: %w", err)
		}
		edited.CustomerName = customer.Name
	}

	replaced, err := d.board.Replace(ctx, edited)
	if err != nil {
		return nil, fmt.Errorf("replace delivery: %w", err)
	}

	return replaced, nil
}

func (d *Delivery) GetDeliveries(ctx context.Context, filter entities.DeliveryFilter) ([]entities.Delivery, error) {
	if filter.CreatedFrom != nil && filter.CreatedTo != nil && !filter.CreatedFrom.Before(*filter.CreatedTo) {
		return nil, ErrInvalidPeriod
	}

	for _, status := range filter.Statuses {
		if !isValidStatus(status) {
			return nil, ErrInvalidStatus
		}
	}

	deliveries, err := d.repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}

	return deliveries, nil
}

// DeleteDelivery - жесткое удаление, доска узнает о нем из уведомления.
func (d *Delivery) DeleteDelivery(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidDeliveryID
	}

	err := d.repository.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}

	return nil
}
