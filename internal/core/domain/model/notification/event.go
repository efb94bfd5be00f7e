package notification

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// EventType names the lifecycle mutation an Event reports.
type EventType string

const (
	OrderCreated       EventType = "ORDER_CREATED"
	OrderStatusChanged EventType = "ORDER_STATUS_CHANGED"
)

var ErrEventIsNotConstructed = errors.New("Event must be created via NewOrderCreatedEvent or NewOrderStatusChangedEvent")

const (
	createdMessage   = "Your order has been created successfully"
	completedMessage = "Your order has been completed successfully"
	cancelledMessage = "Your order has been cancelled"
)

// Event is a snapshot of an order's notifiable fields taken right after a
// committed mutation. It is never modified after construction, so any number
// of delivery units may read it concurrently.
type Event struct {
	eventType      EventType
	orderID        kernel.UUID
	customerName   string
	customerEmail  string
	customerPhone  string
	productName    string
	quantity       int
	price          kernel.Money
	totalValue     kernel.Money
	status         order.Status
	previousStatus order.Status
	message        string
	timestamp      time.Time
}

// NewOrderCreatedEvent snapshots a freshly persisted order.
func NewOrderCreatedEvent(o *order.Order) (Event, error) {
	if err := validatePersisted(o); err != nil {
		return Event{}, err
	}
	e := snapshot(o)
	e.eventType = OrderCreated
	e.message = createdMessage
	return e, nil
}

// NewOrderStatusChangedEvent snapshots an order right after it moved away from previous.
func NewOrderStatusChangedEvent(o *order.Order, previous order.Status) (Event, error) {
	if err := validatePersisted(o); err != nil {
		return Event{}, err
	}
	if err := previous.Validate(); err != nil {
		return Event{}, fmt.Errorf("previous status: %w", err)
	}
	e := snapshot(o)
	e.eventType = OrderStatusChanged
	e.previousStatus = previous
	e.message = StatusMessage(o.Status())
	return e, nil
}

// StatusMessage is the customer facing text for a status change.
func StatusMessage(status order.Status) string {
	switch status {
	case order.Completed:
		return completedMessage
	case order.Cancelled:
		return cancelledMessage
	default:
		return "Your order status has been updated to " + status.String()
	}
}

func validatePersisted(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return o.ID().Validate()
}

func snapshot(o *order.Order) Event {
	return Event{
		orderID:       o.ID(),
		customerName:  o.CustomerName(),
		customerEmail: o.Email(),
		customerPhone: o.Phone(),
		productName:   o.ProductName(),
		quantity:      o.Quantity(),
		price:         o.Price(),
		totalValue:    o.TotalValue(),
		status:        o.Status(),
		timestamp:     o.UpdatedAt(),
	}
}

// Validate rejects the zero Event.
func (e Event) Validate() error {
	if e.eventType == "" {
		return ErrEventIsNotConstructed
	}
	return nil
}

func (e Event) Type() EventType { return e.eventType }
func (e Event) OrderID() kernel.UUID { return e.orderID }
func (e Event) CustomerName() string { return e.customerName }
func (e Event) CustomerEmail() string { return e.customerEmail }
func (e Event) CustomerPhone() string { return e.customerPhone }
func (e Event) ProductName() string { return e.productName }
func (e Event) Quantity() int { return e.quantity }
func (e Event) Price() kernel.Money { return e.price }
func (e Event) TotalValue() kernel.Money { return e.totalValue }
func (e Event) Status() order.Status { return e.status }
func (e Event) Message() string { return e.message }
func (e Event) Timestamp() time.Time { return e.timestamp }

// PreviousStatus is set for ORDER_STATUS_CHANGED events only.
func (e Event) PreviousStatus() (order.Status, bool) {
	return e.previousStatus, e.previousStatus != order.Unknown
}

func (e Event) String() string {
	return fmt.Sprintf("%s order=%s status=%s", e.eventType, e.orderID, e.status)
}
