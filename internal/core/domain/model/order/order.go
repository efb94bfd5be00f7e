package order

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned by Validate for orders that did not come
// from NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the lifecycle.
//
// Invariants:
//   - customer and product names are non-blank
//   - quantity and price are positive
//   - email, when present, is a bare well-formed address
//   - updatedAt is never before createdAt
//   - status only moves along the transitions of Status
//
// The identity is zero until the store assigns it with AssignID, after which
// it never changes.
type Order struct {
	id           kernel.UUID
	customerName string
	productName  string
	quantity     int
	price        kernel.Money
	email        string
	phone        string
	status       Status
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewOrder builds a CREATED order with both timestamps set to now.
// All field errors are reported together.
func NewOrder(
	customerName, productName string,
	quantity int,
	price kernel.Money,
	email, phone string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Created,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setCustomerName(customerName),
		o.setProductName(productName),
		o.setQuantity(quantity),
		o.setPrice(price),
		o.setEmail(email),
		o.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds a persisted order and re-checks every invariant.
func RestoreOrder(
	id kernel.UUID,
	customerName, productName string,
	quantity int,
	price kernel.Money,
	email, phone string,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.AssignID(id),
		o.setCustomerName(customerName),
		o.setProductName(productName),
		o.setQuantity(quantity),
		o.setPrice(price),
		o.setEmail(email),
		o.setPhone(phone),
		o.setStatus(status),
		o.setTimestamps(createdAt, updatedAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && !o.id.IsZero() && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerName() string {
	return o.customerName
}

func (o *Order) ProductName() string {
	return o.productName
}

func (o *Order) Quantity() int {
	return o.quantity
}

// Price is the unit price.
func (o *Order) Price() kernel.Money {
	return o.price
}

// Email returns "" when the customer left no address.
func (o *Order) Email() string {
	return o.email
}

// Phone returns "" when the customer left no number.
func (o *Order) Phone() string {
	return o.phone
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TotalValue is price × quantity, computed on every call.
func (o *Order) TotalValue() kernel.Money {
	return o.price.Times(o.quantity)
}

// AssignID sets the identity chosen by the store. It succeeds once.
func (o *Order) AssignID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !o.id.IsZero() {
		return fmt.Errorf("%w: %s", ErrIDAlreadyAssigned, o.id)
	}
	o.id = id
	return nil
}

// TransitionTo moves the order to next and refreshes updatedAt. It returns the
// previous status. An illegal move returns *InvalidTransitionError and leaves
// the order untouched.
func (o *Order) TransitionTo(next Status, now time.Time) (Status, error) {
	previous := o.status

	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return previous, err
	}

	o.status = newStatus
	if now.After(o.updatedAt) {
		o.updatedAt = now
	}
	return previous, nil
}

// Complete is TransitionTo(Completed, now).
func (o *Order) Complete(now time.Time) error {
	_, err := o.TransitionTo(Completed, now)
	return err
}

// Cancel is TransitionTo(Cancelled, now).
func (o *Order) Cancel(now time.Time) error {
	_, err := o.TransitionTo(Cancelled, now)
	return err
}

func (o *Order) setCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = name
	return nil
}

func (o *Order) setProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	o.productName = name
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("price", err)
	}
	if !price.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is not greater than 0", price))
	}
	o.price = price
	return nil
}

func (o *Order) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" {
		if err := ValidateEmail(email); err != nil {
			return err
		}
	}
	o.email = email
	return nil
}

func (o *Order) setPhone(phone string) error {
	o.phone = strings.TrimSpace(phone)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setTimestamps(createdAt, updatedAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if updatedAt.Before(createdAt) {
		return errs.NewValueIsInvalidErrorWithCause("updatedAt",
			fmt.Errorf("%s is before createdAt %s", updatedAt.Format(time.RFC3339Nano), createdAt.Format(time.RFC3339Nano)))
	}
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	return nil
}

// ValidateEmail accepts a bare address such as "jane@example.com". Display
// names and angle brackets are rejected.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerEmail", err)
	}
	if addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("customerEmail", fmt.Errorf("%q is not a bare address", email))
	}
	return nil
}
