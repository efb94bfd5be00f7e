package commands

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand is a validated request to place an order.
//
//	cmd, err := NewCreateOrderCommand("Jane Doe", "Laptop", 2, decimal.RequireFromString("999.99"), "jane@example.com", "")
//	if err != nil {
//	    return err // every invalid field is reported
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerName string
	productName  string
	quantity     int
	price        kernel.Money
	email        string
	phone        string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks names are non-blank, quantity and price are
// positive, and email, if given, is a bare address. Email and phone may be "".
func NewCreateOrderCommand(
	customerName, productName string,
	quantity int,
	price decimal.Decimal,
	email, phone string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerName(customerName),
		cmd.setProductName(productName),
		cmd.setQuantity(quantity),
		cmd.setPrice(price),
		cmd.setEmail(email),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.phone = strings.TrimSpace(phone)

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerName() string { return c.customerName }
func (c CreateOrderCommand) ProductName() string { return c.productName }
func (c CreateOrderCommand) Quantity() int { return c.quantity }
func (c CreateOrderCommand) Price() kernel.Money { return c.price }
func (c CreateOrderCommand) Email() string { return c.email }
func (c CreateOrderCommand) Phone() string { return c.phone }

func (c *CreateOrderCommand) setCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	c.customerName = name
	return nil
}

func (c *CreateOrderCommand) setProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	c.productName = name
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	c.quantity = quantity
	return nil
}

func (c *CreateOrderCommand) setPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return errs.NewValueIsOutOfRangeError("price", price.String(), "0.01", "unbounded")
	}
	money, err := kernel.NewMoney(price)
	if err != nil {
		return err
	}
	if !money.IsPositive() {
		return errs.NewValueIsOutOfRangeError("price", price.String(), "0.01", "unbounded")
	}
	c.price = money
	return nil
}

func (c *CreateOrderCommand) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" {
		if err := order.ValidateEmail(email); err != nil {
			return err
		}
	}
	c.email = email
	return nil
}
