// Package queries contains the read side: lookups and searches that bypass
// the aggregate and read the orders table directly.
package queries

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderView is the read model returned by every order query.
type OrderView struct {
	ID           kernel.UUID
	CustomerName string
	ProductName  string
	Quantity     int
	Price        kernel.Money
	TotalValue   kernel.Money
	Email        string
	Phone        string
	Status       order.Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewOrderView projects an aggregate, for callers that already hold one.
func NewOrderView(o *order.Order) OrderView {
	return OrderView{
		ID:           o.ID(),
		CustomerName: o.CustomerName(),
		ProductName:  o.ProductName(),
		Quantity:     o.Quantity(),
		Price:        o.Price(),
		TotalValue:   o.TotalValue(),
		Email:        o.Email(),
		Phone:        o.Phone(),
		Status:       o.Status(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

const orderColumns = `
	id,
	customer_name,
	product_name,
	quantity,
	price,
	COALESCE(email, '') AS email,
	COALESCE(phone, '') AS phone,
	status,
	created_at,
	updated_at`

type orderRow struct {
	ID           uuid.UUID
	CustomerName string
	ProductName  string
	Quantity     int
	Price        decimal.Decimal
	Email        string
	Phone        string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r orderRow) toView() (OrderView, error) {
	id, err := kernel.UUIDFromGoogle(r.ID)
	if err != nil {
		return OrderView{}, err
	}

	price, err := kernel.NewMoney(r.Price)
	if err != nil {
		return OrderView{}, err
	}

	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderView{}, err
	}

	return OrderView{
		ID:           id,
		CustomerName: r.CustomerName,
		ProductName:  r.ProductName,
		Quantity:     r.Quantity,
		Price:        price,
		TotalValue:   price.Times(r.Quantity),
		Email:        r.Email,
		Phone:        r.Phone,
		Status:       status,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}, nil
}
