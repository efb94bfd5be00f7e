// Package orderrepo maps order aggregates to the orders table.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row shape of the orders table. Optional contact fields are
// NULL rather than "" so they stay out of email searches.
type OrderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerName string          `gorm:"type:varchar(255);not null;index"`
	ProductName  string          `gorm:"type:varchar(255);not null"`
	Quantity     int             `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Email        *string         `gorm:"type:varchar(320);index"`
	Phone        *string         `gorm:"type:varchar(64)"`
	Status       string          `gorm:"type:varchar(16);not null;index"`
	CreatedAt    time.Time       `gorm:"not null;index"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:           o.ID().Google(),
		CustomerName: o.CustomerName(),
		ProductName:  o.ProductName(),
		Quantity:     o.Quantity(),
		Price:        o.Price().Decimal(),
		Email:        lo.EmptyableToPtr(o.Email()),
		Phone:        lo.EmptyableToPtr(o.Phone()),
		Status:       o.Status().String(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

// ToDomain rebuilds the aggregate from a row. Read models reuse it so that a
// corrupt row fails the same way everywhere.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.CustomerName,
		dto.ProductName,
		dto.Quantity,
		price,
		lo.FromPtr(dto.Email),
		lo.FromPtr(dto.Phone),
		status,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}
