package http

import (
	"encoding/json"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/generated/servers"

	"github.com/samber/lo"
)

func toOrder(v queries.OrderView) servers.Order {
	return servers.Order{
		Id:            v.ID.Google(),
		CustomerName:  v.CustomerName,
		ProductName:   v.ProductName,
		Quantity:      v.Quantity,
		Price:         json.Number(v.Price.String()),
		TotalValue:    json.Number(v.TotalValue.String()),
		CustomerEmail: lo.EmptyableToPtr(v.Email),
		CustomerPhone: lo.EmptyableToPtr(v.Phone),
		Status:        servers.OrderStatus(v.Status.String()),
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}
