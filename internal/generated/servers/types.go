// Package servers holds the HTTP contract of orderflow: the wire types, the
// echo routing wrapper and the embedded OpenAPI document they are derived from.
// Keep the three in step with openapi.yaml.
package servers

import (
	"encoding/json"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Defines values for OrderStatus.
const (
	CANCELLED OrderStatus = "CANCELLED"
	COMPLETED OrderStatus = "COMPLETED"
	CREATED   OrderStatus = "CREATED"
)

// Defines values for SearchOrdersParamsSortBy.
const (
	CreatedAt    SearchOrdersParamsSortBy = "createdAt"
	CustomerName SearchOrdersParamsSortBy = "customerName"
	Price        SearchOrdersParamsSortBy = "price"
	ProductName  SearchOrdersParamsSortBy = "productName"
	Quantity     SearchOrdersParamsSortBy = "quantity"
	UpdatedAt    SearchOrdersParamsSortBy = "updatedAt"
)

// Error defines model for Error.
type Error struct {
	Code        int                `json:"code"`
	Error       string             `json:"error"`
	FieldErrors *map[string]string `json:"fieldErrors,omitempty"`
	Message     string             `json:"message"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	CustomerEmail *string         `json:"customerEmail,omitempty"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone *string         `json:"customerPhone,omitempty"`
	Price         decimal.Decimal `json:"price"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
}

// NotificationStats defines model for NotificationStats.
type NotificationStats struct {
	Attempts   int64 `json:"attempts"`
	Busy       int   `json:"busy"`
	Dispatched int64 `json:"dispatched"`
	Dropped    int64 `json:"dropped"`
	Failed     int64 `json:"failed"`
	Queued     int   `json:"queued"`
	Retries    int64 `json:"retries"`
	Scheduled  int64 `json:"scheduled"`
	Skipped    int64 `json:"skipped"`
	Succeeded  int64 `json:"succeeded"`
	Workers    int   `json:"workers"`
}

// Order defines model for Order.
type Order struct {
	CreatedAt     time.Time          `json:"createdAt"`
	CustomerEmail *string            `json:"customerEmail,omitempty"`
	CustomerName  string             `json:"customerName"`
	CustomerPhone *string            `json:"customerPhone,omitempty"`
	Id            openapi_types.UUID `json:"id"`
	Price         json.Number        `json:"price"`
	ProductName   string             `json:"productName"`
	Quantity      int                `json:"quantity"`
	Status        OrderStatus        `json:"status"`
	TotalValue    json.Number        `json:"totalValue"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// OrderPage defines model for OrderPage.
type OrderPage struct {
	Content       []Order `json:"content"`
	HasNext       bool    `json:"hasNext"`
	HasPrevious   bool    `json:"hasPrevious"`
	Page          int     `json:"page"`
	Size          int     `json:"size"`
	TotalElements int64   `json:"totalElements"`
	TotalPages    int     `json:"totalPages"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// StatusChange defines model for StatusChange.
type StatusChange struct {
	Status OrderStatus `json:"status"`
}

// SearchOrdersParams defines parameters for SearchOrders.
type SearchOrdersParams struct {
	CustomerName *string                   `form:"customerName,omitempty" json:"customerName,omitempty"`
	ProductName  *string                   `form:"productName,omitempty" json:"productName,omitempty"`
	Email        *string                   `form:"email,omitempty" json:"email,omitempty"`
	Status       *OrderStatus              `form:"status,omitempty" json:"status,omitempty"`
	Page         *int                      `form:"page,omitempty" json:"page,omitempty"`
	Size         *int                      `form:"size,omitempty" json:"size,omitempty"`
	SortBy       *SearchOrdersParamsSortBy `form:"sortBy,omitempty" json:"sortBy,omitempty"`
	SortDir      *string                   `form:"sortDir,omitempty" json:"sortDir,omitempty"`
}

// SearchOrdersParamsSortBy defines parameters for SearchOrders.
type SearchOrdersParamsSortBy string

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// ChangeOrderStatusJSONRequestBody defines body for ChangeOrderStatus for application/json ContentType.
type ChangeOrderStatusJSONRequestBody = StatusChange
