package notifier

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
)

// Payload is the JSON body posted to channel endpoints.
type Payload struct {
	OrderID       string       `json:"orderId"`
	CustomerName  string       `json:"customerName"`
	CustomerEmail string       `json:"customerEmail,omitempty"`
	CustomerPhone string       `json:"customerPhone,omitempty"`
	ProductName   string       `json:"productName"`
	Quantity      int          `json:"quantity"`
	Price         kernel.Money `json:"price"`
	TotalValue    kernel.Money `json:"totalValue"`
	Status        string       `json:"status"`
	OldStatus     string       `json:"oldStatus,omitempty"`
	EventType     string       `json:"eventType"`
	Message       string       `json:"message"`
	Timestamp     time.Time    `json:"timestamp"`
}

// NewPayload maps an event to its wire form. OldStatus is set for
// ORDER_STATUS_CHANGED events only.
func NewPayload(e notification.Event) Payload {
	p := Payload{
		OrderID:       e.OrderID().String(),
		CustomerName:  e.CustomerName(),
		CustomerEmail: e.CustomerEmail(),
		CustomerPhone: e.CustomerPhone(),
		ProductName:   e.ProductName(),
		Quantity:      e.Quantity(),
		Price:         e.Price(),
		TotalValue:    e.TotalValue(),
		Status:        e.Status().String(),
		EventType:     string(e.Type()),
		Message:       e.Message(),
		Timestamp:     e.Timestamp(),
	}
	if previous, ok := e.PreviousStatus(); ok {
		p.OldStatus = previous.String()
	}
	return p
}
