package queries

import (
	"context"

	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when no order has the id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var rows []orderRow
	err := h.db.WithContext(ctx).
		Raw(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, query.ID().Google()).
		Scan(&rows).Error
	if err != nil {
		return OrderView{}, err
	}

	if len(rows) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("id", query.ID())
	}

	return rows[0].toView()
}
