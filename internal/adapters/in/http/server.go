// Package http is the echo adapter: it binds the routes of the OpenAPI
// contract to command and query handlers and maps domain errors to HTTP.
package http

import (
	"context"
	"net/http"

	"orderflow/internal/core/application/notifications"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/samber/lo"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	ChangeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}

	SearchOrdersHandler interface {
		Handle(ctx context.Context, query queries.SearchOrdersQuery) (queries.SearchOrdersResponse, error)
	}

	StatsProvider interface {
		Stats() notifications.Stats
	}
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements servers.ServerInterface.
type Server struct {
	// Command handlers
	createOrderHandler       CreateOrderHandler
	changeOrderStatusHandler ChangeOrderStatusHandler

	// Query handlers
	getOrderHandler     GetOrderHandler
	searchOrdersHandler SearchOrdersHandler

	stats StatsProvider
}

func NewServer(
	createOrderHandler CreateOrderHandler,
	changeOrderStatusHandler ChangeOrderStatusHandler,
	getOrderHandler GetOrderHandler,
	searchOrdersHandler SearchOrdersHandler,
	stats StatsProvider,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		getOrderHandler:          getOrderHandler,
		searchOrdersHandler:      searchOrdersHandler,
		stats:                    stats,
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(
		body.CustomerName,
		body.ProductName,
		body.Quantity,
		body.Price,
		lo.FromPtr(body.CustomerEmail),
		lo.FromPtr(body.CustomerPhone),
	)
	if err != nil {
		return err
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toOrder(queries.NewOrderView(created)))
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrder(view))
}

// ChangeOrderStatus handles PUT /api/v1/orders/{id}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, id openapi_types.UUID) error {
	var body servers.ChangeOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return err
	}

	status, err := order.ParseStatus(string(body.Status))
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	if err != nil {
		return err
	}

	updated, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrder(queries.NewOrderView(updated)))
}

// SearchOrders handles GET /api/v1/orders/search.
func (s *Server) SearchOrders(ctx echo.Context, params servers.SearchOrdersParams) error {
	filter := queries.OrderFilter{
		CustomerName: lo.FromPtr(params.CustomerName),
		ProductName:  lo.FromPtr(params.ProductName),
		Email:        lo.FromPtr(params.Email),
	}
	if params.Status != nil {
		status, err := order.ParseStatus(string(*params.Status))
		if err != nil {
			return err
		}
		filter.Status = &status
	}

	query, err := queries.NewSearchOrdersQuery(
		filter,
		lo.FromPtr(params.Page),
		lo.FromPtr(params.Size),
		string(lo.FromPtr(params.SortBy)),
		lo.FromPtr(params.SortDir),
	)
	if err != nil {
		return err
	}

	result, err := s.searchOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.OrderPage{
		Content:       lo.Map(result.Content, func(v queries.OrderView, _ int) servers.Order { return toOrder(v) }),
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
		Page:          result.Page,
		Size:          result.Size,
		HasNext:       result.HasNext(),
		HasPrevious:   result.HasPrevious(),
	})
}

// GetNotificationStats handles GET /api/v1/notifications/stats.
func (s *Server) GetNotificationStats(ctx echo.Context) error {
	stats := s.stats.Stats()
	return ctx.JSON(http.StatusOK, servers.NotificationStats{
		Dispatched: stats.Dispatched,
		Scheduled:  stats.Scheduled,
		Skipped:    stats.Skipped,
		Dropped:    stats.Dropped,
		Succeeded:  stats.Succeeded,
		Failed:     stats.Failed,
		Attempts:   stats.Attempts,
		Retries:    stats.Retries,
		Workers:    stats.Workers,
		Busy:       stats.Busy,
		Queued:     stats.Queued,
	})
}
