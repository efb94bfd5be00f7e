package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/notifier"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/core/application/notifications"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/jobs"
	"orderflow/internal/pkg/workerpool"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	pool       *workerpool.Pool
	dispatcher *notifications.Dispatcher
	jobManager *jobs.JobManager
	logger     *slog.Logger
}

// NewCompositionRoot builds the notification pipeline. Nothing is started
// until the router is served and StartJobs is called.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	channelConfigs, err := cfg.ChannelConfigs()
	if err != nil {
		return nil, fmt.Errorf("notification channels: %w", err)
	}

	pool, err := workerpool.New(cfg.Pool, logger)
	if err != nil {
		return nil, fmt.Errorf("worker pool: %w", err)
	}

	// Per attempt deadlines come from the channel send timeout.
	client := &http.Client{}
	bindings := make([]notifications.Binding, 0, len(channelConfigs))
	for _, channelConfig := range channelConfigs {
		channel, err := notifier.Build(channelConfig, client)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("channel %s: %w", channelConfig.Name, err), pool.Shutdown(context.Background()))
		}
		bindings = append(bindings, notifications.Binding{Config: channelConfig, Channel: channel})
	}

	dispatcher, err := notifications.NewDispatcher(pool, bindings, logger)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("dispatcher: %w", err), pool.Shutdown(context.Background()))
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		pool:       pool,
		dispatcher: dispatcher,
		jobManager: jobs.NewJobManager(dispatcher, cfg.StatsSchedule, logger),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.dispatcher, nil, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.dispatcher, nil, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSearchOrdersQueryHandler() queries.SearchOrdersQueryHandler {
	return queries.NewSearchOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) Dispatcher() *notifications.Dispatcher {
	return c.dispatcher
}

// NewRouter returns the echo instance with every API route registered.
func (c *CompositionRoot) NewRouter() (*echo.Echo, error) {
	createOrder := c.CreateCreateOrderCommandHandler()
	changeOrderStatus := c.CreateChangeOrderStatusCommandHandler()
	server := httpin.NewServer(
		&createOrder,
		&changeOrderStatus,
		c.CreateGetOrderQueryHandler(),
		c.CreateSearchOrdersQueryHandler(),
		c.dispatcher,
	)
	return httpin.NewRouter(server, c.logger)
}

func (c *CompositionRoot) StartJobs() error {
	return c.jobManager.StartAll()
}

// Shutdown stops the jobs, then drains the notification pool. Deliveries
// still queued when ctx ends are cancelled and ctx's error is returned.
func (c *CompositionRoot) Shutdown(ctx context.Context) error {
	c.jobManager.StopAll()

	var errList []error
	if err := c.pool.Shutdown(ctx); err != nil {
		errList = append(errList, fmt.Errorf("notification pool: %w", err))
	}
	if sqlDB, err := c.gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errList = append(errList, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errList...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
