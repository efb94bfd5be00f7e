package queries_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/pgtest"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type OrderQueriesIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	get      queries.GetOrderQueryHandler
	search   queries.SearchOrdersQueryHandler
}

func (suite *OrderQueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	database, err := pgtest.Start(ctx)
	suite.Require().NoError(err)
	suite.database = database

	suite.Require().NoError(postgres.Migrate(ctx, database.DB))
	suite.get = queries.NewGetOrderQueryHandler(database.DB)
	suite.search = queries.NewSearchOrdersQueryHandler(database.DB)
}

func (suite *OrderQueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *OrderQueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

type seed struct {
	customer string
	product  string
	quantity int
	price    string
	email    string
	status   order.Status
}

// seedOrders stores the orders one minute apart, oldest first.
func (suite *OrderQueriesIntegrationTestSuite) seedOrders(seeds ...seed) []*order.Order {
	repo := orderrepo.NewGormOrderRepository(suite.database.DB)
	stored := make([]*order.Order, 0, len(seeds))

	for i, s := range seeds {
		at := fixedNow.Add(time.Duration(i) * time.Minute)
		o, err := order.NewOrder(s.customer, s.product, s.quantity, kernel.MustMoney(s.price), s.email, "", at)
		suite.Require().NoError(err)
		if s.status != order.Created {
			_, err = o.TransitionTo(s.status, at.Add(time.Second))
			suite.Require().NoError(err)
		}
		suite.Require().NoError(repo.Add(context.Background(), o))
		stored = append(stored, o)
	}
	return stored
}

func (suite *OrderQueriesIntegrationTestSuite) defaultSeeds() []*order.Order {
	return suite.seedOrders(
		seed{"Jane Doe", "Laptop", 2, "999.99", "jane@example.com", order.Created},
		seed{"John Smith", "Phone", 1, "499.00", "john@example.org", order.Completed},
		seed{"Janet Jackson", "laptop stand", 3, "25.50", "", order.Cancelled},
		seed{"Bob 100%_Real", "Mouse", 5, "10.00", "bob@example.com", order.Created},
	)
}

func (suite *OrderQueriesIntegrationTestSuite) searchFor(filter queries.OrderFilter, page, size int, sortBy, sortDir string) queries.SearchOrdersResponse {
	q, err := queries.NewSearchOrdersQuery(filter, page, size, sortBy, sortDir)
	suite.Require().NoError(err)

	result, err := suite.search.Handle(context.Background(), q)
	suite.Require().NoError(err)
	return result
}

func customers(views []queries.OrderView) []string {
	return lo.Map(views, func(v queries.OrderView, _ int) string { return v.CustomerName })
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_ReturnsView() {
	stored := suite.defaultSeeds()
	q, err := queries.NewGetOrderQuery(stored[0].ID())
	suite.Require().NoError(err)

	view, err := suite.get.Handle(context.Background(), q)

	suite.Require().NoError(err)
	suite.True(view.ID.IsEqual(stored[0].ID()))
	suite.Equal("Jane Doe", view.CustomerName)
	suite.Equal("1999.98", view.TotalValue.String())
	suite.Equal("jane@example.com", view.Email)
	suite.Empty(view.Phone)
	suite.Equal(order.Created, view.Status)
	suite.True(stored[0].CreatedAt().Equal(view.CreatedAt))
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_NotFound() {
	q, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.get.Handle(context.Background(), q)

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_InvalidQuery() {
	_, err := suite.get.Handle(context.Background(), queries.GetOrderQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)
}

func (suite *OrderQueriesIntegrationTestSuite) TestSearch_EmptyDatabase() {
	result := suite.searchFor(queries.OrderFilter{}, 0, 0, "", "")

	suite.NotNil(result.Content)
	suite.Empty(result.Content)
	suite.Equal(int64(0), result.TotalElements)
	suite.Equal(0, result.TotalPages)
	suite.Equal(queries.DefaultPageSize, result.Size)
}

func (suite *OrderQueriesIntegrationTestSuite) TestSearch_DefaultsToNewestFirst() {
	suite.defaultSeeds()

	result := suite.searchFor(queries.OrderFilter{}, 0, 0, "", "")

	suite.Equal(int64(4), result.TotalElements)
	suite.Equal(1, result.TotalPages)
	suite.Equal([]string{"Bob 100%_Real", "Janet Jackson", "John Smith", "Jane Doe"}, customers(result.Content))
}

func (suite *OrderQueriesIntegrationTestSuite) TestSearch_Filters() {
	suite.defaultSeeds()

	testCases := []struct {
		name     string
		filter   queries.OrderFilter
		expected []string
	}{
		{"customer name is case-insensitive partial", queries.OrderFilter{CustomerName: "JAN"}, []string{"Jane Doe", "Janet Jackson"}},
		{"product name", queries.OrderFilter{ProductName: "laptop"}, []string{"Jane Doe", "Janet Jackson"}},
		{"email skips orders without one", queries.OrderFilter{Email: "example.com"}, []string{"Bob 100%_Real", "Jane Doe"}},
		{"status is exact", queries.OrderFilter{Status: lo.ToPtr(order.Completed)}, []string{"John Smith"}},
		{"filters combine", queries.OrderFilter{CustomerName: "jan", Status: lo.ToPtr(order.Cancelled)}, []string{"Janet Jackson"}},
		{"wildcards are literal", queries.OrderFilter{CustomerName: "%_"}, []string{"Bob 100%_Real"}},
		{"no match", queries.OrderFilter{CustomerName: "nobody"}, []string{}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			result := suite.searchFor(tc.filter, 0, 0, "customerName", "asc")

			suite.Equal(tc.expected, customers(result.Content))
			suite.Equal(int64(len(tc.expected)), result.TotalElements)
		})
	}
}

func (suite *OrderQueriesIntegrationTestSuite) TestSearch_SortByPriceAscending() {
	suite.defaultSeeds()

	result := suite.searchFor(queries.OrderFilter{}, 0, 0, "price", "asc")

	prices := lo.Map(result.Content, func(v queries.OrderView, _ int) string { return v.Price.String() })
	suite.Equal([]string{"10.00", "25.50", "499.00", "999.99"}, prices)
}

func (suite *OrderQueriesIntegrationTestSuite) TestSearch_Pagination() {
	suite.defaultSeeds()

	first := suite.searchFor(queries.OrderFilter{}, 0, 3, "createdAt", "asc")
	second := suite.searchFor(queries.OrderFilter{}, 1, 3, "createdAt", "asc")
	beyond := suite.searchFor(queries.OrderFilter{}, 5, 3, "createdAt", "asc")

	suite.Equal([]string{"Jane Doe", "John Smith", "Janet Jackson"}, customers(first.Content))
	suite.Equal(2, first.TotalPages)
	suite.True(first.HasNext())

	suite.Equal([]string{"Bob 100%_Real"}, customers(second.Content))
	suite.Equal(1, second.Page)
	suite.False(second.HasNext())
	suite.True(second.HasPrevious())

	suite.Empty(beyond.Content)
	suite.Equal(int64(4), beyond.TotalElements)
}

func (suite *OrderQueriesIntegrationTestSuite) TestSearch_ContextCancellation() {
	suite.defaultSeeds()
	q, err := queries.NewSearchOrdersQuery(queries.OrderFilter{}, 0, 0, "", "")
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = suite.search.Handle(ctx, q)
	suite.Require().Error(err)
}

func TestOrderQueriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(OrderQueriesIntegrationTestSuite))
}
