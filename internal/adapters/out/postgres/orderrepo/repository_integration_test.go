package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/pgtest"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	database, err := pgtest.Start(ctx)
	suite.Require().NoError(err)
	suite.database = database

	suite.Require().NoError(postgres.Migrate(ctx, database.DB))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(email, phone string) *order.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	o, err := order.NewOrder("Jane Doe", "Laptop", 2, kernel.MustMoney("999.99"), email, phone, now)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_AssignsIdentityAndPersists() {
	ctx := context.Background()
	o := suite.newOrder("jane@example.com", "+15550100")

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Require().NoError(o.ID().Validate())

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsEqual(o))
	suite.Equal("Jane Doe", stored.CustomerName())
	suite.Equal("Laptop", stored.ProductName())
	suite.Equal(2, stored.Quantity())
	suite.True(kernel.MustMoney("999.99").IsEqual(stored.Price()))
	suite.Equal("1999.98", stored.TotalValue().String())
	suite.Equal("jane@example.com", stored.Email())
	suite.Equal("+15550100", stored.Phone())
	suite.Equal(order.Created, stored.Status())
	suite.True(o.CreatedAt().Equal(stored.CreatedAt()))
	suite.True(o.UpdatedAt().Equal(stored.UpdatedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_StoresEmptyContactsAsNull() {
	ctx := context.Background()
	o := suite.newOrder("", "")

	suite.Require().NoError(suite.repository.Add(ctx, o))

	var dto orderrepo.OrderDTO
	suite.Require().NoError(suite.database.DB.First(&dto, "id = ?", o.ID().Google()).Error)
	suite.Nil(dto.Email)
	suite.Nil(dto.Phone)

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Empty(stored.Email())
	suite.Empty(stored.Phone())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RejectsPersistedOrder() {
	ctx := context.Background()
	o := suite.newOrder("", "")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	err := suite.repository.Add(ctx, o)

	suite.Require().ErrorIs(err, order.ErrIDAlreadyAssigned)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RejectsUnconstructedOrder() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	stored, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(stored)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransition() {
	testCases := []struct {
		name   string
		status order.Status
	}{
		{"created to completed", order.Completed},
		{"created to cancelled", order.Cancelled},
	}

	ctx := context.Background()
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			o := suite.newOrder("jane@example.com", "")
			suite.Require().NoError(suite.repository.Add(ctx, o))

			_, err := o.TransitionTo(tc.status, o.CreatedAt().Add(time.Minute))
			suite.Require().NoError(err)
			suite.Require().NoError(suite.repository.Update(ctx, o))

			stored, err := suite.repository.Get(ctx, o.ID())
			suite.Require().NoError(err)
			suite.Equal(tc.status, stored.Status())
			suite.True(o.CreatedAt().Equal(stored.CreatedAt()))
			suite.True(stored.UpdatedAt().After(stored.CreatedAt()))
		})
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	id := kernel.NewUUID()
	now := time.Now().UTC()
	missing, err := order.RestoreOrder(id, "Jane", "Laptop", 1, kernel.MustMoney("1.00"),
		"", "", order.Created, now, now)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), missing)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_InsideTransaction() {
	ctx := context.Background()
	o := suite.newOrder("", "")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	err := suite.database.DB.Transaction(func(tx *gorm.DB) error {
		locked, err := orderrepo.NewGormOrderRepository(tx).GetForUpdate(ctx, o.ID())
		if err != nil {
			return err
		}
		suite.True(locked.IsEqual(o))
		return nil
	})

	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.database.DB.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
