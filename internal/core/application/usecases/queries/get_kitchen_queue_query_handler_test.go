package queries_test

import (
	"context"
	"testing"
	"time"

	"pichuka/internal/adapters/out/postgres/orderrepo"
	"pichuka/internal/core/application/usecases/queries"
	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetKitchenQueueQueryHandlerTestSuite struct {
	suite.Suite
	container       *postgres.PostgresContainer
	db              *gorm.DB
	kitchenHandler  queries.GetKitchenQueueQueryHandler
	deliveryHandler queries.GetDeliveryQueueQueryHandler
	orderRepo       *orderrepo.GormOrderRepository
}

func (suite *GetKitchenQueueQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}, &orderrepo.OrderHistoryDTO{})
	suite.Require().NoError(err)

	suite.kitchenHandler = queries.NewGetKitchenQueueQueryHandler(db)
	suite.deliveryHandler = queries.NewGetDeliveryQueueQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetKitchenQueueQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetKitchenQueueQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_status_history").Error)
}

// seedOrderAt places an order dated at the given time and walks it to target.
func (suite *GetKitchenQueueQueryHandlerTestSuite) seedOrderAt(
	orderDate time.Time, target order.Status,
) *order.Order {
	item, err := order.NewItem(1, "Shawarma", decimal.NewFromInt(250), 1, "shawarma.png")
	suite.Require().NoError(err)
	aggregate, err := order.NewOrder(kernel.NewUUID(), "alice@example.com", []order.Item{item}, orderDate)
	suite.Require().NoError(err)

	chef, err := order.NewActor("chef@pichuka.com", order.RoleKitchen, "Chef")
	suite.Require().NoError(err)
	waiter, err := order.NewActor("waiter@pichuka.com", order.RoleFrontOfHouse, "Waiter")
	suite.Require().NoError(err)

	for _, status := range []order.Status{order.Confirmed, order.Preparing, order.Ready} {
		if target < status && target != order.Delivered && target != order.Cancelled {
			break
		}
		suite.Require().NoError(aggregate.ChangeStatus(status, chef, orderDate))
		if aggregate.Status() == target {
			break
		}
	}
	if target == order.Delivered {
		suite.Require().NoError(aggregate.MarkDelivered(waiter, orderDate))
	}
	if target == order.Cancelled {
		suite.Require().NoError(aggregate.ChangeStatus(order.Cancelled, waiter, orderDate))
	}

	suite.Require().NoError(suite.orderRepo.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *GetKitchenQueueQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	result, err := suite.kitchenHandler.Handle(context.Background(), queries.NewGetKitchenQueueQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetKitchenQueueQueryHandlerTestSuite) TestHandle_MixedStatuses_ReturnsOnlyKitchenWork() {
	now := time.Now().UTC().Truncate(time.Microsecond)

	pending := suite.seedOrderAt(now.Add(-4*time.Minute), order.Pending)
	confirmed := suite.seedOrderAt(now.Add(-3*time.Minute), order.Confirmed)
	preparing := suite.seedOrderAt(now.Add(-2*time.Minute), order.Preparing)
	suite.seedOrderAt(now.Add(-1*time.Minute), order.Ready)
	suite.seedOrderAt(now, order.Cancelled)

	result, err := suite.kitchenHandler.Handle(context.Background(), queries.NewGetKitchenQueueQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	// oldest first, so the kitchen works the queue top-down
	suite.Equal(pending.ID(), result[0].ID)
	suite.Equal(confirmed.ID(), result[1].ID)
	suite.Equal(preparing.ID(), result[2].ID)
	suite.Equal("Pending", result[0].Status)
	suite.Equal("Confirmed", result[1].Status)
	suite.Equal("Preparing", result[2].Status)
}

func (suite *GetKitchenQueueQueryHandlerTestSuite) TestHandle_DeliveryQueue_ReturnsOnlyReadyOrders() {
	now := time.Now().UTC().Truncate(time.Microsecond)

	suite.seedOrderAt(now.Add(-3*time.Minute), order.Preparing)
	firstReady := suite.seedOrderAt(now.Add(-2*time.Minute), order.Ready)
	secondReady := suite.seedOrderAt(now.Add(-1*time.Minute), order.Ready)
	suite.seedOrderAt(now, order.Delivered)

	result, err := suite.deliveryHandler.Handle(context.Background(), queries.NewGetDeliveryQueueQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(firstReady.ID(), result[0].ID)
	suite.Equal(secondReady.ID(), result[1].ID)
	suite.NotNil(result[0].EstimatedDelivery)
}

func (suite *GetKitchenQueueQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetKitchenQueueQuery{}

	_, err := suite.kitchenHandler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetKitchenQueueQuery constructor")
}

func TestGetKitchenQueueQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetKitchenQueueQueryHandlerTestSuite))
}
