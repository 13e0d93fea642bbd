package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "pichuka/internal/adapters/out/postgres"
	"pichuka/internal/adapters/out/postgres/cartrepo"
	"pichuka/internal/adapters/out/postgres/orderrepo"
	"pichuka/internal/core/domain/model/cart"
	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/core/domain/model/order"
	"pichuka/internal/core/ports"
	"pichuka/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes the PostgreSQL container and database connection and
// runs migrations for the cart and order schemas.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&cartrepo.CartDTO{}, &cartrepo.CartItemDTO{},
		&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}, &orderrepo.OrderHistoryDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE carts, cart_items, orders, order_items, order_status_history").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up the PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) seedCart(customer string) *cart.Cart {
	now := time.Now().UTC().Truncate(time.Microsecond)
	aggregate, err := cart.NewCart(customer, now)
	suite.Require().NoError(err)
	item, err := cart.NewItem(1, "Shawarma", decimal.NewFromInt(250), 2, "shawarma.png")
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AddItem(item, now))
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.CartRepository(), "First instance should provide cart repository")
	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow2.CartRepository(), "Second instance should provide cart repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// Checkout writes the order and drains the cart through one unit of work;
// after commit both effects must be visible, together.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CheckoutCommitsOrderAndCartTogether() {
	ctx := context.Background()
	seeded := suite.seedCart("alice@example.com")

	setupUoW := suite.factory.Create()
	suite.Require().NoError(setupUoW.Begin(ctx))
	suite.Require().NoError(setupUoW.CartRepository().Add(ctx, seeded))
	suite.Require().NoError(setupUoW.Commit(ctx))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.CartRepository().GetByCustomer(ctx, "alice@example.com")
	suite.Require().NoError(err)

	items := make([]order.Item, 0, len(loaded.Items()))
	for _, ci := range loaded.Items() {
		item, itemErr := order.NewItem(ci.DishID(), ci.Title(), ci.Price(), ci.Quantity(), ci.Image())
		suite.Require().NoError(itemErr)
		items = append(items, item)
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	placed, err := order.NewOrder(kernel.NewUUID(), "alice@example.com", items, now)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.OrderRepository().Add(ctx, placed))
	loaded.Clear(now)
	suite.Require().NoError(uow.CartRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	verifyUoW := suite.factory.Create()
	restoredOrder, err := verifyUoW.OrderRepository().Get(ctx, placed.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, restoredOrder.Status())

	restoredCart, err := verifyUoW.CartRepository().GetByCustomer(ctx, "alice@example.com")
	suite.Require().NoError(err)
	suite.True(restoredCart.IsEmpty(), "Cart should be drained after checkout commit")
}

// A rollback mid-checkout must leave neither the order nor the drained cart.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsBothAggregates() {
	ctx := context.Background()
	seeded := suite.seedCart("bob@example.com")

	setupUoW := suite.factory.Create()
	suite.Require().NoError(setupUoW.Begin(ctx))
	suite.Require().NoError(setupUoW.CartRepository().Add(ctx, seeded))
	suite.Require().NoError(setupUoW.Commit(ctx))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.CartRepository().GetByCustomer(ctx, "bob@example.com")
	suite.Require().NoError(err)

	item, err := order.NewItem(1, "Shawarma", decimal.NewFromInt(250), 2, "shawarma.png")
	suite.Require().NoError(err)
	now := time.Now().UTC().Truncate(time.Microsecond)
	placed, err := order.NewOrder(kernel.NewUUID(), "bob@example.com", []order.Item{item}, now)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.OrderRepository().Add(ctx, placed))
	loaded.Clear(now)
	suite.Require().NoError(uow.CartRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Rollback(ctx))

	verifyUoW := suite.factory.Create()
	_, err = verifyUoW.OrderRepository().Get(ctx, placed.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "Rolled back order should not exist")

	restoredCart, err := verifyUoW.CartRepository().GetByCustomer(ctx, "bob@example.com")
	suite.Require().NoError(err)
	suite.False(restoredCart.IsEmpty(), "Rolled back cart should keep its lines")
}

// Repositories obtained before Begin run against the main connection and
// their writes are immediately visible.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryWithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	seeded := suite.seedCart("carol@example.com")
	suite.Require().NoError(uow.CartRepository().Add(ctx, seeded))

	restored, err := suite.factory.Create().CartRepository().GetByCustomer(ctx, "carol@example.com")
	suite.Require().NoError(err)
	suite.Equal("carol@example.com", restored.Customer())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
