package cartrepo_test

import (
	"context"
	"testing"
	"time"

	"pichuka/internal/adapters/out/postgres/cartrepo"
	"pichuka/internal/core/domain/model/cart"
	"pichuka/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id string, aggregate interface{}) {
	m.Called(id, aggregate)
}

// CartRepositoryIntegrationTestSuite provides integration tests for
// CartRepository using PostgreSQL containers.
type CartRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *cartrepo.GormCartRepository
	tracker    *MockAggregateTracker
}

func (suite *CartRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&cartrepo.CartDTO{}, &cartrepo.CartItemDTO{}))
}

func (suite *CartRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE carts CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE cart_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = cartrepo.NewGormCartRepository(suite.db, suite.tracker)
}

func (suite *CartRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CartRepositoryIntegrationTestSuite) newCart(customer string, updatedAt time.Time) *cart.Cart {
	aggregate, err := cart.NewCart(customer, updatedAt)
	suite.Require().NoError(err)
	item, err := cart.NewItem(1, "Shawarma", decimal.NewFromInt(250), 2, "shawarma.png")
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AddItem(item, updatedAt))
	return aggregate
}

func (suite *CartRepositoryIntegrationTestSuite) TestAdd_ValidCart_Success() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	aggregate := suite.newCart("alice@example.com", now)

	suite.tracker.On("TrackAggregate", "alice@example.com", aggregate).Once()

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	restored, err := suite.repository.GetByCustomer(ctx, "alice@example.com")
	suite.Require().NoError(err)
	suite.Equal("alice@example.com", restored.Customer())
	suite.Require().Len(restored.Items(), 1)
	suite.Equal(2, restored.Items()[0].Quantity())
	suite.True(restored.TotalPrice().Equal(decimal.NewFromInt(500)))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CartRepositoryIntegrationTestSuite) TestGetByCustomer_MissingCart_ReturnsNotFound() {
	_, err := suite.repository.GetByCustomer(context.Background(), "nobody@example.com")
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CartRepositoryIntegrationTestSuite) TestUpdate_ReplacesLines() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	aggregate := suite.newCart("alice@example.com", now)

	suite.tracker.On("TrackAggregate", "alice@example.com", mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	pakora, err := cart.NewItem(2, "Pakora", decimal.NewFromInt(300), 1, "pakora.png")
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AddItem(pakora, now.Add(time.Minute)))
	aggregate.RemoveItem(1, now.Add(time.Minute))

	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	restored, err := suite.repository.GetByCustomer(ctx, "alice@example.com")
	suite.Require().NoError(err)
	suite.Require().Len(restored.Items(), 1)
	suite.Equal(2, restored.Items()[0].DishID())
	suite.Equal(aggregate.Version()+1, restored.Version())
}

func (suite *CartRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflict() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	aggregate := suite.newCart("alice@example.com", now)

	suite.tracker.On("TrackAggregate", "alice@example.com", mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	// first writer wins and bumps the version
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	// second writer still holds the old version
	err := suite.repository.Update(ctx, aggregate)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *CartRepositoryIntegrationTestSuite) TestUpdate_DrainedCartRowSurvives() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	aggregate := suite.newCart("alice@example.com", now)

	suite.tracker.On("TrackAggregate", "alice@example.com", mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	aggregate.Clear(now.Add(time.Minute))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	restored, err := suite.repository.GetByCustomer(ctx, "alice@example.com")
	suite.Require().NoError(err)
	suite.True(restored.IsEmpty())
}

func (suite *CartRepositoryIntegrationTestSuite) TestGetStale_ReturnsOnlyOldNonEmptyCarts() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	stale := suite.newCart("stale@example.com", now.Add(-48*time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, stale))

	fresh := suite.newCart("fresh@example.com", now)
	suite.Require().NoError(suite.repository.Add(ctx, fresh))

	drained, err := cart.NewCart("empty@example.com", now.Add(-48*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, drained))

	result, err := suite.repository.GetStale(ctx, now.Add(-24*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("stale@example.com", result[0].Customer())
}

func TestCartRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepositoryIntegrationTestSuite))
}
