package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"foodhub/internal/adapters/out/postgres/orderrepo"
	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/order"
	"foodhub/internal/core/domain/model/restaurant"
	"foodhub/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance, including the unique order number constraint
// and the conditional update backing courier self-assignment.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newPendingOrder() *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 2, 100, "no onions")
	suite.Require().NoError(err)

	now := time.Now().UTC()
	o, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		OrderNumber:   order.GenerateOrderNumber(now),
		CustomerID:    kernel.NewUUID(),
		RestaurantID:  kernel.NewUUID(),
		Charges:       order.Charges{TotalAmount: 210, TaxAmount: 10},
		PaymentMethod: "card",
		Delivery: order.DeliveryDetails{
			Name: "Ada Test", Phone: "555-0100", Address: "12 Hill Rd", City: "Springfield",
		},
		Items:                 []order.Item{item},
		CreatedAt:             now,
		EstimatedDeliveryTime: now.Add(45 * time.Minute),
	})
	suite.Require().NoError(err)
	return o
}

// advance walks the order through kitchen statuses with a synthetic owner.
func (suite *OrderRepositoryIntegrationTestSuite) readyForPickup(o *order.Order) {
	ownerID := kernel.NewUUID()
	rest, err := restaurant.NewRestaurant(
		o.RestaurantID(), ownerID, "Blue Bistro", "italian", true, true)
	suite.Require().NoError(err)
	owner, err := order.NewActor(ownerID, order.RoleRestaurantOwner)
	suite.Require().NoError(err)

	now := time.Now().UTC()
	suite.Require().NoError(o.TransitionTo(order.StatusConfirmed, owner, rest, now))
	suite.Require().NoError(o.TransitionTo(order.StatusPreparing, owner, rest, now))
	suite.Require().NoError(o.TransitionTo(order.StatusReadyForPickup, owner, rest, now))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTrips() {
	ctx := context.Background()
	o := suite.newPendingOrder()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.OrderNumber(), stored.OrderNumber())
	suite.Equal(order.StatusPending, stored.Status())
	suite.Require().Len(stored.Items(), 1)
	suite.Equal(2, stored.Items()[0].Quantity())
	suite.InEpsilon(100.0, stored.Items()[0].UnitPrice(), 1e-9)
	suite.Equal("no onions", stored.Items()[0].Customization())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateOrderNumber_ReturnsSentinel() {
	ctx := context.Background()
	first := suite.newPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 1, 50, "")
	suite.Require().NoError(err)
	now := time.Now().UTC()
	duplicate, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		OrderNumber:   first.OrderNumber(),
		CustomerID:    kernel.NewUUID(),
		RestaurantID:  kernel.NewUUID(),
		Charges:       order.Charges{TotalAmount: 52.5, TaxAmount: 2.5},
		PaymentMethod: "card",
		Delivery: order.DeliveryDetails{
			Name: "Bo Test", Phone: "555-0101", Address: "9 Elm St",
		},
		Items:                 []order.Item{item},
		CreatedAt:             now,
		EstimatedDeliveryTime: now.Add(45 * time.Minute),
	})
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, duplicate)
	suite.Require().Error(err)
	suite.ErrorIs(err, order.ErrDuplicateOrderNumber)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateInsideOpenTransaction_RetrySucceeds() {
	ctx := context.Background()
	first := suite.newPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 1, 75, "")
	suite.Require().NoError(err)
	now := time.Now().UTC()
	colliding, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		OrderNumber:   first.OrderNumber(),
		CustomerID:    kernel.NewUUID(),
		RestaurantID:  kernel.NewUUID(),
		Charges:       order.Charges{TotalAmount: 78.75, TaxAmount: 3.75},
		PaymentMethod: "card",
		Delivery: order.DeliveryDetails{
			Name: "Cy Test", Phone: "555-0102", Address: "3 Oak Ave",
		},
		Items:                 []order.Item{item},
		CreatedAt:             now,
		EstimatedDeliveryTime: now.Add(45 * time.Minute),
	})
	suite.Require().NoError(err)

	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	txRepository := orderrepo.NewGormOrderRepository(tx, suite.tracker)

	err = txRepository.Add(ctx, colliding)
	suite.Require().Error(err)
	suite.ErrorIs(err, order.ErrDuplicateOrderNumber)

	// The failed insert must not abort the enclosing transaction.
	for colliding.OrderNumber() == first.OrderNumber() {
		suite.Require().NoError(colliding.RefreshOrderNumber(now))
	}
	suite.Require().NoError(txRepository.Add(ctx, colliding))
	suite.Require().NoError(tx.Commit().Error)

	stored, err := suite.repository.Get(ctx, colliding.ID())
	suite.Require().NoError(err)
	suite.Equal(colliding.OrderNumber(), stored.OrderNumber())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsLifecycleChanges() {
	ctx := context.Background()
	o := suite.newPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.readyForPickup(o)
	suite.Require().NoError(suite.repository.Update(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusReadyForPickup, stored.Status())
	suite.NotNil(stored.ConfirmedAt())
	suite.NotNil(stored.PreparedAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAssignDeliveryPerson_TwoCouriers_OneWins() {
	ctx := context.Background()
	o := suite.newPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.readyForPickup(o)
	suite.Require().NoError(suite.repository.Update(ctx, o))

	now := time.Now().UTC()

	firstCopy, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	secondCopy, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	courierA, err := order.NewActor(kernel.NewUUID(), order.RoleDeliveryPerson)
	suite.Require().NoError(err)
	courierB, err := order.NewActor(kernel.NewUUID(), order.RoleDeliveryPerson)
	suite.Require().NoError(err)

	suite.Require().NoError(firstCopy.TransitionTo(order.StatusOutForDelivery, courierA, nil, now))
	suite.Require().NoError(secondCopy.TransitionTo(order.StatusOutForDelivery, courierB, nil, now))

	suite.Require().NoError(suite.repository.AssignDeliveryPerson(ctx, firstCopy))

	err = suite.repository.AssignDeliveryPerson(ctx, secondCopy)
	suite.Require().Error(err)
	suite.ErrorIs(err, order.ErrOrderAlreadyAssigned)

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusOutForDelivery, stored.Status())
	suite.Require().NotNil(stored.DeliveryPersonID())
	suite.True(courierA.ID.IsEqual(*stored.DeliveryPersonID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAssignDeliveryPerson_NotReady_ReturnsAlreadyAssigned() {
	ctx := context.Background()
	o := suite.newPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	courierID := kernel.NewUUID()
	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	courier, err := order.NewActor(courierID, order.RoleDeliveryPerson)
	suite.Require().NoError(err)
	// pending order: the aggregate already refuses this edge
	err = stored.TransitionTo(order.StatusOutForDelivery, courier, nil, time.Now().UTC())
	suite.Require().Error(err)
	suite.ErrorIs(err, order.ErrInvalidTransition)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
