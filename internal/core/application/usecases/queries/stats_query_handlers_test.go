package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"foodhub/internal/adapters/out/postgres/orderrepo"
	"foodhub/internal/adapters/out/postgres/restaurantrepo"
	"foodhub/internal/core/application/usecases/queries"
	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// inMemoryDailyStatsCache is a test double for the daily stats snapshot cache.
type inMemoryDailyStatsCache struct {
	snapshots map[string][]byte
}

func newInMemoryDailyStatsCache() *inMemoryDailyStatsCache {
	return &inMemoryDailyStatsCache{snapshots: make(map[string][]byte)}
}

func (c *inMemoryDailyStatsCache) Get(_ context.Context, day string) ([]byte, error) {
	payload, ok := c.snapshots[day]
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	return payload, nil
}

func (c *inMemoryDailyStatsCache) Set(_ context.Context, day string, payload []byte) error {
	c.snapshots[day] = payload
	return nil
}

// seededOrder describes one row to insert for a statistics scenario.
type seededOrder struct {
	customerID       uuid.UUID
	restaurantID     uuid.UUID
	deliveryPersonID *uuid.UUID
	status           string
	totalAmount      float64
	rating           *int
	createdAt        time.Time
	pickupAt         *time.Time
}

// StatsQueryHandlersTestSuite verifies the statistics read side against a
// real PostgreSQL instance, in particular that revenue aggregations count
// delivered orders only and that the favorite cuisine tie-break is
// alphabetical.
type StatsQueryHandlersTestSuite struct {
	suite.Suite
	container   *postgres.PostgresContainer
	db          *gorm.DB
	orderSerial int
}

func (suite *StatsQueryHandlersTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(
		&restaurantrepo.RestaurantDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
	))
}

func (suite *StatsQueryHandlersTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_items, restaurants CASCADE").Error)
}

func (suite *StatsQueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *StatsQueryHandlersTestSuite) seedRestaurant(name, cuisine string) uuid.UUID {
	dto := restaurantrepo.RestaurantDTO{
		ID:         uuid.New(),
		OwnerID:    uuid.New(),
		Name:       name,
		Cuisine:    cuisine,
		IsActive:   true,
		IsVerified: true,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return dto.ID
}

func (suite *StatsQueryHandlersTestSuite) seedOrder(o seededOrder) uuid.UUID {
	suite.orderSerial++
	createdAt := o.createdAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	dto := orderrepo.OrderDTO{
		ID:                    uuid.New(),
		OrderNumber:           fmt.Sprintf("ORD%s%04d", createdAt.Format("20060102"), suite.orderSerial),
		CustomerID:            o.customerID,
		RestaurantID:          o.restaurantID,
		DeliveryPersonID:      o.deliveryPersonID,
		TotalAmount:           o.totalAmount,
		Status:                o.status,
		PaymentMethod:         "card",
		PaymentStatus:         "pending",
		DeliveryName:          "Test Customer",
		DeliveryPhone:         "555-0100",
		DeliveryAddress:       "12 Hill Rd",
		DeliveryCity:          "Springfield",
		Rating:                o.rating,
		CreatedAt:             createdAt,
		EstimatedDeliveryTime: createdAt.Add(45 * time.Minute),
		PickupAt:              o.pickupAt,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return dto.ID
}

func (suite *StatsQueryHandlersTestSuite) TestRestaurantRevenueCountsDeliveredOnly() {
	ctx := context.Background()
	restaurantID := suite.seedRestaurant("Pizzeria Uno", "italian")
	customerID := uuid.New()

	suite.seedOrder(seededOrder{
		customerID: customerID, restaurantID: restaurantID,
		status: "pending", totalAmount: 500,
	})
	rating := 4
	suite.seedOrder(seededOrder{
		customerID: customerID, restaurantID: restaurantID,
		status: "delivered", totalAmount: 300, rating: &rating,
	})

	restaurant, err := kernel.UUIDFromBytes(restaurantID[:])
	suite.Require().NoError(err)
	query, err := queries.NewGetRestaurantStatsQuery(restaurant)
	suite.Require().NoError(err)

	stats, err := queries.NewGetRestaurantStatsQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(int64(2), stats.TotalOrders)
	suite.Equal(int64(1), stats.PendingOrders)
	suite.InDelta(300.0, stats.TotalRevenue, 0.001)
	suite.InDelta(4.0, stats.AverageRating, 0.001)
	suite.Equal(int64(1), stats.RatedOrders)
}

func (suite *StatsQueryHandlersTestSuite) TestCustomerFavoriteCuisineTieBreaksAlphabetically() {
	ctx := context.Background()
	customerID := uuid.New()

	mexican := suite.seedRestaurant("Taqueria", "mexican")
	italian := suite.seedRestaurant("Pizzeria Uno", "italian")

	suite.seedOrder(seededOrder{
		customerID: customerID, restaurantID: mexican,
		status: "delivered", totalAmount: 120,
	})
	suite.seedOrder(seededOrder{
		customerID: customerID, restaurantID: italian,
		status: "pending", totalAmount: 80,
	})

	customer, err := kernel.UUIDFromBytes(customerID[:])
	suite.Require().NoError(err)
	query, err := queries.NewGetCustomerStatsQuery(customer)
	suite.Require().NoError(err)

	stats, err := queries.NewGetCustomerStatsQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(int64(2), stats.TotalOrders)
	suite.InDelta(120.0, stats.TotalSpent, 0.001)
	suite.Equal("italian", stats.FavoriteCuisine)
}

func (suite *StatsQueryHandlersTestSuite) TestCustomerStatsEmptyWithNoOrders() {
	ctx := context.Background()

	query, err := queries.NewGetCustomerStatsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	stats, err := queries.NewGetCustomerStatsQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Zero(stats.TotalOrders)
	suite.Zero(stats.TotalSpent)
	suite.Empty(stats.FavoriteCuisine)
}

func (suite *StatsQueryHandlersTestSuite) TestDeliveryPersonEarningsAndSuccessRate() {
	ctx := context.Background()
	restaurantID := suite.seedRestaurant("Pizzeria Uno", "italian")
	courierID := uuid.New()

	suite.seedOrder(seededOrder{
		customerID: uuid.New(), restaurantID: restaurantID,
		deliveryPersonID: &courierID, status: "delivered", totalAmount: 200,
	})
	suite.seedOrder(seededOrder{
		customerID: uuid.New(), restaurantID: restaurantID,
		deliveryPersonID: &courierID, status: "delivered", totalAmount: 100,
	})
	suite.seedOrder(seededOrder{
		customerID: uuid.New(), restaurantID: restaurantID,
		deliveryPersonID: &courierID, status: "out_for_delivery", totalAmount: 150,
	})

	courier, err := kernel.UUIDFromBytes(courierID[:])
	suite.Require().NoError(err)
	query, err := queries.NewGetDeliveryPersonStatsQuery(courier)
	suite.Require().NoError(err)

	stats, err := queries.NewGetDeliveryPersonStatsQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(int64(3), stats.TotalAssigned)
	suite.Equal(int64(2), stats.TotalDelivered)
	suite.Equal(int64(1), stats.ActiveDeliveries)
	suite.InDelta(30.0, stats.TotalEarnings, 0.001)
	suite.InDelta(66.67, stats.SuccessRate, 0.001)
}

func (suite *StatsQueryHandlersTestSuite) TestDeliveryPersonStatsWithNoAssignments() {
	ctx := context.Background()

	query, err := queries.NewGetDeliveryPersonStatsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	stats, err := queries.NewGetDeliveryPersonStatsQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Zero(stats.TotalAssigned)
	suite.Zero(stats.TotalEarnings)
	suite.Zero(stats.SuccessRate)
}

func (suite *StatsQueryHandlersTestSuite) TestAvailableOrdersFeedOldestFirst() {
	ctx := context.Background()
	restaurantID := suite.seedRestaurant("Pizzeria Uno", "italian")
	now := time.Now().UTC()

	newerPickup := now.Add(-5 * time.Minute)
	olderPickup := now.Add(-30 * time.Minute)
	courierID := uuid.New()

	newer := suite.seedOrder(seededOrder{
		customerID: uuid.New(), restaurantID: restaurantID,
		status: "ready_for_pickup", totalAmount: 90, pickupAt: &newerPickup,
	})
	older := suite.seedOrder(seededOrder{
		customerID: uuid.New(), restaurantID: restaurantID,
		status: "ready_for_pickup", totalAmount: 50, pickupAt: &olderPickup,
	})
	// Already claimed: must not appear.
	suite.seedOrder(seededOrder{
		customerID: uuid.New(), restaurantID: restaurantID,
		deliveryPersonID: &courierID, status: "ready_for_pickup",
		totalAmount: 70, pickupAt: &olderPickup,
	})

	feed, err := queries.NewGetAvailableOrdersQueryHandler(suite.db).
		Handle(ctx, queries.NewGetAvailableOrdersQuery())
	suite.Require().NoError(err)

	suite.Require().Len(feed, 2)
	suite.Equal(older.String(), feed[0].ID.String())
	suite.Equal(newer.String(), feed[1].ID.String())
	suite.Equal("Pizzeria Uno", feed[0].RestaurantName)
}

func (suite *StatsQueryHandlersTestSuite) TestDailyStatsAggregatesAndSnapshots() {
	ctx := context.Background()
	restaurantID := suite.seedRestaurant("Pizzeria Uno", "italian")
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	suite.seedOrder(seededOrder{
		customerID: uuid.New(), restaurantID: restaurantID,
		status: "delivered", totalAmount: 300, createdAt: day.Add(10 * time.Hour),
	})
	suite.seedOrder(seededOrder{
		customerID: uuid.New(), restaurantID: restaurantID,
		status: "cancelled", totalAmount: 100, createdAt: day.Add(12 * time.Hour),
	})
	// Previous day: outside the bucket.
	suite.seedOrder(seededOrder{
		customerID: uuid.New(), restaurantID: restaurantID,
		status: "delivered", totalAmount: 999, createdAt: day.Add(-2 * time.Hour),
	})

	cache := newInMemoryDailyStatsCache()
	handler := queries.NewGetDailyStatsQueryHandler(suite.db, cache)

	query, err := queries.NewGetDailyStatsQuery(day)
	suite.Require().NoError(err)

	stats, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal("2026-03-14", stats.Day)
	suite.Equal(int64(2), stats.OrdersPlaced)
	suite.Equal(int64(1), stats.OrdersDelivered)
	suite.Equal(int64(1), stats.OrdersCancelled)
	suite.InDelta(300.0, stats.Revenue, 0.001)

	_, err = cache.Get(ctx, "2026-03-14")
	suite.Require().NoError(err, "a live aggregation should refresh the snapshot")
}

func (suite *StatsQueryHandlersTestSuite) TestDailyStatsRefreshOverwritesSnapshot() {
	ctx := context.Background()
	restaurantID := suite.seedRestaurant("Pizzeria Uno", "italian")
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	cache := newInMemoryDailyStatsCache()
	handler := queries.NewGetDailyStatsQueryHandler(suite.db, cache)

	suite.Require().NoError(handler.Refresh(ctx, day))

	suite.seedOrder(seededOrder{
		customerID: uuid.New(), restaurantID: restaurantID,
		status: "delivered", totalAmount: 300, createdAt: day.Add(10 * time.Hour),
	})
	suite.Require().NoError(handler.Refresh(ctx, day))

	query, err := queries.NewGetDailyStatsQuery(day)
	suite.Require().NoError(err)

	stats, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(int64(1), stats.OrdersPlaced)
	suite.InDelta(300.0, stats.Revenue, 0.001)
}

func (suite *StatsQueryHandlersTestSuite) TestGlobalTotalsCountDistinctCustomers() {
	ctx := context.Background()
	restaurantID := suite.seedRestaurant("Pizzeria Uno", "italian")
	repeatCustomer := uuid.New()

	suite.seedOrder(seededOrder{
		customerID: repeatCustomer, restaurantID: restaurantID,
		status: "delivered", totalAmount: 300,
	})
	suite.seedOrder(seededOrder{
		customerID: repeatCustomer, restaurantID: restaurantID,
		status: "pending", totalAmount: 100,
	})
	suite.seedOrder(seededOrder{
		customerID: uuid.New(), restaurantID: restaurantID,
		status: "confirmed", totalAmount: 200,
	})

	totals, err := queries.NewGetGlobalTotalsQueryHandler(suite.db).
		Handle(ctx, queries.NewGetGlobalTotalsQuery())
	suite.Require().NoError(err)

	suite.Equal(int64(3), totals.TotalOrders)
	suite.Equal(int64(1), totals.DeliveredOrders)
	suite.Equal(int64(2), totals.InFlightOrders)
	suite.InDelta(300.0, totals.TotalRevenue, 0.001)
	suite.Equal(int64(2), totals.CustomersServed)
}

func TestStatsQueryHandlersIntegration(t *testing.T) {
	suite.Run(t, new(StatsQueryHandlersTestSuite))
}
