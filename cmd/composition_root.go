package cmd

import (
	"log/slog"
	"time"

	httpin "foodhub/internal/adapters/in/http"
	"foodhub/internal/adapters/out/kafkaproducer"
	"foodhub/internal/adapters/out/postgres"
	"foodhub/internal/adapters/out/rediscache"
	"foodhub/internal/core/application/usecases/commands"
	"foodhub/internal/core/application/usecases/queries"
	"foodhub/internal/core/domain/services"
	"foodhub/internal/core/ports"
	"foodhub/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	splitter   services.CheckoutSplitter
	publisher  ports.OrderEventPublisher
	cartCounts ports.CartCountCache
	dailyStats ports.DailyStatsCache
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) CompositionRoot {
	splitter := services.NewCheckoutSplitter(services.PricingPolicy{
		TaxRate:          config.TaxRate,
		DeliveryFee:      config.DeliveryFee,
		DeliveryEstimate: time.Duration(config.DeliveryEstimateMinutes) * time.Minute,
	})

	brokers := []string{config.KafkaHost}
	publisher := kafkaproducer.NewOrderEventPublisher(
		kafkaproducer.NewWriter(brokers, config.KafkaOrderPlacedTopic),
		kafkaproducer.NewWriter(brokers, config.KafkaOrderChangedTopic),
	)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		splitter:   splitter,
		publisher:  publisher,
		cartCounts: rediscache.NewCartCountCache(redisClient),
		dailyStats: rediscache.NewDailyStatsCache(redisClient),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	var f commands.ShoppingUoWFactory = FuncShoppingUoWFactory(func() commands.ShoppingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddCartItemCommandHandler(f, c.cartCounts, c.logger)
}

func (c *CompositionRoot) CreateUpdateCartQuantityCommandHandler() commands.UpdateCartQuantityCommandHandler {
	return commands.NewUpdateCartQuantityCommandHandler(c.cartUoWFactory(), c.cartCounts, c.logger)
}

func (c *CompositionRoot) CreateRemoveCartLineCommandHandler() commands.RemoveCartLineCommandHandler {
	return commands.NewRemoveCartLineCommandHandler(c.cartUoWFactory(), c.cartCounts, c.logger)
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.cartUoWFactory(), c.cartCounts, c.logger)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.splitter, c.publisher, c.cartCounts, c.logger)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	return commands.NewRateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCartCountQueryHandler() queries.GetCartCountQueryHandler {
	return queries.NewGetCartCountQueryHandler(c.gormDB, c.cartCounts)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRestaurantStatsQueryHandler() queries.GetRestaurantStatsQueryHandler {
	return queries.NewGetRestaurantStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerStatsQueryHandler() queries.GetCustomerStatsQueryHandler {
	return queries.NewGetCustomerStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryPersonStatsQueryHandler() queries.GetDeliveryPersonStatsQueryHandler {
	return queries.NewGetDeliveryPersonStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDailyStatsQueryHandler() queries.GetDailyStatsQueryHandler {
	return queries.NewGetDailyStatsQueryHandler(c.gormDB, c.dailyStats)
}

func (c *CompositionRoot) CreateGetGlobalTotalsQueryHandler() queries.GetGlobalTotalsQueryHandler {
	return queries.NewGetGlobalTotalsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateAddCartItemCommandHandler(),
		c.CreateUpdateCartQuantityCommandHandler(),
		c.CreateRemoveCartLineCommandHandler(),
		c.CreateClearCartCommandHandler(),
		c.CreatePlaceOrderCommandHandler(),
		c.CreateTransitionOrderCommandHandler(),
		c.CreateRateOrderCommandHandler(),
		c.CreateGetCartQueryHandler(),
		c.CreateGetCartCountQueryHandler(),
		c.CreateGetAvailableOrdersQueryHandler(),
		c.CreateGetRestaurantStatsQueryHandler(),
		c.CreateGetCustomerStatsQueryHandler(),
		c.CreateGetDeliveryPersonStatsQueryHandler(),
		c.CreateGetDailyStatsQueryHandler(),
		c.CreateGetGlobalTotalsQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetDailyStatsQueryHandler(), c.logger)
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncShoppingUoWFactory func() commands.ShoppingUoW

func (f FuncShoppingUoWFactory) Create() commands.ShoppingUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
