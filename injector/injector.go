//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	"github.com/siamaraya/araya-core/internal/app/deliveries"
	"github.com/siamaraya/araya-core/internal/app/middlewares"
	"github.com/siamaraya/araya-core/internal/app/services"
	"github.com/siamaraya/araya-core/internal/infrastructures"
)

// Application represents the main application container for araya-core
type Application struct {
	HealthHandler       *deliveries.HealthHandler
	AccountHandler      *deliveries.AccountHandler
	MeterHandler        *deliveries.MeterHandler
	VoucherHandler      *deliveries.VoucherHandler
	OrderHandler        *deliveries.OrderHandler
	ProductHandler      *deliveries.ProductHandler
	MembershipHandler   *deliveries.MembershipHandler
	BillingHandler      *deliveries.BillingHandler
	AuditHandler        *deliveries.AuditHandler
	RateLimitMiddleware *middlewares.RateLimitMiddleware
}

// RegisterRoutes registers all application routes using a Fiber router
func (app *Application) RegisterRoutes(router fiber.Router) {
	// Apply global rate limit for public API
	router.Use(app.RateLimitMiddleware.LimitByIP(middlewares.PublicAPILimit))

	app.HealthHandler.RegisterRoutes(router)
	app.AccountHandler.RegisterRoutes(router)
	app.MeterHandler.RegisterRoutes(router)
	app.VoucherHandler.RegisterRoutes(router)
	app.OrderHandler.RegisterRoutes(router)
	app.ProductHandler.RegisterRoutes(router)
	app.MembershipHandler.RegisterRoutes(router)
	app.BillingHandler.RegisterRoutes(router)
	app.AuditHandler.RegisterRoutes(router)
}

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
	wire.Value("araya"),
	wire.Bind(new(middlewares.RateLimiter), new(*middlewares.RedisRateLimiter)),
	middlewares.NewRedisRateLimiter,
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewAccountService,
	services.NewMeterService,
	services.NewSubscriptionService,
	services.NewVoucherService,
	services.NewOrderService,
	services.NewProductService,
	services.NewMembershipService,
	services.NewAuditService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	middlewares.NewAuthMiddleware,
	middlewares.NewAdminKeyMiddleware,
	middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewAccountHandler,
	deliveries.NewMeterHandler,
	deliveries.NewVoucherHandler,
	deliveries.NewOrderHandler,
	deliveries.NewProductHandler,
	deliveries.NewMembershipHandler,
	deliveries.NewBillingHandler,
	deliveries.NewAuditHandler,
	wire.Struct(new(Application), "*"),
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return &Application{}, nil
}
