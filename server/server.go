package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"vegholic-api/cache"
	"vegholic-api/configs"
	accountController "vegholic-api/controllers/accounts"
	addressController "vegholic-api/controllers/addresses"
	cartController "vegholic-api/controllers/cart"
	healthController "vegholic-api/controllers/health"
	orderController "vegholic-api/controllers/orders"
	productController "vegholic-api/controllers/products"
	userController "vegholic-api/controllers/user"
	"vegholic-api/locks"
	"vegholic-api/middlewares"
	"vegholic-api/responses"
	"vegholic-api/routes"
	"vegholic-api/services/addresses"
	"vegholic-api/services/auth"
	"vegholic-api/services/cart"
	"vegholic-api/services/catalog"
	"vegholic-api/services/orders"
	"vegholic-api/services/profile"
	"vegholic-api/store"
)

type Dependencies struct {
	Config configs.Config
	Store  store.Store
	Locker locks.Locker
	Cache  cache.ProductCache
	Logger *zap.Logger
}

type Server struct {
	App     *fiber.App
	Catalog *catalog.Catalog
}

// New wires the managers and mounts every route on a fresh Fiber app.
func New(deps Dependencies) *Server {
	cfg := deps.Config
	logger := deps.Logger
	locker := deps.Locker
	if locker == nil {
		locker = locks.NewLocalLocker()
	}

	var issuer auth.TokenIssuer = auth.PhoneTokenIssuer{}
	var guard []fiber.Handler
	if cfg.JWTSecret != "" {
		jwtIssuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
		issuer = jwtIssuer
		if cfg.RequireAuth {
			guard = append(guard, middlewares.AuthMiddleware(jwtIssuer))
		}
	}

	products := catalog.New(deps.Store, deps.Cache, logger)
	cartManager := cart.NewManager(deps.Store, locker, logger)
	addressManager := addresses.NewManager(deps.Store, locker, logger)
	engine := orders.NewEngine(deps.Store, cartManager, locker, logger)
	profiles := profile.NewService(deps.Store, addressManager, engine)
	login := auth.NewService(deps.Store, cfg.OTPCode, issuer, locker, logger)

	app := fiber.New(fiber.Config{
		AppName:      "VegHolic API",
		ErrorHandler: errorHandler(logger),
	})
	app.Use(recover.New())
	app.Use(middlewares.RequestLogger(logger))
	app.Use(cors.New())

	timeout := cfg.RequestTimeout
	routes.HealthRoutes(app, healthController.New(deps.Store, logger, timeout))
	routes.UserRoute(app, userController.New(login, timeout))
	routes.ProductsRoute(app, productController.New(products, timeout))
	routes.CartRoutes(app, cartController.New(cartManager, timeout), guard...)
	routes.AddressRoutes(app, addressController.New(addressManager, timeout), guard...)
	routes.OrderRoutes(app, orderController.New(engine, logger, timeout), guard...)
	routes.AccountRoute(app, accountController.New(profiles, timeout), guard...)

	return &Server{App: app, Catalog: products}
}

func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return responses.Send(c, fiberErr.Code, fiberErr.Message, nil)
		}
		logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return responses.Error(c, err)
	}
}
