package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/config"
	"storefront/controllers"
	"storefront/libs"
	"storefront/middleware"
	"storefront/repositories"
	"storefront/routes"
	"storefront/services"
)

type App struct {
	Router   *gin.Engine
	Sessions *services.SessionService

	closers []func()
}

// Close releases the database pool and redis client, if any were opened.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Initialize wires the catalog sources, the order backend client and the
// HTTP routes from cfg.
func Initialize(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{}

	source, snapshot, err := a.catalogSources(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	orderClient := libs.NewOrderClient(cfg.OrderAPIURL, &http.Client{}, logger.Named("order_client"))

	a.Sessions = services.NewSessionService(
		orderClient,
		source,
		snapshot,
		orderClient,
		services.SessionConfig{
			TTL:          cfg.SessionExpiry,
			FetchTimeout: cfg.CatalogFetchTimeout,
		},
		logger.Named("sessions"),
	)

	ctrls := &routes.Controllers{
		Session:  controllers.NewSessionController(a.Sessions, cfg.SessionSecret, cfg.SessionExpiry),
		Product:  &controllers.ProductController{},
		Category: &controllers.CategoryController{},
		Cart:     &controllers.CartController{},
		Order:    controllers.NewOrderController(libs.NewQRRenderer(cfg.QRServiceURL, cfg.QRImageSize, logger.Named("qr"))),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger.Named("http")))
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	routes.SetupRoutes(router, ctrls, middleware.SessionMiddleware(cfg.SessionSecret, a.Sessions))
	a.Router = router

	return a, nil
}

// catalogSources builds the fallback chain for CATALOG_SOURCE. The embedded
// catalog always comes last.
func (a *App) catalogSources(ctx context.Context, cfg *config.Config, logger *zap.Logger) (services.CatalogSource, services.CatalogSnapshotter, error) {
	embedded := repositories.NewEmbeddedCatalog()

	switch cfg.CatalogSource {
	case config.CatalogSourceEmbedded, "":
		return embedded, nil, nil

	case config.CatalogSourcePostgres:
		pool, err := config.ConnectDB(ctx, cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("catalog source postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		chain := repositories.NewCatalogChain(logger, repositories.NewProductRepository(pool), embedded)
		return chain, nil, nil

	case config.CatalogSourceRedis:
		client, err := config.ConnectRedis(ctx, cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("catalog source redis: %w", err)
		}
		a.closers = append(a.closers, func() { client.Close() })
		cache := repositories.NewCatalogCache(client, cfg.CatalogCacheTTL)
		return repositories.NewCatalogChain(logger, cache, embedded), cache, nil

	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}
}
