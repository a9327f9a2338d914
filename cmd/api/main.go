package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/bookhaven/bookhaven-backend/api/routes"
	articlesvc "github.com/bookhaven/bookhaven-backend/internal/articles"
	authsvc "github.com/bookhaven/bookhaven-backend/internal/auth"
	cartsvc "github.com/bookhaven/bookhaven-backend/internal/cart"
	catalogsvc "github.com/bookhaven/bookhaven-backend/internal/catalog"
	checkoutsvc "github.com/bookhaven/bookhaven-backend/internal/checkout"
	contactsvc "github.com/bookhaven/bookhaven-backend/internal/contact"
	contentsvc "github.com/bookhaven/bookhaven-backend/internal/content"
	inventorysvc "github.com/bookhaven/bookhaven-backend/internal/inventory"
	ordersvc "github.com/bookhaven/bookhaven-backend/internal/orders"
	reportingsvc "github.com/bookhaven/bookhaven-backend/internal/reporting"
	reviewsvc "github.com/bookhaven/bookhaven-backend/internal/reviews"
	"github.com/bookhaven/bookhaven-backend/pkg/config"
	"github.com/bookhaven/bookhaven-backend/pkg/db"
	"github.com/bookhaven/bookhaven-backend/pkg/logger"
	"github.com/bookhaven/bookhaven-backend/pkg/metrics"
	"github.com/bookhaven/bookhaven-backend/pkg/migrate"
	"github.com/bookhaven/bookhaven-backend/pkg/redis"
	"github.com/bookhaven/bookhaven-backend/pkg/statestore"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	closeAll := func() error {
		return multierr.Combine(redisClient.Close(), dbClient.Close())
	}

	store, err := statestore.NewRedisStore(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create state store", err)
		os.Exit(1)
	}

	svcs, err := buildServices(cfg, dbClient, store)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	if err := svcs.Auth.EnsureAdmin(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to ensure admin account", err)
		os.Exit(1)
	}

	if cfg.FeatureFlags.SeedCatalog {
		seeded, err := svcs.Catalog.SeedDefaultCatalog(context.Background())
		if err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
		if seeded > 0 {
			ctx := logg.WithField(context.Background(), "books", seeded)
			logg.Info(ctx, "seeded default catalog")
		}
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, registry, svcs),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "error during server shutdown", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			_ = closeAll()
			os.Exit(1)
		}
	}

	if err := closeAll(); err != nil {
		logg.Error(ctx, "error closing clients", err)
	}
	logg.Info(ctx, "api server shut down gracefully")
}

func buildServices(cfg *config.Config, dbClient *db.Client, store statestore.Store) (routes.Services, error) {
	gdb := dbClient.DB()

	catalogService, err := catalogsvc.NewService(catalogsvc.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, err
	}

	cartService, err := cartsvc.NewService(store, catalogsvc.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, err
	}

	orderService, err := ordersvc.NewService(store, ordersvc.NewRepository(gdb), inventorysvc.NewRepository(gdb), dbClient)
	if err != nil {
		return routes.Services{}, err
	}

	checkoutService, err := checkoutsvc.NewService(cartService, orderService, cfg.Checkout)
	if err != nil {
		return routes.Services{}, err
	}

	contentService, err := contentsvc.NewService(contentsvc.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, err
	}

	articleService, err := articlesvc.NewService(articlesvc.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, err
	}

	contactService, err := contactsvc.NewService(contactsvc.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, err
	}

	reviewService, err := reviewsvc.NewService(reviewsvc.NewRepository(gdb), catalogsvc.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, err
	}

	inventoryService, err := inventorysvc.NewService(inventorysvc.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, err
	}

	reportingService, err := reportingsvc.NewService(gdb)
	if err != nil {
		return routes.Services{}, err
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       authsvc.NewRepository(gdb),
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		AdminConfig:    cfg.Admin,
	})
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:      authService,
		Catalog:   catalogService,
		Cart:      cartService,
		Checkout:  checkoutService,
		Orders:    orderService,
		Content:   contentService,
		Articles:  articleService,
		Contact:   contactService,
		Reviews:   reviewService,
		Inventory: inventoryService,
		Reporting: reportingService,
	}, nil
}
