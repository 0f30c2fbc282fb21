package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	appOrder "github.com/minimart/catalog-api/internal/application/order"
	appProduct "github.com/minimart/catalog-api/internal/application/product"
	"github.com/minimart/catalog-api/internal/config"
	domOrder "github.com/minimart/catalog-api/internal/domain/order"
	domProduct "github.com/minimart/catalog-api/internal/domain/product"
	"github.com/minimart/catalog-api/internal/infrastructure/audit"
	"github.com/minimart/catalog-api/internal/infrastructure/id"
	"github.com/minimart/catalog-api/internal/infrastructure/memory"
	mongostore "github.com/minimart/catalog-api/internal/infrastructure/mongo"
	"github.com/minimart/catalog-api/internal/infrastructure/outbox"
	"github.com/minimart/catalog-api/internal/pkg/logging"
	httppresentation "github.com/minimart/catalog-api/internal/presentation/http"

	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "./configs", "directory holding base.yaml and optional <env>.yaml")
	flag.Parse()

	envName := getenvDefault("ENV", "dev")

	cfg, err := config.Load(*configDir, envName)
	if err != nil {
		panic(err)
	}

	logger := logging.MustNewLogger(cfg.App.Name, cfg.App.Env)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orderRepo, productRepo, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("store_init_failed", zap.Error(err))
	}
	defer cleanup()

	bus := outbox.NewBus(logger)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	auditWorker := audit.New(bus, logger)
	auditWorker.Start()

	orderService := appOrder.NewService(orderRepo, id.NewUUIDGenerator(), bus)
	confirmUseCase := appOrder.NewConfirmOrderUseCase(orderRepo, productRepo, bus)
	productService := appProduct.NewService(productRepo)

	orderHandler := httppresentation.NewOrderHandler(orderService, confirmUseCase, id.NewPaymentRefGenerator())
	productHandler := httppresentation.NewProductHandler(productService)
	router := httppresentation.NewRouter(orderHandler, productHandler, logger)

	server := &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		logger.Info("http_server_start",
			zap.String("addr", server.Addr),
			zap.String("store", cfg.Store.Kind),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error", zap.Error(err))
	} else {
		logger.Info("http_server_stopped")
	}
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *zap.Logger) (domOrder.Repository, domProduct.Repository, func(), error) {
	if cfg.Store.Kind == config.StoreMemory {
		return memory.NewOrderRepository(), memory.NewProductRepository(), func() {}, nil
	}

	client, err := mongostore.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn("mongo_disconnect_failed", zap.Error(err))
		}
	}

	db := client.Database(cfg.Mongo.Database)
	orderRepo := mongostore.NewOrderRepository(db, cfg.Mongo.OrdersCollection)
	productRepo := mongostore.NewProductRepository(db, cfg.Mongo.ProductsCollection)

	if err := orderRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn("order_index_init_failed", zap.Error(err))
	}
	return orderRepo, productRepo, cleanup, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
