package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/broker"
	"github.com/fekuna/omnipos-storefront-service/internal/cache"
	"github.com/fekuna/omnipos-storefront-service/internal/database"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/middleware"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/internal/server"
	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-storefront-service/internal/authsupport"
	authH "github.com/fekuna/omnipos-storefront-service/internal/authsupport/handler"
	mailerPkg "github.com/fekuna/omnipos-storefront-service/internal/authsupport/mailer"
	authUCPkg "github.com/fekuna/omnipos-storefront-service/internal/authsupport/usecase"

	cartH "github.com/fekuna/omnipos-storefront-service/internal/cart/handler"
	cartRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/cart/repository"
	cartUCPkg "github.com/fekuna/omnipos-storefront-service/internal/cart/usecase"

	catH "github.com/fekuna/omnipos-storefront-service/internal/category/handler"
	catUCPkg "github.com/fekuna/omnipos-storefront-service/internal/category/usecase"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	invH "github.com/fekuna/omnipos-storefront-service/internal/inventory/handler"
	invListenerPkg "github.com/fekuna/omnipos-storefront-service/internal/inventory/listener"
	invRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-storefront-service/internal/inventory/usecase"

	prodH "github.com/fekuna/omnipos-storefront-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-storefront-service/internal/product/usecase"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// Prices go out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Keyed storage: Redis when configured, process memory otherwise
	var (
		store   cache.Store
		counter cache.Counter
	)
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		store, counter = redisClient, redisClient
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		mem := cache.NewMemory()
		store, counter = mem, mem
		appLogger.Warn("REDIS_ADDR not set, carts and codes are kept in memory")
	}

	// 4. Catalog source
	var (
		db       *sqlx.DB
		prodRepo product.Repository
	)
	switch cfg.Catalog.Source {
	case "postgres":
		var err error
		db, err = database.NewPostgres(&database.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to database", zap.Error(err))
		}
		defer db.Close()
		prodRepo = prodRepoPkg.NewPGRepository(db)
		appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
	case "remote":
		prodRepo = prodRepoPkg.NewRemoteRepository(cfg.Catalog.RemoteURL, cfg.Stock.Timeout)
		appLogger.Info("Using remote catalog", zap.String("url", cfg.Catalog.RemoteURL))
	case "file":
		prodRepo = prodRepoPkg.NewFileRepository(cfg.Catalog.FilePath)
		appLogger.Info("Using catalog file", zap.String("path", cfg.Catalog.FilePath))
	default:
		appLogger.Fatal("Unknown CATALOG_SOURCE", zap.String("source", cfg.Catalog.Source))
	}

	// 5. Initialize UseCases
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, store, cfg.Catalog.CacheTTL, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(prodUC, appLogger)

	var invRepo inventory.Repository
	switch {
	case cfg.Stock.BaseURL != "":
		invRepo = invRepoPkg.NewHTTPRepository(invRepoPkg.HTTPConfig{
			BaseURL:     cfg.Stock.BaseURL,
			Timeout:     cfg.Stock.Timeout,
			MaxAttempts: cfg.Stock.MaxAttempts,
			BaseBackoff: cfg.Stock.BaseBackoff,
		}, appLogger)
	case db != nil:
		invRepo = invRepoPkg.NewPGRepository(db)
	default:
		invRepo = invRepoPkg.NewCatalogRepository(prodUC)
	}
	invUC := invUCPkg.NewInventoryUseCase(invRepo, prodUC, appLogger)

	cartUC := cartUCPkg.NewCartUseCase(cartRepoPkg.NewKVRepository(store), invUC, cfg.Cart.HandoffTTL, appLogger)

	var mailer authsupport.Mailer = mailerPkg.NewWebhookMailer(cfg.Auth.WebhookURL, cfg.Stock.Timeout)
	if cfg.Auth.WebhookURL == "" {
		mailer = mailerPkg.NewLogMailer(appLogger)
	}
	authUC := authUCPkg.NewAuthSupportUseCase(authUCPkg.Config{
		SenderEmail: cfg.Auth.SenderEmail,
		PublicURL:   cfg.Auth.PublicURL,
		BrandName:   cfg.Auth.BrandName,
	}, authsupport.NewCodeStore(store, cfg.Auth.CodeTTL), mailer, appLogger)

	// 6. Initialize Handlers
	var upstream http.Handler
	if cfg.Auth.UpstreamURL != "" {
		proxy, err := authH.NewUpstreamProxy(cfg.Auth.UpstreamURL, appLogger)
		if err != nil {
			appLogger.Fatal("Invalid auth upstream", zap.Error(err))
		}
		upstream = proxy
	}

	router := server.NewRouter(server.Deps{
		Config:  cfg,
		Logger:  appLogger,
		Tokens:  auth.NewTokenParser(cfg.JWT.SecretKey),
		Limiter: counter,
	}, server.Routes{
		Catalog: []server.RouteRegistrar{
			prodH.NewProductHandler(prodUC, cfg.Catalog.PageSize, appLogger),
			catH.NewCategoryHandler(catUC, appLogger),
			invH.NewInventoryHandler(invUC, appLogger),
		},
		Session: []server.RouteRegistrar{
			cartH.NewCartHandler(cartUC, appLogger),
		},
		Auth: authH.NewAuthHandler(authUC, upstream, appLogger),
	})

	httpServer := &http.Server{
		Addr:              normalizePort(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 7. gRPC health surface
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.UnaryLogging(appLogger)),
	)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", normalizePort(cfg.Server.GRPCPort))
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	// 8. Stock event listener
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaConsumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

		invListener := invListenerPkg.NewInventoryListener(kafkaConsumer, invUC, appLogger)
		g.Go(func() error {
			invListener.Start(gctx)
			return nil
		})
	}

	g.Go(func() error {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		appLogger.Info("Starting gRPC server", zap.String("port", lis.Addr().String()))
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		return grpcServer.Serve(lis)
	})

	// Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		grpcServer.GracefulStop()
		return err
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server stopped with error", zap.Error(err))
		return
	}
	appLogger.Info("Server stopped")
}

func normalizePort(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
