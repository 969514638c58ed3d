package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/quickserve/catalog-service/config"
	"github.com/quickserve/catalog-service/internal/events"
	"github.com/quickserve/catalog-service/internal/logger"
	"github.com/quickserve/catalog-service/internal/search"

	catH "github.com/quickserve/catalog-service/internal/category/handler"
	catRepoPkg "github.com/quickserve/catalog-service/internal/category/repository"
	catUCPkg "github.com/quickserve/catalog-service/internal/category/usecase"

	subH "github.com/quickserve/catalog-service/internal/subcategory/handler"
	subRepoPkg "github.com/quickserve/catalog-service/internal/subcategory/repository"
	subUCPkg "github.com/quickserve/catalog-service/internal/subcategory/usecase"

	itemH "github.com/quickserve/catalog-service/internal/item/handler"
	itemRepoPkg "github.com/quickserve/catalog-service/internal/item/repository"
	itemUCPkg "github.com/quickserve/catalog-service/internal/item/usecase"
)

// CustomValidator plugs go-playground/validator into Echo.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.Config{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger, err := logger.New(logConfig)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := sqlx.Connect("pgx", cfg.Postgres.DSN())
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second)
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Elasticsearch (optional)
	var esClient *search.Client
	if len(cfg.Elastic.Addresses) > 0 {
		esClient, err = search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch, search falls back to the database", zap.Error(err))
			esClient = nil
		} else {
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 5. Initialize event publisher (optional)
	publisher := events.NewPublisher(&events.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	}, appLogger)
	defer publisher.Close()
	if publisher != nil {
		appLogger.Info("Publishing catalog events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// 6. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	subRepo := subRepoPkg.NewPGRepository(db)
	itemRepo := itemRepoPkg.NewPGRepository(db)

	// 7. Initialize UseCases
	catUC := catUCPkg.NewCategoryUseCase(catRepo, subRepo, itemRepo, publisher, appLogger)
	subUC := subUCPkg.NewSubCategoryUseCase(subRepo, catRepo, itemRepo, publisher, appLogger)
	itemUC := itemUCPkg.NewItemUseCase(itemRepo, catRepo, subRepo, esClient, publisher, appLogger)

	// 8. HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(echoMiddleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	catH.NewCategoryHandler(catUC, appLogger).MapRoutes(e)
	subH.NewSubCategoryHandler(subUC, appLogger).MapRoutes(e)
	itemH.NewItemHandler(itemUC, appLogger).MapRoutes(e)

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))
	go func() {
		if err := e.Start(port); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
