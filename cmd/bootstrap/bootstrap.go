package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-intake/config"
	deliveryHttp "clinic-intake/internal/delivery/http"
	"clinic-intake/internal/delivery/http/handler"
	"clinic-intake/internal/delivery/http/middleware"
	"clinic-intake/internal/delivery/http/view"
	"clinic-intake/internal/infrastructure/cache"
	"clinic-intake/internal/infrastructure/database"
	"clinic-intake/internal/infrastructure/messaging"
	"clinic-intake/internal/infrastructure/telemetry"
	"clinic-intake/internal/repository"
	"clinic-intake/internal/service"
	"clinic-intake/internal/usecase"
	"clinic-intake/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	SQLDB       *sql.DB
	RedisClient *redis.Client
	Publisher   messaging.Publisher
	Telemetry   *telemetry.Provider
	Server      *http.Server
}

// New loads configuration from configPath and the environment, then wires
// every dependency. Whatever was opened before a failure is closed again.
func New(configPath string) (*App, error) {
	app := &App{}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := setupLogger(cfg.App)
	app.Log = log
	log.Info("Configuration loaded successfully")

	if err := app.init(); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

func (app *App) init() error {
	cfg, log := app.Config, app.Log

	provider, err := telemetry.InitProvider(context.Background(), cfg.Telemetry, cfg.App.Env, log)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	app.Telemetry = provider

	db, sqlDB, err := database.NewPostgresConnection(cfg.DB, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	app.SQLDB = sqlDB

	if err := database.EnsureSchema(db); err != nil {
		return err
	}
	log.Info("Database schema ready")

	throttle := service.NewNoopSubmissionThrottle()
	if cfg.Throttle.Enabled() {
		redisClient, err := cache.NewRedisClient(cfg.Redis, log)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		throttle = service.NewRedisSubmissionThrottle(redisClient, log, cfg.Throttle.Limit, cfg.Throttle.Window)
		log.Infof("Submission throttle enabled: %d per %s", cfg.Throttle.Limit, cfg.Throttle.Window)
	}

	app.Publisher = messaging.NoopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		publisher, err := messaging.NewRabbitMQPublisher(cfg.RabbitMQ.URL, log)
		if err != nil {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		app.Publisher = publisher
	}

	server, err := initializeServer(cfg, log, db, throttle, app.Publisher)
	if err != nil {
		return err
	}
	app.Server = server

	return nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return logrus.StandardLogger()
}

// initializeServer creates and configures the HTTP server
func initializeServer(
	cfg *config.Config,
	log *logrus.Logger,
	db *gorm.DB,
	throttle service.SubmissionThrottle,
	publisher messaging.Publisher,
) (*http.Server, error) {
	accessor, err := database.NewAccessor(db)
	if err != nil {
		return nil, err
	}

	views, err := view.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	customValidator := validator.NewValidator(time.Now)

	intakeRepo := repository.NewPatientIntakeRepository()

	intakeUsecase := usecase.NewIntakeUsecase(database.NewScopedConnector(), log, intakeRepo, publisher)

	intakeHandler := handler.NewIntakeHandler(intakeUsecase, customValidator, throttle, views, metrics, log)

	router := deliveryHttp.NewRouter(
		cfg.Telemetry.ServiceName,
		intakeHandler,
		middleware.NewRequestLoggerMiddleware(log),
		middleware.NewSecurityHeadersMiddleware(),
		middleware.NewDBScopeMiddleware(accessor, log),
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close releases every connection that was opened. Safe on a partially
// initialized App.
func (app *App) Close() {
	if app.Publisher != nil {
		if err := app.Publisher.Close(); err != nil {
			app.Log.Warnf("Failed to close publisher: %v", err)
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	if app.SQLDB != nil {
		app.SQLDB.Close()
	}

	if app.Telemetry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		app.Telemetry.Shutdown(ctx)
	}
}
