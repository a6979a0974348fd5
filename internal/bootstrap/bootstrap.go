package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/pradipta/sijadwal/docs" // Import generated swagger docs
	appControllers "github.com/pradipta/sijadwal/internal/app/controllers"
	appMigrations "github.com/pradipta/sijadwal/internal/app/migrations"
	"github.com/pradipta/sijadwal/internal/app/remote"
	appRoutes "github.com/pradipta/sijadwal/internal/app/routes"
	appServices "github.com/pradipta/sijadwal/internal/app/services"
	"github.com/pradipta/sijadwal/internal/config"
	"github.com/pradipta/sijadwal/internal/db"
	appMiddleware "github.com/pradipta/sijadwal/internal/middleware"
	pkgAuth "github.com/pradipta/sijadwal/internal/pkg/auth"
	"github.com/pradipta/sijadwal/internal/pkg/helpers"
	"github.com/pradipta/sijadwal/internal/pkg/logger"
	"github.com/pradipta/sijadwal/internal/pkg/websocket"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	ScheduleService    *appServices.ScheduleService
	AuthService        *appServices.AuthService
	Poller             *appServices.Poller
	Hub                *websocket.Hub
	WSHandler          *websocket.Handler
	AuthController     *appControllers.AuthController
	ScheduleController *appControllers.ScheduleController
	DatasetController  *appControllers.DatasetController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	JWTService         *pkgAuth.JWTService
	Logger             zerolog.Logger

	// Database is non-nil only for the postgres remote driver.
	Database *db.PostgresDB
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
// Only used with the postgres remote driver.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := filepath.Join("internal", "app", "migrations")
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return database, nil
}

// buildRemoteStore selects the remote store implementation from config.
func buildRemoteStore(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (remote.Store, error) {
	switch cfg.Remote.Driver {
	case config.RemoteDriverHTTPAPI:
		httpClient := &http.Client{
			Timeout: helpers.ParseDuration(cfg.Remote.Timeout, 15*time.Second),
		}
		return remote.NewHTTPClient(cfg.Remote.BaseURL, httpClient, lgr), nil

	case config.RemoteDriverPostgres:
		database, err := SetupDatabase(cfg, lgr)
		if err != nil {
			return nil, err
		}
		deps.Database = database
		return remote.NewPostgresStore(database.Pool, lgr), nil

	default:
		return nil, fmt.Errorf("unknown remote driver: %q", cfg.Remote.Driver)
	}
}

// BuildDependencies initializes the remote store, services, and controllers.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	store, err := buildRemoteStore(cfg, deps, lgr)
	if err != nil {
		return nil, err
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.ScheduleService = appServices.NewScheduleService(store, appServices.ScheduleServiceOptions{
		ResyncDelay:    helpers.ParseDuration(cfg.Remote.ResyncDelay, time.Second),
		DeleteThrottle: helpers.ParseDuration(cfg.Remote.DeleteThrottle, 150*time.Millisecond),
	}, lgr)

	deps.AuthService = appServices.NewAuthService(
		cfg.Auth.AdminUsername,
		cfg.Auth.AdminPasswordHash,
		deps.JWTService,
		lgr,
	)

	deps.Hub = websocket.NewHub(lgr)
	deps.WSHandler = websocket.NewHandler(deps.Hub, lgr)
	deps.ScheduleService.SetOnChange(deps.Hub.NotifyDatasetUpdated)

	pollInterval := helpers.ParseDuration(cfg.Remote.PollInterval, 30*time.Second)
	deps.Poller = appServices.NewPoller(deps.ScheduleService, pollInterval, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ScheduleController = appControllers.NewScheduleController(deps.ScheduleService, lgr)
	deps.DatasetController = appControllers.NewDatasetController(deps.ScheduleService, lgr)

	return deps, nil
}

// WarmDataset performs the cold load of the schedule dataset. A failure
// is logged but not fatal; the poller retries in the background.
func WarmDataset(deps *Dependencies, lgr zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := deps.ScheduleService.Refresh(ctx); err != nil {
		lgr.Warn().Err(err).Msg("Initial dataset load failed, will retry on next poll")
		return
	}
	lgr.Info().Msg("Initial dataset loaded.")
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ScheduleController,
		deps.DatasetController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
