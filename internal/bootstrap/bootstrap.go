package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/seda/hobbyhive/internal/app/controllers"
	appMigrations "github.com/seda/hobbyhive/internal/app/migrations"
	appRepos "github.com/seda/hobbyhive/internal/app/repositories"
	appRoutes "github.com/seda/hobbyhive/internal/app/routes"
	appServices "github.com/seda/hobbyhive/internal/app/services"
	"github.com/seda/hobbyhive/internal/config"
	"github.com/seda/hobbyhive/internal/db"
	appMiddleware "github.com/seda/hobbyhive/internal/middleware"
	pkgAuth "github.com/seda/hobbyhive/internal/pkg/auth"
	"github.com/seda/hobbyhive/internal/pkg/helpers"
	"github.com/seda/hobbyhive/internal/pkg/logger"
	"github.com/seda/hobbyhive/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService             appServices.AuthService
	UserService             appServices.UserService
	CommunityService        appServices.CommunityService
	EventService            appServices.EventService
	ParticipationService    appServices.ParticipationService
	Reconciliation          *appServices.ReconciliationService
	AuthController          *appControllers.AuthController
	UserController          *appControllers.UserController
	CommunityController     *appControllers.CommunityController
	EventController         *appControllers.EventController
	ParticipationController *appControllers.ParticipationController
	AuthMiddleware          *appMiddleware.AuthMiddleware
	Repos                   *appRepos.Repositories
	JWTService              *pkgAuth.JWTService
	Logger                  zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.Session.Secret,
		SessionTokenExp: helpers.ParseDuration(cfg.Session.TokenExpiration, 24*time.Hour),
		TokenIssuer:     cfg.Session.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.Repos.LedgerRepository, lgr)
	deps.CommunityService = appServices.NewCommunityService(
		deps.Repos.CommunityRepository,
		deps.Repos.MembershipRepository,
		deps.Repos.UserRepository,
		lgr,
	)
	deps.EventService = appServices.NewEventService(deps.Repos.EventRepository, deps.Repos.CommunityRepository, lgr)

	deps.ParticipationService = appServices.NewParticipationService(
		appRepos.NewReconcileStore(database),
		deps.Repos.EventRepository,
		deps.Repos.UserRepository,
		deps.Repos.ParticipationRepository,
		lgr,
	)

	deps.Reconciliation = appServices.NewReconciliationService(
		deps.Repos.MembershipRepository,
		helpers.ParseDuration(cfg.Reconciler.SweepInterval, 10*time.Minute),
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.CommunityController = appControllers.NewCommunityController(deps.CommunityService)
	deps.EventController = appControllers.NewEventController(deps.EventService)
	deps.ParticipationController = appControllers.NewParticipationController(deps.ParticipationService)

	return deps, nil
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

	appMiddleware.RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.CommunityController,
		deps.EventController,
		deps.ParticipationController,
		deps.AuthMiddleware,
	)

	return router
}
