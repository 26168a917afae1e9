package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/alumnilink/internal/app/auth"
	appControllers "github.com/yigit/alumnilink/internal/app/controllers"
	appMigrations "github.com/yigit/alumnilink/internal/app/migrations"
	appRepos "github.com/yigit/alumnilink/internal/app/repositories"
	"github.com/yigit/alumnilink/internal/app/repositories/memory"
	appRoutes "github.com/yigit/alumnilink/internal/app/routes"
	appServices "github.com/yigit/alumnilink/internal/app/services"
	"github.com/yigit/alumnilink/internal/config"
	"github.com/yigit/alumnilink/internal/db"
	appMiddleware "github.com/yigit/alumnilink/internal/middleware"
	pkgAuth "github.com/yigit/alumnilink/internal/pkg/auth"
	"github.com/yigit/alumnilink/internal/pkg/filestorage"
	"github.com/yigit/alumnilink/internal/pkg/helpers"
	"github.com/yigit/alumnilink/internal/pkg/logger"
	"github.com/yigit/alumnilink/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos        *appRepos.Repositories
	Database     *db.PostgresDB // nil with the memory driver
	FileStorage  *filestorage.LocalStorage
	JWTService   *pkgAuth.JWTService
	AuthzService *appAuth.AuthorizationService

	AuthService    *appServices.AuthService
	AdminService   appServices.AdminService
	AlumniService  appServices.AlumniService
	StudentService appServices.StudentService
	ProfileService appServices.ProfileService

	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// Close releases the resources held by the dependencies
func (d *Dependencies) Close() {
	if d.Database != nil {
		d.Database.Close()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
		File: logger.FileConfig{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		},
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupRepositories opens the store selected by database.driver. With the
// postgres driver the pool is connected and migrations are applied.
func SetupRepositories(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, *db.PostgresDB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using the in-memory store, data is lost on restart")
		return memory.NewRepositories(memory.NewStore()), nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsPath
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return appRepos.NewPostgresRepositories(database), database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	if cfg.Security.BcryptCost > 0 {
		pkgAuth.BcryptCost = cfg.Security.BcryptCost
	}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.MaxUploadSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthzService = appAuth.NewAuthorizationService(repos.UserRepository, appAuth.ProfilePolicy(cfg.Security.ProfileAccess))

	deps.AuthService = appServices.NewAuthService(repos, deps.JWTService, cfg.Security.DisableAdminSignup, lgr)
	deps.AdminService = appServices.NewAdminService(repos, lgr)
	deps.AlumniService = appServices.NewAlumniService(repos, lgr)
	deps.StudentService = appServices.NewStudentService(repos, deps.FileStorage, lgr)
	deps.ProfileService = appServices.NewProfileService(repos, deps.AuthzService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.AuthzService)

	deps.Controllers = appRoutes.Controllers{
		Auth:    appControllers.NewAuthController(deps.AuthService, lgr),
		Admin:   appControllers.NewAdminController(deps.AdminService),
		Alumni:  appControllers.NewAlumniController(deps.AlumniService, lgr),
		Student: appControllers.NewStudentController(deps.StudentService, lgr),
		Profile: appControllers.NewProfileController(deps.ProfileService),
		File:    appControllers.NewFileController(deps.FileStorage),
	}

	return deps, nil
}

// SeedData creates the default accounts unless seeding is disabled
func SeedData(ctx context.Context, cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) {
	if cfg.Seed.Skip {
		return
	}

	opts := seed.Options{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
		AccountsFile:  cfg.Seed.AccountsFile,
	}
	if err := seed.CreateDefaultData(ctx, repos, opts, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxUploadSize
	router.Use(
		ginlogger.SetLogger(
			ginlogger.WithLogger(func(_ *gin.Context, _ zerolog.Logger) zerolog.Logger { return lgr }),
			ginlogger.WithSkipPath([]string{"/api/health"}),
		),
		appMiddleware.Recovery(),
		appMiddleware.CORS(cfg.Server.AllowedOrigins),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
