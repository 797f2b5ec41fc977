package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/findyourpeers/peers/internal/app/controllers"
	"github.com/findyourpeers/peers/internal/app/migrations"
	"github.com/findyourpeers/peers/internal/app/repositories"
	"github.com/findyourpeers/peers/internal/app/routes"
	"github.com/findyourpeers/peers/internal/app/services"
	"github.com/findyourpeers/peers/internal/config"
	"github.com/findyourpeers/peers/internal/db"
	"github.com/findyourpeers/peers/internal/middleware"
	"github.com/findyourpeers/peers/internal/pkg/auth"
	"github.com/findyourpeers/peers/internal/pkg/filestorage"
	"github.com/findyourpeers/peers/internal/pkg/helpers"
	"github.com/findyourpeers/peers/internal/pkg/logger"
	"github.com/findyourpeers/peers/internal/pkg/websocket"
	"github.com/findyourpeers/peers/internal/seed"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// multipartOverhead leaves room for the text fields and boundaries that
// travel alongside the photo.
const multipartOverhead = 1 << 20

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos      *repositories.Repositories
	JWTService *auth.JWTService
	BlobStore  filestorage.BlobStore
	Hub        *websocket.Hub

	AuthService     *services.AuthService
	GroupService    *services.GroupService
	FavoriteService *services.FavoriteService
	PostService     *services.PostService

	AuthController     *controllers.AuthController
	GroupController    *controllers.GroupController
	FavoriteController *controllers.FavoriteController
	PostController     *controllers.PostController
	PostFeedHandler    *websocket.Handler
	AuthMiddleware     *middleware.AuthMiddleware

	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	level := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  level,
		Pretty: strings.EqualFold(cfg.Logging.Format, "text"),
	})

	lgr.Info().Str("logLevel", string(level)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := migrations.NewMigrator(dbPool).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		dbPool.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if !cfg.IsProduction() {
		users := repositories.NewUserRepository(dbPool)
		if err := seed.CreateDefaultData(ctx, users, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// NewBlobStore picks the photo store named by the storage driver.
func NewBlobStore(cfg *config.Config) (filestorage.BlobStore, error) {
	switch strings.ToLower(cfg.Storage.Driver) {
	case config.StorageDriverSupabase:
		return filestorage.NewSupabaseStorage(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseKey, cfg.Storage.Bucket), nil
	case config.StorageDriverLocal:
		local, err := filestorage.NewLocalStorage(cfg.Storage.LocalPath, cfg.BaseURL())
		if err != nil {
			return nil, err
		}
		return local, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = repositories.NewRepositories(dbPool)

	blobs, err := NewBlobStore(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.BlobStore = blobs
	lgr.Info().Str("driver", cfg.Storage.Driver).Msg("File storage initialized")

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Hub = websocket.NewHub(logger.Component("post-feed"))

	deps.AuthService = services.NewAuthService(deps.Repos.UserRepository, deps.JWTService, logger.Component("auth"))
	deps.GroupService = services.NewGroupService(
		deps.Repos.GroupRepository,
		deps.BlobStore,
		services.PhotoLimits{
			MaxWidth:  cfg.Storage.PhotoMaxWidth,
			MaxHeight: cfg.Storage.PhotoMaxHeight,
			MaxPixels: cfg.Storage.PhotoMaxPixels,
			MaxBytes:  cfg.Storage.MaxUploadBytes,
		},
		logger.Component("groups"),
	)
	deps.FavoriteService = services.NewFavoriteService(deps.Repos.FavoriteRepository, deps.Repos.GroupRepository, logger.Component("favorites"))
	deps.PostService = services.NewPostService(deps.Repos.PostRepository, deps.Repos.GroupRepository, deps.Hub, logger.Component("posts"))

	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = controllers.NewAuthController(deps.AuthService)
	deps.GroupController = controllers.NewGroupController(deps.GroupService)
	deps.FavoriteController = controllers.NewFavoriteController(deps.FavoriteService)
	deps.PostController = controllers.NewPostController(deps.PostService)
	deps.PostFeedHandler = websocket.NewHandler(deps.Hub, deps.Repos.GroupRepository, logger.Component("post-feed"))

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(lgr))
	router.Use(middleware.BodyLimit(cfg.Storage.MaxUploadBytes + multipartOverhead))
	router.MaxMultipartMemory = cfg.Storage.MaxUploadBytes

	routes.SetupSwagger(router)

	routes.SetupRouter(router, routes.Handlers{
		Auth:      deps.AuthController,
		Groups:    deps.GroupController,
		Favorites: deps.FavoriteController,
		Posts:     deps.PostController,
		PostFeed:  deps.PostFeedHandler,
	}, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
