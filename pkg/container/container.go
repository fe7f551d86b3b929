package container

import (
	"context"
	"fmt"
	"time"

	"bookcatalog/internal/config"
	infraCache "bookcatalog/internal/infrastructure/cache"
	"bookcatalog/internal/infrastructure/database"
	"bookcatalog/internal/shared/core"
	txdb "bookcatalog/pkg/database"
	"bookcatalog/pkg/logger"

	authorHandler "bookcatalog/internal/domains/author/handler"
	authorRepo "bookcatalog/internal/domains/author/repository"
	authorService "bookcatalog/internal/domains/author/service"
	bookHandler "bookcatalog/internal/domains/book/handler"
	bookRepo "bookcatalog/internal/domains/book/repository"
	bookService "bookcatalog/internal/domains/book/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every application dependency, built once at startup
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config *config.Config
	DB     *database.PostgresDB
	Redis  *infraCache.RedisClient // nil when REDIS_ENABLED=false or unreachable
	Tx     txdb.TxManager
	Clock  core.Clock

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface
	BookQuery  bookRepo.QueryServiceInterface

	// ========================================
	// SERVICE LAYER (USE CASES)
	// ========================================
	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph in order:
// 1. Config
// 2. Infrastructure (DB, Redis)
// 3. Repositories
// 4. Services
// 5. Handlers
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	logger.Info("Initializing DI container", map[string]interface{}{
		"environment": cfg.App.Environment,
		"version":     cfg.App.Version,
	})

	c.Clock = core.SystemClock{Location: cfg.Location()}

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	c.Tx = txdb.NewTxManager(db.Pool)

	// ========================================
	// STEP 3: INITIALIZE REDIS (optional)
	// ========================================
	if cfg.Redis.Enabled {
		rc := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Connect(ctx); err != nil {
			// Redis only feeds the health report - not critical
			logger.Warn("Redis connection failed (non-critical)", map[string]interface{}{
				"error": err.Error(),
			})
		}
		c.Redis = rc
	}

	// ========================================
	// STEP 4-6: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("DI container ready", nil)
	return c, nil
}

func (c *Container) initRepositories() {
	c.AuthorRepo = authorRepo.NewPostgresRepository(c.DB.Pool)
	c.BookRepo = bookRepo.NewPostgresRepository(c.DB.Pool)
	c.BookQuery = bookRepo.NewQueryService(c.DB.Pool)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.Tx, c.Clock)
	c.BookService = bookService.NewService(c.BookRepo, c.BookQuery, c.AuthorRepo, c.Tx)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
}

// Cleanup releases infrastructure in reverse order of creation
func (c *Container) Cleanup() {
	logger.Info("Cleaning up container", nil)

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err, nil)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}
}
