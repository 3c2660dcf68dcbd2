package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	notificationApp "github.com/parlourcover/parlour/internal/application/notification"
	permissionApp "github.com/parlourcover/parlour/internal/application/permission"
	"github.com/parlourcover/parlour/internal/domain/shared/events"
	"github.com/parlourcover/parlour/internal/infrastructure/auth"
	"github.com/parlourcover/parlour/internal/infrastructure/cache"
	"github.com/parlourcover/parlour/internal/infrastructure/config"
	"github.com/parlourcover/parlour/internal/infrastructure/document"
	"github.com/parlourcover/parlour/internal/infrastructure/email"
	"github.com/parlourcover/parlour/internal/infrastructure/metrics"
	"github.com/parlourcover/parlour/internal/infrastructure/permission"
	"github.com/parlourcover/parlour/internal/infrastructure/ratelimit"
	"github.com/parlourcover/parlour/internal/interfaces/http/middleware"
	shareddb "github.com/parlourcover/parlour/internal/shared/db"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

const (
	eventBufferSize     = 256
	loginRateLimitKey   = "parlour:ratelimit:login"
	loginRateLimitSpan  = time.Minute
	redisConnectTimeout = 5 * time.Second
)

// Container holds all infrastructure components, repositories, use cases and
// handlers. It is responsible for wiring everything together and providing a
// Shutdown() method for graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Metrics
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware        *middleware.AuthMiddleware
	serviceAuthMiddleware *middleware.ServiceAuthMiddleware
	permissionMiddleware  *middleware.PermissionMiddleware
	rateLimiter           *middleware.RateLimiter

	// Auth services
	jwtSvc *auth.JWTService
	hasher *auth.BcryptPasswordHasher

	// Shared application infrastructure
	txManager           *shareddb.TransactionManager
	renderer            *document.Renderer
	eventDispatcher     *events.InMemoryEventDispatcher
	notificationService *notificationApp.Service
}

// NewContainer creates a Container with all dependencies wired together and
// the event dispatcher running.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, Metrics, Repositories, Documents
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Auth - JWT, Passwords, RBAC, Rate Limiting
	if err := c.initAuth(); err != nil {
		return nil, err
	}

	// Section 3: Events - Dispatcher and Email Notifications
	if err := c.initEvents(); err != nil {
		return nil, err
	}

	// Section 4: Use cases and handlers
	c.ucs = c.newUseCases()
	c.hdlrs = c.newHandlers()

	return c, nil
}

// ============================================================
// Section 1: Infrastructure
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg

	c.redis = initRedis(cfg, c.log)

	if cfg.Metrics.Enabled {
		c.registry = prometheus.NewRegistry()
		c.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		c.metrics = metrics.New(c.registry)
	}

	c.repos = newRepositories(c.db, c.log)
	c.txManager = shareddb.NewTransactionManager(c.db)

	renderer, err := document.NewRenderer(cfg.Documents.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize document renderer: %w", err)
	}
	c.renderer = renderer

	return nil
}

// initRedis connects to Redis. The API still runs without it; login rate
// limiting then falls back to a per-process limiter.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
	defer cancel()

	client, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Warnw("redis unavailable, using in-memory rate limiting", "error", err)
		return nil
	}
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())
	return client
}

// ============================================================
// Section 2: Auth
// ============================================================

func (c *Container) initAuth() error {
	cfg := c.cfg
	log := c.log

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	enforcer, err := permission.NewEnforcer(c.db, log)
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}
	permissionService := permissionApp.NewService(enforcer, log)

	var limiter ratelimit.RateLimiter
	if c.redis != nil {
		limiter = ratelimit.NewRedisRateLimiter(c.redis, loginRateLimitKey)
	} else {
		limiter = ratelimit.NewMemoryRateLimiter()
	}

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.serviceAuthMiddleware = middleware.NewServiceAuthMiddleware(cfg.Auth.ServiceAccounts, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(permissionService, log)
	c.rateLimiter = middleware.NewRateLimiter(limiter, cfg.Auth.LoginRateLimit, loginRateLimitSpan, log)

	return nil
}

// ============================================================
// Section 3: Events
// ============================================================

func (c *Container) initEvents() error {
	log := c.log

	c.eventDispatcher = events.NewInMemoryEventDispatcher(eventBufferSize, log)

	sender := email.NewSender(c.cfg.Email, log)
	c.notificationService = notificationApp.NewService(
		c.repos.notificationRepo,
		c.repos.parlourRepo,
		email.NewComposer(),
		sender,
		c.renderer,
		log,
	)
	if err := c.notificationService.Subscribe(c.eventDispatcher); err != nil {
		return fmt.Errorf("failed to subscribe notifications: %w", err)
	}

	if err := c.eventDispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	log.Infow("event dispatcher started")
	return nil
}

// Shutdown stops the event dispatcher, draining queued notifications, and
// closes Redis.
func (c *Container) Shutdown() {
	if c.eventDispatcher != nil {
		if err := c.eventDispatcher.Stop(); err != nil {
			c.log.Errorw("failed to stop event dispatcher", "error", err)
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Errorw("failed to close redis client", "error", err)
		}
	}
}
