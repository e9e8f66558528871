package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/stridelab/stride-api/config"
	"github.com/stridelab/stride-api/handlers"
	"github.com/stridelab/stride-api/middleware"
	"github.com/stridelab/stride-api/repositories"
	"github.com/stridelab/stride-api/repositories/postgres"
	"github.com/stridelab/stride-api/services/identity"
	"github.com/stridelab/stride-api/services/moderation"
	"github.com/stridelab/stride-api/services/mutation"
	"github.com/stridelab/stride-api/services/ratelimit"
	"github.com/stridelab/stride-api/services/standing"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Redis  *redis.Client
	Logger *zap.Logger

	// Repositories
	Accounts  repositories.AccountRepository
	Profiles  repositories.ProfileRepository
	Follows   repositories.FollowRepository
	TxManager repositories.TransactionManager

	// Pipeline stages
	Admission  *ratelimit.Service
	Identity   *identity.Service
	Standing   *standing.Service
	Moderation *moderation.Gate
	Mutation   *mutation.Service

	// Middleware
	AdmissionMiddleware *middleware.AdmissionMiddleware
	IdentityMiddleware  *middleware.IdentityMiddleware

	// Handlers
	ProfileHandler *handlers.ProfileHandler
	FollowHandler  *handlers.FollowHandler
	ChatHandler    *handlers.ChatHandler
	HealthHandler  *handlers.HealthHandler
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	db, err := postgres.NewDB(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.DB = db

	if err := db.InitSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	deps.Accounts = postgres.NewAccountRepository(db, logger)
	deps.Profiles = postgres.NewProfileRepository(db, logger)
	deps.Follows = postgres.NewFollowRepository(db, logger)
	deps.TxManager = postgres.NewTransactionManager(db, logger)

	deps.initAdmission(cfg, logger)

	deps.Identity = identity.NewService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, deps.Accounts, logger)
	deps.Standing = standing.NewService(logger)
	deps.Moderation = moderation.NewGate(cfg.Moderation.BlockScore, logger)
	deps.Mutation = mutation.NewService(deps.TxManager, deps.Profiles, deps.Follows, logger)

	deps.IdentityMiddleware = middleware.NewIdentityMiddleware(deps.Identity, deps.Standing, logger)

	deps.ProfileHandler = handlers.NewProfileHandler(deps.Mutation, deps.Profiles, deps.Moderation, logger)
	deps.FollowHandler = handlers.NewFollowHandler(deps.Mutation, logger)
	deps.ChatHandler = handlers.NewChatHandler(deps.Moderation, logger)
	deps.HealthHandler = handlers.NewHealthHandler(db, deps.redisChecker(), logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initAdmission wires the admission controller. With REDIS_ADDR set the
// fixed-window counters are shared across instances; otherwise an in-process
// store is used, which only enforces per-instance (development mode).
func (d *Dependencies) initAdmission(cfg *config.Config, logger *zap.Logger) {
	var store ratelimit.CounterStore
	if cfg.Redis.Addr != "" {
		d.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = ratelimit.NewRedisCounterStore(d.Redis)
		logger.Info("admission counters on redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		store = ratelimit.NewMemoryCounterStore()
		logger.Warn("admission counters in process memory; limits are per-instance")
	}

	d.Admission = ratelimit.NewService(store, logger)
	d.AdmissionMiddleware = middleware.NewAdmissionMiddleware(
		d.Admission,
		cfg.RateLimit.WindowSeconds,
		cfg.RateLimit.MaxRequests,
		cfg.RateLimit.OverloadRPS,
		cfg.RateLimit.OverloadBurst,
		logger,
	)
}

// redisChecker adapts the redis client to the health DependencyChecker; nil
// when redis is not configured
func (d *Dependencies) redisChecker() handlers.DependencyChecker {
	if d.Redis == nil {
		return nil
	}
	return &redisHealth{rdb: d.Redis}
}

type redisHealth struct {
	rdb *redis.Client
}

// HealthCheck pings the redis server
func (r *redisHealth) HealthCheck(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Close releases infrastructure resources
func (d *Dependencies) Close() error {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
