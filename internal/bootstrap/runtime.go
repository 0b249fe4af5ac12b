// Package bootstrap assembles the runtime dependency graph shared by the
// server and the command-line tools.
package bootstrap

import (
	"errors"
	"fmt"

	"soupbox/internal/cache"
	"soupbox/internal/config"
	"soupbox/internal/database"
	"soupbox/internal/featureflags"
	"soupbox/internal/middleware"
	"soupbox/internal/observability"
	"soupbox/internal/repository"
	"soupbox/internal/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Runtime holds the connected stores and the services built on them.
type Runtime struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Cache    *cache.Store
	Flags    *featureflags.Manager
	Soups    *service.SoupService
	Comments *service.CommentService
	Users    *service.UserService
}

// InitRuntime connects to the database and Redis and wires the services.
// Redis is optional: when it is unreachable the runtime runs without cache.
func InitRuntime(cfg *config.Config) (*Runtime, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	middleware.Logger = middleware.NewLogger(cfg.Env)
	observability.SetLogger(middleware.Logger)

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = cache.InitRedis(cfg.RedisURL)
	}

	return NewRuntime(cfg, db, rdb), nil
}

// NewRuntime wires services over already-initialized stores. rdb may be nil.
func NewRuntime(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Runtime {
	var store *cache.Store
	if rdb != nil {
		store = cache.New(rdb)
	}
	flags := featureflags.NewManager(cfg.FeatureFlags)

	soupRepo := repository.NewSoupRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	userRepo := repository.NewUserRepository(db)

	comments := service.NewCommentService(commentRepo, repository.NewStarRepository(db, repository.CommentStars))

	return &Runtime{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Cache:    store,
		Flags:    flags,
		Soups:    service.NewSoupService(soupRepo, repository.NewStarRepository(db, repository.SoupStars), comments, store, flags),
		Comments: comments,
		Users:    service.NewUserService(userRepo, soupRepo, commentRepo),
	}
}

// Close releases the database pool and the Redis client.
func (r *Runtime) Close() error {
	var errs []error
	if r.DB != nil {
		if sqlDB, err := r.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	if r.Redis != nil {
		errs = append(errs, r.Redis.Close())
	}
	return errors.Join(errs...)
}
