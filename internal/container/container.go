package container

import (
	"mergington-api/internal/config"
	"mergington-api/internal/registry"
	"mergington-api/internal/service"
	"mergington-api/pkg/logger"
	"mergington-api/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *logger.Logger
	RedisClient     *redis.Client
	Registry        *registry.Store
	ActivityService service.ActivityService
}

// New creates a new dependency injection container. The activity
// registry is constructed and seeded exactly once here; everything that
// touches roster state receives it through the container.
func New(cfg *config.Config, logger *logger.Logger) (*Container, error) {
	// Initialize Redis client if Redis URL is configured
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, logger.Logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			logger.Info("Redis client initialized successfully")
		}
	} else {
		logger.Info("Redis URL not configured, proceeding without caching")
	}

	store := registry.NewStore()
	activityService := service.NewActivityService(store, redisClient, logger.Logger)

	return &Container{
		Config:          cfg,
		Logger:          logger,
		RedisClient:     redisClient,
		Registry:        store,
		ActivityService: activityService,
	}, nil
}

// GetActivityService returns the activity service
func (c *Container) GetActivityService() service.ActivityService {
	return c.ActivityService
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}
