package service

import (
	"context"
	"encoding/json"
	"fmt"

	"mergington-api/internal/domain"
	"mergington-api/internal/registry"
	"mergington-api/pkg/redis"

	"go.uber.org/zap"
)

// activityService implements ActivityService over the in-memory registry
// with an optional Redis cache-aside layer for the activity listing. The
// registry is always the source of truth; the cache only serves reads
// and is invalidated on every successful mutation.
type activityService struct {
	store  *registry.Store
	cache  *redis.Client // nil when Redis is not configured
	logger *zap.Logger
}

// NewActivityService creates an activity service. cache may be nil, in
// which case every read goes straight to the registry.
func NewActivityService(store *registry.Store, cache *redis.Client, logger *zap.Logger) ActivityService {
	return &activityService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// GetActivities returns all activities, serving from the cache when it
// is warm and falling back to the registry on any cache problem.
func (s *activityService) GetActivities(ctx context.Context) (map[string]*domain.Activity, error) {
	if s.cache != nil {
		cacheKey := s.cache.KeyBuilder.KeyActivitiesAll()

		cachedData, err := s.cache.Get(ctx, cacheKey)
		if err == nil && cachedData != "" {
			var activities map[string]*domain.Activity
			unmarshalErr := json.Unmarshal([]byte(cachedData), &activities)
			if unmarshalErr == nil {
				s.logger.Debug("activities cache hit")
				return activities, nil
			}
			s.logger.Warn("activities cache corrupted, falling back to registry",
				zap.Error(unmarshalErr))
		} else if err != nil && !redis.IsNil(err) {
			s.logger.Warn("activities cache error, falling back to registry",
				zap.Error(err))
		}
	}

	activities := s.store.List()

	if s.cache != nil {
		if payload, err := json.Marshal(activities); err == nil {
			cacheKey := s.cache.KeyBuilder.KeyActivitiesAll()
			if err := s.cache.Set(ctx, cacheKey, payload, redis.TTLActivities); err != nil {
				s.logger.Warn("failed to cache activities", zap.Error(err))
			}
		}
	}

	return activities, nil
}

// SignUp adds email to the activity's roster and invalidates the
// listing cache on success.
func (s *activityService) SignUp(ctx context.Context, activityName, email string) (string, error) {
	if err := s.store.SignUp(activityName, email); err != nil {
		return "", err
	}

	s.invalidateListing(ctx)
	s.logger.Info("participant signed up",
		zap.String("activity", activityName),
		zap.String("email", email))

	return fmt.Sprintf("Signed up %s for %s", email, activityName), nil
}

// Unregister removes email from the activity's roster and invalidates
// the listing cache on success.
func (s *activityService) Unregister(ctx context.Context, activityName, email string) (string, error) {
	if err := s.store.Unregister(activityName, email); err != nil {
		return "", err
	}

	s.invalidateListing(ctx)
	s.logger.Info("participant unregistered",
		zap.String("activity", activityName),
		zap.String("email", email))

	return fmt.Sprintf("Unregistered %s from %s", email, activityName), nil
}

// invalidateListing drops the cached activity listing. A failed delete
// is only logged: the TTL bounds staleness and the registry stays
// correct regardless.
func (s *activityService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cache.KeyBuilder.KeyActivitiesAll()); err != nil {
		s.logger.Warn("failed to invalidate activities cache", zap.Error(err))
	}
}
