package service

import (
	"context"
	"encoding/json"
	"testing"

	"mergington-api/internal/domain"
	"mergington-api/internal/registry"
	"mergington-api/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupCachedService(t *testing.T) (*miniredis.Miniredis, *redis.Client, ActivityService) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cache, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	svc := NewActivityService(registry.NewStore(), cache, zap.NewNop())
	return mr, cache, svc
}

func TestGetActivities_WithoutCache(t *testing.T) {
	svc := NewActivityService(registry.NewStore(), nil, zap.NewNop())

	activities, err := svc.GetActivities(context.Background())

	require.NoError(t, err)
	require.Len(t, activities, 3)
	assert.Equal(t, 12, activities["Chess Club"].MaxParticipants)
}

func TestGetActivities_PopulatesCache(t *testing.T) {
	mr, cache, svc := setupCachedService(t)

	_, err := svc.GetActivities(context.Background())
	require.NoError(t, err)

	cached, err := mr.Get(cache.KeyBuilder.KeyActivitiesAll())
	require.NoError(t, err)

	var activities map[string]*domain.Activity
	require.NoError(t, json.Unmarshal([]byte(cached), &activities))
	assert.Len(t, activities, 3)
}

func TestGetActivities_ServesFromCache(t *testing.T) {
	mr, cache, svc := setupCachedService(t)

	// Plant a listing that differs from the registry; a cache hit must
	// return it verbatim.
	planted := map[string]*domain.Activity{
		"Planted Club": {
			Description:     "from cache",
			Schedule:        "never",
			MaxParticipants: 1,
			Participants:    []string{},
		},
	}
	payload, err := json.Marshal(planted)
	require.NoError(t, err)
	require.NoError(t, mr.Set(cache.KeyBuilder.KeyActivitiesAll(), string(payload)))

	activities, err := svc.GetActivities(context.Background())
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "from cache", activities["Planted Club"].Description)
}

func TestGetActivities_CorruptedCacheFallsBack(t *testing.T) {
	mr, cache, svc := setupCachedService(t)

	require.NoError(t, mr.Set(cache.KeyBuilder.KeyActivitiesAll(), "{not json"))

	activities, err := svc.GetActivities(context.Background())
	require.NoError(t, err)
	assert.Len(t, activities, 3)
}

func TestSignUp_InvalidatesCache(t *testing.T) {
	mr, cache, svc := setupCachedService(t)
	ctx := context.Background()

	_, err := svc.GetActivities(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.KeyBuilder.KeyActivitiesAll()))

	message, err := svc.SignUp(ctx, "Chess Club", "newstudent@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, "Signed up newstudent@mergington.edu for Chess Club", message)

	assert.False(t, mr.Exists(cache.KeyBuilder.KeyActivitiesAll()))

	activities, err := svc.GetActivities(ctx)
	require.NoError(t, err)
	assert.Contains(t, activities["Chess Club"].Participants, "newstudent@mergington.edu")
}

func TestSignUp_FailureLeavesCacheIntact(t *testing.T) {
	mr, cache, svc := setupCachedService(t)
	ctx := context.Background()

	_, err := svc.GetActivities(ctx)
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "Chess Club", "michael@mergington.edu")
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)

	// Nothing changed, so the cached listing is still valid.
	assert.True(t, mr.Exists(cache.KeyBuilder.KeyActivitiesAll()))
}

func TestUnregister_InvalidatesCache(t *testing.T) {
	mr, cache, svc := setupCachedService(t)
	ctx := context.Background()

	_, err := svc.GetActivities(ctx)
	require.NoError(t, err)

	message, err := svc.Unregister(ctx, "Chess Club", "michael@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, "Unregistered michael@mergington.edu from Chess Club", message)

	assert.False(t, mr.Exists(cache.KeyBuilder.KeyActivitiesAll()))
}

func TestMutations_PassThroughSentinelErrors(t *testing.T) {
	svc := NewActivityService(registry.NewStore(), nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "NonExistent Activity", "test@mergington.edu")
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)

	_, err = svc.Unregister(ctx, "NonExistent Activity", "test@mergington.edu")
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)

	_, err = svc.Unregister(ctx, "Chess Club", "notregistered@mergington.edu")
	assert.ErrorIs(t, err, domain.ErrNotRegistered)
}

func TestGetActivities_RedisDownFallsBack(t *testing.T) {
	mr, _, svc := setupCachedService(t)

	mr.Close()

	activities, err := svc.GetActivities(context.Background())
	require.NoError(t, err)
	assert.Len(t, activities, 3)
}
