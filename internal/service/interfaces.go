package service

import (
	"context"

	"mergington-api/internal/domain"
)

// ActivityService defines the roster operations exposed to the HTTP
// layer. Mutations return a human-readable confirmation message on
// success; failures are the domain sentinel errors.
type ActivityService interface {
	// GetActivities returns every activity with its current roster.
	GetActivities(ctx context.Context) (map[string]*domain.Activity, error)

	// SignUp adds email to the activity's roster.
	SignUp(ctx context.Context, activityName, email string) (string, error)

	// Unregister removes email from the activity's roster.
	Unregister(ctx context.Context, activityName, email string) (string, error)
}
