package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building so staging
// and production deployments can share an instance without collisions.
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{prefix: prefix}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyActivitiesAll returns the prefixed activity-listing cache key.
func (kb *KeyBuilder) KeyActivitiesAll() string {
	return kb.BuildKey(KeyActivitiesAll)
}
