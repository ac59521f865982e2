package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/skillswap/skillswap/internal/dto"
	"github.com/skillswap/skillswap/pkg/database"
)

const (
	topProfilesKey = "explore:top:profiles"
	topProfilesTTL = time.Minute
)

// TopProfilesCache caches the explore-top result in Redis. The list changes
// only as fast as impressions accrue, so a short TTL is the whole
// invalidation story.
type TopProfilesCache struct {
	redis *database.Redis
}

// NewTopProfilesCache creates a new top profiles cache
func NewTopProfilesCache(redis *database.Redis) *TopProfilesCache {
	return &TopProfilesCache{redis: redis}
}

// Get returns the cached top list, or ok=false on miss or decode failure
func (c *TopProfilesCache) Get(ctx context.Context) ([]*dto.TopProfile, bool) {
	raw, err := c.redis.Client.Get(ctx, topProfilesKey).Bytes()
	if err != nil {
		// Miss and broken cache look the same; neither may break the endpoint
		return nil, false
	}

	var profiles []*dto.TopProfile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, false
	}

	return profiles, true
}

// Set stores the top list with the cache TTL
func (c *TopProfilesCache) Set(ctx context.Context, profiles []*dto.TopProfile) error {
	raw, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("failed to encode top profiles: %w", err)
	}

	if err := c.redis.Client.Set(ctx, topProfilesKey, raw, topProfilesTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache top profiles: %w", err)
	}

	return nil
}
