package redis

import (
	"context"
	"encoding/json"
	"time"

	"trivia-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "trivia:leaderboard"

// LeaderboardCache stores the computed leaderboard snapshot in Redis so
// polling clients do not force a full recompute on every request. All
// operations are best-effort: on any Redis error the caller just recomputes.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{client: client, ttl: ttl}
}

func (c *LeaderboardCache) Get(ctx context.Context) ([]domain.GameSummary, bool) {
	raw, err := c.client.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []domain.GameSummary
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (c *LeaderboardCache) Set(ctx context.Context, entries []domain.GameSummary) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, leaderboardKey, raw, c.ttl).Err()
}

func (c *LeaderboardCache) Invalidate(ctx context.Context) {
	_ = c.client.Del(ctx, leaderboardKey).Err()
}
