package memory

import (
	"context"
	"sync"
	"time"

	"trivia-quiz-service/internal/domain"
)

// LeaderboardCache holds the computed leaderboard for a short TTL. It is the
// fallback used when no Redis address is configured.
type LeaderboardCache struct {
	ttl   time.Duration
	clock func() time.Time

	mu        sync.RWMutex
	entries   []domain.GameSummary
	valid     bool
	expiresAt time.Time
}

func NewLeaderboardCache(ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{ttl: ttl, clock: time.Now}
}

func (c *LeaderboardCache) Get(_ context.Context) ([]domain.GameSummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid || !c.expiresAt.After(c.clock()) {
		return nil, false
	}
	return c.entries, true
}

func (c *LeaderboardCache) Set(_ context.Context, entries []domain.GameSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
	c.valid = true
	c.expiresAt = c.clock().Add(c.ttl)
}

func (c *LeaderboardCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.entries = nil
}
