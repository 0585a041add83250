package redis

import (
	"context"
	"testing"
	"time"

	"trivia-quiz-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestLeaderboardCacheRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewLeaderboardCache(client, time.Minute)
	ctx := context.Background()

	if _, ok := cache.Get(ctx); ok {
		t.Fatalf("expected miss on empty cache")
	}

	entries := []domain.GameSummary{
		{PlayerAlias: "player1", Score: 112, QuestionsAnswered: 6, Finished: true},
		{PlayerAlias: "player2", Score: 8, QuestionsAnswered: 2},
	}
	cache.Set(ctx, entries)

	got, ok := cache.Get(ctx)
	if !ok {
		t.Fatalf("expected hit after set")
	}
	if len(got) != 2 || got[0].PlayerAlias != "player1" || got[0].Score != 112 {
		t.Fatalf("unexpected entries: %+v", got)
	}

	cache.Invalidate(ctx)
	if mr.Exists(leaderboardKey) {
		t.Fatalf("expected redis key removed on invalidate")
	}
	if _, ok := cache.Get(ctx); ok {
		t.Fatalf("expected miss after invalidate")
	}
}

func TestLeaderboardCacheExpires(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewLeaderboardCache(client, time.Second)
	ctx := context.Background()

	cache.Set(ctx, []domain.GameSummary{{PlayerAlias: "player1"}})
	mr.FastForward(2 * time.Second)

	if _, ok := cache.Get(ctx); ok {
		t.Fatalf("expected miss after TTL expiry")
	}
}
