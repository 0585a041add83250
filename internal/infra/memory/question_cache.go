package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/game"
	"golang.org/x/sync/singleflight"
)

// QuestionCache fronts a question repository with a TTL cache of the full
// bank, so the hot submit path does not hit the database for every lookup.
// Edits write through and drop the cached bank, which keeps the live-answer
// semantics: the next evaluation sees the edited answer.
type QuestionCache struct {
	source game.QuestionRepository
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	bank      []domain.Question
	expiresAt time.Time
}

func NewQuestionCache(source game.QuestionRepository, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) List(ctx context.Context) ([]domain.Question, error) {
	now := c.clock()

	c.mu.RLock()
	if c.bank != nil && c.expiresAt.After(now) {
		bank := c.bank
		c.mu.RUnlock()
		return bank, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("bank", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.bank != nil && c.expiresAt.After(now) {
			bank := c.bank
			c.mu.RUnlock()
			return bank, nil
		}
		c.mu.RUnlock()

		bank, err := c.source.List(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.bank = bank
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return bank, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *QuestionCache) ListByTier(ctx context.Context, tier domain.Tier) ([]domain.Question, error) {
	bank, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Question, 0, len(bank))
	for _, q := range bank {
		if q.Tier == tier {
			out = append(out, q)
		}
	}
	return out, nil
}

func (c *QuestionCache) Get(ctx context.Context, id int64) (domain.Question, error) {
	bank, err := c.List(ctx)
	if err != nil {
		return domain.Question{}, err
	}
	for _, q := range bank {
		if q.ID == id {
			return q, nil
		}
	}
	return domain.Question{}, domain.ErrQuestionNotFound
}

func (c *QuestionCache) Update(ctx context.Context, id int64, patch domain.QuestionPatch) (domain.Question, error) {
	q, err := c.source.Update(ctx, id, patch)
	if err != nil {
		return domain.Question{}, err
	}
	c.mu.Lock()
	c.bank = nil
	c.mu.Unlock()
	return q, nil
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
