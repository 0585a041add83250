package memory

import (
	"context"
	"sort"
	"sync"

	"trivia-quiz-service/internal/domain"
)

// PlayerStore is an in-memory allow-list of aliases.
type PlayerStore struct {
	mu      sync.RWMutex
	aliases map[string]struct{}
}

func NewPlayerStore(aliases ...string) *PlayerStore {
	s := &PlayerStore{aliases: make(map[string]struct{}, len(aliases))}
	for _, a := range aliases {
		s.aliases[a] = struct{}{}
	}
	return s
}

func (s *PlayerStore) Exists(_ context.Context, alias string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.aliases[alias]
	return ok, nil
}

// QuestionStore is an in-memory question bank (dev fallback and tests).
type QuestionStore struct {
	mu        sync.RWMutex
	nextID    int64
	questions map[int64]domain.Question
}

func NewQuestionStore(questions ...domain.Question) *QuestionStore {
	s := &QuestionStore{questions: make(map[int64]domain.Question, len(questions))}
	for _, q := range questions {
		if q.ID == 0 {
			s.nextID++
			q.ID = s.nextID
		} else if q.ID > s.nextID {
			s.nextID = q.ID
		}
		s.questions[q.ID] = q
	}
	return s
}

func (s *QuestionStore) List(_ context.Context) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *QuestionStore) ListByTier(ctx context.Context, tier domain.Tier) ([]domain.Question, error) {
	all, _ := s.List(ctx)
	out := make([]domain.Question, 0, len(all))
	for _, q := range all {
		if q.Tier == tier {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *QuestionStore) Get(_ context.Context, id int64) (domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[id]
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return q, nil
}

func (s *QuestionStore) Update(_ context.Context, id int64, patch domain.QuestionPatch) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	if patch.Text != nil {
		q.Text = *patch.Text
	}
	if patch.Answer != nil {
		q.Answer = *patch.Answer
	}
	if patch.Tier != nil {
		q.Tier = *patch.Tier
	}
	s.questions[id] = q
	return q, nil
}

// GameStore is an in-memory game repository. Reads hand out copies so a
// caller mutating a game in flight never leaks half-applied state back in.
type GameStore struct {
	mu     sync.RWMutex
	nextID int64
	games  map[int64]domain.Game
}

func NewGameStore() *GameStore {
	return &GameStore{games: make(map[int64]domain.Game)}
}

func (s *GameStore) Create(_ context.Context, game *domain.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	game.ID = s.nextID
	s.games[game.ID] = copyGame(*game)
	return nil
}

func (s *GameStore) Get(_ context.Context, id int64) (domain.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return domain.Game{}, domain.ErrGameNotFound
	}
	return copyGame(g), nil
}

func (s *GameStore) GetByPlayer(_ context.Context, alias string, id int64) (domain.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok || g.PlayerAlias != alias {
		return domain.Game{}, domain.ErrGameNotFound
	}
	return copyGame(g), nil
}

func (s *GameStore) Update(_ context.Context, game domain.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[game.ID]; !ok {
		return domain.ErrGameNotFound
	}
	s.games[game.ID] = copyGame(game)
	return nil
}

func (s *GameStore) Summaries(_ context.Context) ([]domain.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]domain.GameSummary, 0, len(ids))
	for _, id := range ids {
		g := s.games[id]
		out = append(out, domain.GameSummary{
			PlayerAlias:       g.PlayerAlias,
			StartTime:         g.StartTime,
			Score:             g.Score,
			QuestionsAnswered: g.AnsweredCount(),
			Finished:          g.Finished,
		})
	}
	return out, nil
}

func copyGame(g domain.Game) domain.Game {
	g.QuestionIDs = append([]int64(nil), g.QuestionIDs...)
	g.Answers = append([]string(nil), g.Answers...)
	if g.EndTime != nil {
		end := *g.EndTime
		g.EndTime = &end
	}
	return g
}
