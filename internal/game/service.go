package game

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"trivia-quiz-service/internal/domain"
)

// PlayerRepository checks the fixed alias allow-list.
type PlayerRepository interface {
	Exists(ctx context.Context, alias string) (bool, error)
}

// QuestionRepository is the question bank contract.
type QuestionRepository interface {
	List(ctx context.Context) ([]domain.Question, error)
	ListByTier(ctx context.Context, tier domain.Tier) ([]domain.Question, error)
	Get(ctx context.Context, id int64) (domain.Question, error)
	Update(ctx context.Context, id int64, patch domain.QuestionPatch) (domain.Question, error)
}

// GameRepository persists game rows. Create assigns the game ID.
type GameRepository interface {
	Create(ctx context.Context, game *domain.Game) error
	Get(ctx context.Context, id int64) (domain.Game, error)
	GetByPlayer(ctx context.Context, alias string, id int64) (domain.Game, error)
	Update(ctx context.Context, game domain.Game) error
	Summaries(ctx context.Context) ([]domain.GameSummary, error)
}

// LeaderboardCache holds a point-in-time leaderboard snapshot. Implementations
// are best-effort; a miss just means the leaderboard is recomputed.
type LeaderboardCache interface {
	Get(ctx context.Context) ([]domain.GameSummary, bool)
	Set(ctx context.Context, entries []domain.GameSummary)
	Invalidate(ctx context.Context)
}

// GameService owns game progression: stage transitions, answer evaluation,
// scoring and completion detection. All state lives in repositories; the
// service serializes writes per game ID.
type GameService struct {
	players     PlayerRepository
	questions   QuestionRepository
	games       GameRepository
	leaderboard LeaderboardCache // optional
	locks       gameLocks
	now         func() time.Time
}

func NewGameService(players PlayerRepository, questions QuestionRepository, games GameRepository, leaderboard LeaderboardCache) *GameService {
	return &GameService{
		players:     players,
		questions:   questions,
		games:       games,
		leaderboard: leaderboard,
		now:         time.Now,
	}
}

// NewGameServiceWithClock is test-only for deterministic timestamps.
func NewGameServiceWithClock(players PlayerRepository, questions QuestionRepository, games GameRepository, leaderboard LeaderboardCache, now func() time.Time) *GameService {
	s := NewGameService(players, questions, games, leaderboard)
	s.now = now
	return s
}

// StartGame creates a game for an allow-listed alias and returns the full
// per-tier question pools. The game snapshots the bank's question IDs; which
// question to show first is the caller's choice.
func (s *GameService) StartGame(ctx context.Context, alias string) (domain.StartResult, error) {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return domain.StartResult{}, domain.ErrEmptyInput
	}

	ok, err := s.players.Exists(ctx, alias)
	if err != nil {
		return domain.StartResult{}, fmt.Errorf("check player: %w", err)
	}
	if !ok {
		return domain.StartResult{}, domain.ErrUnknownPlayer
	}

	easy, err := s.questions.ListByTier(ctx, domain.TierEasy)
	if err != nil {
		return domain.StartResult{}, fmt.Errorf("list easy questions: %w", err)
	}
	medium, err := s.questions.ListByTier(ctx, domain.TierMedium)
	if err != nil {
		return domain.StartResult{}, fmt.Errorf("list medium questions: %w", err)
	}
	hard, err := s.questions.ListByTier(ctx, domain.TierHard)
	if err != nil {
		return domain.StartResult{}, fmt.Errorf("list hard questions: %w", err)
	}

	ids := make([]int64, 0, len(easy)+len(medium)+len(hard))
	for _, pool := range [][]domain.Question{easy, medium, hard} {
		for _, q := range pool {
			ids = append(ids, q.ID)
		}
	}

	game := &domain.Game{
		PlayerAlias: alias,
		StartTime:   s.now().UTC(),
		QuestionIDs: ids,
		Answers:     make([]string, len(ids)),
		CurrentTier: domain.TierEasy,
	}
	if err := s.games.Create(ctx, game); err != nil {
		return domain.StartResult{}, fmt.Errorf("create game: %w", err)
	}
	s.dropLeaderboard(ctx)

	return domain.StartResult{GameID: game.ID, Easy: easy, Medium: medium, Hard: hard}, nil
}

// SubmitAnswer evaluates one answer, applies scoring and tier progression and
// persists the updated game in a single write. A rejected submission leaves
// the stored game untouched, so retries surface ErrAlreadyAnswered instead of
// double-counting.
func (s *GameService) SubmitAnswer(ctx context.Context, gameID, questionID int64, answer string) (domain.AnswerResult, error) {
	if strings.TrimSpace(answer) == "" {
		return domain.AnswerResult{}, domain.ErrEmptyInput
	}

	unlock := s.locks.lock(gameID)
	defer unlock()

	g, err := s.games.Get(ctx, gameID)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	if g.Finished {
		return domain.AnswerResult{}, domain.ErrGameFinished
	}

	idx := g.QuestionIndex(questionID)
	if idx < 0 {
		return domain.AnswerResult{}, domain.ErrQuestionNotInGame
	}
	if g.Answers[idx] != "" {
		return domain.AnswerResult{}, domain.ErrAlreadyAnswered
	}

	// The accepted answer is read from the live bank, never from a snapshot,
	// so an edit lands on every game still referencing the question.
	q, err := s.questions.Get(ctx, questionID)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	bank, err := s.questions.List(ctx)
	if err != nil {
		return domain.AnswerResult{}, fmt.Errorf("list questions: %w", err)
	}

	result := advanceGame(&g, idx, q, answer, bank, s.now().UTC())

	if err := s.games.Update(ctx, g); err != nil {
		return domain.AnswerResult{}, fmt.Errorf("update game: %w", err)
	}
	s.dropLeaderboard(ctx)
	return result, nil
}

// History reconstructs a game's answer sheet with per-slot points recomputed
// against the live bank. Unanswered slots and questions that no longer
// resolve contribute zero points.
func (s *GameService) History(ctx context.Context, alias string, gameID int64) (domain.GameHistory, error) {
	g, err := s.games.GetByPlayer(ctx, strings.TrimSpace(alias), gameID)
	if err != nil {
		return domain.GameHistory{}, err
	}

	bank, err := s.questions.List(ctx)
	if err != nil {
		return domain.GameHistory{}, fmt.Errorf("list questions: %w", err)
	}
	byID := make(map[int64]domain.Question, len(bank))
	for _, q := range bank {
		byID[q.ID] = q
	}

	hist := domain.GameHistory{
		Questions: make([]string, len(g.QuestionIDs)),
		Answers:   append([]string(nil), g.Answers...),
		Points:    make([]int, len(g.QuestionIDs)),
	}
	for i, id := range g.QuestionIDs {
		q, ok := byID[id]
		if !ok {
			continue
		}
		hist.Questions[i] = q.Text
		if g.Answers[i] == "" {
			continue
		}
		correct := domain.NormalizeAnswer(g.Answers[i]) == domain.NormalizeAnswer(q.Answer)
		hist.Points[i] = ScorePoints(q.Tier, correct)
	}
	return hist, nil
}

// Leaderboard returns all games ordered by score descending, ties broken by
// fewer questions answered. Reads go through the snapshot cache when one is
// configured.
func (s *GameService) Leaderboard(ctx context.Context) ([]domain.GameSummary, error) {
	if s.leaderboard != nil {
		if entries, ok := s.leaderboard.Get(ctx); ok {
			return entries, nil
		}
	}

	entries, err := s.games.Summaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	for i := range entries {
		entries[i].Finished = entries[i].Finished || entries[i].QuestionsAnswered >= QuestionsToFinish
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].QuestionsAnswered < entries[j].QuestionsAnswered
	})

	if s.leaderboard != nil {
		s.leaderboard.Set(ctx, entries)
	}
	return entries, nil
}

// UpdateQuestion applies a partial edit to a bank question. Edits never touch
// stored game scores.
func (s *GameService) UpdateQuestion(ctx context.Context, id int64, patch domain.QuestionPatch) (domain.Question, error) {
	if patch.Empty() {
		return domain.Question{}, domain.ErrNoFieldsToUpdate
	}
	q, err := s.questions.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return domain.Question{}, err
		}
		return domain.Question{}, fmt.Errorf("update question: %w", err)
	}
	return q, nil
}

func (s *GameService) dropLeaderboard(ctx context.Context) {
	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx)
	}
}
