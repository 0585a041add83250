package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"trivia-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PlayerStore reads the alias allow-list from Postgres.
type PlayerStore struct {
	pool *pgxpool.Pool
}

func NewPlayerStore(pool *pgxpool.Pool) *PlayerStore {
	return &PlayerStore{pool: pool}
}

func (s *PlayerStore) Exists(ctx context.Context, alias string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM players WHERE alias=$1)`, alias).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check alias: %w", err)
	}
	return exists, nil
}

// QuestionStore is the Postgres question bank.
type QuestionStore struct {
	pool *pgxpool.Pool
}

func NewQuestionStore(pool *pgxpool.Pool) *QuestionStore {
	return &QuestionStore{pool: pool}
}

func (s *QuestionStore) List(ctx context.Context) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, question, correct_answer, difficulty FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (s *QuestionStore) ListByTier(ctx context.Context, tier domain.Tier) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, question, correct_answer, difficulty FROM questions WHERE difficulty=$1 ORDER BY id`, string(tier))
	if err != nil {
		return nil, fmt.Errorf("list questions by tier: %w", err)
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (s *QuestionStore) Get(ctx context.Context, id int64) (domain.Question, error) {
	var q domain.Question
	var tier string
	err := s.pool.QueryRow(ctx, `SELECT id, question, correct_answer, difficulty FROM questions WHERE id=$1`, id).
		Scan(&q.ID, &q.Text, &q.Answer, &tier)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	if err != nil {
		return domain.Question{}, fmt.Errorf("get question: %w", err)
	}
	q.Tier = domain.Tier(tier)
	return q, nil
}

func (s *QuestionStore) Update(ctx context.Context, id int64, patch domain.QuestionPatch) (domain.Question, error) {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	if patch.Text != nil {
		args = append(args, *patch.Text)
		sets = append(sets, fmt.Sprintf("question=$%d", len(args)))
	}
	if patch.Answer != nil {
		args = append(args, *patch.Answer)
		sets = append(sets, fmt.Sprintf("correct_answer=$%d", len(args)))
	}
	if patch.Tier != nil {
		args = append(args, string(*patch.Tier))
		sets = append(sets, fmt.Sprintf("difficulty=$%d", len(args)))
	}
	if len(sets) == 0 {
		return domain.Question{}, domain.ErrNoFieldsToUpdate
	}
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE questions SET %s WHERE id=$%d RETURNING id, question, correct_answer, difficulty`,
		strings.Join(sets, ", "), len(args),
	)

	var q domain.Question
	var tier string
	err := s.pool.QueryRow(ctx, query, args...).Scan(&q.ID, &q.Text, &q.Answer, &tier)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	if err != nil {
		return domain.Question{}, fmt.Errorf("update question: %w", err)
	}
	q.Tier = domain.Tier(tier)
	return q, nil
}

func scanQuestions(rows pgx.Rows) ([]domain.Question, error) {
	var out []domain.Question
	for rows.Next() {
		var q domain.Question
		var tier string
		if err := rows.Scan(&q.ID, &q.Text, &q.Answer, &tier); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Tier = domain.Tier(tier)
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return out, nil
}

// GameStore persists game rows. The question-ID snapshot and answer slots are
// JSONB columns and round-trip through encoding/json.
type GameStore struct {
	pool *pgxpool.Pool
}

func NewGameStore(pool *pgxpool.Pool) *GameStore {
	return &GameStore{pool: pool}
}

func (s *GameStore) Create(ctx context.Context, game *domain.Game) error {
	ids, err := json.Marshal(game.QuestionIDs)
	if err != nil {
		return fmt.Errorf("marshal question ids: %w", err)
	}
	answers, err := json.Marshal(game.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
		INSERT INTO games (player_alias, start_time, score, question_ids, answers, current_tier, correct_in_tier, answered_in_tier, finished)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7, $8, $9)
		RETURNING id`,
		game.PlayerAlias, game.StartTime, game.Score, string(ids), string(answers),
		string(game.CurrentTier), game.CorrectInTier, game.AnsweredInTier, game.Finished,
	).Scan(&game.ID)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

func (s *GameStore) Get(ctx context.Context, id int64) (domain.Game, error) {
	return s.getWhere(ctx, `SELECT `+gameColumns+` FROM games WHERE id=$1`, id)
}

func (s *GameStore) GetByPlayer(ctx context.Context, alias string, id int64) (domain.Game, error) {
	return s.getWhere(ctx, `SELECT `+gameColumns+` FROM games WHERE id=$1 AND player_alias=$2`, id, alias)
}

const gameColumns = `id, player_alias, start_time, end_time, score, question_ids, answers, current_tier, correct_in_tier, answered_in_tier, finished`

func (s *GameStore) getWhere(ctx context.Context, query string, args ...interface{}) (domain.Game, error) {
	var g domain.Game
	var tier string
	var rawIDs, rawAnswers []byte
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&g.ID, &g.PlayerAlias, &g.StartTime, &g.EndTime, &g.Score,
		&rawIDs, &rawAnswers, &tier, &g.CorrectInTier, &g.AnsweredInTier, &g.Finished,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Game{}, domain.ErrGameNotFound
	}
	if err != nil {
		return domain.Game{}, fmt.Errorf("get game: %w", err)
	}
	if err := json.Unmarshal(rawIDs, &g.QuestionIDs); err != nil {
		return domain.Game{}, fmt.Errorf("unmarshal question ids: %w", err)
	}
	if err := json.Unmarshal(rawAnswers, &g.Answers); err != nil {
		return domain.Game{}, fmt.Errorf("unmarshal answers: %w", err)
	}
	g.CurrentTier = domain.Tier(tier)
	return g, nil
}

func (s *GameStore) Update(ctx context.Context, game domain.Game) error {
	ids, err := json.Marshal(game.QuestionIDs)
	if err != nil {
		return fmt.Errorf("marshal question ids: %w", err)
	}
	answers, err := json.Marshal(game.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE games
		SET score=$1, question_ids=$2::jsonb, answers=$3::jsonb, current_tier=$4,
		    correct_in_tier=$5, answered_in_tier=$6, finished=$7, end_time=$8
		WHERE id=$9`,
		game.Score, string(ids), string(answers), string(game.CurrentTier),
		game.CorrectInTier, game.AnsweredInTier, game.Finished, game.EndTime, game.ID,
	)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

func (s *GameStore) Summaries(ctx context.Context) ([]domain.GameSummary, error) {
	rows, err := s.pool.Query(ctx, `SELECT player_alias, start_time, score, answers, finished FROM games`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var out []domain.GameSummary
	for rows.Next() {
		var sum domain.GameSummary
		var rawAnswers []byte
		if err := rows.Scan(&sum.PlayerAlias, &sum.StartTime, &sum.Score, &rawAnswers, &sum.Finished); err != nil {
			return nil, fmt.Errorf("scan game summary: %w", err)
		}
		var answers []string
		if err := json.Unmarshal(rawAnswers, &answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
		for _, a := range answers {
			if a != "" {
				sum.QuestionsAnswered++
			}
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return out, nil
}
