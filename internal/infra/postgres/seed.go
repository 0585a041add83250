package postgres

import (
	"context"
	"fmt"
	"log"

	"trivia-quiz-service/internal/seed"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Seed installs the starter question set and the player allow-list, but only
// into empty tables. Restarting the service never duplicates or resets data.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var questionCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&questionCount); err != nil {
		return fmt.Errorf("count questions: %w", err)
	}
	if questionCount == 0 {
		for _, q := range seed.Questions() {
			if _, err := pool.Exec(ctx,
				`INSERT INTO questions (question, correct_answer, difficulty) VALUES ($1, $2, $3)`,
				q.Text, q.Answer, string(q.Tier),
			); err != nil {
				return fmt.Errorf("seed question: %w", err)
			}
		}
		log.Printf("seeded %d starter questions", len(seed.Questions()))
	}

	var playerCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&playerCount); err != nil {
		return fmt.Errorf("count players: %w", err)
	}
	if playerCount == 0 {
		for _, alias := range seed.Aliases() {
			if _, err := pool.Exec(ctx, `INSERT INTO players (alias) VALUES ($1)`, alias); err != nil {
				return fmt.Errorf("seed player: %w", err)
			}
		}
		log.Printf("seeded %d player aliases", len(seed.Aliases()))
	}
	return nil
}
