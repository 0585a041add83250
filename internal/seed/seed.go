// Package seed holds the fixed starter data installed on first run when the
// backing tables are empty.
package seed

import "trivia-quiz-service/internal/domain"

// Aliases is the fixed player allow-list. Players are never auto-created.
func Aliases() []string {
	return []string{"player1", "player2", "admin"}
}

// Questions is the starter question bank, four per tier. IDs are assigned by
// the store.
func Questions() []domain.Question {
	return []domain.Question{
		{Text: "What is the capital of France?", Answer: "Paris", Tier: domain.TierEasy},
		{Text: "How many days are in a week?", Answer: "7", Tier: domain.TierEasy},
		{Text: "What color is the sky on a clear day?", Answer: "blue", Tier: domain.TierEasy},
		{Text: "How many legs does a spider have?", Answer: "8", Tier: domain.TierEasy},

		{Text: "Who wrote Romeo and Juliet?", Answer: "William Shakespeare", Tier: domain.TierMedium},
		{Text: "What is the longest river in the world?", Answer: "Nile", Tier: domain.TierMedium},
		{Text: "In what year did World War II end?", Answer: "1945", Tier: domain.TierMedium},
		{Text: "What is the chemical symbol for gold?", Answer: "Au", Tier: domain.TierMedium},

		{Text: "What is the smallest prime number greater than 100?", Answer: "101", Tier: domain.TierHard},
		{Text: "Who developed the theory of general relativity?", Answer: "Albert Einstein", Tier: domain.TierHard},
		{Text: "What is the capital of Mongolia?", Answer: "Ulaanbaatar", Tier: domain.TierHard},
		{Text: "In what year was the Go programming language announced?", Answer: "2009", Tier: domain.TierHard},
	}
}
