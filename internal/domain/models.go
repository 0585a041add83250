package domain

import (
	"strings"
	"time"
)

// Tier is a question difficulty level. It determines the scoring weight and
// which pool the question belongs to.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// Stage returns the numeric difficulty encoding used by the scoring formula.
func (t Tier) Stage() int {
	switch t {
	case TierMedium:
		return 2
	case TierHard:
		return 3
	default:
		return 1
	}
}

// Next returns the tier after t, or false when t is the last one.
func (t Tier) Next() (Tier, bool) {
	switch t {
	case TierEasy:
		return TierMedium, true
	case TierMedium:
		return TierHard, true
	default:
		return "", false
	}
}

// ParseTier validates a difficulty string from the wire.
func ParseTier(raw string) (Tier, bool) {
	switch Tier(strings.ToLower(strings.TrimSpace(raw))) {
	case TierEasy:
		return TierEasy, true
	case TierMedium:
		return TierMedium, true
	case TierHard:
		return TierHard, true
	}
	return "", false
}

// Question is a single trivia item. The bank owns it; games only snapshot IDs,
// so the accepted answer is always whatever the bank holds at evaluation time.
type Question struct {
	ID     int64  `json:"id"`
	Text   string `json:"question"`
	Answer string `json:"correct_answer"`
	Tier   Tier   `json:"difficulty"`
}

// QuestionPatch carries a partial edit; nil fields are left untouched.
type QuestionPatch struct {
	Text   *string
	Answer *string
	Tier   *Tier
}

// Empty reports whether the patch changes nothing.
func (p QuestionPatch) Empty() bool {
	return p.Text == nil && p.Answer == nil && p.Tier == nil
}

// Player is an allow-listed participant alias.
type Player struct {
	Alias string `json:"alias"`
}

// Game is one play-through for a single alias. Answers is index-aligned with
// QuestionIDs; an empty string marks an unanswered slot.
type Game struct {
	ID             int64
	PlayerAlias    string
	StartTime      time.Time
	EndTime        *time.Time
	Score          int
	QuestionIDs    []int64
	Answers        []string
	CurrentTier    Tier
	CorrectInTier  int
	AnsweredInTier int
	Finished       bool
}

// QuestionIndex returns the slot index for a question ID, or -1 when the
// question is not part of this game's snapshot.
func (g *Game) QuestionIndex(questionID int64) int {
	for i, id := range g.QuestionIDs {
		if id == questionID {
			return i
		}
	}
	return -1
}

// AnsweredCount is the number of non-empty answer slots across the whole game.
func (g *Game) AnsweredCount() int {
	n := 0
	for _, a := range g.Answers {
		if a != "" {
			n++
		}
	}
	return n
}

// GameSummary is the leaderboard view of a game.
type GameSummary struct {
	PlayerAlias       string    `json:"player_alias"`
	StartTime         time.Time `json:"start_time"`
	Score             int       `json:"score"`
	QuestionsAnswered int       `json:"questions_answered"`
	Finished          bool      `json:"finished"`
}

// StartResult is returned when a new game is created. The engine hands out
// the full per-tier pools; picking which question to show is the caller's job.
type StartResult struct {
	GameID int64
	Easy   []Question
	Medium []Question
	Hard   []Question
}

// AnswerResult summarizes one accepted submission.
type AnswerResult struct {
	Correct           bool
	Points            int
	Score             int
	QuestionsAnswered int
	Tier              Tier
	Finished          bool
	NextQuestionIDs   []int64
}

// GameHistory reconstructs a game's answer sheet with recomputed points.
// Slots line up with the game's question snapshot; unanswered slots score 0.
type GameHistory struct {
	Questions []string `json:"questions"`
	Answers   []string `json:"answers"`
	Points    []int    `json:"points"`
}

// NormalizeAnswer folds an answer for comparison: surrounding whitespace is
// trimmed and case is ignored.
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
