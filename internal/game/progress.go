package game

import (
	"strings"
	"time"

	"trivia-quiz-service/internal/domain"
)

const (
	// QuestionsToFinish is the total answered-slot count that completes a game.
	QuestionsToFinish = 6
	// CorrectToAdvance is the correct-answer count that moves the game to the
	// next tier. Attempts do not count; only correct answers do.
	CorrectToAdvance = 2
	// WrongAnswerPenalty is the score delta for any incorrect answer.
	WrongAnswerPenalty = -2
)

// ScorePoints returns the score delta for an answer against a question of the
// given tier: 4*stage^2 when correct, a flat penalty otherwise.
func ScorePoints(tier domain.Tier, correct bool) int {
	if !correct {
		return WrongAnswerPenalty
	}
	stage := tier.Stage()
	return 4 * stage * stage
}

// advanceGame applies one accepted submission to g and returns the outcome.
// The caller has already validated the slot; this is the whole state machine:
// evaluate, score, count, advance the tier on enough correct answers, then
// decide whether the game is over.
func advanceGame(g *domain.Game, idx int, q domain.Question, answer string, bank []domain.Question, now time.Time) domain.AnswerResult {
	correct := domain.NormalizeAnswer(answer) == domain.NormalizeAnswer(q.Answer)
	points := ScorePoints(q.Tier, correct)

	g.Score += points
	g.Answers[idx] = strings.TrimSpace(answer)
	g.AnsweredInTier++
	if correct {
		g.CorrectInTier++
	}

	pastFinalTier := false
	if g.CorrectInTier >= CorrectToAdvance {
		if next, ok := g.CurrentTier.Next(); ok {
			g.CurrentTier = next
			g.CorrectInTier = 0
			g.AnsweredInTier = 0
		} else {
			pastFinalTier = true
		}
	}

	tiers := make(map[int64]domain.Tier, len(bank))
	for _, bq := range bank {
		tiers[bq.ID] = bq.Tier
	}
	available := unansweredInTier(g, tiers, g.CurrentTier)

	answered := g.AnsweredCount()
	if answered >= QuestionsToFinish || pastFinalTier || len(available) == 0 {
		g.Finished = true
		end := now
		g.EndTime = &end
		available = nil
	}

	return domain.AnswerResult{
		Correct:           correct,
		Points:            points,
		Score:             g.Score,
		QuestionsAnswered: answered,
		Tier:              g.CurrentTier,
		Finished:          g.Finished,
		NextQuestionIDs:   available,
	}
}

// unansweredInTier lists the snapshot questions in the given tier whose slot
// is still empty. Tier membership comes from the live bank, so an edited
// question moves pools for in-flight games too.
func unansweredInTier(g *domain.Game, tiers map[int64]domain.Tier, tier domain.Tier) []int64 {
	var ids []int64
	for i, id := range g.QuestionIDs {
		if g.Answers[i] != "" {
			continue
		}
		if t, ok := tiers[id]; ok && t == tier {
			ids = append(ids, id)
		}
	}
	return ids
}
