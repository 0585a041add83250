package memory

import (
	"context"
	"errors"
	"testing"

	"trivia-quiz-service/internal/domain"
)

func TestQuestionStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewQuestionStore(
		domain.Question{Text: "e1", Answer: "a", Tier: domain.TierEasy},
		domain.Question{Text: "h1", Answer: "b", Tier: domain.TierHard},
	)

	all, err := store.List(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 questions, got %d err=%v", len(all), err)
	}
	if all[0].ID == 0 || all[1].ID == 0 {
		t.Fatalf("store must assign IDs")
	}

	hard, _ := store.ListByTier(ctx, domain.TierHard)
	if len(hard) != 1 || hard[0].Text != "h1" {
		t.Fatalf("unexpected hard pool: %+v", hard)
	}

	if _, err := store.Get(ctx, 999); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}

	tier := domain.TierMedium
	updated, err := store.Update(ctx, all[0].ID, domain.QuestionPatch{Tier: &tier})
	if err != nil || updated.Tier != domain.TierMedium {
		t.Fatalf("expected tier update, got %+v err=%v", updated, err)
	}
	if updated.Answer != "a" {
		t.Fatalf("untouched fields must survive a partial edit")
	}
}

func TestGameStoreIsolatesReads(t *testing.T) {
	ctx := context.Background()
	store := NewGameStore()

	g := &domain.Game{
		PlayerAlias: "player1",
		QuestionIDs: []int64{1, 2},
		Answers:     []string{"", ""},
		CurrentTier: domain.TierEasy,
	}
	if err := store.Create(ctx, g); err != nil {
		t.Fatalf("create: %v", err)
	}
	if g.ID == 0 {
		t.Fatalf("create must assign an ID")
	}

	loaded, err := store.Get(ctx, g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	loaded.Answers[0] = "mutated"

	again, _ := store.Get(ctx, g.ID)
	if again.Answers[0] != "" {
		t.Fatalf("mutating a loaded game must not leak into the store")
	}

	if _, err := store.GetByPlayer(ctx, "someone-else", g.ID); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound for wrong alias, got %v", err)
	}
}

func TestGameStoreSummaries(t *testing.T) {
	ctx := context.Background()
	store := NewGameStore()

	g := &domain.Game{
		PlayerAlias: "player1",
		QuestionIDs: []int64{1, 2},
		Answers:     []string{"x", ""},
		Score:       4,
		CurrentTier: domain.TierEasy,
	}
	_ = store.Create(ctx, g)

	summaries, err := store.Summaries(ctx)
	if err != nil || len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d err=%v", len(summaries), err)
	}
	s := summaries[0]
	if s.PlayerAlias != "player1" || s.Score != 4 || s.QuestionsAnswered != 1 || s.Finished {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
