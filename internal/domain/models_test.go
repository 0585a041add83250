package domain

import "testing"

func TestTierStageAndNext(t *testing.T) {
	if TierEasy.Stage() != 1 || TierMedium.Stage() != 2 || TierHard.Stage() != 3 {
		t.Fatalf("unexpected stages: %d %d %d", TierEasy.Stage(), TierMedium.Stage(), TierHard.Stage())
	}

	next, ok := TierEasy.Next()
	if !ok || next != TierMedium {
		t.Fatalf("expected easy -> medium, got %s ok=%v", next, ok)
	}
	next, ok = TierMedium.Next()
	if !ok || next != TierHard {
		t.Fatalf("expected medium -> hard, got %s ok=%v", next, ok)
	}
	if _, ok := TierHard.Next(); ok {
		t.Fatalf("hard should be terminal")
	}
}

func TestParseTier(t *testing.T) {
	cases := map[string]Tier{
		"easy":    TierEasy,
		" Medium": TierMedium,
		"HARD":    TierHard,
	}
	for raw, want := range cases {
		got, ok := ParseTier(raw)
		if !ok || got != want {
			t.Fatalf("ParseTier(%q) = %s ok=%v, want %s", raw, got, ok, want)
		}
	}
	if _, ok := ParseTier("impossible"); ok {
		t.Fatalf("expected parse failure for unknown tier")
	}
}

func TestNormalizeAnswer(t *testing.T) {
	if NormalizeAnswer("  Paris \n") != "paris" {
		t.Fatalf("expected trimmed lowercase answer")
	}
	if NormalizeAnswer("H2SO4") != NormalizeAnswer(" h2so4") {
		t.Fatalf("normalization should be case and whitespace insensitive")
	}
}

func TestGameSlotHelpers(t *testing.T) {
	g := Game{
		QuestionIDs: []int64{3, 7, 11},
		Answers:     []string{"", "nile", ""},
	}
	if idx := g.QuestionIndex(7); idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if idx := g.QuestionIndex(99); idx != -1 {
		t.Fatalf("expected -1 for unknown question, got %d", idx)
	}
	if n := g.AnsweredCount(); n != 1 {
		t.Fatalf("expected 1 answered slot, got %d", n)
	}
}
