package game

import (
	"math/rand"
	"time"
)

// RandomSource abstracts uniform selection so callers can seed it for
// deterministic tests.
type RandomSource interface {
	Intn(n int) int
}

// DefaultRandomSource returns a time-seeded source.
func DefaultRandomSource() RandomSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewSeededSource returns a replicable source for tests.
func NewSeededSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// PickQuestion selects one question ID uniformly at random. It is a pure
// presentation helper: the engine only ever reports the available set, and
// callers decide which one to show.
func PickQuestion(ids []int64, src RandomSource) (int64, bool) {
	if len(ids) == 0 {
		return 0, false
	}
	if src == nil {
		src = DefaultRandomSource()
	}
	return ids[src.Intn(len(ids))], true
}
