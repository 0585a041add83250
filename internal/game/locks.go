package game

import "sync"

// gameLocks serializes submissions per game ID so two concurrent answers for
// the same game cannot double-count a slot or double-advance a tier.
// Distinct games proceed in parallel.
type gameLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// lock acquires the mutex for a game and returns its release func.
func (l *gameLocks) lock(gameID int64) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[int64]*sync.Mutex)
	}
	m, ok := l.locks[gameID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[gameID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
