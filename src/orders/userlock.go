package orders

import "sync"

// userLocks hands out one mutex per user ID. Entries are kept for the
// lifetime of the process; the map is bounded by the number of distinct
// users seen.
type userLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[uint]*sync.Mutex)}
}

// Lock acquires the mutex for the user and returns the release func.
func (l *userLocks) Lock(userID uint) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
