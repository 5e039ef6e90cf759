package service

import "sync"

// roomLocks provides per-room mutual exclusion. Every reserve/cancel
// check-then-act sequence runs under the lock of its room, so two
// concurrent calls on the same room cannot both pass the overlap check
// before either commits. Cross-room sequences proceed in parallel.
//
// Locks are never removed; the map is bounded by the room inventory.
type roomLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[int64]*sync.Mutex)}
}

func (l *roomLocks) get(roomID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[roomID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[roomID] = m
	}
	return m
}

// Lock acquires the lock for roomID and returns its unlock function.
func (l *roomLocks) Lock(roomID int64) func() {
	m := l.get(roomID)
	m.Lock()
	return m.Unlock
}
