package service

import "sync"

// RoomLocks serializes the check-then-act sequences that must observe a
// stable view of a single room: the duplicate-pending check, the accept
// transaction, and the soft-delete cascade. Without it two interleaved
// accept calls could both pass the "no active rental" check before either
// writes.
type RoomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRoomLocks() *RoomLocks {
	return &RoomLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for roomID, creating it on first use, and returns
// the unlock function.
func (l *RoomLocks) Lock(roomID string) func() {
	l.mu.Lock()
	m, ok := l.locks[roomID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[roomID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
