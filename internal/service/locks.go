package service

import "sync"

// ClientLocker serializes the validate-then-append window per client. Two
// concurrent withdrawals for the same client would otherwise both read the
// same available balance, both pass validation, and together overdraw.
// Every mutation applier acquires the client's lock before validating and
// releases it after the append commits.
type ClientLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewClientLocker creates an empty ClientLocker.
func NewClientLocker() *ClientLocker {
	return &ClientLocker{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for the given client, creating it on first use.
// The returned function releases the lock.
func (l *ClientLocker) Lock(clientID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[clientID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[clientID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
