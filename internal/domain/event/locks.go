package event

import "sync"

// eventLocks serializes operations per event id. Entries are reference counted
// and dropped once no caller holds or waits on them.
type eventLocks struct {
	mu    sync.Mutex
	locks map[string]*eventLock
}

type eventLock struct {
	mu   sync.Mutex
	refs int
}

func newEventLocks() *eventLocks {
	return &eventLocks{locks: make(map[string]*eventLock)}
}

func (l *eventLocks) lock(eventID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[eventID]
	if !ok {
		entry = &eventLock{}
		l.locks[eventID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, eventID)
		}
		l.mu.Unlock()
	}
}

func (l *eventLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
