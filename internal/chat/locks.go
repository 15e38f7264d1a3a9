package chat

import "sync"

// chatLocks serializes mutations per chat. Entries are reference counted and
// removed once no caller holds or waits on them.
type chatLocks struct {
	mu    sync.Mutex
	locks map[uint]*chatLock
}

type chatLock struct {
	mu   sync.Mutex
	refs int
}

func newChatLocks() *chatLocks {
	return &chatLocks{locks: make(map[uint]*chatLock)}
}

// lock acquires the chat's mutex and returns its release function.
func (l *chatLocks) lock(chatID uint) func() {
	l.mu.Lock()
	entry, ok := l.locks[chatID]
	if !ok {
		entry = &chatLock{}
		l.locks[chatID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, chatID)
		}
		l.mu.Unlock()
	}
}

func (l *chatLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
