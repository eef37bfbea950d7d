package websocket

import "sync"

// keyedMutex serializes work per room id: at most one mutation (and its
// emissions) is in flight for a room at any time. Entries are reference
// counted and leave the map when the last holder releases, so ids that never
// resolve to a room do not accumulate.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*roomLock
}

type roomLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		locks: make(map[string]*roomLock),
	}
}

// Lock acquires the mutex for key and returns its unlock func. A goroutine
// that acquires after a room was torn down re-reads the registry under the
// lock and falls out on the not-found path.
func (that *keyedMutex) Lock(key string) func() {
	that.mu.Lock()
	entry, ok := that.locks[key]
	if !ok {
		entry = &roomLock{}
		that.locks[key] = entry
	}
	entry.refs++
	that.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		that.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(that.locks, key)
		}
		that.mu.Unlock()
	}
}
