package usecase

import "sync"

// keyedMutex serializes work per external order id so finalize and
// webhook-driven transitions for one order never interleave in-process.
// The store's compare-and-set remains the cross-process guard; this lock
// keeps a single process from racing itself to the provider. Entries are
// refcounted and dropped once the last holder releases, so the map stays
// bounded by the number of in-flight orders.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = map[string]*lockEntry{}
	}
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
