package keymutex

import "sync"

/*
Мьютекс по ключу: сериализует операции с одним и тем же ключом,
операции с разными ключами выполняются параллельно.
*/

// KeyMutex provides a mutex per key. Entries are reference-counted and
// removed once the last holder unlocks, so the map does not grow with the
// number of keys ever seen.
type KeyMutex[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func New[K comparable]() *KeyMutex[K] {
	return &KeyMutex[K]{
		locks: make(map[K]*entry),
	}
}

func (k *KeyMutex[K]) Lock(key K) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

func (k *KeyMutex[K]) Unlock(key K) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("keymutex: unlock of unlocked key")
	}
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
