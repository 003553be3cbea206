package cart

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by Persister.Load when nothing is stored under the key.
var ErrNotFound = errors.New("cart not found")

// Persister stores whole cart states by key. Save always overwrites.
type Persister interface {
	Load(ctx context.Context, key string) (*State, error)
	Save(ctx context.Context, key string, state State) error
}

// StalePruner is implemented by persisters whose carts do not expire on their own.
type StalePruner interface {
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

// MemoryPersister keeps encoded states in process memory.
type MemoryPersister struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{carts: make(map[string][]byte)}
}

func (m *MemoryPersister) Load(ctx context.Context, key string) (*State, error) {
	m.mu.RLock()
	data, ok := m.carts[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return Unmarshal(data)
}

func (m *MemoryPersister) Save(ctx context.Context, key string, state State) error {
	data, err := Marshal(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.carts[key] = data
	m.mu.Unlock()
	return nil
}

// Raw returns the stored bytes for key.
func (m *MemoryPersister) Raw(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.carts[key]
	return data, ok
}

// Len is the number of stored carts.
func (m *MemoryPersister) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.carts)
}

// KeyedMutex serializes work per cart key.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedLock)}
}

// Lock blocks until key is free and returns the matching unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
