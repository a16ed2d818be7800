// Package syncutil provides concurrency-safe containers.
package syncutil

import (
	"iter"
	"maps"
	"sync"
)

// RWMap is a thread-safe map protected by a [sync.RWMutex].
// The zero value is ready to use.
type RWMap[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

func (m *RWMap[K, V]) Get(key K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

// GetOrSet returns the existing value for the key if present.
// Otherwise, it stores and returns the given value.
// The loaded result is true if the value was loaded, false if stored.
func (m *RWMap[K, V]) GetOrSet(key K, val V) (V, bool) {
	if v, ok := m.Get(key); ok {
		return v, true
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, true
	}
	if m.data == nil {
		m.data = make(map[K]V)
	}
	m.data[key] = val
	return val, false
}

func (m *RWMap[K, V]) Len() int {
	if m == nil {
		return 0
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// All iterates over a snapshot of the map.
func (m *RWMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}

		m.mu.RLock()
		data := maps.Clone(m.data)
		m.mu.RUnlock()

		for k, v := range data {
			if !yield(k, v) {
				return
			}
		}
	}
}
