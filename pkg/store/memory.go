package store

import (
	"context"
	"sort"
	"sync"
)

// NewMemory returns a Persistence that keeps values in process memory.
// Watchers see every Write and Erase.
func NewMemory() Persistence {
	return &memory{data: make(map[string][]byte)}
}

type memory struct {
	mu       sync.Mutex
	data     map[string][]byte
	watchers []chan Event
}

func (m *memory) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

func (m *memory) Write(key string, val []byte) error {
	m.mu.Lock()
	m.data[key] = append([]byte(nil), val...)
	m.mu.Unlock()
	m.notify(Event{Type: EventKeyChanged, Key: key})
	return nil
}

func (m *memory) Erase(key string) error {
	m.mu.Lock()
	_, ok := m.data[key]
	delete(m.data, key)
	m.mu.Unlock()
	if ok {
		m.notify(Event{Type: EventKeyChanged, Key: key})
	}
	return nil
}

func (m *memory) Keys(context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 64)
	m.mu.Lock()
	m.watchers = append(m.watchers, ch)
	m.mu.Unlock()
	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, w := range m.watchers {
			if w == ch {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}

func (m *memory) notify(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.watchers {
		select {
		case w <- ev:
		default:
		}
	}
}
