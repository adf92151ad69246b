package vault

import (
	"context"
	"sync"
)

// MemorySlot is an in-process Slot. The zero value is ready to use.
type MemorySlot struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (m *MemorySlot) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return copyBytes(m.data[key]), nil
}

func (m *MemorySlot) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.set(key, value)
	return nil
}

func (m *MemorySlot) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *MemorySlot) Update(_ context.Context, key string, fn func(old []byte) ([]byte, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := fn(copyBytes(m.data[key]))
	if err != nil {
		return err
	}
	m.set(key, next)
	return nil
}

func (m *MemorySlot) set(key string, value []byte) {
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = copyBytes(value)
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
