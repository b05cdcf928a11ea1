package callbacks

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrUnknownCallback is returned when resolving an id that was never added or was already resolved
var ErrUnknownCallback = errors.New("unknown callback")

// Callback receives the response data of a correlated request
type Callback func(data json.RawMessage)

// Manager correlates asynchronous requests with the callbacks waiting on their responses.
// It is safe for concurrent use.
type Manager struct {
	mu        sync.Mutex
	callbacks map[string]Callback
}

func NewManager() *Manager {
	return &Manager{
		callbacks: make(map[string]Callback),
	}
}

// Add registers a callback and returns the id to send along with the request
func (m *Manager) Add(cb Callback) string {
	id := uuid.New().String()

	m.mu.Lock()
	m.callbacks[id] = cb
	m.mu.Unlock()

	return id
}

// Resolve removes the callback registered under id and invokes it with data.
// The callback runs outside the lock, so it may add further callbacks.
func (m *Manager) Resolve(id string, data json.RawMessage) error {
	m.mu.Lock()
	cb, ok := m.callbacks[id]
	if ok {
		delete(m.callbacks, id)
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("failed to resolve callback %s: %w", id, ErrUnknownCallback)
	}
	if cb != nil {
		cb(data)
	}
	return nil
}

// Remove drops the callback registered under id without invoking it
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.callbacks[id]
	delete(m.callbacks, id)
	return ok
}

// Pending returns the number of callbacks waiting to be resolved
func (m *Manager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.callbacks)
}
