package callbacks

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_AddResolve(t *testing.T) {
	m := NewManager()

	var got json.RawMessage
	id := m.Add(func(data json.RawMessage) {
		got = data
	})
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, m.Pending())

	require.NoError(t, m.Resolve(id, json.RawMessage(`7`)))
	assert.Equal(t, json.RawMessage(`7`), got)
	assert.Zero(t, m.Pending())
}

func TestManager_ResolveTwice(t *testing.T) {
	m := NewManager()
	calls := 0
	id := m.Add(func(json.RawMessage) { calls++ })

	require.NoError(t, m.Resolve(id, nil))
	err := m.Resolve(id, nil)
	assert.True(t, errors.Is(err, ErrUnknownCallback))
	assert.Equal(t, 1, calls)
}

func TestManager_ResolveUnknown(t *testing.T) {
	m := NewManager()
	err := m.Resolve("missing", nil)
	assert.ErrorIs(t, err, ErrUnknownCallback)
}

func TestManager_UniqueIDs(t *testing.T) {
	m := NewManager()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := m.Add(nil)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestManager_CallbackMayAdd(t *testing.T) {
	m := NewManager()
	var second string
	first := m.Add(func(json.RawMessage) {
		second = m.Add(nil)
	})

	require.NoError(t, m.Resolve(first, nil))
	assert.NotEmpty(t, second)
	assert.Equal(t, 1, m.Pending())
}

func TestManager_Concurrent(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	var mu sync.Mutex
	resolved := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := m.Add(func(json.RawMessage) {
				mu.Lock()
				resolved++
				mu.Unlock()
			})
			assert.NoError(t, m.Resolve(id, nil))
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, resolved)
	assert.Zero(t, m.Pending())
}

func TestManager_Remove(t *testing.T) {
	m := NewManager()
	called := false
	id := m.Add(func(json.RawMessage) { called = true })

	assert.True(t, m.Remove(id))
	assert.False(t, m.Remove(id))
	assert.ErrorIs(t, m.Resolve(id, nil), ErrUnknownCallback)
	assert.False(t, called)
}
