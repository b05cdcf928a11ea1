package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	levels []float64
}

func (s *recordingSink) SetOutputLevel(value float64) {
	s.levels = append(s.levels, value)
}

func (s *recordingSink) last() float64 {
	if len(s.levels) == 0 {
		return -1
	}
	return s.levels[len(s.levels)-1]
}

type broadcast struct {
	entityID uint32
	kind     MessageKind
}

type recordingBroadcaster struct {
	sent []broadcast
}

func (b *recordingBroadcaster) Broadcast(entityID uint32, kind MessageKind) {
	b.sent = append(b.sent, broadcast{entityID: entityID, kind: kind})
}

type recordingHooks struct {
	activations   int
	deactivations int
}

func (h *recordingHooks) OnLocalActivate()   { h.activations++ }
func (h *recordingHooks) OnLocalDeactivate() { h.deactivations++ }

func newTestController(maxLevel float64) (*Controller, *recordingSink, *recordingBroadcaster, *recordingHooks) {
	sink := &recordingSink{}
	broadcaster := &recordingBroadcaster{}
	hooks := &recordingHooks{}
	c := NewController(NewControllerOptions{
		EntityID:    42,
		MaxLevel:    maxLevel,
		MaxOutput:   7,
		Sink:        sink,
		Hooks:       hooks,
		Broadcaster: broadcaster,
	})
	return c, sink, broadcaster, hooks
}

func TestNewController(t *testing.T) {
	c := NewController(NewControllerOptions{EntityID: 1})
	assert.False(t, c.Active())
	assert.Equal(t, DefaultMaxLevel, c.Remaining())
	assert.Equal(t, DefaultMaxLevel, c.MaxLevel())
	assert.Equal(t, DefaultMaxOutput, c.MaxOutput())
	assert.Equal(t, 0.0, c.Output())
}

func TestController_Scenario(t *testing.T) {
	c, sink, broadcaster, hooks := newTestController(30)

	c.Toggle()
	assert.True(t, c.Active())
	assert.Equal(t, 30.0, c.Remaining())
	assert.Equal(t, 7.0, c.Output())
	assert.Len(t, broadcaster.sent, 1)
	assert.Equal(t, broadcast{entityID: 42, kind: MessageKindToggleResource}, broadcaster.sent[0])
	assert.Equal(t, 1, hooks.activations)

	for i := 0; i < 3; i++ {
		c.Tick(10)
	}
	assert.Equal(t, 0.0, c.Remaining())
	assert.Equal(t, 0.0, c.Output())
	assert.Equal(t, 0.0, sink.last())
	assert.InDeltaSlice(t, []float64{7.0 * 20 / 30, 7.0 * 10 / 30, 0}, sink.levels, 1e-9)

	c.Toggle()
	assert.False(t, c.Active())
	assert.Equal(t, 30.0, c.Remaining())
	assert.Equal(t, 0.0, c.Output())
	assert.Len(t, broadcaster.sent, 2)
	assert.Equal(t, 1, hooks.deactivations)
}

func TestController_TickNeverNegative(t *testing.T) {
	c, _, _, _ := newTestController(30)
	c.Activate()

	previous := c.Remaining()
	for _, dt := range []float64{0, 0.016, 4.5, 12, 0, 20, 3, 100} {
		c.Tick(dt)
		assert.LessOrEqual(t, c.Remaining(), previous)
		assert.GreaterOrEqual(t, c.Remaining(), 0.0)
		previous = c.Remaining()
	}
	assert.Equal(t, 0.0, c.Remaining())
}

func TestController_TickInactive(t *testing.T) {
	c, sink, _, _ := newTestController(30)
	c.Activate()
	c.Tick(5)
	c.Deactivate()

	c.Tick(5)
	c.Tick(5)
	assert.Equal(t, 25.0, c.Remaining(), "remaining is frozen while inactive")
	assert.Equal(t, 0.0, sink.last())
	assert.Len(t, sink.levels, 3)
}

func TestController_OutputZeroWhenInactive(t *testing.T) {
	for _, remaining := range []float64{0, 1, 15, 30} {
		c := NewController(NewControllerOptions{MaxLevel: 30, MaxOutput: 7})
		c.Restore(false, remaining)
		assert.Equal(t, 0.0, c.Output())
	}
}

func TestController_OutputMonotonic(t *testing.T) {
	c := NewController(NewControllerOptions{MaxLevel: 30, MaxOutput: 7})
	previous := -1.0
	for remaining := 0.0; remaining <= 30; remaining += 2.5 {
		c.Restore(true, remaining)
		assert.Greater(t, c.Output(), previous)
		previous = c.Output()
	}
	assert.Equal(t, 7.0, previous)
}

func TestController_ToggleTwice(t *testing.T) {
	tests := []struct {
		name    string
		initial bool
	}{
		{name: "from inactive", initial: false},
		{name: "from active", initial: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, broadcaster, hooks := newTestController(30)
			c.Restore(tt.initial, 12)

			c.Toggle()
			assert.Equal(t, !tt.initial, c.Active())
			assert.Equal(t, 30.0, c.Remaining())

			c.Toggle()
			assert.Equal(t, tt.initial, c.Active())
			assert.Equal(t, 30.0, c.Remaining())

			assert.Len(t, broadcaster.sent, 2)
			assert.Equal(t, 1, hooks.activations)
			assert.Equal(t, 1, hooks.deactivations)
		})
	}
}

func TestController_ActivateAlwaysRefills(t *testing.T) {
	c, _, broadcaster, hooks := newTestController(30)
	c.Activate()
	c.Tick(20)
	assert.Equal(t, 10.0, c.Remaining())

	c.Activate()
	assert.True(t, c.Active())
	assert.Equal(t, 30.0, c.Remaining())
	assert.Empty(t, broadcaster.sent)
	assert.Zero(t, hooks.activations)
}

func TestController_DeactivateKeepsRemaining(t *testing.T) {
	c, _, _, _ := newTestController(30)
	c.Activate()
	c.Tick(12)

	c.Deactivate()
	assert.False(t, c.Active())
	assert.Equal(t, 18.0, c.Remaining())
}

func TestController_OnReplicatedToggle(t *testing.T) {
	c, _, broadcaster, hooks := newTestController(30)

	for i := 0; i < 5; i++ {
		c.OnReplicatedToggle()
	}
	assert.True(t, c.Active())
	assert.Equal(t, 30.0, c.Remaining())
	assert.Empty(t, broadcaster.sent)
	assert.Zero(t, hooks.activations)
	assert.Zero(t, hooks.deactivations)
}

func TestController_DuplicateReplicatedDelivery(t *testing.T) {
	c, _, _, _ := newTestController(30)
	c.Activate()
	c.Tick(8)

	c.OnReplicatedToggle()
	assert.False(t, c.Active())
	assert.Equal(t, 30.0, c.Remaining())

	c.OnReplicatedToggle()
	assert.True(t, c.Active(), "a duplicate delivery flips back")
	assert.Equal(t, 30.0, c.Remaining())
}

func TestController_Restore(t *testing.T) {
	c, _, broadcaster, hooks := newTestController(30)

	c.Restore(true, 45)
	assert.True(t, c.Active())
	assert.Equal(t, 30.0, c.Remaining())

	c.Restore(true, -3)
	assert.Equal(t, 0.0, c.Remaining())

	assert.Empty(t, broadcaster.sent)
	assert.Zero(t, hooks.activations)
}

func TestController_NilCollaborators(t *testing.T) {
	c := NewController(NewControllerOptions{EntityID: 7, MaxLevel: 10})
	assert.NotPanics(t, func() {
		c.Toggle()
		c.Tick(3)
		c.OnReplicatedToggle()
		c.Tick(3)
	})
	assert.False(t, c.Active())
	assert.Equal(t, 10.0, c.Remaining())
}

func TestController_TypedNilCollaborators(t *testing.T) {
	var sink *recordingSink
	var broadcaster *recordingBroadcaster
	c := NewController(NewControllerOptions{EntityID: 7, MaxLevel: 10, Sink: sink, Broadcaster: broadcaster})

	// a nil pointer inside the interface is not treated as absent
	assert.Panics(t, func() { c.Tick(1) })
	assert.Panics(t, func() { c.Toggle() })

	c.SetSink(nil)
	assert.NotPanics(t, func() { c.Tick(1) })
}

func TestController_SetSink(t *testing.T) {
	c := NewController(NewControllerOptions{MaxLevel: 10, MaxOutput: 2})
	c.Activate()
	c.Tick(1)

	sink := &recordingSink{}
	c.SetSink(sink)
	c.Tick(4)
	assert.Equal(t, []float64{2.0 * 5 / 10}, sink.levels)
}

func TestHooks(t *testing.T) {
	var activated, deactivated bool
	c := NewController(NewControllerOptions{
		Hooks: Hooks{
			OnActivate:   func() { activated = true },
			OnDeactivate: func() { deactivated = true },
		},
	})

	c.Toggle()
	assert.True(t, activated)
	assert.False(t, deactivated)

	c.Toggle()
	assert.True(t, deactivated)

	assert.NotPanics(t, func() {
		Hooks{}.OnLocalActivate()
		Hooks{}.OnLocalDeactivate()
	})
}
