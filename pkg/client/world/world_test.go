package world

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/cbodonnell/torchlight/pkg/messages"
	"github.com/cbodonnell/torchlight/pkg/queue"
	"github.com/cbodonnell/torchlight/pkg/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	clientID   uint32
	unreliable []*messages.Message
	err        error
}

func (s *fakeSender) ClientID() uint32 {
	return s.clientID
}

func (s *fakeSender) SendReliableMessage(msg *messages.Message) error {
	return s.err
}

func (s *fakeSender) SendUnreliableMessage(msg *messages.Message) error {
	s.unreliable = append(s.unreliable, msg)
	return s.err
}

type recordingSink struct {
	levels []float64
}

func (s *recordingSink) SetOutputLevel(level float64) {
	s.levels = append(s.levels, level)
}

type countingHooks struct {
	activations   int
	deactivations int
}

func (h *countingHooks) OnLocalActivate() {
	h.activations++
}

func (h *countingHooks) OnLocalDeactivate() {
	h.deactivations++
}

func newTestWorld(t *testing.T) (*World, *fakeSender, queue.Queue, *countingHooks, map[uint32]*recordingSink) {
	t.Helper()
	sender := &fakeSender{clientID: 1}
	q := queue.NewInMemoryQueue(64)
	hooks := &countingHooks{}
	sinks := make(map[uint32]*recordingSink)
	w := NewWorld(NewWorldOptions{
		Sender:             sender,
		ServerMessageQueue: q,
		Hooks:              hooks,
		SinkFactory: func(entityID uint32) resource.OutputSink {
			sink := &recordingSink{}
			sinks[entityID] = sink
			return sink
		},
	})
	return w, sender, q, hooks, sinks
}

func enqueueJSON(t *testing.T, q queue.Queue, msgType messages.MessageType, payload interface{}) {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, q.Enqueue(&messages.Message{Type: msgType, Payload: b}))
}

func enqueueToggle(t *testing.T, q queue.Queue, entityID uint32) {
	t.Helper()
	b, err := messages.SerializeResourceToggle(&messages.ResourceToggle{EntityID: entityID})
	require.NoError(t, err)
	require.NoError(t, q.Enqueue(&messages.Message{Type: messages.MessageTypeServerToggleResource, Payload: b}))
}

func TestWorld_ToggleTorchBroadcasts(t *testing.T) {
	w, sender, _, hooks, _ := newTestWorld(t)

	w.ToggleTorch()

	torch, ok := w.Torch(1)
	require.True(t, ok)
	assert.True(t, torch.Active())
	assert.Equal(t, 1, hooks.activations)

	require.Len(t, sender.unreliable, 1)
	msg := sender.unreliable[0]
	assert.Equal(t, uint32(1), msg.ClientID)
	assert.Equal(t, messages.MessageTypeClientToggleResource, msg.Type)
	toggle, err := messages.DeserializeResourceToggle(msg.Payload)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), toggle.EntityID)

	w.ToggleTorch()
	assert.False(t, torch.Active())
	assert.Equal(t, 1, hooks.deactivations)
	assert.Len(t, sender.unreliable, 2)
}

func TestWorld_ToggleTorchSendFailureIsNotRetried(t *testing.T) {
	w, sender, _, _, _ := newTestWorld(t)
	sender.err = errors.New("boom")

	w.ToggleTorch()

	torch, _ := w.Torch(1)
	assert.True(t, torch.Active())
	assert.Len(t, sender.unreliable, 1)
}

func TestWorld_PlayerConnectRestoresState(t *testing.T) {
	w, _, q, hooks, sinks := newTestWorld(t)

	enqueueJSON(t, q, messages.MessageTypeServerPlayerConnect, &messages.ServerPlayerConnect{
		ClientID:       2,
		Name:           "bob",
		TorchActive:    true,
		TorchRemaining: 12,
	})
	w.ProcessServerMessages()

	torch, ok := w.Torch(2)
	require.True(t, ok)
	assert.True(t, torch.Active())
	assert.Equal(t, 12.0, torch.Remaining())
	assert.Equal(t, "bob", w.Name(2))
	assert.Equal(t, []uint32{1, 2}, w.Entities())

	w.Tick(2)
	assert.InDelta(t, 10.0, torch.Remaining(), 1e-9)
	require.NotEmpty(t, sinks[2].levels)
	assert.InDelta(t, 7.0*10.0/30.0, sinks[2].levels[len(sinks[2].levels)-1], 1e-9)
	assert.Zero(t, hooks.activations)
}

func TestWorld_PlayerConnectSetsLocalAmmo(t *testing.T) {
	w, _, q, _, _ := newTestWorld(t)

	enqueueJSON(t, q, messages.MessageTypeServerPlayerConnect, &messages.ServerPlayerConnect{
		ClientID:       1,
		Name:           "alice",
		TorchRemaining: 30,
		Ammo:           17,
		MaxAmmo:        30,
	})
	w.ProcessServerMessages()

	assert.Equal(t, int16(17), w.Ammo().Count)
	assert.Equal(t, int16(30), w.Ammo().Max)
	assert.Equal(t, "alice", w.Name(1))
}

func TestWorld_ReplicatedToggle(t *testing.T) {
	w, sender, q, hooks, _ := newTestWorld(t)
	enqueueJSON(t, q, messages.MessageTypeServerPlayerConnect, &messages.ServerPlayerConnect{
		ClientID:       2,
		Name:           "bob",
		TorchRemaining: 5,
	})
	w.ProcessServerMessages()

	enqueueToggle(t, q, 2)
	w.ProcessServerMessages()

	torch, _ := w.Torch(2)
	assert.True(t, torch.Active())
	assert.Equal(t, 30.0, torch.Remaining())
	assert.Empty(t, sender.unreliable)
	assert.Zero(t, hooks.activations)
}

func TestWorld_ReplicatedToggleIgnoredForLocalAndUnknown(t *testing.T) {
	w, _, q, _, _ := newTestWorld(t)

	enqueueToggle(t, q, 1)
	enqueueToggle(t, q, 99)
	w.ProcessServerMessages()

	torch, _ := w.Torch(1)
	assert.False(t, torch.Active())
	_, ok := w.Torch(99)
	assert.False(t, ok)
}

func TestWorld_PlayerDisconnect(t *testing.T) {
	w, _, q, _, sinks := newTestWorld(t)
	enqueueJSON(t, q, messages.MessageTypeServerPlayerConnect, &messages.ServerPlayerConnect{
		ClientID:       2,
		Name:           "bob",
		TorchActive:    true,
		TorchRemaining: 30,
	})
	w.ProcessServerMessages()

	enqueueJSON(t, q, messages.MessageTypeServerPlayerDisconnect, &messages.ServerPlayerDisconnect{ClientID: 2})
	w.ProcessServerMessages()

	_, ok := w.Torch(2)
	assert.False(t, ok)
	assert.Equal(t, "", w.Name(2))
	levels := sinks[2].levels
	require.NotEmpty(t, levels)
	assert.Zero(t, levels[len(levels)-1])
}

func TestWorld_Pickups(t *testing.T) {
	w, _, q, _, _ := newTestWorld(t)
	enqueueJSON(t, q, messages.MessageTypeServerPickupSpawn, &messages.ServerPickupSpawn{PickupID: "a", Amount: 10})
	enqueueJSON(t, q, messages.MessageTypeServerPickupSpawn, &messages.ServerPickupSpawn{PickupID: "b", Amount: 10})
	w.ProcessServerMessages()
	assert.Equal(t, 2, w.Pickups())

	enqueueJSON(t, q, messages.MessageTypeServerPickupCollected, &messages.ServerPickupCollected{
		PickupID: "a",
		ClientID: 1,
		Amount:   10,
		Ammo:     20,
	})
	enqueueJSON(t, q, messages.MessageTypeServerPickupCollected, &messages.ServerPickupCollected{
		PickupID: "b",
		ClientID: 2,
		Amount:   10,
		Ammo:     5,
	})
	w.ProcessServerMessages()

	assert.Equal(t, 0, w.Pickups())
	assert.Equal(t, int16(20), w.Ammo().Count)
}

func TestWorld_SendPosition(t *testing.T) {
	w, sender, _, _, _ := newTestWorld(t)

	require.NoError(t, w.SendPosition(42, 10, 20))

	require.Len(t, sender.unreliable, 1)
	msg := sender.unreliable[0]
	assert.Equal(t, messages.MessageTypeClientPlayerUpdate, msg.Type)
	assert.Equal(t, uint32(1), msg.ClientID)
	update := &messages.ClientPlayerUpdate{}
	require.NoError(t, json.Unmarshal(msg.Payload, update))
	assert.Equal(t, messages.ClientPlayerUpdate{Timestamp: 42, X: 10, Y: 20}, *update)
}
