package workers

import (
	"context"
	"encoding/json"
	"testing"

	mocks "github.com/cbodonnell/torchlight/mocks/github.com/cbodonnell/torchlight/pkg/workers"
	"github.com/cbodonnell/torchlight/pkg/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestServerMessageWorker_ToggleRelayExcludesSender(t *testing.T) {
	sender := mocks.NewMessageSender(t)
	w := NewServerMessageWorker(NewServerMessageWorkerOptions{Sender: sender})

	sender.EXPECT().SendUnreliableMessageToAllExcept(mock.Anything, uint32(42), mock.Anything).
		Run(func(ctx context.Context, excludeClientID uint32, msg *messages.Message) {
			assert.Equal(t, messages.MessageTypeServerToggleResource, msg.Type)
			assert.Equal(t, uint32(0), msg.ClientID)
			toggle, err := messages.DeserializeResourceToggle(msg.Payload)
			require.NoError(t, err)
			assert.Equal(t, uint32(42), toggle.EntityID)
		}).
		Return().Once()

	err := w.handleServerMessage(context.Background(), ServerMessage{
		Type:            messages.MessageTypeServerToggleResource,
		Message:         &messages.ResourceToggle{EntityID: 42},
		ExcludeClientID: 42,
	})
	require.NoError(t, err)
}

func TestServerMessageWorker_Addressing(t *testing.T) {
	disconnect := &messages.ServerPlayerDisconnect{ClientID: 5}
	payload, err := json.Marshal(disconnect)
	require.NoError(t, err)
	want := &messages.Message{Type: messages.MessageTypeServerPlayerDisconnect, Payload: payload}

	tests := []struct {
		name  string
		msg   ServerMessage
		setup func(sender *mocks.MessageSender)
	}{
		{
			name: "reliable to all",
			msg:  ServerMessage{Type: messages.MessageTypeServerPlayerDisconnect, Message: disconnect, Reliable: true},
			setup: func(sender *mocks.MessageSender) {
				sender.EXPECT().SendReliableMessageToAll(mock.Anything, want).Return().Once()
			},
		},
		{
			name: "unreliable to all",
			msg:  ServerMessage{Type: messages.MessageTypeServerPlayerDisconnect, Message: disconnect},
			setup: func(sender *mocks.MessageSender) {
				sender.EXPECT().SendUnreliableMessageToAll(mock.Anything, want).Return().Once()
			},
		},
		{
			name: "reliable to client",
			msg:  ServerMessage{Type: messages.MessageTypeServerPlayerDisconnect, Message: disconnect, Reliable: true, ClientID: 9},
			setup: func(sender *mocks.MessageSender) {
				sender.EXPECT().SendReliableMessageToClient(mock.Anything, uint32(9), want).Return(nil).Once()
			},
		},
		{
			name: "unreliable to client",
			msg:  ServerMessage{Type: messages.MessageTypeServerPlayerDisconnect, Message: disconnect, ClientID: 9},
			setup: func(sender *mocks.MessageSender) {
				sender.EXPECT().SendUnreliableMessageToClient(mock.Anything, uint32(9), want).Return(nil).Once()
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := mocks.NewMessageSender(t)
			tt.setup(sender)
			w := NewServerMessageWorker(NewServerMessageWorkerOptions{Sender: sender})
			assert.NoError(t, w.handleServerMessage(context.Background(), tt.msg))
		})
	}
}

func TestServerMessageWorker_Errors(t *testing.T) {
	sender := mocks.NewMessageSender(t)
	w := NewServerMessageWorker(NewServerMessageWorkerOptions{Sender: sender})

	tests := []struct {
		name string
		msg  ServerMessage
	}{
		{
			name: "toggle with wrong message",
			msg:  ServerMessage{Type: messages.MessageTypeServerToggleResource, Message: &messages.ServerPlayerDisconnect{}},
		},
		{
			name: "unknown type",
			msg:  ServerMessage{Type: messages.MessageTypeClientPing},
		},
		{
			name: "reliable broadcast with exclusion",
			msg:  ServerMessage{Type: messages.MessageTypeServerPlayerDisconnect, Message: &messages.ServerPlayerDisconnect{}, Reliable: true, ExcludeClientID: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, w.handleServerMessage(context.Background(), tt.msg))
		})
	}
}
