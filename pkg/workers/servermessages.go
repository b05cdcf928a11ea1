package workers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/torchlight/pkg/log"
	"github.com/cbodonnell/torchlight/pkg/messages"
)

// MessageSender delivers serialized messages to connected clients.
// It is satisfied by *network.NetworkManager.
type MessageSender interface {
	SendReliableMessageToAll(ctx context.Context, msg *messages.Message)
	SendUnreliableMessageToAll(ctx context.Context, msg *messages.Message)
	SendUnreliableMessageToAllExcept(ctx context.Context, excludeClientID uint32, msg *messages.Message)
	SendReliableMessageToClient(ctx context.Context, clientID uint32, msg *messages.Message) error
	SendUnreliableMessageToClient(ctx context.Context, clientID uint32, msg *messages.Message) error
}

type ServerMessageWorker struct {
	sender            MessageSender
	serverMessageChan <-chan ServerMessage
}

// ServerMessage is a message produced by the game loop.
// A non-zero ClientID targets a single client, otherwise the message goes to
// everyone but ExcludeClientID.
type ServerMessage struct {
	Type            messages.MessageType
	Message         interface{}
	Reliable        bool
	ClientID        uint32
	ExcludeClientID uint32
}

type NewServerMessageWorkerOptions struct {
	Sender            MessageSender
	ServerMessageChan <-chan ServerMessage
}

func NewServerMessageWorker(opts NewServerMessageWorkerOptions) *ServerMessageWorker {
	return &ServerMessageWorker{
		sender:            opts.Sender,
		serverMessageChan: opts.ServerMessageChan,
	}
}

func (w *ServerMessageWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-w.serverMessageChan:
			if err := w.handleServerMessage(ctx, msg); err != nil {
				log.Error("Failed to handle server message of type %s: %v", msg.Type, err)
			}
		}
	}
}

func (w *ServerMessageWorker) handleServerMessage(ctx context.Context, msg ServerMessage) error {
	payload, err := encodePayload(msg)
	if err != nil {
		return err
	}

	m := &messages.Message{
		ClientID: 0,
		Type:     msg.Type,
		Payload:  payload,
	}

	switch {
	case msg.ClientID != 0 && msg.Reliable:
		return w.sender.SendReliableMessageToClient(ctx, msg.ClientID, m)
	case msg.ClientID != 0:
		return w.sender.SendUnreliableMessageToClient(ctx, msg.ClientID, m)
	case msg.Reliable && msg.ExcludeClientID != 0:
		return fmt.Errorf("reliable broadcasts cannot exclude a client")
	case msg.Reliable:
		w.sender.SendReliableMessageToAll(ctx, m)
	case msg.ExcludeClientID != 0:
		w.sender.SendUnreliableMessageToAllExcept(ctx, msg.ExcludeClientID, m)
	default:
		w.sender.SendUnreliableMessageToAll(ctx, m)
	}

	return nil
}

func encodePayload(msg ServerMessage) ([]byte, error) {
	switch msg.Type {
	case messages.MessageTypeServerToggleResource:
		toggle, ok := msg.Message.(*messages.ResourceToggle)
		if !ok {
			return nil, fmt.Errorf("failed to cast resource toggle message")
		}
		payload, err := messages.SerializeResourceToggle(toggle)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize resource toggle: %v", err)
		}
		return payload, nil
	case messages.MessageTypeServerPlayerConnect,
		messages.MessageTypeServerPlayerDisconnect,
		messages.MessageTypeServerPickupSpawn,
		messages.MessageTypeServerPickupCollected:
		payload, err := json.Marshal(msg.Message)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %v", msg.Type, err)
		}
		return payload, nil
	default:
		return nil, fmt.Errorf("unknown server message type: %v", msg.Type)
	}
}
