package world

import (
	"github.com/cbodonnell/torchlight/pkg/log"
	"github.com/cbodonnell/torchlight/pkg/messages"
	"github.com/cbodonnell/torchlight/pkg/resource"
)

// MessageSender is the part of the client network manager the world needs.
type MessageSender interface {
	ClientID() uint32
	SendReliableMessage(msg *messages.Message) error
	SendUnreliableMessage(msg *messages.Message) error
}

// networkBroadcaster sends a local toggle to the server, which relays it to every other peer.
// Sends are unreliable and never retried.
type networkBroadcaster struct {
	sender MessageSender
}

var _ resource.Broadcaster = &networkBroadcaster{}

func (b *networkBroadcaster) Broadcast(entityID uint32, kind resource.MessageKind) {
	if kind != resource.MessageKindToggleResource {
		log.Warn("Unknown replication message kind %s for entity %d", kind, entityID)
		return
	}

	payload, err := messages.SerializeResourceToggle(&messages.ResourceToggle{EntityID: entityID})
	if err != nil {
		log.Error("Failed to serialize resource toggle: %v", err)
		return
	}

	if err := b.sender.SendUnreliableMessage(&messages.Message{
		ClientID: b.sender.ClientID(),
		Type:     messages.MessageTypeClientToggleResource,
		Payload:  payload,
	}); err != nil {
		log.Error("Failed to send resource toggle for entity %d: %v", entityID, err)
	}
}
