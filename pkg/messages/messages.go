package messages

import "fmt"

const (
	// MessageBufferSize represents the maximum size of a serialized datagram
	MessageBufferSize = 1024
	// MaxFrameSize represents the maximum size of a serialized message on a stream
	MaxFrameSize = 65535
)

// MessageType identifies the payload carried by a Message
type MessageType byte

const (
	MessageTypeClientLogin MessageType = iota + 1
	MessageTypeServerLoginSuccess
	MessageTypeServerLoginFailure
	MessageTypeClientPing
	MessageTypeServerPong
	MessageTypeClientPlayerUpdate
	MessageTypeClientToggleResource
	MessageTypeServerToggleResource
	MessageTypeServerPlayerConnect
	MessageTypeServerPlayerDisconnect
	MessageTypeServerPickupSpawn
	MessageTypeServerPickupCollected
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeClientLogin:
		return "ClientLogin"
	case MessageTypeServerLoginSuccess:
		return "ServerLoginSuccess"
	case MessageTypeServerLoginFailure:
		return "ServerLoginFailure"
	case MessageTypeClientPing:
		return "ClientPing"
	case MessageTypeServerPong:
		return "ServerPong"
	case MessageTypeClientPlayerUpdate:
		return "ClientPlayerUpdate"
	case MessageTypeClientToggleResource:
		return "ClientToggleResource"
	case MessageTypeServerToggleResource:
		return "ServerToggleResource"
	case MessageTypeServerPlayerConnect:
		return "ServerPlayerConnect"
	case MessageTypeServerPlayerDisconnect:
		return "ServerPlayerDisconnect"
	case MessageTypeServerPickupSpawn:
		return "ServerPickupSpawn"
	case MessageTypeServerPickupCollected:
		return "ServerPickupCollected"
	default:
		return fmt.Sprintf("MessageType(%d)", byte(t))
	}
}

// Message represents a generic message for serialization/deserialization.
// ClientID 0 means the message is from the server.
type Message struct {
	ClientID uint32
	Type     MessageType
	Payload  []byte
}

type ClientLogin struct {
	Name string `json:"name"`
}

type ServerLoginSuccess struct {
	ClientID uint32 `json:"clientID"`
}

type ServerLoginFailure struct {
	Reason string `json:"reason"`
}

type ClientPlayerUpdate struct {
	Timestamp int64   `json:"timestamp"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// ResourceToggle replicates a toggle of an entity's perishable resource.
// The receiver applies a fixed flip-and-refill, so no other state is carried.
type ResourceToggle struct {
	EntityID uint32
}

// ServerPlayerConnect announces a player along with the current state of its resource.
type ServerPlayerConnect struct {
	ClientID       uint32  `json:"clientID"`
	Name           string  `json:"name"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	TorchActive    bool    `json:"torchActive"`
	TorchRemaining float64 `json:"torchRemaining"`
	Ammo           int16   `json:"ammo"`
	MaxAmmo        int16   `json:"maxAmmo"`
}

type ServerPlayerDisconnect struct {
	ClientID uint32 `json:"clientID"`
}

type ServerPickupSpawn struct {
	PickupID string  `json:"pickupID"`
	Type     uint8   `json:"type"`
	Amount   int16   `json:"amount"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type ServerPickupCollected struct {
	PickupID string `json:"pickupID"`
	ClientID uint32 `json:"clientID"`
	Amount   int16  `json:"amount"`
	Ammo     int16  `json:"ammo"`
}
