package world

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cbodonnell/torchlight/pkg/game/constants"
	"github.com/cbodonnell/torchlight/pkg/inventory"
	"github.com/cbodonnell/torchlight/pkg/log"
	"github.com/cbodonnell/torchlight/pkg/messages"
	"github.com/cbodonnell/torchlight/pkg/queue"
	"github.com/cbodonnell/torchlight/pkg/resource"
)

// SinkFactory returns the output sink for an entity's torch. It may return an untyped nil.
type SinkFactory func(entityID uint32) resource.OutputSink

// World is a peer's mirror of every entity's torch.
// It is driven by a single loop and is not safe for concurrent use.
type World struct {
	sender             MessageSender
	serverMessageQueue queue.Queue
	sinkFactory        SinkFactory

	localID uint32
	torches map[uint32]*resource.Controller
	names   map[uint32]string
	ammo    *inventory.Ammo
	pickups map[string]*messages.ServerPickupSpawn
}

type NewWorldOptions struct {
	Sender             MessageSender
	ServerMessageQueue queue.Queue
	// Hooks receive feedback for toggles of the local player's torch
	Hooks       resource.FeedbackHooks
	SinkFactory SinkFactory
}

// NewWorld creates the mirror for the client logged in through opts.Sender.
func NewWorld(opts NewWorldOptions) *World {
	sinkFactory := opts.SinkFactory
	if sinkFactory == nil {
		sinkFactory = func(uint32) resource.OutputSink { return nil }
	}

	w := &World{
		sender:             opts.Sender,
		serverMessageQueue: opts.ServerMessageQueue,
		sinkFactory:        sinkFactory,
		localID:            opts.Sender.ClientID(),
		torches:            make(map[uint32]*resource.Controller),
		names:              make(map[uint32]string),
		ammo:               inventory.NewAmmo(0, constants.PlayerMaxAmmo),
		pickups:            make(map[string]*messages.ServerPickupSpawn),
	}

	w.torches[w.localID] = resource.NewController(resource.NewControllerOptions{
		EntityID:    w.localID,
		MaxLevel:    constants.TorchMaxLevel,
		MaxOutput:   constants.TorchMaxOutput,
		Sink:        sinkFactory(w.localID),
		Hooks:       opts.Hooks,
		Broadcaster: &networkBroadcaster{sender: opts.Sender},
	})

	return w
}

// LocalID returns the entity ID of the local player
func (w *World) LocalID() uint32 {
	return w.localID
}

// ToggleTorch toggles the local player's torch and replicates the toggle
func (w *World) ToggleTorch() {
	w.torches[w.localID].Toggle()
}

// Tick advances every torch by deltaTime seconds
func (w *World) Tick(deltaTime float64) {
	for _, torch := range w.torches {
		torch.Tick(deltaTime)
	}
}

// Torch returns the mirrored torch of an entity
func (w *World) Torch(entityID uint32) (*resource.Controller, bool) {
	torch, ok := w.torches[entityID]
	return torch, ok
}

// Entities returns the IDs of every known entity in ascending order
func (w *World) Entities() []uint32 {
	ids := make([]uint32, 0, len(w.torches))
	for id := range w.torches {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Name returns the display name of an entity, if known
func (w *World) Name(entityID uint32) string {
	return w.names[entityID]
}

func (w *World) Ammo() *inventory.Ammo {
	return w.ammo
}

// Pickups returns the number of pickups currently in play
func (w *World) Pickups() int {
	return len(w.pickups)
}

// SendPosition reports the local player's position to the server
func (w *World) SendPosition(timestamp int64, x float64, y float64) error {
	payload, err := json.Marshal(&messages.ClientPlayerUpdate{
		Timestamp: timestamp,
		X:         x,
		Y:         y,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal player update: %v", err)
	}

	return w.sender.SendUnreliableMessage(&messages.Message{
		ClientID: w.localID,
		Type:     messages.MessageTypeClientPlayerUpdate,
		Payload:  payload,
	})
}

// ProcessServerMessages applies every pending server message
func (w *World) ProcessServerMessages() {
	pendingMessages, err := w.serverMessageQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read server messages: %v", err)
		return
	}
	for _, item := range pendingMessages {
		message, ok := item.(*messages.Message)
		if !ok {
			log.Error("Failed to cast message to messages.Message")
			continue
		}
		if err := w.handleServerMessage(message); err != nil {
			log.Error("Failed to handle %s: %v", message.Type, err)
		}
	}
}

func (w *World) handleServerMessage(message *messages.Message) error {
	switch message.Type {
	case messages.MessageTypeServerToggleResource:
		toggle, err := messages.DeserializeResourceToggle(message.Payload)
		if err != nil {
			return fmt.Errorf("failed to deserialize resource toggle: %v", err)
		}
		return w.applyReplicatedToggle(toggle.EntityID)
	case messages.MessageTypeServerPlayerConnect:
		playerConnect := &messages.ServerPlayerConnect{}
		if err := json.Unmarshal(message.Payload, playerConnect); err != nil {
			return fmt.Errorf("failed to unmarshal player connect: %v", err)
		}
		w.applyPlayerConnect(playerConnect)
	case messages.MessageTypeServerPlayerDisconnect:
		playerDisconnect := &messages.ServerPlayerDisconnect{}
		if err := json.Unmarshal(message.Payload, playerDisconnect); err != nil {
			return fmt.Errorf("failed to unmarshal player disconnect: %v", err)
		}
		w.removeEntity(playerDisconnect.ClientID)
	case messages.MessageTypeServerPickupSpawn:
		pickupSpawn := &messages.ServerPickupSpawn{}
		if err := json.Unmarshal(message.Payload, pickupSpawn); err != nil {
			return fmt.Errorf("failed to unmarshal pickup spawn: %v", err)
		}
		w.pickups[pickupSpawn.PickupID] = pickupSpawn
	case messages.MessageTypeServerPickupCollected:
		pickupCollected := &messages.ServerPickupCollected{}
		if err := json.Unmarshal(message.Payload, pickupCollected); err != nil {
			return fmt.Errorf("failed to unmarshal pickup collected: %v", err)
		}
		delete(w.pickups, pickupCollected.PickupID)
		if pickupCollected.ClientID == w.localID {
			w.ammo.Set(pickupCollected.Ammo)
		}
	default:
		return fmt.Errorf("unhandled message type")
	}

	return nil
}

// applyReplicatedToggle mirrors a toggle made by another peer.
func (w *World) applyReplicatedToggle(entityID uint32) error {
	if entityID == w.localID {
		// the local toggle was applied when it was made
		return fmt.Errorf("received a replicated toggle for the local entity")
	}
	torch, ok := w.torches[entityID]
	if !ok {
		return fmt.Errorf("unknown entity %d", entityID)
	}
	torch.OnReplicatedToggle()
	return nil
}

// applyPlayerConnect creates or resynchronises an entity from the server's definitive state
func (w *World) applyPlayerConnect(playerConnect *messages.ServerPlayerConnect) {
	w.names[playerConnect.ClientID] = playerConnect.Name

	torch, ok := w.torches[playerConnect.ClientID]
	if !ok {
		torch = resource.NewController(resource.NewControllerOptions{
			EntityID:  playerConnect.ClientID,
			MaxLevel:  constants.TorchMaxLevel,
			MaxOutput: constants.TorchMaxOutput,
			Sink:      w.sinkFactory(playerConnect.ClientID),
		})
		w.torches[playerConnect.ClientID] = torch
		log.Debug("Player %d joined as %s", playerConnect.ClientID, playerConnect.Name)
	}
	torch.Restore(playerConnect.TorchActive, playerConnect.TorchRemaining)

	if playerConnect.ClientID == w.localID {
		w.ammo.Max = playerConnect.MaxAmmo
		w.ammo.Set(playerConnect.Ammo)
	}
}

func (w *World) removeEntity(entityID uint32) {
	if entityID == w.localID {
		log.Warn("Server removed the local player")
		return
	}
	torch, ok := w.torches[entityID]
	if !ok {
		return
	}
	torch.Deactivate()
	torch.Tick(0)
	delete(w.torches, entityID)
	delete(w.names, entityID)
	log.Debug("Player %d left", entityID)
}
