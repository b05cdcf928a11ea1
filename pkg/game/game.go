package game

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cbodonnell/torchlight/pkg/collisions"
	"github.com/cbodonnell/torchlight/pkg/game/constants"
	"github.com/cbodonnell/torchlight/pkg/game/types"
	"github.com/cbodonnell/torchlight/pkg/inventory"
	"github.com/cbodonnell/torchlight/pkg/log"
	"github.com/cbodonnell/torchlight/pkg/messages"
	"github.com/cbodonnell/torchlight/pkg/queue"
	"github.com/cbodonnell/torchlight/pkg/state"
	"github.com/cbodonnell/torchlight/pkg/workers"
)

type GameManager struct {
	clientMessageQueue      queue.Queue
	connectionEventQueue    queue.Queue
	stateManager            state.StateManager
	gameState               *types.GameState
	serverMessageChan       chan<- workers.ServerMessage
	savePlayerInventoryChan chan<- workers.SavePlayerInventoryRequest
	gameLoopInterval        time.Duration
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	ClientMessageQueue      queue.Queue
	ConnectionEventQueue    queue.Queue
	StateManager            state.StateManager
	ServerMessageChan       chan<- workers.ServerMessage
	SavePlayerInventoryChan chan<- workers.SavePlayerInventoryRequest
	GameLoopInterval        time.Duration
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	collisionSpace := collisions.NewCollisionSpace()
	return &GameManager{
		clientMessageQueue:      opts.ClientMessageQueue,
		connectionEventQueue:    opts.ConnectionEventQueue,
		stateManager:            opts.StateManager,
		gameState:               types.NewGameState(collisionSpace),
		serverMessageChan:       opts.ServerMessageChan,
		savePlayerInventoryChan: opts.SavePlayerInventoryChan,
		gameLoopInterval:        opts.GameLoopInterval,
	}
}

// Start starts the game loop.
func (gm *GameManager) Start(ctx context.Context) error {
	if err := gm.initializeGameState(ctx); err != nil {
		return fmt.Errorf("failed to initialize game state: %v", err)
	}

	ticker := time.NewTicker(gm.gameLoopInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			if err := gm.gameTick(ctx, t); err != nil {
				log.Error("Failed to run game tick: %v", err)
			}
		}
	}
}

func (gm *GameManager) initializeGameState(_ context.Context) error {
	for _, point := range constants.PickupSpawnPoints {
		gm.gameState.Pickups.Add(inventory.NewPickup(inventory.PickupTypeBullet, constants.BulletPickupAmount, point[0], point[1]))
	}

	return nil
}

// gameTick runs one iteration of the game loop.
func (gm *GameManager) gameTick(ctx context.Context, t time.Time) error {
	gm.gameState.Timestamp = t.UnixMilli()
	gm.processConnectionEvents(ctx)
	gm.processClientMessages(ctx)
	gm.updateServerObjects(ctx, gm.gameLoopInterval.Seconds())

	if err := gm.stateManager.Set(ctx, gm.gameState.Snapshot()); err != nil {
		return fmt.Errorf("failed to publish snapshot: %v", err)
	}

	return nil
}

// processConnectionEvents processes all pending connection events in the queue,
// updates the game state, and notifies connected clients
func (gm *GameManager) processConnectionEvents(ctx context.Context) {
	pendingEvents, err := gm.connectionEventQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read connection events: %v", err)
		return
	}
	for _, item := range pendingEvents {
		switch event := item.(type) {
		case *types.ConnectPlayerEvent:
			gm.handleConnectPlayer(ctx, event)
		case *types.DisconnectPlayerEvent:
			gm.handleDisconnectPlayer(ctx, event)
		default:
			log.Error("Unhandled connection event type: %T", event)
		}
	}
}

func (gm *GameManager) handleConnectPlayer(ctx context.Context, event *types.ConnectPlayerEvent) {
	if _, ok := gm.gameState.Players[event.ClientID]; ok {
		log.Warn("Client %d is already in the game state", event.ClientID)
		return
	}

	player := types.NewPlayerState(event.ClientID, event.Name, event.Position.X, event.Position.Y, event.Ammo)
	gm.gameState.AddPlayer(player)
	log.Debug("Player %d joined as %s", event.ClientID, event.Name)

	gm.sendServerMessage(ctx, workers.ServerMessage{
		Type:     messages.MessageTypeServerPlayerConnect,
		Message:  playerConnectFromState(player),
		Reliable: true,
	})

	// a late joiner gets the definitive state of everything already in the world
	for clientID, other := range gm.gameState.Players {
		if clientID == event.ClientID {
			continue
		}
		gm.sendServerMessage(ctx, workers.ServerMessage{
			Type:     messages.MessageTypeServerPlayerConnect,
			Message:  playerConnectFromState(other),
			Reliable: true,
			ClientID: event.ClientID,
		})
	}
	for _, pickup := range gm.gameState.Pickups.Pickups() {
		if !pickup.Exists() {
			continue
		}
		gm.sendServerMessage(ctx, workers.ServerMessage{
			Type:     messages.MessageTypeServerPickupSpawn,
			Message:  pickupSpawnFromPickup(pickup),
			Reliable: true,
			ClientID: event.ClientID,
		})
	}
}

func (gm *GameManager) handleDisconnectPlayer(ctx context.Context, event *types.DisconnectPlayerEvent) {
	player, ok := gm.gameState.RemovePlayer(event.ClientID)
	if !ok {
		log.Warn("Client %d is not in the game state", event.ClientID)
		return
	}

	// send a request to save the inventory before forgetting the player
	saveRequest := workers.SavePlayerInventoryRequest{
		Timestamp: gm.gameState.Timestamp,
		Name:      player.Name,
		Ammo:      player.Ammo.Count,
	}
	select {
	case gm.savePlayerInventoryChan <- saveRequest:
	case <-ctx.Done():
		log.Warn("Dropped save request for %s", player.Name)
	}

	gm.sendServerMessage(ctx, workers.ServerMessage{
		Type: messages.MessageTypeServerPlayerDisconnect,
		Message: &messages.ServerPlayerDisconnect{
			ClientID: event.ClientID,
		},
		Reliable: true,
	})
}

// processClientMessages processes all pending client messages in the queue
// and updates the game state accordingly.
func (gm *GameManager) processClientMessages(ctx context.Context) {
	pendingMessages, err := gm.clientMessageQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read client messages: %v", err)
		return
	}
	for _, item := range pendingMessages {
		message, ok := item.(*messages.Message)
		if !ok {
			log.Error("Failed to cast message to messages.Message")
			continue
		}

		switch message.Type {
		case messages.MessageTypeClientToggleResource:
			if err := gm.handleClientToggleResource(ctx, message); err != nil {
				log.Warn("Dropped toggle from client %d: %v", message.ClientID, err)
			}
		case messages.MessageTypeClientPlayerUpdate:
			if err := gm.handleClientPlayerUpdate(ctx, message); err != nil {
				log.Warn("Dropped player update from client %d: %v", message.ClientID, err)
			}
		default:
			log.Error("Unhandled message type: %s", message.Type)
		}
	}
}

// handleClientToggleResource applies a peer's toggle to the server mirror and
// relays it to every other peer. The sender already applied it locally.
func (gm *GameManager) handleClientToggleResource(ctx context.Context, message *messages.Message) error {
	toggle, err := messages.DeserializeResourceToggle(message.Payload)
	if err != nil {
		return fmt.Errorf("failed to deserialize resource toggle: %v", err)
	}

	if toggle.EntityID != message.ClientID {
		return fmt.Errorf("client may only toggle its own resource, got entity %d", toggle.EntityID)
	}

	player, ok := gm.gameState.Players[toggle.EntityID]
	if !ok {
		return fmt.Errorf("entity %d is not in the game state", toggle.EntityID)
	}

	player.Torch.OnReplicatedToggle()

	gm.sendServerMessage(ctx, workers.ServerMessage{
		Type: messages.MessageTypeServerToggleResource,
		Message: &messages.ResourceToggle{
			EntityID: toggle.EntityID,
		},
		ExcludeClientID: message.ClientID,
	})

	return nil
}

func (gm *GameManager) handleClientPlayerUpdate(ctx context.Context, message *messages.Message) error {
	clientPlayerUpdate := &messages.ClientPlayerUpdate{}
	if err := json.Unmarshal(message.Payload, clientPlayerUpdate); err != nil {
		return fmt.Errorf("failed to unmarshal player update: %v", err)
	}

	player, ok := gm.gameState.Players[message.ClientID]
	if !ok {
		return fmt.Errorf("client %d is not in the game state", message.ClientID)
	}

	if player.LastProcessedTimestamp > clientPlayerUpdate.Timestamp {
		return fmt.Errorf("outdated player update")
	}
	player.LastProcessedTimestamp = clientPlayerUpdate.Timestamp

	player.MoveTo(
		clamp(clientPlayerUpdate.X, 0, float64(constants.WorldWidth)-constants.PlayerWidth),
		clamp(clientPlayerUpdate.Y, 0, float64(constants.WorldHeight)-constants.PlayerHeight),
	)

	gm.collectPickups(ctx, player)

	return nil
}

// collectPickups hands every overlapping pickup to the player's ammo.
func (gm *GameManager) collectPickups(ctx context.Context, player *types.PlayerState) {
	before := player.Ammo.Count
	for _, pickup := range gm.gameState.Pickups.Collect(player.Object, player.Ammo) {
		log.Debug("Player %d collected pickup %s", player.ClientID, pickup.ID)
		gm.sendServerMessage(ctx, workers.ServerMessage{
			Type: messages.MessageTypeServerPickupCollected,
			Message: &messages.ServerPickupCollected{
				PickupID: pickup.ID.String(),
				ClientID: player.ClientID,
				Amount:   player.Ammo.Count - before,
				Ammo:     player.Ammo.Count,
			},
			Reliable: true,
		})
		before = player.Ammo.Count
	}
}

// updateServerObjects advances torches and pickup respawns
func (gm *GameManager) updateServerObjects(ctx context.Context, deltaTime float64) {
	for _, player := range gm.gameState.Players {
		player.Torch.Tick(deltaTime)
	}

	for _, pickup := range gm.gameState.Pickups.Update(deltaTime) {
		gm.sendServerMessage(ctx, workers.ServerMessage{
			Type:     messages.MessageTypeServerPickupSpawn,
			Message:  pickupSpawnFromPickup(pickup),
			Reliable: true,
		})
	}
}

// sendServerMessage hands a message to the server message worker.
// Unreliable messages are dropped when the worker falls behind, reliable ones wait.
func (gm *GameManager) sendServerMessage(ctx context.Context, msg workers.ServerMessage) {
	if msg.Reliable {
		select {
		case gm.serverMessageChan <- msg:
		case <-ctx.Done():
		}
		return
	}

	select {
	case gm.serverMessageChan <- msg:
	default:
		log.Warn("Server message channel is full, dropped %s", msg.Type)
	}
}

func playerConnectFromState(player *types.PlayerState) *messages.ServerPlayerConnect {
	return &messages.ServerPlayerConnect{
		ClientID:       player.ClientID,
		Name:           player.Name,
		X:              player.Position.X,
		Y:              player.Position.Y,
		TorchActive:    player.Torch.Active(),
		TorchRemaining: player.Torch.Remaining(),
		Ammo:           player.Ammo.Count,
		MaxAmmo:        player.Ammo.Max,
	}
}

func pickupSpawnFromPickup(pickup *inventory.Pickup) *messages.ServerPickupSpawn {
	return &messages.ServerPickupSpawn{
		PickupID: pickup.ID.String(),
		Type:     uint8(pickup.Type),
		Amount:   pickup.Amount,
		X:        pickup.Object.Position.X,
		Y:        pickup.Object.Position.Y,
	}
}

func clamp(v float64, min float64, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
