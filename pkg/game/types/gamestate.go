package types

import (
	"github.com/cbodonnell/torchlight/pkg/inventory"
	"github.com/cbodonnell/torchlight/pkg/state"
	"github.com/solarlune/resolv"
)

type GameState struct {
	// Timestamp is the time at which the game state was generated
	Timestamp int64
	// Players maps client IDs to player states
	Players map[uint32]*PlayerState
	// Pickups holds the collectibles placed in the collision space
	Pickups *inventory.PickupField
	// CollisionSpace is a resolv.Space used for collision detection
	CollisionSpace *resolv.Space
}

func NewGameState(collisionSpace *resolv.Space) *GameState {
	return &GameState{
		Timestamp:      0,
		Players:        make(map[uint32]*PlayerState),
		Pickups:        inventory.NewPickupField(collisionSpace),
		CollisionSpace: collisionSpace,
	}
}

func (g *GameState) AddPlayer(player *PlayerState) {
	g.Players[player.ClientID] = player
	g.CollisionSpace.Add(player.Object)
}

func (g *GameState) RemovePlayer(clientID uint32) (*PlayerState, bool) {
	player, ok := g.Players[clientID]
	if !ok {
		return nil, false
	}
	g.CollisionSpace.Remove(player.Object)
	delete(g.Players, clientID)
	return player, true
}

// Snapshot returns a copy of the game state that is safe to share outside the game loop
func (g *GameState) Snapshot() *state.Snapshot {
	snapshot := state.NewSnapshot()
	snapshot.Timestamp = g.Timestamp
	for clientID, player := range g.Players {
		snapshot.Players[clientID] = player.Snapshot()
	}
	return snapshot
}
