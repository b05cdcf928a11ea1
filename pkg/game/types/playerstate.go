package types

import (
	"github.com/cbodonnell/torchlight/pkg/game/constants"
	"github.com/cbodonnell/torchlight/pkg/inventory"
	"github.com/cbodonnell/torchlight/pkg/resource"
	"github.com/cbodonnell/torchlight/pkg/state"
	"github.com/solarlune/resolv"
)

const (
	CollisionSpaceTagPlayer string = "player"
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlayerState is the server's view of a connected player.
// Torch is a mirror of the owner's controller: it has no feedback hooks and never broadcasts.
type PlayerState struct {
	ClientID               uint32
	Name                   string
	LastProcessedTimestamp int64
	Position               Position
	Object                 *resolv.Object
	Torch                  *resource.Controller
	Ammo                   *inventory.Ammo
	// TorchOutput is the last output level pushed by the torch
	TorchOutput float64
}

func NewPlayerState(clientID uint32, name string, x float64, y float64, ammo int16) *PlayerState {
	p := &PlayerState{
		ClientID: clientID,
		Name:     name,
		Position: Position{X: x, Y: y},
		Object:   resolv.NewObject(x, y, constants.PlayerWidth, constants.PlayerHeight, CollisionSpaceTagPlayer),
		Ammo:     inventory.NewAmmo(ammo, constants.PlayerMaxAmmo),
	}
	p.Object.Data = p
	p.Torch = resource.NewController(resource.NewControllerOptions{
		EntityID:  clientID,
		MaxLevel:  constants.TorchMaxLevel,
		MaxOutput: constants.TorchMaxOutput,
		Sink:      p,
	})
	return p
}

// SetOutputLevel records the torch output so it can be published with the snapshot
func (p *PlayerState) SetOutputLevel(level float64) {
	p.TorchOutput = level
}

// MoveTo moves the player and its collision object
func (p *PlayerState) MoveTo(x float64, y float64) {
	p.Position = Position{X: x, Y: y}
	p.Object.Position.X = x
	p.Object.Position.Y = y
	p.Object.Update()
}

// Snapshot returns a copy of the player's state for publishing
func (p *PlayerState) Snapshot() state.PlayerSnapshot {
	return state.PlayerSnapshot{
		ClientID:       p.ClientID,
		Name:           p.Name,
		X:              p.Position.X,
		Y:              p.Position.Y,
		TorchActive:    p.Torch.Active(),
		TorchRemaining: p.Torch.Remaining(),
		TorchOutput:    p.TorchOutput,
		Ammo:           p.Ammo.Count,
		MaxAmmo:        p.Ammo.Max,
	}
}
