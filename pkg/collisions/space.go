package collisions

import (
	"github.com/cbodonnell/torchlight/pkg/game/constants"
	"github.com/solarlune/resolv"
)

// NewCollisionSpace returns an empty space covering the whole world.
// Players and pickups add their own objects to it.
func NewCollisionSpace() *resolv.Space {
	return resolv.NewSpace(constants.WorldWidth, constants.WorldHeight, constants.CellSize, constants.CellSize)
}
