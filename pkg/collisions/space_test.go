package collisions

import (
	"testing"

	"github.com/cbodonnell/torchlight/pkg/game/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollisionSpace(t *testing.T) {
	space := NewCollisionSpace()

	assert.Equal(t, constants.CellSize, space.CellWidth)
	assert.Equal(t, constants.CellSize, space.CellHeight)
	require.Len(t, space.Cells, constants.WorldHeight/constants.CellSize)
	assert.Len(t, space.Cells[0], constants.WorldWidth/constants.CellSize)
	assert.Empty(t, space.Objects())
}
