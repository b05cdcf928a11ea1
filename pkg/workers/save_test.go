package workers

import (
	"context"
	"fmt"
	"testing"
	"time"

	mocks "github.com/cbodonnell/torchlight/mocks/github.com/cbodonnell/torchlight/pkg/repositories"
	"github.com/cbodonnell/torchlight/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSaveGameStateWorker_savePlayerInventory(t *testing.T) {
	repository := mocks.NewRepository(t)
	repository.EXPECT().SavePlayerInventory(mock.Anything, int64(10), "alice", int16(7)).Return(nil).Once()
	repository.EXPECT().SavePlayerInventory(mock.Anything, int64(11), "bob", int16(3)).Return(fmt.Errorf("boom")).Once()

	w := NewSaveGameStateWorker(NewSaveGameStateWorkerOptions{Repository: repository})
	w.savePlayerInventory(context.Background(), SavePlayerInventoryRequest{Timestamp: 10, Name: "alice", Ammo: 7})
	w.savePlayerInventory(context.Background(), SavePlayerInventoryRequest{Timestamp: 11, Name: "bob", Ammo: 3})
}

func TestSaveGameStateWorker_saveSnapshot(t *testing.T) {
	ctx := context.Background()
	repository := mocks.NewRepository(t)
	stateManager := state.NewInMemoryStateManager()
	w := NewSaveGameStateWorker(NewSaveGameStateWorkerOptions{
		Repository:   repository,
		StateManager: stateManager,
	})

	// nothing is saved while nobody is connected
	w.saveSnapshot(ctx, time.UnixMilli(1000))

	snapshot := state.NewSnapshot()
	snapshot.Players[1] = state.PlayerSnapshot{ClientID: 1, Name: "alice", Ammo: 4}
	require.NoError(t, stateManager.Set(ctx, snapshot))

	repository.EXPECT().SaveSnapshot(mock.Anything, mock.AnythingOfType("*state.Snapshot")).
		Run(func(ctx context.Context, saved *state.Snapshot) {
			assert.Equal(t, int64(2000), saved.Timestamp)
			assert.Equal(t, int16(4), saved.Players[1].Ammo)
		}).
		Return(nil).Once()
	w.saveSnapshot(ctx, time.UnixMilli(2000))
}
