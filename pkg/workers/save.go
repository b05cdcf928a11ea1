package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/torchlight/pkg/log"
	"github.com/cbodonnell/torchlight/pkg/repositories"
	"github.com/cbodonnell/torchlight/pkg/state"
)

type SaveGameStateWorker struct {
	repository              repositories.Repository
	savePlayerInventoryChan <-chan SavePlayerInventoryRequest
	stateManager            state.StateManager
	interval                time.Duration
}

type NewSaveGameStateWorkerOptions struct {
	Repository              repositories.Repository
	SavePlayerInventoryChan <-chan SavePlayerInventoryRequest
	StateManager            state.StateManager
	Interval                time.Duration
}

type SavePlayerInventoryRequest struct {
	Timestamp int64
	Name      string
	Ammo      int16
}

// NewSaveGameStateWorker creates a new SaveGameStateWorker.
// The worker processes save requests from the game loop and
// periodically saves the published snapshot to the repository.
func NewSaveGameStateWorker(opts NewSaveGameStateWorkerOptions) *SaveGameStateWorker {
	return &SaveGameStateWorker{
		repository:              opts.Repository,
		savePlayerInventoryChan: opts.SavePlayerInventoryChan,
		stateManager:            opts.StateManager,
		interval:                opts.Interval,
	}
}

func (w *SaveGameStateWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case saveRequest := <-w.savePlayerInventoryChan:
			w.savePlayerInventory(ctx, saveRequest)
		case t := <-ticker.C:
			w.saveSnapshot(ctx, t)
		}
	}
}

func (w *SaveGameStateWorker) savePlayerInventory(ctx context.Context, saveRequest SavePlayerInventoryRequest) {
	err := w.repository.SavePlayerInventory(ctx, saveRequest.Timestamp, saveRequest.Name, saveRequest.Ammo)
	if err != nil {
		log.Error("Failed to save inventory for %s: %v", saveRequest.Name, err)
	}
}

func (w *SaveGameStateWorker) saveSnapshot(ctx context.Context, t time.Time) {
	snapshot, err := w.stateManager.Get(ctx)
	if err != nil {
		log.Error("Failed to get current snapshot: %v", err)
		return
	}
	if len(snapshot.Players) == 0 {
		return
	}
	snapshot.Timestamp = t.UnixMilli()

	if err := w.repository.SaveSnapshot(ctx, snapshot); err != nil {
		log.Error("Failed to save snapshot: %v", err)
	}
}
