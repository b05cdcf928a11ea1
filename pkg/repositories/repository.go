package repositories

import (
	"context"

	"github.com/cbodonnell/torchlight/pkg/repositories/models"
	"github.com/cbodonnell/torchlight/pkg/state"
)

// Repository persists player inventories between sessions.
// Resource state is never persisted.
type Repository interface {
	Close(ctx context.Context) error
	SavePlayerInventory(ctx context.Context, timestamp int64, name string, ammo int16) error
	SaveSnapshot(ctx context.Context, snapshot *state.Snapshot) error
	LoadPlayerInventory(ctx context.Context, name string) (*models.Inventory, error)
}
