package workers

import (
	"context"

	"github.com/cbodonnell/torchlight/pkg/game/constants"
	gametypes "github.com/cbodonnell/torchlight/pkg/game/types"
	"github.com/cbodonnell/torchlight/pkg/log"
	"github.com/cbodonnell/torchlight/pkg/network"
	"github.com/cbodonnell/torchlight/pkg/queue"
	"github.com/cbodonnell/torchlight/pkg/repositories"
)

type ConnectionEventWorker struct {
	clientEventChan  <-chan network.ClientEvent
	repository       repositories.Repository
	serverEventQueue queue.Queue
}

type NewConnectionEventWorkerOptions struct {
	ClientEventChan  <-chan network.ClientEvent
	Repository       repositories.Repository
	ServerEventQueue queue.Queue
}

// NewConnectionEventWorker creates a new ConnectionEventWorker.
// The worker processes client events like connect and disconnect
// and writes server events to a queue for the game loop to process.
func NewConnectionEventWorker(opts NewConnectionEventWorkerOptions) *ConnectionEventWorker {
	return &ConnectionEventWorker{
		clientEventChan:  opts.ClientEventChan,
		repository:       opts.Repository,
		serverEventQueue: opts.ServerEventQueue,
	}
}

func (w *ConnectionEventWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-w.clientEventChan:
			w.handleClientEvent(ctx, event)
		}
	}
}

func (w *ConnectionEventWorker) handleClientEvent(ctx context.Context, event network.ClientEvent) {
	logger := log.With("client_id", event.ClientID)
	switch event.Type {
	case network.ClientEventTypeConnect:
		w.handleClientConnect(ctx, logger, event)
	case network.ClientEventTypeDisconnect:
		w.handleClientDisconnect(logger, event)
	default:
		logger.Error("Unknown client event type: %v", event.Type)
	}
}

func (w *ConnectionEventWorker) handleClientConnect(ctx context.Context, logger *log.Logger, event network.ClientEvent) {
	ammo := constants.PlayerStartingAmmo
	if inventory, err := w.repository.LoadPlayerInventory(ctx, event.Name); err == nil {
		ammo = inventory.Ammo
	} else {
		if !repositories.IsNotFound(err) {
			logger.Error("Failed to load inventory for %s: %v", event.Name, err)
		}
		logger.Debug("Adding %s with default inventory", event.Name)
	}

	if err := w.serverEventQueue.Enqueue(&gametypes.ConnectPlayerEvent{
		ClientID: event.ClientID,
		Name:     event.Name,
		Position: gametypes.Position{
			X: constants.PlayerStartingX,
			Y: constants.PlayerStartingY,
		},
		Ammo: ammo,
	}); err != nil {
		logger.Error("Failed to enqueue connect player event: %v", err)
	}
}

func (w *ConnectionEventWorker) handleClientDisconnect(logger *log.Logger, event network.ClientEvent) {
	if err := w.serverEventQueue.Enqueue(&gametypes.DisconnectPlayerEvent{
		ClientID: event.ClientID,
	}); err != nil {
		logger.Error("Failed to enqueue disconnect player event: %v", err)
	}
}
