package state

import "context"

// PlayerSnapshot is the published view of a single player.
type PlayerSnapshot struct {
	ClientID       uint32  `json:"clientID"`
	Name           string  `json:"name"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	TorchActive    bool    `json:"torchActive"`
	TorchRemaining float64 `json:"torchRemaining"`
	TorchOutput    float64 `json:"torchOutput"`
	Ammo           int16   `json:"ammo"`
	MaxAmmo        int16   `json:"maxAmmo"`
}

// Snapshot is the state published by the game loop at the end of a tick.
type Snapshot struct {
	// Timestamp is the time at which the snapshot was taken, in milliseconds
	Timestamp int64 `json:"timestamp"`
	// Players maps client IDs to player snapshots
	Players map[uint32]PlayerSnapshot `json:"players"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Players: make(map[uint32]PlayerSnapshot),
	}
}

func (s *Snapshot) Copy() *Snapshot {
	c := &Snapshot{
		Timestamp: s.Timestamp,
		Players:   make(map[uint32]PlayerSnapshot, len(s.Players)),
	}
	for id, p := range s.Players {
		c.Players[id] = p
	}
	return c
}

// StateManager provides shared access to the latest snapshot.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the current snapshot.
	Get(ctx context.Context) (*Snapshot, error)
	// Set replaces the current snapshot.
	Set(ctx context.Context, snapshot *Snapshot) error
}
