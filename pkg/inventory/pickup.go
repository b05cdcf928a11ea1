package inventory

import (
	"github.com/google/uuid"
	"github.com/solarlune/resolv"
)

const (
	// CollisionSpaceTagPickup tags pickup objects in a collision space
	CollisionSpaceTagPickup string = "pickup"

	PickupWidth  float64 = 16.0
	PickupHeight float64 = 16.0
	// PickupRespawnTime is the time it takes for a consumed pickup to respawn
	PickupRespawnTime float64 = 15.0 // seconds
)

type PickupType uint8

const (
	PickupTypeBullet PickupType = iota
	PickupTypeBattery
)

// Pickup is a collectible object placed in the world.
type Pickup struct {
	ID     uuid.UUID
	Type   PickupType
	Amount int16
	Object *resolv.Object

	exists      bool
	respawnTime float64
}

func NewPickup(pickupType PickupType, amount int16, x float64, y float64) *Pickup {
	p := &Pickup{
		ID:     uuid.New(),
		Type:   pickupType,
		Amount: amount,
		Object: resolv.NewObject(x, y, PickupWidth, PickupHeight, CollisionSpaceTagPickup),
		exists: true,
	}
	p.Object.Data = p
	return p
}

func (p *Pickup) Exists() bool {
	return p.exists
}

func (p *Pickup) RespawnTime() float64 {
	return p.respawnTime
}

// Consume removes the pickup from play until it respawns.
func (p *Pickup) Consume() {
	p.exists = false
	p.respawnTime = PickupRespawnTime
}

func (p *Pickup) DecrementRespawnTime(deltaTime float64) {
	p.respawnTime -= deltaTime
}

func (p *Pickup) Spawn() {
	p.exists = true
	p.respawnTime = 0
}
