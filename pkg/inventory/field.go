package inventory

import (
	"github.com/google/uuid"
	"github.com/solarlune/resolv"
)

// PickupField tracks the pickups placed in a collision space.
type PickupField struct {
	space   *resolv.Space
	pickups map[uuid.UUID]*Pickup
}

func NewPickupField(space *resolv.Space) *PickupField {
	return &PickupField{
		space:   space,
		pickups: make(map[uuid.UUID]*Pickup),
	}
}

func (f *PickupField) Add(p *Pickup) {
	f.pickups[p.ID] = p
	f.space.Add(p.Object)
}

func (f *PickupField) Remove(id uuid.UUID) {
	p, ok := f.pickups[id]
	if !ok {
		return
	}
	f.space.Remove(p.Object)
	delete(f.pickups, id)
}

func (f *PickupField) Get(id uuid.UUID) (*Pickup, bool) {
	p, ok := f.pickups[id]
	return p, ok
}

// Pickups returns every tracked pickup, consumed or not.
func (f *PickupField) Pickups() []*Pickup {
	pickups := make([]*Pickup, 0, len(f.pickups))
	for _, p := range f.pickups {
		pickups = append(pickups, p)
	}
	return pickups
}

// Collect offers every live pickup sharing cells with obj to ammo
// and returns the ones that were consumed.
func (f *PickupField) Collect(obj *resolv.Object, ammo *Ammo) []*Pickup {
	collision := obj.Check(0, 0, CollisionSpaceTagPickup)
	if collision == nil {
		return nil
	}

	var collected []*Pickup
	for _, o := range collision.Objects {
		p, ok := o.Data.(*Pickup)
		if !ok {
			continue
		}
		if ammo.TryPickup(p) {
			collected = append(collected, p)
		}
	}
	return collected
}

// Update counts down consumed pickups and returns the ones that respawned.
func (f *PickupField) Update(deltaTime float64) []*Pickup {
	var respawned []*Pickup
	for _, p := range f.pickups {
		if p.Exists() {
			continue
		}
		p.DecrementRespawnTime(deltaTime)
		if p.RespawnTime() <= 0 {
			p.Spawn()
			respawned = append(respawned, p)
		}
	}
	return respawned
}
