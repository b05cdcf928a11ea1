package inventory

// Ammo is the bullet counter carried by a player.
type Ammo struct {
	Count int16
	Max   int16
}

func NewAmmo(count int16, max int16) *Ammo {
	a := &Ammo{Max: max}
	a.Set(count)
	return a
}

// Set overwrites the count, clamped to [0, Max].
func (a *Ammo) Set(count int16) {
	switch {
	case count < 0:
		a.Count = 0
	case count > a.Max:
		a.Count = a.Max
	default:
		a.Count = count
	}
}

// Missing returns how many bullets fit before reaching Max.
func (a *Ammo) Missing() int16 {
	return a.Max - a.Count
}

// Increment adds amount bullets, clamped at Max, and returns how many were added.
func (a *Ammo) Increment(amount int16) int16 {
	if amount <= 0 {
		return 0
	}
	if amount > a.Missing() {
		amount = a.Missing()
	}
	a.Count += amount
	return amount
}

// TryPickup collects a bullet pickup when there is room for at least one
// more bullet. Pickups of other types are left for other components.
func (a *Ammo) TryPickup(p *Pickup) bool {
	if p == nil || !p.Exists() {
		return false
	}
	if p.Type != PickupTypeBullet || a.Missing() <= 0 {
		return false
	}

	a.Increment(p.Amount)
	p.Consume()
	return true
}
