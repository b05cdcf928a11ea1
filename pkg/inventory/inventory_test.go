package inventory

import (
	"testing"

	"github.com/solarlune/resolv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmmo_TryPickup(t *testing.T) {
	tests := []struct {
		name        string
		ammo        *Ammo
		pickup      *Pickup
		want        bool
		wantCount   int16
		wantConsume bool
	}{
		{
			name:        "room for bullets",
			ammo:        NewAmmo(2, 10),
			pickup:      NewPickup(PickupTypeBullet, 5, 0, 0),
			want:        true,
			wantCount:   7,
			wantConsume: true,
		},
		{
			name:        "clamped at max",
			ammo:        NewAmmo(8, 10),
			pickup:      NewPickup(PickupTypeBullet, 5, 0, 0),
			want:        true,
			wantCount:   10,
			wantConsume: true,
		},
		{
			name:      "full",
			ammo:      NewAmmo(10, 10),
			pickup:    NewPickup(PickupTypeBullet, 5, 0, 0),
			want:      false,
			wantCount: 10,
		},
		{
			name:      "wrong type",
			ammo:      NewAmmo(0, 10),
			pickup:    NewPickup(PickupTypeBattery, 1, 0, 0),
			want:      false,
			wantCount: 0,
		},
		{
			name:      "nil pickup",
			ammo:      NewAmmo(3, 10),
			pickup:    nil,
			want:      false,
			wantCount: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ammo.TryPickup(tt.pickup)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, tt.ammo.Count)
			if tt.pickup != nil {
				assert.Equal(t, tt.wantConsume, !tt.pickup.Exists())
			}
		})
	}
}

func TestAmmo_ConsumedPickupIsIgnored(t *testing.T) {
	ammo := NewAmmo(0, 10)
	p := NewPickup(PickupTypeBullet, 3, 0, 0)
	require.True(t, ammo.TryPickup(p))
	assert.False(t, ammo.TryPickup(p))
	assert.Equal(t, int16(3), ammo.Count)
}

func TestAmmo_Set(t *testing.T) {
	ammo := NewAmmo(50, 10)
	assert.Equal(t, int16(10), ammo.Count)

	ammo.Set(-1)
	assert.Equal(t, int16(0), ammo.Count)

	ammo.Set(1)
	assert.Equal(t, int16(1), ammo.Count)
	assert.Equal(t, int16(0), ammo.Increment(-4))
	assert.Equal(t, int16(1), ammo.Count)
}

func TestPickupField_Collect(t *testing.T) {
	space := resolv.NewSpace(640, 480, 16, 16)
	field := NewPickupField(space)

	near := NewPickup(PickupTypeBullet, 4, 100, 100)
	far := NewPickup(PickupTypeBullet, 4, 500, 400)
	field.Add(near)
	field.Add(far)

	player := resolv.NewObject(100, 100, 32, 32, "player")
	space.Add(player)

	ammo := NewAmmo(0, 10)
	collected := field.Collect(player, ammo)
	require.Len(t, collected, 1)
	assert.Equal(t, near.ID, collected[0].ID)
	assert.Equal(t, int16(4), ammo.Count)
	assert.True(t, far.Exists())

	assert.Empty(t, field.Collect(player, ammo), "consumed pickups are not collected twice")
}

func TestPickupField_Update(t *testing.T) {
	field := NewPickupField(resolv.NewSpace(640, 480, 16, 16))
	p := NewPickup(PickupTypeBullet, 1, 0, 0)
	field.Add(p)
	p.Consume()

	assert.Empty(t, field.Update(PickupRespawnTime/2))
	assert.False(t, p.Exists())

	respawned := field.Update(PickupRespawnTime / 2)
	require.Len(t, respawned, 1)
	assert.True(t, p.Exists())
}

func TestPickupField_Remove(t *testing.T) {
	field := NewPickupField(resolv.NewSpace(640, 480, 16, 16))
	p := NewPickup(PickupTypeBullet, 1, 0, 0)
	field.Add(p)

	field.Remove(p.ID)
	_, ok := field.Get(p.ID)
	assert.False(t, ok)
	assert.Empty(t, field.Pickups())
}
