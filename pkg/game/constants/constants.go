package constants

import "github.com/cbodonnell/torchlight/pkg/resource"

const (
	// PlayerHeight is the height of a player's collision object
	PlayerHeight float64 = 32.0
	// PlayerWidth is the width of a player's collision object
	PlayerWidth float64 = 32.0
	// PlayerStartingX is where new players appear
	PlayerStartingX float64 = 320.0
	// PlayerStartingY is where new players appear
	PlayerStartingY float64 = 240.0

	// PlayerMaxAmmo is the capacity of a player's ammo
	PlayerMaxAmmo int16 = 30
	// PlayerStartingAmmo is the ammo of a player with no saved inventory
	PlayerStartingAmmo int16 = 10

	// TorchMaxLevel is the number of seconds a full torch burns
	TorchMaxLevel float64 = resource.DefaultMaxLevel
	// TorchMaxOutput is the light intensity of a full torch
	TorchMaxOutput float64 = resource.DefaultMaxOutput

	// BulletPickupAmount is the ammo granted by a bullet pickup
	BulletPickupAmount int16 = 10

	// WorldWidth is the width of the collision space
	WorldWidth int = 1280
	// WorldHeight is the height of the collision space
	WorldHeight int = 960
	// CellSize is the size of a collision space cell
	CellSize int = 16
)

// PickupSpawnPoints are the positions of the pickups placed at startup
var PickupSpawnPoints = [][2]float64{
	{160, 240},
	{480, 240},
	{320, 480},
	{640, 720},
}
