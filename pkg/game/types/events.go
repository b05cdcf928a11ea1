package types

type ConnectPlayerEvent struct {
	ClientID uint32
	Name     string
	Position Position
	Ammo     int16
}

type DisconnectPlayerEvent struct {
	ClientID uint32
}
