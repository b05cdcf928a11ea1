package models

type Inventory struct {
	Name      string `json:"name"`
	Timestamp int64  `json:"timestamp"`
	Ammo      int16  `json:"ammo"`
}
