package model

import "time"

type BaseModel struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Location is the shared lat/lng/address triple carried by users and
// products. Stored flattened as location_* columns.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// DefaultLocation is used when a signup or product payload carries only
// an address string.
var DefaultLocation = Location{Lat: -1.9441, Lng: 30.0619, Address: "Kigali, Rwanda"}
