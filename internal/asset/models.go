// Package asset covers fleet asset registration: a vehicle identified by VIN,
// bound to a tracking unit from the device directory.
package asset

import (
	"time"

	"github.com/google/uuid"
)

// Asset is a tracked vehicle.
type Asset struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	VIN       string    `json:"vin"`
	IMEI      string    `json:"imei"`
	Account   string    `json:"account"`
	CreatedAt time.Time `json:"created_at"`
}

// TrackingURL is the page the asset's QR label points at.
func (a Asset) TrackingURL(baseURL string) string {
	return baseURL + "/assets/" + a.ID.String() + "/track"
}
