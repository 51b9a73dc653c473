// Package device holds the directory of tracking units known to the
// platform. A unit must exist here, and be unassigned, before an asset
// can claim it.
package device

import "time"

// Device is a single tracking unit identified by its IMEI.
type Device struct {
	IMEI       string    `json:"imei"`
	Model      string    `json:"model"`
	Assigned   bool      `json:"assigned"`
	ImportedAt time.Time `json:"imported_at"`
}
