// Package customer covers portal account registration and login.
package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a portal account. Username doubles as the contact email.
type Customer struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
