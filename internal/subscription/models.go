// Package subscription tracks how many days of service each account has
// left. A daily job decrements the counters and reports lapses.
package subscription

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is the remaining service balance for one account.
type Subscription struct {
	ID            uuid.UUID `json:"id"`
	Account       string    `json:"account"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	RemainingDays int       `json:"remaining_days"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Lapsed reports whether the balance has run out.
func (s Subscription) Lapsed() bool { return s.RemainingDays <= 0 }
