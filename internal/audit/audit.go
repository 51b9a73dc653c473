// Package audit records what the submission pipeline did: which submissions
// were accepted or rejected, which notifications were delivered or silently
// failed, and which domain records were created. Events land in a local
// store and optionally fan out to Kafka.
package audit

import (
	"context"
	"time"
)

// Action names an auditable occurrence.
type Action string

const (
	ActionSubmissionAccepted    Action = "submission_accepted"
	ActionSubmissionRejected    Action = "submission_rejected"
	ActionNotificationDelivered Action = "notification_delivered"
	ActionNotificationFailed    Action = "notification_failed"
	ActionCustomerRegistered    Action = "customer_registered"
	ActionAssetCreated          Action = "asset_created"
	ActionSubscriptionLapsed    Action = "subscription_lapsed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	Action    Action            `json:"action"`
	Subject   string            `json:"subject,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
}

// Store is an append-only audit sink.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByAction(ctx context.Context, action Action) ([]Event, error)
}
