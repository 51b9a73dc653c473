// Package notify implements the asynchronous notification dispatcher: jobs
// are enqueued by submission services, picked up by a worker pool, rendered
// from a named template, and handed to the mail transport. Delivery failures
// are absorbed and reported as a boolean outcome, never raised back to the
// submitting caller.
package notify

import (
	"time"

	"github.com/google/uuid"
)

// State tracks a job through its lifecycle. Terminal states are Delivered
// and FailedSilently; there is no retry from either.
type State string

const (
	StateQueued         State = "queued"
	StateRendering      State = "rendering"
	StateSending        State = "sending"
	StateDelivered      State = "delivered"
	StateFailedSilently State = "failed_silently"
)

// Job describes one message to render and send. Jobs are immutable after
// enqueue; workers only read them.
type Job struct {
	ID         string         `json:"id"`
	TemplateID string         `json:"template_id"`
	Subject    string         `json:"subject"`
	Context    map[string]any `json:"context,omitempty"`
	Recipients []string       `json:"recipients"`
	BCC        []string       `json:"bcc,omitempty"`
	ReplyTo    string         `json:"reply_to,omitempty"`
	EnqueuedAt time.Time      `json:"enqueued_at"`
}

// NewJob stamps a job with an id and enqueue time.
func NewJob(templateID, subject string, context map[string]any, recipients ...string) Job {
	return Job{
		ID:         uuid.NewString(),
		TemplateID: templateID,
		Subject:    subject,
		Context:    context,
		Recipients: recipients,
		EnqueuedAt: time.Now().UTC(),
	}
}
