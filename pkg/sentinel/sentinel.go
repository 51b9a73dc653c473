package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, queues, and lookup
// directories return these (optionally wrapped) so callers can translate them
// into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: unique constraint or concurrent update lost
// - ErrQueueFull: bounded queue refused an enqueue
// - ErrUnavailable: backing service or resource unreachable
//
// For validation failures (bad field input), use internal/validation directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrQueueFull   = errors.New("queue full")
	ErrUnavailable = errors.New("unavailable")
)
