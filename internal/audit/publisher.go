package audit

import (
	"context"
	"sync"
	"time"
)

// Publisher captures structured audit events. Emit is synchronous by
// default; WithAsyncBuffer moves persistence onto a background goroutine so
// hot paths never wait on the sink. When the async buffer is full the event
// is dropped rather than blocking the caller.
type Publisher struct {
	store Store

	inbox  chan Event
	wg     sync.WaitGroup
	closed chan struct{}
	once   sync.Once
}

type PublisherOption func(*Publisher)

// WithAsyncBuffer enables asynchronous persistence with the given buffer.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		if size > 0 {
			p.inbox = make(chan Event, size)
		}
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store, closed: make(chan struct{})}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if p.inbox == nil {
		return p.store.Append(ctx, event)
	}

	select {
	case p.inbox <- event:
		return nil
	case <-p.closed:
		return nil
	default:
		// Audit must never stall domain work; a full buffer drops the event.
		return nil
	}
}

// Close drains buffered events and stops the background goroutine.
func (p *Publisher) Close() {
	p.once.Do(func() {
		close(p.closed)
		p.wg.Wait()
	})
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for {
		select {
		case event := <-p.inbox:
			_ = p.store.Append(context.Background(), event)
		case <-p.closed:
			for {
				select {
				case event := <-p.inbox:
					_ = p.store.Append(context.Background(), event)
				default:
					return
				}
			}
		}
	}
}
