package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaSink publishes audit events to a Kafka topic in addition to a local
// store. Produce is fire-and-forget with an error callback into the log;
// audit fan-out must never block or fail domain work.
type KafkaSink struct {
	client *kgo.Client
	topic  string
	local  Store
	logger *slog.Logger
}

// NewKafkaSink connects a producer. The local store still receives every
// event; Kafka is a secondary feed for downstream consumers.
func NewKafkaSink(brokers []string, topic string, local Store, logger *slog.Logger) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &KafkaSink{client: client, topic: topic, local: local, logger: logger}, nil
}

func (s *KafkaSink) Append(ctx context.Context, event Event) error {
	if err := s.local.Append(ctx, event); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.Action),
		Value: payload,
	}
	s.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			s.logger.Warn("audit kafka produce failed",
				"action", string(event.Action),
				"error", err.Error(),
			)
		}
	})
	return nil
}

func (s *KafkaSink) ListByAction(ctx context.Context, action Action) ([]Event, error) {
	return s.local.ListByAction(ctx, action)
}

// Close flushes outstanding produces and releases the client.
func (s *KafkaSink) Close() {
	_ = s.client.Flush(context.Background())
	s.client.Close()
}
