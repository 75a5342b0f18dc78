// Package stream fans audit records out to Kafka for downstream consumers.
package stream

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/schoolcare/counselor-dashboard/internal/api/metrics"
	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
	"github.com/schoolcare/counselor-dashboard/internal/core/ports"
)

const publishTimeout = 5 * time.Second

// MessageWriter is the subset of *kafka.Writer the audit stream uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewWriter returns a synchronous writer for topic on the comma-separated
// broker list. It returns nil when no broker is configured.
func NewWriter(brokers, topic string) *kafka.Writer {
	var addrs []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}
	if len(addrs) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           publishTimeout,
		AllowAutoTopicCreation: true,
	}
}

// PublishingAuditStore appends to the wrapped store and then publishes the
// record. The store stays the source of truth: a publish failure is logged
// and counted but does not fail the append.
type PublishingAuditStore struct {
	ports.AuditStore
	writer MessageWriter
	log    zerolog.Logger
}

// NewPublishingAuditStore wraps store so every appended record is also sent
// through writer.
func NewPublishingAuditStore(store ports.AuditStore, writer MessageWriter, log zerolog.Logger) *PublishingAuditStore {
	return &PublishingAuditStore{AuditStore: store, writer: writer, log: log}
}

func (s *PublishingAuditStore) Append(ctx context.Context, rec domain.AuditRecord) error {
	if err := s.AuditStore.Append(ctx, rec); err != nil {
		return err
	}

	value, err := json.Marshal(rec)
	if err != nil {
		metrics.AuditPublishErrorsTotal.Inc()
		s.log.Error().Err(err).Str("record_id", rec.ID).Msg("failed to encode audit record")
		return nil
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	msg := kafka.Message{Key: []byte(rec.User), Value: value, Time: rec.At}
	if err := s.writer.WriteMessages(pubCtx, msg); err != nil {
		metrics.AuditPublishErrorsTotal.Inc()
		s.log.Warn().Err(err).Str("record_id", rec.ID).Msg("failed to publish audit record")
	}
	return nil
}

// Close flushes and closes the writer.
func (s *PublishingAuditStore) Close() error {
	return s.writer.Close()
}
