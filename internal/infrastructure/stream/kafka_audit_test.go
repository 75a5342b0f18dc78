package stream

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
	"github.com/schoolcare/counselor-dashboard/internal/infrastructure/memory"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type failingStore struct{ memory.AuditStore }

func (*failingStore) Append(context.Context, domain.AuditRecord) error {
	return errors.New("store down")
}

func TestPublishingAuditStore_AppendPublishes(t *testing.T) {
	inner := memory.NewAuditStore()
	w := &fakeWriter{}
	s := NewPublishingAuditStore(inner, w, zerolog.Nop())

	rec := domain.AuditRecord{ID: "r1", At: time.Unix(100, 0).UTC(), User: "Admin", Role: "Admin", Action: "Added counselor X"}
	require.NoError(t, s.Append(context.Background(), rec))

	stored, _ := s.ReadAll(context.Background())
	require.Len(t, stored, 1)

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "Admin", string(w.msgs[0].Key))
	var got domain.AuditRecord
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Action, got.Action)
	assert.True(t, rec.At.Equal(got.At))
}

func TestPublishingAuditStore_PublishFailureIsNotFatal(t *testing.T) {
	inner := memory.NewAuditStore()
	w := &fakeWriter{err: errors.New("broker unavailable")}
	s := NewPublishingAuditStore(inner, w, zerolog.Nop())

	require.NoError(t, s.Append(context.Background(), domain.AuditRecord{ID: "r1"}))

	stored, _ := s.ReadAll(context.Background())
	assert.Len(t, stored, 1)
}

func TestPublishingAuditStore_StoreFailureSkipsPublish(t *testing.T) {
	w := &fakeWriter{}
	s := NewPublishingAuditStore(&failingStore{}, w, zerolog.Nop())

	require.Error(t, s.Append(context.Background(), domain.AuditRecord{ID: "r1"}))
	assert.Empty(t, w.msgs)
}

func TestNewWriter(t *testing.T) {
	assert.Nil(t, NewWriter(" , ", "adminAudit"))

	w := NewWriter("k1:9092, k2:9092", "adminAudit")
	require.NotNil(t, w)
	assert.Equal(t, "adminAudit", w.Topic)
}
