package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/logger"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/metrics"
)

type fakeOutboxRepo struct {
	mu        sync.Mutex
	pending   []*model.OutboxEvent
	processed []uuid.UUID
	failed    []uuid.UUID
}

func (r *fakeOutboxRepo) CreateTx(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent) error {
	return nil
}

func (r *fakeOutboxRepo) FetchPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.pending
	r.pending = nil
	return out, nil
}

func (r *fakeOutboxRepo) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed = append(r.processed, id)
	return nil
}

func (r *fakeOutboxRepo) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, id)
	return nil
}

type fakeBroker struct {
	mu        sync.Mutex
	published []string
	failOn    string
}

func (b *fakeBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if channel == b.failOn {
		return errors.New("broker unavailable")
	}
	b.published = append(b.published, channel)
	return nil
}

func (b *fakeBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, nil
}

func (b *fakeBroker) Close() error { return nil }

var testMetrics = metrics.New("outbox_test")

func event(eventType string) *model.OutboxEvent {
	return &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   []byte(`{}`),
		Status:    model.OutboxStatusPending,
		CreatedAt: time.Now(),
	}
}

func TestOutboxProcessorPublishesPending(t *testing.T) {
	ok := event(model.EventAppointmentCreated)
	bad := event(model.EventAppointmentUpdated)
	repo := &fakeOutboxRepo{pending: []*model.OutboxEvent{ok, bad}}
	broker := &fakeBroker{failOn: model.EventAppointmentUpdated}

	p := NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		BatchSize:    10,
		PollInterval: 5 * time.Millisecond,
	}, logger.NewLogger(nil), testMetrics)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return len(repo.processed) == 1 && len(repo.failed) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	assert.Equal(t, []uuid.UUID{ok.ID}, repo.processed)
	assert.Equal(t, []uuid.UUID{bad.ID}, repo.failed)
	assert.Equal(t, []string{model.EventAppointmentCreated}, broker.published)
}

func TestOutboxProcessorDefaults(t *testing.T) {
	p := NewOutboxProcessor(&fakeOutboxRepo{}, &fakeBroker{}, OutboxProcessorConfig{}, logger.NewLogger(nil), testMetrics)
	assert.Equal(t, 50, p.config.BatchSize)
	assert.Equal(t, 5*time.Second, p.config.PollInterval)
}
