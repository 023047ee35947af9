package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/foosball/league/internal/repository"
)

// Publisher delivers one message to a topic. *KafkaProducer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// switchable is implemented by publishers that can run without a broker.
type switchable interface {
	Enabled() bool
}

// OutboxRelay moves league events from the event_outbox table to a Publisher.
// Events are published in outbox order; a failed publish stops the batch so
// later events for the same aggregate never overtake it.
type OutboxRelay struct {
	db        repository.DBTX
	outbox    repository.OutboxRepository
	publisher Publisher
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

// NewOutboxRelay creates a new outbox relay.
func NewOutboxRelay(db repository.DBTX, outbox repository.OutboxRepository, publisher Publisher,
	interval time.Duration, batchSize int, logger *slog.Logger) *OutboxRelay {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &OutboxRelay{
		db:        db,
		outbox:    outbox,
		publisher: publisher,
		logger:    logger,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run polls until ctx is cancelled.
func (r *OutboxRelay) Run(ctx context.Context) {
	r.logger.Info("outbox relay started", "interval", r.interval, "batch_size", r.batchSize)
	if p, ok := r.publisher.(switchable); ok && !p.Enabled() {
		r.logger.Warn("publisher disabled; outbox rows are marked published without reaching a broker")
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.Poll(ctx); err != nil {
				r.logger.Error("outbox poll error", "error", err)
			}
		}
	}
}

// Poll relays one batch and returns how many events were published.
func (r *OutboxRelay) Poll(ctx context.Context) (int, error) {
	events, err := r.outbox.FetchUnpublished(ctx, r.db, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	ids := make([]int64, 0, len(events))
	var publishErr error
	for _, e := range events {
		msg, err := json.Marshal(e)
		if err != nil {
			publishErr = fmt.Errorf("encode event %s: %w", e.EventID, err)
			break
		}
		if err := r.publisher.Publish(ctx, e.Topic(), []byte(e.AggregateID), msg); err != nil {
			publishErr = fmt.Errorf("publish event %s: %w", e.EventID, err)
			break
		}
		r.logger.Debug("outbox event published",
			"seq_id", e.SeqID,
			"event_id", e.EventID,
			"topic", e.Topic(),
			"aggregate_id", e.AggregateID,
		)
		ids = append(ids, e.SeqID)
	}

	if err := r.outbox.MarkPublished(ctx, r.db, ids); err != nil {
		return 0, fmt.Errorf("mark published: %w", err)
	}
	if len(ids) > 0 {
		r.logger.Info("processed outbox batch", "count", len(ids))
	}
	return len(ids), publishErr
}
