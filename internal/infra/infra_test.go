package infra

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/foosball/league/internal/domain"
	"github.com/foosball/league/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_TIMEOUT", "15s")
	t.Setenv("OUTBOX_BATCH_SIZE", "25")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, 8001, cfg.ChatPort)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 15*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, 25, cfg.OutboxBatchSize)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
}

func TestConfigDSN(t *testing.T) {
	cfg := &Config{PGUser: "u", PGPassword: "p", PGHost: "db", PGPort: 5433, PGDatabase: "league"}
	assert.Equal(t, "postgres://u:p@db:5433/league?sslmode=disable", cfg.DSN())

	cfg.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", cfg.DSN())
}

func TestConfigValidate(t *testing.T) {
	strong := "0123456789abcdef0123456789abcdef"
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"insecure default", Config{JWTSecret: insecureJWTSecret, OutboxBatchSize: 1}, "insecure default"},
		{"short secret", Config{JWTSecret: "short", OutboxBatchSize: 1}, "too short"},
		{"insecure allowed for dev", Config{JWTSecret: insecureJWTSecret, OutboxBatchSize: 1, AllowInsecureDefaults: true}, ""},
		{"strong secret", Config{JWTSecret: strong, OutboxBatchSize: 1}, ""},
		{"bad batch size", Config{JWTSecret: strong}, "OUTBOX_BATCH_SIZE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test , ,http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}

func TestBrokenPipeFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug")

	logger.Error("write response", "error", errors.New("write tcp 127.0.0.1:8000: broken pipe"))
	logger.Info("Broken pipe from client")
	assert.Empty(t, buf.String())

	logger.Info("http request", "status", 200)
	assert.Contains(t, buf.String(), `"msg":"http request"`)

	buf.Reset()
	logger.With("component", "api").Warn("upstream", "error", "broken pipe")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthCheck(t *testing.T) {
	assert.NoError(t, HealthCheck(context.Background(), stubPinger{}))
	assert.Error(t, HealthCheck(context.Background(), stubPinger{err: errors.New("down")}))
}

func TestFindMigrationDir(t *testing.T) {
	dir := FindMigrationDir()
	assert.Equal(t, "migrations", filepath.Base(dir))
	_, err := os.Stat(filepath.Join(dir, "000001_league.up.sql"))
	assert.NoError(t, err)
}

type memOutbox struct {
	events    []domain.OutboxEvent
	published []int64
	fetchErr  error
}

func (m *memOutbox) Insert(context.Context, repository.DBTX, domain.OutboxDraft) error { return nil }

func (m *memOutbox) FetchUnpublished(_ context.Context, _ repository.DBTX, limit int) ([]domain.OutboxEvent, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	var out []domain.OutboxEvent
	for _, e := range m.events {
		if !m.isPublished(e.SeqID) && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memOutbox) MarkPublished(_ context.Context, _ repository.DBTX, ids []int64) error {
	m.published = append(m.published, ids...)
	return nil
}

func (m *memOutbox) isPublished(id int64) bool {
	for _, p := range m.published {
		if p == id {
			return true
		}
	}
	return false
}

type sentMessage struct {
	topic string
	key   string
	value []byte
}

type recordingPublisher struct {
	sent   []sentMessage
	failOn string
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, key, value []byte) error {
	if string(key) == p.failOn {
		return errors.New("broker unavailable")
	}
	p.sent = append(p.sent, sentMessage{topic: topic, key: string(key), value: value})
	return nil
}

func outboxEvent(t *testing.T, seq int64, agg domain.AggregateType, id string, evt domain.EventType) domain.OutboxEvent {
	t.Helper()
	draft, err := domain.NewLeagueEvent(agg, id, evt, map[string]string{"id": id})
	require.NoError(t, err)
	return domain.OutboxEvent{SeqID: seq, OutboxDraft: draft}
}

func TestOutboxRelayPoll(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("publishes in order and marks published", func(t *testing.T) {
		store := &memOutbox{events: []domain.OutboxEvent{
			outboxEvent(t, 1, domain.AggregateTable, "T1", domain.EventCreated),
			outboxEvent(t, 2, domain.AggregateGame, "G1", domain.EventCreated),
		}}
		pub := &recordingPublisher{}
		relay := NewOutboxRelay(nil, store, pub, time.Second, 10, logger)

		n, err := relay.Poll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []int64{1, 2}, store.published)
		require.Len(t, pub.sent, 2)
		assert.Equal(t, "league.foosball_table.created", pub.sent[0].topic)
		assert.Equal(t, "T1", pub.sent[0].key)
		assert.Contains(t, string(pub.sent[1].value), `"aggregate_id":"G1"`)

		n, err = relay.Poll(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("failed publish stops the batch", func(t *testing.T) {
		store := &memOutbox{events: []domain.OutboxEvent{
			outboxEvent(t, 1, domain.AggregatePlayer, "P1", domain.EventCreated),
			outboxEvent(t, 2, domain.AggregatePlayer, "P2", domain.EventCreated),
			outboxEvent(t, 3, domain.AggregatePlayer, "P3", domain.EventCreated),
		}}
		pub := &recordingPublisher{failOn: "P2"}
		relay := NewOutboxRelay(nil, store, pub, time.Second, 10, logger)

		n, err := relay.Poll(context.Background())
		require.Error(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, []int64{1}, store.published)

		pub.failOn = ""
		n, err = relay.Poll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []int64{1, 2, 3}, store.published)
	})

	t.Run("respects batch size", func(t *testing.T) {
		store := &memOutbox{events: []domain.OutboxEvent{
			outboxEvent(t, 1, domain.AggregateGame, "G1", domain.EventDeleted),
			outboxEvent(t, 2, domain.AggregateGame, "G2", domain.EventDeleted),
		}}
		relay := NewOutboxRelay(nil, store, &recordingPublisher{}, time.Second, 1, logger)

		n, err := relay.Poll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("fetch error", func(t *testing.T) {
		store := &memOutbox{fetchErr: errors.New("db down")}
		relay := NewOutboxRelay(nil, store, &recordingPublisher{}, time.Second, 10, logger)

		_, err := relay.Poll(context.Background())
		assert.ErrorContains(t, err, "db down")
	})
}

func TestDisabledKafkaProducerIsNoop(t *testing.T) {
	p := NewKafkaProducer("", true, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Publish(context.Background(), "league.game.created", []byte("G1"), []byte("{}")))
	assert.NoError(t, p.Close())
}

func TestOutboxRelayWarnsWhenPublisherDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	producer := NewKafkaProducer("", false, logger)
	relay := NewOutboxRelay(nil, &memOutbox{}, producer, time.Second, 10, logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	relay.Run(ctx)

	assert.Contains(t, buf.String(), "outbox rows are marked published without reaching a broker")

	buf.Reset()
	NewOutboxRelay(nil, &memOutbox{}, &recordingPublisher{}, time.Second, 10, logger).Run(ctx)
	assert.NotContains(t, buf.String(), "without reaching a broker")
}
