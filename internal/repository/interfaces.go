package repository

import (
	"context"

	"github.com/foosball/league/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PlayerRepository provides access to players.
type PlayerRepository interface {
	// List returns all players ordered by id.
	List(ctx context.Context, db DBTX) ([]domain.Player, error)

	// FindByID returns a player by ID, or nil if absent.
	FindByID(ctx context.Context, db DBTX, id string) (*domain.Player, error)

	// Create inserts a new player. RegistrationDate and PasswordHash must be set.
	Create(ctx context.Context, db DBTX, player *domain.Player) error

	// Update overwrites the mutable columns. registration_date is never written.
	Update(ctx context.Context, db DBTX, player *domain.Player) error

	// Delete removes a player; performances cascade.
	Delete(ctx context.Context, db DBTX, id string) error
}

// TableRepository provides access to foosball_tables.
type TableRepository interface {
	List(ctx context.Context, db DBTX, q domain.TableQuery) ([]domain.FoosballTable, error)
	FindByID(ctx context.Context, db DBTX, tableID string) (*domain.FoosballTable, error)
	Create(ctx context.Context, db DBTX, table *domain.FoosballTable) error
	Update(ctx context.Context, db DBTX, table *domain.FoosballTable) error

	// Delete removes a table; its games and their performances cascade.
	Delete(ctx context.Context, db DBTX, tableID string) error
}

// GameRepository provides access to games.
type GameRepository interface {
	// List returns all games ordered by id.
	List(ctx context.Context, db DBTX) ([]domain.Game, error)
	FindByID(ctx context.Context, db DBTX, id string) (*domain.Game, error)
	Create(ctx context.Context, db DBTX, game *domain.Game) error
	Update(ctx context.Context, db DBTX, game *domain.Game) error

	// Delete removes a game; performances cascade.
	Delete(ctx context.Context, db DBTX, id string) error
}

// PerformanceRepository provides access to performances.
type PerformanceRepository interface {
	// List returns performances ordered by id, limited to gameID when non-empty.
	List(ctx context.Context, db DBTX, gameID string) ([]domain.Performance, error)
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.Performance, error)

	// Create inserts a performance and fills in ID and CreatedAt.
	// A second row for the same (game, player) fails with a conflict.
	Create(ctx context.Context, db DBTX, perf *domain.Performance) error

	// Update overwrites the mutable columns. created_at is never written.
	Update(ctx context.Context, db DBTX, perf *domain.Performance) error
	Delete(ctx context.Context, db DBTX, id int64) error
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the entity write).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events, oldest first.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxEvent, error)

	// MarkPublished stamps published_at on the given rows.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}
