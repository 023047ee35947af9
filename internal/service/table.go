package service

import (
	"context"

	"github.com/foosball/league/internal/domain"
	"github.com/foosball/league/internal/repository"
	"github.com/jackc/pgx/v5"
)

// TableService manages the foosball table registry.
type TableService struct {
	db     TxBeginner
	tables repository.TableRepository
	outbox repository.OutboxRepository
}

// NewTableService creates a TableService.
func NewTableService(db TxBeginner, tables repository.TableRepository, outbox repository.OutboxRepository) *TableService {
	return &TableService{db: db, tables: tables, outbox: outbox}
}

// List returns tables matching q.
func (s *TableService) List(ctx context.Context, q domain.TableQuery) ([]domain.FoosballTable, error) {
	tables, err := s.tables.List(ctx, s.db, q)
	if err != nil {
		return nil, asAppError("list tables", err)
	}
	return tables, nil
}

// Get returns one table or a not-found error.
func (s *TableService) Get(ctx context.Context, tableID string) (*domain.FoosballTable, error) {
	t, err := s.tables.FindByID(ctx, s.db, tableID)
	if err != nil {
		return nil, asAppError("find table", err)
	}
	if t == nil {
		return nil, domain.ErrNotFound("foosball table", tableID)
	}
	return t, nil
}

// Create registers a new table.
func (s *TableService) Create(ctx context.Context, t domain.FoosballTable) (*domain.FoosballTable, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		existing, err := s.tables.FindByID(ctx, tx, t.TableID)
		if err != nil {
			return asAppError("find table", err)
		}
		if existing != nil {
			return domain.ErrConflict("foosball table with this table_id already exists")
		}
		if err := s.tables.Create(ctx, tx, &t); err != nil {
			return asAppError("create table", err)
		}
		return recordEvent(ctx, tx, s.outbox, domain.AggregateTable, t.TableID, domain.EventCreated, t)
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Update overwrites table tableID with t. The key in t is ignored.
func (s *TableService) Update(ctx context.Context, tableID string, t domain.FoosballTable) (*domain.FoosballTable, error) {
	t.TableID = tableID
	if err := t.Validate(); err != nil {
		return nil, err
	}
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.tables.Update(ctx, tx, &t); err != nil {
			return asAppError("update table", err)
		}
		return recordEvent(ctx, tx, s.outbox, domain.AggregateTable, tableID, domain.EventUpdated, t)
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes table tableID along with its games and their performances.
func (s *TableService) Delete(ctx context.Context, tableID string) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		existing, err := s.tables.FindByID(ctx, tx, tableID)
		if err != nil {
			return asAppError("find table", err)
		}
		if existing == nil {
			return domain.ErrNotFound("foosball table", tableID)
		}
		if err := s.tables.Delete(ctx, tx, tableID); err != nil {
			return asAppError("delete table", err)
		}
		return recordEvent(ctx, tx, s.outbox, domain.AggregateTable, tableID, domain.EventDeleted, existing)
	})
}
