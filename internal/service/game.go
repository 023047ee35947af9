package service

import (
	"context"
	"fmt"

	"github.com/foosball/league/internal/domain"
	"github.com/foosball/league/internal/repository"
	"github.com/jackc/pgx/v5"
)

// GameService records games played on registered tables.
type GameService struct {
	db     TxBeginner
	games  repository.GameRepository
	tables repository.TableRepository
	outbox repository.OutboxRepository
}

// NewGameService creates a GameService.
func NewGameService(db TxBeginner, games repository.GameRepository, tables repository.TableRepository, outbox repository.OutboxRepository) *GameService {
	return &GameService{db: db, games: games, tables: tables, outbox: outbox}
}

// List returns every game ordered by id.
func (s *GameService) List(ctx context.Context) ([]domain.Game, error) {
	games, err := s.games.List(ctx, s.db)
	if err != nil {
		return nil, asAppError("list games", err)
	}
	return games, nil
}

// Get returns one game or a not-found error.
func (s *GameService) Get(ctx context.Context, id string) (*domain.Game, error) {
	g, err := s.games.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, asAppError("find game", err)
	}
	if g == nil {
		return nil, domain.ErrNotFound("game", id)
	}
	return g, nil
}

// Create records a new game on an existing table.
func (s *GameService) Create(ctx context.Context, g domain.Game) (*domain.Game, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.checkTable(ctx, tx, g.Table); err != nil {
			return err
		}
		existing, err := s.games.FindByID(ctx, tx, g.ID)
		if err != nil {
			return asAppError("find game", err)
		}
		if existing != nil {
			return domain.ErrConflict("game with this id already exists")
		}
		if err := s.games.Create(ctx, tx, &g); err != nil {
			return asAppError("create game", err)
		}
		return recordEvent(ctx, tx, s.outbox, domain.AggregateGame, g.ID, domain.EventCreated, g)
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Update overwrites game id with g. The id in g is ignored.
func (s *GameService) Update(ctx context.Context, id string, g domain.Game) (*domain.Game, error) {
	g.ID = id
	if err := g.Validate(); err != nil {
		return nil, err
	}
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		existing, err := s.games.FindByID(ctx, tx, id)
		if err != nil {
			return asAppError("find game", err)
		}
		if existing == nil {
			return domain.ErrNotFound("game", id)
		}
		if err := s.checkTable(ctx, tx, g.Table); err != nil {
			return err
		}
		if err := s.games.Update(ctx, tx, &g); err != nil {
			return asAppError("update game", err)
		}
		return recordEvent(ctx, tx, s.outbox, domain.AggregateGame, id, domain.EventUpdated, g)
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Delete removes game id along with its performances.
func (s *GameService) Delete(ctx context.Context, id string) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		existing, err := s.games.FindByID(ctx, tx, id)
		if err != nil {
			return asAppError("find game", err)
		}
		if existing == nil {
			return domain.ErrNotFound("game", id)
		}
		if err := s.games.Delete(ctx, tx, id); err != nil {
			return asAppError("delete game", err)
		}
		return recordEvent(ctx, tx, s.outbox, domain.AggregateGame, id, domain.EventDeleted, existing)
	})
}

func (s *GameService) checkTable(ctx context.Context, tx repository.DBTX, tableID string) error {
	t, err := s.tables.FindByID(ctx, tx, tableID)
	if err != nil {
		return asAppError("find table", err)
	}
	if t == nil {
		f := domain.FieldErrors{}
		f.Add("table", fmt.Sprintf(msgMissingObject, tableID))
		return f.Err()
	}
	return nil
}
