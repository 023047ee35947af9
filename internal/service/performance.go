package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/foosball/league/internal/domain"
	"github.com/foosball/league/internal/repository"
	"github.com/jackc/pgx/v5"
)

// PerformanceService records per-player statistics for games.
type PerformanceService struct {
	db           TxBeginner
	performances repository.PerformanceRepository
	games        repository.GameRepository
	players      repository.PlayerRepository
	outbox       repository.OutboxRepository
}

// NewPerformanceService creates a PerformanceService.
func NewPerformanceService(
	db TxBeginner,
	performances repository.PerformanceRepository,
	games repository.GameRepository,
	players repository.PlayerRepository,
	outbox repository.OutboxRepository,
) *PerformanceService {
	return &PerformanceService{
		db:           db,
		performances: performances,
		games:        games,
		players:      players,
		outbox:       outbox,
	}
}

// List returns performances ordered by id, only those of gameID when it is non-empty.
func (s *PerformanceService) List(ctx context.Context, gameID string) ([]domain.Performance, error) {
	perfs, err := s.performances.List(ctx, s.db, gameID)
	if err != nil {
		return nil, asAppError("list performances", err)
	}
	return perfs, nil
}

// Get returns one performance or a not-found error.
func (s *PerformanceService) Get(ctx context.Context, id int64) (*domain.Performance, error) {
	p, err := s.performances.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, asAppError("find performance", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound("performance", strconv.FormatInt(id, 10))
	}
	return p, nil
}

// Create records a performance. A second performance for the same game and
// player is rejected by the store's unique constraint with a conflict.
func (s *PerformanceService) Create(ctx context.Context, p domain.Performance) (*domain.Performance, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.checkRefs(ctx, tx, p); err != nil {
			return err
		}
		if err := s.performances.Create(ctx, tx, &p); err != nil {
			return asAppError("create performance", err)
		}
		return recordEvent(ctx, tx, s.outbox, domain.AggregatePerformance,
			strconv.FormatInt(p.ID, 10), domain.EventCreated, p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update overwrites performance id with p. The creation timestamp is kept.
func (s *PerformanceService) Update(ctx context.Context, id int64, p domain.Performance) (*domain.Performance, error) {
	p.ID = id
	if err := p.Validate(); err != nil {
		return nil, err
	}
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		existing, err := s.performances.FindByID(ctx, tx, id)
		if err != nil {
			return asAppError("find performance", err)
		}
		if existing == nil {
			return domain.ErrNotFound("performance", strconv.FormatInt(id, 10))
		}
		if err := s.checkRefs(ctx, tx, p); err != nil {
			return err
		}
		p.CreatedAt = existing.CreatedAt
		if err := s.performances.Update(ctx, tx, &p); err != nil {
			return asAppError("update performance", err)
		}
		return recordEvent(ctx, tx, s.outbox, domain.AggregatePerformance,
			strconv.FormatInt(id, 10), domain.EventUpdated, p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes performance id.
func (s *PerformanceService) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		existing, err := s.performances.FindByID(ctx, tx, id)
		if err != nil {
			return asAppError("find performance", err)
		}
		if existing == nil {
			return domain.ErrNotFound("performance", strconv.FormatInt(id, 10))
		}
		if err := s.performances.Delete(ctx, tx, id); err != nil {
			return asAppError("delete performance", err)
		}
		return recordEvent(ctx, tx, s.outbox, domain.AggregatePerformance,
			strconv.FormatInt(id, 10), domain.EventDeleted, existing)
	})
}

// checkRefs reports every missing referenced object at once.
func (s *PerformanceService) checkRefs(ctx context.Context, tx repository.DBTX, p domain.Performance) error {
	f := domain.FieldErrors{}

	game, err := s.games.FindByID(ctx, tx, p.Game)
	if err != nil {
		return asAppError("find game", err)
	}
	if game == nil {
		f.Add("game", fmt.Sprintf(msgMissingObject, p.Game))
	}

	player, err := s.players.FindByID(ctx, tx, p.Player)
	if err != nil {
		return asAppError("find player", err)
	}
	if player == nil {
		f.Add("player", fmt.Sprintf(msgMissingObject, p.Player))
	}

	return f.Err()
}
