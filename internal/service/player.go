package service

import (
	"context"
	"errors"
	"time"

	"github.com/foosball/league/internal/domain"
	"github.com/foosball/league/internal/repository"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// PlayerService manages the player registry.
type PlayerService struct {
	db         TxBeginner
	players    repository.PlayerRepository
	outbox     repository.OutboxRepository
	bcryptCost int
	now        func() time.Time
}

// NewPlayerService creates a PlayerService hashing passwords at bcryptCost.
func NewPlayerService(db TxBeginner, players repository.PlayerRepository, outbox repository.OutboxRepository, bcryptCost int) *PlayerService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &PlayerService{
		db:         db,
		players:    players,
		outbox:     outbox,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// List returns every player ordered by id.
func (s *PlayerService) List(ctx context.Context) ([]domain.Player, error) {
	players, err := s.players.List(ctx, s.db)
	if err != nil {
		return nil, asAppError("list players", err)
	}
	return players, nil
}

// Get returns one player or a not-found error.
func (s *PlayerService) Get(ctx context.Context, id string) (*domain.Player, error) {
	p, err := s.players.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, asAppError("find player", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound("player", id)
	}
	return p, nil
}

// Create registers a player. The password is required and stored only as a
// bcrypt hash; the registration date is today's UTC date.
func (s *PlayerService) Create(ctx context.Context, in domain.PlayerWrite) (*domain.Player, error) {
	if err := in.Validate(true); err != nil {
		return nil, err
	}
	hash, err := s.hashPassword(*in.Password)
	if err != nil {
		return nil, err
	}

	player := &domain.Player{
		ID:               in.ID,
		Name:             in.Name,
		Age:              in.Age,
		Email:            in.Email,
		Role:             in.Role,
		RegistrationDate: domain.NewDate(s.now()),
		PasswordHash:     hash,
	}

	err = withTx(ctx, s.db, func(tx pgx.Tx) error {
		existing, err := s.players.FindByID(ctx, tx, player.ID)
		if err != nil {
			return asAppError("find player", err)
		}
		if existing != nil {
			return domain.ErrConflict("player with this id already exists")
		}
		if err := s.players.Create(ctx, tx, player); err != nil {
			return asAppError("create player", err)
		}
		return recordEvent(ctx, tx, s.outbox, domain.AggregatePlayer, player.ID, domain.EventCreated, player)
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// Update overwrites the writable fields of player id. The id in the body is
// ignored. A supplied password is re-hashed; otherwise the stored hash stays.
// The registration date never changes.
func (s *PlayerService) Update(ctx context.Context, id string, in domain.PlayerWrite) (*domain.Player, error) {
	in.ID = id
	if err := in.Validate(false); err != nil {
		return nil, err
	}

	var hash string
	if in.Password != nil {
		var err error
		if hash, err = s.hashPassword(*in.Password); err != nil {
			return nil, err
		}
	}

	var player *domain.Player
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		existing, err := s.players.FindByID(ctx, tx, id)
		if err != nil {
			return asAppError("find player", err)
		}
		if existing == nil {
			return domain.ErrNotFound("player", id)
		}

		existing.Name = in.Name
		existing.Age = in.Age
		existing.Email = in.Email
		existing.Role = in.Role
		if hash != "" {
			existing.PasswordHash = hash
		}

		if err := s.players.Update(ctx, tx, existing); err != nil {
			return asAppError("update player", err)
		}
		player = existing
		return recordEvent(ctx, tx, s.outbox, domain.AggregatePlayer, id, domain.EventUpdated, existing)
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// Delete removes player id together with their performances.
func (s *PlayerService) Delete(ctx context.Context, id string) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		existing, err := s.players.FindByID(ctx, tx, id)
		if err != nil {
			return asAppError("find player", err)
		}
		if existing == nil {
			return domain.ErrNotFound("player", id)
		}
		if err := s.players.Delete(ctx, tx, id); err != nil {
			return asAppError("delete player", err)
		}
		return recordEvent(ctx, tx, s.outbox, domain.AggregatePlayer, id, domain.EventDeleted, existing)
	})
}

func (s *PlayerService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		f := domain.FieldErrors{}
		f.Add("password", "Ensure this field has no more than 72 bytes.")
		return "", f.Err()
	}
	if err != nil {
		return "", domain.ErrInternal("hash password", err)
	}
	return string(hash), nil
}
