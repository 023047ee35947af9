package handler

import (
	"context"

	"github.com/foosball/league/internal/domain"
	"github.com/foosball/league/internal/service"
)

// PlayerService is the player registry used by PlayerHandler.
type PlayerService interface {
	List(ctx context.Context) ([]domain.Player, error)
	Get(ctx context.Context, id string) (*domain.Player, error)
	Create(ctx context.Context, in domain.PlayerWrite) (*domain.Player, error)
	Update(ctx context.Context, id string, in domain.PlayerWrite) (*domain.Player, error)
	Delete(ctx context.Context, id string) error
}

// TableService is the table registry used by TableHandler.
type TableService interface {
	List(ctx context.Context, q domain.TableQuery) ([]domain.FoosballTable, error)
	Get(ctx context.Context, tableID string) (*domain.FoosballTable, error)
	Create(ctx context.Context, t domain.FoosballTable) (*domain.FoosballTable, error)
	Update(ctx context.Context, tableID string, t domain.FoosballTable) (*domain.FoosballTable, error)
	Delete(ctx context.Context, tableID string) error
}

// GameService is the game record used by GameHandler.
type GameService interface {
	List(ctx context.Context) ([]domain.Game, error)
	Get(ctx context.Context, id string) (*domain.Game, error)
	Create(ctx context.Context, g domain.Game) (*domain.Game, error)
	Update(ctx context.Context, id string, g domain.Game) (*domain.Game, error)
	Delete(ctx context.Context, id string) error
}

// PerformanceService is the performance record used by PerformanceHandler.
type PerformanceService interface {
	List(ctx context.Context, gameID string) ([]domain.Performance, error)
	Get(ctx context.Context, id int64) (*domain.Performance, error)
	Create(ctx context.Context, p domain.Performance) (*domain.Performance, error)
	Update(ctx context.Context, id int64, p domain.Performance) (*domain.Performance, error)
	Delete(ctx context.Context, id int64) error
}

// Authenticator exchanges player credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, input service.LoginInput) (*service.AuthResult, error)
}

// Generator produces a chatbot reply for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
