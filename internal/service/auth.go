package service

import (
	"context"

	"github.com/foosball/league/internal/auth"
	"github.com/foosball/league/internal/domain"
	"github.com/foosball/league/internal/guard"
	"github.com/foosball/league/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles player login.
type AuthService struct {
	db      repository.DBTX
	players repository.PlayerRepository
	jwtMgr  *auth.JWTManager
	lockout *guard.Lockout
}

// NewAuthService creates a new AuthService. A nil lockout disables
// failed-attempt tracking.
func NewAuthService(db repository.DBTX, players repository.PlayerRepository, jwtMgr *auth.JWTManager, lockout *guard.Lockout) *AuthService {
	return &AuthService{db: db, players: players, jwtMgr: jwtMgr, lockout: lockout}
}

// LoginInput holds the login request fields.
type LoginInput struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// AuthResult is returned on successful login.
type AuthResult struct {
	Token    string      `json:"token"`
	PlayerID string      `json:"player_id"`
	Role     domain.Role `json:"role"`
}

// Login checks a player's password and returns a signed token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if input.ID == "" || input.Password == "" {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}
	if s.lockout != nil {
		if err := s.lockout.Check(input.ID); err != nil {
			return nil, err
		}
	}

	player, err := s.players.FindByID(ctx, s.db, input.ID)
	if err != nil {
		return nil, domain.ErrInternal("find player", err)
	}
	if player == nil {
		return nil, s.failed(input.ID)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(input.Password)); err != nil {
		return nil, s.failed(input.ID)
	}
	if s.lockout != nil {
		s.lockout.Reset(player.ID)
	}

	token, err := s.jwtMgr.GenerateToken(player.ID, string(player.Role))
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{
		Token:    token,
		PlayerID: player.ID,
		Role:     player.Role,
	}, nil
}

func (s *AuthService) failed(id string) error {
	if s.lockout != nil {
		s.lockout.RecordFailure(id)
	}
	return domain.ErrUnauthorized("invalid credentials")
}
