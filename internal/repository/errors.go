package repository

import (
	"errors"
	"fmt"

	"github.com/foosball/league/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes raised by constraint enforcement.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgOutOfRange          = "22003"
	pgBadEncoding         = "22021"
)

// constraintFields maps named foreign keys (see db/migrations) to the wire field they guard.
var constraintFields = map[string]string{
	"games_table_id_fkey":         "table",
	"performances_game_id_fkey":   "game",
	"performances_player_id_fkey": "player",
}

// constraintMessages maps named unique constraints to a client-facing conflict message.
var constraintMessages = map[string]string{
	"players_pkey":                    "a player with this id already exists",
	"foosball_tables_pkey":            "a foosball table with this table_id already exists",
	"games_pkey":                      "a game with this id already exists",
	"performances_game_player_unique": "a performance for this game and player already exists",
}

// translate turns constraint violations into domain errors and wraps anything else.
func translate(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			msg, ok := constraintMessages[pgErr.ConstraintName]
			if !ok {
				msg = "duplicate value violates " + pgErr.ConstraintName
			}
			return domain.ErrConflict(msg)
		case pgForeignKeyViolation:
			field, ok := constraintFields[pgErr.ConstraintName]
			if !ok {
				return domain.ErrValidation("referenced object does not exist")
			}
			f := domain.FieldErrors{}
			f.Add(field, "Invalid pk - object does not exist.")
			return f.Err()
		case pgOutOfRange, pgBadEncoding:
			return domain.ErrValidation(pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
