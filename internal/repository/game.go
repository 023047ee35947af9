package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/foosball/league/internal/domain"
	"github.com/jackc/pgx/v5"
)

type gameRepo struct{}

// NewGameRepository returns a pgx-backed GameRepository.
func NewGameRepository() GameRepository {
	return &gameRepo{}
}

const gameColumns = `id, table_id, game_date, duration_seconds, score_red, score_blue, winner_team,
	location, season, ball_type, music, referent, attendance, recorded_by, rating`

func (r *gameRepo) List(ctx context.Context, db DBTX) ([]domain.Game, error) {
	rows, err := db.Query(ctx, `SELECT `+gameColumns+` FROM games ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	games := make([]domain.Game, 0)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

func (r *gameRepo) FindByID(ctx context.Context, db DBTX, id string) (*domain.Game, error) {
	row := db.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	g, err := scanGame(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return g, err
}

func (r *gameRepo) Create(ctx context.Context, db DBTX, g *domain.Game) error {
	_, err := db.Exec(ctx, `
		INSERT INTO games (`+gameColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		gameArgs(g)...)
	if err != nil {
		return translate(err, "insert game")
	}
	return nil
}

func (r *gameRepo) Update(ctx context.Context, db DBTX, g *domain.Game) error {
	tag, err := db.Exec(ctx, `
		UPDATE games SET
		  table_id = $2, game_date = $3, duration_seconds = $4, score_red = $5, score_blue = $6,
		  winner_team = $7, location = $8, season = $9, ball_type = $10, music = $11,
		  referent = $12, attendance = $13, recorded_by = $14, rating = $15
		WHERE id = $1`,
		gameArgs(g)...)
	if err != nil {
		return translate(err, "update game")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("game", g.ID)
	}
	return nil
}

func (r *gameRepo) Delete(ctx context.Context, db DBTX, id string) error {
	tag, err := db.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete game")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("game", id)
	}
	return nil
}

// gameArgs returns g's columns in gameColumns order.
func gameArgs(g *domain.Game) []interface{} {
	return []interface{}{
		g.ID, g.Table, g.GameDate, g.DurationSeconds, g.ScoreRed, g.ScoreBlue, string(g.WinnerTeam),
		g.Location, g.Season, g.BallType, g.Music, g.Referent, g.Attendance, g.RecordedBy, g.Rating,
	}
}

func scanGame(row pgx.Row) (*domain.Game, error) {
	var g domain.Game
	var winner string
	err := row.Scan(
		&g.ID, &g.Table, &g.GameDate, &g.DurationSeconds, &g.ScoreRed, &g.ScoreBlue, &winner,
		&g.Location, &g.Season, &g.BallType, &g.Music, &g.Referent, &g.Attendance, &g.RecordedBy, &g.Rating,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan game: %w", err)
	}
	g.WinnerTeam = domain.Team(winner)
	return &g, nil
}
