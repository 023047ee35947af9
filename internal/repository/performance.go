package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/foosball/league/internal/domain"
	"github.com/jackc/pgx/v5"
)

type performanceRepo struct{}

// NewPerformanceRepository returns a pgx-backed PerformanceRepository.
func NewPerformanceRepository() PerformanceRepository {
	return &performanceRepo{}
}

const performanceColumns = `id, game_id, player_id, team_color, role, substitute,
	goals, own_goals, assist, save, possession_time, created_at`

func (r *performanceRepo) List(ctx context.Context, db DBTX, gameID string) ([]domain.Performance, error) {
	rows, err := db.Query(ctx, `
		SELECT `+performanceColumns+`
		FROM performances
		WHERE ($1 = '' OR game_id = $1)
		ORDER BY id`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list performances: %w", err)
	}
	defer rows.Close()

	perfs := make([]domain.Performance, 0)
	for rows.Next() {
		p, err := scanPerformance(rows)
		if err != nil {
			return nil, err
		}
		perfs = append(perfs, *p)
	}
	return perfs, rows.Err()
}

func (r *performanceRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.Performance, error) {
	row := db.QueryRow(ctx, `SELECT `+performanceColumns+` FROM performances WHERE id = $1`, id)
	p, err := scanPerformance(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *performanceRepo) Create(ctx context.Context, db DBTX, p *domain.Performance) error {
	err := db.QueryRow(ctx, `
		INSERT INTO performances
		  (game_id, player_id, team_color, role, substitute, goals, own_goals, assist, save, possession_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`,
		p.Game, p.Player, string(p.TeamColor), string(p.Role), substituteArg(p.Substitute),
		p.Goals, p.OwnGoals, p.Assist, p.Save, p.PossessionTime,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return translate(err, "insert performance")
	}
	return nil
}

func (r *performanceRepo) Update(ctx context.Context, db DBTX, p *domain.Performance) error {
	tag, err := db.Exec(ctx, `
		UPDATE performances SET
		  game_id = $2, player_id = $3, team_color = $4, role = $5, substitute = $6,
		  goals = $7, own_goals = $8, assist = $9, save = $10, possession_time = $11
		WHERE id = $1`,
		p.ID, p.Game, p.Player, string(p.TeamColor), string(p.Role), substituteArg(p.Substitute),
		p.Goals, p.OwnGoals, p.Assist, p.Save, p.PossessionTime,
	)
	if err != nil {
		return translate(err, "update performance")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("performance", strconv.FormatInt(p.ID, 10))
	}
	return nil
}

func (r *performanceRepo) Delete(ctx context.Context, db DBTX, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM performances WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete performance")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("performance", strconv.FormatInt(id, 10))
	}
	return nil
}

func substituteArg(s *domain.Substitute) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func scanPerformance(row pgx.Row) (*domain.Performance, error) {
	var p domain.Performance
	var team, role string
	var sub *string
	err := row.Scan(
		&p.ID, &p.Game, &p.Player, &team, &role, &sub,
		&p.Goals, &p.OwnGoals, &p.Assist, &p.Save, &p.PossessionTime, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan performance: %w", err)
	}
	p.TeamColor = domain.Team(team)
	p.Role = domain.PlayerPosition(role)
	if sub != nil {
		s := domain.Substitute(*sub)
		p.Substitute = &s
	}
	return &p, nil
}
