package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foosball/league/internal/domain"
	"github.com/jackc/pgx/v5"
)

type playerRepo struct{}

// NewPlayerRepository returns a pgx-backed PlayerRepository.
func NewPlayerRepository() PlayerRepository {
	return &playerRepo{}
}

const playerColumns = `id, name, age, email, role, registration_date, password_hash`

func (r *playerRepo) List(ctx context.Context, db DBTX) ([]domain.Player, error) {
	rows, err := db.Query(ctx, `SELECT `+playerColumns+` FROM players ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	players := make([]domain.Player, 0)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (r *playerRepo) FindByID(ctx context.Context, db DBTX, id string) (*domain.Player, error) {
	row := db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	p, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *playerRepo) Create(ctx context.Context, db DBTX, p *domain.Player) error {
	_, err := db.Exec(ctx, `
		INSERT INTO players (id, name, age, email, role, registration_date, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.Age, p.Email, string(p.Role), p.RegistrationDate.Time, p.PasswordHash,
	)
	if err != nil {
		return translate(err, "insert player")
	}
	return nil
}

func (r *playerRepo) Update(ctx context.Context, db DBTX, p *domain.Player) error {
	tag, err := db.Exec(ctx, `
		UPDATE players SET name = $2, age = $3, email = $4, role = $5, password_hash = $6
		WHERE id = $1`,
		p.ID, p.Name, p.Age, p.Email, string(p.Role), p.PasswordHash,
	)
	if err != nil {
		return translate(err, "update player")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("player", p.ID)
	}
	return nil
}

func (r *playerRepo) Delete(ctx context.Context, db DBTX, id string) error {
	tag, err := db.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete player")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("player", id)
	}
	return nil
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	var role string
	var registered time.Time
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Email, &role, &registered, &p.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan player: %w", err)
	}
	p.Role = domain.Role(role)
	p.RegistrationDate = domain.NewDate(registered)
	return &p, nil
}
