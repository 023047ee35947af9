package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/foosball/league/internal/domain"
	"github.com/jackc/pgx/v5"
)

type tableRepo struct{}

// NewTableRepository returns a pgx-backed TableRepository.
func NewTableRepository() TableRepository {
	return &tableRepo{}
}

// orderableTableColumns whitelists the columns a client may order by.
var orderableTableColumns = map[string]bool{
	"table_id": true,
	"name":     true,
	"status":   true,
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// tableOrderBy builds an ORDER BY clause from a comma-separated ordering
// parameter. Unknown fields are skipped; table_id is always the final tiebreaker.
func tableOrderBy(ordering string) string {
	var terms []string
	seen := map[string]bool{}
	for _, raw := range strings.Split(ordering, ",") {
		field := strings.TrimSpace(raw)
		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			dir = "DESC"
			field = field[1:]
		}
		if !orderableTableColumns[field] || seen[field] {
			continue
		}
		seen[field] = true
		terms = append(terms, field+" "+dir)
	}
	if !seen["table_id"] {
		terms = append(terms, "table_id ASC")
	}
	return "ORDER BY " + strings.Join(terms, ", ")
}

func (r *tableRepo) List(ctx context.Context, db DBTX, q domain.TableQuery) ([]domain.FoosballTable, error) {
	search := likeEscaper.Replace(strings.TrimSpace(q.Search))
	rows, err := db.Query(ctx, `
		SELECT table_id, name, status, condition_state
		FROM foosball_tables
		WHERE ($1 = '' OR table_id ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%')
		`+tableOrderBy(q.Ordering), search)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	tables := make([]domain.FoosballTable, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, *t)
	}
	return tables, rows.Err()
}

func (r *tableRepo) FindByID(ctx context.Context, db DBTX, tableID string) (*domain.FoosballTable, error) {
	row := db.QueryRow(ctx, `
		SELECT table_id, name, status, condition_state
		FROM foosball_tables WHERE table_id = $1`, tableID)
	t, err := scanTable(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return t, err
}

func (r *tableRepo) Create(ctx context.Context, db DBTX, t *domain.FoosballTable) error {
	_, err := db.Exec(ctx, `
		INSERT INTO foosball_tables (table_id, name, status, condition_state)
		VALUES ($1, $2, $3, $4)`,
		t.TableID, t.Name, string(t.Status), t.ConditionState)
	if err != nil {
		return translate(err, "insert table")
	}
	return nil
}

func (r *tableRepo) Update(ctx context.Context, db DBTX, t *domain.FoosballTable) error {
	tag, err := db.Exec(ctx, `
		UPDATE foosball_tables SET name = $2, status = $3, condition_state = $4
		WHERE table_id = $1`,
		t.TableID, t.Name, string(t.Status), t.ConditionState)
	if err != nil {
		return translate(err, "update table")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("foosball table", t.TableID)
	}
	return nil
}

func (r *tableRepo) Delete(ctx context.Context, db DBTX, tableID string) error {
	tag, err := db.Exec(ctx, `DELETE FROM foosball_tables WHERE table_id = $1`, tableID)
	if err != nil {
		return translate(err, "delete table")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("foosball table", tableID)
	}
	return nil
}

func scanTable(row pgx.Row) (*domain.FoosballTable, error) {
	var t domain.FoosballTable
	var status string
	if err := row.Scan(&t.TableID, &t.Name, &status, &t.ConditionState); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan table: %w", err)
	}
	t.Status = domain.TableStatus(status)
	return &t, nil
}
