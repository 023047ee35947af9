package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/foosball/league/internal/domain"
	"github.com/foosball/league/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var errNoSQL = errors.New("fake db does not run SQL")

// fakeDB hands out fakeTx values and counts their outcomes.
type fakeDB struct {
	beginErr  error
	commits   int
	rollbacks int
}

func (d *fakeDB) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errNoSQL
}

func (d *fakeDB) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, errNoSQL
}

func (d *fakeDB) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

func (d *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	return &fakeTx{db: d}, nil
}

type fakeTx struct {
	pgx.Tx
	db   *fakeDB
	done bool
}

func (t *fakeTx) Commit(context.Context) error {
	t.done = true
	t.db.commits++
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.db.rollbacks++
	return nil
}

type fakePlayerRepo struct {
	rows map[string]domain.Player
}

func newFakePlayerRepo(players ...domain.Player) *fakePlayerRepo {
	r := &fakePlayerRepo{rows: map[string]domain.Player{}}
	for _, p := range players {
		r.rows[p.ID] = p
	}
	return r
}

func (r *fakePlayerRepo) List(context.Context, repository.DBTX) ([]domain.Player, error) {
	out := make([]domain.Player, 0, len(r.rows))
	for _, p := range r.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePlayerRepo) FindByID(_ context.Context, _ repository.DBTX, id string) (*domain.Player, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePlayerRepo) Create(_ context.Context, _ repository.DBTX, p *domain.Player) error {
	if _, ok := r.rows[p.ID]; ok {
		return domain.ErrConflict("a player with this id already exists")
	}
	r.rows[p.ID] = *p
	return nil
}

func (r *fakePlayerRepo) Update(_ context.Context, _ repository.DBTX, p *domain.Player) error {
	old, ok := r.rows[p.ID]
	if !ok {
		return domain.ErrNotFound("player", p.ID)
	}
	p2 := *p
	p2.RegistrationDate = old.RegistrationDate
	r.rows[p.ID] = p2
	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, _ repository.DBTX, id string) error {
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound("player", id)
	}
	delete(r.rows, id)
	return nil
}

type fakeTableRepo struct {
	rows map[string]domain.FoosballTable
}

func newFakeTableRepo(tables ...domain.FoosballTable) *fakeTableRepo {
	r := &fakeTableRepo{rows: map[string]domain.FoosballTable{}}
	for _, t := range tables {
		r.rows[t.TableID] = t
	}
	return r
}

func (r *fakeTableRepo) List(_ context.Context, _ repository.DBTX, _ domain.TableQuery) ([]domain.FoosballTable, error) {
	out := make([]domain.FoosballTable, 0, len(r.rows))
	for _, t := range r.rows {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TableID < out[j].TableID })
	return out, nil
}

func (r *fakeTableRepo) FindByID(_ context.Context, _ repository.DBTX, id string) (*domain.FoosballTable, error) {
	t, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeTableRepo) Create(_ context.Context, _ repository.DBTX, t *domain.FoosballTable) error {
	r.rows[t.TableID] = *t
	return nil
}

func (r *fakeTableRepo) Update(_ context.Context, _ repository.DBTX, t *domain.FoosballTable) error {
	if _, ok := r.rows[t.TableID]; !ok {
		return domain.ErrNotFound("foosball table", t.TableID)
	}
	r.rows[t.TableID] = *t
	return nil
}

func (r *fakeTableRepo) Delete(_ context.Context, _ repository.DBTX, id string) error {
	delete(r.rows, id)
	return nil
}

type fakeGameRepo struct {
	rows map[string]domain.Game
}

func newFakeGameRepo(games ...domain.Game) *fakeGameRepo {
	r := &fakeGameRepo{rows: map[string]domain.Game{}}
	for _, g := range games {
		r.rows[g.ID] = g
	}
	return r
}

func (r *fakeGameRepo) List(context.Context, repository.DBTX) ([]domain.Game, error) {
	out := make([]domain.Game, 0, len(r.rows))
	for _, g := range r.rows {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeGameRepo) FindByID(_ context.Context, _ repository.DBTX, id string) (*domain.Game, error) {
	g, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (r *fakeGameRepo) Create(_ context.Context, _ repository.DBTX, g *domain.Game) error {
	r.rows[g.ID] = *g
	return nil
}

func (r *fakeGameRepo) Update(_ context.Context, _ repository.DBTX, g *domain.Game) error {
	r.rows[g.ID] = *g
	return nil
}

func (r *fakeGameRepo) Delete(_ context.Context, _ repository.DBTX, id string) error {
	delete(r.rows, id)
	return nil
}

// fakePerformanceRepo enforces the (game, player) uniqueness the store would.
type fakePerformanceRepo struct {
	rows   map[int64]domain.Performance
	nextID int64
	now    time.Time
}

func newFakePerformanceRepo() *fakePerformanceRepo {
	return &fakePerformanceRepo{
		rows: map[int64]domain.Performance{},
		now:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *fakePerformanceRepo) List(_ context.Context, _ repository.DBTX, gameID string) ([]domain.Performance, error) {
	out := make([]domain.Performance, 0)
	for _, p := range r.rows {
		if gameID == "" || p.Game == gameID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePerformanceRepo) FindByID(_ context.Context, _ repository.DBTX, id int64) (*domain.Performance, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePerformanceRepo) duplicate(p *domain.Performance) bool {
	for id, other := range r.rows {
		if id != p.ID && other.Game == p.Game && other.Player == p.Player {
			return true
		}
	}
	return false
}

func (r *fakePerformanceRepo) Create(_ context.Context, _ repository.DBTX, p *domain.Performance) error {
	if r.duplicate(p) {
		return domain.ErrConflict("a performance for this game and player already exists")
	}
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = r.now
	r.rows[p.ID] = *p
	return nil
}

func (r *fakePerformanceRepo) Update(_ context.Context, _ repository.DBTX, p *domain.Performance) error {
	if _, ok := r.rows[p.ID]; !ok {
		return domain.ErrNotFound("performance", strconv.FormatInt(p.ID, 10))
	}
	if r.duplicate(p) {
		return domain.ErrConflict("a performance for this game and player already exists")
	}
	r.rows[p.ID] = *p
	return nil
}

func (r *fakePerformanceRepo) Delete(_ context.Context, _ repository.DBTX, id int64) error {
	delete(r.rows, id)
	return nil
}

type fakeOutbox struct {
	drafts []domain.OutboxDraft
	err    error
}

func (o *fakeOutbox) Insert(_ context.Context, _ repository.DBTX, d domain.OutboxDraft) error {
	if o.err != nil {
		return o.err
	}
	o.drafts = append(o.drafts, d)
	return nil
}

func (o *fakeOutbox) FetchUnpublished(context.Context, repository.DBTX, int) ([]domain.OutboxEvent, error) {
	return nil, nil
}

func (o *fakeOutbox) MarkPublished(context.Context, repository.DBTX, []int64) error {
	return nil
}

func (o *fakeOutbox) last() domain.OutboxDraft {
	return o.drafts[len(o.drafts)-1]
}
