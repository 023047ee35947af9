package service

import (
	"context"
	"errors"

	"github.com/foosball/league/internal/domain"
	"github.com/foosball/league/internal/repository"
	"github.com/jackc/pgx/v5"
)

// TxBeginner is a DBTX that can open transactions. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	repository.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// msgMissingObject matches the field message the repository emits for FK violations.
const msgMissingObject = "Invalid pk %q - object does not exist."

// withTx runs fn inside a transaction, committing only when fn succeeds.
func withTx(ctx context.Context, db TxBeginner, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}
	return nil
}

// asAppError passes domain errors through and wraps anything else as internal.
func asAppError(op string, err error) error {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return domain.ErrInternal(op, err)
}

// recordEvent writes a league event for entity to the outbox within tx.
func recordEvent(ctx context.Context, tx repository.DBTX, outbox repository.OutboxRepository,
	agg domain.AggregateType, id string, evt domain.EventType, entity any) error {
	draft, err := domain.NewLeagueEvent(agg, id, evt, entity)
	if err != nil {
		return domain.ErrInternal("build event", err)
	}
	if err := outbox.Insert(ctx, tx, draft); err != nil {
		return domain.ErrInternal("write outbox", err)
	}
	return nil
}
