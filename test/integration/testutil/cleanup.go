//go:build integration

package testutil

import (
	"context"
	"time"
)

// CleanAll empties every league table and the outbox.
func (env *TestEnv) CleanAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := env.Pool.Exec(ctx,
		"TRUNCATE TABLE performances, games, foosball_tables, players, event_outbox RESTART IDENTITY CASCADE")
	if err != nil {
		env.t.Fatalf("CleanAll: %v", err)
	}
}
