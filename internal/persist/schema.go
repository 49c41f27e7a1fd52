package persist

import (
	"context"
	"fmt"
)

// EnsureSchema creates the two tables this layer owns if they are
// missing. The schema is additive only; there is no migration tooling.
func EnsureSchema(ctx context.Context, db *DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS check_records (
			token_id      BIGINT PRIMARY KEY,
			seed          TEXT NOT NULL,
			composites    BIGINT[] NOT NULL DEFAULT '{}',
			color_bands   SMALLINT[] NOT NULL DEFAULT '{}',
			gradients     SMALLINT[] NOT NULL DEFAULT '{}',
			divisor_index SMALLINT NOT NULL DEFAULT 0,
			epoch         BIGINT NOT NULL DEFAULT 0,
			day           INT NOT NULL DEFAULT 0,
			revealed      BOOLEAN NOT NULL DEFAULT FALSE,
			direction     SMALLINT NOT NULL DEFAULT 0,
			speed         SMALLINT NOT NULL DEFAULT 1,
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS check_permutations (
			id          BIGSERIAL PRIMARY KEY,
			keeper_a    BIGINT NOT NULL,
			burner_a    BIGINT NOT NULL,
			keeper_b    BIGINT NOT NULL,
			burner_b    BIGINT NOT NULL,
			checks      SMALLINT NOT NULL,
			color_band  SMALLINT NOT NULL,
			gradient    SMALLINT NOT NULL,
			speed       SMALLINT NOT NULL,
			direction   SMALLINT NOT NULL,
			score       DOUBLE PRECISION NOT NULL DEFAULT 0,
			attributes  JSONB NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS check_permutations_tuple_idx
			ON check_permutations (keeper_a, burner_a, keeper_b, burner_b)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
