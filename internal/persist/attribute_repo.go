package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/checksgo/engine/internal/checks"
)

// PermutationRow is one computed L2 result ready for storage: the tuple
// that produced it, the headline traits for filtering, and the full
// attribute list as JSONB.
type PermutationRow struct {
	KeeperA, BurnerA checks.TokenID
	KeeperB, BurnerB checks.TokenID
	Checks           int
	ColorBand        uint8
	Gradient         uint8
	Speed            uint8
	Direction        uint8
	Score            float64
	Attributes       []checks.Attribute
}

// AttributeRepo persists computed permutation rows.
type AttributeRepo struct {
	db *DB
}

func NewAttributeRepo(db *DB) *AttributeRepo {
	return &AttributeRepo{db: db}
}

// InsertPermutations writes a batch of rows in a single transaction.
// Returns nil on success; on failure the whole batch rolls back and the
// caller decides whether to retry.
func (r *AttributeRepo) InsertPermutations(ctx context.Context, rows []PermutationRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("permutations begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, row := range rows {
		attrs, err := json.Marshal(attributeObject(row.Attributes))
		if err != nil {
			return fmt.Errorf("permutations encode attrs: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO check_permutations
				(keeper_a, burner_a, keeper_b, burner_b,
				 checks, color_band, gradient, speed, direction, score, attributes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			int64(row.KeeperA), int64(row.BurnerA), int64(row.KeeperB), int64(row.BurnerB),
			int16(row.Checks), int16(row.ColorBand), int16(row.Gradient),
			int16(row.Speed), int16(row.Direction), row.Score, attrs,
		); err != nil {
			return fmt.Errorf("permutations insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Prune removes all previously computed rows, used when a job recomputes
// the full permutation space from scratch.
func (r *AttributeRepo) Prune(ctx context.Context) error {
	_, err := r.db.Pool.Exec(ctx, `TRUNCATE check_permutations`)
	if err != nil {
		return fmt.Errorf("prune permutations: %w", err)
	}
	return nil
}

func attributeObject(attrs []checks.Attribute) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name] = a.Value
	}
	return m
}
