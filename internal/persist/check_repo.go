package persist

import (
	"context"
	"fmt"

	"github.com/checksgo/engine/internal/checks"
)

// CheckRepo reads and refreshes raw check records. Rows hold the fields
// exactly as fetched from chain; decoding into engine entities happens at
// the caller so one bad row never aborts a batch.
type CheckRepo struct {
	db *DB
}

func NewCheckRepo(db *DB) *CheckRepo {
	return &CheckRepo{db: db}
}

const checkColumns = `token_id, seed, composites, color_bands, gradients,
	divisor_index, epoch, day, revealed, direction, speed`

// Fetch returns the records for the given token ids, in store order.
// Missing ids are simply absent from the result.
func (r *CheckRepo) Fetch(ctx context.Context, ids []checks.TokenID) ([]checks.Record, error) {
	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+checkColumns+` FROM check_records WHERE token_id = ANY($1) ORDER BY token_id`,
		raw,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch checks: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Roots returns every stored depth-0 record.
func (r *CheckRepo) Roots(ctx context.Context) ([]checks.Record, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+checkColumns+` FROM check_records WHERE divisor_index = 0 ORDER BY token_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch roots: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Upsert stores one freshly fetched record, replacing any previous row.
// This is the entry point the change-notification listener calls once per
// changed token.
func (r *CheckRepo) Upsert(ctx context.Context, rec checks.Record) error {
	composites := make([]int64, len(rec.Composites))
	for i, c := range rec.Composites {
		composites[i] = int64(c)
	}
	bands := make([]int16, len(rec.ColorBands))
	for i, b := range rec.ColorBands {
		bands[i] = int16(b)
	}
	gradients := make([]int16, len(rec.Gradients))
	for i, g := range rec.Gradients {
		gradients[i] = int16(g)
	}

	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO check_records
			(token_id, seed, composites, color_bands, gradients,
			 divisor_index, epoch, day, revealed, direction, speed, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		 ON CONFLICT (token_id) DO UPDATE SET
			seed = EXCLUDED.seed,
			composites = EXCLUDED.composites,
			color_bands = EXCLUDED.color_bands,
			gradients = EXCLUDED.gradients,
			divisor_index = EXCLUDED.divisor_index,
			epoch = EXCLUDED.epoch,
			day = EXCLUDED.day,
			revealed = EXCLUDED.revealed,
			direction = EXCLUDED.direction,
			speed = EXCLUDED.speed,
			updated_at = now()`,
		int64(rec.TokenID), rec.Seed, composites, bands, gradients,
		int16(rec.DivisorIndex), int64(rec.Epoch), int32(rec.Day),
		rec.Revealed, int16(rec.Direction), int16(rec.Speed),
	)
	if err != nil {
		return fmt.Errorf("upsert check %d: %w", rec.TokenID, err)
	}
	return nil
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRecords(rows pgxRows) ([]checks.Record, error) {
	var out []checks.Record
	for rows.Next() {
		var (
			tokenID    int64
			seed       string
			composites []int64
			bands      []int16
			gradients  []int16
			divisor    int16
			epoch      int64
			day        int32
			revealed   bool
			direction  int16
			speed      int16
		)
		if err := rows.Scan(&tokenID, &seed, &composites, &bands, &gradients,
			&divisor, &epoch, &day, &revealed, &direction, &speed); err != nil {
			return nil, fmt.Errorf("scan check row: %w", err)
		}

		rec := checks.Record{
			TokenID:      checks.TokenID(tokenID),
			Seed:         seed,
			DivisorIndex: uint8(divisor),
			Epoch:        uint32(epoch),
			Day:          uint16(day),
			Revealed:     revealed,
			Direction:    uint8(direction),
			Speed:        uint8(speed),
		}
		for _, c := range composites {
			rec.Composites = append(rec.Composites, checks.TokenID(c))
		}
		for _, b := range bands {
			rec.ColorBands = append(rec.ColorBands, uint8(b))
		}
		for _, g := range gradients {
			rec.Gradients = append(rec.Gradients, uint8(g))
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate check rows: %w", err)
	}
	return out, nil
}
