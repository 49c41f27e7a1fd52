// Package jobs drives the batch permutation pipeline: fetch root
// records, enumerate keeper/burner 4-tuples, compose each through two L1
// steps and one L2 step, project attributes, apply the optional Lua
// hooks and persist the surviving rows. Tuples are independent, so
// evaluation fans out across workers without coordination.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/checksgo/engine/internal/checks"
	"github.com/checksgo/engine/internal/config"
	"github.com/checksgo/engine/internal/persist"
	"github.com/checksgo/engine/internal/scripting"
)

// Source supplies raw check records. *persist.CheckRepo satisfies it.
type Source interface {
	Fetch(ctx context.Context, ids []checks.TokenID) ([]checks.Record, error)
	Roots(ctx context.Context) ([]checks.Record, error)
}

// Sink receives computed permutation rows. *persist.AttributeRepo
// satisfies it.
type Sink interface {
	InsertPermutations(ctx context.Context, rows []persist.PermutationRow) error
}

// Stats summarizes one job run.
type Stats struct {
	Roots    int   // decoded root entities
	Skipped  int   // records rejected at decode
	Examined int64 // tuples evaluated
	Kept     int64 // rows that passed the filter and were stored
}

type Runner struct {
	cfg  config.JobsConfig
	src  Source
	sink Sink
	log  *zap.Logger
}

func NewRunner(cfg config.JobsConfig, src Source, sink Sink, log *zap.Logger) *Runner {
	return &Runner{cfg: cfg, src: src, sink: sink, log: log}
}

// root pairs a decoded check with the token id its pointer records use.
type root struct {
	id  checks.TokenID
	chk *checks.Check
}

// Run evaluates up to MaxCombinations ordered 4-tuples over the
// configured roots.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	roots, skipped, err := r.loadRoots(ctx)
	if err != nil {
		return stats, err
	}
	stats.Roots = len(roots)
	stats.Skipped = skipped
	if len(roots) < 4 {
		return stats, fmt.Errorf("need at least 4 decodable roots, have %d", len(roots))
	}

	workers := r.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	var examined, kept atomic.Int64
	tuples := make(chan [4]int, workers)
	rows := make(chan persist.PermutationRow, r.cfg.BatchSize)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(tuples)
		return r.enumerate(gctx, len(roots), tuples)
	})

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return r.worker(gctx, roots, tuples, rows, &examined, &kept)
		})
	}
	go func() {
		wg.Wait()
		close(rows)
	}()

	g.Go(func() error {
		return r.collect(gctx, rows)
	})

	if err := g.Wait(); err != nil {
		return stats, err
	}
	stats.Examined = examined.Load()
	stats.Kept = kept.Load()
	return stats, nil
}

func (r *Runner) loadRoots(ctx context.Context) ([]root, int, error) {
	var (
		records []checks.Record
		err     error
	)
	if len(r.cfg.RootIDs) > 0 {
		ids := make([]checks.TokenID, len(r.cfg.RootIDs))
		for i, id := range r.cfg.RootIDs {
			ids[i] = checks.TokenID(id)
		}
		records, err = r.src.Fetch(ctx, ids)
	} else {
		records, err = r.src.Roots(ctx)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("load roots: %w", err)
	}

	roots := make([]root, 0, len(records))
	skipped := 0
	for i := range records {
		chk, err := records[i].Decode()
		if err != nil {
			// One bad record never aborts the batch.
			r.log.Warn("skipping record", zap.Uint32("token", uint32(records[i].TokenID)), zap.Error(err))
			skipped++
			continue
		}
		roots = append(roots, root{id: records[i].TokenID, chk: chk})
	}
	return roots, skipped, nil
}

// enumerate streams ordered distinct 4-tuples of root indices, stopping
// at the configured cap.
func (r *Runner) enumerate(ctx context.Context, n int, out chan<- [4]int) error {
	sent := 0
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if b == a {
				continue
			}
			for c := 0; c < n; c++ {
				if c == a || c == b {
					continue
				}
				for d := 0; d < n; d++ {
					if d == a || d == b || d == c {
						continue
					}
					if r.cfg.MaxCombinations > 0 && sent >= r.cfg.MaxCombinations {
						return nil
					}
					select {
					case out <- [4]int{a, b, c, d}:
						sent++
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
		}
	}
	return nil
}

func (r *Runner) worker(ctx context.Context, roots []root, tuples <-chan [4]int,
	rows chan<- persist.PermutationRow, examined, kept *atomic.Int64) error {

	// One Lua VM per worker; the engine is not goroutine-safe.
	hooks, err := scripting.NewEngine(r.cfg.ScriptPath, r.log)
	if err != nil {
		return fmt.Errorf("worker hooks: %w", err)
	}
	defer hooks.Close()

	for tuple := range tuples {
		row, keep, err := r.evaluate(roots, tuple, hooks)
		examined.Add(1)
		if err != nil {
			return err
		}
		if !keep {
			continue
		}
		select {
		case rows <- row:
			kept.Add(1)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// evaluate runs one tuple through the full pipeline.
func (r *Runner) evaluate(roots []root, tuple [4]int, hooks *scripting.Engine) (persist.PermutationRow, bool, error) {
	ka, ba, kb, bb := roots[tuple[0]], roots[tuple[1]], roots[tuple[2]], roots[tuple[3]]

	l1a, err := checks.Composite(ka.chk, ba.chk, ba.id)
	if err != nil {
		return persist.PermutationRow{}, false, fmt.Errorf("tuple %v: %w", tuple, err)
	}
	l1b, err := checks.Composite(kb.chk, bb.chk, bb.id)
	if err != nil {
		return persist.PermutationRow{}, false, fmt.Errorf("tuple %v: %w", tuple, err)
	}
	final, err := checks.ComposeL2(l1a, l1b)
	if err != nil {
		return persist.PermutationRow{}, false, fmt.Errorf("tuple %v: %w", tuple, err)
	}

	// Resolve colors to surface any broken pointer chain now rather
	// than at render time.
	vm := checks.BuildL2RenderMap(l1a, l1b, ba.chk, bb.chk)
	if _, err := checks.ColorIndexes(int(final.Stored.DivisorIndex), final, vm); err != nil {
		return persist.PermutationRow{}, false, fmt.Errorf("tuple %v: %w", tuple, err)
	}

	attrs := checks.ProjectAttributes(final)
	perm := scripting.Permutation{
		KeeperA: uint32(ka.id), BurnerA: uint32(ba.id),
		KeeperB: uint32(kb.id), BurnerB: uint32(bb.id),
		Checks:     final.ChecksCount(),
		ColorBand:  int(final.ColorBand),
		Gradient:   int(final.Gradient),
		Speed:      int(final.Speed),
		Direction:  int(final.Direction),
		Attributes: attributeMap(attrs),
	}
	if !hooks.Filter(perm) {
		return persist.PermutationRow{}, false, nil
	}

	row := persist.PermutationRow{
		KeeperA: ka.id, BurnerA: ba.id,
		KeeperB: kb.id, BurnerB: bb.id,
		Checks:     final.ChecksCount(),
		ColorBand:  final.ColorBand,
		Gradient:   final.Gradient,
		Speed:      final.Speed,
		Direction:  final.Direction,
		Score:      hooks.Score(perm),
		Attributes: attrs,
	}
	return row, true, nil
}

// collect batches rows into the sink.
func (r *Runner) collect(ctx context.Context, rows <-chan persist.PermutationRow) error {
	size := r.cfg.BatchSize
	if size < 1 {
		size = 1
	}
	batch := make([]persist.PermutationRow, 0, size)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := r.sink.InsertPermutations(ctx, batch); err != nil {
			return fmt.Errorf("flush %d rows: %w", len(batch), err)
		}
		r.log.Debug("flushed permutations", zap.Int("rows", len(batch)))
		batch = batch[:0]
		return nil
	}

	for row := range rows {
		batch = append(batch, row)
		if len(batch) >= size {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func attributeMap(attrs []checks.Attribute) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name] = a.Value
	}
	return m
}
