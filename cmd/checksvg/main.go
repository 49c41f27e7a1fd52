// checksvg renders a single check, or the L2 composite of four seeds,
// to an SVG file. Useful for eyeballing the engine output without a
// database or token contract anywhere in sight.
package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/checksgo/engine/internal/checks"
	"github.com/checksgo/engine/internal/data"
	"github.com/checksgo/engine/internal/render"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		seedArgs  [4]string
		out       = flag.String("out", "check.svg", "output SVG path")
		palette   = flag.String("palette", "", "palette YAML (default: built-in)")
		direction = flag.Uint("direction", 0, "animation shift, 0 = IR, 1 = UV")
		speed     = flag.Uint("speed", 2, "animation speed (1, 2 or 4)")
		attrs     = flag.Bool("attrs", false, "print projected attributes")
	)
	flag.StringVar(&seedArgs[0], "seed", "", "seed for a single root check")
	flag.StringVar(&seedArgs[1], "seed2", "", "second seed (enables L2 mode)")
	flag.StringVar(&seedArgs[2], "seed3", "", "third seed (L2 mode)")
	flag.StringVar(&seedArgs[3], "seed4", "", "fourth seed (L2 mode)")
	flag.Parse()

	if seedArgs[0] == "" {
		return fmt.Errorf("-seed is required")
	}

	pal := data.DefaultPalette()
	if *palette != "" {
		var err error
		pal, err = data.LoadPalette(*palette)
		if err != nil {
			return fmt.Errorf("palette: %w", err)
		}
	}

	seeds, err := parseSeeds(seedArgs)
	if err != nil {
		return err
	}

	var (
		chk *checks.Check
		vm  checks.VirtualMap
	)
	switch len(seeds) {
	case 1:
		chk = checks.NewRoot(seeds[0], uint8(*direction), uint8(*speed))
		vm = checks.VirtualMap{}
	case 4:
		chk, vm, err = composeL2(seeds, uint8(*direction), uint8(*speed))
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("need exactly one seed, or all four for L2 mode")
	}

	svg, err := render.SVG(chk, vm, pal)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := os.WriteFile(*out, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	fmt.Printf("wrote %s (%d checks)\n", *out, chk.ChecksCount())

	if *attrs {
		for _, a := range checks.ProjectAttributes(chk) {
			fmt.Printf("  %-12s %s\n", a.Name, a.Value)
		}
	}
	return nil
}

func parseSeeds(args [4]string) ([]*big.Int, error) {
	var seeds []*big.Int
	for i, s := range args {
		if s == "" {
			continue
		}
		n, ok := new(big.Int).SetString(s, 0)
		if !ok || n.Sign() < 0 {
			return nil, fmt.Errorf("seed %d: %q is not a valid unsigned integer", i+1, s)
		}
		seeds = append(seeds, n)
	}
	return seeds, nil
}

// composeL2 builds two single-composites from four roots and merges
// them, returning the L2 check plus the virtual map its renderer needs.
func composeL2(seeds []*big.Int, direction, speed uint8) (*checks.Check, checks.VirtualMap, error) {
	roots := make([]*checks.Check, 4)
	for i, s := range seeds {
		roots[i] = checks.NewRoot(s, direction, speed)
	}

	l1a, err := checks.Composite(roots[0], roots[1], 1)
	if err != nil {
		return nil, nil, fmt.Errorf("first composite: %w", err)
	}
	l1b, err := checks.Composite(roots[2], roots[3], 3)
	if err != nil {
		return nil, nil, fmt.Errorf("second composite: %w", err)
	}
	l2, err := checks.ComposeL2(l1a, l1b)
	if err != nil {
		return nil, nil, fmt.Errorf("l2: %w", err)
	}
	return l2, checks.BuildL2RenderMap(l1a, l1b, roots[1], roots[3]), nil
}
