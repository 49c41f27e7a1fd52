// Package data holds the presentation tables the renderer consumes: the
// 80-color palette and the fixed special colors. The tables ship with
// compiled-in defaults and can be re-skinned from a YAML file; the
// algorithmic constants (divisor counts, band sizes, gradient steps) are
// part of the engine contract and live with the engine instead.
package data

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// PaletteSize is the number of colors an index from the engine addresses.
const PaletteSize = 80

// Palette is the render color table.
type Palette struct {
	Colors     []string // exactly PaletteSize hex colors, index 0-79
	Unrevealed string   // fill for unrevealed checks
	Terminal   string   // fill for the single terminal black check
	Background string   // canvas background
}

type paletteFile struct {
	Colors     []string `yaml:"colors"`
	Unrevealed string   `yaml:"unrevealed"`
	Terminal   string   `yaml:"terminal"`
	Background string   `yaml:"background"`
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// LoadPalette loads a palette from a YAML file. Omitted special colors
// fall back to the defaults; the color list must be complete.
func LoadPalette(path string) (*Palette, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}
	var f paletteFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse palette: %w", err)
	}

	p := DefaultPalette()
	p.Colors = f.Colors
	if f.Unrevealed != "" {
		p.Unrevealed = f.Unrevealed
	}
	if f.Terminal != "" {
		p.Terminal = f.Terminal
	}
	if f.Background != "" {
		p.Background = f.Background
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the palette is complete and well-formed.
func (p *Palette) Validate() error {
	if len(p.Colors) != PaletteSize {
		return fmt.Errorf("palette has %d colors, want %d", len(p.Colors), PaletteSize)
	}
	for i, c := range p.Colors {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("color %d: %q is not a #RRGGBB value", i, c)
		}
	}
	for _, c := range []string{p.Unrevealed, p.Terminal, p.Background} {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("special color %q is not a #RRGGBB value", c)
		}
	}
	return nil
}

// DefaultPalette returns the compiled-in color set.
func DefaultPalette() *Palette {
	colors := make([]string, PaletteSize)
	copy(colors, defaultColors[:])
	return &Palette{
		Colors:     colors,
		Unrevealed: "#424242",
		Terminal:   "#111111",
		Background: "#0D0D0D",
	}
}

// defaultColors spans ten hue families of eight shades each, bright
// enough to read on the dark canvas.
var defaultColors = [PaletteSize]string{
	// reds
	"#DB395E", "#E84545", "#F2281C", "#D41515", "#C23532", "#EA3A2D", "#DE3237", "#F76B57",
	// oranges
	"#FF7520", "#ED7C30", "#F09837", "#FF8A47", "#F2A43A", "#FFAE3B", "#E8824F", "#FB8E4E",
	// yellows
	"#F9DA4D", "#F7CA57", "#FAE272", "#FCDE5B", "#EBD94F", "#F2E33E", "#FFD742", "#F6CB45",
	// greens
	"#5FCD8C", "#83F1AE", "#9AD9BB", "#77E39F", "#2E9D9A", "#49D399", "#7AE170", "#5ABE68",
	// teals
	"#60C7B2", "#4BC9C4", "#81D1EC", "#7FD9D8", "#4FA7B8", "#56D0D6", "#3EB8A1", "#6AD6C2",
	// blues
	"#2E4985", "#3B47AD", "#335F96", "#3E6FCC", "#2F6BDB", "#4581EB", "#5C89E4", "#3C7BC0",
	// indigos
	"#4A4AD3", "#5B45BF", "#5C6BE3", "#4F50C8", "#6E5FD8", "#574FE0", "#6F6AF0", "#4843AA",
	// purples
	"#9D34E8", "#A951D0", "#B163D1", "#8A3FBF", "#C462E8", "#AB4BDE", "#8F45CC", "#B65AEB",
	// pinks
	"#E73E85", "#EA5B33", "#F2399D", "#DB2F96", "#EE5D9E", "#FF7DA8", "#E357B5", "#F469B8",
	// neutrals
	"#EFF0E8", "#E2E8DA", "#D9DBD1", "#C8CCC2", "#B1B5AC", "#A3A79E", "#8F938B", "#7C807A",
}
