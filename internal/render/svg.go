// Package render serializes resolved checks into self-contained SVG
// documents: fixed 680x680 canvas, one reusable glyph definition, a grid
// laid out per checks count, and a discrete palette-walk animation per
// glyph.
package render

import (
	"fmt"
	"strings"

	"github.com/checksgo/engine/internal/checks"
	"github.com/checksgo/engine/internal/data"
)

const (
	canvasSize = 680

	// glyphBox is the side of the square the glyph path is drawn in,
	// centered on the origin. A cell of 36 shows the glyph at native
	// size; other cells scale proportionally.
	glyphBox = 36

	// animSteps is the length of the cyclic palette walk.
	animSteps = 20
)

// checkPath is the glyph outline in glyphBox-local coordinates.
const checkPath = "M-7 0.5L-2.5 5L7-5.5L5-7.5L-2.5 1L-5-1.5Z"

// layout fixes the grid for one checks count. Rows follow from
// count/cols; origins center the grid on the canvas.
type layout struct {
	cols int
	cell float64
}

var layouts = map[int]layout{
	80: {cols: 8, cell: 36},
	40: {cols: 8, cell: 36},
	20: {cols: 4, cell: 72},
	10: {cols: 2, cell: 72},
	5:  {cols: 1, cell: 72},
	4:  {cols: 2, cell: 144},
	1:  {cols: 1, cell: 288},
}

// SVG renders the check into a vector document. Terminal checks render a
// single fixed-color glyph and unrevealed checks a neutral grid, both
// without animation; everything else resolves colors through vm.
func SVG(c *checks.Check, vm checks.VirtualMap, p *data.Palette) (string, error) {
	if c.Stored.DivisorIndex == 7 {
		return singleColor(1, p, p.Terminal), nil
	}
	if !c.IsRevealed {
		return singleColor(c.ChecksCount(), p, p.Unrevealed), nil
	}

	indexes, err := checks.ColorIndexes(int(c.Stored.DivisorIndex), c, vm)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	var b strings.Builder
	openDocument(&b, p)
	lay := layouts[len(indexes)]
	duration := animDuration(c.Speed)
	for i, colorIndex := range indexes {
		x, y, scale := glyphPlacement(lay, len(indexes), i)
		fmt.Fprintf(&b, `<use href="#check" fill="%s" transform="translate(%s %s) scale(%s)">`,
			p.Colors[colorIndex], f(x), f(y), f(scale))
		writeAnimation(&b, p, colorIndex, c.Direction, duration)
		b.WriteString("</use>")
	}
	closeDocument(&b)
	return b.String(), nil
}

// singleColor lays out count glyphs all in the given fill, no animation.
func singleColor(count int, p *data.Palette, fill string) string {
	var b strings.Builder
	openDocument(&b, p)
	lay := layouts[count]
	for i := 0; i < count; i++ {
		x, y, scale := glyphPlacement(lay, count, i)
		fmt.Fprintf(&b, `<use href="#check" fill="%s" transform="translate(%s %s) scale(%s)"/>`,
			fill, f(x), f(y), f(scale))
	}
	closeDocument(&b)
	return b.String()
}

func openDocument(b *strings.Builder, p *data.Palette) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`,
		canvasSize, canvasSize, canvasSize, canvasSize)
	fmt.Fprintf(b, `<defs><path id="check" d="%s"/></defs>`, checkPath)
	fmt.Fprintf(b, `<rect width="%d" height="%d" fill="%s"/>`, canvasSize, canvasSize, p.Background)
}

func closeDocument(b *strings.Builder) {
	b.WriteString("</svg>")
}

// glyphPlacement returns the canvas center of glyph i and its scale.
func glyphPlacement(lay layout, count, i int) (x, y, scale float64) {
	rows := count / lay.cols
	originX := (canvasSize - float64(lay.cols)*lay.cell) / 2
	originY := (canvasSize - float64(rows)*lay.cell) / 2
	col := i % lay.cols
	row := i / lay.cols
	x = originX + (float64(col)+0.5)*lay.cell
	y = originY + (float64(row)+0.5)*lay.cell
	scale = lay.cell / glyphBox
	return x, y, scale
}

// writeAnimation emits the discrete palette walk: animSteps colors
// starting at the glyph's own index, stepping forward or backward through
// the palette by direction, wrapping at the edges.
func writeAnimation(b *strings.Builder, p *data.Palette, start int, direction uint8, duration int) {
	step := -1 // IR shift walks down the palette
	if direction != 0 {
		step = 1 // UV shift walks up
	}
	values := make([]string, animSteps)
	idx := start
	for i := 0; i < animSteps; i++ {
		values[i] = p.Colors[idx]
		idx = (idx + step + data.PaletteSize) % data.PaletteSize
	}
	fmt.Fprintf(b, `<animate attributeName="fill" values="%s" dur="%ds" calcMode="discrete" repeatCount="indefinite"/>`,
		strings.Join(values, ";"), duration)
}

// animDuration is the cycle period in whole seconds.
func animDuration(speed uint8) int {
	if speed < 1 {
		speed = 1
	}
	return 40 / int(speed)
}

// f formats a coordinate compactly, trimming trailing zeros.
func f(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	s = strings.TrimSuffix(s, ".0")
	return s
}
