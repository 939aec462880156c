// Package canvas draws simulation frames onto a styled character grid for
// terminal display.
//
// Drawing is split in two stages. [Draw] maps world coordinates through a
// [Viewport] and fills a [Buffer] with runes tagged by [Style] keys; then
// [Buffer.Render] turns the grid into a lipgloss-styled string. The buffer
// holds no colors itself, so the same frame can be rendered with different
// palettes or as plain text in tests.
//
// All runes are assumed to be single width.
package canvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style identifies how a cell is colored. The mapping to lipgloss styles is
// chosen at render time.
type Style int

const (
	StyleBlank Style = iota
	StyleEdge
	StyleUndirected
	StyleArrow
	StyleNode
	StyleLabel
)

// Cell is one character of the grid.
type Cell struct {
	Ch    rune
	Style Style
}

// Buffer is a W x H grid of styled cells, indexed [row][col].
type Buffer struct {
	W, H  int
	Cells [][]Cell
}

// NewBuffer creates a blank buffer. Negative sizes are treated as zero.
func NewBuffer(w, h int) *Buffer {
	w, h = max(w, 0), max(h, 0)
	b := &Buffer{W: w, H: h, Cells: make([][]Cell, h)}
	for y := range b.Cells {
		b.Cells[y] = make([]Cell, w)
	}
	b.Clear()
	return b
}

// InBounds reports whether (x, y) is inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Set writes one rune. Writes outside the buffer are ignored.
func (b *Buffer) Set(x, y int, ch rune, style Style) {
	if b.InBounds(x, y) {
		b.Cells[y][x] = Cell{Ch: ch, Style: style}
	}
}

// SetString writes s starting at (x, y), one cell per rune.
func (b *Buffer) SetString(x, y int, s string, style Style) {
	i := 0
	for _, ch := range s {
		b.Set(x+i, y, ch, style)
		i++
	}
}

// At returns the cell at (x, y), or a blank cell outside the buffer.
func (b *Buffer) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Cell{Ch: ' '}
	}
	return b.Cells[y][x]
}

// Clear resets every cell to a blank space.
func (b *Buffer) Clear() {
	for y := range b.Cells {
		for x := range b.Cells[y] {
			b.Cells[y][x] = Cell{Ch: ' ', Style: StyleBlank}
		}
	}
}

// String returns the grid as plain text, rows joined by newlines.
func (b *Buffer) String() string {
	lines := make([]string, b.H)
	for y, row := range b.Cells {
		var sb strings.Builder
		for _, c := range row {
			sb.WriteRune(c.Ch)
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// Render converts the grid into a styled string. Consecutive cells sharing a
// style are rendered as one run. Styles missing from the map are written
// unstyled.
func (b *Buffer) Render(styles map[Style]lipgloss.Style) string {
	if b.W == 0 || b.H == 0 {
		return ""
	}

	lines := make([]string, b.H)
	run := make([]rune, 0, b.W)
	for y, row := range b.Cells {
		var sb strings.Builder
		flush := func(style Style) {
			if len(run) == 0 {
				return
			}
			if s, ok := styles[style]; ok {
				sb.WriteString(s.Render(string(run)))
			} else {
				sb.WriteString(string(run))
			}
			run = run[:0]
		}

		current := row[0].Style
		for _, c := range row {
			if c.Style != current {
				flush(current)
				current = c.Style
			}
			run = append(run, c.Ch)
		}
		flush(current)
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// DefaultStyles returns the stock palette.
func DefaultStyles() map[Style]lipgloss.Style {
	return map[Style]lipgloss.Style{
		StyleEdge:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		StyleUndirected: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		StyleArrow:      lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		StyleNode:       lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Bold(true),
		StyleLabel:      lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	}
}
