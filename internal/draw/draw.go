// Package draw writes glyphs to an ANSI terminal.
package draw

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Box-drawing characters for the playfield border.
const (
	borderH  = "─"
	borderV  = "│"
	cornerTL = "┌"
	cornerTR = "┐"
	cornerBL = "└"
	cornerBR = "┘"
)

// Layout places a width×height playfield (plus its one-cell border) in the
// middle of a terminal.
type Layout struct {
	Cols, Rows int // Terminal size
	Width      int // Playfield interior
	Height     int
}

// Fits reports whether the bordered playfield fits the terminal.
func (l Layout) Fits() bool {
	return l.Cols >= l.Width+2 && l.Rows >= l.Height+2
}

// Origin returns the zero-based terminal offset of the border's top-left
// corner, suitable for ChunkWriter.SetOffset.
func (l Layout) Origin() (col, row int) {
	return max((l.Cols-l.Width-2)/2, 0), max((l.Rows-l.Height-2)/2, 0)
}

// Box draws a border around a width×height interior whose top-left interior
// cell is (2, 2) relative to the writer offset.
func Box(cw *ChunkWriter, width, height int) {
	line := strings.Repeat(borderH, width)
	cw.WriteAt(1, 1, cornerTL+line+cornerTR)
	for r := 2; r <= height+1; r++ {
		cw.WriteAt(1, r, borderV)
		cw.WriteAt(width+2, r, borderV)
	}
	cw.WriteAt(1, height+2, cornerBL+line+cornerBR)
}

// Text is a string anchored at a writer position.
type Text struct {
	Col   int
	Row   int
	Value string
	Style string // Color prefix, may be empty
}

// Centered returns a Text centred on row within a span of width cells that
// starts at col. Width is measured in terminal cells, not bytes.
func Centered(col, row, width int, value string) Text {
	w := runewidth.StringWidth(value)
	return Text{Col: col + max((width-w)/2, 0), Row: row, Value: value}
}

// Draw writes the text at its position.
func (t Text) Draw(cw *ChunkWriter) {
	if t.Value == "" {
		return
	}
	cw.MoveCursor(max(t.Col, 1), max(t.Row, 1))
	if t.Style != "" {
		cw.WriteString(t.Style)
		cw.WriteString(t.Value)
		cw.WriteString(ColorReset)
		return
	}
	cw.WriteString(t.Value)
}

// Width is the number of terminal cells s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}
