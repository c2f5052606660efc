package loop

import (
	"fmt"
	"io"
	"strings"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/world"
)

// renderer turns the app state into terminal output. It repaints only what
// changed unless a full redraw is pending.
type renderer struct {
	cw   *draw.ChunkWriter
	size draw.TermSizeFunc

	full    bool // Next frame clears and repaints everything
	visible bool // The playfield fits the terminal

	// What the last frame showed.
	screen screen
	phase  game.Phase
	store  *world.Store
	page   string                          // Menu screens: the text drawn
	hud    string                          // Game: the status line drawn
	drawn  map[world.Entity]world.Position // Cell each glyph was last drawn at
}

func newRenderer(w io.Writer, size draw.TermSizeFunc) *renderer {
	return &renderer{
		cw:    draw.NewChunkWriter(w, 0, 0),
		size:  size,
		full:  true,
		drawn: map[world.Entity]world.Position{},
	}
}

// invalidate forces a full redraw on the next frame.
func (r *renderer) invalidate() {
	r.full = true
}

// row maps a playfield y (1 at the bottom) to a writer row inside the border.
func row(y int) int {
	return object.FieldHeight + 2 - y
}

// col maps a playfield x to a writer column inside the border.
func col(x int) int {
	return x + 1
}

// draw renders one frame of the current screen.
func (a *app) draw() error {
	r := a.renderer
	if a.screen != r.screen {
		r.full = true
		r.screen = a.screen
	}
	if r.full {
		r.reset()
	}

	switch a.screen {
	case screenGame:
		r.game(a.match, a.peerAddr)
	default:
		r.menuPage(a.pageLines())
	}

	if err := r.cw.Flush(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// reset clears the terminal, recomputes the layout and forgets what was drawn.
func (r *renderer) reset() {
	r.full = false
	r.cw.SetOffset(0, 0)
	r.cw.Clear()
	r.page = ""
	r.hud = ""
	r.store = nil
	clear(r.drawn)

	cols, rows, err := r.size()
	if err != nil {
		cols, rows = object.FieldWidth+2, object.FieldHeight+2
	}
	l := draw.Layout{Cols: cols, Rows: rows, Width: object.FieldWidth, Height: object.FieldHeight}
	r.visible = l.Fits()
	if !r.visible {
		msg := fmt.Sprintf("Terminal too small: %dx%d, need %dx%d", cols, rows, object.FieldWidth+2, object.FieldHeight+2)
		draw.Text{Col: 1, Row: 1, Value: msg, Style: draw.ColorYellow}.Draw(r.cw)
		return
	}
	c, rw := l.Origin()
	r.cw.SetOffset(c, rw)
	draw.Box(r.cw, object.FieldWidth, object.FieldHeight)
}

// menuPage draws centred lines inside the playfield box when they change.
func (r *renderer) menuPage(lines []draw.Text) {
	var sig strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&sig, "%d|%s|%s\n", l.Row, l.Style, l.Value)
	}
	if sig.String() == r.page {
		return
	}
	if r.page != "" {
		r.reset()
	}
	r.page = sig.String()
	if !r.visible {
		return
	}
	for _, l := range lines {
		l.Draw(r.cw)
	}
}

// game draws one frame of a match: an erase pass over every cell that must
// change, then a draw pass. Destroyed entities are erased and handed back to
// the simulation through their Erased flag.
func (r *renderer) game(m *game.State, peer string) {
	if m.Store() != r.store || m.Phase() != r.phase {
		if r.store != nil {
			r.reset()
		}
		r.store = m.Store()
		r.phase = m.Phase()
	}

	dirty := map[int]bool{} // Writer rows blanked this frame
	erase := func(p world.Position, rd *world.Renderable) {
		if !r.visible {
			return
		}
		y := int(p.Y)
		r.cw.Blank(col(int(p.X)), row(y), draw.Width(rd.SpriteBottom))
		dirty[row(y)] = true
		if rd.SpriteTop != "" {
			r.cw.Blank(col(int(p.X)), row(y+1), draw.Width(rd.SpriteTop))
			dirty[row(y+1)] = true
		}
	}

	type glyph struct {
		e     world.Entity
		pos   world.Position
		rd    *world.Renderable
		moved bool
	}
	var live []glyph
	seen := map[world.Entity]bool{}

	m.Store().EachAll(func(e world.Entity, _ world.Kind, c world.Components) {
		seen[e] = true
		last, wasDrawn := r.drawn[e]
		if c.Render.Destroy {
			if !c.Render.Erased {
				if wasDrawn {
					erase(last, c.Render)
				}
				erase(*c.Pos, c.Render)
				c.Render.Erased = true
			}
			delete(r.drawn, e)
			return
		}
		if wasDrawn && last != *c.Pos {
			erase(last, c.Render)
		}
		live = append(live, glyph{e: e, pos: *c.Pos, rd: c.Render, moved: !wasDrawn || last != *c.Pos})
	})
	for e := range r.drawn {
		if !seen[e] {
			delete(r.drawn, e)
		}
	}

	if r.visible {
		for _, g := range live {
			y := int(g.pos.Y)
			if !g.moved && !dirty[row(y)] && !(g.rd.SpriteTop != "" && dirty[row(y+1)]) {
				continue
			}
			r.cw.WriteAt(col(int(g.pos.X)), row(y), g.rd.SpriteBottom)
			if g.rd.SpriteTop != "" {
				r.cw.WriteAt(col(int(g.pos.X)), row(y+1), g.rd.SpriteTop)
			}
		}
		r.statusLine(m, peer)
		r.overlay(m)
	}
	for _, g := range live {
		r.drawn[g.e] = g.pos
	}
}

// statusLine redraws the HUD when its text changes. It consumes ScoreUpdated.
func (r *renderer) statusLine(m *game.State, peer string) {
	hud := fmt.Sprintf("Score %-6d  High %-6d  Lives %d  Wave %d",
		m.Score, m.HighScore, m.Lives, m.Wave)
	if peer != "" {
		hud += "  Peer " + peer
	}
	if hud == r.hud && !m.ScoreUpdated {
		return
	}
	m.ScoreUpdated = false
	r.cw.Blank(2, row(hudRow), object.FieldWidth)
	draw.Text{Col: 3, Row: row(hudRow), Value: hud, Style: draw.ColorCyan}.Draw(r.cw)
	r.hud = hud
}

func (r *renderer) overlay(m *game.State) {
	var lines []draw.Text
	mid := row(object.FieldHeight / 2)
	switch m.Phase() {
	case game.PhasePaused:
		lines = []draw.Text{
			draw.Centered(2, mid, object.FieldWidth, "P A U S E D"),
			draw.Centered(2, mid+2, object.FieldWidth, "p resume   r restart   esc menu   q quit"),
		}
	case game.PhaseOver:
		lines = []draw.Text{
			draw.Centered(2, mid, object.FieldWidth, "G A M E   O V E R"),
			draw.Centered(2, mid+2, object.FieldWidth, fmt.Sprintf("Score %d   High %d", m.Score, m.HighScore)),
			draw.Centered(2, mid+4, object.FieldWidth, "r restart   esc menu   q quit"),
		}
		lines[0].Style = draw.ColorRed + draw.ColorBold
	default:
		return
	}
	for _, l := range lines {
		l.Draw(r.cw)
	}
}

// pageLines is the text of the current menu screen.
func (a *app) pageLines() []draw.Text {
	mid := row(object.FieldHeight / 2)
	center := func(dy int, s string) draw.Text {
		return draw.Centered(2, mid+dy, object.FieldWidth, s)
	}
	hint := func(dy int, s string) draw.Text {
		t := center(dy, s)
		t.Style = draw.ColorDim
		return t
	}

	title := center(-6, "S P A C E   I N V A D E R S")
	title.Style = draw.ColorGreen + draw.ColorBold
	lines := []draw.Text{title}

	switch a.screen {
	case screenMain:
		var items []string
		for i, it := range a.menu.items {
			if i == a.menu.selected {
				items = append(items, "[ "+it.String()+" ]")
			} else {
				items = append(items, "  "+it.String()+"  ")
			}
		}
		lines = append(lines,
			center(0, strings.Join(items, "    ")),
			hint(3, "a/d or arrows choose   space or enter select   q quit"),
			center(6, fmt.Sprintf("High score %d", a.highScore)),
		)
		if a.status != "" {
			st := center(8, a.status)
			st.Style = draw.ColorRed
			lines = append(lines, st)
		}
	case screenHosting:
		lines = append(lines,
			center(0, "Waiting for a player on "+a.opts.HostAddr),
			hint(3, "esc cancel"),
		)
	case screenJoining:
		lines = append(lines,
			center(0, "Connecting to "+a.opts.PeerAddr),
			hint(3, "esc cancel"),
		)
	}
	return lines
}
