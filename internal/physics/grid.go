package physics

// RowIndex buckets item indices by playfield row for broad-phase collision.
// Items in a row keep their insertion order, so lookups are deterministic.
type RowIndex struct {
	rows []rowBucket
}

// rowBucket is reused between ticks (reset to [:0]).
type rowBucket struct {
	items []int
}

// NewRowIndex creates an index for rows 0 through height.
func NewRowIndex(height int) *RowIndex {
	return &RowIndex{rows: make([]rowBucket, max(height, 0)+1)}
}

// Clear removes all items without freeing bucket memory.
func (g *RowIndex) Clear() {
	for i := range g.rows {
		g.rows[i].items = g.rows[i].items[:0]
	}
}

// Insert adds index to row y. Rows outside the index are clamped to its edge.
func (g *RowIndex) Insert(y uint16, index int) {
	r := g.clamp(y)
	g.rows[r].items = append(g.rows[r].items, index)
}

// Each calls fn for every index in row y in insertion order. If fn returns
// true, iteration stops early.
func (g *RowIndex) Each(y uint16, fn func(index int) bool) {
	if int(y) >= len(g.rows) {
		return
	}
	for _, idx := range g.rows[y].items {
		if fn(idx) {
			return
		}
	}
}

func (g *RowIndex) clamp(y uint16) int {
	return min(int(y), len(g.rows)-1)
}
