// Package physics provides the fixed-step integrator and cell-space bounds helpers.
package physics

// Accumulate adds delta to the sub-cell accumulator acc. Once the magnitude
// reaches one cell it returns the whole steps taken (truncated toward zero)
// and the fractional remainder, so |rest| < 1 always holds.
func Accumulate(acc, delta float32) (steps int, rest float32) {
	acc += delta
	if acc >= 1 || acc <= -1 {
		steps = int(acc)
		acc -= float32(steps)
	}
	return steps, acc
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// InSpan reports whether px lies on a sprite starting at left, inclusive of
// both edges (left..left+width).
func InSpan(px, left, width uint16) bool {
	return int(px) >= int(left) && int(px) <= int(left)+int(width)
}

// Offset moves a cell coordinate by d, saturating at 0 and 65535.
func Offset(v uint16, d int) int {
	return Clamp(int(v)+d, 0, 1<<16-1)
}
