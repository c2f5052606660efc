package physics

import (
	"math"
	"testing"
)

func TestAccumulateBounded(t *testing.T) {
	for _, speed := range []float32{60, -60, 20, -20, 0.5, 120, 1000} {
		var acc float32
		for i := range 1000 {
			dt := float32(16+i%5) / 1000
			_, acc = Accumulate(acc, speed*dt)
			if acc <= -1 || acc >= 1 {
				t.Fatalf("speed %v: |acc| = %v after step %d", speed, acc, i)
			}
		}
	}
}

func TestAccumulateSteps(t *testing.T) {
	tests := []struct {
		acc, delta float32
		steps      int
		rest       float32
	}{
		{0, 0.5, 0, 0.5},
		{0.5, 0.6, 1, 0.1},
		{0, 2.25, 2, 0.25},
		{-0.5, -0.75, -1, -0.25},
		{0.9, -0.4, 0, 0.5},
	}
	for _, tc := range tests {
		steps, rest := Accumulate(tc.acc, tc.delta)
		if steps != tc.steps || math.Abs(float64(rest-tc.rest)) > 1e-5 {
			t.Errorf("Accumulate(%v, %v) = %d, %v; want %d, %v",
				tc.acc, tc.delta, steps, rest, tc.steps, tc.rest)
		}
	}
}

// Over a long run the cells travelled match speed*time within one cell.
func TestAccumulateConverges(t *testing.T) {
	const speed = 60
	var (
		acc     float32
		cells   int
		elapsed float64
	)
	for i := range 5000 {
		dt := float64(16+i%5) / 1000
		elapsed += dt
		var n int
		n, acc = Accumulate(acc, float32(speed*dt))
		cells += n
	}
	want := speed * elapsed
	if math.Abs(float64(cells)-want) > 1.001 {
		t.Fatalf("travelled %d cells, want %.2f", cells, want)
	}
}

func TestClampIdempotent(t *testing.T) {
	for v := -10; v < 130; v++ {
		once := Clamp(v, 2, 113)
		if once < 2 || once > 113 {
			t.Fatalf("Clamp(%d) = %d out of range", v, once)
		}
		if twice := Clamp(once, 2, 113); twice != once {
			t.Fatalf("Clamp not idempotent at %d: %d then %d", v, once, twice)
		}
	}
}

func TestInSpan(t *testing.T) {
	tests := []struct {
		px, left, width uint16
		want            bool
	}{
		{20, 18, 5, true},
		{18, 18, 5, true},
		{23, 18, 5, true},
		{24, 18, 5, false},
		{17, 18, 5, false},
		{0, 0, 0, true},
	}
	for _, tc := range tests {
		if got := InSpan(tc.px, tc.left, tc.width); got != tc.want {
			t.Errorf("InSpan(%d, %d, %d) = %v", tc.px, tc.left, tc.width, got)
		}
	}
}

func TestOffsetSaturates(t *testing.T) {
	if got := Offset(0, -3); got != 0 {
		t.Errorf("Offset(0,-3) = %d", got)
	}
	if got := Offset(65535, 1); got != 65535 {
		t.Errorf("Offset(max,1) = %d", got)
	}
	if got := Offset(10, -1); got != 9 {
		t.Errorf("Offset(10,-1) = %d", got)
	}
}

func TestRowIndex(t *testing.T) {
	g := NewRowIndex(10)
	g.Insert(4, 0)
	g.Insert(4, 2)
	g.Insert(5, 1)
	g.Insert(200, 3) // Clamped to the top row

	var got []int
	g.Each(4, func(i int) bool {
		got = append(got, i)
		return false
	})
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("row 4 = %v, want [0 2]", got)
	}

	n := 0
	g.Each(4, func(int) bool { n++; return true })
	if n != 1 {
		t.Fatalf("early stop visited %d items", n)
	}

	top := 0
	g.Each(10, func(int) bool { top++; return false })
	if top != 1 {
		t.Fatalf("top row holds %d items, want 1", top)
	}
	g.Each(11, func(int) bool { t.Fatal("row past the index visited"); return false })

	g.Clear()
	g.Each(5, func(int) bool { t.Fatal("item survived Clear"); return false })
}
