package input

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"
)

func TestDecodeLegacy(t *testing.T) {
	tests := []struct {
		in   string
		want []Kind
	}{
		{"a", []Kind{MoveLeft}},
		{"D", []Kind{MoveRight}},
		{"w ", []Kind{Shoot, Shoot}},
		{"prq", []Kind{Pause, Restart, Quit}},
		{"\x03", []Kind{Quit}},
		{"\r", []Kind{Confirm}},
		{"\x1b", []Kind{Back}},
		{"\x1b[D\x1b[C\x1b[A", []Kind{MoveLeft, MoveRight, Shoot}},
		{"\x1b[B", nil},
		{"xyz", nil},
	}
	for _, tc := range tests {
		var d decoder
		keys := d.decode([]byte(tc.in))
		if len(keys) != len(tc.want) {
			t.Errorf("decode(%q) = %d keys, want %d", tc.in, len(keys), len(tc.want))
			continue
		}
		for i, k := range keys {
			if k.kind != tc.want[i] || k.phase != Press || !k.legacy {
				t.Errorf("decode(%q)[%d] = %+v, want legacy press of %v", tc.in, i, k, tc.want[i])
			}
		}
	}
}

func TestDecodeKitty(t *testing.T) {
	tests := []struct {
		in     string
		kind   Kind
		phase  Phase
		repeat bool
	}{
		{"\x1b[97u", MoveLeft, Press, false},
		{"\x1b[97;1:2u", MoveLeft, Press, true},
		{"\x1b[97;1:3u", MoveLeft, Release, false},
		{"\x1b[100;1:3u", MoveRight, Release, false},
		{"\x1b[32u", Shoot, Press, false},
		{"\x1b[1;1:3A", Shoot, Release, false},
		{"\x1b[13u", Confirm, Press, false},
		{"\x1b[27u", Back, Press, false},
		{"\x1b[99;5u", Quit, Press, false},
		{"\x1b[97:65;2u", MoveLeft, Press, false},
	}
	for _, tc := range tests {
		var d decoder
		keys := d.decode([]byte(tc.in))
		if len(keys) != 1 {
			t.Errorf("decode(%q) = %d keys, want 1", tc.in, len(keys))
			continue
		}
		k := keys[0]
		if k.kind != tc.kind || k.phase != tc.phase || k.repeat != tc.repeat || k.legacy {
			t.Errorf("decode(%q) = %+v", tc.in, k)
		}
	}
}

func TestDecodeKittyArrowPressAfterDetection(t *testing.T) {
	var d decoder
	d.decode([]byte("\x1b[97;1:3u"))
	keys := d.decode([]byte("\x1b[D"))
	if len(keys) != 1 || keys[0].kind != MoveLeft || keys[0].legacy {
		t.Fatalf("keys = %+v", keys)
	}
}

func TestDecodeSplitSequence(t *testing.T) {
	var d decoder
	if keys := d.decode([]byte("\x1b[97;1")); len(keys) != 0 {
		t.Fatalf("partial sequence decoded to %+v", keys)
	}
	keys := d.decode([]byte(":3ua"))
	if len(keys) != 2 {
		t.Fatalf("keys = %+v", keys)
	}
	if keys[0].kind != MoveLeft || keys[0].phase != Release {
		t.Errorf("first = %+v", keys[0])
	}
	if keys[1].kind != MoveLeft || keys[1].phase != Press {
		t.Errorf("second = %+v", keys[1])
	}
}

func TestHoldsLegacy(t *testing.T) {
	h := &holds{hold: 150 * time.Millisecond}
	t0 := time.Now()
	left := key{kind: MoveLeft, legacy: true}

	if ev := h.apply(left, t0); len(ev) != 1 || ev[0].Phase != Press {
		t.Fatalf("first press = %+v", ev)
	}
	// Autorepeat bytes keep the key down without new events.
	if ev := h.apply(left, t0.Add(100*time.Millisecond)); len(ev) != 0 {
		t.Fatalf("repeat = %+v", ev)
	}
	if ev := h.expire(t0.Add(200 * time.Millisecond)); len(ev) != 0 {
		t.Fatalf("released early: %+v", ev)
	}
	ev := h.expire(t0.Add(250 * time.Millisecond))
	if len(ev) != 1 || ev[0].Kind != MoveLeft || ev[0].Phase != Release {
		t.Fatalf("expire = %+v", ev)
	}
	if ev := h.expire(t0.Add(time.Second)); len(ev) != 0 {
		t.Fatalf("released twice: %+v", ev)
	}
}

func TestHoldsKitty(t *testing.T) {
	h := &holds{hold: 150 * time.Millisecond}
	t0 := time.Now()

	if ev := h.apply(key{kind: Shoot}, t0); len(ev) != 1 || ev[0].Phase != Press {
		t.Fatalf("press = %+v", ev)
	}
	if ev := h.expire(t0.Add(time.Second)); len(ev) != 0 {
		t.Fatalf("kitty key expired: %+v", ev)
	}
	if ev := h.apply(key{kind: Shoot, repeat: true}, t0); len(ev) != 0 {
		t.Fatalf("repeat = %+v", ev)
	}
	ev := h.apply(key{kind: Shoot, phase: Release}, t0)
	if len(ev) != 1 || ev[0].Phase != Release {
		t.Fatalf("release = %+v", ev)
	}
}

func TestHoldsDiscreteKeys(t *testing.T) {
	h := &holds{hold: time.Second}
	if ev := h.apply(key{kind: Pause}, time.Now()); len(ev) != 1 || ev[0].Kind != Pause {
		t.Fatalf("pause = %+v", ev)
	}
	if ev := h.apply(key{kind: Pause, phase: Release}, time.Now()); len(ev) != 0 {
		t.Fatalf("pause release = %+v", ev)
	}
	if ev := h.apply(key{kind: Pause, repeat: true}, time.Now()); len(ev) != 0 {
		t.Fatalf("pause repeat = %+v", ev)
	}
}

func next(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event")
		return Event{}
	}
}

func TestCapture(t *testing.T) {
	r, w := io.Pipe()
	s := StartStream(r)
	out := make(chan Event, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- Capture(ctx, s, out, 30*time.Millisecond) }()

	if _, err := w.Write([]byte("a")); err != nil {
		t.Fatal(err)
	}
	if ev := next(t, out); ev.Kind != MoveLeft || ev.Phase != Press {
		t.Fatalf("got %+v, want left press", ev)
	}
	if ev := next(t, out); ev.Kind != MoveLeft || ev.Phase != Release {
		t.Fatalf("got %+v, want left release", ev)
	}

	w.Close()
	if ev := next(t, out); ev.Kind != Quit {
		t.Fatalf("got %+v, want quit on closed stream", ev)
	}
	if err := <-done; err != nil {
		t.Fatalf("Capture: %v", err)
	}
}

func TestWatchSize(t *testing.T) {
	var calls atomic.Int32
	size := func() (int, int, error) {
		if calls.Add(1) == 1 {
			return 80, 24, nil
		}
		return 120, 50, nil
	}
	out := make(chan Event, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go WatchSize(ctx, size, out, 5*time.Millisecond)

	if ev := next(t, out); ev.Kind != Resize {
		t.Fatalf("got %+v, want resize", ev)
	}
}
