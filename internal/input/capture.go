package input

import (
	"context"
	"time"
)

// holds tracks which held keys are down. Keys from terminals that never
// report releases carry the time they were last seen and are released once
// that is older than the hold duration.
type holds struct {
	hold time.Duration
	down [3]bool
	seen [3]time.Time // Zero when the key is released explicitly
}

func slot(k Kind) int {
	return int(k - MoveLeft)
}

func (h *holds) apply(k key, now time.Time) []Event {
	if !held(k.kind) {
		if k.phase == Press && !k.repeat {
			return []Event{{Kind: k.kind, Phase: Press}}
		}
		return nil
	}

	i := slot(k.kind)
	if k.legacy {
		h.seen[i] = now
	} else {
		h.seen[i] = time.Time{}
	}

	if k.phase == Release {
		if !h.down[i] {
			return nil
		}
		h.down[i] = false
		return []Event{{Kind: k.kind, Phase: Release}}
	}
	if h.down[i] {
		return nil
	}
	h.down[i] = true
	return []Event{{Kind: k.kind, Phase: Press}}
}

// expire releases legacy keys not seen for the hold duration.
func (h *holds) expire(now time.Time) []Event {
	var out []Event
	for i := range h.seen {
		if h.seen[i].IsZero() || now.Sub(h.seen[i]) < h.hold {
			continue
		}
		h.seen[i] = time.Time{}
		if h.down[i] {
			h.down[i] = false
			out = append(out, Event{Kind: MoveLeft + Kind(i), Phase: Release})
		}
	}
	return out
}

// Capture decodes keys from s and posts them to out until ctx is done.
// A closed stream posts Quit and returns.
func Capture(ctx context.Context, s *Stream, out chan<- Event, hold time.Duration) error {
	var (
		d   decoder
		buf []byte
	)
	h := &holds{hold: hold}
	sweep := time.NewTicker(max(hold/4, time.Millisecond))
	defer sweep.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case b, ok := <-s.ch:
			if !ok {
				send(ctx, out, Event{Kind: Quit})
				return nil
			}
			buf, ok = s.drain(append(buf[:0], b))
			now := time.Now()
			for _, k := range d.decode(buf) {
				for _, ev := range h.apply(k, now) {
					if !send(ctx, out, ev) {
						return nil
					}
				}
			}
			if !ok {
				send(ctx, out, Event{Kind: Quit})
				return nil
			}
		case now := <-sweep.C:
			for _, ev := range h.expire(now) {
				if !send(ctx, out, ev) {
					return nil
				}
			}
		}
	}
}

// WatchSize polls size every interval and posts Resize when it changes.
func WatchSize(ctx context.Context, size func() (int, int, error), out chan<- Event, every time.Duration) error {
	w, h, _ := size()
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			nw, nh, err := size()
			if err != nil || (nw == w && nh == h) {
				continue
			}
			w, h = nw, nh
			if !send(ctx, out, Event{Kind: Resize}) {
				return nil
			}
		}
	}
}

func send(ctx context.Context, out chan<- Event, ev Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
