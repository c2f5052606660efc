// Package loop runs the single-threaded event pump that owns a player's
// screens and match, fed by input, timer and network producers.
package loop

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/network"
)

// Options configure one Run.
type Options struct {
	Tuning    config.Tuning
	HighScore int
	SaveScore func(score int) error // Called when a match ends; may be nil
	TermSize  draw.TermSizeFunc
	Networked bool   // Offer Host/Join instead of Solo
	HostAddr  string // Listen address when hosting
	PeerAddr  string // Dial address when joining
	Logger    *log.Logger
	Rand      game.Rand // Nil seeds from the tuning
}

func (o Options) withDefaults() Options {
	if o.Tuning == (config.Tuning{}) {
		o.Tuning = config.DefaultTuning()
	}
	if o.TermSize == nil {
		o.TermSize = draw.DefaultTermSizeFunc
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.HostAddr == "" {
		o.HostAddr = ":7777"
	}
	if o.PeerAddr == "" {
		o.PeerAddr = "127.0.0.1:7777"
	}
	return o
}

// Run draws to w and reads keys from r until the player quits, r closes or
// ctx is done. The terminal is restored on every return path.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) (err error) {
	opts = opts.withDefaults()

	if err := draw.Setup(w); err != nil {
		return err
	}
	defer func() {
		if rerr := draw.Restore(w); rerr != nil && err == nil {
			err = fmt.Errorf("terminal restore: %w", rerr)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan input.Event, queueSize)
	// The reader goroutine blocks in Read and cannot be cancelled, so it
	// lives outside the group.
	stream := input.StartStream(r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return input.Capture(gctx, stream, events, opts.Tuning.KeyHold())
	})
	g.Go(func() error {
		return tick(gctx, events, opts.Tuning.TickInterval())
	})
	g.Go(func() error {
		return input.WatchSize(gctx, opts.TermSize, events, resizePollInterval)
	})

	a := newApp(gctx, w, opts, events)
	runErr := a.run(gctx)

	cancel()
	a.stopPeers()
	if werr := g.Wait(); runErr == nil {
		runErr = werr
	}
	return runErr
}

// tick posts Tick every interval. A full queue drops the tick; the next
// Step covers the elapsed time anyway.
func tick(ctx context.Context, out chan<- input.Event, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			select {
			case out <- input.Event{Kind: input.Tick}:
			default:
			}
		}
	}
}

// clampStep bounds the measured time since the last step.
func clampStep(elapsed, lo, hi time.Duration) time.Duration {
	return min(max(elapsed, lo), hi)
}

// collect returns first followed by every event already queued.
func collect(first input.Event, events <-chan input.Event) []input.Event {
	batch := []input.Event{first}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return append(batch, input.Event{Kind: input.Quit})
			}
			batch = append(batch, ev)
		default:
			return batch
		}
	}
}

// app is the state owned by the pump goroutine.
type app struct {
	ctx    context.Context
	opts   Options
	logger *log.Logger
	events chan input.Event

	screen    screen
	menu      menu
	status    string // Last peer error, shown on the main menu
	peerAddr  string
	peers     []*network.Task
	highScore int

	match    *game.State
	matchLog *log.Logger
	lastStep time.Time

	renderer *renderer
}

func newApp(ctx context.Context, w io.Writer, opts Options, events chan input.Event) *app {
	return &app{
		ctx:       ctx,
		opts:      opts,
		logger:    opts.Logger,
		events:    events,
		screen:    screenMain,
		menu:      newMenu(opts.Networked),
		highScore: opts.HighScore,
		renderer:  newRenderer(w, opts.TermSize),
	}
}

// run pumps events until quit. It renders once before the first event and
// once after every batch.
func (a *app) run(ctx context.Context) error {
	if err := a.draw(); err != nil {
		return err
	}
	for {
		var first input.Event
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-a.events:
			if !ok {
				return nil
			}
			first = ev
		}

		if a.apply(collect(first, a.events)) {
			return nil
		}
		if err := a.draw(); err != nil {
			return err
		}
	}
}

// apply handles a batch in order and steps the match once if the batch held
// any ticks. It reports whether the player quit.
func (a *app) apply(batch []input.Event) (quit bool) {
	ticks := 0
	for _, ev := range batch {
		switch ev.Kind {
		case input.Quit:
			return true
		case input.Tick:
			ticks++
		case input.Resize:
			a.renderer.invalidate()
		default:
			a.handle(ev)
		}
	}
	if ticks > 0 {
		a.step()
	}
	return false
}

func (a *app) step() {
	if a.screen != screenGame || a.match == nil {
		return
	}
	now := time.Now()
	dt := a.opts.Tuning.TickInterval()
	if !a.lastStep.IsZero() {
		dt = clampStep(now.Sub(a.lastStep), a.opts.Tuning.TickInterval(), a.opts.Tuning.MaxStep())
	}
	a.lastStep = now

	rep := a.match.Step(dt)
	if rep.Restarted {
		a.renderer.invalidate()
	}
	if rep.GameOver {
		a.recordScore()
	}
}

// recordScore persists a new high score.
func (a *app) recordScore() {
	if a.match.HighScore <= a.highScore {
		return
	}
	a.highScore = a.match.HighScore
	if a.opts.SaveScore == nil {
		return
	}
	if err := a.opts.SaveScore(a.highScore); err != nil {
		a.matchLog.Error("saving high score", "err", err)
	}
}

func (a *app) startMatch() {
	a.matchLog = a.logger.With("match", newMatchID())
	a.match = game.New(a.opts.Tuning, game.Options{
		HighScore: a.highScore,
		Rand:      a.opts.Rand,
		Logger:    a.matchLog,
	})
	a.lastStep = time.Time{}
	a.screen = screenGame
	a.renderer.invalidate()
	a.matchLog.Info("match started", "peer", a.peerAddr)
}

func (a *app) endMatch() {
	if a.match != nil {
		a.matchLog.Info("match left", "score", a.match.Score, "wave", a.match.Wave)
	}
	a.match = nil
	a.peerAddr = ""
	a.stopPeers()
	a.toMain()
}

func (a *app) toMain() {
	a.screen = screenMain
	a.renderer.invalidate()
}

// startPeer runs fn in the background. Connection and failure are posted to
// the queue; the pump never waits on the task.
func (a *app) startPeer(fn func(context.Context, network.Handler) error) {
	task := network.Go(a.ctx, func(ctx context.Context) error {
		err := fn(ctx, network.Handler{
			Connected: func(addr string) {
				post(ctx, a.events, input.Event{Kind: input.PeerConnected, Addr: addr})
			},
		})
		if err != nil && ctx.Err() == nil {
			post(ctx, a.events, input.Event{Kind: input.PeerFailed, Err: err})
		}
		return err
	})
	a.peers = append(a.peers, task)
}

// stopPeers cancels every peer task. Only Run's shutdown waits for them.
func (a *app) stopPeers() {
	for _, t := range a.peers {
		t.Cancel()
	}
	if a.ctx.Err() == nil {
		a.peers = a.peers[:0]
		return
	}
	for _, t := range a.peers {
		if err := t.Wait(); err != nil {
			a.logger.Debug("peer task", "err", err)
		}
	}
	a.peers = nil
}

func post(ctx context.Context, out chan<- input.Event, ev input.Event) {
	select {
	case out <- ev:
	case <-ctx.Done():
	}
}
