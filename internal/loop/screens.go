package loop

import (
	"context"

	"github.com/segmentio/ksuid"

	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/network"
)

// screen is the top-level UI state.
type screen int

const (
	screenMain    screen = iota // Menu
	screenHosting               // Waiting for a peer to connect
	screenJoining               // Dialing a peer
	screenGame                  // A match is running
)

func (s screen) String() string {
	switch s {
	case screenMain:
		return "main"
	case screenHosting:
		return "hosting"
	case screenJoining:
		return "joining"
	case screenGame:
		return "game"
	default:
		return "unknown"
	}
}

// menuItem is one main-menu entry.
type menuItem int

const (
	itemHost menuItem = iota
	itemJoin
	itemSolo
)

func (m menuItem) String() string {
	switch m {
	case itemHost:
		return "Host"
	case itemJoin:
		return "Join"
	case itemSolo:
		return "Solo"
	default:
		return "?"
	}
}

// menu is a horizontal list with one selected entry.
type menu struct {
	items    []menuItem
	selected int
}

func newMenu(networked bool) menu {
	if networked {
		return menu{items: []menuItem{itemHost, itemJoin, itemSolo}}
	}
	return menu{items: []menuItem{itemSolo}}
}

func (m *menu) move(d int) {
	n := len(m.items)
	m.selected = ((m.selected+d)%n + n) % n
}

func (m menu) current() menuItem {
	return m.items[m.selected]
}

func newMatchID() string {
	return ksuid.New().String()
}

// handle applies one non-tick event to the current screen.
func (a *app) handle(ev input.Event) {
	switch a.screen {
	case screenMain:
		a.handleMain(ev)
	case screenHosting, screenJoining:
		a.handleWaiting(ev)
	case screenGame:
		a.handleGame(ev)
	}
}

func (a *app) handleMain(ev input.Event) {
	if ev.Phase != input.Press {
		return
	}
	switch ev.Kind {
	case input.MoveLeft:
		a.menu.move(-1)
	case input.MoveRight:
		a.menu.move(1)
	case input.Shoot, input.Confirm:
		a.selectItem()
	}
}

func (a *app) selectItem() {
	a.status = ""
	switch a.menu.current() {
	case itemHost:
		addr := a.opts.HostAddr
		a.logger.Info("hosting", "addr", addr)
		a.startPeer(func(ctx context.Context, h network.Handler) error {
			return network.Host(ctx, addr, h)
		})
		a.screen = screenHosting
	case itemJoin:
		addr := a.opts.PeerAddr
		a.logger.Info("joining", "addr", addr)
		a.startPeer(func(ctx context.Context, h network.Handler) error {
			return network.Join(ctx, addr, h)
		})
		a.screen = screenJoining
	case itemSolo:
		a.startMatch()
		return
	}
	a.renderer.invalidate()
}

// handleWaiting covers the hosting and joining screens. Peer events from a
// task that was already cancelled are ignored by screen.
func (a *app) handleWaiting(ev input.Event) {
	switch ev.Kind {
	case input.PeerConnected:
		a.peerAddr = ev.Addr
		a.logger.Info("peer connected", "addr", ev.Addr)
		a.startMatch()
	case input.PeerFailed:
		a.logger.Warn("peer failed", "err", ev.Err)
		a.status = ev.Err.Error()
		a.stopPeers()
		a.toMain()
	case input.Back:
		a.stopPeers()
		a.toMain()
	}
}

func (a *app) handleGame(ev input.Event) {
	switch ev.Kind {
	case input.MoveLeft:
		a.match.SetControl(game.ControlLeft, ev.Phase == input.Press)
	case input.MoveRight:
		a.match.SetControl(game.ControlRight, ev.Phase == input.Press)
	case input.Shoot:
		a.match.SetControl(game.ControlShoot, ev.Phase == input.Press)
	case input.Pause:
		// Releases can be missed while the overlay is up.
		a.match.ReleaseAll()
		a.match.RequestPause()
	case input.Restart:
		a.match.RequestRestart()
	case input.Confirm:
		if a.match.GameOver {
			a.match.RequestRestart()
		}
	case input.Back:
		if a.match.Phase() != game.PhasePlaying {
			a.endMatch()
		}
	}
}
