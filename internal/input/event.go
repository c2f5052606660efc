// Package input turns terminal bytes and timers into the events the game
// loop consumes.
package input

// Kind is the closed set of events posted to the loop queue.
type Kind int

const (
	Tick Kind = iota
	Quit
	MoveLeft
	MoveRight
	Shoot
	Pause
	Restart
	Resize
	PeerConnected
	PeerFailed
	Confirm
	Back
)

func (k Kind) String() string {
	switch k {
	case Tick:
		return "tick"
	case Quit:
		return "quit"
	case MoveLeft:
		return "move-left"
	case MoveRight:
		return "move-right"
	case Shoot:
		return "shoot"
	case Pause:
		return "pause"
	case Restart:
		return "restart"
	case Resize:
		return "resize"
	case PeerConnected:
		return "peer-connected"
	case PeerFailed:
		return "peer-failed"
	case Confirm:
		return "confirm"
	case Back:
		return "back"
	default:
		return "unknown"
	}
}

// Phase distinguishes key presses from releases. Only MoveLeft, MoveRight
// and Shoot are ever released.
type Phase int

const (
	Press Phase = iota
	Release
)

// Event is one queue item.
type Event struct {
	Kind  Kind
	Phase Phase
	Addr  string // PeerConnected
	Err   error  // PeerFailed
}

// held reports whether k has a press/release lifetime.
func held(k Kind) bool {
	return k == MoveLeft || k == MoveRight || k == Shoot
}
