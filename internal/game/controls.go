package game

import "github.com/tomz197/invaders/internal/world"

// Control is one player input the simulation reacts to.
type Control int

const (
	ControlLeft Control = iota
	ControlRight
	ControlShoot
)

// Controls is the held state of the player keys.
type Controls struct {
	left, right    bool
	last           world.Direction // Most recently pressed of left/right
	shoot          bool
	shootRequested bool // Press edge, consumed by the next simulated tick
}

// Direction resolves the held movement keys. When both are held the one
// pressed last wins.
func (c Controls) Direction() world.Direction {
	switch {
	case c.left && c.right:
		return c.last
	case c.left:
		return world.DirLeft
	case c.right:
		return world.DirRight
	default:
		return world.DirNone
	}
}

// SetControl records a press (held=true) or release of a control.
func (s *State) SetControl(c Control, held bool) {
	switch c {
	case ControlLeft:
		s.controls.left = held
		if held {
			s.controls.last = world.DirLeft
		}
	case ControlRight:
		s.controls.right = held
		if held {
			s.controls.last = world.DirRight
		}
	case ControlShoot:
		if held && !s.controls.shoot {
			s.controls.shootRequested = true
		}
		s.controls.shoot = held
	}
}

// ReleaseAll drops every held control.
func (s *State) ReleaseAll() {
	s.controls = Controls{}
}

// Controls returns the current control state.
func (s *State) Controls() Controls {
	return s.controls
}
