package loop

import "time"

// Loop configuration constants.

// Event queue
const (
	queueSize = 256 // Buffered events before producers block
)

// Terminal
const (
	resizePollInterval = 250 * time.Millisecond
	hudRow             = 3 // Playfield row (y-up) of the status line
)
