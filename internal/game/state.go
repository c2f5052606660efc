// Package game owns one match: the entity store plus the session state that
// the tick systems read and write.
package game

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/world"
)

// Phase is what the match is doing right now.
type Phase int

const (
	PhasePlaying Phase = iota
	PhasePaused
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Cause records why a match ended.
type Cause int

const (
	CauseNone     Cause = iota
	CauseLives          // Last life lost to an enemy projectile
	CauseInvasion       // The flock stepped down to the invasion row
)

func (c Cause) String() string {
	switch c {
	case CauseLives:
		return "lives"
	case CauseInvasion:
		return "invasion"
	default:
		return "none"
	}
}

// Rand is the randomness the enemy fire roll needs.
type Rand interface {
	Float64() float64
}

// Options are the per-match dependencies.
type Options struct {
	HighScore int         // Carried over from earlier matches
	Rand      Rand        // Defaults to a PCG seeded from tuning or the clock
	Logger    *log.Logger // Defaults to a discarding logger
}

// Report describes what one Step did.
type Report struct {
	Restarted   bool
	WaveCleared bool
	LivesLost   int
	GameOver    bool // Set only on the tick the match ended
	Cause       Cause
}

// State is the session state of one match. Fields exported here are read by
// the renderer; everything else changes only through Step and the request
// methods.
type State struct {
	tuning config.Tuning
	store  *world.Store
	rand   Rand
	logger *log.Logger
	rows   *physics.RowIndex // Enemy broad phase, rebuilt every collision pass

	Lives        int
	Score        int
	HighScore    int
	ScoreUpdated bool // Cleared by the HUD once drawn
	Wave         int  // 1-based
	GameOver     bool
	Paused       bool
	Cause        Cause
	Ticks        uint64 // Simulated ticks since the last restart

	player                 world.Entity
	playerProjectile       world.Entity
	PlayerProjectileExists bool

	enemyDirection        world.Direction
	speedMultiplier       float32
	probabilityMultiplier float64
	enemiesRemaining      int

	gameOverNotifier bool
	pauseNotifier    bool
	restartNotifier  bool

	controls Controls
}

// New creates a match with a fresh wave.
func New(t config.Tuning, opts Options) *State {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Rand == nil {
		seed := uint64(t.Seed)
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	s := &State{
		tuning:    t,
		rand:      opts.Rand,
		logger:    opts.Logger,
		rows:      physics.NewRowIndex(object.FieldHeight),
		HighScore: opts.HighScore,
	}
	s.reset()
	return s
}

// reset rebuilds the store and every session value except the high score.
func (s *State) reset() {
	s.store = world.NewStore()
	s.Lives = s.tuning.Lives
	s.Score = 0
	s.ScoreUpdated = true
	s.Wave = 1
	s.GameOver = false
	s.Paused = false
	s.Cause = CauseNone
	s.Ticks = 0
	s.playerProjectile = world.Null
	s.PlayerProjectileExists = false
	s.enemyDirection = world.DirRight
	s.speedMultiplier = 1
	s.probabilityMultiplier = 1
	s.gameOverNotifier = false
	s.pauseNotifier = false
	s.restartNotifier = false
	s.controls = Controls{}

	s.player = s.store.Create(object.NewPlayer(s.tuning.PlayerSpeed))
	s.spawnWave()
}

func (s *State) spawnWave() {
	for _, b := range object.Wave(
		s.tuning.EnemySpeed*s.speedMultiplier,
		s.tuning.EnemyFireProbability*s.probabilityMultiplier,
		s.tuning.EnemyProjectileSpeed,
	) {
		s.store.Create(b)
	}
	s.enemiesRemaining = object.WaveSize
}

// Store exposes the entities for the renderer. The pointer changes on restart.
func (s *State) Store() *world.Store {
	return s.store
}

// Phase reports the current match phase.
func (s *State) Phase() Phase {
	switch {
	case s.GameOver:
		return PhaseOver
	case s.Paused:
		return PhasePaused
	default:
		return PhasePlaying
	}
}

// EnemiesRemaining is the number of enemies of the current wave still alive.
func (s *State) EnemiesRemaining() int {
	return s.enemiesRemaining
}

// Multipliers returns the current enemy speed and fire-probability multipliers.
func (s *State) Multipliers() (speed float32, probability float64) {
	return s.speedMultiplier, s.probabilityMultiplier
}

// RequestPause toggles pause at the start of the next tick.
func (s *State) RequestPause() {
	s.pauseNotifier = true
}

// RequestRestart rebuilds the match at the start of the next tick.
func (s *State) RequestRestart() {
	s.restartNotifier = true
}
