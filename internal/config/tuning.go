package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Tuning holds every gameplay parameter that can be overridden from a TOML file.
// Geometry (playfield bounds, wave layout) is fixed and lives with the game code.
type Tuning struct {
	TickMs    int `toml:"tick_ms"`     // Nominal tick interval
	MaxStepMs int `toml:"max_step_ms"` // Upper clamp for a single step's dt
	KeyHoldMs int `toml:"key_hold_ms"` // Release delay for terminals without key-release reports

	Lives                int     `toml:"lives"`
	PlayerSpeed          float32 `toml:"player_speed"`           // Cells per second
	ProjectileSpeed      float32 `toml:"projectile_speed"`       // Player projectile, upward
	EnemySpeed           float32 `toml:"enemy_speed"`            // Base flock speed
	EnemyProjectileSpeed float32 `toml:"enemy_projectile_speed"` // Signed, negative is downward
	EnemyFireProbability float64 `toml:"enemy_fire_probability"` // Percent per enemy per tick
	SpeedRamp            float32 `toml:"speed_ramp"`             // Speed multiplier applied per cleared wave
	FireRamp             float64 `toml:"fire_ramp"`              // Fire probability multiplier per cleared wave
	ScorePerHit          int     `toml:"score_per_hit"`

	Seed int64 `toml:"seed"` // 0 seeds from the clock
}

// DefaultTuning returns the stock game parameters.
func DefaultTuning() Tuning {
	return Tuning{
		TickMs:    16,
		MaxStepMs: 20,
		KeyHoldMs: 150,

		Lives:                3,
		PlayerSpeed:          60,
		ProjectileSpeed:      60,
		EnemySpeed:           20,
		EnemyProjectileSpeed: -20,
		EnemyFireProbability: 0.1,
		SpeedRamp:            1.2,
		FireRamp:             3.0,
		ScorePerHit:          10,
	}
}

// TickInterval is the nominal time between simulation ticks.
func (t Tuning) TickInterval() time.Duration {
	return time.Duration(t.TickMs) * time.Millisecond
}

// MaxStep is the largest dt a single step may use.
func (t Tuning) MaxStep() time.Duration {
	return time.Duration(t.MaxStepMs) * time.Millisecond
}

// KeyHold is how long a legacy key stays pressed after its last byte.
func (t Tuning) KeyHold() time.Duration {
	return time.Duration(t.KeyHoldMs) * time.Millisecond
}

// Validate reports the first parameter that would make the simulation misbehave.
func (t Tuning) Validate() error {
	switch {
	case t.TickMs <= 0:
		return fmt.Errorf("tick_ms must be positive, got %d", t.TickMs)
	case t.MaxStepMs < t.TickMs:
		return fmt.Errorf("max_step_ms (%d) must not be below tick_ms (%d)", t.MaxStepMs, t.TickMs)
	case t.KeyHoldMs <= 0:
		return fmt.Errorf("key_hold_ms must be positive, got %d", t.KeyHoldMs)
	case t.Lives <= 0:
		return fmt.Errorf("lives must be positive, got %d", t.Lives)
	case t.PlayerSpeed <= 0:
		return fmt.Errorf("player_speed must be positive, got %g", t.PlayerSpeed)
	case t.ProjectileSpeed <= 0:
		return fmt.Errorf("projectile_speed must be positive, got %g", t.ProjectileSpeed)
	case t.EnemySpeed <= 0:
		return fmt.Errorf("enemy_speed must be positive, got %g", t.EnemySpeed)
	case t.EnemyFireProbability < 0 || t.EnemyFireProbability > 100:
		return fmt.Errorf("enemy_fire_probability must be within 0..100, got %g", t.EnemyFireProbability)
	}
	return nil
}

// LoadTuning reads a TOML tuning file over the defaults. An empty path or a
// missing file yields the defaults unchanged.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return t, fmt.Errorf("read tuning %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}
