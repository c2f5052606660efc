package object

import "github.com/tomz197/invaders/internal/world"

// NewEnemy returns an enemy at (x, y) moving with the flock.
// probability is the per-tick fire chance in percent.
func NewEnemy(x, y uint16, speed float32, probability float64, shotSpeed float32) world.Bundle {
	return world.Bundle{
		Kind:     world.KindEnemy,
		Position: world.Position{X: x, Y: y},
		Velocity: world.Velocity{Speed: speed},
		Renderable: world.Renderable{
			SpriteTop:    EnemySpriteTop,
			SpriteBottom: EnemySpriteBottom,
			Width:        EnemyWidth,
		},
		Spawner: &world.ProjectileSpawner{
			Probability:     probability,
			ProjectileSpeed: shotSpeed,
		},
	}
}

// Wave returns the bundles of a full enemy formation, row by row from the top.
func Wave(speed float32, probability float64, shotSpeed float32) []world.Bundle {
	wave := make([]world.Bundle, 0, WaveSize)
	for r := range WaveRows {
		for c := range WaveColumns {
			x := uint16(waveLeft + waveColumnStep*c)
			y := uint16(waveTop - waveRowStep*r)
			wave = append(wave, NewEnemy(x, y, speed, probability, shotSpeed))
		}
	}
	return wave
}
