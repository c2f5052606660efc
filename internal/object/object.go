// Package object builds entity bundles for everything that lives on the
// playfield: the player ship, the enemy wave and both kinds of projectile.
package object

import "github.com/tomz197/invaders/internal/world"

// Playfield geometry in cells. Y grows upwards; row 1 is the bottom.
const (
	FieldWidth  = 120
	FieldHeight = 40
)

// Player limits.
const (
	PlayerStartX = 55
	PlayerRow    = 7
	PlayerWidth  = 5
	PlayerMinX   = 2
	PlayerMaxX   = 113
)

// Projectile rows.
const (
	PlayerShotRow  = 8  // Spawn row of the player projectile
	PlayerShotMinY = 2  // Lower clamp for the player projectile
	ShotMaxY       = 39 // Anything moving above this row is destroyed
	EnemyShotMinY  = 6  // Enemy projectiles below this row are destroyed
	ShotOffsetX    = 2  // Projectiles leave from the sprite centre
)

// Enemy limits.
const (
	EnemyWidth     = 5
	EnemyWallLeft  = 3   // x below this is a wall hit
	EnemyWallRight = 112 // x above this is a wall hit
	EnemyMinX      = 2
	EnemyMaxX      = 113
	InvasionRow    = 10 // An enemy at or below this row ends the match
	WaveColumns    = 10
	WaveRows       = 3
	WaveSize       = WaveColumns * WaveRows
	waveLeft       = 6
	waveTop        = 38
	waveColumnStep = 7
	waveRowStep    = 4
)

// Sprites. Each is two rows tall: bottom on the entity row, top one above.
const (
	PlayerSpriteTop    = "⣆⡜⣛⢣⣠"
	PlayerSpriteBottom = "⣿⣿⣿⣿⣿"
	EnemySpriteTop     = "⢳⡴⠶⢦⡞"
	EnemySpriteBottom  = "⠞⠫⡪⠋⠱"
	ProjectileSprite   = "⣿"
)

// NewPlayer returns the bundle for the player ship at its start cell.
func NewPlayer(speed float32) world.Bundle {
	return world.Bundle{
		Kind:     world.KindPlayer,
		Position: world.Position{X: PlayerStartX, Y: PlayerRow},
		Velocity: world.Velocity{Speed: speed},
		Renderable: world.Renderable{
			SpriteTop:    PlayerSpriteTop,
			SpriteBottom: PlayerSpriteBottom,
			Width:        PlayerWidth,
		},
	}
}
