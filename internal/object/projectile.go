package object

import (
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/world"
)

// NewPlayerProjectile returns a shot leaving the ship whose left edge is at
// playerX. speed is positive (upwards).
func NewPlayerProjectile(playerX uint16, speed float32) world.Bundle {
	return projectile(world.KindPlayerProjectile,
		uint16(physics.Offset(playerX, ShotOffsetX)), PlayerShotRow, speed)
}

// NewEnemyProjectile returns a shot dropped by the enemy at (x, y).
// speed is negative (downwards).
func NewEnemyProjectile(x, y uint16, speed float32) world.Bundle {
	return projectile(world.KindEnemyProjectile,
		uint16(physics.Offset(x, ShotOffsetX)), uint16(physics.Offset(y, -1)), speed)
}

func projectile(kind world.Kind, x, y uint16, speed float32) world.Bundle {
	return world.Bundle{
		Kind:     kind,
		Position: world.Position{X: x, Y: y},
		Velocity: world.Velocity{Speed: speed},
		Renderable: world.Renderable{
			SpriteBottom: ProjectileSprite,
			Width:        1,
		},
	}
}
