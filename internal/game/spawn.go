package game

import (
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/world"
)

// spawnPlayerProjectile fires when shoot was pressed or is held and no
// player projectile is in flight. The press request is consumed either way.
func (s *State) spawnPlayerProjectile() {
	want := s.controls.shootRequested || s.controls.shoot
	s.controls.shootRequested = false
	if !want || s.PlayerProjectileExists {
		return
	}
	c, err := s.store.Get(s.player)
	if err != nil {
		return
	}
	s.playerProjectile = s.store.Create(object.NewPlayerProjectile(c.Pos.X, s.tuning.ProjectileSpeed))
	s.PlayerProjectileExists = true
}

// spawnEnemyProjectiles rolls each live enemy's fire chance.
func (s *State) spawnEnemyProjectiles() {
	var shots []world.Bundle
	s.store.Each(world.KindEnemy, func(_ world.Entity, c world.Components) {
		if c.Render.Destroy || c.Spawner == nil {
			return
		}
		if s.rand.Float64()*100 < c.Spawner.Probability {
			shots = append(shots, object.NewEnemyProjectile(c.Pos.X, c.Pos.Y, c.Spawner.ProjectileSpeed))
		}
	})
	for _, b := range shots {
		s.store.Create(b)
	}
}
