package game

import (
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/world"
)

// body is a collision snapshot taken before any flag of the pass is set.
type body struct {
	render *world.Renderable
	pos    world.Position
	width  uint16
}

func (s *State) snapshot(kind world.Kind) []body {
	var out []body
	s.store.Each(kind, func(_ world.Entity, c world.Components) {
		if c.Render.Destroy {
			return
		}
		out = append(out, body{render: c.Render, pos: *c.Pos, width: c.Render.Width})
	})
	return out
}

// resolveEnemyHits tests player projectiles against enemies. Clearing the
// wave ramps up the flock and spawns the next one.
func (s *State) resolveEnemyHits(r *Report) {
	shots := s.snapshot(world.KindPlayerProjectile)
	if len(shots) == 0 {
		return
	}
	enemies := s.snapshot(world.KindEnemy)
	s.rows.Clear()
	for i, e := range enemies {
		s.rows.Insert(e.pos.Y, i)
	}

	hits := 0
	for _, p := range shots {
		s.rows.Each(p.pos.Y, func(i int) bool {
			e := enemies[i]
			if e.render.Destroy || !physics.InSpan(p.pos.X, e.pos.X, e.width) {
				return false
			}
			p.render.Destroy = true
			e.render.Destroy = true
			s.Score += s.tuning.ScorePerHit
			s.ScoreUpdated = true
			s.enemiesRemaining--
			hits++
			return false
		})
	}

	if hits == 0 || s.enemiesRemaining > 0 {
		return
	}
	s.speedMultiplier *= s.tuning.SpeedRamp
	s.probabilityMultiplier *= s.tuning.FireRamp
	s.Wave++
	s.spawnWave()
	r.WaveCleared = true
	s.logger.Info("wave cleared", "wave", s.Wave, "speed", s.speedMultiplier, "fire", s.probabilityMultiplier)
}

// resolvePlayerHits tests enemy projectiles against the ship. Any number of
// hits in one tick costs a single life.
func (s *State) resolvePlayerHits(r *Report) {
	c, err := s.store.Get(s.player)
	if err != nil {
		return
	}
	player := *c.Pos

	hit := false
	for _, p := range s.snapshot(world.KindEnemyProjectile) {
		if int(player.Y) != int(p.pos.Y)-1 || !physics.InSpan(p.pos.X, player.X, object.PlayerWidth) {
			continue
		}
		p.render.Destroy = true
		hit = true
	}
	if !hit || s.Lives == 0 {
		return
	}

	s.Lives--
	r.LivesLost = 1
	s.logger.Debug("player hit", "lives", s.Lives)
	if s.Lives == 0 {
		s.raiseGameOver(CauseLives)
	}
}
