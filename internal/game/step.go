package game

import (
	"time"

	"github.com/tomz197/invaders/internal/world"
)

// Step advances the match by one tick of length dt.
//
// Order: notifiers, despawn of erased projectiles, movement, spawning,
// collisions, despawn of every erased entity, game-over settle.
func (s *State) Step(dt time.Duration) Report {
	var r Report

	if s.restartNotifier {
		s.reset()
		s.logger.Info("match restarted", "high_score", s.HighScore)
		r.Restarted = true
		return r
	}
	if s.pauseNotifier {
		s.pauseNotifier = false
		if !s.GameOver {
			s.Paused = !s.Paused
			s.logger.Debug("pause toggled", "paused", s.Paused)
		}
	}
	if s.Paused || s.GameOver {
		return r
	}
	s.Ticks++

	s.despawnErased(true)

	secs := float32(dt.Seconds())
	s.movePlayer(secs)
	s.movePlayerProjectile(secs)
	s.moveEnemies(secs)
	s.moveEnemyProjectiles(secs)

	s.spawnPlayerProjectile()
	s.spawnEnemyProjectiles()

	s.resolveEnemyHits(&r)
	s.resolvePlayerHits(&r)

	s.despawnErased(false)

	if s.gameOverNotifier {
		s.gameOverNotifier = false
		s.GameOver = true
		s.HighScore = max(s.HighScore, s.Score)
		r.GameOver = true
		r.Cause = s.Cause
		s.logger.Info("game over", "cause", s.Cause, "score", s.Score, "wave", s.Wave)
	}
	return r
}

// raiseGameOver flags the end of the match. Losing the last life takes
// precedence over an invasion raised in the same tick.
func (s *State) raiseGameOver(c Cause) {
	s.gameOverNotifier = true
	if s.Cause == CauseNone || c == CauseLives {
		s.Cause = c
	}
}

// despawnErased removes entities the renderer has cleared. With
// projectilesOnly set only projectiles are swept.
func (s *State) despawnErased(projectilesOnly bool) {
	var gone []world.Entity
	collect := func(e world.Entity, c world.Components) {
		if c.Render.Erased {
			gone = append(gone, e)
		}
	}
	if projectilesOnly {
		s.store.Each(world.KindPlayerProjectile, collect)
		s.store.Each(world.KindEnemyProjectile, collect)
	} else {
		s.store.EachAll(func(e world.Entity, _ world.Kind, c world.Components) { collect(e, c) })
	}

	for _, e := range gone {
		if err := s.store.Destroy(e); err != nil {
			continue
		}
		if e == s.playerProjectile {
			s.playerProjectile = world.Null
			s.PlayerProjectileExists = false
		}
	}
}
