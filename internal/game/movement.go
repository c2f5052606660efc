package game

import (
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/world"
)

func (s *State) movePlayer(dt float32) {
	c, err := s.store.Get(s.player)
	if err != nil {
		return
	}
	dir := s.controls.Direction()
	c.Vel.Direction = dir
	if dir == world.DirNone {
		c.Vel.MoveAccumulator = 0
		return
	}

	steps, rest := physics.Accumulate(c.Vel.MoveAccumulator, dir.Sign()*c.Vel.Speed*dt)
	c.Vel.MoveAccumulator = rest
	if steps == 0 {
		return
	}
	*c.Prev = world.PrevPosition(*c.Pos)
	c.Pos.X = uint16(physics.Clamp(int(c.Pos.X)+steps, object.PlayerMinX, object.PlayerMaxX))
}

func (s *State) movePlayerProjectile(dt float32) {
	s.store.Each(world.KindPlayerProjectile, func(_ world.Entity, c world.Components) {
		if c.Render.Destroy {
			return
		}
		steps, rest := physics.Accumulate(c.Vel.MoveAccumulator, c.Vel.Speed*dt)
		c.Vel.MoveAccumulator = rest
		if steps == 0 {
			return
		}
		y := int(c.Pos.Y) + steps
		if y > object.ShotMaxY {
			c.Render.Destroy = true
			return
		}
		*c.Prev = world.PrevPosition(*c.Pos)
		c.Pos.Y = uint16(max(y, object.PlayerShotMinY))
	})
}

// moveEnemies moves the flock sideways. If any enemy reached a wall the whole
// flock turns around and drops one row.
func (s *State) moveEnemies(dt float32) {
	sign := s.enemyDirection.Sign()
	wall := false
	moved := map[world.Entity]bool{}

	s.store.Each(world.KindEnemy, func(e world.Entity, c world.Components) {
		if c.Render.Destroy {
			return
		}
		steps, rest := physics.Accumulate(c.Vel.MoveAccumulator, sign*c.Vel.Speed*dt)
		c.Vel.MoveAccumulator = rest
		if steps == 0 {
			return
		}
		x := int(c.Pos.X) + steps
		switch {
		case x < object.EnemyWallLeft:
			x = object.EnemyMinX
			wall = true
		case x > object.EnemyWallRight:
			x = object.EnemyMaxX
			wall = true
		}
		*c.Prev = world.PrevPosition(*c.Pos)
		c.Pos.X = uint16(x)
		moved[e] = true
	})
	if !wall {
		return
	}

	s.enemyDirection = s.enemyDirection.Flip()
	invaded := false
	s.store.Each(world.KindEnemy, func(e world.Entity, c world.Components) {
		if c.Render.Destroy {
			return
		}
		if !moved[e] {
			*c.Prev = world.PrevPosition(*c.Pos)
		}
		c.Pos.Y = uint16(physics.Offset(c.Pos.Y, -1))
		if c.Pos.Y <= object.InvasionRow {
			invaded = true
		}
	})
	if invaded {
		s.raiseGameOver(CauseInvasion)
	}
}

func (s *State) moveEnemyProjectiles(dt float32) {
	s.store.Each(world.KindEnemyProjectile, func(_ world.Entity, c world.Components) {
		if c.Render.Destroy {
			return
		}
		steps, rest := physics.Accumulate(c.Vel.MoveAccumulator, c.Vel.Speed*dt)
		c.Vel.MoveAccumulator = rest
		if steps == 0 {
			return
		}
		y := int(c.Pos.Y) + steps
		if y < object.EnemyShotMinY || y > object.ShotMaxY {
			c.Render.Destroy = true
			return
		}
		*c.Prev = world.PrevPosition(*c.Pos)
		c.Pos.Y = uint16(y)
	})
}
