package object

import (
	"testing"

	"github.com/tomz197/invaders/internal/world"
)

func TestWaveLayout(t *testing.T) {
	wave := Wave(20, 0.1, -20)
	if len(wave) != WaveSize {
		t.Fatalf("wave has %d enemies, want %d", len(wave), WaveSize)
	}

	seen := map[world.Position]bool{}
	for _, b := range wave {
		if b.Kind != world.KindEnemy {
			t.Fatalf("kind = %v", b.Kind)
		}
		if b.Spawner == nil || b.Spawner.Probability != 0.1 || b.Spawner.ProjectileSpeed != -20 {
			t.Fatalf("spawner = %+v", b.Spawner)
		}
		if seen[b.Position] {
			t.Fatalf("duplicate position %+v", b.Position)
		}
		seen[b.Position] = true
	}

	for _, p := range []world.Position{
		{X: 6, Y: 38}, {X: 69, Y: 38}, {X: 6, Y: 30}, {X: 69, Y: 30}, {X: 27, Y: 34},
	} {
		if !seen[p] {
			t.Errorf("missing enemy at %+v", p)
		}
	}
}

func TestProjectileSpawnCells(t *testing.T) {
	p := NewPlayerProjectile(55, 60)
	if p.Position != (world.Position{X: 57, Y: PlayerShotRow}) || p.Velocity.Speed != 60 {
		t.Errorf("player projectile = %+v", p)
	}
	if p.Kind != world.KindPlayerProjectile {
		t.Errorf("kind = %v", p.Kind)
	}

	e := NewEnemyProjectile(20, 30, -20)
	if e.Position != (world.Position{X: 22, Y: 29}) || e.Velocity.Speed != -20 {
		t.Errorf("enemy projectile = %+v", e)
	}
	if e.Spawner != nil {
		t.Errorf("projectile must not carry a spawner")
	}
}

func TestNewPlayer(t *testing.T) {
	p := NewPlayer(60)
	if p.Position != (world.Position{X: PlayerStartX, Y: PlayerRow}) {
		t.Errorf("player at %+v", p.Position)
	}
	if p.Renderable.Width != PlayerWidth || p.Renderable.SpriteTop == "" {
		t.Errorf("renderable = %+v", p.Renderable)
	}
}
