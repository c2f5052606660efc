// Package world is the entity store: opaque entity ids carrying typed
// component bundles, queried by kind tag.
package world

import "github.com/yohamta/donburi"

// Kind identifies what an entity is. It is carried as a tag component.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindPlayerProjectile
	KindEnemy
	KindEnemyProjectile
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindPlayerProjectile:
		return "player-projectile"
	case KindEnemy:
		return "enemy"
	case KindEnemyProjectile:
		return "enemy-projectile"
	default:
		return "unknown"
	}
}

// Direction is a horizontal heading.
type Direction uint8

const (
	DirNone Direction = iota
	DirLeft
	DirRight
)

// Flip swaps Left and Right. None stays None.
func (d Direction) Flip() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// Sign is -1 for Left, +1 for Right and 0 for None.
func (d Direction) Sign() float32 {
	switch d {
	case DirLeft:
		return -1
	case DirRight:
		return 1
	default:
		return 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Position is the current cell. Y grows upwards from the bottom of the playfield.
type Position struct {
	X, Y uint16
}

// PrevPosition is the cell held before the most recent whole-cell move.
// The renderer erases the old glyph there.
type PrevPosition struct {
	X, Y uint16
}

// Velocity carries a speed in cells per second and the fractional distance
// not yet turned into a whole-cell step.
type Velocity struct {
	Speed           float32
	MoveAccumulator float32
	Direction       Direction
}

// Renderable is the glyph pair plus the two-phase removal flags.
// Destroy is set by the simulation; Erased is set by the renderer once the
// glyph is cleared, and only then may the entity leave the store.
type Renderable struct {
	SpriteTop    string
	SpriteBottom string
	Width        uint16
	Destroy      bool
	Erased       bool
}

// ProjectileSpawner gives an enemy a chance to fire each tick.
type ProjectileSpawner struct {
	Probability     float64 // Percent per tick, 0..100
	ProjectileSpeed float32
}

var (
	PositionComponent     = donburi.NewComponentType[Position]()
	PrevPositionComponent = donburi.NewComponentType[PrevPosition]()
	VelocityComponent     = donburi.NewComponentType[Velocity]()
	RenderableComponent   = donburi.NewComponentType[Renderable]()
	SpawnerComponent      = donburi.NewComponentType[ProjectileSpawner]()

	PlayerTag           = donburi.NewTag()
	PlayerProjectileTag = donburi.NewTag()
	EnemyTag            = donburi.NewTag()
	EnemyProjectileTag  = donburi.NewTag()
)

// tags is indexed by Kind.
var tags = [kindCount]*donburi.ComponentType[donburi.Tag]{
	KindPlayer:           PlayerTag,
	KindPlayerProjectile: PlayerProjectileTag,
	KindEnemy:            EnemyTag,
	KindEnemyProjectile:  EnemyProjectileTag,
}
