package world

import (
	"errors"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// ErrEntityNotFound is returned for ids that were destroyed or never existed.
var ErrEntityNotFound = errors.New("entity not found")

// Entity is an opaque entity identifier.
type Entity = donburi.Entity

// Null is never a live entity.
var Null = donburi.Null

// Bundle is everything needed to create an entity.
type Bundle struct {
	Kind       Kind
	Position   Position
	Velocity   Velocity
	Renderable Renderable
	Spawner    *ProjectileSpawner // Optional
}

// Components gives mutable access to one entity's data. Spawner is nil when
// the entity has none.
type Components struct {
	Pos     *Position
	Prev    *PrevPosition
	Vel     *Velocity
	Render  *Renderable
	Spawner *ProjectileSpawner
}

// Store holds all entities of one match.
//
// Iteration callbacks must not create or destroy entities; collect ids during
// the pass and act on them afterwards.
type Store struct {
	world   donburi.World
	byKind  [kindCount]*donburi.Query
	visible *donburi.Query
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{
		world:   donburi.NewWorld(),
		visible: donburi.NewQuery(filter.Contains(PositionComponent, RenderableComponent)),
	}
	for k := range kindCount {
		s.byKind[k] = donburi.NewQuery(filter.Contains(tags[k]))
	}
	return s
}

// Create adds an entity built from b and returns its id.
// PrevPosition starts out equal to Position.
func (s *Store) Create(b Bundle) Entity {
	var e Entity
	if b.Spawner != nil {
		e = s.world.Create(tags[b.Kind], PositionComponent, PrevPositionComponent,
			VelocityComponent, RenderableComponent, SpawnerComponent)
	} else {
		e = s.world.Create(tags[b.Kind], PositionComponent, PrevPositionComponent,
			VelocityComponent, RenderableComponent)
	}

	entry := s.world.Entry(e)
	PositionComponent.SetValue(entry, b.Position)
	PrevPositionComponent.SetValue(entry, PrevPosition(b.Position))
	VelocityComponent.SetValue(entry, b.Velocity)
	RenderableComponent.SetValue(entry, b.Renderable)
	if b.Spawner != nil {
		SpawnerComponent.SetValue(entry, *b.Spawner)
	}
	return e
}

// Destroy removes e. The id is invalid as soon as this returns.
func (s *Store) Destroy(e Entity) error {
	if !s.world.Valid(e) {
		return ErrEntityNotFound
	}
	s.world.Remove(e)
	return nil
}

// Alive reports whether e still names an entity.
func (s *Store) Alive(e Entity) bool {
	return s.world.Valid(e)
}

// Get returns the components of e.
func (s *Store) Get(e Entity) (Components, error) {
	if !s.world.Valid(e) {
		return Components{}, ErrEntityNotFound
	}
	return components(s.world.Entry(e)), nil
}

// KindOf returns the kind tag of e.
func (s *Store) KindOf(e Entity) (Kind, error) {
	if !s.world.Valid(e) {
		return 0, ErrEntityNotFound
	}
	return kindOf(s.world.Entry(e)), nil
}

// Each calls fn for every entity of the given kind.
func (s *Store) Each(kind Kind, fn func(Entity, Components)) {
	s.byKind[kind].Each(s.world, func(entry *donburi.Entry) {
		fn(entry.Entity(), components(entry))
	})
}

// EachAll calls fn for every entity in the store.
func (s *Store) EachAll(fn func(Entity, Kind, Components)) {
	s.visible.Each(s.world, func(entry *donburi.Entry) {
		fn(entry.Entity(), kindOf(entry), components(entry))
	})
}

// Count returns the number of entities of the given kind.
func (s *Store) Count(kind Kind) int {
	return s.byKind[kind].Count(s.world)
}

// Len returns the number of entities in the store.
func (s *Store) Len() int {
	return s.visible.Count(s.world)
}

func components(entry *donburi.Entry) Components {
	c := Components{
		Pos:    PositionComponent.Get(entry),
		Prev:   PrevPositionComponent.Get(entry),
		Vel:    VelocityComponent.Get(entry),
		Render: RenderableComponent.Get(entry),
	}
	if entry.HasComponent(SpawnerComponent) {
		c.Spawner = SpawnerComponent.Get(entry)
	}
	return c
}

func kindOf(entry *donburi.Entry) Kind {
	for k := range kindCount {
		if entry.HasComponent(tags[k]) {
			return k
		}
	}
	return kindCount
}
