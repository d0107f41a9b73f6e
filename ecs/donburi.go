package ecs

import (
	"fmt"

	"github.com/phanxgames/armature"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// EventKind tells which payload of a KeyframeEvent is set.
type EventKind uint8

const (
	SoundEvent EventKind = iota
	ParticleEvent
	InstructionEvent
)

// KeyframeEvent is the Donburi event for an event keyframe that fired on an
// attached animator.
type KeyframeEvent struct {
	Entity     donburi.Entity
	Controller string
	// Tick is the animation time at which the keyframe fired.
	Tick        float64
	Kind        EventKind
	Sound       string
	Particle    armature.Particle
	Instruction []string
}

// KeyframeEventType is the Donburi event type for keyframe events. Subscribe
// to it in your ECS systems.
var KeyframeEventType = events.NewEventType[KeyframeEvent]()

// Animated is the component data holding an entity's animator.
type Animated[T any] struct {
	Animator *armature.Animator[T]
}

// NewAnimatorComponent creates the component type for animators of owner
// type T.
func NewAnimatorComponent[T any]() *donburi.ComponentType[Animated[T]] {
	return donburi.NewComponentType[Animated[T]]()
}

// Attach stores a on entry and routes the keyframe events of every
// controller it has now to KeyframeEventType. It replaces any listeners those
// controllers had.
func Attach[T any](world donburi.World, entry *donburi.Entry, c *donburi.ComponentType[Animated[T]], a *armature.Animator[T]) {
	c.SetValue(entry, Animated[T]{Animator: a})
	entity := entry.Entity()
	for _, ctrl := range a.Controllers() {
		name := ctrl.Name()
		ctrl.OnSound(func(ev armature.KeyframeEvent[T, string]) {
			KeyframeEventType.Publish(world, KeyframeEvent{
				Entity: entity, Controller: name, Tick: ev.Tick, Kind: SoundEvent, Sound: ev.Payload,
			})
		})
		ctrl.OnParticle(func(ev armature.KeyframeEvent[T, armature.Particle]) {
			KeyframeEventType.Publish(world, KeyframeEvent{
				Entity: entity, Controller: name, Tick: ev.Tick, Kind: ParticleEvent, Particle: ev.Payload,
			})
		})
		ctrl.OnInstruction(func(ev armature.KeyframeEvent[T, []string]) {
			KeyframeEventType.Publish(world, KeyframeEvent{
				Entity: entity, Controller: name, Tick: ev.Tick, Kind: InstructionEvent, Instruction: ev.Payload,
			})
		})
	}
}

// System ticks every animator stored under one component type.
type System[T any] struct {
	component *donburi.ComponentType[Animated[T]]
	query     *donburi.Query
	// Eval, if set, receives each controller's query values.
	Eval armature.QueryEvaluator
}

// NewSystem returns a System over entities that have c.
func NewSystem[T any](c *donburi.ComponentType[Animated[T]]) *System[T] {
	return &System[T]{
		component: c,
		query:     donburi.NewQuery(filter.Contains(c)),
	}
}

// Update ticks every animator at renderTime. All entities are ticked even if
// one fails; the first error is returned.
func (s *System[T]) Update(world donburi.World, renderTime float64) error {
	var firstErr error
	s.query.Each(world, func(entry *donburi.Entry) {
		a := s.component.Get(entry).Animator
		if a == nil {
			return
		}
		if err := a.Tick(renderTime, nil, s.Eval); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("ecs: entity %v: %w", entry.Entity(), err)
		}
	})
	return firstErr
}
