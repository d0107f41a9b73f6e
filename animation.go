package armature

import (
	"fmt"
)

// EventKeyframe is a point-in-time trigger with a payload. Whether it has fired
// is tracked per playback, never on the definition.
type EventKeyframe[P any] struct {
	Tick    float64
	Payload P
}

// Particle describes a particle effect keyframe.
type Particle struct {
	Effect  string
	Locator string
	Script  string
}

// Animation is an immutable animation definition. One value may be shared by
// any number of controllers; nothing in this package modifies it after
// NewAnimation returns.
type Animation struct {
	Name string
	// Length in ticks. NewAnimation derives it from the longest bone timeline
	// when zero.
	Length       float64
	Loop         bool
	Bones        []BoneAnimation
	Sounds       []EventKeyframe[string]
	Particles    []EventKeyframe[Particle]
	Instructions []EventKeyframe[[]string]
}

// NewAnimation validates def and returns a private copy of it.
func NewAnimation(def Animation) (*Animation, error) {
	if def.Length < 0 {
		return nil, fmt.Errorf("armature: animation %q: %w (%v)", def.Name, ErrNegativeLength, def.Length)
	}
	a := def
	a.Bones = append([]BoneAnimation(nil), def.Bones...)
	a.Sounds = append([]EventKeyframe[string](nil), def.Sounds...)
	a.Particles = append([]EventKeyframe[Particle](nil), def.Particles...)
	a.Instructions = make([]EventKeyframe[[]string], len(def.Instructions))
	for i, ev := range def.Instructions {
		a.Instructions[i] = EventKeyframe[[]string]{Tick: ev.Tick, Payload: append([]string(nil), ev.Payload...)}
	}
	if a.Length == 0 {
		for i := range a.Bones {
			a.Length = max(a.Length, a.Bones[i].TotalTime())
		}
	}
	return &a, nil
}

// MustAnimation is like NewAnimation but panics on error.
func MustAnimation(def Animation) *Animation {
	a, err := NewAnimation(def)
	if err != nil {
		panic(err)
	}
	return a
}

// BoneNames lists the bones the animation drives, in authored order.
func (a *Animation) BoneNames() []string {
	names := make([]string, len(a.Bones))
	for i := range a.Bones {
		names[i] = a.Bones[i].Bone
	}
	return names
}
