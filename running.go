package armature

import (
	"errors"
	"fmt"
	"math"

	"github.com/phanxgames/armature/easing"
)

// ErrMissingBone is returned when an animation drives a bone the tree does
// not have.
var ErrMissingBone = errors.New("armature: bone not found")

// Dispatch receives the event keyframes of a RunningAnimation as they come
// due. tick is the animation time at which the event was fired. Nil fields
// are skipped.
type Dispatch struct {
	Sound       func(tick float64, name string)
	Particle    func(tick float64, p Particle)
	Instruction func(tick float64, lines []string)
}

type boundBone struct {
	anim *BoneAnimation
	bone Bone
}

// RunningAnimation is one playback of an Animation. It owns the fired flags
// of the animation's event keyframes.
type RunningAnimation struct {
	anim  *Animation
	loop  bool
	start float64
	bones []boundBone

	soundFired       []bool
	particleFired    []bool
	instructionFired []bool
}

// NewRunningAnimation binds anim to the bones of tree and starts it at start.
// Every bone the animation drives must exist.
func NewRunningAnimation(anim *Animation, loop bool, tree BoneTree, start float64) (*RunningAnimation, error) {
	bones, err := bindBones(anim, tree)
	if err != nil {
		return nil, err
	}
	return newRunning(anim, loop, bones, start), nil
}

func newRunning(anim *Animation, loop bool, bones []boundBone, start float64) *RunningAnimation {
	return &RunningAnimation{
		anim:             anim,
		loop:             loop,
		start:            start,
		bones:            bones,
		soundFired:       make([]bool, len(anim.Sounds)),
		particleFired:    make([]bool, len(anim.Particles)),
		instructionFired: make([]bool, len(anim.Instructions)),
	}
}

func bindBones(anim *Animation, tree BoneTree) ([]boundBone, error) {
	bones := make([]boundBone, 0, len(anim.Bones))
	for i := range anim.Bones {
		ba := &anim.Bones[i]
		b, ok := tree.BoneByName(ba.Bone)
		if !ok {
			return nil, fmt.Errorf("%w: %q in animation %q", ErrMissingBone, ba.Bone, anim.Name)
		}
		bones = append(bones, boundBone{anim: ba, bone: b})
	}
	return bones, nil
}

func (r *RunningAnimation) Animation() *Animation { return r.anim }
func (r *RunningAnimation) Loop() bool            { return r.loop }
func (r *RunningAnimation) StartTime() float64    { return r.start }

// Tick returns the animation time at query, never negative.
func (r *RunningAnimation) Tick(query float64) float64 {
	return max(query-r.start, 0)
}

// IsFinished reports whether query is past the end of the animation.
func (r *RunningAnimation) IsFinished(query float64) bool {
	return query > r.start+r.anim.Length
}

// Restart rebases the animation to start and re-arms every event keyframe.
func (r *RunningAnimation) Restart(start float64) {
	r.start = start
	clear(r.soundFired)
	clear(r.particleFired)
	clear(r.instructionFired)
}

// Wrap restarts a finished looping animation by whole lengths so the
// animation time at query keeps its phase. Zero-length animations restart at
// query.
func (r *RunningAnimation) Wrap(query float64) {
	length := r.anim.Length
	if length <= 0 {
		r.Restart(query)
		return
	}
	elapsed := query - r.start
	n := math.Floor(elapsed / length)
	if n*length >= elapsed {
		n--
	}
	r.Restart(r.start + n*length)
}

// Evaluate poses every driven bone at query and fires the event keyframes
// that have come due.
func (r *RunningAnimation) Evaluate(query float64, override easing.Func, d *Dispatch) {
	t := r.Tick(query)
	for i := range r.bones {
		bb := &r.bones[i]
		rest := bb.bone.Rest()
		tracker := bb.bone.Tracker()
		for k := Kind(0); k < numKinds; k++ {
			ch := bb.anim.Channel(k)
			if !ch.Active() {
				continue
			}
			bb.bone.SetComponent(k, ch.pose(k, t, override, rest.Component(k)))
			tracker.Notify(k)
		}
	}
	r.fire(t, d)
}

// fire dispatches due events in authored order: sounds, then particles, then
// instructions.
func (r *RunningAnimation) fire(t float64, d *Dispatch) {
	for i, ev := range r.anim.Sounds {
		if r.soundFired[i] || ev.Tick > t {
			continue
		}
		r.soundFired[i] = true
		if d != nil && d.Sound != nil {
			d.Sound(t, ev.Payload)
		}
	}
	for i, ev := range r.anim.Particles {
		if r.particleFired[i] || ev.Tick > t {
			continue
		}
		r.particleFired[i] = true
		if d != nil && d.Particle != nil {
			d.Particle(t, ev.Payload)
		}
	}
	for i, ev := range r.anim.Instructions {
		if r.instructionFired[i] || ev.Tick > t {
			continue
		}
		r.instructionFired[i] = true
		if d != nil && d.Instruction != nil {
			d.Instruction(t, ev.Payload)
		}
	}
}

