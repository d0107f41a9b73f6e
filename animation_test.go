package armature

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/phanxgames/armature/easing"
)

// testSkeleton builds body -> head, arm.
func testSkeleton() *Skeleton {
	s := NewSkeleton()
	s.MustAddBone("", NewBasicBone(RestPose("body", mgl32.Vec3{})))
	s.MustAddBone("body", NewBasicBone(RestPose("head", mgl32.Vec3{0, 24, 0})))
	s.MustAddBone("body", NewBasicBone(RestPose("arm", mgl32.Vec3{4, 20, 0})))
	return s
}

// spin rotates bone around Z from 0 up to the given radians over length ticks. Values are
// constants so the result is easy to check in radians.
func spin(name, bone string, length, to float64, loop bool) *Animation {
	return MustAnimation(Animation{
		Name: name,
		Loop: loop,
		Bones: []BoneAnimation{{
			Bone: bone,
			Rotation: VectorTimeline{Z: MustTimeline(Keyframe{
				Length: length, Start: Constant(0), End: Constant(to),
			})},
		}},
	})
}

func TestNewAnimationDerivesLength(t *testing.T) {
	a, err := NewAnimation(Animation{
		Name: "wave",
		Bones: []BoneAnimation{
			{Bone: "arm", Rotation: VectorTimeline{X: MustTimeline(kf(12, 0, 30, easing.Linear))}},
			{Bone: "head", Position: VectorTimeline{Y: MustTimeline(kf(8, 0, 1, easing.Linear), kf(9, 1, 0, easing.Linear))}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if a.Length != 17 {
		t.Errorf("Length = %f, want 17", a.Length)
	}
	if names := a.BoneNames(); len(names) != 2 || names[0] != "arm" || names[1] != "head" {
		t.Errorf("BoneNames = %v", names)
	}
}

func TestNewAnimationKeepsExplicitLength(t *testing.T) {
	a := MustAnimation(Animation{Name: "pause", Length: 40})
	if a.Length != 40 {
		t.Errorf("Length = %f, want 40", a.Length)
	}
	if _, err := NewAnimation(Animation{Name: "bad", Length: -1}); !errors.Is(err, ErrNegativeLength) {
		t.Errorf("err = %v, want ErrNegativeLength", err)
	}
}

func TestNewAnimationCopiesDefinition(t *testing.T) {
	lines := []string{"say hi"}
	def := Animation{
		Name:         "talk",
		Length:       10,
		Instructions: []EventKeyframe[[]string]{{Tick: 1, Payload: lines}},
	}
	a := MustAnimation(def)
	lines[0] = "changed"
	def.Instructions[0].Tick = 9
	if a.Instructions[0].Payload[0] != "say hi" || a.Instructions[0].Tick != 1 {
		t.Errorf("definition shares caller memory: %+v", a.Instructions[0])
	}
}

func TestRunningAnimationMissingBone(t *testing.T) {
	a := spin("tail-wag", "tail", 10, 1, false)
	_, err := NewRunningAnimation(a, false, testSkeleton(), 0)
	if !errors.Is(err, ErrMissingBone) {
		t.Errorf("err = %v, want ErrMissingBone", err)
	}
}

func TestEvaluateRotationIsAdditive(t *testing.T) {
	rest := RestPose("arm", mgl32.Vec3{})
	rest.Rotation = mgl32.Vec3{0, 0, 0.25}
	s := NewSkeleton()
	armBone := s.MustAddBone("", NewBasicBone(rest))

	r, err := NewRunningAnimation(spin("raise", "arm", 10, 1, false), false, s, 100)
	if err != nil {
		t.Fatal(err)
	}
	r.Evaluate(105, nil, nil)
	if got := armBone.Component(Rotation).Z(); math.Abs(float64(got)-0.75) > 1e-6 {
		t.Errorf("Z = %f, want rest 0.25 + 0.5", got)
	}
	if !armBone.Tracker().Changed(Rotation) {
		t.Error("rotation should be marked changed")
	}
	if armBone.Tracker().Changed(Position) {
		t.Error("inactive position should not be marked")
	}
}

func TestEvaluatePositionIsAbsolute(t *testing.T) {
	s := testSkeleton()
	head := s.Basic("head")
	a := MustAnimation(Animation{
		Name: "bob",
		Bones: []BoneAnimation{{
			Bone: "head",
			Position: VectorTimeline{
				Y: MustTimeline(kf(10, 2, 4, easing.Linear)),
			},
		}},
	})
	head.SetComponent(Position, mgl32.Vec3{7, 7, 7})
	r, err := NewRunningAnimation(a, false, s, 0)
	if err != nil {
		t.Fatal(err)
	}
	r.Evaluate(5, nil, nil)
	got := head.Component(Position)
	if math.Abs(float64(got.Y())-3) > 1e-6 {
		t.Errorf("Y = %f, want 3", got.Y())
	}
	// Empty axes of an active kind read the rest pose.
	if got.X() != 0 || got.Z() != 0 {
		t.Errorf("X,Z = %f,%f, want rest 0,0", got.X(), got.Z())
	}
}

func TestEvaluateClampsBeforeStart(t *testing.T) {
	s := testSkeleton()
	r, _ := NewRunningAnimation(spin("raise", "arm", 10, 1, false), false, s, 50)
	r.Evaluate(40, nil, nil)
	if got := s.Basic("arm").Component(Rotation).Z(); got != 0 {
		t.Errorf("Z = %f, want 0 at negative time", got)
	}
	if r.Tick(40) != 0 {
		t.Errorf("Tick = %f, want 0", r.Tick(40))
	}
}

func TestIsFinishedIsStrict(t *testing.T) {
	r, _ := NewRunningAnimation(spin("raise", "arm", 10, 1, false), false, testSkeleton(), 5)
	if r.IsFinished(15) {
		t.Error("finished exactly at the end")
	}
	if !r.IsFinished(15.01) {
		t.Error("should be finished past the end")
	}
}

type firedLog struct {
	sounds       []string
	particles    []Particle
	instructions [][]string
	ticks        []float64
}

func (l *firedLog) dispatch() *Dispatch {
	return &Dispatch{
		Sound: func(tick float64, name string) {
			l.sounds = append(l.sounds, name)
			l.ticks = append(l.ticks, tick)
		},
		Particle: func(tick float64, p Particle) {
			l.particles = append(l.particles, p)
			l.ticks = append(l.ticks, tick)
		},
		Instruction: func(tick float64, lines []string) {
			l.instructions = append(l.instructions, lines)
			l.ticks = append(l.ticks, tick)
		},
	}
}

func eventAnimation() *Animation {
	return MustAnimation(Animation{
		Name:   "attack",
		Length: 20,
		Sounds: []EventKeyframe[string]{
			{Tick: 0, Payload: "swing"},
			{Tick: 10, Payload: "hit"},
		},
		Particles: []EventKeyframe[Particle]{
			{Tick: 10, Payload: Particle{Effect: "sparks", Locator: "blade"}},
		},
		Instructions: []EventKeyframe[[]string]{
			{Tick: 15, Payload: []string{"shake", "camera"}},
		},
	})
}

func TestEventsFireOncePerPass(t *testing.T) {
	var log firedLog
	d := log.dispatch()
	r, err := NewRunningAnimation(eventAnimation(), false, testSkeleton(), 0)
	if err != nil {
		t.Fatal(err)
	}
	for q := 0.0; q <= 20; q += 0.5 {
		r.Evaluate(q, nil, d)
	}
	if len(log.sounds) != 2 || log.sounds[0] != "swing" || log.sounds[1] != "hit" {
		t.Errorf("sounds = %v", log.sounds)
	}
	if len(log.particles) != 1 || log.particles[0].Effect != "sparks" {
		t.Errorf("particles = %v", log.particles)
	}
	if len(log.instructions) != 1 || log.instructions[0][1] != "camera" {
		t.Errorf("instructions = %v", log.instructions)
	}

	r.Restart(100)
	for q := 100.0; q <= 120; q++ {
		r.Evaluate(q, nil, d)
	}
	if len(log.sounds) != 4 || len(log.particles) != 2 || len(log.instructions) != 2 {
		t.Errorf("after restart: %d sounds, %d particles, %d instructions", len(log.sounds), len(log.particles), len(log.instructions))
	}
}

func TestSkippedEventsFireTogetherInOrder(t *testing.T) {
	var log firedLog
	r, _ := NewRunningAnimation(eventAnimation(), false, testSkeleton(), 0)
	r.Evaluate(16, nil, log.dispatch())

	if len(log.sounds) != 2 || len(log.particles) != 1 || len(log.instructions) != 1 {
		t.Fatalf("fired %d/%d/%d, want 2/1/1", len(log.sounds), len(log.particles), len(log.instructions))
	}
	for _, tick := range log.ticks {
		if tick != 16 {
			t.Errorf("tick = %f, want animation time 16", tick)
		}
	}
}

func TestEventsFireWithoutListeners(t *testing.T) {
	r, _ := NewRunningAnimation(eventAnimation(), false, testSkeleton(), 0)
	r.Evaluate(20, nil, nil)

	var log firedLog
	r.Evaluate(20, nil, log.dispatch())
	if len(log.sounds)+len(log.particles)+len(log.instructions) != 0 {
		t.Error("events already due should have been consumed")
	}
}

func TestWrapKeepsPhase(t *testing.T) {
	r, _ := NewRunningAnimation(spin("spin", "arm", 10, 1, true), true, testSkeleton(), 0)
	r.Wrap(32.5)
	if got := r.Tick(32.5); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("Tick after wrap = %f, want 2.5", got)
	}
	r.Wrap(40)
	if got := r.Tick(40); got != 10 {
		t.Errorf("Tick at exact boundary = %f, want 10", got)
	}
}

func TestWrapZeroLength(t *testing.T) {
	a := MustAnimation(Animation{Name: "blink", Loop: true})
	r, _ := NewRunningAnimation(a, true, testSkeleton(), 0)
	r.Wrap(7)
	if r.StartTime() != 7 {
		t.Errorf("start = %f, want 7", r.StartTime())
	}
}
