package armature

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/phanxgames/armature/easing"
)

// ErrNegativeLength is returned when a keyframe or animation is built with a
// negative duration.
var ErrNegativeLength = errors.New("armature: negative length")

// Axis selects one scalar component of a vector channel.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "unknown"
}

// Keyframe is one authored segment of a timeline: it moves from Start to End
// over Length ticks. A zero Length snaps to End.
type Keyframe struct {
	Length float64
	Start  Value
	End    Value
	Easing easing.Spec
}

// Timeline is the ordered, gap-free keyframe list of one scalar channel. The
// zero value is an empty timeline.
type Timeline struct {
	frames []Keyframe
	eases  []easing.Func
	total  float64
}

// NewTimeline builds a timeline and resolves every keyframe's easing. It fails
// on a negative length or an invalid easing parameter.
func NewTimeline(frames ...Keyframe) (Timeline, error) {
	tl := Timeline{
		frames: make([]Keyframe, len(frames)),
		eases:  make([]easing.Func, len(frames)),
	}
	copy(tl.frames, frames)
	for i, kf := range tl.frames {
		if kf.Length < 0 {
			return Timeline{}, fmt.Errorf("armature: keyframe %d: %w (%v)", i, ErrNegativeLength, kf.Length)
		}
		fn, err := kf.Easing.Func()
		if err != nil {
			return Timeline{}, fmt.Errorf("armature: keyframe %d: %w", i, err)
		}
		tl.eases[i] = fn
		tl.total += kf.Length
	}
	return tl, nil
}

// MustTimeline is like NewTimeline but panics on error.
func MustTimeline(frames ...Keyframe) Timeline {
	tl, err := NewTimeline(frames...)
	if err != nil {
		panic(err)
	}
	return tl
}

// HasKeyframes reports whether the timeline has at least one keyframe.
func (tl *Timeline) HasKeyframes() bool { return len(tl.frames) > 0 }

// TotalTime is the sum of all keyframe lengths.
func (tl *Timeline) TotalTime() float64 { return tl.total }

// Len returns the number of keyframes.
func (tl *Timeline) Len() int { return len(tl.frames) }

// Keyframe returns the i'th keyframe.
func (tl *Timeline) Keyframe(i int) Keyframe { return tl.frames[i] }

// Last returns the final keyframe.
func (tl *Timeline) Last() (Keyframe, bool) {
	if len(tl.frames) == 0 {
		return Keyframe{}, false
	}
	return tl.frames[len(tl.frames)-1], true
}

// ValueAt samples the timeline at tick t. override replaces the easing of
// keyframes that ask for [easing.Custom]; it may be nil. An empty timeline
// reads 0.
func (tl *Timeline) ValueAt(t float64, override easing.Func) float64 {
	return tl.sample(t, override, plain)
}

// RotationAt is ValueAt for a rotation channel: authored values are converted
// from degrees to radians and the X and Y axes are negated. Constant values
// pass through unchanged.
func (tl *Timeline) RotationAt(t float64, axis Axis, override easing.Func) float64 {
	if axis == AxisZ {
		return tl.sample(t, override, radians)
	}
	return tl.sample(t, override, negRadians)
}

type convert func(Value) float64

func plain(v Value) float64 { return v.Get() }

func radians(v Value) float64 {
	if isConstant(v) {
		return v.Get()
	}
	return mgl64.DegToRad(v.Get())
}

func negRadians(v Value) float64 {
	if isConstant(v) {
		return v.Get()
	}
	return -mgl64.DegToRad(v.Get())
}

func (tl *Timeline) sample(t float64, override easing.Func, conv convert) float64 {
	n := len(tl.frames)
	if n == 0 {
		return 0
	}
	if t >= tl.total {
		return conv(tl.frames[n-1].End)
	}
	var elapsed float64
	i := 0
	for ; i < n-1; i++ {
		if elapsed+tl.frames[i].Length > t {
			break
		}
		elapsed += tl.frames[i].Length
	}
	kf := &tl.frames[i]
	local := t - elapsed
	if kf.Length == 0 || local >= kf.Length {
		return conv(kf.End)
	}
	start := conv(kf.Start)
	if local <= 0 {
		return start
	}
	eased := tl.easeFor(i, override)(local / kf.Length)
	return start + eased*(conv(kf.End)-start)
}

// easeFor picks the override for Custom keyframes when one is supplied.
func (tl *Timeline) easeFor(i int, override easing.Func) easing.Func {
	if override != nil && tl.frames[i].Easing.Kind == easing.Custom {
		return override
	}
	return tl.eases[i]
}

// blend moves from toward to by progress in [0, 1], shaped by the first
// keyframe's easing rule. An empty timeline blends linearly.
func (tl *Timeline) blend(from, to, progress float64, override easing.Func) float64 {
	if len(tl.frames) == 0 {
		return from + progress*(to-from)
	}
	return from + tl.easeFor(0, override)(progress)*(to-from)
}

// VectorTimeline holds the X, Y and Z timelines of one transform kind.
type VectorTimeline struct {
	X, Y, Z Timeline
}

// Axis returns the timeline of one axis.
func (v *VectorTimeline) Axis(a Axis) *Timeline {
	switch a {
	case AxisY:
		return &v.Y
	case AxisZ:
		return &v.Z
	}
	return &v.X
}

// Active reports whether any axis has keyframes. Inactive kinds are left
// alone by the evaluator.
func (v *VectorTimeline) Active() bool {
	return v.X.HasKeyframes() || v.Y.HasKeyframes() || v.Z.HasKeyframes()
}

// TotalTime is the longest axis.
func (v *VectorTimeline) TotalTime() float64 {
	return max(v.X.TotalTime(), v.Y.TotalTime(), v.Z.TotalTime())
}

// pose computes the bone value of kind k at tick t over the rest pose. Rotation
// is additive to rest; position and scale are absolute. Empty axes keep rest.
func (v *VectorTimeline) pose(k Kind, t float64, override easing.Func, rest mgl32.Vec3) mgl32.Vec3 {
	out := rest
	for a := AxisX; a <= AxisZ; a++ {
		tl := v.Axis(a)
		if !tl.HasKeyframes() {
			continue
		}
		if k == Rotation {
			out[a] = rest[a] + float32(tl.RotationAt(t, a, override))
		} else {
			out[a] = float32(tl.ValueAt(t, override))
		}
	}
	return out
}

// blendPose moves each axis from from toward to with that axis' easing rule.
func (v *VectorTimeline) blendPose(from, to mgl32.Vec3, progress float64, override easing.Func) mgl32.Vec3 {
	var out mgl32.Vec3
	for a := AxisX; a <= AxisZ; a++ {
		out[a] = float32(v.Axis(a).blend(float64(from[a]), float64(to[a]), progress, override))
	}
	return out
}

// BoneAnimation is the per-bone part of an animation.
type BoneAnimation struct {
	Bone     string
	Rotation VectorTimeline
	Position VectorTimeline
	Scale    VectorTimeline
}

// Channel returns the timelines of kind k.
func (b *BoneAnimation) Channel(k Kind) *VectorTimeline {
	switch k {
	case Position:
		return &b.Position
	case Scale:
		return &b.Scale
	}
	return &b.Rotation
}

// TotalTime is the longest timeline of the bone.
func (b *BoneAnimation) TotalTime() float64 {
	return max(b.Rotation.TotalTime(), b.Position.TotalTime(), b.Scale.TotalTime())
}
