// Package easing maps a normalized progress value in [0, 1] to an eased value.
//
// Every curve is a plain [Func]. Parameterized curves (step, back, elastic,
// bounce) are built once per (kind, argument) pair and memoized by [Get], so
// keyframes that share an easing share a single function value.
//
// The polynomial, sine and circle base curves come from [gween]'s ease
// package; any other gween curve can be adapted with [FromTween].
//
// [gween]: https://github.com/tanema/gween
package easing

import (
	"math"
	"strings"

	"github.com/tanema/gween/ease"
)

// Func maps linear progress t in [0, 1] to eased progress. Back, elastic and
// bounce curves may overshoot outside [0, 1].
type Func func(t float64) float64

// Kind selects an easing curve.
type Kind uint8

const (
	Linear Kind = iota
	Step
	InSine
	OutSine
	InOutSine
	InQuad
	OutQuad
	InOutQuad
	InCubic
	OutCubic
	InOutCubic
	InQuart
	OutQuart
	InOutQuart
	InQuint
	OutQuint
	InOutQuint
	InExpo
	OutExpo
	InOutExpo
	InCirc
	OutCirc
	InOutCirc
	InBack
	OutBack
	InOutBack
	InElastic
	OutElastic
	InOutElastic
	InBounce
	OutBounce
	InOutBounce
	// Custom asks the evaluator to use the caller-supplied override curve.
	Custom
)

var kindNames = [...]string{
	Linear:       "linear",
	Step:         "step",
	InSine:       "easeInSine",
	OutSine:      "easeOutSine",
	InOutSine:    "easeInOutSine",
	InQuad:       "easeInQuad",
	OutQuad:      "easeOutQuad",
	InOutQuad:    "easeInOutQuad",
	InCubic:      "easeInCubic",
	OutCubic:     "easeOutCubic",
	InOutCubic:   "easeInOutCubic",
	InQuart:      "easeInQuart",
	OutQuart:     "easeOutQuart",
	InOutQuart:   "easeInOutQuart",
	InQuint:      "easeInQuint",
	OutQuint:     "easeOutQuint",
	InOutQuint:   "easeInOutQuint",
	InExpo:       "easeInExpo",
	OutExpo:      "easeOutExpo",
	InOutExpo:    "easeInOutExpo",
	InCirc:       "easeInCirc",
	OutCirc:      "easeOutCirc",
	InOutCirc:    "easeInOutCirc",
	InBack:       "easeInBack",
	OutBack:      "easeOutBack",
	InOutBack:    "easeInOutBack",
	InElastic:    "easeInElastic",
	OutElastic:   "easeOutElastic",
	InOutElastic: "easeInOutElastic",
	InBounce:     "easeInBounce",
	OutBounce:    "easeOutBounce",
	InOutBounce:  "easeInOutBounce",
	Custom:       "custom",
}

// String returns the authoring-tool name of the kind, e.g. "easeInOutQuad".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind resolves an authoring-tool easing name. Matching ignores case.
// Unknown names report false.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), true
		}
	}
	return Linear, false
}

// Spec is an easing selection as stored on a keyframe: a kind plus its
// optional parameters. Only the first argument is meaningful today.
type Spec struct {
	Kind Kind
	Args []float64
}

// Func resolves s through the memoized cache.
func (s Spec) Func() (Func, error) {
	return Get(s.Kind, s.Args...)
}

// In runs a curve forwards.
func In(f Func) Func {
	return f
}

// Out runs a curve backwards: 1 - f(1-t).
func Out(f Func) Func {
	return func(t float64) float64 {
		return 1 - f(1-t)
	}
}

// InOut makes a curve symmetrical: forwards for the first half, backwards for
// the second.
func InOut(f Func) Func {
	return func(t float64) float64 {
		if t < 0.5 {
			return f(t*2) / 2
		}
		return 1 - f((1-t)*2)/2
	}
}

// FromTween adapts a gween curve, evaluated over begin 0, change 1 and
// duration 1. Precision is float32.
func FromTween(fn ease.TweenFunc) Func {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// --- base curves ---

func linear(t float64) float64 { return t }

var (
	sine   = FromTween(ease.InSine)
	quad   = FromTween(ease.InQuad)
	cubic  = FromTween(ease.InCubic)
	quart  = FromTween(ease.InQuart)
	quint  = FromTween(ease.InQuint)
	circle = FromTween(ease.InCirc)
)

const backDef = 1.70158

// expo is 2^(10(t-1)). gween's InExpo subtracts a small bias, which would
// shift every authored expo keyframe, so it is computed here.
func expo(t float64) float64 {
	return math.Pow(2, 10*(t-1))
}

// back pulls slightly backwards before moving forward. overshoot scales the
// default 1.70158 factor.
func back(overshoot float64, ok bool) Func {
	p := backDef
	if ok {
		p = overshoot * backDef
	}
	return func(t float64) float64 {
		return t * t * ((p+1)*t - p)
	}
}

// elastic oscillates like a spring. Bounciness 1 overshoots once; N > 1
// overshoots about N times.
func elastic(bounciness float64, ok bool) Func {
	if !ok {
		bounciness = 1
	}
	p := bounciness * math.Pi
	return func(t float64) float64 {
		c := math.Cos(t * math.Pi / 2)
		return 1 - c*c*c*math.Cos(t*p)
	}
}

// bounce is the lower envelope of four parabolas; k controls how high each
// rebound goes.
func bounce(k float64, ok bool) Func {
	if !ok {
		k = 0.5
	}
	return func(x float64) float64 {
		q := (121.0 / 16.0) * x * x
		w := ((121.0/4.0)*k)*math.Pow(x-(6.0/11.0), 2) + 1 - k
		r := 121*k*k*math.Pow(x-(9.0/11.0), 2) + 1 - k*k
		s := 484*k*k*k*math.Pow(x-(10.5/11.0), 2) + 1 - k*k*k
		return min(q, w, r, s)
	}
}

// step quantizes progress into n equal plateaus starting at 0.
func step(n float64, ok bool) (Func, error) {
	steps := 2
	if ok {
		steps = int(n)
	}
	if steps < 2 {
		return nil, errInvalidSteps(steps)
	}
	intervals := make([]float64, steps)
	for i := range intervals {
		intervals[i] = float64(i) / float64(steps)
	}
	return func(t float64) float64 {
		return intervals[leftBorder(t, intervals)]
	}, nil
}

// leftBorder bisects intervals for the left border of the interval holding
// point. Points outside the range clamp to the first or last border.
func leftBorder(point float64, intervals []float64) int {
	last := len(intervals) - 1
	if point < intervals[0] {
		return 0
	}
	if point > intervals[last] {
		return last
	}
	left, right := 0, last
	for right-left > 1 {
		mid := left + (right-left)/2
		if point >= intervals[mid] {
			left = mid
		} else {
			right = mid
		}
	}
	if point >= intervals[right] {
		return right
	}
	return left
}
