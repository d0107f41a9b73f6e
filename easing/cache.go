package easing

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// ErrInvalidSteps is returned when a step curve is requested with fewer than
// two steps.
var ErrInvalidSteps = errors.New("easing: step count must be at least 2")

func errInvalidSteps(n int) error {
	return fmt.Errorf("%w, got %d", ErrInvalidSteps, n)
}

// cacheKey identifies one memoized curve. Only the first argument takes part;
// hasArg distinguishes "no argument" from an explicit zero.
type cacheKey struct {
	kind   Kind
	arg    float64
	hasArg bool
}

// cache holds built curves. Curves are pure, so concurrent builders racing on
// the same key produce interchangeable values.
var cache sync.Map // cacheKey -> Func

// Get returns the curve for kind with the optional parameter args[0].
// Results are memoized per (kind, parameter). Custom resolves to linear;
// callers that honor overrides check for Custom before calling Get. A NaN
// parameter is treated as absent.
func Get(kind Kind, args ...float64) (Func, error) {
	key := cacheKey{kind: kind}
	if len(args) > 0 && !math.IsNaN(args[0]) {
		key.arg, key.hasArg = args[0], true
	}
	if fn, ok := cache.Load(key); ok {
		return fn.(Func), nil
	}
	fn, err := build(key)
	if err != nil {
		return nil, err
	}
	actual, _ := cache.LoadOrStore(key, fn)
	return actual.(Func), nil
}

// Must is like Get but panics on an invalid parameter. Intended for static
// tables and tests.
func Must(kind Kind, args ...float64) Func {
	fn, err := Get(kind, args...)
	if err != nil {
		panic(err)
	}
	return fn
}

// Ease evaluates kind at t without keeping the function around.
func Ease(t float64, kind Kind, args ...float64) (float64, error) {
	fn, err := Get(kind, args...)
	if err != nil {
		return 0, err
	}
	return fn(t), nil
}

func build(k cacheKey) (Func, error) {
	switch k.kind {
	case Linear, Custom:
		return In(linear), nil
	case Step:
		return step(k.arg, k.hasArg)
	case InSine:
		return In(sine), nil
	case OutSine:
		return Out(sine), nil
	case InOutSine:
		return InOut(sine), nil
	case InQuad:
		return In(quad), nil
	case OutQuad:
		return Out(quad), nil
	case InOutQuad:
		return InOut(quad), nil
	case InCubic:
		return In(cubic), nil
	case OutCubic:
		return Out(cubic), nil
	case InOutCubic:
		return InOut(cubic), nil
	case InQuart:
		return In(quart), nil
	case OutQuart:
		return Out(quart), nil
	case InOutQuart:
		return InOut(quart), nil
	case InQuint:
		return In(quint), nil
	case OutQuint:
		return Out(quint), nil
	case InOutQuint:
		return InOut(quint), nil
	case InExpo:
		return In(expo), nil
	case OutExpo:
		return Out(expo), nil
	case InOutExpo:
		return InOut(expo), nil
	case InCirc:
		return In(circle), nil
	case OutCirc:
		return Out(circle), nil
	case InOutCirc:
		return InOut(circle), nil
	case InBack:
		return In(back(k.arg, k.hasArg)), nil
	case OutBack:
		return Out(back(k.arg, k.hasArg)), nil
	case InOutBack:
		return InOut(back(k.arg, k.hasArg)), nil
	case InElastic:
		return In(elastic(k.arg, k.hasArg)), nil
	case OutElastic:
		return Out(elastic(k.arg, k.hasArg)), nil
	case InOutElastic:
		return InOut(elastic(k.arg, k.hasArg)), nil
	case InBounce:
		return In(bounce(k.arg, k.hasArg)), nil
	case OutBounce:
		return Out(bounce(k.arg, k.hasArg)), nil
	case InOutBounce:
		return InOut(bounce(k.arg, k.hasArg)), nil
	default:
		return nil, fmt.Errorf("easing: unknown kind %d", k.kind)
	}
}
