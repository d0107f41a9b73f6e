package expr

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/Knetic/govaluate.v3"
)

const pi = math.Pi

// mathFunctions is the math.* table. Trigonometry takes degrees, matching the
// authoring tool.
func mathFunctions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		"math_sin":   unary(func(x float64) float64 { return math.Sin(mgl64.DegToRad(x)) }),
		"math_cos":   unary(func(x float64) float64 { return math.Cos(mgl64.DegToRad(x)) }),
		"math_abs":   unary(math.Abs),
		"math_sqrt":  unary(math.Sqrt),
		"math_floor": unary(math.Floor),
		"math_ceil":  unary(math.Ceil),
		"math_round": unary(math.Round),
		"math_trunc": unary(math.Trunc),
		"math_exp":   unary(math.Exp),
		"math_ln":    unary(math.Log),
		"math_min":   binary(math.Min),
		"math_max":   binary(math.Max),
		"math_pow":   binary(math.Pow),
		"math_mod":   binary(math.Mod),
		"math_clamp": ternary(mgl64.Clamp),
		"math_lerp": ternary(func(a, b, t float64) float64 {
			return a + t*(b-a)
		}),
	}
}

func floats(name string, want int, args []interface{}) ([]float64, error) {
	if len(args) != want {
		return nil, fmt.Errorf("expr: %s takes %d arguments, got %d", name, want, len(args))
	}
	out := make([]float64, want)
	for i, a := range args {
		f, ok := a.(float64)
		if !ok {
			return nil, fmt.Errorf("expr: %s argument %d is %T, want number", name, i, a)
		}
		out[i] = f
	}
	return out, nil
}

func unary(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		v, err := floats("unary function", 1, args)
		if err != nil {
			return nil, err
		}
		return fn(v[0]), nil
	}
}

func binary(fn func(a, b float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		v, err := floats("binary function", 2, args)
		if err != nil {
			return nil, err
		}
		return fn(v[0], v[1]), nil
	}
}

func ternary(fn func(a, b, c float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		v, err := floats("ternary function", 3, args)
		if err != nil {
			return nil, err
		}
		return fn(v[0], v[1], v[2]), nil
	}
}
