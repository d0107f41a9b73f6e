// Package expr evaluates keyframe values written as formulas.
//
// An [Env] is the named-query table an animation controller pushes its
// per-frame clocks into (query.anim_time, query.life_time, ...). Formulas
// compiled against it with [Env.Compile] read those values each time they are
// sampled, so a keyframe can follow a live query instead of a fixed number.
//
// Formulas use the authoring tool's dotted names (query.anim_time,
// variable.speed, math.sin(...)); they are rewritten into [govaluate] syntax
// at compile time. Unknown names evaluate to 0.
//
// [govaluate]: https://github.com/Knetic/govaluate
package expr

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/Knetic/govaluate.v3"
)

// ErrNotNumeric is returned when a formula evaluates to something other than
// a number or a boolean.
var ErrNotNumeric = errors.New("expr: formula result is not numeric")

var (
	dottedName = regexp.MustCompile(`(?i)\b(query|variable|temp|context)\.[a-z_][a-z0-9_]*`)
	mathCall   = regexp.MustCompile(`(?i)\bmath\.([a-z_]+)\s*\(`)
	mathPi     = regexp.MustCompile(`(?i)\bmath\.pi\b`)
)

// Env holds named scalar values. It is not safe for concurrent use; each
// animated object owns its own Env.
type Env struct {
	values    map[string]float64
	functions map[string]govaluate.ExpressionFunction
	logger    *log.Logger
}

// NewEnv returns an empty Env with the math.* function table installed.
func NewEnv() *Env {
	return &Env{
		values:    make(map[string]float64),
		functions: mathFunctions(),
		logger:    log.Default(),
	}
}

// SetLogger sets where formula evaluation failures are reported. Nil
// restores log.Default().
func (e *Env) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	e.logger = l
}

// SetValue stores v under name. Names are case-insensitive.
func (e *Env) SetValue(name string, v float64) {
	e.values[strings.ToLower(name)] = v
}

// Value returns the value stored under name.
func (e *Env) Value(name string) (float64, bool) {
	v, ok := e.values[strings.ToLower(name)]
	return v, ok
}

// Get implements govaluate.Parameters. Missing names read as 0.
func (e *Env) Get(name string) (interface{}, error) {
	return e.values[strings.ToLower(name)], nil
}

// Compile parses src into an Expression bound to e.
func (e *Env) Compile(src string) (*Expression, error) {
	rewritten := rewrite(src)
	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(rewritten, e.functions)
	if err != nil {
		return nil, fmt.Errorf("expr: compile %q: %w", src, err)
	}
	return &Expression{env: e, src: src, parsed: parsed}, nil
}

// MustCompile is like Compile but panics on a syntax error.
func (e *Env) MustCompile(src string) *Expression {
	x, err := e.Compile(src)
	if err != nil {
		panic(err)
	}
	return x
}

// rewrite turns dotted names into bracketed govaluate variables and math.*
// calls into the registered math_* functions.
func rewrite(src string) string {
	out := mathPi.ReplaceAllString(src, strconv.FormatFloat(pi, 'g', -1, 64))
	out = mathCall.ReplaceAllStringFunc(out, func(m string) string {
		sub := mathCall.FindStringSubmatch(m)
		return "math_" + strings.ToLower(sub[1]) + "("
	})
	return dottedName.ReplaceAllStringFunc(out, func(m string) string {
		return "[" + strings.ToLower(m) + "]"
	})
}

// Expression is a compiled formula. It satisfies the keyframe value contract
// (Get() float64) and is re-evaluated on every call.
type Expression struct {
	env      *Env
	src      string
	parsed   *govaluate.EvaluableExpression
	reported bool
}

// Eval evaluates the formula against its Env.
func (x *Expression) Eval() (float64, error) {
	res, err := x.parsed.Eval(x.env)
	if err != nil {
		return 0, fmt.Errorf("expr: evaluate %q: %w", x.src, err)
	}
	switch v := res.(type) {
	case float64:
		return v, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %q gave %T", ErrNotNumeric, x.src, res)
	}
}

// Get returns the current value, or 0 when evaluation fails. The first
// failure of each expression is logged through its Env.
func (x *Expression) Get() float64 {
	v, err := x.Eval()
	if err != nil {
		if !x.reported {
			x.reported = true
			x.env.logger.Printf("%v", err)
		}
		return 0
	}
	return v
}

// String returns the source formula.
func (x *Expression) String() string {
	return x.src
}

// Vars lists the variables the formula reads, in rewritten form.
func (x *Expression) Vars() []string {
	return x.parsed.Vars()
}
