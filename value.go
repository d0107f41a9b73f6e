package armature

// Value is a keyframe endpoint. It is read every time the keyframe is sampled,
// so implementations backed by live queries (see the expr package) follow
// their inputs from frame to frame.
type Value interface {
	Get() float64
}

// Constant is an already-resolved value. Rotation timelines use it as-is and
// skip the degree conversion applied to authored data.
type Constant float64

// Get returns c.
func (c Constant) Get() float64 { return float64(c) }

// Authored is a raw number from the authoring tool. Rotation values of this
// type are in degrees.
type Authored float64

// Get returns a.
func (a Authored) Get() float64 { return float64(a) }

// isConstant reports whether v must bypass rotation unit conversion.
func isConstant(v Value) bool {
	_, ok := v.(Constant)
	return ok
}
