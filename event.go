package armature

// Event is the per-frame context handed to a controller's predicate.
type Event[T any] struct {
	Owner *T
	// LimbSwing and LimbSwingAmount describe the owner's walk cycle.
	LimbSwing       float64
	LimbSwingAmount float64
	// PartialTick is the fraction of a tick elapsed since the last whole tick.
	PartialTick float64
	Moving      bool
	// Extra carries host-specific data.
	Extra []any
}

// NewEvent returns an Event for owner with no motion data.
func NewEvent[T any](owner *T) *Event[T] {
	return &Event[T]{Owner: owner}
}

// ExtraOfType returns the entries of ev.Extra that have type D.
func ExtraOfType[D, T any](ev *Event[T]) []D {
	var out []D
	for _, x := range ev.Extra {
		if d, ok := x.(D); ok {
			out = append(out, d)
		}
	}
	return out
}

// KeyframeEvent is delivered to listeners when an event keyframe fires. Tick
// is the animation time at which it fired.
type KeyframeEvent[T, P any] struct {
	Owner      *T
	Tick       float64
	Payload    P
	Controller *Controller[T]
}

// Listener handles one kind of keyframe event.
type Listener[T, P any] func(KeyframeEvent[T, P])
