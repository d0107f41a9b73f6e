package armature

import (
	"log"
	"slices"

	"github.com/phanxgames/armature/easing"
)

// State is the playback state of a Controller.
type State uint8

const (
	// Stopped means nothing is playing or queued.
	Stopped State = iota
	// Transitioning blends from the pose held when the transition began
	// toward the first frame of the next animation.
	Transitioning
	// Running plays the current animation.
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Transitioning:
		return "transitioning"
	case Running:
		return "running"
	}
	return "unknown"
}

// LoopMode overrides an animation's own loop flag for one request.
type LoopMode uint8

const (
	LoopDefault LoopMode = iota
	LoopOnce
	LoopForever
)

func (m LoopMode) resolve(def bool) bool {
	switch m {
	case LoopOnce:
		return false
	case LoopForever:
		return true
	}
	return def
}

// Request names one animation to queue.
type Request struct {
	Name string
	Loop LoopMode
}

// Play requests name with its own loop flag.
func Play(name string) Request { return Request{Name: name} }

// PlayOnce requests name without looping.
func PlayOnce(name string) Request { return Request{Name: name, Loop: LoopOnce} }

// PlayLoop requests name looping forever.
func PlayLoop(name string) Request { return Request{Name: name, Loop: LoopForever} }

// Decision is a predicate's answer for one frame.
type Decision struct {
	stop     bool
	requests []Request
}

// Continue keeps playing. With requests it asks for that queue; repeating the
// previous frame's queue is a no-op. With no requests the current plan is
// kept.
func Continue(reqs ...Request) Decision { return Decision{requests: reqs} }

// StopAnimation stops the controller.
func StopAnimation() Decision { return Decision{stop: true} }

// Predicate decides, once per frame, what a controller should play.
type Predicate[T any] func(c *Controller[T], ev *Event[T]) Decision

// QueryEvaluator receives the named clock values a controller publishes each
// frame before it evaluates keyframes. *expr.Env satisfies it.
type QueryEvaluator interface {
	SetValue(name string, v float64)
}

// Published query names and the tick rate used to convert ticks to seconds.
const (
	QueryAnimTime  = "query.anim_time"
	QueryLifeTime  = "query.life_time"
	TicksPerSecond = 20
)

// ControllerConfig configures a Controller.
type ControllerConfig[T any] struct {
	// Name identifies the controller on its Animator. Required and unique.
	Name string
	// TransitionLength is the blend time in ticks into each animation.
	// Negative values are treated as 0.
	TransitionLength float64
	// Predicate picks the animations to play. Nil keeps whatever was set with
	// SetAnimation.
	Predicate Predicate[T]
	// EaseOverride replaces the easing of keyframes whose easing is Custom.
	EaseOverride easing.Func
	// Listeners for event keyframes.
	OnSound       Listener[T, string]
	OnParticle    Listener[T, Particle]
	OnInstruction Listener[T, []string]
	// Logger receives lookup failures. Defaults to log.Default().
	Logger *log.Logger
}

type queuedEntry struct {
	anim *Animation
	loop bool
}

// transitionTarget is the animation being blended in and the pose each of its
// bones had when the transition began.
type transitionTarget struct {
	entry  queuedEntry
	bones  []boundBone
	before []Snapshot
}

// Controller plays one channel of animations on an Animator's bones. It is
// not safe for concurrent use.
type Controller[T any] struct {
	name             string
	animator         *Animator[T]
	transitionLength float64
	predicate        Predicate[T]
	override         easing.Func
	logger           *log.Logger

	onSound       Listener[T, string]
	onParticle    Listener[T, Particle]
	onInstruction Listener[T, []string]
	dispatch      Dispatch

	state       State
	queue       []queuedEntry
	current     *RunningAnimation
	target      *transitionTarget
	tickOffset  float64
	lastRequest []Request
	// failedRequest is the last request none of whose names resolved.
	failedRequest []Request
	needsReload bool

	// owner is held strongly only while Process runs.
	owner *T
}

func newController[T any](a *Animator[T], cfg ControllerConfig[T]) *Controller[T] {
	c := &Controller[T]{
		name:             cfg.Name,
		animator:         a,
		transitionLength: max(cfg.TransitionLength, 0),
		predicate:        cfg.Predicate,
		override:         cfg.EaseOverride,
		logger:           cfg.Logger,
		onSound:          cfg.OnSound,
		onParticle:       cfg.OnParticle,
		onInstruction:    cfg.OnInstruction,
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	c.dispatch = Dispatch{
		Sound: func(tick float64, name string) {
			if c.onSound != nil {
				c.onSound(KeyframeEvent[T, string]{Owner: c.owner, Tick: tick, Payload: name, Controller: c})
			}
		},
		Particle: func(tick float64, p Particle) {
			if c.onParticle != nil {
				c.onParticle(KeyframeEvent[T, Particle]{Owner: c.owner, Tick: tick, Payload: p, Controller: c})
			}
		},
		Instruction: func(tick float64, lines []string) {
			if c.onInstruction != nil {
				c.onInstruction(KeyframeEvent[T, []string]{Owner: c.owner, Tick: tick, Payload: lines, Controller: c})
			}
		},
	}
	return c
}

func (c *Controller[T]) Name() string              { return c.name }
func (c *Controller[T]) State() State              { return c.state }
func (c *Controller[T]) Animator() *Animator[T]    { return c.animator }
func (c *Controller[T]) TransitionLength() float64 { return c.transitionLength }
func (c *Controller[T]) QueueLen() int             { return len(c.queue) }

// OnSound, OnParticle and OnInstruction replace the configured listeners.
func (c *Controller[T]) OnSound(fn Listener[T, string])         { c.onSound = fn }
func (c *Controller[T]) OnParticle(fn Listener[T, Particle])    { c.onParticle = fn }
func (c *Controller[T]) OnInstruction(fn Listener[T, []string]) { c.onInstruction = fn }

// Owner returns the animated object, or nil once it has been collected.
func (c *Controller[T]) Owner() *T { return c.animator.Owner() }

// SetTransitionLength sets the blend time in ticks. Negative values are
// treated as 0.
func (c *Controller[T]) SetTransitionLength(ticks float64) {
	c.transitionLength = max(ticks, 0)
}

// Current returns the running animation, or nil while stopped or
// transitioning.
func (c *Controller[T]) Current() *RunningAnimation { return c.current }

// Target returns the animation being transitioned into, or nil.
func (c *Controller[T]) Target() *Animation {
	if c.target == nil {
		return nil
	}
	return c.target.entry.anim
}

// MarkNeedsReload makes the next request reload the queue even if it repeats
// the previous one.
func (c *Controller[T]) MarkNeedsReload() { c.needsReload = true }

// Stop halts playback at once and forgets the last request.
func (c *Controller[T]) Stop() {
	c.halt()
	c.lastRequest = nil
	c.failedRequest = nil
}

func (c *Controller[T]) halt() {
	c.state = Stopped
	c.queue = nil
	c.current = nil
	c.target = nil
}

// SetAnimation replaces the queue with reqs and transitions into its head from
// the current pose. Repeating the previous request is a no-op unless
// MarkNeedsReload was called. Names the library cannot resolve are logged and
// skipped; if none resolve, nothing changes and repeating that same request
// stays quiet until it changes or MarkNeedsReload is called.
func (c *Controller[T]) SetAnimation(reqs ...Request) {
	if len(reqs) == 0 {
		return
	}
	if !c.needsReload && (slices.Equal(reqs, c.lastRequest) || slices.Equal(reqs, c.failedRequest)) {
		return
	}
	owner := c.animator.Owner()
	if owner == nil {
		return
	}
	queue := make([]queuedEntry, 0, len(reqs))
	for _, r := range reqs {
		anim, ok := c.lookup(owner, r.Name)
		if !ok {
			c.logger.Printf("armature: controller %q: could not load animation %q", c.name, r.Name)
			continue
		}
		queue = append(queue, queuedEntry{anim: anim, loop: r.Loop.resolve(anim.Loop)})
	}
	if len(queue) == 0 {
		c.failedRequest = slices.Clone(reqs)
		c.needsReload = false
		return
	}
	c.failedRequest = nil
	c.queue = queue
	c.lastRequest = slices.Clone(reqs)
	c.needsReload = false
	c.current = nil
	c.target = nil
	c.state = Transitioning
}

func (c *Controller[T]) lookup(owner *T, name string) (*Animation, bool) {
	if c.animator.lib == nil {
		return nil, false
	}
	return c.animator.lib.Animation(owner, name)
}

// Process advances the controller to renderTime and poses the bones of tree.
// It returns an error when an animation names a bone the tree lacks; the
// controller is stopped in that case.
func (c *Controller[T]) Process(tree BoneTree, renderTime float64, ev *Event[T], eval QueryEvaluator) error {
	owner := c.animator.Owner()
	if owner == nil {
		c.Stop()
		return nil
	}
	c.owner = owner
	defer func() { c.owner = nil }()
	decision := Continue()
	if c.predicate != nil {
		if ev == nil {
			ev = NewEvent(owner)
		}
		decision = c.predicate(c, ev)
	}
	if decision.stop {
		c.Stop()
		return nil
	}
	c.SetAnimation(decision.requests...)

	if c.state == Transitioning {
		done, err := c.transition(tree, renderTime, eval)
		if err != nil || !done {
			return err
		}
	}
	if c.state == Running {
		return c.run(tree, renderTime, eval)
	}
	return nil
}

// transition blends toward the queue head and reports whether the controller
// switched to Running this frame.
func (c *Controller[T]) transition(tree BoneTree, renderTime float64, eval QueryEvaluator) (bool, error) {
	if c.target == nil {
		if len(c.queue) == 0 {
			c.halt()
			return false, nil
		}
		entry := c.queue[0]
		c.queue = c.queue[1:]
		bones, err := bindBones(entry.anim, tree)
		if err != nil {
			c.halt()
			return false, err
		}
		before := make([]Snapshot, len(bones))
		for i := range bones {
			before[i] = SaveSnapshot(bones[i].bone)
		}
		c.target = &transitionTarget{entry: entry, bones: bones, before: before}
		c.tickOffset = renderTime
	}

	tick := c.localTick(renderTime)
	if tick >= c.transitionLength {
		run := newRunning(c.target.entry.anim, c.target.entry.loop, c.target.bones, renderTime)
		c.current = run
		c.target = nil
		c.tickOffset = renderTime
		c.state = Running
		return true, nil
	}

	c.publish(eval, tick, renderTime)
	progress := tick / c.transitionLength
	for i := range c.target.bones {
		bb := &c.target.bones[i]
		rest := bb.bone.Rest()
		tracker := bb.bone.Tracker()
		for k := Kind(0); k < numKinds; k++ {
			ch := bb.anim.Channel(k)
			if !ch.Active() {
				continue
			}
			to := ch.pose(k, 0, c.override, rest.Component(k))
			from := c.target.before[i].Component(k)
			bb.bone.SetComponent(k, ch.blendPose(from, to, progress, c.override))
			tracker.Notify(k)
		}
	}
	return false, nil
}

func (c *Controller[T]) run(tree BoneTree, renderTime float64, eval QueryEvaluator) error {
	cur := c.current
	if cur.IsFinished(renderTime) {
		// Events between the last evaluated time and the end of the pass
		// still belong to it.
		cur.fire(cur.anim.Length, &c.dispatch)
		if cur.Loop() {
			cur.Wrap(renderTime)
			c.tickOffset = cur.StartTime()
		} else {
			c.current = nil
			if len(c.queue) == 0 {
				c.state = Stopped
				return nil
			}
			c.state = Transitioning
			done, err := c.transition(tree, renderTime, eval)
			if err != nil || !done {
				return err
			}
			cur = c.current
		}
	}
	c.publish(eval, cur.Tick(renderTime), renderTime)
	cur.Evaluate(renderTime, c.override, &c.dispatch)
	return nil
}

// localTick is the zero-based controller clock, never negative.
func (c *Controller[T]) localTick(renderTime float64) float64 {
	return max(renderTime-c.tickOffset, 0)
}

func (c *Controller[T]) publish(eval QueryEvaluator, tick, renderTime float64) {
	if eval == nil {
		return
	}
	eval.SetValue(QueryAnimTime, tick/TicksPerSecond)
	eval.SetValue(QueryLifeTime, (renderTime-c.animator.firstTick)/TicksPerSecond)
}
