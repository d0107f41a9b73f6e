package armature

import (
	"fmt"
	"time"
	"weak"
)

// Animator drives every animation channel of one animated object. It holds
// its owner weakly: once the owner has been collected, every controller
// behaves as if stopped.
type Animator[T any] struct {
	owner         weak.Pointer[T]
	tree          BoneTree
	lib           Library[T]
	controllers   []*Controller[T]
	resetDuration float64
	firstTick     float64
	started       bool
	debug         bool
}

// NewAnimator creates an Animator for owner posing the bones of tree and
// resolving animation names through lib.
func NewAnimator[T any](owner *T, tree BoneTree, lib Library[T]) *Animator[T] {
	return &Animator[T]{
		owner:         weak.Make(owner),
		tree:          tree,
		lib:           lib,
		resetDuration: 1,
	}
}

// Owner returns the animated object, or nil once it has been collected.
func (a *Animator[T]) Owner() *T { return a.owner.Value() }

func (a *Animator[T]) Tree() BoneTree         { return a.tree }
func (a *Animator[T]) Library() Library[T]    { return a.lib }
func (a *Animator[T]) ResetDuration() float64 { return a.resetDuration }

// FirstTick is the render time of the first Tick call.
func (a *Animator[T]) FirstTick() float64 { return a.firstTick }

// SetResetDuration sets how many ticks idle bone components take to return to
// rest. Negative values are treated as 0.
func (a *Animator[T]) SetResetDuration(ticks float64) {
	a.resetDuration = max(ticks, 0)
}

// AddController registers a new channel. Channels run in registration order.
// It panics if the name is empty or already taken.
func (a *Animator[T]) AddController(cfg ControllerConfig[T]) *Controller[T] {
	if cfg.Name == "" {
		panic("armature: controller name must not be empty")
	}
	if _, dup := a.Controller(cfg.Name); dup {
		panic(fmt.Sprintf("armature: duplicate controller %q", cfg.Name))
	}
	c := newController(a, cfg)
	a.controllers = append(a.controllers, c)
	return c
}

// Controller returns the channel named name.
func (a *Animator[T]) Controller(name string) (*Controller[T], bool) {
	for _, c := range a.controllers {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// Controllers returns the channels in registration order. The slice must not
// be modified.
func (a *Animator[T]) Controllers() []*Controller[T] { return a.controllers }

// Bone looks up a bone of the tree by name.
func (a *Animator[T]) Bone(name string) (Bone, bool) {
	return a.tree.BoneByName(name)
}

// Tick runs one frame: every bone's tracker begins the frame, each channel
// processes in order, then idle components decay. ev may be nil. The first
// channel error is returned after the frame has been closed.
func (a *Animator[T]) Tick(renderTime float64, ev *Event[T], eval QueryEvaluator) error {
	if !a.started {
		a.firstTick = renderTime
		a.started = true
	}
	var stats debugStats
	var mark time.Time
	if a.debug {
		mark = time.Now()
	}
	bones := a.tree.AllBones()
	for _, b := range bones {
		b.Tracker().BeginFrame()
	}
	if a.debug {
		stats.beginTime, mark = time.Since(mark), time.Now()
	}
	var firstErr error
	for _, c := range a.controllers {
		if err := c.Process(a.tree, renderTime, ev, eval); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("armature: controller %q: %w", c.name, err)
		}
	}
	if a.debug {
		stats.processTime, mark = time.Since(mark), time.Now()
	}
	for _, b := range bones {
		b.Tracker().EndFrame(b, renderTime, a.resetDuration)
	}
	if a.debug {
		stats.resetTime = time.Since(mark)
		a.collect(&stats, bones)
		a.debugLog(stats)
	}
	return firstErr
}
