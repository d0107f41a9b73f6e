package armature

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ResetTracker records which transform kinds of a bone were written during a
// frame and glides the others back to rest. Each bone owns one.
//
// The Animator calls BeginFrame on every bone before any channel runs and
// EndFrame after all of them, so idle detection sees the union of every
// channel's writes.
type ResetTracker struct {
	kinds [numKinds]componentTrack
}

type componentTrack struct {
	changed     bool
	changedLast bool
	driven      bool // written at least once
	idleStart   float64
	decaying    bool
	decay       [3]*gween.Tween
}

// BeginFrame shifts this frame's flags into last frame's.
func (r *ResetTracker) BeginFrame() {
	for i := range r.kinds {
		c := &r.kinds[i]
		c.changedLast = c.changed
		c.changed = false
	}
}

// Notify marks kind k as written this frame and cancels any decay in progress.
func (r *ResetTracker) Notify(k Kind) {
	c := &r.kinds[k]
	c.changed = true
	c.driven = true
	c.decaying = false
}

// Changed reports whether k was written this frame.
func (r *ResetTracker) Changed(k Kind) bool { return r.kinds[k].changed }

// Idle reports whether k was driven before but not this frame.
func (r *ResetTracker) Idle(k Kind) bool {
	c := &r.kinds[k]
	return c.driven && !c.changed
}

// Decaying reports whether k is gliding back to rest.
func (r *ResetTracker) Decaying(k Kind) bool { return r.kinds[k].decaying }

// EndFrame decays every kind that was not written this frame. A kind that
// just went idle captures its current value at renderTime and then reaches
// the rest value linearly after duration ticks. Kinds that were never written
// are left untouched.
func (r *ResetTracker) EndFrame(b Bone, renderTime, duration float64) {
	for i := range r.kinds {
		k := Kind(i)
		c := &r.kinds[i]
		if c.changed || !c.driven {
			continue
		}
		rest := b.Rest().Component(k)
		if c.changedLast {
			c.start(b.Component(k), rest, renderTime, duration)
		}
		if !c.decaying {
			continue
		}
		if duration <= 0 {
			b.SetComponent(k, rest)
			c.decaying = false
			continue
		}
		var v mgl32.Vec3
		done := true
		elapsed := float32(renderTime - c.idleStart)
		for a, tw := range c.decay {
			cur, finished := tw.Set(elapsed)
			v[a] = cur
			done = done && finished
		}
		b.SetComponent(k, v)
		if done {
			c.decaying = false
		}
	}
}

func (c *componentTrack) start(stale, rest mgl32.Vec3, now, duration float64) {
	c.idleStart = now
	c.decaying = true
	for a := range c.decay {
		c.decay[a] = gween.New(stale[a], rest[a], float32(duration), ease.Linear)
	}
}
