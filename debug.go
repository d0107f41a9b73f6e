package armature

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds one frame's timing and pose counts.
// Only populated when the Animator is in debug mode.
type debugStats struct {
	beginTime   time.Duration
	processTime time.Duration
	resetTime   time.Duration
	bones       int
	running     int
	transitions int
	decaying    int
}

// SetDebugMode enables per-frame timing output on stderr.
func (a *Animator[T]) SetDebugMode(on bool) { a.debug = on }

// debugLog prints timing and pose stats to stderr.
func (a *Animator[T]) debugLog(stats debugStats) {
	if !a.debug {
		return
	}
	total := stats.beginTime + stats.processTime + stats.resetTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[armature] begin: %v | process: %v | reset: %v | total: %v\n",
		stats.beginTime, stats.processTime, stats.resetTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[armature] bones: %d | running: %d | transitioning: %d | decaying: %d\n",
		stats.bones, stats.running, stats.transitions, stats.decaying)
}

// collect fills in the counts of stats after a frame has closed.
func (a *Animator[T]) collect(stats *debugStats, bones []Bone) {
	stats.bones = len(bones)
	for _, c := range a.controllers {
		switch c.state {
		case Running:
			stats.running++
		case Transitioning:
			stats.transitions++
		}
	}
	for _, b := range bones {
		tr := b.Tracker()
		for k := Kind(0); k < numKinds; k++ {
			if tr.Decaying(k) {
				stats.decaying++
			}
		}
	}
}
