// Package commit holds the snapshot a tab's worker goroutine hands off to
// the UI thread: everything the UI needs to draw a frame without touching
// the tab's own document/layout/paint state directly. Grounded on
// commit.py (a near-empty scaffold in the original source) and spec §4.J/
// §5's "single lock... tab thread never blocks on the UI" description.
package commit

import (
	"sync"

	"github.com/hearthframe/wisp/paint"
)

// Snapshot is one committed frame's worth of UI-thread input.
type Snapshot struct {
	URL          string
	ScrollOffset float64
	Height       float64
	DisplayList  []paint.Command

	// CompositedUpdates carries draw-only opacity changes queued by an
	// animation frame since the last full paint, keyed by dom node id.
	CompositedUpdates map[uint64]float64

	// NeedsAnimationFrame reports whether the document still has an
	// active transition, the tab-thread's answer to spec §5's
	// "schedule_animation_frame sets an armed timer iff
	// needs_animation_frame"; the UI thread cannot read the document
	// directly to compute this itself.
	NeedsAnimationFrame bool

	FocusedInputRect *paint.Rect
}

// Box is a single-slot, mutex-guarded handoff point: the tab's worker
// goroutine calls Commit to publish a new Snapshot, the UI thread calls
// Take to consume the latest one. Neither side blocks on the other,
// matching spec §5's single-lock, non-blocking commit description.
type Box struct {
	mu   sync.Mutex
	cur  *Snapshot
	seen bool
}

// Commit publishes snap as the latest snapshot, replacing whatever was
// there before.
func (b *Box) Commit(snap *Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cur = snap
	b.seen = false
}

// Take returns the latest committed snapshot and whether a new one has
// arrived since the last Take (so the UI thread can skip redundant work
// when nothing changed).
func (b *Box) Take() (snap *Snapshot, isNew bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	isNew = b.cur != nil && !b.seen
	b.seen = true
	return b.cur, isNew
}
