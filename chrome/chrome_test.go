package chrome

import (
	"testing"
	"time"

	"github.com/hearthframe/wisp/canvas"
	"github.com/hearthframe/wisp/commit"
	"github.com/hearthframe/wisp/dom"
	"github.com/hearthframe/wisp/font"
	"github.com/hearthframe/wisp/paint"
	"github.com/hearthframe/wisp/tab"
)

func newTestWindow() *Window {
	return New(tab.New(Width, Height, font.NewStubLibrary(8)))
}

func TestLayoutIsFixedRegardlessOfInput(t *testing.T) {
	w := newTestWindow()
	gotW, gotH := w.Layout(1920, 1080)
	if gotW != Width || gotH != Height {
		t.Fatalf("got %dx%d, want %dx%d", gotW, gotH, Width, Height)
	}
}

func TestPollCommitBuildsLayersFromNewSnapshot(t *testing.T) {
	w := newTestWindow()
	cmd := paint.NewDrawRect(paint.Rect{X: 0, Y: 0, Width: 10, Height: 10}, canvas.Color{A: 1})
	w.Box.Commit(&commit.Snapshot{DisplayList: []paint.Command{cmd}})

	w.pollCommit()
	if len(w.layers) != 1 {
		t.Fatalf("expected one layer, got %d", len(w.layers))
	}

	w.layers = nil
	w.pollCommit()
	if len(w.layers) != 0 {
		t.Fatal("expected no rebuild on a repeated Take with nothing new")
	}
}

func TestPollCommitSkipsRebuildOnSameDisplayList(t *testing.T) {
	w := newTestWindow()
	cmd := paint.NewDrawRect(paint.Rect{X: 0, Y: 0, Width: 10, Height: 10}, canvas.Color{A: 1})
	list := []paint.Command{cmd}
	w.Box.Commit(&commit.Snapshot{DisplayList: list})
	w.pollCommit()

	built := w.layers
	w.Box.Commit(&commit.Snapshot{DisplayList: list, ScrollOffset: 20})
	w.pollCommit()

	if len(w.layers) != len(built) || w.layers[0] != built[0] {
		t.Fatal("expected layers to be reused, not rebuilt, for a draw-only commit")
	}
}

func TestTickAnimationArmsThenSchedulesAfterInterval(t *testing.T) {
	w := newTestWindow()
	w.lastSnap = &commit.Snapshot{NeedsAnimationFrame: true}

	w.tickAnimation()
	if !w.animationArmed {
		t.Fatal("expected first tick to arm the timer")
	}

	w.animationArmedAt = w.animationArmedAt.Add(-time.Second)
	w.tickAnimation()
	if w.animationArmed {
		t.Fatal("expected the timer to fire and disarm once the interval elapsed")
	}
}

func TestTickAnimationDisarmsWhenNoLongerNeeded(t *testing.T) {
	w := newTestWindow()
	w.lastSnap = &commit.Snapshot{NeedsAnimationFrame: true}
	w.tickAnimation()

	w.lastSnap = &commit.Snapshot{NeedsAnimationFrame: false}
	w.tickAnimation()
	if w.animationArmed {
		t.Fatal("expected a commit with no pending animations to disarm the timer")
	}
}

func TestBackspaceFocusedTrimsLastRune(t *testing.T) {
	w := newTestWindow()
	input := dom.NewElement("input")
	input.SetAttribute("value", "abc")
	w.Tab.Focus = input
	w.Tab.Document = input

	backspaceFocused(w.Tab)

	got, _ := input.GetAttribute("value")
	if got != "ab" {
		t.Fatalf("got %q, want %q", got, "ab")
	}
}

func TestBackspaceFocusedOnNonInputIsNoop(t *testing.T) {
	w := newTestWindow()
	div := dom.NewElement("div")
	w.Tab.Focus = div

	backspaceFocused(w.Tab) // must not panic
}
