// Package chrome wires a tab to an Ebitengine window: the fixed 800x600
// game shell that polls input once per frame, drives the tab's worker
// goroutine through a task queue, and composites/rasters/draws whatever
// the tab last committed. Grounded on willow's scene.go gameShell/Run
// (Update/Draw/Layout split, ebiten.RunGame entry point), generalized
// from a scene-graph frame loop to the two-thread tab/UI split of
// spec §5.
package chrome

import (
	"fmt"
	"image/color"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/hearthframe/wisp/canvas"
	"github.com/hearthframe/wisp/commit"
	"github.com/hearthframe/wisp/compositor"
	"github.com/hearthframe/wisp/metrics"
	"github.com/hearthframe/wisp/paint"
	"github.com/hearthframe/wisp/report"
	"github.com/hearthframe/wisp/style"
	"github.com/hearthframe/wisp/tab"
	"github.com/hearthframe/wisp/taskqueue"
	"github.com/hearthframe/wisp/trace"
	"github.com/hearthframe/wisp/weburl"
)

// Width and Height are the window's fixed device-independent size (spec
// §6's "a single window fixed at 800x600").
const (
	Width  = 800
	Height = 600
)

// Window implements ebiten.Game, owning one active Tab plus the UI-side
// compositor state: the last committed display list flattened into
// layers, the surface pool those layers raster into, and the commit box
// the tab worker publishes frames through.
type Window struct {
	Tab   *tab.Tab
	Tasks *taskqueue.Queue
	Box   *commit.Box

	Trace   *trace.Writer
	Metrics *metrics.Metrics
	Report  *report.Reporter

	pool     *compositor.SurfacePool
	layers   []*compositor.Layer
	lastSnap *commit.Snapshot
	quit     bool

	// animationArmed/animationArmedAt implement spec §5's armed
	// animation-frame timer: set when a commit reports
	// NeedsAnimationFrame, cleared once that commit's animations are
	// all done, and fired at most once every style.RefreshRateSeconds.
	animationArmed   bool
	animationArmedAt time.Time
}

// New builds a Window around an already-constructed Tab, starting its
// worker goroutine.
func New(t *tab.Tab) *Window {
	w := &Window{
		Tab:   t,
		Tasks: taskqueue.New(),
		Box:   &commit.Box{},
		pool:  compositor.NewSurfacePool(),
	}
	go w.Tasks.Run()
	return w
}

// Open schedules the initial navigation task, matching tab.py's browser
// startup calling load() on the requested URL before the event loop
// starts.
func (w *Window) Open(u weburl.URL) {
	w.Tasks.Schedule(func() {
		if err := w.Tab.Load(u, nil); err != nil {
			if w.Report != nil {
				w.Report.CaptureScriptError(err, u.String())
			}
			return
		}
		w.commit()
	})
}

// commit builds a Snapshot from the tab's current render state and
// publishes it, the tab-worker side of spec §4.J's commit channel.
func (w *Window) commit() {
	snap := &commit.Snapshot{
		URL:                 w.Tab.URL.String(),
		ScrollOffset:        w.Tab.ScrollOffset,
		Height:              heightOf(w.Tab),
		DisplayList:         w.Tab.DisplayList,
		CompositedUpdates:   w.Tab.Driver.CompositedUpdates,
		NeedsAnimationFrame: w.Tab.HasPendingAnimations(),
	}
	w.Box.Commit(snap)
}

func heightOf(t *tab.Tab) float64 {
	if t.DocumentLayout == nil {
		return 0
	}
	return t.DocumentLayout.Height
}

// Update polls input and feeds it to the tab's task queue as scheduled
// work, matching gameShell.Update's per-tick delegation and spec §6's
// fixed event set (quit, mouse-up, key-down, text-input).
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.quit = true
	}
	if w.quit {
		w.Tasks.Quit()
		return ebiten.Termination
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		fx, fy := float64(x), float64(y+int(w.Tab.ScrollOffset))
		w.Tasks.Schedule(func() {
			if err := w.Tab.Click(fx, fy); err != nil && w.Report != nil {
				w.Report.CaptureScriptError(err, w.Tab.URL.String())
			}
			w.commit()
		})
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		w.Tasks.Schedule(func() {
			w.Tab.ScrollDown()
			w.commit()
		})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		w.Tasks.Schedule(func() {
			w.Tab.ScrollUp()
			w.commit()
		})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		w.Tasks.Schedule(func() {
			backspaceFocused(w.Tab)
			w.commit()
		})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		w.Tasks.Schedule(func() {
			if err := w.Tab.GoBack(); err != nil && w.Report != nil {
				w.Report.CaptureScriptError(err, w.Tab.URL.String())
			}
			w.commit()
		})
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		if r >= 0x20 && r <= 0x7e && unicode.IsPrint(r) {
			ch := r
			w.Tasks.Schedule(func() {
				w.Tab.KeyPress(ch)
				w.commit()
			})
		}
	}

	w.pollCommit()
	w.tickAnimation()
	return nil
}

// tickAnimation advances the armed animation-frame timer from spec §5:
// the first tick after a commit reports NeedsAnimationFrame arms the
// timer, and it fires at most once every style.RefreshRateSeconds,
// scheduling one animation frame on the tab's worker goroutine. A
// commit that no longer needs animation frames disarms it.
func (w *Window) tickAnimation() {
	if w.lastSnap == nil || !w.lastSnap.NeedsAnimationFrame {
		w.animationArmed = false
		return
	}
	if !w.animationArmed {
		w.animationArmed = true
		w.animationArmedAt = time.Now()
		return
	}
	interval := time.Duration(style.RefreshRateSeconds * float64(time.Second))
	if time.Since(w.animationArmedAt) < interval {
		return
	}
	w.animationArmed = false
	w.Tasks.Schedule(func() {
		w.Tab.RunAnimationFrame()
		w.Tab.Render()
		w.commit()
	})
}

// backspaceFocused trims one character off the focused input's value,
// the keypress counterpart tab.py handles inline rather than through
// Tab.KeyPress.
func backspaceFocused(t *tab.Tab) {
	if t.Focus == nil || t.Focus.Tag != "input" {
		return
	}
	value, _ := t.Focus.GetAttribute("value")
	if len(value) == 0 {
		return
	}
	runes := []rune(value)
	t.Focus.SetAttribute("value", string(runes[:len(runes)-1]))
	t.Driver.Bits.MarkLayoutDirty()
	t.Render()
}

// pollCommit takes the latest snapshot, if any, and rebuilds the
// UI-side composited layer list from its display list — unless the
// display list is the very same paint-command tree as last time, which
// means the tab thread only touched draw-only state (a composited
// opacity update or a pure scroll): existing layers still reference the
// same *paint.Blend triggers and will redraw with whatever is current
// without needing to be rebuilt or rerastered, matching spec §4.H/§8's
// "composite and raster skipped on draw-only changes".
func (w *Window) pollCommit() {
	snap, isNew := w.Box.Take()
	if snap == nil || !isNew {
		return
	}
	prev := w.lastSnap
	w.lastSnap = snap
	if prev != nil && sameDisplayList(prev.DisplayList, snap.DisplayList) {
		return
	}
	w.layers = compositor.FlattenForest(snap.DisplayList)
}

func sameDisplayList(a, b []paint.Command) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Draw runs raster+draw for the current layer set, matching gameShell.
// Draw's screen-fill-then-delegate shape. Per spec §4.G, the layers
// themselves are not drawn directly: each is wrapped in clones of its
// ancestor effect chain (AssembleDrawList) so ancestor Transforms/Blends
// dropped by flattening into layers are reapplied here.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)

	surface := &canvas.Surface{Image: screen}
	c := canvas.NewCanvas(surface)
	c.Translate(0, -scrollOf(w.lastSnap))

	for _, layer := range w.layers {
		layer.Raster(w.pool)
	}
	for _, cmd := range compositor.AssembleDrawList(w.layers, updatesOf(w.lastSnap)) {
		cmd.Execute(c)
	}
}

func updatesOf(snap *commit.Snapshot) map[uint64]float64 {
	if snap == nil {
		return nil
	}
	return snap.CompositedUpdates
}

func scrollOf(snap *commit.Snapshot) float64 {
	if snap == nil {
		return 0
	}
	return snap.ScrollOffset
}

// Layout keeps the window at its fixed size regardless of the outer
// window manager's scaling, matching gameShell.Layout.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return Width, Height
}

// Run configures the Ebitengine window and starts the game loop.
func Run(w *Window, title string) error {
	ebiten.SetWindowSize(Width, Height)
	ebiten.SetWindowTitle(title)
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("chrome: run: %w", err)
	}
	return nil
}
