// Package trace writes a Chrome trace-event JSON file (browser.json) of
// begin/end records for each pipeline stage, the on-disk form of spec §6's
// "Persisted state". Grounded on willow's debug.go timing-stats collection
// pattern (time.Now()/time.Since), adapted to emit this fixed record shape
// to disk instead of to stderr.
package trace

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// Event is one record in the trace, matching Chrome's trace-event format:
// "M" for metadata, "B"/"E" for begin/end pairs.
type Event struct {
	Name string      `json:"name"`
	Ph   string      `json:"ph"`
	TS   int64       `json:"ts"`
	PID  int         `json:"pid"`
	TID  int         `json:"tid"`
	Args interface{} `json:"args,omitempty"`
}

// Writer accumulates Events and serializes them to a file as a single
// JSON array on Close.
type Writer struct {
	mu     sync.Mutex
	path   string
	events []Event
	pid    int
	start  time.Time
}

// NewWriter starts a trace, recording a single "M" process_name metadata
// event up front.
func NewWriter(path string, processName string) *Writer {
	w := &Writer{path: path, pid: os.Getpid(), start: time.Now()}
	w.events = append(w.events, Event{
		Name: "process_name", Ph: "M", PID: w.pid, TID: 0,
		Args: map[string]string{"name": processName},
	})
	return w
}

func (w *Writer) nowMicros() int64 {
	return time.Since(w.start).Microseconds()
}

// Begin records a "B" event for name on the given thread id (0 for the UI
// thread, 1+ for tab worker threads).
func (w *Writer) Begin(tid int, name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, Event{Name: name, Ph: "B", TS: w.nowMicros(), PID: w.pid, TID: tid})
}

// End records an "E" event closing the most recently begun span on tid.
func (w *Writer) End(tid int, name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, Event{Name: name, Ph: "E", TS: w.nowMicros(), PID: w.pid, TID: tid})
}

// Span runs fn, bracketing it with a Begin/End pair on tid.
func (w *Writer) Span(tid int, name string, fn func()) {
	w.Begin(tid, name)
	defer w.End(tid, name)
	fn()
}

// NameThread records an "M" thread_name metadata event, typically emitted
// once at shutdown for each thread id that was used.
func (w *Writer) NameThread(tid int, name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, Event{
		Name: "thread_name", Ph: "M", PID: w.pid, TID: tid,
		Args: map[string]string{"name": name},
	})
}

// Close writes the accumulated events to disk as a JSON array.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.Create(w.path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	return enc.Encode(w.events)
}
