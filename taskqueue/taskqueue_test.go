package taskqueue

import (
	"sync"
	"testing"
	"time"
)

func TestRunExecutesScheduledTasksInOrder(t *testing.T) {
	q := New()
	var mu sync.Mutex
	var order []int

	done := make(chan struct{})
	go func() {
		q.Run()
		close(done)
	}()

	for i := 0; i < 3; i++ {
		i := i
		q.Schedule(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}
	q.Quit()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Fatalf("got %v", order)
	}
}

func TestClearPendingDropsUnrunTasks(t *testing.T) {
	q := New()
	ran := false
	q.Schedule(func() { ran = true })
	q.ClearPending()
	if q.Len() != 0 {
		t.Fatalf("expected empty queue, got %d", q.Len())
	}

	done := make(chan struct{})
	go func() {
		q.Run()
		close(done)
	}()
	q.Quit()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
	if ran {
		t.Fatal("cleared task should not have run")
	}
}

func TestQuitWithEmptyQueueReturnsImmediately(t *testing.T) {
	q := New()
	q.Quit()
	done := make(chan struct{})
	go func() {
		q.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}
