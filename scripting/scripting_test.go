package scripting

import "testing"

func TestNoopEngineRunIsNil(t *testing.T) {
	var e NoopEngine
	if err := e.Run("alert(1)"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNoopEngineDispatchEventUnhandled(t *testing.T) {
	var e NoopEngine
	handled, err := e.DispatchEvent("click", nil)
	if handled || err != nil {
		t.Fatalf("got %v %v", handled, err)
	}
}
