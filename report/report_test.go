package report

import (
	"errors"
	"testing"
)

func TestNewWithoutDSNIsNoop(t *testing.T) {
	r, err := New("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Should not panic even though no hub was constructed.
	r.CaptureScriptError(errors.New("boom"), "http://example.org/")
	r.CaptureInvariantFailure("panic value", "paint")
}
