package pipeline

import (
	"testing"

	"ecoacustica/internal/logging"
)

// A staging failure and a concurrent Cancel both try to release the run.
// Whichever loses must leave the done channel alone instead of closing it a
// second time.
func TestAbortStagingAfterCancelIsNoOp(t *testing.T) {
	p := &Pipeline{
		logger:   logging.NewNop(),
		state:    StateUploading,
		recordID: "audio_test",
		fileName: "canto.wav",
		done:     make(chan struct{}),
	}

	p.Cancel()
	if p.state != StateCancelled {
		t.Fatalf("expected cancelled state, got %s", p.state)
	}

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("abort after cancel panicked: %v", r)
		}
	}()
	p.abortStaging("audio_test")

	if p.state != StateCancelled {
		t.Fatalf("abort overwrote cancelled state with %s", p.state)
	}
}

func TestAbortStagingReleasesReservedRun(t *testing.T) {
	done := make(chan struct{})
	p := &Pipeline{
		logger:   logging.NewNop(),
		state:    StateUploading,
		recordID: "audio_test",
		fileName: "canto.wav",
		done:     done,
	}

	p.abortStaging("audio_test")

	if p.state != StateIdle {
		t.Fatalf("expected idle state, got %s", p.state)
	}
	select {
	case <-done:
	default:
		t.Fatal("expected done channel to be closed")
	}
}
