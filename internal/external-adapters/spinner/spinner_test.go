package spinner

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer written by the render goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_StartStop(t *testing.T) {
	out := &syncBuffer{}
	s := New(out, true, nil)

	s.Start("Downloading left-pad")
	time.Sleep(150 * time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop() did not return")
	}

	if !strings.Contains(out.String(), "Downloading left-pad") {
		t.Errorf("output %q does not contain the message", out.String())
	}
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	s := New(&syncBuffer{}, true, nil)
	s.Stop()
	s.Stop()
}

func TestSpinner_Disabled(t *testing.T) {
	out := &syncBuffer{}
	s := New(out, false, nil)

	s.Start("Querying reputation")
	s.Stop()

	if out.String() != "" {
		t.Errorf("disabled spinner wrote %q", out.String())
	}
}

func TestSpinner_Restart(t *testing.T) {
	s := New(&syncBuffer{}, true, nil)
	for i := 0; i < 3; i++ {
		s.Start("step")
		s.Start("ignored while running")
		s.Stop()
	}
}
