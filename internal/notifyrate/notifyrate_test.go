package notifyrate

import (
	"testing"
	"time"

	"climux/internal/vtmodel"
)

type recordingBackend struct {
	calls []string
}

func (b *recordingBackend) Send(summary, body string) error {
	b.calls = append(b.calls, summary+"|"+body)
	return nil
}

// S6: rate-limit gate.
func TestRateLimitGate(t *testing.T) {
	backend := &recordingBackend{}
	l := New(backend)
	l.SetCooldown(time.Second)

	clock := time.Unix(0, 0)
	l.now = func() time.Time { return clock }

	bell := vtmodel.NotificationEvent{Kind: vtmodel.NotificationBell}

	if !l.Notify("t1", bell) {
		t.Fatalf("first notify for t1 should succeed")
	}
	if l.Notify("t1", bell) {
		t.Fatalf("second notify for t1 within cooldown should be suppressed")
	}
	if !l.Notify("t2", bell) {
		t.Fatalf("first notify for t2 should succeed regardless of t1's cooldown")
	}
	if len(backend.calls) != 2 {
		t.Fatalf("backend received %d calls, want 2", len(backend.calls))
	}
}

// Invariant 7: a suppressed call leaves the recorded timestamp unchanged.
func TestSuppressedCallLeavesTimestampUnchanged(t *testing.T) {
	l := New(nil)
	clock := time.Unix(0, 0)
	l.now = func() time.Time { return clock }
	bell := vtmodel.NotificationEvent{Kind: vtmodel.NotificationBell}

	l.Notify("t1", bell)
	before := l.lastSent["t1"]

	clock = clock.Add(100 * time.Millisecond)
	l.Notify("t1", bell) // suppressed: still within 1s cooldown

	if !l.lastSent["t1"].Equal(before) {
		t.Fatalf("suppressed call updated timestamp: before=%v after=%v", before, l.lastSent["t1"])
	}
}

func TestDisabledLimiterNeverDelivers(t *testing.T) {
	backend := &recordingBackend{}
	l := New(backend)
	l.SetEnabled(false)
	bell := vtmodel.NotificationEvent{Kind: vtmodel.NotificationBell}

	if l.Notify("t1", bell) {
		t.Fatalf("disabled limiter should never report a successful delivery")
	}
	if len(backend.calls) != 0 {
		t.Fatalf("disabled limiter should never call the backend")
	}
}
