// Package notifyrate gates desktop notification delivery behind a
// per-source cooldown so a chatty child process cannot flood the
// host's notification center.
package notifyrate

import (
	"fmt"
	"time"

	"climux/internal/vtmodel"
)

// Backend delivers a composed notification to the host desktop. The
// seam exists purely for testability, mirroring the original's split
// between cooldown bookkeeping and the actual send call.
type Backend interface {
	Send(summary, body string) error
}

// NoopBackend discards every notification. It is the default when no
// real desktop integration is wired in.
type NoopBackend struct{}

func (NoopBackend) Send(summary, body string) error { return nil }

var _ Backend = NoopBackend{}

const defaultCooldown = time.Second

// Limiter is the per-source cooldown gate described in spec.md §4.E.
type Limiter struct {
	enabled  bool
	backend  Backend
	cooldown time.Duration
	lastSent map[string]time.Time
	now      func() time.Time
}

// New constructs an enabled Limiter with the default 1s cooldown.
func New(backend Backend) *Limiter {
	if backend == nil {
		backend = NoopBackend{}
	}
	return &Limiter{
		enabled:  true,
		backend:  backend,
		cooldown: defaultCooldown,
		lastSent: make(map[string]time.Time),
		now:      time.Now,
	}
}

// SetEnabled toggles delivery on or off.
func (l *Limiter) SetEnabled(enabled bool) { l.enabled = enabled }

// SetCooldown overrides the default cooldown duration.
func (l *Limiter) SetCooldown(d time.Duration) { l.cooldown = d }

// Notify attempts delivery for source. It returns true iff a real
// delivery was attempted: false when disabled, or when less than the
// cooldown has elapsed since the last attempt for the same source. A
// suppressed call does not update the recorded timestamp. An empty
// source name is a valid map key.
func (l *Limiter) Notify(source string, event vtmodel.NotificationEvent) bool {
	if !l.enabled {
		return false
	}
	now := l.now()
	if last, ok := l.lastSent[source]; ok && now.Sub(last) < l.cooldown {
		return false
	}
	l.lastSent[source] = now

	title, body := event.Parts()
	summary := fmt.Sprintf("%s - %s", title, source)
	l.backend.Send(summary, body) // backend failures are swallowed
	return true
}
