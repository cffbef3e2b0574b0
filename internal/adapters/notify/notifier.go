package notify

import (
	"sync"
	"time"
)

const DefaultDuration = 2 * time.Second

// Notifier holds the single transient message shown to the operator.
// A new message replaces the visible one and restarts its display window.
type Notifier struct {
	mu        sync.Mutex
	message   string
	expiresAt time.Time
	duration  time.Duration
	now       func() time.Time
}

func New(duration time.Duration) *Notifier {
	return NewWithClock(duration, time.Now)
}

func NewWithClock(duration time.Duration, now func() time.Time) *Notifier {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Notifier{duration: duration, now: now}
}

func (n *Notifier) Notify(msg string) {
	n.mu.Lock()
	n.message = msg
	n.expiresAt = n.now().Add(n.duration)
	n.mu.Unlock()
}

// Current returns the latest message and whether it is still inside its display window.
func (n *Notifier) Current() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.message, n.now().Before(n.expiresAt)
}

func (n *Notifier) Duration() time.Duration {
	return n.duration
}
