// Package otp derives the short-lived 6-digit codes used by the secondary
// super-admin login step, and the countdown that bounds their validity.
//
// The code is displayed on-screen to the same user who must enter it, so this
// is a timeout/rate-limiting device, not a security control.
package otp

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// DefaultWindow is how long a generated code stays valid.
const DefaultWindow = 300 * time.Second

// Generate derives a 6-digit code from the token and the second-granularity
// time bucket of `at`. Calls within the same bucket yield the same code.
func Generate(token string, at time.Time) string {
	base := token + "-" + strconv.FormatInt(at.Unix(), 10)

	var h int32
	for _, r := range base {
		h = (h << 5) - h + int32(r) // rolling hash in 32-bit arithmetic
	}
	code := int64(h) % 1_000_000
	if code < 0 {
		code = -code
	}
	return fmt.Sprintf("%06d", code)
}

// Countdown bounds a code's validity window. Done is closed exactly once when
// the window elapses; the consuming flow must then fall back to the previous
// step. Reset re-arms the window (code regeneration) and only works before
// expiry.
type Countdown struct {
	mu       sync.Mutex
	timer    *time.Timer
	done     chan struct{}
	deadline time.Time
	expired  bool
	stopped  bool
}

func NewCountdown(window time.Duration) *Countdown {
	c := &Countdown{done: make(chan struct{})}
	c.deadline = time.Now().Add(window)
	c.timer = time.AfterFunc(window, c.expire)
	return c
}

func (c *Countdown) expire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expired || c.stopped {
		return
	}
	c.expired = true
	close(c.done)
}

// Done is closed when the countdown expires. It never fires after Stop.
func (c *Countdown) Done() <-chan struct{} {
	return c.done
}

// Reset re-arms the countdown with a fresh window. It reports false once the
// countdown has expired or been stopped; the flow must be re-entered then.
func (c *Countdown) Reset(window time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expired || c.stopped {
		return false
	}
	c.timer.Stop()
	c.deadline = time.Now().Add(window)
	c.timer.Reset(window)
	return true
}

// Remaining returns the time left before expiry, or zero once expired.
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expired {
		return 0
	}
	if left := time.Until(c.deadline); left > 0 {
		return left
	}
	return 0
}

// Stop cancels the countdown without firing Done.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expired || c.stopped {
		return
	}
	c.stopped = true
	c.timer.Stop()
}
