package enrich

import (
	"math"
	"sync"
	"time"

	"github.com/dmitrijs2005/wordbook/internal/common"
)

const (
	DefaultMaxRequests = 10
	DefaultWindow      = time.Minute
)

// Limiter allows at most max calls per fixed window. The window starts at
// the first call after the previous one expired.
type Limiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	now    func() time.Time

	count int
	start time.Time
}

func NewLimiter(max int, window time.Duration) *Limiter {
	if max <= 0 {
		max = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{max: max, window: window, now: time.Now}
}

// Allow takes one call from the quota or returns a *common.RateLimitError
// telling how many whole seconds are left in the window.
func (l *Limiter) Allow() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.start.IsZero() || now.Sub(l.start) > l.window {
		l.count = 0
		l.start = now
	}

	if l.count >= l.max {
		left := l.window - now.Sub(l.start)
		secs := int(math.Ceil(left.Seconds()))
		if secs < 1 {
			secs = 1
		}
		return &common.RateLimitError{RetryAfter: time.Duration(secs) * time.Second}
	}

	l.count++
	return nil
}
