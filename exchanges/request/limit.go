package request

import (
	"context"
	"time"

	"github.com/thrasher-corp/mudrex/log"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond is the local throttle applied when none is set
const DefaultRequestsPerSecond = 2

// Published service quotas. These are enforced by the service, the local
// limiter only smooths request spacing.
const (
	QuotaPerMinute = 50
	QuotaPerHour   = 1000
	QuotaPerDay    = 10000
)

// Limiter spaces outbound requests so that at least 1/rps elapses between the
// completion of consecutive Wait calls. A nil Limiter never blocks.
type Limiter struct {
	r     *rate.Limiter
	clock Clock
}

// NewRateLimit creates a new RateLimit based of time interval and how many
// actions allowed and breaks it down to an actions-per-second basis -- Burst
// rate is kept as one as this is not supported for out-bound requests.
func NewRateLimit(interval time.Duration, actions int) *rate.Limiter {
	if actions <= 0 || interval <= 0 {
		// Returns an un-restricted rate limiter
		return rate.NewLimiter(rate.Inf, 1)
	}

	i := 1 / interval.Seconds()
	rps := i * float64(actions)
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// NewLimiter returns a Limiter allowing rps requests per second. rps <= 0
// returns an unrestricted limiter. A nil clock uses wall time.
func NewLimiter(rps float64, clock Clock) *Limiter {
	if clock == nil {
		clock = SystemClock{}
	}
	l := rate.NewLimiter(rate.Inf, 1)
	if rps > 0 {
		l = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return &Limiter{r: l, clock: clock}
}

// MinInterval returns the enforced gap between requests, zero if unrestricted
func (l *Limiter) MinInterval() time.Duration {
	if l == nil || l.r.Limit() == rate.Inf {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(l.r.Limit()))
}

// Wait blocks until the next request may be sent. The reservation is taken
// under the rate.Limiter mutex so concurrent callers never observe the same
// slot. Cancelling ctx while waiting returns the slot and ctx's error.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	now := l.clock.Now()
	res := l.r.ReserveN(now, 1)
	delay := res.DelayFrom(now)
	if delay <= 0 {
		return nil
	}
	log.Debugf(log.RequestSys, "rate limiter sleeping for %s", delay)
	if err := l.clock.Sleep(ctx, delay); err != nil {
		res.CancelAt(l.clock.Now())
		return err
	}
	return nil
}

// SystemClock is a Clock backed by the time package
type SystemClock struct{}

// Now returns the current wall time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep pauses for d or until ctx is done
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
