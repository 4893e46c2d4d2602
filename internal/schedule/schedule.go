// internal/schedule/schedule.go
package schedule

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

var intervalPattern = regexp.MustCompile(`^([0-2]?[0-9]):([0-5][0-9])$`)

// ParseInterval parses the "HH:MM" measurement interval from config.
func ParseInterval(s string) (time.Duration, error) {
	m := intervalPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, errors.Errorf("schedule: invalid interval %q, want HH:MM", s)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])

	d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	if d <= 0 {
		return 0, errors.Errorf("schedule: interval %q must be positive", s)
	}
	return d, nil
}

// Clock computes measurement times for one campaign.
// The process is single-threaded between cycles: the loop blocks in
// Wait and nothing else runs meanwhile.
type Clock struct {
	interval time.Duration
	aligned  bool

	now func() time.Time // test seam
}

// NewClock builds a clock for the given interval. With alignFullHours
// set, measurement times land on the interval lattice anchored at full
// hours instead of starting immediately.
func NewClock(interval time.Duration, alignFullHours bool) *Clock {
	return &Clock{
		interval: interval,
		aligned:  alignFullHours,
		now:      time.Now,
	}
}

// First returns the first measurement time. Free-running campaigns
// start right away.
func (c *Clock) First() time.Time {
	now := c.now()
	if !c.aligned {
		return now
	}
	return firstAligned(now, c.interval)
}

// Next returns the measurement time following last.
// No drift correction: the grid advances from the previous target, not
// from when the cycle actually finished.
func (c *Clock) Next(last time.Time) time.Time {
	return last.Add(c.interval)
}

// firstAligned places the first measurement on the interval lattice:
// as many whole intervals as fit between now and the next full hour are
// skipped, leaving the remainder as the wait. If now sits exactly on a
// boundary the result equals now.
func firstAligned(now time.Time, interval time.Duration) time.Time {
	nextHour := now.Truncate(time.Hour)
	if nextHour.Before(now) {
		nextHour = nextHour.Add(time.Hour)
	}
	gap := nextHour.Sub(now)
	return now.Add(gap % interval)
}

// Wait blocks until target or ctx cancellation. Targets at or in the
// past return immediately; an overrunning cycle must not error the loop.
func (c *Clock) Wait(ctx context.Context, target time.Time) error {
	d := target.Sub(c.now())
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
