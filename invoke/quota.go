package invoke

import (
	"sync"
	"time"
)

// Quota tracks the daily provider call budget. The counter resets when
// the wall-clock date rolls over; the reset is a single compare-and-
// reset under the lock, so concurrent callers racing across midnight
// cannot double-reset or under-reset.
type Quota struct {
	mu          sync.Mutex
	ceiling     int
	count       int
	reserved    int
	windowStart time.Time

	// now is overridable for tests.
	now func() time.Time
}

// NewQuota creates a quota with the given daily ceiling. A ceiling of
// zero or less disables quota enforcement.
func NewQuota(ceiling int) *Quota {
	return &Quota{
		ceiling: ceiling,
		now:     time.Now,
	}
}

// Allow reports whether another call is permitted today. It performs
// the date-rollover reset as a side effect.
func (q *Quota) Allow() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.rollover()
	return q.ceiling <= 0 || q.count+q.reserved < q.ceiling
}

// Reserve claims one call slot ahead of the network attempt, so that
// concurrent callers cannot slip past the ceiling between the check
// and the success mark. Every reservation must be paired with either
// MarkSuccess or Release.
func (q *Quota) Reserve() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.rollover()
	if q.ceiling > 0 && q.count+q.reserved >= q.ceiling {
		return false
	}
	q.reserved++
	return true
}

// Release returns an unused reservation after a failed call.
func (q *Quota) Release() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.reserved > 0 {
		q.reserved--
	}
}

// MarkSuccess records one successful provider network call, consuming
// the caller's reservation if one is held. Failed attempts inside a
// retry loop are not recorded; the counter reflects calls that
// actually consumed provider quota.
func (q *Quota) MarkSuccess() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.rollover()
	if q.reserved > 0 {
		q.reserved--
	}
	q.count++
}

// Count returns today's recorded call count.
func (q *Quota) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.rollover()
	return q.count
}

// Remaining returns the number of calls left today, or -1 when the
// quota is unlimited.
func (q *Quota) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.rollover()
	if q.ceiling <= 0 {
		return -1
	}
	left := q.ceiling - q.count - q.reserved
	if left < 0 {
		return 0
	}
	return left
}

// rollover resets the counter when the calendar day has changed.
// Callers must hold the lock.
func (q *Quota) rollover() {
	today := q.startOfDay(q.now())
	if today.After(q.windowStart) {
		q.count = 0
		q.windowStart = today
	}
}

func (q *Quota) startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
