// Package invoke executes provider calls under quota and concurrency
// control, retrying transient failures with exponential backoff.
package invoke

import (
	"context"
	"log/slog"
	"time"

	"github.com/jobsift/jobsift"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Default retry and pacing parameters. The defaults are deliberately
// conservative: free-tier LLM endpoints throttle aggressively, so the
// invoker paces to one call per DefaultCallSpacing and caps global
// concurrency at one in-flight call.
const (
	DefaultMaxAttempts   = 3
	DefaultBaseDelay     = 2 * time.Second
	DefaultMaxDelay      = 60 * time.Second
	DefaultMaxRetryAfter = 2 * time.Minute
	DefaultMultiplier    = 1.5
	DefaultCallSpacing   = 5 * time.Second
	DefaultConcurrency   = 1
)

// Ensure Invoker implements jobsift.Invoker at compile time.
var _ jobsift.Invoker = (*Invoker)(nil)

// Invoker wraps provider calls with a global concurrency permit, daily
// quota accounting, inter-call pacing and classified retries.
type Invoker struct {
	sem   *semaphore.Weighted
	quota *Quota
	pace  *rate.Limiter

	maxAttempts   int
	baseDelay     time.Duration
	maxDelay      time.Duration
	maxRetryAfter time.Duration
	multiplier    float64

	logger *slog.Logger

	// sleep is overridable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// Options configures an Invoker. Zero values fall back to defaults.
type Options struct {
	// Concurrency caps in-flight provider calls across all callers
	// sharing this invoker.
	Concurrency int

	// CallSpacing is the minimum delay between consecutive calls,
	// applied even before the first attempt.
	CallSpacing time.Duration

	MaxAttempts   int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	MaxRetryAfter time.Duration
	Multiplier    float64

	Logger *slog.Logger

	// Sleep overrides the backoff sleep. Useful for testing retry
	// behavior without waiting for real delays.
	Sleep func(ctx context.Context, d time.Duration) error
}

// New creates an Invoker sharing the given quota.
func New(quota *Quota, opts Options) *Invoker {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.CallSpacing <= 0 {
		opts.CallSpacing = DefaultCallSpacing
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultBaseDelay
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = DefaultMaxDelay
	}
	if opts.MaxRetryAfter <= 0 {
		opts.MaxRetryAfter = DefaultMaxRetryAfter
	}
	if opts.Multiplier <= 1 {
		opts.Multiplier = DefaultMultiplier
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepCtx
	}

	return &Invoker{
		sem:           semaphore.NewWeighted(int64(opts.Concurrency)),
		quota:         quota,
		pace:          rate.NewLimiter(rate.Every(opts.CallSpacing), 1),
		maxAttempts:   opts.MaxAttempts,
		baseDelay:     opts.BaseDelay,
		maxDelay:      opts.MaxDelay,
		maxRetryAfter: opts.MaxRetryAfter,
		multiplier:    opts.Multiplier,
		logger:        opts.Logger,
		sleep:         opts.Sleep,
	}
}

// Quota exposes the shared quota state for observability.
func (inv *Invoker) Quota() *Quota { return inv.quota }

// Invoke executes one provider call. A quota slot is reserved before
// any permit is held or network attempt made, so concurrent calls
// cannot overshoot the daily ceiling; the reservation and the
// concurrency permit are released on every exit path.
func (inv *Invoker) Invoke(ctx context.Context, call jobsift.CallFunc) (string, error) {
	if !inv.quota.Reserve() {
		return "", jobsift.Errorf(jobsift.EQUOTA, "daily provider call quota exhausted (%d calls)", inv.quota.Count())
	}
	committed := false
	defer func() {
		if !committed {
			inv.quota.Release()
		}
	}()

	if err := inv.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer inv.sem.Release(1)

	delay := inv.baseDelay
	var lastErr error

	for attempt := 1; attempt <= inv.maxAttempts; attempt++ {
		// Pace every attempt, including the first.
		if err := inv.pace.Wait(ctx); err != nil {
			return "", err
		}

		start := time.Now()
		resp, err := call(ctx)
		if err == nil {
			inv.quota.MarkSuccess()
			committed = true
			inv.logger.Debug("provider call succeeded",
				"attempt", attempt,
				"duration", time.Since(start),
				"quotaUsed", inv.quota.Count(),
			)
			return resp, nil
		}
		lastErr = err

		switch Classify(err) {
		case OutcomeTooLarge:
			return "", jobsift.WrapErrorf(err, jobsift.ETOOLARGE, "input exceeds provider context window")

		case OutcomeRateLimited:
			if attempt == inv.maxAttempts {
				break
			}
			wait := delay
			if hint, ok := RetryAfterHint(err); ok {
				wait = min(hint, inv.maxRetryAfter)
			}
			inv.logger.Warn("provider rate limited, backing off",
				"attempt", attempt,
				"wait", wait,
				"error", err,
			)
			if serr := inv.sleep(ctx, wait); serr != nil {
				return "", serr
			}
			delay = min(time.Duration(float64(delay)*inv.multiplier), inv.maxDelay)

		default:
			return "", err
		}
	}

	return "", jobsift.WrapErrorf(lastErr, jobsift.EINTERNAL, "retries exhausted after %d attempts", inv.maxAttempts)
}

// sleepCtx sleeps for d unless the context is canceled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
