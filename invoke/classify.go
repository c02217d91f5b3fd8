package invoke

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Outcome classifies a failed provider call.
type Outcome int

// Classification of provider call failures.
const (
	// OutcomeFatal means the error is not worth retrying and must
	// propagate to the caller.
	OutcomeFatal Outcome = iota

	// OutcomeRateLimited means the provider signaled throttling or
	// quota pressure; the call can be retried after a backoff.
	OutcomeRateLimited

	// OutcomeTooLarge means the input exceeded the provider context
	// window. Retrying the same chunk cannot succeed; re-chunking
	// must happen upstream.
	OutcomeTooLarge
)

var tooLargeSignals = []string{
	"context_length",
	"context length",
	"maximum context",
	"input token count",
	"too many tokens",
	"prompt is too long",
}

var rateLimitSignals = []string{
	"429",
	"rate_limit",
	"rate limit",
	"too many requests",
	"quota",
	"resource_exhausted",
	"resource exhausted",
	"overloaded",
}

// Classify maps a provider error onto a retry outcome by inspecting
// the error text. Context-window signals are checked first because
// several providers phrase them with the same vocabulary as rate
// limits ("token", "exceeded").
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeFatal
	}
	msg := strings.ToLower(err.Error())

	for _, sig := range tooLargeSignals {
		if strings.Contains(msg, sig) {
			return OutcomeTooLarge
		}
	}
	for _, sig := range rateLimitSignals {
		if strings.Contains(msg, sig) {
			return OutcomeRateLimited
		}
	}
	return OutcomeFatal
}

// retryDelayPattern matches provider-supplied retry hints embedded in
// error payloads, e.g. `"retryDelay":"39s"` (Gemini) or
// `retry after 20s` / `Retry-After: 20`.
var (
	retryDelayPattern  = regexp.MustCompile(`"retryDelay"\s*:\s*"(\d+(?:\.\d+)?)s"`)
	retryAfterPattern  = regexp.MustCompile(`(?i)retry[- ]after[:\s]+(\d+)`)
	retryInSecsPattern = regexp.MustCompile(`(?i)try again in (\d+(?:\.\d+)?)s`)
)

// RetryAfterHint extracts a provider-supplied retry-after duration
// from the error text. Returns false when no hint is present.
func RetryAfterHint(err error) (time.Duration, bool) {
	if err == nil {
		return 0, false
	}
	msg := err.Error()

	for _, re := range []*regexp.Regexp{retryDelayPattern, retryAfterPattern, retryInSecsPattern} {
		if m := re.FindStringSubmatch(msg); m != nil {
			secs, perr := strconv.ParseFloat(m[1], 64)
			if perr != nil || secs <= 0 {
				continue
			}
			return time.Duration(secs * float64(time.Second)), true
		}
	}
	return 0, false
}
