package jobsift

// Chunk is a bounded-size unit of text submitted to an extraction
// provider in one call. Chunks are immutable once created and consumed
// exactly once by the invoker.
type Chunk struct {
	Index     int    `json:"index"`
	Total     int    `json:"total"`
	Text      string `json:"text"`
	SizeUnits int    `json:"sizeUnits"`

	// Oversize marks the documented atomic-overflow case: a single
	// irreducible fragment that could not be split further without
	// destroying record boundaries. Such chunks are permitted but
	// must be flagged for operational tuning.
	Oversize bool `json:"oversize,omitempty"`
}

// Packer packs ordered fragments into chunks, each within a configured
// maximum size. Zero fragments yield an empty chunk list.
type Packer interface {
	Pack(fragments []Fragment) ([]Chunk, error)
}

// Splitter subdivides a single oversized fragment at the next
// structural boundary (child elements), falling back to raw
// length-based slicing with a small overlap window when no finer
// boundary exists. The returned pieces are packed text, each within
// maxUnits size units.
type Splitter interface {
	Split(f Fragment, maxUnits int) ([]string, error)
}

// SizeEstimator estimates the size of text in provider size units
// (approximate tokens). Estimation must be cheap and non-blocking;
// implementations fall back to a character heuristic on failure.
type SizeEstimator interface {
	Estimate(text string) int
}

// SizeEstimatorFunc adapts a function to the SizeEstimator interface.
type SizeEstimatorFunc func(text string) int

// Estimate implements SizeEstimator.
func (f SizeEstimatorFunc) Estimate(text string) int { return f(text) }

// CharsPerSizeUnit is the character-to-token ratio used by the default
// size heuristic.
const CharsPerSizeUnit = 4

// EstimateSize is the default size heuristic: length in characters
// divided by CharsPerSizeUnit, rounded up.
func EstimateSize(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + CharsPerSizeUnit - 1) / CharsPerSizeUnit
}
