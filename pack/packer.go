// Package pack packs reduced content fragments into bounded-size text
// chunks for provider calls, preserving record boundaries.
package pack

import (
	"log/slog"

	"github.com/jobsift/jobsift"
)

// Default packing limits.
const (
	DefaultMaxChunkUnits = 12500 // half of a conservative 25k-token input limit
	DefaultOverlapUnits  = 50
)

// Ensure Packer implements jobsift.Packer at compile time.
var _ jobsift.Packer = (*Packer)(nil)

// Packer greedily packs fragments into chunks of at most MaxUnits size
// units. A single fragment exceeding the budget is subdivided by the
// Splitter; when even the splitter cannot reduce a piece below the
// budget, the piece is emitted as an oversize chunk and flagged.
type Packer struct {
	// MaxUnits is the chunk size budget. Zero means DefaultMaxChunkUnits.
	MaxUnits int

	// Estimator measures fragment text in size units. Nil means the
	// default character heuristic.
	Estimator jobsift.SizeEstimator

	// Splitter subdivides oversized fragments. Nil disables
	// structural splitting; oversized fragments become flagged
	// oversize chunks directly.
	Splitter jobsift.Splitter

	Logger *slog.Logger
}

// Pack packs the fragments in order. Zero fragments yield a nil chunk
// list so the caller can short-circuit without any provider call.
func (p *Packer) Pack(fragments []jobsift.Fragment) ([]jobsift.Chunk, error) {
	if len(fragments) == 0 {
		return nil, nil
	}

	maxUnits := p.MaxUnits
	if maxUnits <= 0 {
		maxUnits = DefaultMaxChunkUnits
	}
	estimate := p.estimate

	type piece struct {
		text     string
		units    int
		oversize bool
	}
	var pieces []piece

	for _, frag := range fragments {
		units := estimate(frag.Text)
		if units <= maxUnits {
			pieces = append(pieces, piece{text: frag.Text, units: units})
			continue
		}

		parts := p.split(frag, maxUnits)
		for _, part := range parts {
			partUnits := estimate(part)
			over := partUnits > maxUnits
			if over {
				p.logger().Warn("chunk budget exceeded by irreducible fragment",
					"sizeUnits", partUnits,
					"maxUnits", maxUnits,
				)
			}
			pieces = append(pieces, piece{text: part, units: partUnits, oversize: over})
		}
	}

	var chunks []jobsift.Chunk
	var cur []byte
	curUnits := 0

	flush := func() {
		if len(cur) == 0 {
			return
		}
		chunks = append(chunks, jobsift.Chunk{Text: string(cur), SizeUnits: curUnits})
		cur = cur[:0]
		curUnits = 0
	}

	for _, pc := range pieces {
		if pc.oversize {
			// Oversize pieces always travel alone.
			flush()
			chunks = append(chunks, jobsift.Chunk{Text: pc.text, SizeUnits: pc.units, Oversize: true})
			continue
		}
		if curUnits+pc.units > maxUnits {
			flush()
		}
		cur = append(cur, pc.text...)
		cur = append(cur, '\n')
		curUnits += pc.units
	}
	flush()

	for i := range chunks {
		chunks[i].Index = i
		chunks[i].Total = len(chunks)
	}
	return chunks, nil
}

// split subdivides one oversized fragment, falling back to the
// fragment itself when no splitter is configured or splitting fails.
func (p *Packer) split(frag jobsift.Fragment, maxUnits int) []string {
	if p.Splitter == nil {
		return []string{frag.Text}
	}
	parts, err := p.Splitter.Split(frag, maxUnits)
	if err != nil || len(parts) == 0 {
		p.logger().Warn("fragment split failed, packing whole fragment", "error", err)
		return []string{frag.Text}
	}
	return parts
}

func (p *Packer) estimate(text string) int {
	if p.Estimator != nil {
		return p.Estimator.Estimate(text)
	}
	return jobsift.EstimateSize(text)
}

func (p *Packer) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
