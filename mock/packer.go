package mock

import "github.com/jobsift/jobsift"

var _ jobsift.Packer = (*Packer)(nil)

// Packer is a mock implementation of jobsift.Packer.
type Packer struct {
	PackFn func(fragments []jobsift.Fragment) ([]jobsift.Chunk, error)
}

func (p *Packer) Pack(fragments []jobsift.Fragment) ([]jobsift.Chunk, error) {
	return p.PackFn(fragments)
}
