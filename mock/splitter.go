package mock

import "github.com/jobsift/jobsift"

var _ jobsift.Splitter = (*Splitter)(nil)

// Splitter is a mock implementation of jobsift.Splitter.
type Splitter struct {
	SplitFn func(f jobsift.Fragment, maxUnits int) ([]string, error)
}

func (s *Splitter) Split(f jobsift.Fragment, maxUnits int) ([]string, error) {
	return s.SplitFn(f, maxUnits)
}
