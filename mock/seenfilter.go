package mock

import "github.com/jobsift/jobsift"

var _ jobsift.SeenFilter = (*SeenFilter)(nil)

// SeenFilter is a mock implementation of jobsift.SeenFilter.
type SeenFilter struct {
	SeenFn func(url string) bool
	AddFn  func(url string)
}

func (f *SeenFilter) Seen(url string) bool {
	if f.SeenFn == nil {
		return false
	}
	return f.SeenFn(url)
}

func (f *SeenFilter) Add(url string) {
	if f.AddFn != nil {
		f.AddFn(url)
	}
}
