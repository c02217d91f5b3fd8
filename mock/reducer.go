package mock

import "github.com/jobsift/jobsift"

var _ jobsift.Reducer = (*Reducer)(nil)

// Reducer is a mock implementation of jobsift.Reducer.
type Reducer struct {
	ReduceFn       func(doc *jobsift.RawDocument) ([]jobsift.Fragment, error)
	ReduceDetailFn func(html string, maxUnits int) (string, error)
}

func (r *Reducer) Reduce(doc *jobsift.RawDocument) ([]jobsift.Fragment, error) {
	return r.ReduceFn(doc)
}

func (r *Reducer) ReduceDetail(html string, maxUnits int) (string, error) {
	if r.ReduceDetailFn == nil {
		return html, nil
	}
	return r.ReduceDetailFn(html, maxUnits)
}
