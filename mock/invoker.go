package mock

import (
	"context"

	"github.com/jobsift/jobsift"
)

var _ jobsift.Invoker = (*Invoker)(nil)

// Invoker is a mock implementation of jobsift.Invoker. The default
// behavior executes the call directly without quota or pacing.
type Invoker struct {
	InvokeFn func(ctx context.Context, call jobsift.CallFunc) (string, error)
}

func (i *Invoker) Invoke(ctx context.Context, call jobsift.CallFunc) (string, error) {
	if i.InvokeFn == nil {
		return call(ctx)
	}
	return i.InvokeFn(ctx, call)
}
