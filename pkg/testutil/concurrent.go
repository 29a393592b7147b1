package testutil

import (
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"rubrica/pkg/platform/sentinel"
)

// ConcurrentResult counts the outcomes of a RunConcurrent call by sentinel.
type ConcurrentResult struct {
	Successes   int32
	Errors      int32
	Conflicts   int32
	NotFounds   int32
	InvalidRefs int32
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Errors + r.Conflicts + r.NotFounds + r.InvalidRefs
}

// RunConcurrent releases n goroutines at once and classifies what each fn
// returns: ErrAlreadyUsed is a conflict, ErrNotFound a not-found,
// ErrInvalidReference an invalid reference. Anything else lands in Errors.
func RunConcurrent(n int, fn func(idx int) error) *ConcurrentResult {
	var (
		g     errgroup.Group
		start sync.WaitGroup
		res   struct{ ok, other, conflict, missing, invalid atomic.Int32 }
	)
	start.Add(1)

	for i := range n {
		g.Go(func() error {
			start.Wait()
			err := fn(i)
			switch {
			case err == nil:
				res.ok.Add(1)
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				res.conflict.Add(1)
			case errors.Is(err, sentinel.ErrNotFound):
				res.missing.Add(1)
			case errors.Is(err, sentinel.ErrInvalidReference):
				res.invalid.Add(1)
			default:
				res.other.Add(1)
			}
			return nil
		})
	}

	start.Done()
	_ = g.Wait() //nolint:errcheck // workers never return an error

	return &ConcurrentResult{
		Successes:   res.ok.Load(),
		Errors:      res.other.Load(),
		Conflicts:   res.conflict.Load(),
		NotFounds:   res.missing.Load(),
		InvalidRefs: res.invalid.Load(),
	}
}
