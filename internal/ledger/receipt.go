package ledger

import (
	"context"
	"errors"
)

// Receipt tracks one external submission and the full cascade of messages it
// spawned. It resolves once no message of the cascade remains in flight;
// every rejection along the way is collected, with the original actor error
// preserved for errors.Is.
type Receipt struct {
	pending int
	errs    []error
	done    chan struct{}
}

func newReceipt() *Receipt {
	return &Receipt{done: make(chan struct{})}
}

// reject and finish are called by the dispatch loop under the system lock.

func (r *Receipt) reject(err error) {
	r.errs = append(r.errs, err)
}

func (r *Receipt) finish() {
	r.pending--
	if r.pending == 0 {
		close(r.done)
	}
}

// Wait blocks until the cascade has fully settled or ctx expires. It returns
// the joined rejections, or nil if every hop was accepted.
func (r *Receipt) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return errors.Join(r.errs...)
	case <-ctx.Done():
		return ctx.Err()
	}
}
