// Package delay simulates slow backend calls without ignoring cancellation.
package delay

import (
	"context"
	"time"
)

// Wait blocks for d or until ctx is done, whichever comes first, and returns
// ctx.Err() in the latter case
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
