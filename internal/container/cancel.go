package container

import "sync/atomic"

// CancelToken is a cooperative, one-way cancellation flag. Cancel is
// idempotent; IsCancelled may be polled from any goroutine holding a copy.
type CancelToken struct {
	flag *atomic.Bool
}

// NewCancelToken returns a token that starts uncancelled.
func NewCancelToken() CancelToken {
	return CancelToken{flag: new(atomic.Bool)}
}

// Cancel signals cancellation. Safe to call more than once.
func (c CancelToken) Cancel() {
	c.flag.Store(true)
}

// IsCancelled reports whether Cancel has been called on this token or any
// copy of it.
func (c CancelToken) IsCancelled() bool {
	return c.flag.Load()
}
