package checkout

import "time"

// ResetTimer is the delayed clear-cart-and-go-home transition that follows an
// order confirmation. It is cancellable: the owning view cancels it on
// teardown so the reset never runs against a view that no longer exists.
type ResetTimer struct {
	fired  chan time.Time
	cancel chan struct{}
}

// NewResetTimer starts a timer whose Done channel delivers exactly once after
// the delay. Cancelling closes Done without delivering, so receivers can tell
// a fired timer (value, ok) from a cancelled one (zero, !ok).
func NewResetTimer(delay time.Duration) *ResetTimer {
	r := &ResetTimer{
		fired:  make(chan time.Time, 1),
		cancel: make(chan struct{}),
	}

	timer := time.NewTimer(delay)
	go func() {
		defer close(r.fired)
		select {
		case at := <-timer.C:
			r.fired <- at
		case <-r.cancel:
			timer.Stop()
		}
	}()

	return r
}

// Done delivers at most one value, when the delay elapses, then closes.
func (r *ResetTimer) Done() <-chan time.Time {
	return r.fired
}

// Cancel stops the timer and closes Done. Cancelling more than once is safe.
func (r *ResetTimer) Cancel() {
	select {
	case <-r.cancel:
	default:
		close(r.cancel)
	}
}
