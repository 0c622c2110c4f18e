package prune

// limiter is a counting semaphore shared by every goroutine of one walk.
// Hold it only around a single filesystem call, never across a wait on
// other walk goroutines.
type limiter chan struct{}

func newLimiter(n int) limiter {
	if n < 1 {
		n = 1
	}
	return make(limiter, n)
}

func (l limiter) acquire() { l <- struct{}{} }
func (l limiter) release() { <-l }

// tryAcquire takes a slot only when one is free.
func (l limiter) tryAcquire() bool {
	select {
	case l <- struct{}{}:
		return true
	default:
		return false
	}
}
