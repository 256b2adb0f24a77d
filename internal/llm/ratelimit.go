package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// rateLimiter is a token bucket refilled one token at a time, spreading
// requestsPerMinute evenly over each minute.
type rateLimiter struct {
	stopCh   chan struct{}
	stopOnce sync.Once
	tokens   int
	capacity int
	mu       sync.Mutex
}

// newRateLimiter creates a limiter allowing requestsPerMinute requests. A
// non-positive value means 60.
func newRateLimiter(requestsPerMinute int) *rateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}

	rl := &rateLimiter{
		tokens:   requestsPerMinute,
		capacity: requestsPerMinute,
		stopCh:   make(chan struct{}),
	}
	go rl.refill(time.Minute / time.Duration(requestsPerMinute))

	return rl
}

// wait blocks until a token is available or the context is canceled.
func (rl *rateLimiter) wait(ctx context.Context) error {
	if rl.tryAcquire() {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("rate limiter canceled: %w", ctx.Err())
		case <-ticker.C:
			if rl.tryAcquire() {
				return nil
			}
		}
	}
}

func (rl *rateLimiter) tryAcquire() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}
	return false
}

func (rl *rateLimiter) refill(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.mu.Lock()
			if rl.tokens < rl.capacity {
				rl.tokens++
			}
			rl.mu.Unlock()
		}
	}
}

// Close stops the refill goroutine. It is safe to call more than once.
func (rl *rateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}
