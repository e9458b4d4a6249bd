package client

import (
	"sync"
	"time"
)

// WorkTimer is the one-second work clock. Start acquires the ticker, Stop
// releases it; Stop is safe to call more than once and must run on teardown.
type WorkTimer struct {
	mu       sync.Mutex
	interval time.Duration
	elapsed  time.Duration
	running  bool
	done     chan struct{}
	onTick   func(elapsed time.Duration)
}

func NewWorkTimer(onTick func(time.Duration)) *WorkTimer {
	return &WorkTimer{interval: time.Second, onTick: onTick}
}

func (t *WorkTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.done = make(chan struct{})

	go func(done chan struct{}) {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.mu.Lock()
				t.elapsed += t.interval
				elapsed := t.elapsed
				onTick := t.onTick
				t.mu.Unlock()
				if onTick != nil {
					onTick(elapsed)
				}
			case <-done:
				return
			}
		}
	}(t.done)
}

func (t *WorkTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	close(t.done)
}

func (t *WorkTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *WorkTimer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

// Reset zeroes the clock; the timer keeps running if it was running.
func (t *WorkTimer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.elapsed = 0
}
