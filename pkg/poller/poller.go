// Package poller provides the repeating refresh task used by API consumers to
// keep notification badges current. The server never depends on it; it exists
// so dashboard clients get an explicitly ownable timer with start/stop
// semantics instead of a bare leaked ticker.
package poller

import (
	"context"
	"sync"
	"time"
)

// Func is invoked on every tick. Errors are returned to the optional error
// callback; they never stop the poller.
type Func func(ctx context.Context) error

// Poller runs a function immediately and then on a fixed interval until stopped.
type Poller struct {
	interval time.Duration
	fn       Func
	onError  func(error)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Option customises the Poller.
type Option func(*Poller)

// WithErrorHandler registers a callback invoked whenever the poll function fails.
func WithErrorHandler(handler func(error)) Option {
	return func(p *Poller) {
		if handler != nil {
			p.onError = handler
		}
	}
}

// New constructs a poller with the supplied interval and poll function.
// Intervals below one second are clamped to one second.
func New(interval time.Duration, fn Func, opts ...Option) *Poller {
	if interval < time.Second {
		interval = time.Second
	}
	p := &Poller{
		interval: interval,
		fn:       fn,
		onError:  func(error) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the polling loop. Calling Start on a running poller is a no-op.
// The first poll fires immediately so badges populate without waiting a full interval.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil || p.fn == nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx, p.done)
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	if err := p.fn(ctx); err != nil && ctx.Err() == nil {
		p.onError(err)
	}
}

// Stop cancels the polling loop and waits for the in-flight poll to finish.
// Safe to call multiple times and on a poller that was never started.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.done = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
