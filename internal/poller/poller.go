package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sessionlab/go-sogs/internal/logger"
)

// Poller polls a single server on a fixed interval. The loop runs one
// poll at a time; a slow cycle delays the next tick instead of stacking
// concurrent polls against the same server.
type Poller struct {
	runner   *Runner
	server   string
	interval time.Duration
	log      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(runner *Runner, server string, interval time.Duration, log *logger.Logger) *Poller {
	return &Poller{
		runner:   runner,
		server:   server,
		interval: interval,
		log:      log.Field("server", server),
	}
}

// Start launches the poll loop. The first poll fires immediately. Start
// on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	// The goroutine closes its own local copy; Stop clears p.done, so
	// closing through the field would race with it.
	go func() {
		defer close(done)
		p.loop(ctx)
	}()
}

// Stop cancels the loop and waits for any in-flight poll to finish.
// Stop on a stopped poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) loop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
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
	if err := p.runner.PollServer(ctx, p.server); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		p.log.Warn().Err(err).Msg("poll failed")
	}
}
