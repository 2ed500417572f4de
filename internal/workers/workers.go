// Package workers owns the lifecycle of the per-server pollers: one
// poller per joined server, started together, stopped together, and
// added or removed as servers are joined and left at runtime.
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/sessionlab/go-sogs/internal/logger"
	"github.com/sessionlab/go-sogs/internal/poller"
)

// Manager runs one poller per server.
type Manager struct {
	runner   *poller.Runner
	interval time.Duration
	log      *logger.Logger

	mu      sync.Mutex
	ctx     context.Context
	pollers map[string]*poller.Poller
}

func NewManager(runner *poller.Runner, interval time.Duration, log *logger.Logger) *Manager {
	return &Manager{
		runner:   runner,
		interval: interval,
		log:      log,
		pollers:  make(map[string]*poller.Poller),
	}
}

// Run starts pollers for the given servers and remembers ctx for
// pollers added later. It returns immediately; polling happens in the
// background until Stop or ctx cancellation.
func (m *Manager) Run(ctx context.Context, servers []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ctx = ctx
	for _, server := range servers {
		m.startLocked(server)
	}
	m.log.Info().Int("servers", len(servers)).Msg("pollers started")
}

// Add starts a poller for a newly joined server. No-op if one is
// already running or Run has not been called.
func (m *Manager) Add(server string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ctx == nil {
		return
	}
	m.startLocked(server)
}

// Remove stops and forgets the server's poller.
func (m *Manager) Remove(server string) {
	m.mu.Lock()
	p, ok := m.pollers[server]
	delete(m.pollers, server)
	m.mu.Unlock()

	if ok {
		p.Stop()
	}
}

// Stop halts every poller and waits for in-flight polls to finish.
func (m *Manager) Stop() {
	m.mu.Lock()
	pollers := make([]*poller.Poller, 0, len(m.pollers))
	for _, p := range m.pollers {
		pollers = append(pollers, p)
	}
	m.pollers = make(map[string]*poller.Poller)
	m.ctx = nil
	m.mu.Unlock()

	for _, p := range pollers {
		p.Stop()
	}
	m.log.Info().Msg("pollers stopped")
}

func (m *Manager) startLocked(server string) {
	if _, running := m.pollers[server]; running {
		return
	}
	p := poller.NewPoller(m.runner, server, m.interval, m.log)
	m.pollers[server] = p
	p.Start(m.ctx)
}
