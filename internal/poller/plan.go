package poller

import (
	"sync"
	"time"

	"github.com/sessionlab/go-sogs/models"
)

// Planner decides, per room, whether the next poll should take a
// snapshot of recent messages or continue incrementally from the stored
// cursor. A room with no cursor always snapshots. A room with a cursor
// snapshots only on the first poll of its server since process launch,
// and only when the server has been idle longer than maxInactivity;
// after a long absence the backlog behind the cursor is not worth
// paging through.
type Planner struct {
	maxInactivity time.Duration

	mu     sync.Mutex
	polled map[string]struct{}
}

func NewPlanner(maxInactivity time.Duration) *Planner {
	return &Planner{
		maxInactivity: maxInactivity,
		polled:        make(map[string]struct{}),
	}
}

// ShouldSnapshot reports whether the room's messages should be fetched
// via the recent-messages endpoint instead of since the stored cursor.
func (p *Planner) ShouldSnapshot(server models.Server, room models.Room, now time.Time) bool {
	if room.LastSeqNo == 0 {
		return true
	}

	p.mu.Lock()
	_, polledSinceLaunch := p.polled[server.Name]
	p.mu.Unlock()
	if polledSinceLaunch {
		return false
	}

	if server.LastPollAt == 0 {
		return true
	}
	return now.Sub(time.Unix(server.LastPollAt, 0)) > p.maxInactivity
}

// MarkPolled records a completed poll of the server for this process
// lifetime.
func (p *Planner) MarkPolled(server string) {
	p.mu.Lock()
	p.polled[server] = struct{}{}
	p.mu.Unlock()
}
