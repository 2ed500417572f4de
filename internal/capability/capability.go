// SPDX-License-Identifier: Apache-2.0

// Package capability caches the capability set each server advertised.
// The cache is owned by the subsystem instance (not global state) and is
// consulted by the request signer and the join workflow. A server with no
// cached record is treated as unblinded-only.
package capability

import (
	"sort"
	"strings"
	"sync"
)

// Store is a per-server capability cache.
type Store struct {
	mu   sync.RWMutex
	caps map[string]map[string]struct{}
}

// NewStore returns an empty capability cache.
func NewStore() *Store {
	return &Store{caps: make(map[string]map[string]struct{})}
}

// Replace overwrites the cached capability set of server with caps, as
// returned by a fresh /capabilities response.
func (s *Store) Replace(server string, caps []string) {
	key := normalize(server)
	set := make(map[string]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}

	s.mu.Lock()
	s.caps[key] = set
	s.mu.Unlock()
}

// Supports reports whether server has advertised the given capability.
// Unknown servers support nothing.
func (s *Store) Supports(server, capability string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.caps[normalize(server)]
	if !ok {
		return false
	}
	_, ok = set[capability]
	return ok
}

// Get returns the cached capability list for server, sorted, or nil when
// the server has never reported capabilities.
func (s *Store) Get(server string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.caps[normalize(server)]
	if !ok {
		return nil
	}

	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Forget drops the cached record for server. Called when the last room on
// a server is left.
func (s *Store) Forget(server string) {
	s.mu.Lock()
	delete(s.caps, normalize(server))
	s.mu.Unlock()
}

func normalize(server string) string {
	return strings.ToLower(strings.TrimRight(server, "/"))
}
