// Package identity answers "is this user a moderator or admin of this
// room" across the three public encodings a single user can appear
// under. Moderator lists published by a server may contain any mix of
// standard, unblinded and blinded IDs, so a lookup for one encoding has
// to consider the user's other encodings too.
package identity

import (
	"sync"

	"github.com/sessionlab/go-sogs/internal/crypto"
	"github.com/sessionlab/go-sogs/models"
)

type roomKey struct {
	server string
	room   string
}

type memberSet struct {
	admins     map[string]struct{}
	moderators map[string]struct{}
}

// Resolver caches per-room moderator and admin lists and resolves
// membership queries against them. Lists are replaced wholesale from
// poll results.
type Resolver struct {
	keys crypto.KeyPair

	mu    sync.RWMutex
	rooms map[roomKey]memberSet
}

func NewResolver(keys crypto.KeyPair) *Resolver {
	return &Resolver{keys: keys, rooms: make(map[roomKey]memberSet)}
}

// UpdateRoom replaces the cached lists for a room from fresh room
// details. Hidden moderators and admins are folded into the visible
// sets; visibility only affects display, not authority.
func (r *Resolver) UpdateRoom(server, room string, details models.RoomDetails) {
	set := memberSet{
		admins:     make(map[string]struct{}, len(details.Admins)+len(details.HiddenAdmins)),
		moderators: make(map[string]struct{}, len(details.Moderators)+len(details.HiddenModerators)),
	}
	for _, id := range details.Admins {
		set.admins[id] = struct{}{}
	}
	for _, id := range details.HiddenAdmins {
		set.admins[id] = struct{}{}
	}
	for _, id := range details.Moderators {
		set.moderators[id] = struct{}{}
	}
	for _, id := range details.HiddenModerators {
		set.moderators[id] = struct{}{}
	}

	r.mu.Lock()
	r.rooms[roomKey{server: server, room: room}] = set
	r.mu.Unlock()
}

// ForgetRoom drops the cached lists, typically on leave.
func (r *Resolver) ForgetRoom(server, room string) {
	r.mu.Lock()
	delete(r.rooms, roomKey{server: server, room: room})
	r.mu.Unlock()
}

// IsAdmin reports whether sessionID holds admin authority in the room.
func (r *Resolver) IsAdmin(server models.Server, room, sessionID string) bool {
	set, ok := r.lookup(server.Name, room)
	if !ok {
		return false
	}
	return r.memberOf(set.admins, server, sessionID)
}

// IsModeratorOrAdmin reports whether sessionID holds moderator or admin
// authority in the room.
func (r *Resolver) IsModeratorOrAdmin(server models.Server, room, sessionID string) bool {
	set, ok := r.lookup(server.Name, room)
	if !ok {
		return false
	}
	return r.memberOf(set.admins, server, sessionID) || r.memberOf(set.moderators, server, sessionID)
}

func (r *Resolver) lookup(server, room string) (memberSet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.rooms[roomKey{server: server, room: room}]
	return set, ok
}

// memberOf checks sessionID against members. A direct hit answers
// immediately. Otherwise membership can only be established for the
// local user: if sessionID is one of our own encodings, every encoding
// of ours is checked, because the server may have published the list
// under a different encoding than the one queried.
func (r *Resolver) memberOf(members map[string]struct{}, server models.Server, sessionID string) bool {
	if _, ok := members[sessionID]; ok {
		return true
	}

	parsed, err := crypto.ParseSessionID(sessionID)
	if err != nil {
		return false
	}

	self := r.selfEncodings(server)
	queried, ok := self[parsed.Prefix]
	if !ok || queried != sessionID {
		return false
	}

	for _, id := range self {
		if _, ok := members[id]; ok {
			return true
		}
	}
	return false
}

// selfEncodings returns the local user's session IDs by prefix. The
// blinded encoding requires the server key and is skipped when the
// derivation fails.
func (r *Resolver) selfEncodings(server models.Server) map[crypto.IDPrefix]string {
	self := make(map[crypto.IDPrefix]string, 3)

	if standard, err := r.keys.StandardID(); err == nil {
		self[crypto.PrefixStandard] = standard.String()
	}
	self[crypto.PrefixUnblinded] = r.keys.UnblindedID().String()

	if blinded, err := crypto.DeriveBlindedKeyPair(server.PublicKey, r.keys); err == nil {
		self[crypto.PrefixBlinded] = blinded.BlindedID().String()
	}

	return self
}
