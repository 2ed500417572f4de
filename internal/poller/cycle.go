// SPDX-License-Identifier: Apache-2.0

// Package poller drives the periodic synchronisation of every joined
// server: it plans which endpoints a poll needs, bundles them into one
// signed batch, and feeds the results to the ingestion layer and the
// cursor store. Cursors only move after their results were ingested, so
// a crash mid-poll re-delivers instead of losing messages.
package poller

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/sessionlab/go-sogs/internal/batch"
	"github.com/sessionlab/go-sogs/internal/capability"
	"github.com/sessionlab/go-sogs/internal/cursor"
	"github.com/sessionlab/go-sogs/internal/identity"
	"github.com/sessionlab/go-sogs/internal/logger"
	"github.com/sessionlab/go-sogs/internal/store"
	"github.com/sessionlab/go-sogs/models"
)

// pageSize caps how many messages one poll sub-request returns.
const pageSize = 256

// Ingestor receives the decoded results of a poll. Implementations own
// message persistence and display; the poller owns cursors, so an error
// from the Ingestor suppresses the cursor write and the data is
// re-delivered on the next poll.
type Ingestor interface {
	HandleMessages(ctx context.Context, server models.Server, room string, messages []models.Message) error
	HandleDeletions(ctx context.Context, server models.Server, room string, ids []int64) error
	HandleDirectMessages(ctx context.Context, server models.Server, outbox bool, messages []models.DirectMessage) error
}

// Runner executes one poll cycle against one server.
type Runner struct {
	coordinator *batch.Coordinator
	storage     store.Storage
	cursors     *cursor.Store
	caps        *capability.Store
	resolver    *identity.Resolver
	planner     *Planner
	ingestor    Ingestor
	log         *logger.Logger
	now         func() time.Time
}

func NewRunner(
	coordinator *batch.Coordinator,
	storage store.Storage,
	cursors *cursor.Store,
	caps *capability.Store,
	resolver *identity.Resolver,
	planner *Planner,
	ingestor Ingestor,
	log *logger.Logger,
) *Runner {
	return &Runner{
		coordinator: coordinator,
		storage:     storage,
		cursors:     cursors,
		caps:        caps,
		resolver:    resolver,
		planner:     planner,
		ingestor:    ingestor,
		log:         log,
		now:         time.Now,
	}
}

// plannedSub pairs a batch sub-request with the handler that consumes
// its decoded result.
type plannedSub struct {
	sub    batch.Sub
	handle func(ctx context.Context) error
}

// PollServer runs one full poll of the named server: capabilities, each
// joined room's poll-info and messages, and the direct-message inbox and
// outbox when the server requires blinding. Sub-request failures are
// independent; successful entries are always committed.
func (r *Runner) PollServer(ctx context.Context, serverName string) error {
	server, err := r.storage.GetServer(ctx, serverName)
	if err != nil {
		return err
	}
	rooms, err := r.storage.ListRooms(ctx, server.Name)
	if err != nil {
		return err
	}

	planned := r.plan(server, rooms)

	subs := make([]batch.Sub, len(planned))
	for i, p := range planned {
		subs[i] = p.sub
	}

	entries, err := r.coordinator.Batch(ctx, server, subs)
	if err != nil {
		return err
	}

	var failed int
	for i, entry := range entries {
		if entryErr := batch.EntryError(entry); entryErr != nil {
			failed++
			r.log.Warn().Err(entryErr).Str("server", server.Name).
				Str("path", planned[i].sub.Path).Int("code", entry.Code).
				Msg("poll sub-request failed")
			continue
		}
		if err := planned[i].handle(ctx); err != nil {
			return fmt.Errorf("poll %s %s: %w", server.Name, planned[i].sub.Path, err)
		}
	}

	if err := r.storage.SetServerLastPoll(ctx, server.Name, r.now()); err != nil {
		return err
	}
	r.planner.MarkPolled(server.Name)

	r.log.Debug().Str("server", server.Name).
		Int("requests", len(planned)).Int("failed", failed).
		Msg("poll cycle complete")
	return nil
}

func (r *Runner) plan(server models.Server, rooms []models.Room) []plannedSub {
	now := r.now()
	planned := make([]plannedSub, 0, 2*len(rooms)+3)

	caps := new(models.Capabilities)
	planned = append(planned, plannedSub{
		sub: batch.Sub{Method: http.MethodGet, Path: "/capabilities", Target: caps},
		handle: func(ctx context.Context) error {
			return r.handleCapabilities(ctx, server, *caps)
		},
	})

	for _, room := range rooms {
		info := new(models.RoomPollInfo)
		planned = append(planned, plannedSub{
			sub: batch.Sub{
				Method: http.MethodGet,
				Path:   fmt.Sprintf("/room/%s/pollInfo/%d", room.Token, room.LastInfoUpdate),
				Target: info,
			},
			handle: func(ctx context.Context) error {
				return r.handlePollInfo(ctx, server, room, *info)
			},
		})

		path := fmt.Sprintf("/room/%s/messages/since/%d?limit=%d", room.Token, room.LastSeqNo, pageSize)
		if r.planner.ShouldSnapshot(server, room, now) {
			path = fmt.Sprintf("/room/%s/messages/recent?limit=%d", room.Token, pageSize)
		}
		messages := new([]models.Message)
		planned = append(planned, plannedSub{
			sub: batch.Sub{Method: http.MethodGet, Path: path, Target: messages},
			handle: func(ctx context.Context) error {
				return r.handleMessages(ctx, server, room.Token, *messages)
			},
		})
	}

	if r.caps.Supports(server.Name, models.CapabilityBlind) {
		planned = append(planned,
			r.planDirectMessages(server, false, server.InboxCursor),
			r.planDirectMessages(server, true, server.OutboxCursor),
		)
	}

	return planned
}

func (r *Runner) planDirectMessages(server models.Server, outbox bool, since int64) plannedSub {
	base := "/inbox"
	if outbox {
		base = "/outbox"
	}
	path := base
	if since > 0 {
		path = fmt.Sprintf("%s/since/%d", base, since)
	}

	messages := new([]models.DirectMessage)
	return plannedSub{
		sub: batch.Sub{Method: http.MethodGet, Path: path, Target: messages},
		handle: func(ctx context.Context) error {
			return r.handleDirectMessages(ctx, server, outbox, *messages)
		},
	}
}

func (r *Runner) handleCapabilities(ctx context.Context, server models.Server, caps models.Capabilities) error {
	r.caps.Replace(server.Name, caps.Capabilities)
	return r.storage.SetServerCapabilities(ctx, server.Name, caps.Capabilities)
}

func (r *Runner) handlePollInfo(ctx context.Context, server models.Server, room models.Room, info models.RoomPollInfo) error {
	if info.Details == nil {
		// Unchanged since the info_updates value polled against.
		return nil
	}

	if err := r.storage.SetRoomDetails(ctx, server.Name, room.Token, *info.Details); err != nil {
		return err
	}
	r.resolver.UpdateRoom(server.Name, room.Token, *info.Details)

	_, err := r.cursors.AdvanceInfoUpdate(ctx, server.Name, room.Token, info.Details.InfoUpdates)
	return err
}

// handleMessages splits a message page into live messages and deletion
// tombstones, hands both to the ingestor in that order, then advances
// the room cursor to the highest sequence number seen — tombstones
// included, exactly once per page.
func (r *Runner) handleMessages(ctx context.Context, server models.Server, room string, messages []models.Message) error {
	if len(messages) == 0 {
		return nil
	}

	var maxSeqNo int64
	var live []models.Message
	var deleted []int64
	for _, m := range messages {
		if m.SeqNo > maxSeqNo {
			maxSeqNo = m.SeqNo
		}
		if m.Tombstone() {
			deleted = append(deleted, m.ID)
			continue
		}
		live = append(live, m)
	}

	sort.Slice(live, func(i, j int) bool { return live[i].ID < live[j].ID })

	if len(live) > 0 {
		if err := r.ingestor.HandleMessages(ctx, server, room, live); err != nil {
			return err
		}
	}
	if len(deleted) > 0 {
		if err := r.ingestor.HandleDeletions(ctx, server, room, deleted); err != nil {
			return err
		}
	}

	_, err := r.cursors.AdvanceSeqNo(ctx, server.Name, room, maxSeqNo)
	return err
}

func (r *Runner) handleDirectMessages(ctx context.Context, server models.Server, outbox bool, messages []models.DirectMessage) error {
	if len(messages) == 0 {
		return nil
	}

	var maxID int64
	for _, m := range messages {
		if m.ID > maxID {
			maxID = m.ID
		}
	}

	if err := r.ingestor.HandleDirectMessages(ctx, server, outbox, messages); err != nil {
		return err
	}

	advance := r.cursors.AdvanceInboxCursor
	if outbox {
		advance = r.cursors.AdvanceOutboxCursor
	}
	_, err := advance(ctx, server.Name, maxID)
	return err
}
