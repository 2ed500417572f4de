// Package cursor owns every write to the persisted sync positions. A
// cursor only moves forward: replayed or out-of-order poll results can
// never rewind what has already been acknowledged.
package cursor

import (
	"context"

	"github.com/sessionlab/go-sogs/internal/logger"
	"github.com/sessionlab/go-sogs/internal/store"
)

// Store advances sync cursors with strictly-greater semantics. Each
// Advance method reads the persisted position, and writes the candidate
// only when it is strictly greater. The returned bool reports whether a
// write happened.
type Store struct {
	storage store.Storage
	log     *logger.Logger
}

func New(storage store.Storage, log *logger.Logger) *Store {
	return &Store{storage: storage, log: log}
}

// AdvanceSeqNo moves the room's message sequence cursor.
func (c *Store) AdvanceSeqNo(ctx context.Context, server, room string, candidate int64) (bool, error) {
	current, err := c.storage.GetRoom(ctx, server, room)
	if err != nil {
		return false, err
	}
	if candidate <= current.LastSeqNo {
		return false, nil
	}
	if err := c.storage.SetRoomSeqNo(ctx, server, room, candidate); err != nil {
		return false, err
	}
	c.log.Debug().Str("server", server).Str("room", room).
		Int64("from", current.LastSeqNo).Int64("to", candidate).
		Msg("advanced seq_no cursor")
	return true, nil
}

// AdvanceInfoUpdate moves the room's info-updates cursor.
func (c *Store) AdvanceInfoUpdate(ctx context.Context, server, room string, candidate int64) (bool, error) {
	current, err := c.storage.GetRoom(ctx, server, room)
	if err != nil {
		return false, err
	}
	if candidate <= current.LastInfoUpdate {
		return false, nil
	}
	if err := c.storage.SetRoomInfoUpdate(ctx, server, room, candidate); err != nil {
		return false, err
	}
	return true, nil
}

// AdvanceDeletionID moves the room's deletion cursor.
func (c *Store) AdvanceDeletionID(ctx context.Context, server, room string, candidate int64) (bool, error) {
	current, err := c.storage.GetRoom(ctx, server, room)
	if err != nil {
		return false, err
	}
	if candidate <= current.LastDeletionID {
		return false, nil
	}
	if err := c.storage.SetRoomDeletionID(ctx, server, room, candidate); err != nil {
		return false, err
	}
	return true, nil
}

// AdvanceInboxCursor moves the server-wide inbox cursor.
func (c *Store) AdvanceInboxCursor(ctx context.Context, server string, candidate int64) (bool, error) {
	current, err := c.storage.GetServer(ctx, server)
	if err != nil {
		return false, err
	}
	if candidate <= current.InboxCursor {
		return false, nil
	}
	if err := c.storage.SetServerInboxCursor(ctx, server, candidate); err != nil {
		return false, err
	}
	return true, nil
}

// AdvanceOutboxCursor moves the server-wide outbox cursor.
func (c *Store) AdvanceOutboxCursor(ctx context.Context, server string, candidate int64) (bool, error) {
	current, err := c.storage.GetServer(ctx, server)
	if err != nil {
		return false, err
	}
	if candidate <= current.OutboxCursor {
		return false, nil
	}
	if err := c.storage.SetServerOutboxCursor(ctx, server, candidate); err != nil {
		return false, err
	}
	return true, nil
}
