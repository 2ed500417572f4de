// Package store persists servers, rooms and sync cursors in a local
// sqlite database. It is the storage collaborator of the protocol core:
// cursor fields are written exclusively through the cursor store, and the
// legacy token map is write-only from the core's perspective.
package store

import (
	"context"
	"time"

	"github.com/sessionlab/go-sogs/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/storage_mock.go -package=mock

// Storage is the persistence surface the protocol core depends on.
type Storage interface {
	UpsertServer(ctx context.Context, server models.Server) error
	GetServer(ctx context.Context, name string) (models.Server, error)
	ListServers(ctx context.Context) ([]models.Server, error)
	DeleteServer(ctx context.Context, name string) error
	SetServerCapabilities(ctx context.Context, name string, caps []string) error
	SetServerLastPoll(ctx context.Context, name string, at time.Time) error
	SetServerInboxCursor(ctx context.Context, name string, id int64) error
	SetServerOutboxCursor(ctx context.Context, name string, id int64) error

	UpsertRoom(ctx context.Context, room models.Room) error
	GetRoom(ctx context.Context, server, token string) (models.Room, error)
	ListRooms(ctx context.Context, server string) ([]models.Room, error)
	DeleteRoom(ctx context.Context, server, token string) error
	SetRoomSeqNo(ctx context.Context, server, token string, seqNo int64) error
	SetRoomInfoUpdate(ctx context.Context, server, token string, infoUpdate int64) error
	SetRoomDeletionID(ctx context.Context, server, token string, deletionID int64) error
	SetRoomDetails(ctx context.Context, server, token string, details models.RoomDetails) error

	SetLegacyToken(ctx context.Context, server, room, token string) error
	GetLegacyToken(ctx context.Context, server, room string) (string, error)
	DeleteLegacyToken(ctx context.Context, server, room string) error

	Close() error
}
