package cursor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sessionlab/go-sogs/internal/logger"
	"github.com/sessionlab/go-sogs/internal/mock"
	"github.com/sessionlab/go-sogs/internal/store"
	"github.com/sessionlab/go-sogs/models"
)

func TestAdvanceSeqNo(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mock.NewMockStorage(ctrl)
	cursors := New(storage, logger.Nop())
	ctx := context.Background()

	room := models.Room{Server: "example.org", Token: "general", LastSeqNo: 100}

	storage.EXPECT().GetRoom(ctx, "example.org", "general").Return(room, nil)
	storage.EXPECT().SetRoomSeqNo(ctx, "example.org", "general", int64(103)).Return(nil)

	moved, err := cursors.AdvanceSeqNo(ctx, "example.org", "general", 103)
	require.NoError(t, err)
	assert.True(t, moved)
}

func TestAdvanceSeqNo_ReplayedCandidateIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mock.NewMockStorage(ctrl)
	cursors := New(storage, logger.Nop())
	ctx := context.Background()

	room := models.Room{Server: "example.org", Token: "general", LastSeqNo: 103}

	// Equal and stale candidates must never reach storage.
	storage.EXPECT().GetRoom(ctx, "example.org", "general").Return(room, nil).Times(2)

	moved, err := cursors.AdvanceSeqNo(ctx, "example.org", "general", 103)
	require.NoError(t, err)
	assert.False(t, moved)

	moved, err = cursors.AdvanceSeqNo(ctx, "example.org", "general", 99)
	require.NoError(t, err)
	assert.False(t, moved)
}

func TestAdvanceSeqNo_UnknownRoom(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mock.NewMockStorage(ctrl)
	cursors := New(storage, logger.Nop())
	ctx := context.Background()

	storage.EXPECT().GetRoom(ctx, "example.org", "gone").
		Return(models.Room{}, store.ErrRoomNotFound)

	_, err := cursors.AdvanceSeqNo(ctx, "example.org", "gone", 5)
	assert.ErrorIs(t, err, store.ErrRoomNotFound)
}

func TestAdvanceSeqNo_WriteFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mock.NewMockStorage(ctrl)
	cursors := New(storage, logger.Nop())
	ctx := context.Background()

	writeErr := errors.New("disk full")
	storage.EXPECT().GetRoom(ctx, "example.org", "general").
		Return(models.Room{LastSeqNo: 1}, nil)
	storage.EXPECT().SetRoomSeqNo(ctx, "example.org", "general", int64(2)).
		Return(writeErr)

	moved, err := cursors.AdvanceSeqNo(ctx, "example.org", "general", 2)
	assert.ErrorIs(t, err, writeErr)
	assert.False(t, moved)
}

func TestAdvanceInfoUpdateAndDeletionID(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mock.NewMockStorage(ctrl)
	cursors := New(storage, logger.Nop())
	ctx := context.Background()

	room := models.Room{LastInfoUpdate: 5, LastDeletionID: 40}

	storage.EXPECT().GetRoom(ctx, "example.org", "general").Return(room, nil)
	storage.EXPECT().SetRoomInfoUpdate(ctx, "example.org", "general", int64(6)).Return(nil)
	moved, err := cursors.AdvanceInfoUpdate(ctx, "example.org", "general", 6)
	require.NoError(t, err)
	assert.True(t, moved)

	storage.EXPECT().GetRoom(ctx, "example.org", "general").Return(room, nil)
	moved, err = cursors.AdvanceDeletionID(ctx, "example.org", "general", 40)
	require.NoError(t, err)
	assert.False(t, moved)
}

func TestAdvanceServerCursors(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mock.NewMockStorage(ctrl)
	cursors := New(storage, logger.Nop())
	ctx := context.Background()

	server := models.Server{Name: "example.org", InboxCursor: 10, OutboxCursor: 20}

	storage.EXPECT().GetServer(ctx, "example.org").Return(server, nil)
	storage.EXPECT().SetServerInboxCursor(ctx, "example.org", int64(11)).Return(nil)
	moved, err := cursors.AdvanceInboxCursor(ctx, "example.org", 11)
	require.NoError(t, err)
	assert.True(t, moved)

	storage.EXPECT().GetServer(ctx, "example.org").Return(server, nil)
	moved, err = cursors.AdvanceOutboxCursor(ctx, "example.org", 15)
	require.NoError(t, err)
	assert.False(t, moved)
}
