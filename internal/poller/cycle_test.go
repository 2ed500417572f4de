package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sessionlab/go-sogs/internal/adapter"
	"github.com/sessionlab/go-sogs/internal/batch"
	"github.com/sessionlab/go-sogs/internal/capability"
	"github.com/sessionlab/go-sogs/internal/crypto"
	"github.com/sessionlab/go-sogs/internal/cursor"
	"github.com/sessionlab/go-sogs/internal/identity"
	"github.com/sessionlab/go-sogs/internal/logger"
	"github.com/sessionlab/go-sogs/internal/mock"
	"github.com/sessionlab/go-sogs/internal/signer"
	"github.com/sessionlab/go-sogs/models"
)

const (
	testSeedHex      = "c010d89eccbaf5d1c6d19df766c6eedf965d4a28a56f87c9fc819edb59896dd9"
	testServerPubKey = "a03c383cf63c3c4efe67acc52112a6dd734b3a946b9545f488aaa93da7991238"
)

type recordingIngestor struct {
	messages  map[string][]models.Message
	deletions map[string][]int64
	direct    map[bool][]models.DirectMessage
	fail      error
}

func newRecordingIngestor() *recordingIngestor {
	return &recordingIngestor{
		messages:  make(map[string][]models.Message),
		deletions: make(map[string][]int64),
		direct:    make(map[bool][]models.DirectMessage),
	}
}

func (r *recordingIngestor) HandleMessages(_ context.Context, _ models.Server, room string, messages []models.Message) error {
	if r.fail != nil {
		return r.fail
	}
	r.messages[room] = append(r.messages[room], messages...)
	return nil
}

func (r *recordingIngestor) HandleDeletions(_ context.Context, _ models.Server, room string, ids []int64) error {
	r.deletions[room] = append(r.deletions[room], ids...)
	return nil
}

func (r *recordingIngestor) HandleDirectMessages(_ context.Context, _ models.Server, outbox bool, messages []models.DirectMessage) error {
	r.direct[outbox] = append(r.direct[outbox], messages...)
	return nil
}

type pollFixture struct {
	runner    *Runner
	transport *mock.MockTransport
	storage   *mock.MockStorage
	caps      *capability.Store
	planner   *Planner
	ingestor  *recordingIngestor
}

func newPollFixture(t *testing.T) *pollFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	keys, err := crypto.KeyPairFromSeedHex(testSeedHex)
	require.NoError(t, err)

	transport := mock.NewMockTransport(ctrl)
	storage := mock.NewMockStorage(ctrl)
	caps := capability.NewStore()
	resolver := identity.NewResolver(keys)
	planner := NewPlanner(12 * time.Hour)
	ingestor := newRecordingIngestor()

	log := logger.Nop()
	coordinator := batch.NewCoordinator(transport, signer.New(&keys, caps), log)
	cursors := cursor.New(storage, log)

	runner := NewRunner(coordinator, storage, cursors, caps, resolver, planner, ingestor, log)
	runner.now = func() time.Time { return time.Unix(1700000000, 0) }

	return &pollFixture{
		runner:    runner,
		transport: transport,
		storage:   storage,
		caps:      caps,
		planner:   planner,
		ingestor:  ingestor,
	}
}

func strPtr(s string) *string { return &s }

// batchEntry marshals body into a successful batch response entry.
func batchEntry(t *testing.T, body any) models.BatchResponseEntry {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return models.BatchResponseEntry{Code: http.StatusOK, Body: raw}
}

func respondBatch(t *testing.T, entries []models.BatchResponseEntry, wantPaths []string) func(context.Context, adapter.Request, string, string) (*adapter.Response, error) {
	t.Helper()
	return func(_ context.Context, req adapter.Request, _, _ string) (*adapter.Response, error) {
		assert.Equal(t, "/batch", req.Path)
		assert.NotEmpty(t, req.Headers[signer.HeaderSignature])

		var subs []models.BatchSubRequest
		require.NoError(t, json.Unmarshal(req.Body, &subs))
		var paths []string
		for _, sub := range subs {
			paths = append(paths, sub.Path)
		}
		assert.Equal(t, wantPaths, paths)

		body, err := json.Marshal(entries)
		require.NoError(t, err)
		return &adapter.Response{StatusCode: http.StatusOK, Body: body}, nil
	}
}

func TestPollServer_IncrementalCycle(t *testing.T) {
	f := newPollFixture(t)
	ctx := context.Background()

	server := models.Server{Name: "example.org", PublicKey: testServerPubKey, LastPollAt: 1699990000}
	room := models.Room{Server: "example.org", Token: "general", LastSeqNo: 100, LastInfoUpdate: 2}
	f.planner.MarkPolled(server.Name)

	f.storage.EXPECT().GetServer(ctx, "example.org").Return(server, nil)
	f.storage.EXPECT().ListRooms(ctx, "example.org").Return([]models.Room{room}, nil)

	messages := []models.Message{
		{ID: 14, SeqNo: 103, Sender: strPtr("0011"), Data: strPtr("bGF0ZXN0")},
		{ID: 12, SeqNo: 101, Sender: strPtr("0011"), Data: strPtr("Zmlyc3Q=")},
		{ID: 99, SeqNo: 90, Deleted: true},
		{ID: 13, SeqNo: 102, Sender: strPtr("0011"), Data: strPtr("bWlkZGxl")},
	}
	entries := []models.BatchResponseEntry{
		batchEntry(t, models.Capabilities{Capabilities: []string{"sogs"}}),
		batchEntry(t, models.RoomPollInfo{Token: "general", ActiveUsers: 3}),
		batchEntry(t, messages),
	}
	wantPaths := []string{
		"/capabilities",
		"/room/general/pollInfo/2",
		"/room/general/messages/since/100?limit=256",
	}
	f.transport.EXPECT().
		Send(gomock.Any(), gomock.Any(), "example.org", testServerPubKey).
		DoAndReturn(respondBatch(t, entries, wantPaths))

	f.storage.EXPECT().SetServerCapabilities(ctx, "example.org", []string{"sogs"}).Return(nil)
	f.storage.EXPECT().GetRoom(ctx, "example.org", "general").Return(room, nil)
	f.storage.EXPECT().SetRoomSeqNo(ctx, "example.org", "general", int64(103)).Return(nil)
	f.storage.EXPECT().SetServerLastPoll(ctx, "example.org", time.Unix(1700000000, 0)).Return(nil)

	require.NoError(t, f.runner.PollServer(ctx, "example.org"))

	// Live messages arrive sorted ascending by id; the tombstone becomes
	// a deletion event, never a message.
	ids := make([]int64, 0, 3)
	for _, m := range f.ingestor.messages["general"] {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int64{12, 13, 14}, ids)
	assert.Equal(t, []int64{99}, f.ingestor.deletions["general"])
	assert.Equal(t, []string{"sogs"}, f.caps.Get("example.org"))
}

func TestPollServer_SnapshotAfterLongAbsence(t *testing.T) {
	f := newPollFixture(t)
	ctx := context.Background()

	// Last poll thirty days ago and first poll since launch: the room
	// has a cursor but the plan must still snapshot.
	server := models.Server{Name: "example.org", PublicKey: testServerPubKey, LastPollAt: 1700000000 - 30*24*3600}
	room := models.Room{Server: "example.org", Token: "general", LastSeqNo: 500}

	f.storage.EXPECT().GetServer(ctx, "example.org").Return(server, nil)
	f.storage.EXPECT().ListRooms(ctx, "example.org").Return([]models.Room{room}, nil)

	entries := []models.BatchResponseEntry{
		batchEntry(t, models.Capabilities{Capabilities: []string{"sogs"}}),
		batchEntry(t, models.RoomPollInfo{Token: "general"}),
		batchEntry(t, []models.Message{}),
	}
	wantPaths := []string{
		"/capabilities",
		"/room/general/pollInfo/0",
		"/room/general/messages/recent?limit=256",
	}
	f.transport.EXPECT().
		Send(gomock.Any(), gomock.Any(), "example.org", testServerPubKey).
		DoAndReturn(respondBatch(t, entries, wantPaths))

	f.storage.EXPECT().SetServerCapabilities(ctx, "example.org", []string{"sogs"}).Return(nil)
	f.storage.EXPECT().SetServerLastPoll(ctx, "example.org", gomock.Any()).Return(nil)

	require.NoError(t, f.runner.PollServer(ctx, "example.org"))

	// The next poll of the same server goes incremental again.
	assert.False(t, f.planner.ShouldSnapshot(server, room, time.Unix(1700000000, 0)))
}

func TestPollServer_BlindedServerPollsInboxAndOutbox(t *testing.T) {
	f := newPollFixture(t)
	ctx := context.Background()

	server := models.Server{
		Name:         "example.org",
		PublicKey:    testServerPubKey,
		Capabilities: []string{"sogs", models.CapabilityBlind},
		InboxCursor:  7,
	}
	f.caps.Replace(server.Name, server.Capabilities)
	f.planner.MarkPolled(server.Name)

	f.storage.EXPECT().GetServer(ctx, "example.org").Return(server, nil)
	f.storage.EXPECT().ListRooms(ctx, "example.org").Return(nil, nil)

	inbox := []models.DirectMessage{{ID: 9, Sender: "15aa", Message: "c2VhbGVk"}}
	entries := []models.BatchResponseEntry{
		batchEntry(t, models.Capabilities{Capabilities: server.Capabilities}),
		batchEntry(t, inbox),
		batchEntry(t, []models.DirectMessage{}),
	}
	wantPaths := []string{"/capabilities", "/inbox/since/7", "/outbox"}
	f.transport.EXPECT().
		Send(gomock.Any(), gomock.Any(), "example.org", testServerPubKey).
		DoAndReturn(respondBatch(t, entries, wantPaths))

	f.storage.EXPECT().SetServerCapabilities(ctx, "example.org", server.Capabilities).Return(nil)
	f.storage.EXPECT().GetServer(ctx, "example.org").Return(server, nil)
	f.storage.EXPECT().SetServerInboxCursor(ctx, "example.org", int64(9)).Return(nil)
	f.storage.EXPECT().SetServerLastPoll(ctx, "example.org", gomock.Any()).Return(nil)

	require.NoError(t, f.runner.PollServer(ctx, "example.org"))
	assert.Len(t, f.ingestor.direct[false], 1)
	assert.Empty(t, f.ingestor.direct[true])
}

func TestPollServer_FailedSubRequestDoesNotBlockOthers(t *testing.T) {
	f := newPollFixture(t)
	ctx := context.Background()

	server := models.Server{Name: "example.org", PublicKey: testServerPubKey}
	room := models.Room{Server: "example.org", Token: "general", LastSeqNo: 100}
	f.planner.MarkPolled(server.Name)

	f.storage.EXPECT().GetServer(ctx, "example.org").Return(server, nil)
	f.storage.EXPECT().ListRooms(ctx, "example.org").Return([]models.Room{room}, nil)

	entries := []models.BatchResponseEntry{
		{Code: http.StatusInternalServerError},
		{Code: http.StatusNotFound},
		batchEntry(t, []models.Message{{ID: 5, SeqNo: 101, Sender: strPtr("0011"), Data: strPtr("aGk=")}}),
	}
	f.transport.EXPECT().
		Send(gomock.Any(), gomock.Any(), "example.org", testServerPubKey).
		DoAndReturn(respondBatch(t, entries, []string{
			"/capabilities",
			"/room/general/pollInfo/0",
			"/room/general/messages/since/100?limit=256",
		}))

	// Only the successful messages entry commits.
	f.storage.EXPECT().GetRoom(ctx, "example.org", "general").Return(room, nil)
	f.storage.EXPECT().SetRoomSeqNo(ctx, "example.org", "general", int64(101)).Return(nil)
	f.storage.EXPECT().SetServerLastPoll(ctx, "example.org", gomock.Any()).Return(nil)

	require.NoError(t, f.runner.PollServer(ctx, "example.org"))
	assert.Len(t, f.ingestor.messages["general"], 1)
}

func TestPollServer_IngestFailureSuppressesCursorWrite(t *testing.T) {
	f := newPollFixture(t)
	ctx := context.Background()

	server := models.Server{Name: "example.org", PublicKey: testServerPubKey}
	room := models.Room{Server: "example.org", Token: "general", LastSeqNo: 100}
	f.planner.MarkPolled(server.Name)
	f.ingestor.fail = fmt.Errorf("display layer down")

	f.storage.EXPECT().GetServer(ctx, "example.org").Return(server, nil)
	f.storage.EXPECT().ListRooms(ctx, "example.org").Return([]models.Room{room}, nil)

	entries := []models.BatchResponseEntry{
		batchEntry(t, models.Capabilities{Capabilities: []string{"sogs"}}),
		batchEntry(t, models.RoomPollInfo{Token: "general"}),
		batchEntry(t, []models.Message{{ID: 5, SeqNo: 101, Sender: strPtr("0011"), Data: strPtr("aGk=")}}),
	}
	f.transport.EXPECT().
		Send(gomock.Any(), gomock.Any(), "example.org", testServerPubKey).
		DoAndReturn(respondBatch(t, entries, []string{
			"/capabilities",
			"/room/general/pollInfo/0",
			"/room/general/messages/since/100?limit=256",
		}))
	f.storage.EXPECT().SetServerCapabilities(ctx, "example.org", []string{"sogs"}).Return(nil)

	// No SetRoomSeqNo, no SetServerLastPoll: the page is re-delivered
	// next cycle.
	err := f.runner.PollServer(ctx, "example.org")
	assert.ErrorContains(t, err, "display layer down")
}

func TestPlanner_ShouldSnapshot(t *testing.T) {
	planner := NewPlanner(12 * time.Hour)
	now := time.Unix(1700000000, 0)
	server := models.Server{Name: "example.org", LastPollAt: now.Add(-time.Hour).Unix()}

	// No cursor: always snapshot.
	assert.True(t, planner.ShouldSnapshot(server, models.Room{}, now))

	// Cursor present, recent activity: incremental.
	withCursor := models.Room{LastSeqNo: 10}
	assert.False(t, planner.ShouldSnapshot(server, withCursor, now))

	// Cursor present but idle past the threshold and not yet polled
	// this launch: snapshot.
	idle := models.Server{Name: "idle.org", LastPollAt: now.Add(-13 * time.Hour).Unix()}
	assert.True(t, planner.ShouldSnapshot(idle, withCursor, now))

	// Once polled this launch, idleness no longer matters.
	planner.MarkPolled("idle.org")
	assert.False(t, planner.ShouldSnapshot(idle, withCursor, now))

	// Never polled at all: snapshot.
	fresh := models.Server{Name: "fresh.org"}
	assert.True(t, planner.ShouldSnapshot(fresh, withCursor, now))
}
