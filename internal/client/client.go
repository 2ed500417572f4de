// SPDX-License-Identifier: Apache-2.0

// Package client exposes the user-facing operations of the community
// client: joining and leaving rooms, posting messages, direct messages,
// and moderation. Everything here goes out as signed batch or sequence
// requests; the background poller brings the results back in.
package client

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sessionlab/go-sogs/internal/batch"
	"github.com/sessionlab/go-sogs/internal/cache"
	"github.com/sessionlab/go-sogs/internal/capability"
	"github.com/sessionlab/go-sogs/internal/identity"
	"github.com/sessionlab/go-sogs/internal/logger"
	"github.com/sessionlab/go-sogs/internal/signer"
	"github.com/sessionlab/go-sogs/internal/store"
	"github.com/sessionlab/go-sogs/internal/workers"
	"github.com/sessionlab/go-sogs/models"
)

// Client is the user-facing API over one local identity and any number
// of joined servers.
type Client struct {
	coordinator *batch.Coordinator
	signer      *signer.Signer
	caps        *capability.Store
	storage     store.Storage
	resolver    *identity.Resolver
	workers     *workers.Manager
	inflight    *cache.InflightGroup
	log         *logger.Logger
}

func New(
	coordinator *batch.Coordinator,
	sgn *signer.Signer,
	caps *capability.Store,
	storage store.Storage,
	resolver *identity.Resolver,
	manager *workers.Manager,
	log *logger.Logger,
) *Client {
	return &Client{
		coordinator: coordinator,
		signer:      sgn,
		caps:        caps,
		storage:     storage,
		resolver:    resolver,
		workers:     manager,
		inflight:    cache.NewInflightGroup(),
		log:         log,
	}
}

// JoinRoom subscribes to a room: capabilities and room details are
// fetched in one causally ordered sequence, both are persisted, and a
// poller is started for the server if none is running. The capability
// fetch comes first so the very first poll already signs with the
// scheme the server demands.
func (c *Client) JoinRoom(ctx context.Context, server models.Server, roomToken string) (models.Room, error) {
	var caps models.Capabilities
	var details models.RoomDetails

	subs := []batch.Sub{
		{Method: http.MethodGet, Path: "/capabilities", Target: &caps},
		{Method: http.MethodGet, Path: "/room/" + url.PathEscape(roomToken), Target: &details},
	}
	entries, err := c.coordinator.Sequence(ctx, server, subs)
	if err != nil {
		return models.Room{}, err
	}
	for i, entry := range entries {
		if entryErr := batch.EntryError(entry); entryErr != nil {
			return models.Room{}, fmt.Errorf("join %s/%s: %s: %w",
				server.Name, roomToken, subs[i].Path, entryErr)
		}
	}

	c.caps.Replace(server.Name, caps.Capabilities)
	server.Capabilities = caps.Capabilities
	if err := c.storage.UpsertServer(ctx, server); err != nil {
		return models.Room{}, err
	}

	room := models.Room{
		Server:      server.Name,
		Token:       details.Token,
		PublicKey:   server.PublicKey,
		Name:        details.Name,
		Description: details.Description,
		ImageID:     details.ImageID,
	}
	if err := c.storage.UpsertRoom(ctx, room); err != nil {
		return models.Room{}, err
	}
	c.resolver.UpdateRoom(server.Name, room.Token, details)

	c.workers.Add(server.Name)
	c.log.Info().Str("server", server.Name).Str("room", room.Token).Msg("joined room")
	return room, nil
}

// LeaveRoom drops the room locally. When it was the server's last room
// the server record, its capabilities and its poller go too. Leaving
// never talks to the server; SOGS has no unsubscribe endpoint.
func (c *Client) LeaveRoom(ctx context.Context, serverName, roomToken string) error {
	if err := c.storage.DeleteRoom(ctx, serverName, roomToken); err != nil {
		return err
	}
	c.resolver.ForgetRoom(serverName, roomToken)
	if err := c.storage.DeleteLegacyToken(ctx, serverName, roomToken); err != nil &&
		!isNotFound(err) {
		return err
	}

	rooms, err := c.storage.ListRooms(ctx, serverName)
	if err != nil {
		return err
	}
	if len(rooms) > 0 {
		return nil
	}

	c.workers.Remove(serverName)
	c.caps.Forget(serverName)
	if err := c.storage.DeleteServer(ctx, serverName); err != nil {
		return err
	}
	c.log.Info().Str("server", serverName).Msg("left last room, dropped server")
	return nil
}

// MessageOptions carries the optional whisper targeting of a post.
type MessageOptions struct {
	// WhisperTo limits visibility to one session ID (plus moderators).
	WhisperTo string
	// WhisperMods limits visibility to room moderators.
	WhisperMods bool
}

// SendMessage signs and posts a message to a room. The payload is
// signed with the same key scheme the request itself is signed with, so
// the server can verify the post belongs to the authenticated identity.
func (c *Client) SendMessage(ctx context.Context, server models.Server, roomToken string, data []byte, opts MessageOptions) (models.Message, error) {
	_, sig, err := c.signer.SignContent(data, server)
	if err != nil {
		return models.Message{}, err
	}

	req := models.SendMessageRequest{
		Data:      base64.StdEncoding.EncodeToString(data),
		Signature: base64.StdEncoding.EncodeToString(sig),
		Whisper:   opts.WhisperMods,
	}
	if opts.WhisperTo != "" {
		req.WhisperTo = &opts.WhisperTo
	}

	var posted models.Message
	path := "/room/" + url.PathEscape(roomToken) + "/message"
	if err := c.coordinator.Do(ctx, server, http.MethodPost, path, req, &posted); err != nil {
		return models.Message{}, err
	}
	return posted, nil
}

// SendDirectMessage seals a message to the recipient's blinded identity
// and posts it to their inbox on the server.
func (c *Client) SendDirectMessage(ctx context.Context, server models.Server, recipientBlindedID string, message []byte) (models.SendDirectMessageResponse, error) {
	sealed, err := c.signer.SealInboxMessage(message, recipientBlindedID, server)
	if err != nil {
		return models.SendDirectMessageResponse{}, err
	}

	req := models.SendDirectMessageRequest{
		Message: base64.StdEncoding.EncodeToString(sealed),
	}

	var resp models.SendDirectMessageResponse
	path := "/inbox/" + recipientBlindedID
	if err := c.coordinator.Do(ctx, server, http.MethodPost, path, req, &resp); err != nil {
		return models.SendDirectMessageResponse{}, err
	}
	return resp, nil
}

// DeleteMessage removes a single message from a room. Requires
// moderator authority unless it is the caller's own message.
func (c *Client) DeleteMessage(ctx context.Context, server models.Server, roomToken string, messageID int64) error {
	path := fmt.Sprintf("/room/%s/message/%d", url.PathEscape(roomToken), messageID)
	return c.coordinator.Do(ctx, server, http.MethodDelete, path, nil, nil)
}

// BanUser bans a session ID per the request's scope (listed rooms or
// server-wide, optionally timed).
func (c *Client) BanUser(ctx context.Context, server models.Server, sessionID string, ban models.BanRequest) error {
	path := "/user/" + sessionID + "/ban"
	return c.coordinator.Do(ctx, server, http.MethodPost, path, ban, nil)
}

// UnbanUser lifts a ban on a session ID, either in the listed rooms or
// server-wide.
func (c *Client) UnbanUser(ctx context.Context, server models.Server, sessionID string, unban models.UnbanRequest) error {
	path := "/user/" + sessionID + "/unban"
	return c.coordinator.Do(ctx, server, http.MethodPost, path, unban, nil)
}

// SetModerator appoints or removes moderator/admin permissions for a
// session ID, per room or globally.
func (c *Client) SetModerator(ctx context.Context, server models.Server, sessionID string, mod models.ModeratorRequest) error {
	path := "/user/" + sessionID + "/moderator"
	return c.coordinator.Do(ctx, server, http.MethodPost, path, mod, nil)
}

// BanAndDeleteAll bans a session ID from a room and deletes everything
// they posted there, as one causally ordered sequence: the deletion
// only runs once the ban landed.
func (c *Client) BanAndDeleteAll(ctx context.Context, server models.Server, roomToken, sessionID string) (models.DeleteAllResponse, error) {
	var deleted models.DeleteAllResponse
	subs := []batch.Sub{
		{
			Method: http.MethodPost,
			Path:   "/user/" + sessionID + "/ban",
			Body:   models.BanRequest{Rooms: []string{roomToken}},
		},
		{
			Method: http.MethodDelete,
			Path:   fmt.Sprintf("/room/%s/all/%s", url.PathEscape(roomToken), sessionID),
			Target: &deleted,
		},
	}

	entries, err := c.coordinator.Sequence(ctx, server, subs)
	if err != nil {
		return models.DeleteAllResponse{}, err
	}
	for i, entry := range entries {
		if entryErr := batch.EntryError(entry); entryErr != nil {
			return models.DeleteAllResponse{}, fmt.Errorf("ban and delete all %s in %s/%s: %s: %w",
				sessionID, server.Name, roomToken, subs[i].Path, entryErr)
		}
	}
	return deleted, nil
}

// DefaultRooms fetches the server's public room directory. Concurrent
// callers for the same server share one fetch.
func (c *Client) DefaultRooms(ctx context.Context, server models.Server) ([]models.RoomDetails, error) {
	value, err := c.inflight.Do(ctx, "rooms/"+server.Name, func() (any, error) {
		var rooms []models.RoomDetails
		if err := c.coordinator.Do(ctx, server, http.MethodGet, "/rooms", nil, &rooms); err != nil {
			return nil, err
		}
		return rooms, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]models.RoomDetails), nil
}

// IsModeratorOrAdmin resolves moderator status for a session ID in a
// room, across the user's equivalent identity encodings.
func (c *Client) IsModeratorOrAdmin(server models.Server, roomToken, sessionID string) bool {
	return c.resolver.IsModeratorOrAdmin(server, roomToken, sessionID)
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrTokenNotFound) ||
		errors.Is(err, store.ErrRoomNotFound) ||
		errors.Is(err, store.ErrServerNotFound)
}
