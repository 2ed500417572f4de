// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/sessionlab/go-sogs/models"
)

var serverColumns = []string{"name", "public_key", "capabilities", "last_poll_at", "inbox_cursor", "outbox_cursor"}

var roomColumns = []string{
	"server", "token", "public_key", "name", "description",
	"image_id", "last_seq_no", "last_info_update", "last_deletion_id",
}

func (s *sqliteStorage) UpsertServer(ctx context.Context, server models.Server) error {
	query, args, err := sq.Insert("servers").
		Columns("name", "public_key", "capabilities").
		Values(normalizeServer(server.Name), server.PublicKey, strings.Join(server.Capabilities, ",")).
		Suffix("ON CONFLICT (name) DO UPDATE SET public_key = excluded.public_key, capabilities = excluded.capabilities").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert server: %w", err)
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *sqliteStorage) GetServer(ctx context.Context, name string) (models.Server, error) {
	query, args, err := sq.Select(serverColumns...).
		From("servers").
		Where(sq.Eq{"name": normalizeServer(name)}).
		ToSql()
	if err != nil {
		return models.Server{}, fmt.Errorf("build get server: %w", err)
	}

	server, err := scanServer(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Server{}, fmt.Errorf("%w: %s", ErrServerNotFound, name)
	}
	return server, err
}

func (s *sqliteStorage) ListServers(ctx context.Context) ([]models.Server, error) {
	query, args, err := sq.Select(serverColumns...).
		From("servers").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list servers: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var servers []models.Server
	for rows.Next() {
		server, err := scanServer(rows)
		if err != nil {
			return nil, err
		}
		servers = append(servers, server)
	}
	return servers, rows.Err()
}

func (s *sqliteStorage) DeleteServer(ctx context.Context, name string) error {
	query, args, err := sq.Delete("servers").
		Where(sq.Eq{"name": normalizeServer(name)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete server: %w", err)
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *sqliteStorage) SetServerCapabilities(ctx context.Context, name string, caps []string) error {
	return s.updateServer(ctx, name, sq.Eq{"capabilities": strings.Join(caps, ",")})
}

func (s *sqliteStorage) SetServerLastPoll(ctx context.Context, name string, at time.Time) error {
	return s.updateServer(ctx, name, sq.Eq{"last_poll_at": at.Unix()})
}

func (s *sqliteStorage) SetServerInboxCursor(ctx context.Context, name string, id int64) error {
	return s.updateServer(ctx, name, sq.Eq{"inbox_cursor": id})
}

func (s *sqliteStorage) SetServerOutboxCursor(ctx context.Context, name string, id int64) error {
	return s.updateServer(ctx, name, sq.Eq{"outbox_cursor": id})
}

func (s *sqliteStorage) updateServer(ctx context.Context, name string, set map[string]any) error {
	query, args, err := sq.Update("servers").
		SetMap(set).
		Where(sq.Eq{"name": normalizeServer(name)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update server: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireRow(res, fmt.Errorf("%w: %s", ErrServerNotFound, name))
}

func (s *sqliteStorage) UpsertRoom(ctx context.Context, room models.Room) error {
	query, args, err := sq.Insert("rooms").
		Columns("server", "token", "public_key", "name", "description", "image_id").
		Values(normalizeServer(room.Server), room.Token, room.PublicKey, room.Name, room.Description, room.ImageID).
		Suffix(`ON CONFLICT (server, token) DO UPDATE SET
			public_key = excluded.public_key,
			name = excluded.name,
			description = excluded.description,
			image_id = excluded.image_id`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert room: %w", err)
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *sqliteStorage) GetRoom(ctx context.Context, server, token string) (models.Room, error) {
	query, args, err := sq.Select(roomColumns...).
		From("rooms").
		Where(sq.Eq{"server": normalizeServer(server), "token": token}).
		ToSql()
	if err != nil {
		return models.Room{}, fmt.Errorf("build get room: %w", err)
	}

	room, err := scanRoom(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Room{}, fmt.Errorf("%w: %s/%s", ErrRoomNotFound, server, token)
	}
	return room, err
}

func (s *sqliteStorage) ListRooms(ctx context.Context, server string) ([]models.Room, error) {
	query, args, err := sq.Select(roomColumns...).
		From("rooms").
		Where(sq.Eq{"server": normalizeServer(server)}).
		OrderBy("token").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rooms: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (s *sqliteStorage) DeleteRoom(ctx context.Context, server, token string) error {
	query, args, err := sq.Delete("rooms").
		Where(sq.Eq{"server": normalizeServer(server), "token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete room: %w", err)
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *sqliteStorage) SetRoomSeqNo(ctx context.Context, server, token string, seqNo int64) error {
	return s.updateRoom(ctx, server, token, sq.Eq{"last_seq_no": seqNo})
}

func (s *sqliteStorage) SetRoomInfoUpdate(ctx context.Context, server, token string, infoUpdate int64) error {
	return s.updateRoom(ctx, server, token, sq.Eq{"last_info_update": infoUpdate})
}

func (s *sqliteStorage) SetRoomDeletionID(ctx context.Context, server, token string, deletionID int64) error {
	return s.updateRoom(ctx, server, token, sq.Eq{"last_deletion_id": deletionID})
}

func (s *sqliteStorage) SetRoomDetails(ctx context.Context, server, token string, details models.RoomDetails) error {
	return s.updateRoom(ctx, server, token, sq.Eq{
		"name":        details.Name,
		"description": details.Description,
		"image_id":    details.ImageID,
	})
}

func (s *sqliteStorage) updateRoom(ctx context.Context, server, token string, set map[string]any) error {
	query, args, err := sq.Update("rooms").
		SetMap(set).
		Where(sq.Eq{"server": normalizeServer(server), "token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireRow(res, fmt.Errorf("%w: %s/%s", ErrRoomNotFound, server, token))
}

func (s *sqliteStorage) SetLegacyToken(ctx context.Context, server, room, token string) error {
	query, args, err := sq.Insert("legacy_tokens").
		Columns("server", "room", "token").
		Values(normalizeServer(server), room, token).
		Suffix("ON CONFLICT (server, room) DO UPDATE SET token = excluded.token").
		ToSql()
	if err != nil {
		return fmt.Errorf("build set legacy token: %w", err)
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *sqliteStorage) GetLegacyToken(ctx context.Context, server, room string) (string, error) {
	query, args, err := sq.Select("token").
		From("legacy_tokens").
		Where(sq.Eq{"server": normalizeServer(server), "room": room}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build get legacy token: %w", err)
	}

	var token string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s/%s", ErrTokenNotFound, server, room)
	}
	return token, err
}

func (s *sqliteStorage) DeleteLegacyToken(ctx context.Context, server, room string) error {
	query, args, err := sq.Delete("legacy_tokens").
		Where(sq.Eq{"server": normalizeServer(server), "room": room}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete legacy token: %w", err)
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanServer(row rowScanner) (models.Server, error) {
	var server models.Server
	var caps string
	err := row.Scan(&server.Name, &server.PublicKey, &caps, &server.LastPollAt, &server.InboxCursor, &server.OutboxCursor)
	if err != nil {
		return models.Server{}, err
	}
	if caps != "" {
		server.Capabilities = strings.Split(caps, ",")
	}
	return server, nil
}

func scanRoom(row rowScanner) (models.Room, error) {
	var room models.Room
	err := row.Scan(
		&room.Server, &room.Token, &room.PublicKey, &room.Name, &room.Description,
		&room.ImageID, &room.LastSeqNo, &room.LastInfoUpdate, &room.LastDeletionID,
	)
	if err != nil {
		return models.Room{}, err
	}
	return room, nil
}

func requireRow(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}

func normalizeServer(name string) string {
	return strings.ToLower(strings.TrimRight(name, "/"))
}
