// SPDX-License-Identifier: Apache-2.0

// Package legacyauth obtains and caches the per-room auth tokens of
// pre-blinding (V2) servers. The flow is a two-step challenge: the
// server returns a token encrypted to an ephemeral ECDH key, the client
// decrypts it and claims it back. Tokens persist across restarts and
// are invalidated when a server rejects them.
package legacyauth

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sessionlab/go-sogs/internal/adapter"
	"github.com/sessionlab/go-sogs/internal/cache"
	"github.com/sessionlab/go-sogs/internal/crypto"
	"github.com/sessionlab/go-sogs/internal/logger"
	"github.com/sessionlab/go-sogs/internal/store"
	"github.com/sessionlab/go-sogs/models"
)

const (
	headerRoom  = "Room"
	headerToken = "Authorization"
)

type challengeResponse struct {
	Challenge struct {
		Ciphertext         string `json:"ciphertext"`
		EphemeralPublicKey string `json:"ephemeral_public_key"`
	} `json:"challenge"`
}

// TokenProvider hands out one valid auth token per (server, room),
// running the challenge flow at most once concurrently per pair.
type TokenProvider struct {
	keys      crypto.KeyPair
	transport adapter.Transport
	storage   store.Storage
	inflight  *cache.InflightGroup
	log       *logger.Logger
}

func NewTokenProvider(keys crypto.KeyPair, transport adapter.Transport, storage store.Storage, log *logger.Logger) *TokenProvider {
	return &TokenProvider{
		keys:      keys,
		transport: transport,
		storage:   storage,
		inflight:  cache.NewInflightGroup(),
		log:       log,
	}
}

// Token returns the auth token for the room, claiming a fresh one from
// the server when none is cached. Concurrent callers for the same room
// share a single claim.
func (p *TokenProvider) Token(ctx context.Context, server models.Server, room string) (string, error) {
	if token, err := p.storage.GetLegacyToken(ctx, server.Name, room); err == nil {
		return token, nil
	} else if !errors.Is(err, store.ErrTokenNotFound) {
		return "", err
	}

	key := server.Name + "/" + room
	value, err := p.inflight.Do(ctx, key, func() (any, error) {
		return p.claim(ctx, server, room)
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

// Invalidate discards the cached token after a server rejected it.
func (p *TokenProvider) Invalidate(ctx context.Context, server, room string) error {
	err := p.storage.DeleteLegacyToken(ctx, server, room)
	if err != nil && !errors.Is(err, store.ErrTokenNotFound) {
		return err
	}
	return nil
}

// claim runs the full challenge flow: fetch, decrypt, claim, persist.
func (p *TokenProvider) claim(ctx context.Context, server models.Server, room string) (string, error) {
	token, err := p.requestChallenge(ctx, server, room)
	if err != nil {
		return "", err
	}
	if err := p.claimToken(ctx, server, room, token); err != nil {
		return "", err
	}
	if err := p.storage.SetLegacyToken(ctx, server.Name, room, token); err != nil {
		return "", err
	}

	p.log.Debug().Str("server", server.Name).Str("room", room).Msg("claimed legacy auth token")
	return token, nil
}

func (p *TokenProvider) requestChallenge(ctx context.Context, server models.Server, room string) (string, error) {
	standard, err := p.keys.StandardID()
	if err != nil {
		return "", err
	}

	req := adapter.Request{
		Method:  http.MethodGet,
		Path:    "/auth_token_challenge?public_key=" + url.QueryEscape(standard.String()),
		Headers: map[string]string{headerRoom: room},
	}

	resp, err := p.transport.Send(ctx, req, server.Name, server.PublicKey)
	if err != nil {
		return "", err
	}
	if err := adapter.MapStatus(resp.StatusCode, resp.Body); err != nil {
		return "", fmt.Errorf("auth token challenge: %w", err)
	}

	var challenge challengeResponse
	if err := json.Unmarshal(resp.Body, &challenge); err != nil {
		return "", fmt.Errorf("%w: challenge body: %v", adapter.ErrDecoding, err)
	}

	return p.decryptChallenge(challenge)
}

func (p *TokenProvider) decryptChallenge(challenge challengeResponse) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(challenge.Challenge.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: challenge ciphertext: %v", adapter.ErrDecoding, err)
	}
	ephemeralPub, err := base64.StdEncoding.DecodeString(challenge.Challenge.EphemeralPublicKey)
	if err != nil {
		return "", fmt.Errorf("%w: ephemeral key: %v", adapter.ErrDecoding, err)
	}

	sharedKey, err := crypto.LegacySharedKey(p.keys, ephemeralPub)
	if err != nil {
		return "", err
	}
	tokenBytes, err := crypto.LegacyDecrypt(ciphertext, sharedKey)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(tokenBytes), nil
}

func (p *TokenProvider) claimToken(ctx context.Context, server models.Server, room, token string) error {
	standard, err := p.keys.StandardID()
	if err != nil {
		return err
	}

	body, err := json.Marshal(map[string]string{"public_key": standard.String()})
	if err != nil {
		return fmt.Errorf("%w: claim body: %v", adapter.ErrEncoding, err)
	}

	req := adapter.Request{
		Method: http.MethodPost,
		Path:   "/claim_auth_token",
		Headers: map[string]string{
			headerRoom:     room,
			headerToken:    token,
			"Content-Type": "application/json",
		},
		Body: body,
	}

	resp, err := p.transport.Send(ctx, req, server.Name, server.PublicKey)
	if err != nil {
		return err
	}
	if err := adapter.MapStatus(resp.StatusCode, resp.Body); err != nil {
		return fmt.Errorf("claim auth token: %w", err)
	}
	return nil
}
