// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"

	"github.com/sessionlab/go-sogs/internal/adapter"
	"github.com/sessionlab/go-sogs/internal/batch"
	"github.com/sessionlab/go-sogs/internal/capability"
	"github.com/sessionlab/go-sogs/internal/config"
	"github.com/sessionlab/go-sogs/internal/crypto"
	"github.com/sessionlab/go-sogs/internal/cursor"
	"github.com/sessionlab/go-sogs/internal/identity"
	"github.com/sessionlab/go-sogs/internal/legacyauth"
	"github.com/sessionlab/go-sogs/internal/logger"
	"github.com/sessionlab/go-sogs/internal/poller"
	"github.com/sessionlab/go-sogs/internal/signer"
	"github.com/sessionlab/go-sogs/internal/store"
	"github.com/sessionlab/go-sogs/internal/workers"
	"github.com/sessionlab/go-sogs/models"
)

// App assembles the full client runtime: storage, signing, transport,
// pollers and the user-facing Client, from one configuration.
type App struct {
	Client *Client
	Tokens *legacyauth.TokenProvider

	storage store.Storage
	manager *workers.Manager
	log     *logger.Logger
}

// NewApp wires the application from configuration. ingestor receives
// everything the pollers pull in.
func NewApp(cfg *config.StructuredConfig, ingestor poller.Ingestor, log *logger.Logger) (*App, error) {
	keys, err := crypto.KeyPairFromSeedHex(cfg.Identity.Ed25519Seed)
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}

	storage, err := store.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	caps := capability.NewStore()
	if err := hydrateCapabilities(storage, caps); err != nil {
		_ = storage.Close()
		return nil, err
	}

	sgn := signer.New(&keys, caps)
	transport := adapter.NewHTTPTransport(cfg.Adapter.RequestTimeout, log)
	coordinator := batch.NewCoordinator(transport, sgn, log)
	cursors := cursor.New(storage, log)
	resolver := identity.NewResolver(keys)
	planner := poller.NewPlanner(cfg.Poller.MaxInactivity)
	tokens := legacyauth.NewTokenProvider(keys, transport, storage, log)

	coordinator.OnUnauthorized = func(server models.Server) {
		invalidateServerCredentials(storage, caps, tokens, server, log)
	}

	runner := poller.NewRunner(coordinator, storage, cursors, caps, resolver, planner, ingestor, log)
	manager := workers.NewManager(runner, cfg.Poller.Interval, log)

	return &App{
		Client:  New(coordinator, sgn, caps, storage, resolver, manager, log),
		Tokens:  tokens,
		storage: storage,
		manager: manager,
		log:     log,
	}, nil
}

// Run starts a poller for every stored server and blocks until ctx is
// cancelled, then stops them.
func (a *App) Run(ctx context.Context) error {
	servers, err := a.storage.ListServers(ctx)
	if err != nil {
		return err
	}

	names := make([]string, len(servers))
	for i, s := range servers {
		names[i] = s.Name
	}
	a.manager.Run(ctx, names)

	<-ctx.Done()
	a.manager.Stop()
	return nil
}

// Close releases storage. Call after Run returns.
func (a *App) Close() error {
	return a.storage.Close()
}

// hydrateCapabilities seeds the in-memory capability cache from the
// persisted server records, so the first request after restart already
// signs with the right scheme.
func hydrateCapabilities(storage store.Storage, caps *capability.Store) error {
	servers, err := storage.ListServers(context.Background())
	if err != nil {
		return fmt.Errorf("hydrate capabilities: %w", err)
	}
	for _, server := range servers {
		caps.Replace(server.Name, server.Capabilities)
	}
	return nil
}

// invalidateServerCredentials drops everything cached that could have
// caused a 401: the capability set that picks the signing scheme, and
// any legacy auth tokens for the server's rooms.
func invalidateServerCredentials(storage store.Storage, caps *capability.Store, tokens *legacyauth.TokenProvider, server models.Server, log *logger.Logger) {
	ctx := context.Background()
	caps.Forget(server.Name)

	rooms, err := storage.ListRooms(ctx, server.Name)
	if err != nil {
		log.Warn().Err(err).Str("server", server.Name).Msg("credential invalidation: listing rooms failed")
		return
	}
	for _, room := range rooms {
		if err := tokens.Invalidate(ctx, server.Name, room.Token); err != nil {
			log.Warn().Err(err).Str("server", server.Name).Str("room", room.Token).
				Msg("credential invalidation: token delete failed")
		}
	}
	log.Info().Str("server", server.Name).Msg("invalidated cached credentials after 401")
}
