// SPDX-License-Identifier: Apache-2.0

// Package config assembles the SOGS client configuration from environment
// variables, command-line flags and an optional JSON file. The three layers
// are merged (flags over env over JSON) and validated before use.
package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Identity holds the local user's key material.
	Identity Identity `envPrefix:"IDENTITY_"`

	// Adapter holds outbound transport settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds local persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Poller holds synchronization loop settings.
	Poller Poller `envPrefix:"POLLER_"`

	// Join optionally names a room to subscribe to at startup, for first
	// runs where the local database holds no servers yet.
	Join Join `envPrefix:"JOIN_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged underneath the values
	// already loaded from environment variables and flags.
	// Populated via the SOGS_CONFIG environment variable or the -c flag.
	JSONFilePath string `env:"SOGS_CONFIG"`
}

// Identity holds the local user's master key material.
type Identity struct {
	// Ed25519Seed is the hex-encoded 32-byte Ed25519 seed of the master
	// identity keypair. Every blinded and unblinded key the client
	// presents to a server derives from it. Must be kept confidential.
	// Env: IDENTITY_ED25519_SEED
	Ed25519Seed string `env:"ED25519_SEED"`
}

// Adapter holds network settings used by the outbound transport layer.
type Adapter struct {
	// RequestTimeout is the default timeout for outbound requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage holds local persistence settings.
type Storage struct {
	// DSN is the sqlite connection string for the local rooms/cursors
	// database. ":memory:" keeps everything in process memory.
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`
}

// Poller holds synchronization loop settings.
type Poller struct {
	// Interval is the delay between poll cycles for each server.
	// Env: POLLER_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// MaxInactivity is the threshold beyond which the first poll after
	// launch fetches a bounded recent snapshot instead of replaying the
	// backlog since the stored cursor.
	// Env: POLLER_MAX_INACTIVITY
	MaxInactivity time.Duration `env:"MAX_INACTIVITY"`
}

// Join names a room to subscribe to at startup. All three fields are
// required together; leaving Server empty disables the startup join.
type Join struct {
	// Server is the server base URL ("https://open.getsession.org").
	// Env: JOIN_SERVER
	Server string `env:"SERVER"`

	// PublicKey is the server's hex-encoded public key.
	// Env: JOIN_PUBLIC_KEY
	PublicKey string `env:"PUBLIC_KEY"`

	// Room is the room token to join.
	// Env: JOIN_ROOM
	Room string `env:"ROOM"`
}

// Defaults applied by GetConfig for values no layer provided.
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultPollInterval   = 15 * time.Second
	DefaultMaxInactivity  = 12 * time.Hour
	DefaultStorageDSN     = ":memory:"
)

// GetConfig builds the merged configuration from flags, environment and the
// optional JSON file, fills in defaults, and validates the result.
func GetConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withFlags().
		withEnv().
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, cfg.validate()
}

func (c *StructuredConfig) applyDefaults() {
	if c.Adapter.RequestTimeout <= 0 {
		c.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if c.Poller.Interval <= 0 {
		c.Poller.Interval = DefaultPollInterval
	}
	if c.Poller.MaxInactivity <= 0 {
		c.Poller.MaxInactivity = DefaultMaxInactivity
	}
	if c.Storage.DSN == "" {
		c.Storage.DSN = DefaultStorageDSN
	}
}
