package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"identity": {"ed25519_seed": "aa"},
		"adapter": {"request_timeout": "45s"},
		"storage": {"dsn": "/tmp/sogs.db"},
		"poller": {"interval": "20s", "max_inactivity": "12h"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "aa", cfg.Identity.Ed25519Seed)
	assert.Equal(t, 45*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "/tmp/sogs.db", cfg.Storage.DSN)
	assert.Equal(t, 20*time.Second, cfg.Poller.Interval)
	assert.Equal(t, 12*time.Hour, cfg.Poller.MaxInactivity)
}

func TestParseJSON_NumberDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"poller": {"interval": 1000000000}}`), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Poller.Interval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		seed    string
		wantErr bool
	}{
		{name: "empty seed ok", seed: "", wantErr: false},
		{name: "valid 32 byte seed", seed: "4cb76fdc6d32278e3f83dbf608360ecc6b65727934b85d2fb86862ff98c46ab7", wantErr: false},
		{name: "not hex", seed: "zz", wantErr: true},
		{name: "wrong length", seed: "abcd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &StructuredConfig{Identity: Identity{Ed25519Seed: tt.seed}}
			err := cfg.validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_Join(t *testing.T) {
	tests := []struct {
		name    string
		join    Join
		wantErr bool
	}{
		{name: "no join ok", join: Join{}, wantErr: false},
		{
			name: "complete join ok",
			join: Join{
				Server:    "https://open.example.org",
				PublicKey: "a03c383cf63c3c4efe67acc52112a6dd734b3a946b9545f488aaa93da7991238",
				Room:      "lobby",
			},
			wantErr: false,
		},
		{name: "server without room", join: Join{Server: "https://open.example.org", PublicKey: "a03c383cf63c3c4efe67acc52112a6dd734b3a946b9545f488aaa93da7991238"}, wantErr: true},
		{name: "room without server", join: Join{Room: "lobby"}, wantErr: true},
		{name: "pubkey not hex", join: Join{Server: "https://open.example.org", PublicKey: "zz", Room: "lobby"}, wantErr: true},
		{name: "pubkey wrong length", join: Join{Server: "https://open.example.org", PublicKey: "abcd", Room: "lobby"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &StructuredConfig{Join: tt.join}
			err := cfg.validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &StructuredConfig{}
	cfg.applyDefaults()

	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultPollInterval, cfg.Poller.Interval)
	assert.Equal(t, DefaultMaxInactivity, cfg.Poller.MaxInactivity)
	assert.Equal(t, DefaultStorageDSN, cfg.Storage.DSN)
}
