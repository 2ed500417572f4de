package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-seed hex-encoded Ed25519 identity seed
//	-d sqlite DSN for the local rooms/cursors database
//	-c/-config json file path with configs
//	-request-timeout outbound request timeout (e.g., "30s", "1m")
//	-poll-interval delay between poll cycles (e.g., "15s")
//	-max-inactivity inactivity threshold for the recent-snapshot poll (e.g., "12h")
//	-join-server/-join-pubkey/-join-room room to subscribe to at startup
func ParseFlags() *StructuredConfig {
	var seed string
	var dsn string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var pollInterval time.Duration
	var maxInactivity time.Duration
	var joinServer string
	var joinPubkey string
	var joinRoom string

	flag.StringVar(&seed, "seed", "", "Hex-encoded Ed25519 identity seed")
	flag.StringVar(&dsn, "d", "", "Local database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&pollInterval, "poll-interval", 0, "Poll interval (e.g., 15s)")
	flag.DurationVar(&maxInactivity, "max-inactivity", 0, "Inactivity threshold (e.g., 12h)")
	flag.StringVar(&joinServer, "join-server", "", "Server base URL to join at startup")
	flag.StringVar(&joinPubkey, "join-pubkey", "", "Hex-encoded public key of the server to join")
	flag.StringVar(&joinRoom, "join-room", "", "Room token to join at startup")

	flag.Parse()

	return &StructuredConfig{
		Identity: Identity{
			Ed25519Seed: seed,
		},
		Adapter: Adapter{
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DSN: dsn,
		},
		Poller: Poller{
			Interval:      pollInterval,
			MaxInactivity: maxInactivity,
		},
		Join: Join{
			Server:    joinServer,
			PublicKey: joinPubkey,
			Room:      joinRoom,
		},
		JSONFilePath: jsonConfigPath,
	}
}
