package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and a
// Duration type that accepts both "12h" strings and raw nanosecond numbers.
type StructuredJSONConfig struct {
	Identity struct {
		Ed25519Seed string `json:"ed25519_seed"`
	} `json:"identity,omitempty"`

	Adapter struct {
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DSN string `json:"dsn"`
	} `json:"storage,omitempty"`

	Poller struct {
		Interval      Duration `json:"interval"`
		MaxInactivity Duration `json:"max_inactivity"`
	} `json:"poller,omitempty"`

	Join struct {
		Server    string `json:"server"`
		PublicKey string `json:"public_key"`
		Room      string `json:"room"`
	} `json:"join,omitempty"`
}

func parseJSON(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading json config: %w", err)
	}

	var jsonCfg StructuredJSONConfig
	if err = json.Unmarshal(data, &jsonCfg); err != nil {
		return nil, fmt.Errorf("error parsing json config: %w", err)
	}

	return &StructuredConfig{
		Identity: Identity{
			Ed25519Seed: jsonCfg.Identity.Ed25519Seed,
		},
		Adapter: Adapter{
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Storage: Storage{
			DSN: jsonCfg.Storage.DSN,
		},
		Poller: Poller{
			Interval:      time.Duration(jsonCfg.Poller.Interval),
			MaxInactivity: time.Duration(jsonCfg.Poller.MaxInactivity),
		},
		Join: Join{
			Server:    jsonCfg.Join.Server,
			PublicKey: jsonCfg.Join.PublicKey,
			Room:      jsonCfg.Join.Room,
		},
	}, nil
}

// Duration is a time.Duration that unmarshals from either a JSON number
// (nanoseconds) or a duration string such as "12h".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
