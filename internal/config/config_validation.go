// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/hex"
	"fmt"
)

// validate checks the merged configuration for values that would make the
// client unable to operate. An empty seed is allowed (read-only unsigned
// endpoints still work); a malformed one is not.
func (c *StructuredConfig) validate() error {
	if c.Identity.Ed25519Seed != "" {
		raw, err := hex.DecodeString(c.Identity.Ed25519Seed)
		if err != nil {
			return fmt.Errorf("%w: identity seed is not hex: %v", ErrInvalidConfig, err)
		}
		if len(raw) != 32 {
			return fmt.Errorf("%w: identity seed must be 32 bytes, got %d", ErrInvalidConfig, len(raw))
		}
	}

	if c.Join != (Join{}) {
		if c.Join.Server == "" || c.Join.PublicKey == "" || c.Join.Room == "" {
			return fmt.Errorf("%w: join requires server, pubkey and room together", ErrInvalidConfig)
		}
		raw, err := hex.DecodeString(c.Join.PublicKey)
		if err != nil {
			return fmt.Errorf("%w: join server pubkey is not hex: %v", ErrInvalidConfig, err)
		}
		if len(raw) != 32 {
			return fmt.Errorf("%w: join server pubkey must be 32 bytes, got %d", ErrInvalidConfig, len(raw))
		}
	}

	return nil
}
