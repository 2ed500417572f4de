package models

// Server is a single SOGS host the user has at least one room on.
// Name is the URL authority ("open.getsession.org"); PublicKey is the
// server's hex-encoded X25519 public key published alongside its address.
type Server struct {
	Name      string `json:"name"`
	PublicKey string `json:"public_key"`

	// Capabilities is the most recently fetched capability set, persisted
	// so the signer can pick a scheme before the first poll completes.
	Capabilities []string `json:"capabilities,omitempty"`

	// LastPollAt is the Unix time of the last successful poll of this
	// server. Zero means never polled.
	LastPollAt int64 `json:"last_poll_at"`

	// InboxCursor and OutboxCursor are the last-seen direct-message ids,
	// monotonic per direction. Owned by the cursor store.
	InboxCursor  int64 `json:"inbox_cursor"`
	OutboxCursor int64 `json:"outbox_cursor"`
}

// Capabilities is the response of GET /capabilities. Missing is only
// populated when the request carried a ?required= list the server could
// not satisfy.
type Capabilities struct {
	Capabilities []string `json:"capabilities"`
	Missing      []string `json:"missing,omitempty"`
}

// CapabilityBlind is advertised by servers that require blinded-key
// authentication. The wire value is "blind", not "blinded".
const CapabilityBlind = "blind"
