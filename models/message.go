// SPDX-License-Identifier: Apache-2.0

package models

// Message is a single room message as returned by the messages endpoints.
// IDs are server-assigned and strictly increasing per room; SeqNo is the
// room-wide edit/deletion sequence counter used for incremental polling.
//
// A nil Data (or nil Sender) marks a tombstone: the message existed and was
// deleted server-side. Tombstones must be surfaced as deletion events, never
// silently dropped.
type Message struct {
	ID       int64   `json:"id"`
	SeqNo    int64   `json:"seq_no"`
	Sender   *string `json:"session_id,omitempty"`
	PostedAt float64 `json:"posted_at"`
	EditedAt float64 `json:"edited,omitempty"`

	// Data is the base64-encoded message payload; Signature covers the
	// decoded payload bytes and was produced by the posting key.
	Data      *string `json:"data,omitempty"`
	Signature *string `json:"signature,omitempty"`

	Deleted bool `json:"deleted,omitempty"`

	// Whisper fields: a whisper is visible only to its target (or to all
	// moderators when WhisperMods is set).
	Whisper     bool    `json:"whisper,omitempty"`
	WhisperMods bool    `json:"whisper_mods,omitempty"`
	WhisperTo   *string `json:"whisper_to,omitempty"`
}

// Tombstone reports whether this record is a deletion marker rather than a
// live message.
func (m Message) Tombstone() bool {
	return m.Deleted || m.Data == nil || m.Sender == nil
}

// DirectMessage is a single blinded-inbox (or outbox) message. Message is
// the base64 of the sealed payload; Sender and Recipient are blinded
// session IDs.
type DirectMessage struct {
	ID        int64   `json:"id"`
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Message   string  `json:"message"`
	PostedAt  float64 `json:"posted_at"`
	ExpiresAt float64 `json:"expires_at,omitempty"`
}

// SendMessageRequest is the body of POST /room/<token>/message.
type SendMessageRequest struct {
	Data      string  `json:"data"`
	Signature string  `json:"signature"`
	Whisper   bool    `json:"whisper,omitempty"`
	WhisperTo *string `json:"whisper_to,omitempty"`
}

// SendDirectMessageRequest is the body of POST /inbox/<blinded id>. Message
// is the encrypted-then-base64-encoded payload.
type SendDirectMessageRequest struct {
	Message string `json:"message"`
}

// SendDirectMessageResponse echoes the server-assigned metadata for a
// delivered direct message.
type SendDirectMessageResponse struct {
	ID        int64   `json:"id"`
	PostedAt  float64 `json:"posted_at"`
	ExpiresAt float64 `json:"expires_at"`
}
