package models

// Room is a community room the user has joined. Server + Token form the
// identity key. LastSeqNo and LastInfoUpdate are monotonic sync cursors;
// they are owned by the cursor store and must not be written directly by
// any other component.
type Room struct {
	Server         string `json:"server"`
	Token          string `json:"token"`
	PublicKey      string `json:"public_key"`
	Name           string `json:"name,omitempty"`
	Description    string `json:"description,omitempty"`
	ImageID        *int64 `json:"image_id,omitempty"`
	LastSeqNo      int64  `json:"last_seq_no"`
	LastInfoUpdate int64  `json:"last_info_update"`
	// LastDeletionID is the legacy per-room deletion cursor. Kept only for
	// servers that have not migrated off the V2 compact-poll API.
	LastDeletionID int64 `json:"last_deletion_id"`
}

// RoomDetails is the full room record returned by GET /room/<token> and
// embedded in poll-info responses when anything changed.
type RoomDetails struct {
	Token            string   `json:"token"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	ImageID          *int64   `json:"image_id,omitempty"`
	InfoUpdates      int64    `json:"info_updates"`
	MessageSequence  int64    `json:"message_sequence"`
	ActiveUsers      int      `json:"active_users"`
	Admins           []string `json:"admins,omitempty"`
	Moderators       []string `json:"moderators,omitempty"`
	HiddenAdmins     []string `json:"hidden_admins,omitempty"`
	HiddenModerators []string `json:"hidden_moderators,omitempty"`
	Read             bool     `json:"read"`
	Write            bool     `json:"write"`
	Upload           bool     `json:"upload"`
}

// RoomPollInfo is the poll-info response for a single room. Details is nil
// when the room metadata has not changed since the info_updates value the
// request was keyed on.
type RoomPollInfo struct {
	Token       string       `json:"token"`
	ActiveUsers int          `json:"active_users"`
	Read        bool         `json:"read"`
	Write       bool         `json:"write"`
	Upload      bool         `json:"upload"`
	Details     *RoomDetails `json:"details,omitempty"`
}
