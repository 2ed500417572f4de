package models

// BanRequest is the body of POST /user/<session id>/ban. Rooms may list
// specific room tokens, or contain the single element "*" together with
// Global to ban across the whole server. Timeout, when set, makes the ban
// temporary (seconds).
type BanRequest struct {
	Rooms   []string `json:"rooms,omitempty"`
	Global  bool     `json:"global,omitempty"`
	Timeout *int64   `json:"timeout,omitempty"`
}

// UnbanRequest is the body of POST /user/<session id>/unban. Rooms lists
// the room tokens to lift the ban from ("*" for every room the caller
// moderates); Global instead lifts a server-wide ban.
type UnbanRequest struct {
	Rooms  []string `json:"rooms,omitempty"`
	Global bool     `json:"global,omitempty"`
}

// ModeratorRequest is the body of POST /user/<session id>/moderator,
// appointing or removing moderator/admin permissions. Exactly one of
// Moderator or Admin should be set: true grants, false revokes, nil
// leaves that permission alone (admin=true implies moderator). Visible
// controls whether the role shows to regular room members.
type ModeratorRequest struct {
	Rooms     []string `json:"rooms,omitempty"`
	Global    bool     `json:"global,omitempty"`
	Moderator *bool    `json:"moderator,omitempty"`
	Admin     *bool    `json:"admin,omitempty"`
	Visible   bool     `json:"visible"`
}

// DeleteAllRequest is implied by DELETE /room/<token>/all/<session id>;
// DeleteAllResponse reports how many messages were removed.
type DeleteAllResponse struct {
	Deleted int64 `json:"deleted"`
}
