package entity

// Player is the server-side record of one connected session. RoomID is the
// room the session currently occupies; a session is in at most one room.
type Player struct {
	ID     string `json:"id"`
	Mark   string `json:"mark,omitempty"`
	RoomID string `json:"room_id,omitempty"`
}
