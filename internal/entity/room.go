package entity

const (
	StatusWaiting  = "waiting"
	StatusActive   = "active"
	StatusFinished = "finished"

	PlayerX = "X"
	PlayerO = "O"

	// WinnerDraw is the winner value of a game that filled the board
	// without a five-in-a-row.
	WinnerDraw = "draw"

	EmptyCell = ""

	BoardSize = 50
)

// Board is the fixed 50x50 grid. A cell holds PlayerX, PlayerO or EmptyCell;
// once a cell leaves EmptyCell it is never written again.
type Board [BoardSize][BoardSize]string

type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Room is one game's isolated state: board, turn, the two participant
// session ids and the lifecycle status.
type Room struct {
	ID       string `json:"id"`
	Board    Board  `json:"board"`
	Turn     string `json:"turn"`
	PlayerX  string `json:"player_x"`
	PlayerO  string `json:"player_o,omitempty"`
	LastMove *Move  `json:"last_move,omitempty"`
	Status   string `json:"status"`
	Winner   string `json:"winner,omitempty"`
}

func NewRoom(id, hostID string) *Room {
	return &Room{
		ID:      id,
		Turn:    PlayerX,
		PlayerX: hostID,
		Status:  StatusWaiting,
	}
}

func (that *Room) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Room) IsActive() bool {
	return that.Status == StatusActive
}

func (that *Room) IsFinished() bool {
	return that.Status == StatusFinished
}

// MarkOf resolves a session id to the mark it plays in this room.
func (that *Room) MarkOf(playerID string) (string, bool) {
	switch {
	case playerID != "" && playerID == that.PlayerX:
		return PlayerX, true
	case playerID != "" && playerID == that.PlayerO:
		return PlayerO, true
	default:
		return "", false
	}
}

func (that *Room) HasPlayer(playerID string) bool {
	_, ok := that.MarkOf(playerID)
	return ok
}

// MemberIDs lists the session ids currently in the room, host first.
func (that *Room) MemberIDs() []string {
	members := []string{that.PlayerX}
	if that.PlayerO != "" {
		members = append(members, that.PlayerO)
	}
	return members
}

func OppositeMark(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
