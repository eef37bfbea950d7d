package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// Inbound actions a client may send. Disconnect is implicit: it is the read
// loop observing the connection going away.
const (
	actionCreateRoom = "create-room"
	actionJoinRoom   = "join-room"
	actionMove       = "move"
	actionResign     = "resign"
)

// Server emissions.
const (
	actionConnect              = "connect"
	actionRoomCreated          = "room-created"
	actionRoomJoined           = "room-joined"
	actionGameStart            = "game-start"
	actionBoardUpdate          = "board-update"
	actionGameOver             = "game-over"
	actionOpponentDisconnected = "opponent-disconnected"
	actionError                = "error"
)

const (
	reasonFiveInARow  = "five-in-a-row"
	reasonDraw        = "draw"
	reasonResignation = "resignation"
)

// Message is the wire envelope: an action name plus an action-specific
// payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ConnectPayload struct {
	Player *entity.Player `json:"player"`
}

type RoomPayload struct {
	RoomID string `json:"roomId"`
}

type MovePayload struct {
	RoomID string `json:"roomId"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

type RoomCreatedPayload struct {
	RoomID string `json:"roomId"`
}

type RoomJoinedPayload struct {
	RoomID string `json:"roomId"`
	Player string `json:"player"`
}

type GameStartPayload struct {
	Board *entity.Board `json:"board"`
	Turn  string        `json:"turn"`
}

type BoardUpdatePayload struct {
	Board    *entity.Board `json:"board"`
	Turn     string        `json:"turn"`
	LastMove *entity.Move  `json:"lastMove"`
}

type GameOverPayload struct {
	Winner string `json:"winner"`
	Reason string `json:"reason"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
