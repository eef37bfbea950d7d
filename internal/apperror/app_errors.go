package apperror

import "errors"

var (
	ErrRoomNotFound  = errors.New("room does not exist")
	ErrRoomFull      = errors.New("room is full")
	ErrRoomNotActive = errors.New("room is not active")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrInvalidCell   = errors.New("cell is out of bounds")
	ErrNotInRoom     = errors.New("player is not in this room")

	ErrPlayerNotFound = errors.New("player not found")
)
