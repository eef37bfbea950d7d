package gomoku

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// winLength is the run of identical marks that wins the game. A run longer
// than five still wins; there is no "exactly five" rule.
const winLength = 5

// directions are the four axes a winning run can lie on: horizontal,
// vertical and the two diagonals. The negative half of each axis is walked
// separately in Detect.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// MakeTurn places mark at (x,y) in the room, flips the turn and resolves the
// outcome of the placement. The room must already be confirmed active; the
// caller maps the returned errors to its rejection policy.
func MakeTurn(room *entity.Room, mark string, x, y int) error {
	if err := validateMove(room, mark, x, y); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	room.Board[x][y] = mark
	room.LastMove = &entity.Move{X: x, Y: y}
	room.Turn = entity.OppositeMark(mark)

	updateRoomStatus(room, x, y, mark)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(room *entity.Room, mark string, x, y int) error {
	if x < 0 || x >= entity.BoardSize || y < 0 || y >= entity.BoardSize {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrInvalidCell, x, y)
	}

	if room.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if room.Board[x][y] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateRoomStatus - resolves the room outcome after a placement.
func updateRoomStatus(room *entity.Room, x, y int, mark string) {
	switch outcome := Detect(&room.Board, x, y, mark); outcome {
	case entity.PlayerX, entity.PlayerO:
		room.Winner = outcome
		room.Status = entity.StatusFinished
	case entity.WinnerDraw:
		room.Winner = entity.WinnerDraw
		room.Status = entity.StatusFinished
	}
}

// Detect reports the outcome of the most recent placement of mark at (x,y):
// the mark itself on a win, entity.WinnerDraw when the board is full without
// a win, or the empty string when the game continues. It only inspects the
// four axes through (x,y), so a win is found iff it runs through the last
// move.
func Detect(board *entity.Board, x, y int, mark string) string {
	for _, dir := range directions {
		count := 1 // the placed cell itself
		count += countRun(board, x, y, dir[0], dir[1], mark)
		count += countRun(board, x, y, -dir[0], -dir[1], mark)

		if count >= winLength {
			return mark
		}
	}

	if isBoardFull(board) {
		return entity.WinnerDraw
	}

	return entity.EmptyCell
}

// countRun - counts contiguous cells equal to mark from (x,y) exclusive,
// stepping (dx,dy), stopping at the board edge or the first mismatch.
func countRun(board *entity.Board, x, y, dx, dy int, mark string) int {
	count := 0
	for i := 1; i < winLength; i++ {
		nx, ny := x+i*dx, y+i*dy
		if nx < 0 || nx >= entity.BoardSize || ny < 0 || ny >= entity.BoardSize {
			break
		}
		if board[nx][ny] != mark {
			break
		}
		count++
	}

	return count
}

func isBoardFull(board *entity.Board) bool {
	for i := range board {
		for j := range board[i] {
			if board[i][j] == entity.EmptyCell {
				return false
			}
		}
	}

	return true
}
