package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRoom(t *testing.T) {
	// Given: a fresh room for a host session
	room := NewRoom("room-1", "host-1")

	// Then: it waits for an opponent, with the host as X and X to move
	assert.Equal(t, "room-1", room.ID)
	assert.Equal(t, "host-1", room.PlayerX)
	assert.Empty(t, room.PlayerO)
	assert.Equal(t, PlayerX, room.Turn)
	assert.True(t, room.IsWaiting())
	assert.Nil(t, room.LastMove)

	// And: every cell starts empty
	for i := range room.Board {
		for j := range room.Board[i] {
			assert.Equal(t, EmptyCell, room.Board[i][j])
		}
	}
}

func TestRoomStatusMethods(t *testing.T) {
	t.Run("IsWaiting returns true for a waiting room", func(t *testing.T) {
		room := &Room{Status: StatusWaiting}
		assert.True(t, room.IsWaiting())
		assert.False(t, room.IsActive())
		assert.False(t, room.IsFinished())
	})

	t.Run("IsActive returns true for an active room", func(t *testing.T) {
		room := &Room{Status: StatusActive}
		assert.True(t, room.IsActive())
	})

	t.Run("IsFinished returns true for a finished room", func(t *testing.T) {
		room := &Room{Status: StatusFinished}
		assert.True(t, room.IsFinished())
	})
}

func TestRoom_MarkOf(t *testing.T) {
	room := &Room{PlayerX: "alice", PlayerO: "bob"}

	t.Run("Resolves the host to X", func(t *testing.T) {
		mark, ok := room.MarkOf("alice")
		assert.True(t, ok)
		assert.Equal(t, PlayerX, mark)
	})

	t.Run("Resolves the joiner to O", func(t *testing.T) {
		mark, ok := room.MarkOf("bob")
		assert.True(t, ok)
		assert.Equal(t, PlayerO, mark)
	})

	t.Run("Rejects a stranger", func(t *testing.T) {
		_, ok := room.MarkOf("mallory")
		assert.False(t, ok)
	})

	t.Run("An empty id never matches an unpaired room", func(t *testing.T) {
		// Given: a waiting room without an O player
		waiting := &Room{PlayerX: "alice"}

		// When: resolving the empty id
		_, ok := waiting.MarkOf("")

		// Then: it does not match the unset PlayerO slot
		assert.False(t, ok)
	})
}

func TestRoom_MemberIDs(t *testing.T) {
	t.Run("A waiting room has one member", func(t *testing.T) {
		room := NewRoom("r", "alice")
		assert.Equal(t, []string{"alice"}, room.MemberIDs())
	})

	t.Run("A paired room lists the host first", func(t *testing.T) {
		room := NewRoom("r", "alice")
		room.PlayerO = "bob"
		assert.Equal(t, []string{"alice", "bob"}, room.MemberIDs())
	})
}

func TestOppositeMark(t *testing.T) {
	assert.Equal(t, PlayerO, OppositeMark(PlayerX))
	assert.Equal(t, PlayerX, OppositeMark(PlayerO))
}
