package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	DeleteByID(ctx context.Context, id string) error
}

type roomRepo interface {
	CreateOrUpdate(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	DeleteByID(ctx context.Context, id string) error
}

// RoomManager owns the room lifecycle: creation, pairing, moves, resignation
// and disconnect teardown. Every terminal outcome removes the room from the
// registry exactly once, inside the same operation that produced it.
type RoomManager struct {
	logger *slog.Logger

	playerRepo playerRepo
	roomRepo   roomRepo

	// newID supplies unique ids for rooms and sessions; uniqueness is the
	// generator's guarantee.
	newID func() string
}

func NewRoomManager(logger *slog.Logger, playerRepo playerRepo, roomRepo roomRepo, newID func() string) *RoomManager {
	return &RoomManager{
		logger: logger,

		playerRepo: playerRepo,
		roomRepo:   roomRepo,

		newID: newID,
	}
}

// RegisterPlayer issues a fresh session record for a new connection.
func (that *RoomManager) RegisterPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: that.newID(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

// CreateRoom builds a waiting room with the host as X.
func (that *RoomManager) CreateRoom(ctx context.Context, hostID string) (*entity.Room, error) {
	room := entity.NewRoom(that.newID(), hostID)

	if err := that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	host := &entity.Player{
		ID:     hostID,
		Mark:   entity.PlayerX,
		RoomID: room.ID,
	}
	if err := that.playerRepo.CreateOrUpdate(ctx, host); err != nil {
		return nil, fmt.Errorf("failed to update host player: %w", err)
	}

	return room, nil
}

// JoinRoom pairs a second participant into the room and activates it.
// Joining a missing room fails with apperror.ErrRoomNotFound; joining a
// paired room, or a room the joiner already hosts, fails with
// apperror.ErrRoomFull.
func (that *RoomManager) JoinRoom(ctx context.Context, roomID, joinerID string) (*entity.Room, error) {
	room, err := that.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room by id: %w", err)
	}

	if room.PlayerO != "" || joinerID == room.PlayerX {
		return nil, fmt.Errorf("%w: room id %s", apperror.ErrRoomFull, roomID)
	}

	room.PlayerO = joinerID
	room.Status = entity.StatusActive
	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	joiner := &entity.Player{
		ID:     joinerID,
		Mark:   entity.PlayerO,
		RoomID: room.ID,
	}
	if err = that.playerRepo.CreateOrUpdate(ctx, joiner); err != nil {
		return nil, fmt.Errorf("failed to update joiner player: %w", err)
	}

	return room, nil
}

// MakeMove validates and applies one placement. Any rejection leaves the
// room untouched; the caller decides whether rejections surface anywhere
// (the websocket dispatcher drops them silently).
func (that *RoomManager) MakeMove(ctx context.Context, roomID, playerID string, x, y int) (*entity.Room, error) {
	room, err := that.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room by id: %w", err)
	}

	if !room.IsActive() {
		return nil, fmt.Errorf("%w: room id %s", apperror.ErrRoomNotActive, roomID)
	}

	mark, ok := room.MarkOf(playerID)
	if !ok {
		return nil, fmt.Errorf("%w: room id %s", apperror.ErrNotInRoom, roomID)
	}

	if err = gomoku.MakeTurn(room, mark, x, y); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if room.IsFinished() {
		that.cleanupRoom(ctx, room)
		return room, nil
	}

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	return room, nil
}

// Resign ends the game in favor of the opponent. Works in waiting rooms as
// well as active ones; only a missing room is reported as an error.
func (that *RoomManager) Resign(ctx context.Context, roomID, playerID string) (*entity.Room, error) {
	room, err := that.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room by id: %w", err)
	}

	winner := entity.PlayerX
	if playerID == room.PlayerX {
		winner = entity.PlayerO
	}

	room.Winner = winner
	room.Status = entity.StatusFinished

	that.cleanupRoom(ctx, room)

	return room, nil
}

// RoomIDOf resolves a session to the room it currently occupies; empty when
// the session is idle or unknown.
func (that *RoomManager) RoomIDOf(ctx context.Context, playerID string) (string, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if errors.Is(err, apperror.ErrPlayerNotFound) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to get player by id: %w", err)
	}

	return player.RoomID, nil
}

// Disconnect tears down the room the session occupies, if any, and drops the
// session record. Returns the finished room so the dispatcher can notify the
// remaining member, or nil when the session was not in a room.
func (that *RoomManager) Disconnect(ctx context.Context, playerID string) (*entity.Room, error) {
	defer func() {
		if err := that.playerRepo.DeleteByID(ctx, playerID); err != nil {
			that.logger.Error("failed to delete player", "playerID", playerID, "error", err)
		}
	}()

	roomID, err := that.RoomIDOf(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if roomID == "" {
		return nil, nil
	}

	room, err := that.roomRepo.GetByID(ctx, roomID)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get room by id: %w", err)
	}

	room.Status = entity.StatusFinished
	that.cleanupRoom(ctx, room)

	return room, nil
}

// cleanupRoom removes a finished room from the registry and detaches both
// participants from it. Registry removal is idempotent, so a lost race with
// another terminal event degrades to a no-op.
func (that *RoomManager) cleanupRoom(ctx context.Context, room *entity.Room) {
	log := that.logger.With("method", "cleanupRoom", "roomID", room.ID)

	if err := that.roomRepo.DeleteByID(ctx, room.ID); err != nil {
		log.Error("failed to delete room", "error", err)
	}

	for _, memberID := range room.MemberIDs() {
		player := &entity.Player{ID: memberID}
		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			log.Error("failed to detach player", "playerID", memberID, "error", err)
		}
	}

	log.Info("room removed")
}
