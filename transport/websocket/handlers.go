package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

func (that *Server) handleCreateRoom(ctx context.Context, cl *client, _ *Message) error {
	log := that.logger.With("method", "handleCreateRoom", "playerID", cl.id)

	room, err := that.manager.CreateRoom(ctx, cl.id)
	if err != nil {
		log.Error("failed to create room", "error", err)
		return that.sendErrorResponse(cl, "failed to create room")
	}

	if err = that.sendMessage(cl, actionRoomCreated, RoomCreatedPayload{RoomID: room.ID}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("room created", "roomID", room.ID)

	return nil
}

func (that *Server) handleJoinRoom(ctx context.Context, cl *client, msg *Message) error {
	log := that.logger.With("method", "handleJoinRoom", "playerID", cl.id)

	var payloadReq RoomPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	unlock := that.roomLocks.Lock(payloadReq.RoomID)
	defer unlock()

	room, err := that.manager.JoinRoom(ctx, payloadReq.RoomID, cl.id)

	if errors.Is(err, apperror.ErrRoomNotFound) {
		return that.sendErrorResponse(cl, "room does not exist")
	}

	if errors.Is(err, apperror.ErrRoomFull) {
		return that.sendErrorResponse(cl, "room is full")
	}

	if err != nil {
		log.Error("failed to join room", "roomID", payloadReq.RoomID, "error", err)
		return that.sendErrorResponse(cl, "failed to join room")
	}

	that.broadcast(room.MemberIDs(), actionGameStart, GameStartPayload{
		Board: &room.Board,
		Turn:  room.Turn,
	})
	that.unicast(cl.id, actionRoomJoined, RoomJoinedPayload{RoomID: room.ID, Player: entity.PlayerO})
	that.unicast(room.PlayerX, actionRoomJoined, RoomJoinedPayload{RoomID: room.ID, Player: entity.PlayerX})

	log.Info("player joined room", "roomID", room.ID)

	return nil
}

// handleMove applies one placement. Rejections are deliberately silent: no
// state change, no emission, a debug line only.
func (that *Server) handleMove(ctx context.Context, cl *client, msg *Message) error {
	log := that.logger.With("method", "handleMove", "playerID", cl.id)

	var payloadReq MovePayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	unlock := that.roomLocks.Lock(payloadReq.RoomID)
	defer unlock()

	room, err := that.manager.MakeMove(ctx, payloadReq.RoomID, cl.id, payloadReq.X, payloadReq.Y)
	if err != nil {
		log.Debug("move rejected", "roomID", payloadReq.RoomID, "error", err)
		return nil
	}

	that.broadcast(room.MemberIDs(), actionBoardUpdate, BoardUpdatePayload{
		Board:    &room.Board,
		Turn:     room.Turn,
		LastMove: room.LastMove,
	})

	if !room.IsFinished() {
		return nil
	}

	reason := reasonFiveInARow
	if room.Winner == entity.WinnerDraw {
		reason = reasonDraw
	}

	that.broadcast(room.MemberIDs(), actionGameOver, GameOverPayload{
		Winner: room.Winner,
		Reason: reason,
	})

	log.Info("game over", "roomID", room.ID, "winner", room.Winner, "reason", reason)

	return nil
}

func (that *Server) handleResign(ctx context.Context, cl *client, msg *Message) error {
	log := that.logger.With("method", "handleResign", "playerID", cl.id)

	var payloadReq RoomPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	unlock := that.roomLocks.Lock(payloadReq.RoomID)
	defer unlock()

	room, err := that.manager.Resign(ctx, payloadReq.RoomID, cl.id)

	if errors.Is(err, apperror.ErrRoomNotFound) {
		log.Debug("resign ignored, room missing", "roomID", payloadReq.RoomID)
		return nil
	}

	if err != nil {
		log.Error("failed to resign", "roomID", payloadReq.RoomID, "error", err)
		return nil
	}

	that.broadcast(room.MemberIDs(), actionGameOver, GameOverPayload{
		Winner: room.Winner,
		Reason: reasonResignation,
	})

	log.Info("player resigned", "roomID", room.ID, "winner", room.Winner)

	return nil
}
