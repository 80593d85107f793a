package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"wordgame-service/domain"
	"wordgame-service/internal/api/game"
)

type RoomFinder interface {
	RoomSnapshot(roomID string) (game.RoomSnapshot, error)
}

type GetRoomRequest struct {
	RoomID string `params:"room_id" validate:"required"`
}

type GetRoomResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	MaxPlayers int                 `json:"max_players"`
	State      domain.RoomState    `json:"state"`
	CreatorID  string              `json:"creator_id"`
	Players    []domain.PlayerInfo `json:"players"`
}

// GetRoomHandler returns one room with its members.
type GetRoomHandler struct {
	rooms RoomFinder
}

func NewGetRoomHandler(rooms RoomFinder) *GetRoomHandler {
	return &GetRoomHandler{rooms: rooms}
}

func (h *GetRoomHandler) Handle(ctx context.Context, req *GetRoomRequest) (*GetRoomResponse, int, error) {
	snap, err := h.rooms.RoomSnapshot(req.RoomID)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			return nil, fiber.StatusNotFound, err
		}
		return nil, fiber.StatusInternalServerError, err
	}
	return &GetRoomResponse{
		ID:         snap.ID,
		Name:       snap.Name,
		MaxPlayers: snap.MaxPlayers,
		State:      snap.State,
		CreatorID:  snap.CreatorID,
		Players:    snap.Players,
	}, fiber.StatusOK, nil
}
