package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"wordgame-service/domain"
)

type RoomLister interface {
	ListRooms() []domain.Room
}

type GetRoomsRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=waiting playing"`
}

type GetRoomsResponse struct {
	Rooms []domain.Room `json:"rooms"`
	Count int           `json:"count"`
}

// GetRoomsHandler lists rooms in creation order, optionally filtered by state.
type GetRoomsHandler struct {
	rooms RoomLister
}

func NewGetRoomsHandler(rooms RoomLister) *GetRoomsHandler {
	return &GetRoomsHandler{rooms: rooms}
}

func (h *GetRoomsHandler) Handle(ctx context.Context, req *GetRoomsRequest) (*GetRoomsResponse, int, error) {
	rooms := make([]domain.Room, 0)
	for _, r := range h.rooms.ListRooms() {
		if req.Status != "" && string(r.Status) != req.Status {
			continue
		}
		rooms = append(rooms, r)
	}
	return &GetRoomsResponse{Rooms: rooms, Count: len(rooms)}, fiber.StatusOK, nil
}
