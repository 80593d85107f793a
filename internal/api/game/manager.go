package game

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"wordgame-service/domain"
)

// RoomManager is the process-wide room registry.
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	order []string // creation order

	nextID atomic.Uint64
}

func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms: make(map[string]*Room),
	}
}

// CreateRoom registers a new room under a fresh id.
func (rm *RoomManager) CreateRoom(name string, maxPlayers int) *Room {
	id := "R" + strconv.FormatUint(rm.nextID.Add(1), 10)
	room := NewRoom(id, name, maxPlayers)

	rm.mu.Lock()
	rm.rooms[id] = room
	rm.order = append(rm.order, id)
	rm.mu.Unlock()

	zap.L().Info("Room created",
		zap.String("room_id", id), zap.String("room_name", name), zap.Int("max_players", maxPlayers))
	return room
}

// GetRoom returns the room with the given id.
func (rm *RoomManager) GetRoom(roomID string) (*Room, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	room, ok := rm.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRoomNotFound, roomID)
	}
	return room, nil
}

// Rooms returns every room in creation order.
func (rm *RoomManager) Rooms() []*Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	rooms := make([]*Room, 0, len(rm.order))
	for _, id := range rm.order {
		rooms = append(rooms, rm.rooms[id])
	}
	return rooms
}

// ListRooms returns room summaries in creation order.
func (rm *RoomManager) ListRooms() []domain.Room {
	rooms := rm.Rooms()
	summaries := make([]domain.Room, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, room.Summary())
	}
	return summaries
}

// DeleteRoom removes a room from the registry.
func (rm *RoomManager) DeleteRoom(roomID string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if _, ok := rm.rooms[roomID]; !ok {
		return
	}
	delete(rm.rooms, roomID)
	for i, id := range rm.order {
		if id == roomID {
			rm.order = append(rm.order[:i:i], rm.order[i+1:]...)
			break
		}
	}
	zap.L().Info("Room deleted", zap.String("room_id", roomID))
}

// Sweep deletes rooms that have been empty for longer than grace and are not
// playing. It returns the ids it removed.
func (rm *RoomManager) Sweep(now time.Time, grace time.Duration) []string {
	var removed []string
	for _, room := range rm.Rooms() {
		if !room.closeIfIdle(now, grace) {
			continue
		}
		rm.DeleteRoom(room.ID)
		removed = append(removed, room.ID)
	}
	return removed
}

// RunCleanup sweeps empty rooms every interval until ctx is done. onRemove is
// called for each deleted room id and may be nil.
func (rm *RoomManager) RunCleanup(ctx context.Context, interval, grace time.Duration, onRemove func(roomID string)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			for _, id := range rm.Sweep(now, grace) {
				if onRemove != nil {
					onRemove(id)
				}
			}
		}
	}
}
