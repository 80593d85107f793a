package game

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"wordgame-service/domain"
	"wordgame-service/internal/protocol"
)

// Notifier delivers an encoded protocol line to a connected player.
// Send must not block; it reports false when the line was not queued.
type Notifier interface {
	Send(playerID, line string) bool
}

// Player is a room member.
type Player struct {
	ID       string
	Name     string
	Team     domain.Team
	Ready    bool
	JoinedAt time.Time
}

// Room holds membership, teams, ready flags and the lobby state of one room.
// Every field below mu is guarded by it.
type Room struct {
	ID         string
	Name       string
	MaxPlayers int
	CreatedAt  time.Time

	mu         sync.RWMutex
	players    map[string]*Player
	order      []string // join order, used for creator promotion
	creatorID  string
	status     domain.RoomState
	emptySince time.Time
	closed     bool
}

// RoomSnapshot is a consistent copy of a room's state.
type RoomSnapshot struct {
	ID         string
	Name       string
	MaxPlayers int
	State      domain.RoomState
	CreatorID  string
	Players    []domain.PlayerInfo
}

// NewRoom creates an empty room in the waiting state.
func NewRoom(id, name string, maxPlayers int) *Room {
	now := time.Now()
	return &Room{
		ID:         id,
		Name:       name,
		MaxPlayers: maxPlayers,
		CreatedAt:  now,
		players:    make(map[string]*Player),
		status:     domain.RoomStateWaiting,
		emptySince: now,
	}
}

// Join adds a player to the room or, for an existing member, switches the
// member's team when requested is a valid team. It returns the member's team
// and whether the player was already in the room.
func (r *Room) Join(playerID, name string, requested domain.Team) (domain.Team, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.players[playerID]; ok {
		if requested.Valid() && p.Team != requested {
			p.Team = requested
			zap.L().Info("Player switched team",
				zap.String("room_id", r.ID), zap.String("player_id", playerID), zap.Stringer("team", requested))
		}
		return p.Team, true, nil
	}

	if r.closed {
		return domain.TeamNone, false, fmt.Errorf("%w: %s", domain.ErrRoomNotFound, r.ID)
	}
	if len(r.players) >= r.MaxPlayers {
		return domain.TeamNone, false, fmt.Errorf("%w: %s", domain.ErrRoomFull, r.ID)
	}

	p := &Player{
		ID:       playerID,
		Name:     name,
		Team:     r.assignTeamLocked(),
		JoinedAt: time.Now(),
	}
	r.players[playerID] = p
	r.order = append(r.order, playerID)
	if r.creatorID == "" {
		r.creatorID = playerID
	}

	zap.L().Info("Player joined room",
		zap.String("room_id", r.ID), zap.String("player_id", playerID), zap.Stringer("team", p.Team))
	return p.Team, false, nil
}

// assignTeamLocked picks a team for a new member. Two-player rooms fill team 1
// then team 2; larger rooms pick the smaller team, ties going to team 1.
func (r *Room) assignTeamLocked() domain.Team {
	var ones, twos int
	for _, p := range r.players {
		switch p.Team {
		case domain.TeamOne:
			ones++
		case domain.TeamTwo:
			twos++
		}
	}
	if r.MaxPlayers == 2 {
		if ones == 0 {
			return domain.TeamOne
		}
		return domain.TeamTwo
	}
	if twos < ones {
		return domain.TeamTwo
	}
	return domain.TeamOne
}

// Leave removes a member. When the creator leaves, the earliest remaining
// joiner becomes creator. It reports whether the player was a member.
func (r *Room) Leave(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[playerID]; !ok {
		return false
	}
	delete(r.players, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}

	if r.creatorID == playerID {
		r.creatorID = ""
		if len(r.order) > 0 {
			r.creatorID = r.order[0]
			zap.L().Info("Room creator handed over",
				zap.String("room_id", r.ID), zap.String("creator_id", r.creatorID))
		}
	}
	if len(r.players) == 0 {
		r.emptySince = time.Now()
	}

	zap.L().Info("Player left room", zap.String("room_id", r.ID), zap.String("player_id", playerID))
	return true
}

// SetReady sets a member's ready flag.
func (r *Room) SetReady(playerID string, ready bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotMember, r.ID)
	}
	p.Ready = ready
	return nil
}

// BeginMatch runs the ready-check for requesterID and, when it passes, moves
// the room to playing. It returns the member ids taking part.
func (r *Room) BeginMatch(requesterID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.canStartLocked(requesterID); err != nil {
		return nil, err
	}
	r.status = domain.RoomStatePlaying
	return append([]string(nil), r.order...), nil
}

// CanStart reports whether requesterID could start a match right now.
func (r *Room) CanStart(requesterID string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.canStartLocked(requesterID)
}

func (r *Room) canStartLocked(requesterID string) error {
	if r.creatorID == "" || requesterID != r.creatorID {
		return domain.ErrNotCreator
	}
	if r.status != domain.RoomStateWaiting {
		return domain.ErrAlreadyPlaying
	}
	for _, p := range r.players {
		if !p.Ready {
			return domain.ErrNotAllReady
		}
	}
	if r.MaxPlayers == 2 {
		var ones, twos int
		for _, p := range r.players {
			switch p.Team {
			case domain.TeamOne:
				ones++
			case domain.TeamTwo:
				twos++
			}
		}
		if ones != 1 || twos != 1 {
			return domain.ErrTeamImbalance
		}
	}
	return nil
}

// EndMatch returns the room to waiting and clears every ready flag.
func (r *Room) EndMatch() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.status = domain.RoomStateWaiting
	for _, p := range r.players {
		p.Ready = false
	}
}

// TeamOf returns the member's team.
func (r *Room) TeamOf(playerID string) (domain.Team, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	if !ok {
		return domain.TeamNone, false
	}
	return p.Team, true
}

func (r *Room) Status() domain.RoomState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

func (r *Room) CreatorID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.creatorID
}

func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// EmptySince returns when the room last became empty, or false while it has members.
func (r *Room) EmptySince() (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.players) > 0 {
		return time.Time{}, false
	}
	return r.emptySince, true
}

// closeIfIdle marks the room closed when it has been empty for at least grace
// and is not playing. A closed room accepts no new members.
func (r *Room) closeIfIdle(now time.Time, grace time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || len(r.players) > 0 || r.status == domain.RoomStatePlaying {
		return false
	}
	if now.Sub(r.emptySince) < grace {
		return false
	}
	r.closed = true
	return true
}

// Snapshot returns a copy of the room state with members in join order.
func (r *Room) Snapshot() RoomSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *Room) snapshotLocked() RoomSnapshot {
	players := make([]domain.PlayerInfo, 0, len(r.order))
	for _, id := range r.order {
		p := r.players[id]
		players = append(players, domain.PlayerInfo{
			ID:        p.ID,
			Name:      p.Name,
			Team:      p.Team,
			Ready:     p.Ready,
			IsCreator: p.ID == r.creatorID,
		})
	}
	return RoomSnapshot{
		ID:         r.ID,
		Name:       r.Name,
		MaxPlayers: r.MaxPlayers,
		State:      r.status,
		CreatorID:  r.creatorID,
		Players:    players,
	}
}

// Summary returns the listing view of the room.
func (r *Room) Summary() domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return domain.Room{
		ID:             r.ID,
		RoomName:       r.Name,
		CreatorID:      r.creatorID,
		MaxPlayers:     r.MaxPlayers,
		CurrentPlayers: len(r.players),
		Status:         r.status,
		CreatedAt:      r.CreatedAt,
	}
}

// Broadcast sends line to every current member. Members are read under the
// room lock so a player being removed never receives it.
func (r *Room) Broadcast(n Notifier, line string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if !n.Send(id, line) {
			zap.L().Warn("Dropping room message",
				zap.String("room_id", r.ID), zap.String("player_id", id))
		}
	}
}

// BroadcastUpdate sends a ROOM_UPDATE built from the current state to every member.
func (r *Room) BroadcastUpdate(n Notifier) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	line := protocol.Encode(protocol.RoomUpdate, r.snapshotLocked().Fields())
	for _, id := range r.order {
		if !n.Send(id, line) {
			zap.L().Warn("Dropping room update",
				zap.String("room_id", r.ID), zap.String("player_id", id))
		}
	}
}

// Fields renders the snapshot as ROOM_UPDATE payload fields.
func (s RoomSnapshot) Fields() protocol.Fields {
	return protocol.Fields{
		"roomId":        s.ID,
		"roomName":      s.Name,
		"state":         string(s.State),
		"players":       protocol.EncodePlayers(s.Players),
		"roomCreatorId": s.CreatorID,
	}
}
