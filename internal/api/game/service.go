package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"wordgame-service/domain"
	"wordgame-service/internal/protocol"
)

// Room lifecycle events handed to the EventPublisher.
const (
	EventRoomCreated  = "room_created"
	EventRoomDeleted  = "room_deleted"
	EventPlayerJoined = "player_joined"
	EventPlayerLeft   = "player_left"
	EventMatchStarted = "match_started"
	EventMatchEnded   = "match_ended"
)

const (
	winnerDraw  = "DRAW"
	sinkTimeout = 5 * time.Second
)

// WordProvider supplies a shuffled list of at most n distinct words.
type WordProvider interface {
	Words(n int) []string
}

// EventPublisher receives room lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, roomID, eventType string, data any) error
}

// MatchRecorder stores or forwards finished match results.
type MatchRecorder interface {
	RecordMatch(ctx context.Context, result domain.MatchResult) error
}

type Config struct {
	BoardSize     int
	MatchDuration int // seconds
	TickInterval  time.Duration
	RoomGrace     time.Duration
	SweepInterval time.Duration
}

// CreateRoomRequest is the validated input of a room creation.
type CreateRoomRequest struct {
	RoomName   string `validate:"required,max=32"`
	MaxPlayers int    `validate:"oneof=2 4"`
}

// JoinResult describes a successful join.
type JoinResult struct {
	Team domain.Team
	Room RoomSnapshot
}

// Service coordinates the room registry, the active-match table and broadcasts.
type Service struct {
	cfg       Config
	rooms     *RoomManager
	notifier  Notifier
	words     WordProvider
	events    EventPublisher
	recorders []MatchRecorder
	validate  *validator.Validate

	mu      sync.RWMutex
	matches map[string]*Match // by room id

	ctx     context.Context
	cancel  context.CancelFunc
	closeMu sync.Mutex
	closed  bool
	wg      sync.WaitGroup
}

type Option func(*Service)

// WithEventPublisher sets the sink for room lifecycle events.
func WithEventPublisher(p EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

// WithMatchRecorder adds a sink for finished matches.
func WithMatchRecorder(r MatchRecorder) Option {
	return func(s *Service) { s.recorders = append(s.recorders, r) }
}

func NewService(cfg Config, rooms *RoomManager, notifier Notifier, words WordProvider, opts ...Option) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		cfg:      cfg,
		rooms:    rooms,
		notifier: notifier,
		words:    words,
		validate: validator.New(),
		matches:  make(map[string]*Match),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Rooms() *RoomManager {
	return s.rooms
}

// ListRooms returns room summaries in creation order.
func (s *Service) ListRooms() []domain.Room {
	return s.rooms.ListRooms()
}

func (s *Service) RoomSnapshot(roomID string) (RoomSnapshot, error) {
	room, err := s.rooms.GetRoom(roomID)
	if err != nil {
		return RoomSnapshot{}, err
	}
	return room.Snapshot(), nil
}

// CreateRoom validates req and registers a new room.
func (s *Service) CreateRoom(req CreateRoomRequest) (*Room, error) {
	req.RoomName = strings.TrimSpace(req.RoomName)
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	room := s.rooms.CreateRoom(req.RoomName, req.MaxPlayers)
	s.publish(room.ID, EventRoomCreated, room.Summary())
	return room, nil
}

// Join adds the player to roomID, or switches team when already a member.
// A player who is in another room (currentRoomID) leaves it once the join succeeds.
// The caller broadcasts the new room state with AnnounceRoom after replying.
func (s *Service) Join(playerID, name, currentRoomID, roomID string, team domain.Team) (JoinResult, error) {
	room, err := s.rooms.GetRoom(roomID)
	if err != nil {
		return JoinResult{}, err
	}

	assigned, member, err := room.Join(playerID, name, team)
	if err != nil {
		return JoinResult{}, err
	}

	if currentRoomID != "" && currentRoomID != roomID {
		s.Leave(playerID, currentRoomID)
	}
	if !member {
		s.publish(room.ID, EventPlayerJoined, map[string]string{"player_id": playerID, "player_name": name})
	}
	return JoinResult{Team: assigned, Room: room.Snapshot()}, nil
}

// AnnounceRoom broadcasts the current ROOM_UPDATE of roomID.
func (s *Service) AnnounceRoom(roomID string) {
	room, err := s.rooms.GetRoom(roomID)
	if err != nil {
		return
	}
	room.BroadcastUpdate(s.notifier)
}

// Leave removes the player from roomID and updates the remaining members.
func (s *Service) Leave(playerID, roomID string) {
	room, err := s.rooms.GetRoom(roomID)
	if err != nil {
		return
	}
	if !room.Leave(playerID) {
		return
	}
	room.BroadcastUpdate(s.notifier)
	s.publish(room.ID, EventPlayerLeft, map[string]string{"player_id": playerID})
}

// SetReady updates the player's ready flag and broadcasts the room.
func (s *Service) SetReady(playerID, roomID string, ready bool) error {
	room, err := s.rooms.GetRoom(roomID)
	if err != nil {
		return err
	}
	if err := room.SetReady(playerID, ready); err != nil {
		return err
	}
	room.BroadcastUpdate(s.notifier)
	return nil
}

// RequestStart starts a match in roomID when the ready-check passes for playerID.
func (s *Service) RequestStart(playerID, roomID string) error {
	room, err := s.rooms.GetRoom(roomID)
	if err != nil {
		return err
	}
	members, err := room.BeginMatch(playerID)
	if err != nil {
		return err
	}

	match := NewMatch(room.ID, s.words.Words(s.cfg.BoardSize), s.cfg.BoardSize, s.cfg.MatchDuration)
	snap := match.Snapshot()

	room.BroadcastUpdate(s.notifier)
	room.Broadcast(s.notifier, protocol.Encode(protocol.GameStart, protocol.Fields{
		"roomId":    room.ID,
		"board":     protocol.EncodeBoard(snap.Board),
		"timeLimit": strconv.Itoa(match.Duration),
	}))

	s.mu.Lock()
	s.matches[room.ID] = match
	s.mu.Unlock()

	zap.L().Info("Match started",
		zap.String("room_id", room.ID), zap.String("match_id", match.ID), zap.Int("cards", len(snap.Board)))
	s.publish(room.ID, EventMatchStarted, map[string]any{"match_id": match.ID, "player_ids": members})

	s.spawn(func() {
		match.Run(s.ctx, s.cfg.TickInterval, func(snap MatchSnapshot) {
			s.onTick(room, match, members, snap)
		})
	})
	return nil
}

// SubmitWord applies a word for the player's team and broadcasts the board
// when a card changed owner.
func (s *Service) SubmitWord(playerID, roomID, word string) error {
	room, err := s.rooms.GetRoom(roomID)
	if err != nil {
		return err
	}
	team, ok := room.TeamOf(playerID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotMember, roomID)
	}
	match := s.ActiveMatch(roomID)
	if match == nil {
		return nil
	}

	snap, changed := match.ApplyWord(team, word)
	if !changed {
		return nil
	}
	room.Broadcast(s.notifier, gameUpdateLine(room.ID, snap))
	return nil
}

// Chat relays a message to every member of roomID.
func (s *Service) Chat(playerID, name, roomID, message string) error {
	room, err := s.rooms.GetRoom(roomID)
	if err != nil {
		return err
	}
	if _, ok := room.TeamOf(playerID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotMember, roomID)
	}
	room.Broadcast(s.notifier, protocol.Encode(protocol.ChatMsg, protocol.Fields{
		"roomId":     room.ID,
		"senderId":   playerID,
		"senderName": name,
		"message":    message,
	}))
	return nil
}

// ActiveMatch returns the running match of roomID, or nil.
func (s *Service) ActiveMatch(roomID string) *Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matches[roomID]
}

func (s *Service) onTick(room *Room, match *Match, members []string, snap MatchSnapshot) {
	if !snap.Ended {
		room.Broadcast(s.notifier, gameUpdateLine(room.ID, snap))
		return
	}
	s.endMatch(room, match, members, snap)
}

func (s *Service) endMatch(room *Room, match *Match, members []string, snap MatchSnapshot) {
	s.mu.Lock()
	delete(s.matches, room.ID)
	s.mu.Unlock()

	room.Broadcast(s.notifier, protocol.Encode(protocol.GameEnd, protocol.Fields{
		"roomId": room.ID,
		"winner": winnerField(snap.Winner),
		"score1": strconv.Itoa(snap.Score1),
		"score2": strconv.Itoa(snap.Score2),
	}))
	room.EndMatch()
	room.BroadcastUpdate(s.notifier)

	zap.L().Info("Match ended",
		zap.String("room_id", room.ID),
		zap.String("match_id", match.ID),
		zap.Int("score1", snap.Score1),
		zap.Int("score2", snap.Score2),
		zap.String("winner", winnerField(snap.Winner)))

	result := domain.MatchResult{
		MatchID:    match.ID,
		RoomID:     room.ID,
		RoomName:   room.Name,
		Score1:     snap.Score1,
		Score2:     snap.Score2,
		Winner:     snap.Winner,
		PlayerIDs:  members,
		StartedAt:  match.StartedAt,
		FinishedAt: time.Now(),
	}
	s.publish(room.ID, EventMatchEnded, result)
	s.record(result)
}

// RunCleanup removes idle empty rooms until ctx is done.
func (s *Service) RunCleanup(ctx context.Context) {
	s.rooms.RunCleanup(ctx, s.cfg.SweepInterval, s.cfg.RoomGrace, func(roomID string) {
		s.publish(roomID, EventRoomDeleted, nil)
	})
}

// Close stops every match timer and waits for pending sink calls.
func (s *Service) Close() {
	s.closeMu.Lock()
	s.closed = true
	s.closeMu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// spawn runs fn on a goroutine that Close waits for. After Close it drops fn
// and reports false.
func (s *Service) spawn(fn func()) bool {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()

	if s.closed {
		return false
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
	return true
}

func (s *Service) publish(roomID, eventType string, data any) {
	if s.events == nil {
		return
	}
	ok := s.spawn(func() {
		ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
		defer cancel()
		if err := s.events.Publish(ctx, roomID, eventType, data); err != nil {
			zap.L().Error("Failed to publish room event",
				zap.String("room_id", roomID), zap.String("event", eventType), zap.Error(err))
		}
	})
	if !ok {
		zap.L().Debug("Service closed, room event skipped",
			zap.String("room_id", roomID), zap.String("event", eventType))
	}
}

func (s *Service) record(result domain.MatchResult) {
	for _, r := range s.recorders {
		s.spawn(func() {
			ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
			defer cancel()
			if err := r.RecordMatch(ctx, result); err != nil {
				zap.L().Error("Failed to record match",
					zap.String("match_id", result.MatchID), zap.Error(err))
			}
		})
	}
}

func gameUpdateLine(roomID string, snap MatchSnapshot) string {
	return protocol.Encode(protocol.GameUpdate, protocol.Fields{
		"roomId":   roomID,
		"board":    protocol.EncodeBoard(snap.Board),
		"score1":   strconv.Itoa(snap.Score1),
		"score2":   strconv.Itoa(snap.Score2),
		"timeLeft": strconv.Itoa(snap.Remaining),
	})
}

func winnerField(t domain.Team) string {
	if t == domain.TeamNone {
		return winnerDraw
	}
	return t.String()
}
