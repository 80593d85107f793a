package session

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"wordgame-service/domain"
	"wordgame-service/internal/api/game"
	"wordgame-service/internal/protocol"
)

const (
	statusSuccess = "SUCCESS"
	statusFail    = "FAIL"

	reasonInvalidName = "INVALID_NAME"
)

// GameService is the part of the game core a session drives.
type GameService interface {
	ListRooms() []domain.Room
	CreateRoom(req game.CreateRoomRequest) (*game.Room, error)
	Join(playerID, name, currentRoomID, roomID string, team domain.Team) (game.JoinResult, error)
	AnnounceRoom(roomID string)
	Leave(playerID, roomID string)
	SetReady(playerID, roomID string, ready bool) error
	RequestStart(playerID, roomID string) error
	SubmitWord(playerID, roomID, word string) error
	Chat(playerID, name, roomID, message string) error
}

type Config struct {
	SendBuffer    int
	MaxNameLength int
	RatePerSecond float64
	RateBurst     int
}

type handlerFunc func(c *Client, msg protocol.Message)

// Handler runs the message loop of every connection.
type Handler struct {
	cfg      Config
	hub      *Hub
	game     GameService
	handlers map[protocol.Kind]handlerFunc
}

func NewHandler(cfg Config, hub *Hub, svc GameService) *Handler {
	h := &Handler{cfg: cfg, hub: hub, game: svc}
	h.handlers = map[protocol.Kind]handlerFunc{
		protocol.LoginReq:      h.handleLogin,
		protocol.RoomListReq:   h.handleRoomList,
		protocol.RoomCreateReq: h.requireLogin(protocol.RoomCreateRes, h.handleRoomCreate),
		protocol.RoomJoinReq:   h.requireLogin(protocol.RoomJoinRes, h.handleRoomJoin),
		protocol.RoomLeaveReq:  h.requireRoom(h.handleRoomLeave),
		protocol.GameReady:     h.requireRoom(h.handleReady),
		protocol.GameStartReq:  h.requireRoom(h.handleStart),
		protocol.WordInput:     h.requireRoom(h.handleWord),
		protocol.ChatMsg:       h.requireRoom(h.handleChat),
	}
	return h
}

// Serve runs one connection until it closes or ctx is done, then removes the
// player from its room and from the hub.
func (h *Handler) Serve(ctx context.Context, conn LineConn) {
	c := newClient(uuid.NewString(), conn, h.cfg.SendBuffer, rate.NewLimiter(rate.Limit(h.cfg.RatePerSecond), h.cfg.RateBurst))
	c.log.Info("Client connected")

	go c.writePump()
	stop := context.AfterFunc(ctx, c.close)
	defer stop()

	h.readPump(c)
	h.disconnect(c)
}

func (h *Handler) readPump(c *Client) {
	for {
		line, err := c.conn.ReadLine()
		if err != nil {
			c.log.Debug("Client read ended", zap.Error(err))
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !c.limiter.Allow() {
			c.log.Warn("Rate limit exceeded, dropping message")
			continue
		}
		h.dispatch(c, line)
	}
}

func (h *Handler) dispatch(c *Client, line string) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("Panic while handling message",
				zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
		}
	}()

	msg, err := protocol.Decode(line)
	if err != nil {
		c.log.Debug("Dropping malformed message", zap.String("line", line), zap.Error(err))
		return
	}
	if !msg.LengthMatches() {
		c.log.Debug("Declared length differs from payload",
			zap.String("type", msg.Type), zap.Int("declared", msg.Length))
	}

	handle, ok := h.handlers[msg.Kind]
	if !ok {
		c.log.Debug("Dropping unsupported message", zap.String("type", msg.Type))
		return
	}
	handle(c, msg)
}

func (h *Handler) disconnect(c *Client) {
	if c.roomID != "" {
		h.game.Leave(c.playerID, c.roomID)
		c.roomID = ""
	}
	if c.loggedIn() {
		h.hub.Unregister(c.playerID, c.playerName)
	}
	c.close()
	c.log.Info("Client disconnected", zap.String("player_id", c.playerID))
}

// requireLogin answers resKind with a FAIL when the client has not logged in.
func (h *Handler) requireLogin(resKind protocol.Kind, next handlerFunc) handlerFunc {
	return func(c *Client, msg protocol.Message) {
		if !c.loggedIn() {
			c.reply(failLine(resKind, domain.ErrNotLoggedIn))
			return
		}
		next(c, msg)
	}
}

// requireRoom answers with an ERROR unless the client is logged in and in a room.
func (h *Handler) requireRoom(next handlerFunc) handlerFunc {
	return func(c *Client, msg protocol.Message) {
		switch {
		case !c.loggedIn():
			c.reply(errorLine(domain.ErrNotLoggedIn))
		case c.roomID == "":
			c.reply(errorLine(domain.ErrNotMember))
		default:
			next(c, msg)
		}
	}
}

func (h *Handler) handleLogin(c *Client, msg protocol.Message) {
	if c.loggedIn() {
		c.reply(loginFailLine(domain.ErrorCode(domain.ErrAlreadyLoggedIn), "already logged in as "+c.playerName))
		return
	}

	name := strings.TrimSpace(msg.Fields.Get("playerName"))
	if name == "" || utf8.RuneCountInString(name) > h.cfg.MaxNameLength {
		c.reply(loginFailLine(reasonInvalidName,
			fmt.Sprintf("player name must be 1 to %d characters", h.cfg.MaxNameLength)))
		return
	}

	id, err := h.hub.Register(c, name)
	if err != nil {
		c.reply(loginFailLine(domain.ErrorCode(err), err.Error()))
		return
	}
	c.playerID = id
	c.playerName = name
	c.log = c.log.With(zap.String("player_id", id))
	c.log.Info("Player logged in", zap.String("player_name", name))

	c.reply(protocol.Encode(protocol.LoginRes, protocol.Fields{
		"status":     statusSuccess,
		"playerId":   id,
		"playerName": name,
	}))
}

func (h *Handler) handleRoomList(c *Client, _ protocol.Message) {
	c.reply(protocol.Encode(protocol.RoomListRes, protocol.Fields{
		"list": protocol.EncodeRoomList(h.game.ListRooms()),
	}))
}

func (h *Handler) handleRoomCreate(c *Client, msg protocol.Message) {
	maxPlayers, err := msg.Fields.Int("maxPlayers")
	if err != nil {
		c.reply(failLine(protocol.RoomCreateRes, err))
		return
	}

	room, err := h.game.CreateRoom(game.CreateRoomRequest{
		RoomName:   msg.Fields.Get("roomName"),
		MaxPlayers: maxPlayers,
	})
	if err != nil {
		c.reply(failLine(protocol.RoomCreateRes, err))
		return
	}
	c.reply(protocol.Encode(protocol.RoomCreateRes, protocol.Fields{
		"status": statusSuccess,
		"roomId": room.ID,
	}))
}

func (h *Handler) handleRoomJoin(c *Client, msg protocol.Message) {
	roomID := strings.TrimSpace(msg.Fields.Get("roomId"))
	team := domain.ParseTeam(strings.TrimSpace(msg.Fields.Get("team")))

	res, err := h.game.Join(c.playerID, c.playerName, c.roomID, roomID, team)
	if err != nil {
		c.reply(failLine(protocol.RoomJoinRes, err))
		return
	}
	c.roomID = res.Room.ID

	c.reply(protocol.Encode(protocol.RoomJoinRes, protocol.Fields{
		"status":        statusSuccess,
		"roomId":        res.Room.ID,
		"roomName":      res.Room.Name,
		"team":          res.Team.String(),
		"players":       protocol.EncodePlayers(res.Room.Players),
		"roomCreatorId": res.Room.CreatorID,
	}))
	h.game.AnnounceRoom(res.Room.ID)
}

func (h *Handler) handleRoomLeave(c *Client, _ protocol.Message) {
	h.game.Leave(c.playerID, c.roomID)
	c.roomID = ""
}

func (h *Handler) handleReady(c *Client, msg protocol.Message) {
	ready, err := msg.Fields.Bool("ready")
	if err != nil {
		c.reply(errorLine(err))
		return
	}
	if err := h.game.SetReady(c.playerID, c.roomID, ready); err != nil {
		c.reply(errorLine(err))
	}
}

func (h *Handler) handleStart(c *Client, _ protocol.Message) {
	if err := h.game.RequestStart(c.playerID, c.roomID); err != nil {
		c.log.Info("Start request rejected", zap.String("room_id", c.roomID), zap.Error(err))
		c.reply(errorLine(err))
	}
}

func (h *Handler) handleWord(c *Client, msg protocol.Message) {
	if err := h.game.SubmitWord(c.playerID, c.roomID, msg.Fields.Get("word")); err != nil {
		c.reply(errorLine(err))
	}
}

func (h *Handler) handleChat(c *Client, msg protocol.Message) {
	text := msg.Fields.Get("message")
	if strings.TrimSpace(text) == "" {
		return
	}
	if err := h.game.Chat(c.playerID, c.playerName, c.roomID, text); err != nil {
		c.reply(errorLine(err))
	}
}

func loginFailLine(reason, message string) string {
	return protocol.Encode(protocol.LoginRes, protocol.Fields{
		"status":  statusFail,
		"reason":  reason,
		"message": message,
	})
}

func failLine(kind protocol.Kind, err error) string {
	return protocol.Encode(kind, protocol.Fields{
		"status":  statusFail,
		"code":    domain.ErrorCode(err),
		"message": userMessage(err),
	})
}

func errorLine(err error) string {
	return protocol.Encode(protocol.Error, protocol.Fields{
		"code":    domain.ErrorCode(err),
		"message": userMessage(err),
	})
}

// userMessage hides internal error text from clients.
func userMessage(err error) string {
	if domain.ErrorCode(err) == "INTERNAL" {
		return "internal error"
	}
	return err.Error()
}
