package wsHandler

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"

	"wordgame-service/internal/api/session"
)

type Session interface {
	Serve(ctx context.Context, conn session.LineConn)
}

// WebSocketGameHandler speaks the line protocol over WebSocket text frames.
type WebSocketGameHandler struct {
	session   Session
	maxLine   int
	writeWait time.Duration
}

type WebSocketGameRequest struct{}

func NewWebSocketGameHandler(s Session, maxLine int, writeWait time.Duration) *WebSocketGameHandler {
	return &WebSocketGameHandler{session: s, maxLine: maxLine, writeWait: writeWait}
}

// HandleWS blocks until the connection is closed.
func (h *WebSocketGameHandler) HandleWS(c *websocket.Conn, ctx context.Context, req *WebSocketGameRequest) {
	h.session.Serve(ctx, NewLineConn(c, h.maxLine, h.writeWait))
}
