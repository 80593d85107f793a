package wsHandler

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"

	"wordgame-service/internal/api/session"
)

var errBinaryFrame = errors.New("binary frames are not supported")

// lineConn carries protocol lines over text frames. A frame may hold several
// newline separated lines.
type lineConn struct {
	conn      *websocket.Conn
	writeWait time.Duration
	pending   []string
}

// NewLineConn adapts an upgraded connection to session.LineConn.
func NewLineConn(conn *websocket.Conn, maxLine int, writeWait time.Duration) session.LineConn {
	conn.SetReadLimit(int64(maxLine))
	return &lineConn{conn: conn, writeWait: writeWait}
}

func (l *lineConn) ReadLine() (string, error) {
	for len(l.pending) == 0 {
		mt, data, err := l.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if mt != websocket.TextMessage {
			return "", errBinaryFrame
		}
		l.pending = strings.Split(strings.TrimRight(string(data), "\r\n"), "\n")
	}
	line := strings.TrimSuffix(l.pending[0], "\r")
	l.pending = l.pending[1:]
	return line, nil
}

func (l *lineConn) WriteLine(line string) error {
	if l.writeWait > 0 {
		l.conn.SetWriteDeadline(time.Now().Add(l.writeWait))
	}
	return l.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (l *lineConn) Close() error {
	return l.conn.Close()
}

func (l *lineConn) RemoteAddr() string {
	return l.conn.RemoteAddr().String()
}
