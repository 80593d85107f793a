package session

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"wordgame-service/internal/api/game"
	"wordgame-service/internal/protocol"
)

var testWords = []string{"apple", "river", "cloud", "stone", "bread", "flame"}

type staticWords []string

func (w staticWords) Words(n int) []string {
	return append([]string(nil), w[:min(n, len(w))]...)
}

type testEnv struct {
	t       *testing.T
	ctx     context.Context
	hub     *Hub
	svc     *game.Service
	handler *Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	hub := NewHub()
	svc := game.NewService(game.Config{
		BoardSize:     4,
		MatchDuration: 60,
		TickInterval:  time.Hour,
		RoomGrace:     time.Minute,
		SweepInterval: time.Minute,
	}, game.NewRoomManager(), hub, staticWords(testWords))

	h := NewHandler(Config{
		SendBuffer:    64,
		MaxNameLength: 20,
		RatePerSecond: 1000,
		RateBurst:     1000,
	}, hub, svc)

	t.Cleanup(func() {
		cancel()
		svc.Close()
	})
	return &testEnv{t: t, ctx: ctx, hub: hub, svc: svc, handler: h}
}

type testConn struct {
	t    *testing.T
	conn net.Conn
	r    *bufio.Reader
	done chan struct{}
}

// connect serves one side of a pipe and returns the client side.
func (e *testEnv) connect() *testConn {
	server, client := net.Pipe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		e.handler.Serve(e.ctx, NewStreamConn(server, 1024, 5*time.Second))
	}()
	tc := &testConn{t: e.t, conn: client, r: bufio.NewReader(client), done: done}
	e.t.Cleanup(func() { client.Close() })
	return tc
}

func (tc *testConn) sendRaw(line string) {
	tc.t.Helper()
	tc.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	if _, err := tc.conn.Write([]byte(line + "\n")); err != nil {
		tc.t.Fatalf("write %q: %v", line, err)
	}
}

func (tc *testConn) send(kind protocol.Kind, fields protocol.Fields) {
	tc.t.Helper()
	tc.sendRaw(protocol.Encode(kind, fields))
}

func (tc *testConn) read() protocol.Message {
	tc.t.Helper()
	tc.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := tc.r.ReadString('\n')
	if err != nil {
		tc.t.Fatalf("read: %v", err)
	}
	msg, err := protocol.Decode(line[:len(line)-1])
	if err != nil {
		tc.t.Fatalf("decode %q: %v", line, err)
	}
	return msg
}

// expect reads until a message of kind arrives, skipping others.
func (tc *testConn) expect(kind protocol.Kind) protocol.Message {
	tc.t.Helper()
	for {
		msg := tc.read()
		if msg.Kind == kind {
			return msg
		}
	}
}

func (tc *testConn) login(name string) string {
	tc.t.Helper()
	tc.send(protocol.LoginReq, protocol.Fields{"playerName": name})
	res := tc.expect(protocol.LoginRes)
	if res.Fields.Get("status") != statusSuccess {
		tc.t.Fatalf("login %s failed: %v", name, res.Fields)
	}
	return res.Fields.Get("playerId")
}

func (tc *testConn) createRoom(name string, maxPlayers string) string {
	tc.t.Helper()
	tc.send(protocol.RoomCreateReq, protocol.Fields{"roomName": name, "maxPlayers": maxPlayers})
	res := tc.expect(protocol.RoomCreateRes)
	if res.Fields.Get("status") != statusSuccess {
		tc.t.Fatalf("create room failed: %v", res.Fields)
	}
	return res.Fields.Get("roomId")
}

func (tc *testConn) join(roomID, team string) protocol.Message {
	tc.t.Helper()
	tc.send(protocol.RoomJoinReq, protocol.Fields{"roomId": roomID, "team": team})
	return tc.expect(protocol.RoomJoinRes)
}

func (tc *testConn) close() {
	tc.conn.Close()
	select {
	case <-tc.done:
	case <-time.After(2 * time.Second):
		tc.t.Fatal("session did not end after close")
	}
}
