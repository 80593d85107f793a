package bootstrap

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"wordgame-service/config"
	"wordgame-service/pkg/graceful"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load(viper.New())
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	cfg.HTTP.Enabled = false
	return cfg
}

func TestApp_ServeAndShutdown(t *testing.T) {
	app := NewApp(testConfig(t))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	served := make(chan error, 1)
	go func() { served <- app.tcpServer.Serve(app.ctx, ln) }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(2 * time.Second))

	if _, err := conn.Write([]byte("LOGIN_REQ|16|playerName:alice\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(line, "LOGIN_RES|") || !strings.Contains(line, "status:SUCCESS") {
		t.Fatalf("login reply = %q", line)
	}

	graceful.Shutdown(2*time.Second, app.shutdownSteps()...)

	select {
	case err := <-served:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
	if n := app.hub.Count(); n != 0 {
		t.Errorf("hub still has %d clients after shutdown", n)
	}
}

func TestSetupServer_Routes(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTP.Enabled = true
	app := NewApp(cfg)
	defer app.cancel()

	if app.fiberApp == nil {
		t.Fatal("fiber app not built")
	}
	routes := map[string]bool{}
	for _, r := range app.fiberApp.GetRoutes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{"GET /health", "GET /rooms", "GET /rooms/:room_id", "GET /ws/game"} {
		if !routes[want] {
			t.Errorf("route %q not registered", want)
		}
	}
}

func TestWaitContext(t *testing.T) {
	if err := waitContext(context.Background(), func() {}); err != nil {
		t.Errorf("waitContext() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	block := make(chan struct{})
	defer close(block)
	if err := waitContext(ctx, func() { <-block }); err != context.DeadlineExceeded {
		t.Errorf("waitContext() error = %v, want deadline exceeded", err)
	}
}
