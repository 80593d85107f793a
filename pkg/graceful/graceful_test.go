package graceful

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitForShutdown_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var order []string
	step := func(name string, err error) Shutdowner {
		return ShutdownFunc(func(ctx context.Context) error {
			if _, ok := ctx.Deadline(); !ok {
				t.Errorf("%s: no deadline", name)
			}
			order = append(order, name)
			return err
		})
	}

	done := make(chan struct{})
	go func() {
		WaitForShutdown(ctx, time.Second, step("tcp", nil), step("http", errors.New("boom")), step("game", nil))
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForShutdown() did not return")
	}
	if len(order) != 3 || order[0] != "tcp" || order[2] != "game" {
		t.Errorf("order = %v", order)
	}
}
