package game

import (
	"context"
	"fmt"
	"testing"
	"time"

	"wordgame-service/domain"
)

func makeWords(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%02d", i)
	}
	return words
}

func TestNewMatch_Board(t *testing.T) {
	tests := []struct {
		name      string
		words     int
		wantCards int
		wantOnes  int
	}{
		{"full pool", 40, 30, 15},
		{"exact", 30, 30, 15},
		{"small pool", 20, 20, 15},
		{"tiny pool", 4, 4, 4},
		{"empty pool", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatch("R1", makeWords(tt.words), 30, 60)
			snap := m.Snapshot()

			if len(snap.Board) != tt.wantCards {
				t.Fatalf("cards = %d, want %d", len(snap.Board), tt.wantCards)
			}
			if snap.Score1 != tt.wantOnes || snap.Score2 != tt.wantCards-tt.wantOnes {
				t.Errorf("scores = %d/%d", snap.Score1, snap.Score2)
			}
			for i, c := range snap.Board {
				want := domain.TeamTwo
				if i < 15 {
					want = domain.TeamOne
				}
				if c.Owner != want {
					t.Errorf("card %d owner = %v, want %v", i, c.Owner, want)
				}
			}
			if snap.Remaining != 60 || m.State() != MatchRunning {
				t.Errorf("remaining = %d, state = %v", snap.Remaining, m.State())
			}
		})
	}
}

func TestMatch_ApplyWord(t *testing.T) {
	m := NewMatch("R1", []string{"Apple", "pear", "apple", "plum"}, 4, 60)
	// Apple,pear -> team 1; apple,plum -> team 2

	tests := []struct {
		name        string
		team        domain.Team
		word        string
		wantChanged bool
		wantScore1  int
	}{
		{"own card", domain.TeamOne, "pear", false, 2},
		{"capture trimmed", domain.TeamTwo, "  PEAR ", true, 1},
		{"repeat is idempotent", domain.TeamTwo, "pear", false, 1},
		{"first match wins", domain.TeamOne, "APPLE", false, 1},
		{"unknown word", domain.TeamOne, "grape", false, 1},
		{"blank", domain.TeamOne, "   ", false, 1},
		{"recapture", domain.TeamOne, "plum", true, 2},
		{"no team", domain.TeamNone, "pear", false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, changed := m.ApplyWord(tt.team, tt.word)
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if snap.Score1 != tt.wantScore1 || snap.Score1+snap.Score2 != 4 {
				t.Errorf("scores = %d/%d", snap.Score1, snap.Score2)
			}
		})
	}

	// "apple" resolves to the first card, leaving the third untouched
	if board := m.Snapshot().Board; board[2].Owner != domain.TeamTwo {
		t.Errorf("card 2 owner = %v, want 2", board[2].Owner)
	}
}

func TestMatch_Tick(t *testing.T) {
	m := NewMatch("R1", makeWords(30), 30, 3)

	for want := 2; want > 0; want-- {
		snap := m.Tick()
		if snap.Ended || snap.Remaining != want {
			t.Fatalf("Tick() = remaining %d ended %v, want %d", snap.Remaining, snap.Ended, want)
		}
	}

	m.ApplyWord(domain.TeamTwo, "word00")
	snap := m.Tick()
	if !snap.Ended || snap.Remaining != 0 {
		t.Fatalf("final Tick() = %+v", snap)
	}
	if snap.Winner != domain.TeamTwo || snap.Score1 != 14 || snap.Score2 != 16 {
		t.Errorf("winner = %v, scores %d/%d", snap.Winner, snap.Score1, snap.Score2)
	}
	if m.State() != MatchEnded {
		t.Errorf("State() = %v", m.State())
	}

	if _, changed := m.ApplyWord(domain.TeamOne, "word00"); changed {
		t.Error("ApplyWord() changed an ended match")
	}
	if again := m.Tick(); again.Remaining != 0 || !again.Ended {
		t.Errorf("Tick() after end = %+v", again)
	}
}

func TestMatch_DrawWinner(t *testing.T) {
	m := NewMatch("R1", makeWords(30), 30, 1)
	snap := m.Tick()
	if !snap.Ended || snap.Winner != domain.TeamNone {
		t.Errorf("snapshot = %+v, want draw", snap)
	}
}

func TestMatch_Run(t *testing.T) {
	m := NewMatch("R1", makeWords(6), 6, 3)

	var ticks []MatchSnapshot
	done := make(chan struct{})
	go func() {
		m.Run(context.Background(), time.Millisecond, func(s MatchSnapshot) { ticks = append(ticks, s) })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop after the match ended")
	}

	if len(ticks) != 3 || !ticks[2].Ended || ticks[0].Remaining != 2 {
		t.Errorf("ticks = %+v", ticks)
	}
}

func TestMatch_RunCancelled(t *testing.T) {
	m := NewMatch("R1", makeWords(6), 6, 60)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Hour, func(MatchSnapshot) { t.Error("unexpected tick") })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run() ignored cancellation")
	}
	if m.State() != MatchRunning {
		t.Errorf("State() = %v, want running", m.State())
	}
}
