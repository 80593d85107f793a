package game

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"wordgame-service/domain"
)

// MatchState is the lifecycle state of a match.
type MatchState int

const (
	MatchCreated MatchState = iota
	MatchRunning
	MatchEnded
)

func (s MatchState) String() string {
	switch s {
	case MatchCreated:
		return "created"
	case MatchRunning:
		return "running"
	case MatchEnded:
		return "ended"
	}
	return "unknown"
}

// MatchSnapshot is a consistent copy of a match's board and clock.
type MatchSnapshot struct {
	Board     []domain.Card
	Score1    int
	Score2    int
	Remaining int
	Ended     bool
	Winner    domain.Team // meaningful only when Ended
}

// Match is one timed play-through. The board and countdown are guarded by mu.
type Match struct {
	ID        string
	RoomID    string
	Duration  int
	StartedAt time.Time

	mu        sync.Mutex
	board     []domain.Card
	remaining int
	state     MatchState
}

// NewMatch builds a running match from the first boardSize words. The first
// boardSize/2 cards start owned by team 1, the rest by team 2.
func NewMatch(roomID string, words []string, boardSize, duration int) *Match {
	n := min(boardSize, len(words))
	half := boardSize / 2

	board := make([]domain.Card, 0, n)
	for i := 0; i < n; i++ {
		owner := domain.TeamTwo
		if i < half {
			owner = domain.TeamOne
		}
		board = append(board, domain.Card{Word: words[i], Owner: owner})
	}

	return &Match{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		Duration:  duration,
		StartedAt: time.Now(),
		board:     board,
		remaining: duration,
		state:     MatchRunning,
	}
}

func (m *Match) State() MatchState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// ApplyWord captures the first card whose word equals raw (trimmed, case
// insensitive) for team. It reports false when nothing changed: empty input,
// no matching card, a card already owned by team, or a finished match.
func (m *Match) ApplyWord(team domain.Team, raw string) (MatchSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	target := strings.TrimSpace(raw)
	if target == "" || m.state != MatchRunning || !team.Valid() {
		return m.snapshotLocked(), false
	}

	for i := range m.board {
		if !strings.EqualFold(m.board[i].Word, target) {
			continue
		}
		if m.board[i].Owner == team {
			return m.snapshotLocked(), false
		}
		m.board[i].Owner = team
		return m.snapshotLocked(), true
	}
	return m.snapshotLocked(), false
}

// Tick advances the clock by one second. The returned snapshot has Ended set
// on the tick that reaches zero; later ticks are no-ops.
func (m *Match) Tick() MatchSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != MatchRunning {
		return m.snapshotLocked()
	}
	m.remaining--
	if m.remaining <= 0 {
		m.remaining = 0
		m.state = MatchEnded
	}
	return m.snapshotLocked()
}

func (m *Match) Snapshot() MatchSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Match) snapshotLocked() MatchSnapshot {
	s := MatchSnapshot{
		Board:     append([]domain.Card(nil), m.board...),
		Remaining: m.remaining,
		Ended:     m.state == MatchEnded,
	}
	for _, c := range m.board {
		switch c.Owner {
		case domain.TeamOne:
			s.Score1++
		case domain.TeamTwo:
			s.Score2++
		}
	}
	if s.Ended {
		s.Winner = domain.WinnerOf(s.Score1, s.Score2)
	}
	return s
}

// Run ticks the match every interval, starting one interval after the call,
// and passes each snapshot to onTick. It returns after the final tick or when
// ctx is done.
func (m *Match) Run(ctx context.Context, interval time.Duration, onTick func(MatchSnapshot)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := m.Tick()
			onTick(snap)
			if snap.Ended {
				return
			}
		}
	}
}
