package game

import (
	"context"
	"sync"

	"wordgame-service/domain"
	"wordgame-service/internal/protocol"
)

type recordingNotifier struct {
	mu    sync.Mutex
	lines map[string][]string
	sent  chan string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		lines: make(map[string][]string),
		sent:  make(chan string, 1024),
	}
}

func (n *recordingNotifier) Send(playerID, line string) bool {
	n.mu.Lock()
	n.lines[playerID] = append(n.lines[playerID], line)
	n.mu.Unlock()

	select {
	case n.sent <- playerID + " " + line:
	default:
	}
	return true
}

func (n *recordingNotifier) messages(playerID string) []protocol.Message {
	n.mu.Lock()
	defer n.mu.Unlock()

	msgs := make([]protocol.Message, 0, len(n.lines[playerID]))
	for _, line := range n.lines[playerID] {
		msg, err := protocol.Decode(line)
		if err == nil {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func (n *recordingNotifier) kinds(playerID string) []protocol.Kind {
	var kinds []protocol.Kind
	for _, msg := range n.messages(playerID) {
		kinds = append(kinds, msg.Kind)
	}
	return kinds
}

func (n *recordingNotifier) last(playerID string) (protocol.Message, bool) {
	msgs := n.messages(playerID)
	if len(msgs) == 0 {
		return protocol.Message{}, false
	}
	return msgs[len(msgs)-1], true
}

func (n *recordingNotifier) lastOf(playerID string, kind protocol.Kind) (protocol.Message, bool) {
	msgs := n.messages(playerID)
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Kind == kind {
			return msgs[i], true
		}
	}
	return protocol.Message{}, false
}

func (n *recordingNotifier) count(playerID string, kind protocol.Kind) int {
	c := 0
	for _, msg := range n.messages(playerID) {
		if msg.Kind == kind {
			c++
		}
	}
	return c
}

func (n *recordingNotifier) reset() {
	n.mu.Lock()
	n.lines = make(map[string][]string)
	n.mu.Unlock()
}

type staticWords []string

func (w staticWords) Words(n int) []string {
	if n > len(w) {
		n = len(w)
	}
	return append([]string(nil), w[:n]...)
}

type publishedEvent struct {
	roomID    string
	eventType string
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(_ context.Context, roomID, eventType string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{roomID: roomID, eventType: eventType})
	return nil
}

func (p *fakePublisher) has(eventType string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.events {
		if e.eventType == eventType {
			return true
		}
	}
	return false
}

type fakeRecorder struct {
	mu      sync.Mutex
	results []domain.MatchResult
}

func (r *fakeRecorder) RecordMatch(_ context.Context, result domain.MatchResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}
