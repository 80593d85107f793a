package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"wordgame-service/domain"
)

const (
	statusReady    = "ready"
	statusNotReady = "notready"
	wordSeparator  = ','
)

// EncodePlayers renders members as id:name:team:ready entries joined by ','.
func EncodePlayers(players []domain.PlayerInfo) string {
	entries := make([]string, 0, len(players))
	for _, p := range players {
		ready := statusNotReady
		if p.Ready {
			ready = statusReady
		}
		entries = append(entries, strings.Join([]string{
			Escape(p.ID, FieldSeparator, ListSeparator),
			Escape(p.Name, FieldSeparator, ListSeparator),
			p.Team.String(),
			ready,
		}, string(FieldSeparator)))
	}
	return strings.Join(entries, string(ListSeparator))
}

// DecodePlayers parses the output of EncodePlayers.
func DecodePlayers(s string) ([]domain.PlayerInfo, error) {
	if s == "" {
		return nil, nil
	}
	var players []domain.PlayerInfo
	for _, entry := range SplitEscaped(s, ListSeparator) {
		parts := SplitEscaped(entry, FieldSeparator)
		if len(parts) != 4 {
			return nil, fmt.Errorf("%w: player entry %q", domain.ErrMalformedMessage, entry)
		}
		team, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("%w: player team %q", domain.ErrMalformedMessage, parts[2])
		}
		players = append(players, domain.PlayerInfo{
			ID:    Unescape(parts[0]),
			Name:  Unescape(parts[1]),
			Team:  domain.Team(team),
			Ready: parts[3] == statusReady,
		})
	}
	return players, nil
}

// EncodeBoard renders cards as word,owner entries joined by '/'.
func EncodeBoard(cards []domain.Card) string {
	var b strings.Builder
	for i, c := range cards {
		if i > 0 {
			b.WriteByte(BoardSeparator)
		}
		b.WriteString(Escape(c.Word, wordSeparator, BoardSeparator))
		b.WriteByte(wordSeparator)
		b.WriteString(c.Owner.String())
	}
	return b.String()
}

// DecodeBoard parses the output of EncodeBoard.
func DecodeBoard(s string) ([]domain.Card, error) {
	if s == "" {
		return nil, nil
	}
	var cards []domain.Card
	for _, entry := range SplitEscaped(s, BoardSeparator) {
		parts := SplitEscaped(entry, wordSeparator)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: board entry %q", domain.ErrMalformedMessage, entry)
		}
		owner, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: card owner %q", domain.ErrMalformedMessage, parts[1])
		}
		cards = append(cards, domain.Card{Word: Unescape(parts[0]), Owner: domain.Team(owner)})
	}
	return cards, nil
}

// EncodeRoomList renders summaries as id:name:current/max:state entries joined by ','.
func EncodeRoomList(rooms []domain.Room) string {
	entries := make([]string, 0, len(rooms))
	for _, r := range rooms {
		entries = append(entries, strings.Join([]string{
			Escape(r.ID, FieldSeparator, ListSeparator),
			Escape(r.RoomName, FieldSeparator, ListSeparator),
			fmt.Sprintf("%d/%d", r.CurrentPlayers, r.MaxPlayers),
			string(r.Status),
		}, string(FieldSeparator)))
	}
	return strings.Join(entries, string(ListSeparator))
}

// DecodeRoomList parses the output of EncodeRoomList.
func DecodeRoomList(s string) ([]domain.Room, error) {
	if s == "" {
		return nil, nil
	}
	var rooms []domain.Room
	for _, entry := range SplitEscaped(s, ListSeparator) {
		parts := SplitEscaped(entry, FieldSeparator)
		if len(parts) != 4 {
			return nil, fmt.Errorf("%w: room entry %q", domain.ErrMalformedMessage, entry)
		}
		var current, max int
		if _, err := fmt.Sscanf(parts[2], "%d/%d", &current, &max); err != nil {
			return nil, fmt.Errorf("%w: room occupancy %q", domain.ErrMalformedMessage, parts[2])
		}
		rooms = append(rooms, domain.Room{
			ID:             Unescape(parts[0]),
			RoomName:       Unescape(parts[1]),
			CurrentPlayers: current,
			MaxPlayers:     max,
			Status:         domain.RoomState(parts[3]),
		})
	}
	return rooms, nil
}
