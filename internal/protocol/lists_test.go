package protocol

import (
	"reflect"
	"testing"

	"wordgame-service/domain"
)

func TestEncodePlayers(t *testing.T) {
	players := []domain.PlayerInfo{
		{ID: "P1", Name: "alice", Team: domain.TeamOne, Ready: true},
		{ID: "P2", Name: "bob", Team: domain.TeamTwo},
	}
	got := EncodePlayers(players)
	want := "P1:alice:1:ready,P2:bob:2:notready"
	if got != want {
		t.Fatalf("EncodePlayers() = %q, want %q", got, want)
	}

	decoded, err := DecodePlayers(got)
	if err != nil {
		t.Fatalf("DecodePlayers() error = %v", err)
	}
	if !reflect.DeepEqual(decoded, players) {
		t.Errorf("DecodePlayers() = %+v, want %+v", decoded, players)
	}
}

func TestPlayers_NestedInPayload(t *testing.T) {
	players := []domain.PlayerInfo{
		{ID: "P1", Name: "a:b,c;d", Team: domain.TeamOne},
		{ID: "P2", Name: `back\slash`, Team: domain.TeamTwo, Ready: true},
	}

	line := Encode(RoomUpdate, Fields{"roomId": "R1", "players": EncodePlayers(players)})
	msg, err := Decode(line)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	decoded, err := DecodePlayers(msg.Fields.Get("players"))
	if err != nil {
		t.Fatalf("DecodePlayers() error = %v", err)
	}
	if !reflect.DeepEqual(decoded, players) {
		t.Errorf("players = %+v, want %+v", decoded, players)
	}
	if msg.Fields.Get("roomId") != "R1" {
		t.Errorf("roomId = %q", msg.Fields.Get("roomId"))
	}
}

func TestDecodePlayers_Malformed(t *testing.T) {
	for _, s := range []string{"P1:alice:1", "P1:alice:x:ready"} {
		if _, err := DecodePlayers(s); err == nil {
			t.Errorf("DecodePlayers(%q) expected error", s)
		}
	}
	if players, err := DecodePlayers(""); err != nil || players != nil {
		t.Errorf("DecodePlayers(\"\") = %v, %v", players, err)
	}
}

func TestEncodeBoard(t *testing.T) {
	cards := []domain.Card{
		{Word: "apple", Owner: domain.TeamOne},
		{Word: "banana", Owner: domain.TeamTwo},
		{Word: "and/or", Owner: domain.TeamNone},
	}
	got := EncodeBoard(cards)
	want := `apple,1/banana,2/and\/or,0`
	if got != want {
		t.Fatalf("EncodeBoard() = %q, want %q", got, want)
	}

	line := Encode(GameUpdate, Fields{"board": got})
	msg, err := Decode(line)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	decoded, err := DecodeBoard(msg.Fields.Get("board"))
	if err != nil {
		t.Fatalf("DecodeBoard() error = %v", err)
	}
	if !reflect.DeepEqual(decoded, cards) {
		t.Errorf("DecodeBoard() = %+v, want %+v", decoded, cards)
	}
}

func TestEncodeRoomList(t *testing.T) {
	rooms := []domain.Room{
		{ID: "R1", RoomName: "first", CurrentPlayers: 1, MaxPlayers: 2, Status: domain.RoomStateWaiting},
		{ID: "R2", RoomName: "2:4 fun", CurrentPlayers: 4, MaxPlayers: 4, Status: domain.RoomStatePlaying},
	}
	got := EncodeRoomList(rooms)
	want := `R1:first:1/2:waiting,R2:2\:4 fun:4/4:playing`
	if got != want {
		t.Fatalf("EncodeRoomList() = %q, want %q", got, want)
	}

	decoded, err := DecodeRoomList(got)
	if err != nil {
		t.Fatalf("DecodeRoomList() error = %v", err)
	}
	if !reflect.DeepEqual(decoded, rooms) {
		t.Errorf("DecodeRoomList() = %+v, want %+v", decoded, rooms)
	}
}
