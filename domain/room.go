package domain

import (
	"strconv"
	"time"
)

// Team identifies one side of a match. TeamNone marks an unassigned player or an unowned card.
type Team int

const (
	TeamNone Team = iota
	TeamOne
	TeamTwo
)

// Valid reports whether t is one of the two playing teams.
func (t Team) Valid() bool {
	return t == TeamOne || t == TeamTwo
}

func (t Team) String() string {
	return strconv.Itoa(int(t))
}

// ParseTeam converts a wire value into a Team. Anything other than "1" or "2" yields TeamNone.
func ParseTeam(s string) Team {
	n, err := strconv.Atoi(s)
	if err != nil {
		return TeamNone
	}
	t := Team(n)
	if !t.Valid() {
		return TeamNone
	}
	return t
}

// RoomState is the lobby state of a room.
type RoomState string

const (
	RoomStateWaiting RoomState = "waiting"
	RoomStatePlaying RoomState = "playing"
)

// Room is the read-only summary of a room used for listings.
type Room struct {
	ID             string    `json:"id"`
	RoomName       string    `json:"room_name"`
	CreatorID      string    `json:"creator_id,omitempty"`
	MaxPlayers     int       `json:"max_players"`
	CurrentPlayers int       `json:"current_players"`
	Status         RoomState `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// PlayerInfo is a snapshot of one room member.
type PlayerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Team      Team   `json:"team"`
	Ready     bool   `json:"ready"`
	IsCreator bool   `json:"is_creator"`
}

// Card is one word on a match board and the team that currently owns it.
type Card struct {
	Word  string `json:"word"`
	Owner Team   `json:"owner"`
}
