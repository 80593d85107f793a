package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrRoomFull, "ROOM_FULL"},
		{fmt.Errorf("%w: R9", ErrRoomNotFound), "ROOM_NOT_FOUND"},
		{ErrNotCreator, "NOT_CREATOR"},
		{ErrNotAllReady, "NOT_ALL_READY"},
		{ErrTeamImbalance, "TEAM_IMBALANCE"},
		{ErrDuplicateName, "DUPLICATE_NAME"},
		{errors.New("boom"), "INTERNAL"},
		{nil, "INTERNAL"},
	}

	for _, tt := range tests {
		if got := ErrorCode(tt.err); got != tt.want {
			t.Errorf("ErrorCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestParseTeam(t *testing.T) {
	tests := map[string]Team{
		"1":  TeamOne,
		"2":  TeamTwo,
		"0":  TeamNone,
		"3":  TeamNone,
		"":   TeamNone,
		"x":  TeamNone,
		"-1": TeamNone,
	}
	for in, want := range tests {
		if got := ParseTeam(in); got != want {
			t.Errorf("ParseTeam(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWinnerOf(t *testing.T) {
	if got := WinnerOf(16, 14); got != TeamOne {
		t.Errorf("WinnerOf(16, 14) = %v", got)
	}
	if got := WinnerOf(3, 27); got != TeamTwo {
		t.Errorf("WinnerOf(3, 27) = %v", got)
	}
	if got := WinnerOf(15, 15); got != TeamNone {
		t.Errorf("WinnerOf(15, 15) = %v", got)
	}
}
