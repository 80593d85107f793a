package domain

import "errors"

var (
	ErrMalformedMessage = errors.New("malformed message")
	ErrInvalidInput     = errors.New("invalid input")

	ErrNotLoggedIn     = errors.New("not logged in")
	ErrAlreadyLoggedIn = errors.New("already logged in")
	ErrDuplicateName   = errors.New("player name already in use")

	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room is full")
	ErrNotMember      = errors.New("player is not in the room")
	ErrNotCreator     = errors.New("only the room creator can start the game")
	ErrAlreadyPlaying = errors.New("game already in progress")
	ErrNotAllReady    = errors.New("not all players are ready")
	ErrTeamImbalance  = errors.New("both teams need one player")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrMalformedMessage, "MALFORMED"},
	{ErrInvalidInput, "INVALID_INPUT"},
	{ErrNotLoggedIn, "NOT_LOGGED_IN"},
	{ErrAlreadyLoggedIn, "ALREADY_LOGGED_IN"},
	{ErrDuplicateName, "DUPLICATE_NAME"},
	{ErrRoomNotFound, "ROOM_NOT_FOUND"},
	{ErrRoomFull, "ROOM_FULL"},
	{ErrNotMember, "NOT_IN_ROOM"},
	{ErrNotCreator, "NOT_CREATOR"},
	{ErrAlreadyPlaying, "ALREADY_PLAYING"},
	{ErrNotAllReady, "NOT_ALL_READY"},
	{ErrTeamImbalance, "TEAM_IMBALANCE"},
}

// ErrorCode maps err to the stable code sent to clients in ERROR and FAIL responses.
func ErrorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "INTERNAL"
}
