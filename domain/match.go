package domain

import "time"

// MatchResult is the outcome of one finished match.
type MatchResult struct {
	MatchID    string    `json:"match_id"`
	RoomID     string    `json:"room_id"`
	RoomName   string    `json:"room_name"`
	Score1     int       `json:"score1"`
	Score2     int       `json:"score2"`
	Winner     Team      `json:"winner"` // TeamNone on a draw
	PlayerIDs  []string  `json:"player_ids"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// WinnerOf returns the team with strictly more cards, or TeamNone on a tie.
func WinnerOf(score1, score2 int) Team {
	switch {
	case score1 > score2:
		return TeamOne
	case score2 > score1:
		return TeamTwo
	default:
		return TeamNone
	}
}
