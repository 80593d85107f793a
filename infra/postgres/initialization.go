package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	createMatchResultsTable = `
		CREATE TABLE IF NOT EXISTS match_results (
			match_id UUID PRIMARY KEY,
			room_id VARCHAR(32) NOT NULL,
			room_name VARCHAR(64) NOT NULL,
			score1 INT NOT NULL,
			score2 INT NOT NULL,
			winner SMALLINT NOT NULL, -- 0: draw, 1: team 1, 2: team 2
			player_ids TEXT[] NOT NULL DEFAULT '{}',
			started_at TIMESTAMP WITH TIME ZONE NOT NULL,
			finished_at TIMESTAMP WITH TIME ZONE NOT NULL
		);`

	createIndexes = `
		CREATE INDEX IF NOT EXISTS idx_match_results_room_id ON match_results(room_id);
		CREATE INDEX IF NOT EXISTS idx_match_results_finished_at ON match_results(finished_at);`

	insertMatchResult = `
		INSERT INTO match_results (match_id, room_id, room_name, score1, score2, winner, player_ids, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
)

// initDB creates the tables and indexes used by the repository.
func initDB(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createMatchResultsTable); err != nil {
		return fmt.Errorf("failed to create 'match_results' table: %w", err)
	}
	if _, err := db.ExecContext(ctx, createIndexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
