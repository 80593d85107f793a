package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "12345" {
		t.Errorf("Server.Port = %q, want 12345", cfg.Server.Port)
	}
	if cfg.Game.BoardSize != 30 || cfg.Game.MatchDuration != 60 {
		t.Errorf("Game = %+v", cfg.Game)
	}
	if cfg.Game.TickInterval != time.Second || cfg.Game.RoomGracePeriod != 5*time.Minute {
		t.Errorf("durations = %v, %v", cfg.Game.TickInterval, cfg.Game.RoomGracePeriod)
	}
	if cfg.Redis.Enabled || cfg.Postgres.Enabled || cfg.Kafka.Enabled {
		t.Error("infrastructure sinks must be disabled by default")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("WORDGAME_SERVER_PORT", "4000")
	t.Setenv("WORDGAME_GAME_MATCH_DURATION", "90")
	t.Setenv("WORDGAME_GAME_TICK_INTERVAL", "500ms")

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "4000" {
		t.Errorf("Server.Port = %q, want 4000", cfg.Server.Port)
	}
	if cfg.Game.MatchDuration != 90 {
		t.Errorf("Game.MatchDuration = %d, want 90", cfg.Game.MatchDuration)
	}
	if cfg.Game.TickInterval != 500*time.Millisecond {
		t.Errorf("Game.TickInterval = %v", cfg.Game.TickInterval)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"WORDGAME_GAME_BOARD_SIZE":      "1",
		"WORDGAME_SERVER_PORT":          "abc",
		"WORDGAME_RATELIMIT_BURST":      "0",
		"WORDGAME_POSTGRES_SSLMODE":     "sometimes",
		"WORDGAME_GAME_MAX_LINE_LENGTH": "16",
	}

	for env, value := range tests {
		t.Run(env, func(t *testing.T) {
			t.Setenv(env, value)
			if _, err := Load(viper.New()); err == nil {
				t.Errorf("Load() with %s=%s expected error", env, value)
			}
		})
	}
}
