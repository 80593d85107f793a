package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Game      GameConfig      `mapstructure:"game"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// ServerConfig is the game TCP listener.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port" validate:"required,numeric"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// HTTPConfig is the admin and WebSocket listener.
type HTTPConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Port         string        `mapstructure:"port" validate:"omitempty,numeric"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type GameConfig struct {
	BoardSize       int           `mapstructure:"board_size" validate:"min=2,max=200"`
	MatchDuration   int           `mapstructure:"match_duration" validate:"min=1"` // seconds
	TickInterval    time.Duration `mapstructure:"tick_interval" validate:"gt=0"`
	WordFile        string        `mapstructure:"word_file"`
	RoomGracePeriod time.Duration `mapstructure:"room_grace_period" validate:"gte=0"`
	SweepInterval   time.Duration `mapstructure:"sweep_interval" validate:"gt=0"`
	SendBuffer      int           `mapstructure:"send_buffer" validate:"min=1"`
	MaxLineLength   int           `mapstructure:"max_line_length" validate:"min=256"`
	MaxNameLength   int           `mapstructure:"max_name_length" validate:"min=1"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
}

type RateLimitConfig struct {
	PerSecond float64 `mapstructure:"per_second" validate:"gt=0"`
	Burst     int     `mapstructure:"burst" validate:"min=1"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type PostgresConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers" validate:"required_if=Enabled true"`
	Topic   string   `mapstructure:"topic" validate:"required_if=Enabled true"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "wordgame-service")
	v.SetDefault("app.version", "0.1.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "12345")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("http.enabled", true)
	v.SetDefault("http.port", "8085")
	v.SetDefault("http.idle_timeout", 5*time.Second)
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)

	v.SetDefault("game.board_size", 30)
	v.SetDefault("game.match_duration", 60)
	v.SetDefault("game.tick_interval", time.Second)
	v.SetDefault("game.word_file", "")
	v.SetDefault("game.room_grace_period", 5*time.Minute)
	v.SetDefault("game.sweep_interval", 30*time.Second)
	v.SetDefault("game.send_buffer", 64)
	v.SetDefault("game.max_line_length", 8192)
	v.SetDefault("game.max_name_length", 20)
	v.SetDefault("game.write_timeout", 10*time.Second)

	v.SetDefault("ratelimit.per_second", 20)
	v.SetDefault("ratelimit.burst", 40)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("postgres.enabled", false)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "myuser")
	v.SetDefault("postgres.password", "mypassword")
	v.SetDefault("postgres.db", "wordgamedb")
	v.SetDefault("postgres.sslmode", "disable")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "wordgame.match-ended")
}

// Load reads the configuration into v and validates it.
func Load(v *viper.Viper) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app")

	setDefaults(v)

	// ENV overrides with prefix WORDGAME_ and dot-to-underscore replacement
	v.SetEnvPrefix("WORDGAME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		zap.L().Warn("Failed to read configuration file", zap.Error(err))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse configuration: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func Read() Config {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		zap.L().Fatal("Configuration could not be loaded", zap.Error(err))
	}
	return cfg
}
