package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisManager publishes room events over Redis Pub/Sub.
type RedisManager struct {
	client *redis.Client
}

// PubSubMessage is the JSON envelope published on a room channel.
type PubSubMessage struct {
	Type      string    `json:"type"`
	RoomID    string    `json:"roomId"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRedisManager connects to Redis and verifies the connection.
func NewRedisManager(ctx context.Context, redisAddr, password string, db int) (*RedisManager, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", redisAddr, err)
	}
	return &RedisManager{client: rdb}, nil
}

func (rm *RedisManager) Close() error {
	return rm.client.Close()
}

// Publish sends an event to the room's channel.
func (rm *RedisManager) Publish(ctx context.Context, roomID, eventType string, data any) error {
	payload, err := encodeMessage(roomID, eventType, data, time.Now())
	if err != nil {
		return err
	}
	channel := RoomChannel(roomID)
	if err := rm.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}
	return nil
}

// RoomChannel returns the Pub/Sub channel of a room.
func RoomChannel(roomID string) string {
	return "room:" + roomID
}

func encodeMessage(roomID, eventType string, data any, now time.Time) ([]byte, error) {
	payload, err := json.Marshal(PubSubMessage{
		Type:      eventType,
		RoomID:    roomID,
		Data:      data,
		Timestamp: now.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal room event: %w", err)
	}
	return payload, nil
}
