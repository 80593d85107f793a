package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"wordgame-service/domain"
)

// MatchEndedType is the event type carried in every match message.
const MatchEndedType = "match_ended"

type Config struct {
	Brokers      []string
	Topic        string
	ClientID     string
	WriteTimeout time.Duration
}

// Producer publishes finished matches to a Kafka topic, keyed by room id.
type Producer struct {
	writer *kafka.Writer
}

// MatchEndedEvent is the JSON body of a match message.
type MatchEndedEvent struct {
	Type       string             `json:"type"`
	Result     domain.MatchResult `json:"result"`
	OccurredAt time.Time          `json:"occurred_at"`
}

func NewProducer(cfg Config) *Producer {
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			WriteTimeout:           cfg.WriteTimeout,
			AllowAutoTopicCreation: true,
			Transport:              &kafka.Transport{ClientID: cfg.ClientID},
		},
	}
}

// RecordMatch publishes a match_ended event.
func (p *Producer) RecordMatch(ctx context.Context, result domain.MatchResult) error {
	msg, err := newMessage(result, time.Now())
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write to %s: %w", p.writer.Topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func newMessage(result domain.MatchResult, now time.Time) (kafka.Message, error) {
	value, err := json.Marshal(MatchEndedEvent{
		Type:       MatchEndedType,
		Result:     result,
		OccurredAt: now.UTC(),
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal match event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(result.RoomID),
		Value: value,
		Time:  now,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(MatchEndedType)},
		},
	}, nil
}
