package initializer

import (
	"go.uber.org/zap"

	"wordgame-service/config"
	"wordgame-service/infra/kafka"
)

// InitMessaging builds the match result producer, or returns nil when Kafka is
// disabled. The writer dials lazily, so an unreachable broker shows up as
// RecordMatch errors.
func InitMessaging(appConfig config.Config) *kafka.Producer {
	if !appConfig.Kafka.Enabled {
		return nil
	}
	producer := kafka.NewProducer(kafka.Config{
		Brokers:  appConfig.Kafka.Brokers,
		Topic:    appConfig.Kafka.Topic,
		ClientID: appConfig.App.Name,
	})
	zap.L().Info("Kafka producer initialized",
		zap.Strings("brokers", appConfig.Kafka.Brokers), zap.String("topic", appConfig.Kafka.Topic))
	return producer
}
