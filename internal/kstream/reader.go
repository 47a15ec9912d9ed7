package kstream

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaReader creates a Kafka consumer using segmentio/kafka-go.
// kafka.Reader provides consumer-group functionality with automatic
// offset management.
func KafkaReader(topic, groupID string) *kafka.Reader {
	broker := getenv("KAFKA_BROKER", "kafka:9092")
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})
}
