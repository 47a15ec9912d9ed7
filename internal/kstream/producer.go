package kstream

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/segmentio/kafka-go"

	"holdco-backend/internal/model"
)

// Topic names. Leads and catalog events travel on separate topics so each
// consumer group scales independently.
const (
	TopicLeadsAccepted   = "leads.accepted"
	TopicCatalogAccepted = "catalog.accepted"
)

// kafkaWriter constructs a Kafka producer using segmentio/kafka-go.
// kafka.Writer provides async publishing with automatic batching.
func kafkaWriter(topic string) *kafka.Writer {
	broker := getenv("KAFKA_BROKER", "kafka:9092")
	return &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// PublishLeadAccepted emits an accepted lead so downstream consumers can
// archive it and send the notification email. Keyed by lead ID so retries
// of the same lead land on the same partition.
func PublishLeadAccepted(ctx context.Context, evt model.LeadAccepted) error {
	w := kafkaWriter(TopicLeadsAccepted)
	defer w.Close()

	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(evt.LeadID),
		Value: data,
		Time:  time.Now(),
	}
	return w.WriteMessages(ctx, msg)
}

// PublishCatalogAccepted emits one event per listing the sync worker
// accepted. Projectors consume these to refresh the Redis read models.
func PublishCatalogAccepted(ctx context.Context, evt model.CatalogAccepted) error {
	w := kafkaWriter(TopicCatalogAccepted)
	defer w.Close()

	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(string(evt.Kind) + ":" + evt.ListingID),
		Value: data,
		Time:  time.Now(),
	}
	return w.WriteMessages(ctx, msg)
}
