// Package kafka publishes normalized menu snapshots for other household
// consumers (e-ink display, notification bots). Optional; the service runs
// without it.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/familyhub/family-hub/internal/config"
	"github.com/familyhub/family-hub/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Announcer produces one message per committed fetch cycle.
// It implements hub.MenuAnnouncer.
type Announcer struct {
	writer     *kafkago.Writer
	identifier string
	logger     *slog.Logger
}

// NewAnnouncer creates a Kafka producer for the configured snapshot topic.
func NewAnnouncer(cfg *config.Config, logger *slog.Logger) *Announcer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSnapshotTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Announcer{writer: w, identifier: cfg.MenuIdentifier, logger: logger}
}

// AnnounceMenu serializes and publishes one normalized week menu snapshot.
func (a *Announcer) AnnounceMenu(ctx context.Context, menu domain.WeekMenu, fetchedAt time.Time) error {
	msg, err := serializeSnapshot(a.identifier, menu, fetchedAt)
	if err != nil {
		return err
	}
	if err := a.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish menu snapshot: %w", err)
	}
	a.logger.Debug("menu snapshot published", "days", len(menu))
	return nil
}

func (a *Announcer) Close() error {
	return a.writer.Close()
}

// snapshotEvent is the wire form of a published snapshot.
type snapshotEvent struct {
	Identifier string          `json:"identifier"`
	Menu       domain.WeekMenu `json:"menu"`
	FetchedAt  time.Time       `json:"fetched_at"`
}

// serializeSnapshot marshals a week menu into a Kafka message keyed by the
// organization identifier, so consumers see one compacted entry per org.
func serializeSnapshot(identifier string, menu domain.WeekMenu, fetchedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(snapshotEvent{
		Identifier: identifier,
		Menu:       menu,
		FetchedAt:  fetchedAt,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize menu snapshot: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(identifier),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "fetched_at", Value: []byte(fetchedAt.Format(time.RFC3339))},
			{Key: "days", Value: []byte(strconv.Itoa(len(menu)))},
		},
	}, nil
}
