// Package kafka publishes per-upload risk reports to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/flood-risk-dashboard/internal/config"
	"github.com/couchcryptid/flood-risk-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher produces risk reports to the configured report topic.
// It implements pipeline.ReportPublisher and is safe for concurrent use.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the report topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaReportTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish writes one report, keyed by upload ID.
func (p *Publisher) Publish(ctx context.Context, report domain.RiskReport) error {
	msg, err := serializeToMessage(report)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write risk report: %w", err)
	}
	p.logger.Debug("risk report published", "upload_id", report.UploadID, "topic", p.writer.Topic)
	return nil
}

// Close flushes pending writes and releases the connection.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a RiskReport into a Kafka message.
func serializeToMessage(report domain.RiskReport) (kafkago.Message, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize risk report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(report.UploadID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "upload_id", Value: []byte(report.UploadID)},
			{Key: "processed_at", Value: []byte(report.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
