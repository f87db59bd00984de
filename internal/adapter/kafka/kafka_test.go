package kafka

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/flood-risk-dashboard/internal/config"
	"github.com/couchcryptid/flood-risk-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport(now time.Time) domain.RiskReport {
	return domain.RiskReport{
		UploadID:    "0b4f3c1e-upload",
		FileName:    "gangnam_flood_example.xlsx",
		TotalRows:   2,
		MappedRows:  2,
		RiskCounts:  map[domain.RiskLevel]int{domain.RiskLow: 0, domain.RiskMedium: 0, domain.RiskHigh: 2},
		CenterLat:   37.4982,
		CenterLon:   127.0272,
		MostSevere:  []string{"강남역 물이 너무 많이 찼어요"},
		ProcessedAt: now,
	}
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2022, 8, 8, 22, 0, 0, 0, time.UTC)

	msg, err := serializeToMessage(testReport(now))
	require.NoError(t, err)

	assert.Equal(t, []byte("0b4f3c1e-upload"), msg.Key)
	assert.Contains(t, string(msg.Value), `"risk_counts":{"1":0,"2":0,"3":2}`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "upload_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("0b4f3c1e-upload"), msg.Headers[0].Value)
	assert.Equal(t, "processed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeToMessage_RoundTrip(t *testing.T) {
	now := time.Date(2022, 8, 8, 22, 0, 0, 0, time.UTC)
	want := testReport(now)

	msg, err := serializeToMessage(want)
	require.NoError(t, err)

	var got domain.RiskReport
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, want, got)
}

func TestNewPublisher_UsesConfig(t *testing.T) {
	cfg := &config.Config{
		KafkaBrokers:     []string{"broker1:9092", "broker2:9092"},
		KafkaReportTopic: "flood-risk-reports",
	}

	p := NewPublisher(cfg, slog.Default())
	t.Cleanup(func() { _ = p.Close() })

	assert.Equal(t, "flood-risk-reports", p.writer.Topic)
	assert.Equal(t, kafkago.RequireAll, p.writer.RequiredAcks)
}
