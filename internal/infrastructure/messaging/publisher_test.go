package messaging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/fraudshield/internal/domain/event"
	"github.com/bibbank/fraudshield/internal/infrastructure/messaging"
	pkgkafka "github.com/bibbank/fraudshield/pkg/kafka"
)

type mockProducer struct {
	err      error
	topic    string
	messages []pkgkafka.Message
}

func (m *mockProducer) Publish(_ context.Context, topic string, messages ...pkgkafka.Message) error {
	m.topic = topic
	m.messages = append(m.messages, messages...)
	return m.err
}

func sampleEvents() (event.AssessmentCompleted, event.HighRiskDetected) {
	id := uuid.New()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	completed := event.NewAssessmentCompleted(id, "ACC1003", decimal.NewFromInt(90000),
		100, 70, 90, "HIGH", "FRAUD", []string{"high_amount"}, at)
	alert := event.NewHighRiskDetected(id, "ACC1003", decimal.NewFromInt(90000),
		100, "FRAUD", []string{"high_amount"}, at)
	return completed, alert
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := &mockProducer{}
	pub := messaging.NewKafkaPublisher(producer, "fraudshield.assessments", slog.Default())

	completed, alert := sampleEvents()
	require.NoError(t, pub.Publish(context.Background(), completed, alert))

	assert.Equal(t, "fraudshield.assessments", producer.topic)
	require.Len(t, producer.messages, 2)

	msg := producer.messages[0]
	assert.Equal(t, []byte("ACC1003"), msg.Key)
	assert.Equal(t, event.EventTypeAssessmentCompleted, msg.Headers["event_type"])
	assert.Equal(t, completed.EventID().String(), msg.Headers["event_id"])

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "ACC1003", body["account_id"])
	assert.Equal(t, "HIGH", body["risk_level"])
	assert.Equal(t, event.EventTypeAssessmentCompleted, body["event_type"])

	assert.Equal(t, event.EventTypeHighRiskDetected, producer.messages[1].Headers["event_type"])
}

func TestKafkaPublisher_NoEvents(t *testing.T) {
	producer := &mockProducer{}
	pub := messaging.NewKafkaPublisher(producer, "t", slog.Default())

	require.NoError(t, pub.Publish(context.Background()))
	assert.Empty(t, producer.topic)
}

func TestKafkaPublisher_ProducerError(t *testing.T) {
	producer := &mockProducer{err: errors.New("leader not available")}
	pub := messaging.NewKafkaPublisher(producer, "t", slog.Default())

	completed, _ := sampleEvents()
	err := pub.Publish(context.Background(), completed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}

func TestLogPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	pub := messaging.NewLogPublisher(logger)

	completed, alert := sampleEvents()
	require.NoError(t, pub.Publish(context.Background(), completed, alert))

	out := buf.String()
	assert.Contains(t, out, event.EventTypeAssessmentCompleted)
	assert.Contains(t, out, event.EventTypeHighRiskDetected)
	assert.Contains(t, out, "event payload")
}
