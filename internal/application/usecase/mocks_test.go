package usecase_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bibbank/fraudshield/internal/domain/model"
	"github.com/bibbank/fraudshield/internal/domain/service"
	"github.com/bibbank/fraudshield/internal/domain/valueobject"
	"github.com/bibbank/fraudshield/pkg/events"
)

// --- Mock implementations ---

type deviceClassifier struct{}

func (deviceClassifier) Predict(_ context.Context, v valueobject.FeatureVector) (valueobject.Label, error) {
	if v.IsNewDevice() == 1 {
		return valueobject.LabelFraud, nil
	}
	return valueobject.LabelNormal, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, evts ...events.DomainEvent) error
	publishedEvents []events.DomainEvent
	mu              sync.Mutex
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockRecorder struct {
	levels     []string
	operations []string
	mu         sync.Mutex
}

func (m *mockRecorder) RecordAssessment(_ context.Context, a *model.RiskAssessment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels = append(m.levels, a.RiskLevel().String())
}

func (m *mockRecorder) RecordLatency(_ context.Context, operation string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operations = append(m.operations, operation)
}

type mockSource struct {
	err     error
	records []model.TransactionRecord
}

func (m *mockSource) Transactions(_ context.Context) ([]model.TransactionRecord, error) {
	return m.records, m.err
}

func (m *mockSource) Name() string { return "mock" }

func newRiskScorer(t *testing.T) *service.RiskScorer {
	t.Helper()
	s, err := service.NewRiskScorer(deviceClassifier{}, service.DefaultPolicy())
	require.NoError(t, err)
	return s
}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
