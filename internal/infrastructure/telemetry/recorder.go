// Package telemetry records scoring metrics through the OpenTelemetry meter API.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bibbank/fraudshield/internal/domain/model"
)

const meterName = "github.com/bibbank/fraudshield"

// Recorder implements port.AssessmentRecorder.
type Recorder struct {
	assessments metric.Int64Counter
	riskScores  metric.Int64Histogram
	latency     metric.Float64Histogram
}

// NewRecorder registers the scoring instruments on provider.
func NewRecorder(provider metric.MeterProvider) (*Recorder, error) {
	meter := provider.Meter(meterName)

	assessments, err := meter.Int64Counter("fraudshield_assessments",
		metric.WithDescription("Transactions scored, by risk level and ml prediction."))
	if err != nil {
		return nil, fmt.Errorf("telemetry: assessments counter: %w", err)
	}

	riskScores, err := meter.Int64Histogram("fraudshield_risk_score",
		metric.WithDescription("Distribution of final risk scores."),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90, 100))
	if err != nil {
		return nil, fmt.Errorf("telemetry: risk score histogram: %w", err)
	}

	latency, err := meter.Float64Histogram("fraudshield_scoring_duration",
		metric.WithDescription("Scoring latency per operation."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: latency histogram: %w", err)
	}

	return &Recorder{
		assessments: assessments,
		riskScores:  riskScores,
		latency:     latency,
	}, nil
}

// RecordAssessment counts one assessment.
func (r *Recorder) RecordAssessment(ctx context.Context, a *model.RiskAssessment) {
	level := attribute.String("risk_level", a.RiskLevel().String())
	r.assessments.Add(ctx, 1, metric.WithAttributes(
		level,
		attribute.String("ml_prediction", a.MLPrediction().String()),
	))
	r.riskScores.Record(ctx, int64(a.RiskScore()), metric.WithAttributes(level))
}

// RecordLatency records the duration of a scoring operation.
func (r *Recorder) RecordLatency(ctx context.Context, operation string, elapsed time.Duration) {
	r.latency.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("operation", operation)))
}
