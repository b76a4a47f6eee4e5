package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/bibbank/fraudshield/internal/application/dto"
	"github.com/bibbank/fraudshield/internal/domain/port"
	"github.com/bibbank/fraudshield/internal/domain/service"
)

var tracer = otel.Tracer("github.com/bibbank/fraudshield/internal/application/usecase")

// ScoreTransaction is the use case for scoring a single transaction.
type ScoreTransaction struct {
	scorer    service.Scorer
	publisher port.EventPublisher
	recorder  port.AssessmentRecorder
	logger    *slog.Logger
}

// NewScoreTransaction creates a new ScoreTransaction use case.
func NewScoreTransaction(
	scorer service.Scorer,
	publisher port.EventPublisher,
	recorder port.AssessmentRecorder,
	logger *slog.Logger,
) *ScoreTransaction {
	return &ScoreTransaction{
		scorer:    scorer,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
	}
}

// Execute validates the request, scores it and publishes the resulting
// events. A publishing failure is logged and does not change the result.
func (uc *ScoreTransaction) Execute(ctx context.Context, req dto.ScoreTransactionRequest) (dto.AssessmentResult, error) {
	ctx, span := tracer.Start(ctx, "ScoreTransaction")
	defer span.End()

	// 1. Reject malformed input before any feature is extracted.
	record, err := req.ToRecord()
	if err != nil {
		span.SetStatus(codes.Error, "invalid transaction")
		return dto.AssessmentResult{}, err
	}
	span.SetAttributes(attribute.String("account_id", record.AccountID()))

	// 2. Score.
	start := time.Now()
	assessment, err := uc.scorer.Score(ctx, record)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scoring failed")
		return dto.AssessmentResult{}, fmt.Errorf("failed to score transaction: %w", err)
	}
	uc.recorder.RecordLatency(ctx, "score_transaction", time.Since(start))
	uc.recorder.RecordAssessment(ctx, assessment)

	span.SetAttributes(
		attribute.Int("risk_score", assessment.RiskScore()),
		attribute.String("risk_level", assessment.RiskLevel().String()),
	)

	// 3. Publish domain events.
	if evts := assessment.DomainEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			uc.logger.Warn("failed to publish assessment events",
				"assessment_id", assessment.ID(),
				"account_id", assessment.AccountID(),
				"error", err,
			)
		}
	}

	return dto.FromModel(assessment), nil
}
