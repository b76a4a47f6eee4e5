package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/bibbank/fraudshield/internal/application/dto"
	"github.com/bibbank/fraudshield/internal/domain/model"
	"github.com/bibbank/fraudshield/internal/domain/port"
	"github.com/bibbank/fraudshield/internal/domain/service"
)

// ScoreBatch is the use case for scoring an ordered sequence of transactions,
// either supplied by the caller or read from the configured source.
type ScoreBatch struct {
	source   port.TransactionSource
	batch    *service.BatchScorer
	recorder port.AssessmentRecorder
	logger   *slog.Logger
}

// NewScoreBatch creates a new ScoreBatch use case.
func NewScoreBatch(
	source port.TransactionSource,
	batch *service.BatchScorer,
	recorder port.AssessmentRecorder,
	logger *slog.Logger,
) *ScoreBatch {
	return &ScoreBatch{
		source:   source,
		batch:    batch,
		recorder: recorder,
		logger:   logger,
	}
}

// FromSource scores every record the transaction source returns. Source
// failures wrap port.ErrSourceUnavailable.
func (uc *ScoreBatch) FromSource(ctx context.Context) ([]dto.AssessmentResult, error) {
	ctx, span := tracer.Start(ctx, "ScoreBatch.FromSource")
	defer span.End()

	records, err := uc.source.Transactions(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "source unavailable")
		return nil, fmt.Errorf("%w: %s: %w", port.ErrSourceUnavailable, uc.source.Name(), err)
	}
	span.SetAttributes(attribute.String("source", uc.source.Name()))

	return uc.score(ctx, records)
}

// Execute validates and scores the supplied requests. Any invalid request
// rejects the whole batch before scoring starts.
func (uc *ScoreBatch) Execute(ctx context.Context, reqs []dto.ScoreTransactionRequest) ([]dto.AssessmentResult, error) {
	ctx, span := tracer.Start(ctx, "ScoreBatch.Execute")
	defer span.End()

	records := make([]model.TransactionRecord, 0, len(reqs))
	for i, req := range reqs {
		record, err := req.ToRecord()
		if err != nil {
			span.SetStatus(codes.Error, "invalid transaction")
			return nil, fmt.Errorf("transactions[%d]: %w", i, err)
		}
		records = append(records, record)
	}

	return uc.score(ctx, records)
}

func (uc *ScoreBatch) score(ctx context.Context, records []model.TransactionRecord) ([]dto.AssessmentResult, error) {
	start := time.Now()
	assessments, err := uc.batch.ScoreAll(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("failed to score batch: %w", err)
	}
	uc.recorder.RecordLatency(ctx, "score_batch", time.Since(start))

	results := make([]dto.AssessmentResult, 0, len(assessments))
	for _, a := range assessments {
		uc.recorder.RecordAssessment(ctx, a)
		results = append(results, dto.FromModel(a))
	}

	uc.logger.Debug("scored batch", "records", len(results), "duration", time.Since(start))
	return results, nil
}
