package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bibbank/fraudshield/internal/domain/model"
)

// BatchScorer applies a Scorer to an ordered sequence of records. Records are
// scored independently and results keep input order.
type BatchScorer struct {
	scorer      Scorer
	concurrency int
}

// NewBatchScorer creates a BatchScorer running at most concurrency scoring
// calls at once. Values below 1 score sequentially.
func NewBatchScorer(scorer Scorer, concurrency int) *BatchScorer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BatchScorer{scorer: scorer, concurrency: concurrency}
}

// ScoreAll scores every record. The first failure cancels the remaining work
// and is returned without partial results.
func (b *BatchScorer) ScoreAll(ctx context.Context, records []model.TransactionRecord) ([]*model.RiskAssessment, error) {
	results := make([]*model.RiskAssessment, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, record := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			assessment, err := b.scorer.Score(gctx, record)
			if err != nil {
				return fmt.Errorf("score record %d (account %q): %w", i, record.AccountID(), err)
			}
			results[i] = assessment
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
