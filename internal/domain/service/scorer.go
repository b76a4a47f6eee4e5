package service

import (
	"context"

	"github.com/bibbank/fraudshield/internal/domain/model"
)

// Scorer scores a single transaction record. RiskScorer implements it; the
// batch scorer and use cases depend only on this interface.
type Scorer interface {
	Score(ctx context.Context, record model.TransactionRecord) (*model.RiskAssessment, error)
}
