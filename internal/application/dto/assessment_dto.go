package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/fraudshield/internal/domain/model"
)

// AssessmentResult is the full output of a scoring use case.
type AssessmentResult struct {
	AssessedAt   time.Time
	Amount       decimal.Decimal
	AccountID    string
	RiskLevel    string
	MLPrediction string
	Signals      []string
	RiskScore    int
	MLScore      int
	RuleScore    int
	ID           uuid.UUID
}

// AssessmentResponse is the wire shape of a single-transaction score.
type AssessmentResponse struct {
	RiskLevel    string `json:"risk_level"`
	MLPrediction string `json:"ml_prediction"`
	RiskScore    int    `json:"risk_score"`
}

// BatchItem is one entry of a batch response, tagged with the account and
// amount of the record it scores.
type BatchItem struct {
	AccountID    string  `json:"account_id"`
	RiskLevel    string  `json:"risk_level"`
	MLPrediction string  `json:"ml_prediction"`
	Amount       float64 `json:"amount"`
	RiskScore    int     `json:"risk_score"`
}

// FromModel maps a domain assessment to the result DTO.
func FromModel(a *model.RiskAssessment) AssessmentResult {
	return AssessmentResult{
		ID:           a.ID(),
		AccountID:    a.AccountID(),
		Amount:       a.Amount(),
		RiskScore:    a.RiskScore(),
		RiskLevel:    a.RiskLevel().String(),
		MLPrediction: a.MLPrediction().String(),
		MLScore:      a.MLScore(),
		RuleScore:    a.RuleScore(),
		Signals:      a.Signals(),
		AssessedAt:   a.AssessedAt(),
	}
}

// Response returns the compact wire shape.
func (r AssessmentResult) Response() AssessmentResponse {
	return AssessmentResponse{
		RiskScore:    r.RiskScore,
		RiskLevel:    r.RiskLevel,
		MLPrediction: r.MLPrediction,
	}
}

// BatchItem returns the correlation-tagged wire shape.
func (r AssessmentResult) BatchItem() BatchItem {
	return BatchItem{
		AccountID:    r.AccountID,
		Amount:       r.Amount.InexactFloat64(),
		RiskScore:    r.RiskScore,
		RiskLevel:    r.RiskLevel,
		MLPrediction: r.MLPrediction,
	}
}
