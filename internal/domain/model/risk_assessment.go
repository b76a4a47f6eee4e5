package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/fraudshield/internal/domain/event"
	"github.com/bibbank/fraudshield/internal/domain/valueobject"
	"github.com/bibbank/fraudshield/pkg/events"
)

// MaxRiskScore is the hard ceiling of a fused risk score.
const MaxRiskScore = 100

// RiskAssessment is the outcome of scoring one TransactionRecord.
type RiskAssessment struct {
	assessedAt   time.Time
	amount       decimal.Decimal
	riskLevel    valueobject.RiskLevel
	mlPrediction valueobject.MLPrediction
	accountID    string
	signals      []string
	domainEvents []events.DomainEvent
	riskScore    int
	mlScore      int
	ruleScore    int
	id           uuid.UUID
}

// NewRiskAssessment records a fused score for record. The risk level is
// derived from riskScore, which must lie in [0, MaxRiskScore].
func NewRiskAssessment(
	record TransactionRecord,
	prediction valueobject.MLPrediction,
	mlScore, ruleScore, riskScore int,
	signals []string,
) (*RiskAssessment, error) {
	if riskScore < 0 || riskScore > MaxRiskScore {
		return nil, fmt.Errorf("risk score must be between 0 and %d, got %d", MaxRiskScore, riskScore)
	}
	if mlScore < 0 || ruleScore < 0 {
		return nil, fmt.Errorf("score components must be non-negative, got ml=%d rule=%d", mlScore, ruleScore)
	}
	if prediction.IsZero() {
		return nil, fmt.Errorf("ml prediction is required")
	}

	if signals == nil {
		signals = make([]string, 0)
	}

	a := &RiskAssessment{
		id:           uuid.New(),
		accountID:    record.AccountID(),
		amount:       record.Amount(),
		riskScore:    riskScore,
		riskLevel:    valueobject.RiskLevelFromScore(riskScore),
		mlPrediction: prediction,
		mlScore:      mlScore,
		ruleScore:    ruleScore,
		signals:      signals,
		assessedAt:   time.Now().UTC(),
	}

	a.domainEvents = append(a.domainEvents, event.NewAssessmentCompleted(
		a.id, a.accountID, a.amount,
		a.riskScore, a.mlScore, a.ruleScore,
		a.riskLevel.String(), a.mlPrediction.String(),
		a.Signals(), a.assessedAt,
	))

	if a.riskLevel.Equal(valueobject.RiskLevelHigh) {
		a.domainEvents = append(a.domainEvents, event.NewHighRiskDetected(
			a.id, a.accountID, a.amount,
			a.riskScore, a.mlPrediction.String(),
			a.Signals(), a.assessedAt,
		))
	}

	return a, nil
}

// --- Accessors ---

func (a *RiskAssessment) ID() uuid.UUID                          { return a.id }
func (a *RiskAssessment) AccountID() string                      { return a.accountID }
func (a *RiskAssessment) Amount() decimal.Decimal                { return a.amount }
func (a *RiskAssessment) RiskScore() int                         { return a.riskScore }
func (a *RiskAssessment) RiskLevel() valueobject.RiskLevel       { return a.riskLevel }
func (a *RiskAssessment) MLPrediction() valueobject.MLPrediction { return a.mlPrediction }
func (a *RiskAssessment) MLScore() int                           { return a.mlScore }
func (a *RiskAssessment) RuleScore() int                         { return a.ruleScore }
func (a *RiskAssessment) AssessedAt() time.Time                  { return a.assessedAt }

// Signals returns a copy of the names of the rules that fired.
func (a *RiskAssessment) Signals() []string {
	out := make([]string, len(a.signals))
	copy(out, a.signals)
	return out
}

// DomainEvents returns all accumulated domain events and clears them.
func (a *RiskAssessment) DomainEvents() []events.DomainEvent {
	evts := a.domainEvents
	a.domainEvents = make([]events.DomainEvent, 0)
	return evts
}
