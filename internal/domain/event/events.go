package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/fraudshield/pkg/events"
)

const (
	// EventTypeAssessmentCompleted is emitted for every scored transaction.
	EventTypeAssessmentCompleted = "fraudshield.assessment.completed"

	// EventTypeHighRiskDetected is emitted when a transaction is assessed as HIGH risk.
	EventTypeHighRiskDetected = "fraudshield.high_risk.detected"
)

// AssessmentCompleted is published when a transaction has been scored.
type AssessmentCompleted struct {
	events.BaseEvent
	AssessedAt   time.Time       `json:"assessed_at"`
	Amount       decimal.Decimal `json:"amount"`
	AccountID    string          `json:"account_id"`
	RiskLevel    string          `json:"risk_level"`
	MLPrediction string          `json:"ml_prediction"`
	Signals      []string        `json:"signals"`
	RiskScore    int             `json:"risk_score"`
	MLScore      int             `json:"ml_score"`
	RuleScore    int             `json:"rule_score"`
}

// NewAssessmentCompleted builds the event for the assessment identified by assessmentID.
func NewAssessmentCompleted(
	assessmentID uuid.UUID,
	accountID string,
	amount decimal.Decimal,
	riskScore, mlScore, ruleScore int,
	riskLevel, mlPrediction string,
	signals []string,
	assessedAt time.Time,
) AssessmentCompleted {
	return AssessmentCompleted{
		BaseEvent:    events.NewBaseEvent(EventTypeAssessmentCompleted, assessmentID, accountID, assessedAt),
		AccountID:    accountID,
		Amount:       amount,
		RiskScore:    riskScore,
		MLScore:      mlScore,
		RuleScore:    ruleScore,
		RiskLevel:    riskLevel,
		MLPrediction: mlPrediction,
		Signals:      signals,
		AssessedAt:   assessedAt,
	}
}

// HighRiskDetected is published when an assessment lands in the HIGH band,
// so downstream case management can hold or review the transaction.
type HighRiskDetected struct {
	events.BaseEvent
	DetectedAt   time.Time       `json:"detected_at"`
	Amount       decimal.Decimal `json:"amount"`
	AccountID    string          `json:"account_id"`
	MLPrediction string          `json:"ml_prediction"`
	Signals      []string        `json:"signals"`
	RiskScore    int             `json:"risk_score"`
}

// NewHighRiskDetected builds the alert for the assessment identified by assessmentID.
func NewHighRiskDetected(
	assessmentID uuid.UUID,
	accountID string,
	amount decimal.Decimal,
	riskScore int,
	mlPrediction string,
	signals []string,
	detectedAt time.Time,
) HighRiskDetected {
	return HighRiskDetected{
		BaseEvent:    events.NewBaseEvent(EventTypeHighRiskDetected, assessmentID, accountID, detectedAt),
		AccountID:    accountID,
		Amount:       amount,
		RiskScore:    riskScore,
		MLPrediction: mlPrediction,
		Signals:      signals,
		DetectedAt:   detectedAt,
	}
}
