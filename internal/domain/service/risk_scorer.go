package service

import (
	"context"
	"fmt"
	"math"

	"github.com/bibbank/fraudshield/internal/domain/model"
	"github.com/bibbank/fraudshield/internal/domain/port"
	"github.com/bibbank/fraudshield/internal/domain/valueobject"
)

// RiskScorer fuses a classifier verdict with the policy's rules into a
// bounded risk assessment. It holds no mutable state and is safe for
// concurrent use.
type RiskScorer struct {
	classifier port.Classifier
	proba      port.ProbabilityClassifier
	policy     Policy
	rules      RuleSet
}

// NewRiskScorer creates a RiskScorer. A nil classifier yields
// port.ErrClassifierUnavailable.
func NewRiskScorer(classifier port.Classifier, policy Policy) (*RiskScorer, error) {
	if classifier == nil {
		return nil, fmt.Errorf("risk scorer: %w", port.ErrClassifierUnavailable)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	s := &RiskScorer{
		classifier: classifier,
		policy:     policy,
		rules:      policy.Rules(),
	}

	if policy.MLScoring == MLScoringProbability {
		proba, ok := classifier.(port.ProbabilityClassifier)
		if !ok {
			return nil, fmt.Errorf("risk scorer: ml_scoring %q requires a classifier exposing probabilities: %w",
				policy.MLScoring, port.ErrClassifierUnavailable)
		}
		s.proba = proba
	}

	return s, nil
}

// Score runs the classifier and the rules against record and fuses the result.
func (s *RiskScorer) Score(ctx context.Context, record model.TransactionRecord) (*model.RiskAssessment, error) {
	features := ExtractFeatures(record)

	label, err := s.classifier.Predict(ctx, features)
	if err != nil {
		return nil, fmt.Errorf("classifier predict: %w", err)
	}
	prediction, err := valueobject.PredictionFromLabel(label)
	if err != nil {
		return nil, err
	}

	mlScore, err := s.mlScore(ctx, features, prediction)
	if err != nil {
		return nil, err
	}

	ruleScore, signals := s.rules.Evaluate(record)

	return model.NewRiskAssessment(record, prediction, mlScore, ruleScore, Fuse(mlScore, ruleScore), signals)
}

func (s *RiskScorer) mlScore(ctx context.Context, features valueobject.FeatureVector, prediction valueobject.MLPrediction) (int, error) {
	if s.proba == nil {
		if prediction.IsFraud() {
			return s.policy.FraudScore, nil
		}
		return s.policy.NormalScore, nil
	}

	p, err := s.proba.PredictProba(ctx, features)
	if err != nil {
		return 0, fmt.Errorf("classifier predict proba: %w", err)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("classifier probability out of range: %v", p)
	}
	return int(math.Round(p * 100)), nil
}

// Fuse adds the ml and rule components and caps the sum at model.MaxRiskScore.
func Fuse(mlScore, ruleScore int) int {
	return min(mlScore+ruleScore, model.MaxRiskScore)
}
