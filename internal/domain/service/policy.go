package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MLScoring selects how a classifier verdict becomes the ml component of the score.
type MLScoring string

const (
	// MLScoringLabel maps the binary label to FraudScore or NormalScore.
	MLScoringLabel MLScoring = "label"
	// MLScoringProbability uses round(p*100) from a ProbabilityClassifier.
	MLScoringProbability MLScoring = "probability"
)

// Policy holds the tunable weights and thresholds of the scorer.
type Policy struct {
	HighAmountThreshold decimal.Decimal
	MLScoring           MLScoring
	WatchlistCountries  []string
	FraudScore          int
	NormalScore         int
	HighAmountWeight    int
	WatchlistWeight     int
	VelocityThreshold   int
	VelocityWeight      int
	NewDeviceWeight     int
}

// DefaultPolicy returns the production scoring policy.
func DefaultPolicy() Policy {
	return Policy{
		MLScoring:           MLScoringLabel,
		FraudScore:          70,
		NormalScore:         20,
		HighAmountThreshold: decimal.NewFromInt(50000),
		HighAmountWeight:    30,
		WatchlistCountries:  []string{"nigeria", "pakistan"},
		WatchlistWeight:     25,
		VelocityThreshold:   5,
		VelocityWeight:      20,
		NewDeviceWeight:     15,
	}
}

// Validate checks that every weight is non-negative and the ml mapping is known.
func (p Policy) Validate() error {
	var errs []error

	switch p.MLScoring {
	case MLScoringLabel, MLScoringProbability:
	default:
		errs = append(errs, fmt.Errorf("unknown ml_scoring mode %q", p.MLScoring))
	}

	for name, v := range map[string]int{
		"fraud_score":        p.FraudScore,
		"normal_score":       p.NormalScore,
		"high_amount_weight": p.HighAmountWeight,
		"watchlist_weight":   p.WatchlistWeight,
		"velocity_threshold": p.VelocityThreshold,
		"velocity_weight":    p.VelocityWeight,
		"new_device_weight":  p.NewDeviceWeight,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must be non-negative, got %d", name, v))
		}
	}

	if p.FraudScore > 100 || p.NormalScore > 100 {
		errs = append(errs, fmt.Errorf("fraud_score and normal_score must not exceed 100"))
	}
	if p.HighAmountThreshold.IsNegative() {
		errs = append(errs, fmt.Errorf("high_amount_threshold must be non-negative"))
	}
	for _, c := range p.WatchlistCountries {
		if NormalizeCountry(c) == "" {
			errs = append(errs, fmt.Errorf("watchlist contains an empty country"))
			break
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid scoring policy: %w", errors.Join(errs...))
	}
	return nil
}

// Rules builds the rule set described by the policy.
func (p Policy) Rules() RuleSet {
	return RuleSet{
		AmountAboveRule{Threshold: p.HighAmountThreshold, Weight: p.HighAmountWeight},
		NewCountryWatchlistRule(p.WatchlistCountries, p.WatchlistWeight),
		VelocityRule{Threshold: p.VelocityThreshold, Weight: p.VelocityWeight},
		NewDeviceRule{Weight: p.NewDeviceWeight},
	}
}
