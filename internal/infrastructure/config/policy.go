package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/bibbank/fraudshield/internal/domain/service"
)

// policyFile mirrors the YAML scoring policy. Omitted keys keep their defaults.
type policyFile struct {
	MLScoring string `yaml:"ml_scoring"`
	MLScores  struct {
		Fraud  *int `yaml:"fraud"`
		Normal *int `yaml:"normal"`
	} `yaml:"ml_scores"`
	Rules struct {
		HighAmount struct {
			Threshold *string `yaml:"threshold"`
			Weight    *int    `yaml:"weight"`
		} `yaml:"high_amount"`
		Watchlist struct {
			Countries []string `yaml:"countries"`
			Weight    *int     `yaml:"weight"`
		} `yaml:"watchlist"`
		Velocity struct {
			Threshold *int `yaml:"threshold"`
			Weight    *int `yaml:"weight"`
		} `yaml:"velocity"`
		NewDevice struct {
			Weight *int `yaml:"weight"`
		} `yaml:"new_device"`
	} `yaml:"rules"`
}

// LoadPolicy reads a scoring policy from path, layered over
// service.DefaultPolicy. An empty path returns the defaults.
func LoadPolicy(path string) (service.Policy, error) {
	policy := service.DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return service.Policy{}, fmt.Errorf("config: read policy %s: %w", path, err)
	}
	return ParsePolicy(raw)
}

// ParsePolicy decodes a YAML scoring policy layered over service.DefaultPolicy.
func ParsePolicy(raw []byte) (service.Policy, error) {
	policy := service.DefaultPolicy()

	var f policyFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return service.Policy{}, fmt.Errorf("config: decode policy: %w", err)
	}

	if f.MLScoring != "" {
		policy.MLScoring = service.MLScoring(f.MLScoring)
	}
	setInt(&policy.FraudScore, f.MLScores.Fraud)
	setInt(&policy.NormalScore, f.MLScores.Normal)

	if t := f.Rules.HighAmount.Threshold; t != nil {
		threshold, err := decimal.NewFromString(*t)
		if err != nil {
			return service.Policy{}, fmt.Errorf("config: rules.high_amount.threshold: %w", err)
		}
		policy.HighAmountThreshold = threshold
	}
	setInt(&policy.HighAmountWeight, f.Rules.HighAmount.Weight)

	if f.Rules.Watchlist.Countries != nil {
		policy.WatchlistCountries = f.Rules.Watchlist.Countries
	}
	setInt(&policy.WatchlistWeight, f.Rules.Watchlist.Weight)

	setInt(&policy.VelocityThreshold, f.Rules.Velocity.Threshold)
	setInt(&policy.VelocityWeight, f.Rules.Velocity.Weight)
	setInt(&policy.NewDeviceWeight, f.Rules.NewDevice.Weight)

	if err := policy.Validate(); err != nil {
		return service.Policy{}, err
	}
	return policy, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
