package service

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/bibbank/fraudshield/internal/domain/model"
)

// Signal names reported for each rule that fires.
const (
	SignalHighAmount       = "high_amount"
	SignalWatchlistCountry = "watchlist_country"
	SignalHighVelocity     = "high_velocity"
	SignalNewDevice        = "new_device"
)

// Rule is a deterministic condition over a transaction record. Evaluate
// returns the rule's contribution, zero when it does not fire.
type Rule interface {
	Name() string
	Evaluate(record model.TransactionRecord) int
}

// AmountAboveRule fires when the amount is strictly greater than Threshold.
type AmountAboveRule struct {
	Threshold decimal.Decimal
	Weight    int
}

func (r AmountAboveRule) Name() string { return SignalHighAmount }

func (r AmountAboveRule) Evaluate(record model.TransactionRecord) int {
	if record.Amount().GreaterThan(r.Threshold) {
		return r.Weight
	}
	return 0
}

// CountryWatchlistRule fires when the normalised country is on the watch-list.
type CountryWatchlistRule struct {
	countries map[string]struct{}
	weight    int
}

// NewCountryWatchlistRule builds the rule, normalising each listed country.
func NewCountryWatchlistRule(countries []string, weight int) CountryWatchlistRule {
	set := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		set[NormalizeCountry(c)] = struct{}{}
	}
	return CountryWatchlistRule{countries: set, weight: weight}
}

func (r CountryWatchlistRule) Name() string { return SignalWatchlistCountry }

func (r CountryWatchlistRule) Evaluate(record model.TransactionRecord) int {
	if _, ok := r.countries[NormalizeCountry(record.Country())]; ok {
		return r.weight
	}
	return 0
}

// NormalizeCountry trims surrounding whitespace and case-folds s so that
// " NIGERIA" and "nigeria" compare equal.
func NormalizeCountry(s string) string {
	// cases.Caser is stateful, so a fresh one is taken per call.
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// VelocityRule fires when more than Threshold transactions happened in the trailing 24 hours.
type VelocityRule struct {
	Threshold int
	Weight    int
}

func (r VelocityRule) Name() string { return SignalHighVelocity }

func (r VelocityRule) Evaluate(record model.TransactionRecord) int {
	if record.TransactionsLast24h() > r.Threshold {
		return r.Weight
	}
	return 0
}

// NewDeviceRule fires for transactions from an unrecognised device.
type NewDeviceRule struct {
	Weight int
}

func (r NewDeviceRule) Name() string { return SignalNewDevice }

func (r NewDeviceRule) Evaluate(record model.TransactionRecord) int {
	if record.IsNewDevice() {
		return r.Weight
	}
	return 0
}

// RuleSet evaluates independent additive rules.
type RuleSet []Rule

// Evaluate returns the summed contribution of every rule and the names of
// the rules that fired, in rule order.
func (rs RuleSet) Evaluate(record model.TransactionRecord) (int, []string) {
	score := 0
	signals := make([]string, 0, len(rs))
	for _, rule := range rs {
		if points := rule.Evaluate(record); points > 0 {
			score += points
			signals = append(signals, rule.Name())
		}
	}
	return score, signals
}
