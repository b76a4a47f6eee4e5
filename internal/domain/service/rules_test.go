package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bibbank/fraudshield/internal/domain/service"
)

func TestRules_Individual(t *testing.T) {
	amount := service.AmountAboveRule{Threshold: decimal.NewFromInt(50000), Weight: 30}
	watchlist := service.NewCountryWatchlistRule([]string{"nigeria", "pakistan"}, 25)
	velocity := service.VelocityRule{Threshold: 5, Weight: 20}
	device := service.NewDeviceRule{Weight: 15}

	assert.Equal(t, 0, amount.Evaluate(newRecord(t, "A", 50000, "India", 0, false)), "threshold is exclusive")
	assert.Equal(t, 30, amount.Evaluate(newRecord(t, "A", 50001, "India", 0, false)))

	assert.Equal(t, 25, watchlist.Evaluate(newRecord(t, "A", 1, "Nigeria", 0, false)))
	assert.Equal(t, 25, watchlist.Evaluate(newRecord(t, "A", 1, "  PAKISTAN\t", 0, false)))
	assert.Equal(t, 0, watchlist.Evaluate(newRecord(t, "A", 1, "Niger", 0, false)))
	assert.Equal(t, 0, watchlist.Evaluate(newRecord(t, "A", 1, "", 0, false)))

	assert.Equal(t, 0, velocity.Evaluate(newRecord(t, "A", 1, "India", 5, false)), "threshold is exclusive")
	assert.Equal(t, 20, velocity.Evaluate(newRecord(t, "A", 1, "India", 6, false)))

	assert.Equal(t, 15, device.Evaluate(newRecord(t, "A", 1, "India", 0, true)))
	assert.Equal(t, 0, device.Evaluate(newRecord(t, "A", 1, "India", 0, false)))

	assert.Equal(t, service.SignalHighAmount, amount.Name())
	assert.Equal(t, service.SignalWatchlistCountry, watchlist.Name())
	assert.Equal(t, service.SignalHighVelocity, velocity.Name())
	assert.Equal(t, service.SignalNewDevice, device.Name())
}

func TestNormalizeCountry(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Nigeria", "nigeria"},
		{"  NIGERIA  ", "nigeria"},
		{"\tpakistan\n", "pakistan"},
		{"Côte d'Ivoire", "côte d'ivoire"},
		{"Cote\u0301", "cot\u00e9"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, service.NormalizeCountry(tt.in))
		})
	}
}

func TestRuleSet_Evaluate(t *testing.T) {
	rules := service.DefaultPolicy().Rules()

	score, signals := rules.Evaluate(newRecord(t, "ACC1003", 90000, "Nigeria", 8, true))
	assert.Equal(t, 90, score)
	assert.Equal(t, []string{"high_amount", "watchlist_country", "high_velocity", "new_device"}, signals)

	score, signals = rules.Evaluate(newRecord(t, "ACC1001", 500, "India", 1, false))
	assert.Equal(t, 0, score)
	assert.NotNil(t, signals)
	assert.Empty(t, signals)
}

func TestRuleSet_OrderIndependent(t *testing.T) {
	base := service.DefaultPolicy().Rules()
	record := newRecord(t, "ACC1003", 90000, " nigeria", 8, true)
	want, _ := base.Evaluate(record)

	var permute func(prefix, rest service.RuleSet)
	permute = func(prefix, rest service.RuleSet) {
		if len(rest) == 0 {
			got, signals := prefix.Evaluate(record)
			assert.Equal(t, want, got)
			assert.ElementsMatch(t, []string{"high_amount", "watchlist_country", "high_velocity", "new_device"}, signals)
			return
		}
		for i := range rest {
			next := append(append(service.RuleSet{}, prefix...), rest[i])
			remaining := append(append(service.RuleSet{}, rest[:i]...), rest[i+1:]...)
			permute(next, remaining)
		}
	}
	permute(nil, base)
}
