package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/fraudshield/internal/domain/port"
	"github.com/bibbank/fraudshield/internal/domain/service"
	"github.com/bibbank/fraudshield/internal/domain/valueobject"
)

func newScorer(t *testing.T, classifier port.Classifier) *service.RiskScorer {
	t.Helper()
	s, err := service.NewRiskScorer(classifier, service.DefaultPolicy())
	require.NoError(t, err)
	return s
}

func TestRiskScorer_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		accountID      string
		country        string
		wantLevel      valueobject.RiskLevel
		wantPrediction valueobject.MLPrediction
		wantSignals    []string
		amount         int64
		count          int
		label          valueobject.Label
		wantML         int
		wantRule       int
		wantScore      int
		newDevice      bool
	}{
		{
			name: "small domestic payment", accountID: "ACC1001",
			amount: 500, country: "India", count: 1, label: valueobject.LabelNormal,
			wantML: 20, wantRule: 0, wantScore: 20,
			wantLevel: valueobject.RiskLevelLow, wantPrediction: valueobject.MLPredictionNormal,
			wantSignals: []string{},
		},
		{
			name: "large but under threshold", accountID: "ACC1002",
			amount: 45000, country: "India", count: 4, label: valueobject.LabelNormal,
			wantML: 20, wantRule: 0, wantScore: 20,
			wantLevel: valueobject.RiskLevelLow, wantPrediction: valueobject.MLPredictionNormal,
			wantSignals: []string{},
		},
		{
			name: "every rule fires and score is capped", accountID: "ACC1003",
			amount: 90000, country: "Nigeria", count: 8, newDevice: true, label: valueobject.LabelFraud,
			wantML: 70, wantRule: 90, wantScore: 100,
			wantLevel: valueobject.RiskLevelHigh, wantPrediction: valueobject.MLPredictionFraud,
			wantSignals: []string{"high_amount", "watchlist_country", "high_velocity", "new_device"},
		},
		{
			name: "fraud label with high amount", accountID: "ACC2001",
			amount: 60000, country: "Germany", count: 2, label: valueobject.LabelFraud,
			wantML: 70, wantRule: 30, wantScore: 100,
			wantLevel: valueobject.RiskLevelHigh, wantPrediction: valueobject.MLPredictionFraud,
			wantSignals: []string{"high_amount"},
		},
		{
			name: "rules alone reach medium", accountID: "ACC2002",
			amount: 100, country: " pakistan ", count: 0, label: valueobject.LabelNormal,
			wantML: 20, wantRule: 25, wantScore: 45,
			wantLevel: valueobject.RiskLevelMedium, wantPrediction: valueobject.MLPredictionNormal,
			wantSignals: []string{"watchlist_country"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := newScorer(t, &stubClassifier{label: tt.label})

			a, err := scorer.Score(context.Background(),
				newRecord(t, tt.accountID, tt.amount, tt.country, tt.count, tt.newDevice))
			require.NoError(t, err)

			assert.Equal(t, tt.accountID, a.AccountID())
			assert.Equal(t, tt.wantML, a.MLScore())
			assert.Equal(t, tt.wantRule, a.RuleScore())
			assert.Equal(t, tt.wantScore, a.RiskScore())
			assert.True(t, tt.wantLevel.Equal(a.RiskLevel()), "level %s", a.RiskLevel())
			assert.True(t, tt.wantPrediction.Equal(a.MLPrediction()))
			assert.Equal(t, tt.wantSignals, a.Signals())
		})
	}
}

func TestRiskScorer_ScoreBounds(t *testing.T) {
	amounts := []int64{0, 500, 50000, 50001, 1_000_000}
	countries := []string{"India", "NIGERIA", "pakistan ", ""}
	counts := []int{0, 5, 6, 100}

	for _, label := range []valueobject.Label{valueobject.LabelNormal, valueobject.LabelFraud} {
		scorer := newScorer(t, &stubClassifier{label: label})
		for _, amount := range amounts {
			for _, country := range countries {
				for _, count := range counts {
					for _, device := range []bool{false, true} {
						a, err := scorer.Score(context.Background(), newRecord(t, "ACC", amount, country, count, device))
						require.NoError(t, err)
						assert.GreaterOrEqual(t, a.RiskScore(), 0)
						assert.LessOrEqual(t, a.RiskScore(), 100)
						assert.True(t, valueobject.RiskLevelFromScore(a.RiskScore()).Equal(a.RiskLevel()))
					}
				}
			}
		}
	}
}

func TestRiskScorer_Idempotent(t *testing.T) {
	scorer := newScorer(t, featureClassifier{})
	record := newRecord(t, "ACC1003", 90000, "Nigeria", 8, true)

	first, err := scorer.Score(context.Background(), record)
	require.NoError(t, err)
	second, err := scorer.Score(context.Background(), record)
	require.NoError(t, err)

	assert.Equal(t, first.RiskScore(), second.RiskScore())
	assert.Equal(t, first.RiskLevel(), second.RiskLevel())
	assert.Equal(t, first.MLPrediction(), second.MLPrediction())
	assert.Equal(t, first.Signals(), second.Signals())
}

func TestNewRiskScorer_NilClassifier(t *testing.T) {
	_, err := service.NewRiskScorer(nil, service.DefaultPolicy())
	require.Error(t, err)
	assert.ErrorIs(t, err, port.ErrClassifierUnavailable)
}

func TestNewRiskScorer_InvalidPolicy(t *testing.T) {
	p := service.DefaultPolicy()
	p.VelocityWeight = -10

	_, err := service.NewRiskScorer(&stubClassifier{}, p)
	require.Error(t, err)
}

func TestRiskScorer_ClassifierError(t *testing.T) {
	scorer := newScorer(t, &stubClassifier{err: errors.New("boom")})

	_, err := scorer.Score(context.Background(), newRecord(t, "ACC", 1, "India", 0, false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "classifier predict")
}

func TestRiskScorer_InvalidLabel(t *testing.T) {
	scorer := newScorer(t, &stubClassifier{label: valueobject.Label(7)})

	_, err := scorer.Score(context.Background(), newRecord(t, "ACC", 1, "India", 0, false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid classifier label")
}

func TestRiskScorer_ProbabilityMode(t *testing.T) {
	p := service.DefaultPolicy()
	p.MLScoring = service.MLScoringProbability

	t.Run("requires probability classifier", func(t *testing.T) {
		_, err := service.NewRiskScorer(&stubClassifier{}, p)
		require.Error(t, err)
		assert.ErrorIs(t, err, port.ErrClassifierUnavailable)
	})

	t.Run("uses rounded probability", func(t *testing.T) {
		classifier := &stubProbaClassifier{proba: 0.426}
		classifier.label = valueobject.LabelNormal

		scorer, err := service.NewRiskScorer(classifier, p)
		require.NoError(t, err)

		a, err := scorer.Score(context.Background(), newRecord(t, "ACC", 60000, "India", 0, false))
		require.NoError(t, err)
		assert.Equal(t, 43, a.MLScore())
		assert.Equal(t, 73, a.RiskScore())
		assert.True(t, a.RiskLevel().Equal(valueobject.RiskLevelHigh))
		assert.True(t, a.MLPrediction().Equal(valueobject.MLPredictionNormal))
	})

	t.Run("rejects out of range probability", func(t *testing.T) {
		classifier := &stubProbaClassifier{proba: 1.5}
		scorer, err := service.NewRiskScorer(classifier, p)
		require.NoError(t, err)

		_, err = scorer.Score(context.Background(), newRecord(t, "ACC", 1, "India", 0, false))
		require.Error(t, err)
	})
}

func TestFuse(t *testing.T) {
	assert.Equal(t, 20, service.Fuse(20, 0))
	assert.Equal(t, 100, service.Fuse(70, 30))
	assert.Equal(t, 100, service.Fuse(70, 90))
	assert.Equal(t, 0, service.Fuse(0, 0))
}
