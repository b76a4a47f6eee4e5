package service_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/fraudshield/internal/domain/model"
	"github.com/bibbank/fraudshield/internal/domain/valueobject"
)

type stubClassifier struct {
	err   error
	calls atomic.Int64
	label valueobject.Label
}

func (s *stubClassifier) Predict(_ context.Context, _ valueobject.FeatureVector) (valueobject.Label, error) {
	s.calls.Add(1)
	return s.label, s.err
}

type stubProbaClassifier struct {
	stubClassifier
	probaErr error
	proba    float64
}

func (s *stubProbaClassifier) PredictProba(_ context.Context, _ valueobject.FeatureVector) (float64, error) {
	return s.proba, s.probaErr
}

// featureClassifier flags fraud when the device is new, standing in for a
// model whose verdict depends on the features it receives.
type featureClassifier struct{}

func (featureClassifier) Predict(_ context.Context, v valueobject.FeatureVector) (valueobject.Label, error) {
	if v.IsNewDevice() == 1 {
		return valueobject.LabelFraud, nil
	}
	return valueobject.LabelNormal, nil
}

func newRecord(t *testing.T, accountID string, amount int64, country string, count int, newDevice bool) model.TransactionRecord {
	t.Helper()
	r, err := model.NewTransactionRecord(accountID, decimal.NewFromInt(amount), country, count, newDevice)
	require.NoError(t, err)
	return r
}
