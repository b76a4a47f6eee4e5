package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/fraudshield/internal/application/dto"
	"github.com/bibbank/fraudshield/internal/application/usecase"
	"github.com/bibbank/fraudshield/internal/domain/model"
	"github.com/bibbank/fraudshield/internal/domain/port"
	"github.com/bibbank/fraudshield/internal/domain/service"
)

func sampleRecords(t *testing.T) []model.TransactionRecord {
	t.Helper()
	mk := func(id string, amount int64, country string, count int, device bool) model.TransactionRecord {
		r, err := model.NewTransactionRecord(id, decimal.NewFromInt(amount), country, count, device)
		require.NoError(t, err)
		return r
	}
	return []model.TransactionRecord{
		mk("ACC1001", 500, "India", 1, false),
		mk("ACC1002", 45000, "India", 4, false),
		mk("ACC1003", 90000, "Nigeria", 8, true),
	}
}

func newBatchUseCase(t *testing.T, source port.TransactionSource, recorder *mockRecorder) *usecase.ScoreBatch {
	t.Helper()
	logger, _ := newTestLogger()
	return usecase.NewScoreBatch(source, service.NewBatchScorer(newRiskScorer(t), 2), recorder, logger)
}

func TestScoreBatch_FromSource(t *testing.T) {
	recorder := &mockRecorder{}
	uc := newBatchUseCase(t, &mockSource{records: sampleRecords(t)}, recorder)

	results, err := uc.FromSource(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "ACC1001", results[0].AccountID)
	assert.Equal(t, 20, results[0].RiskScore)
	assert.Equal(t, "LOW", results[0].RiskLevel)

	assert.Equal(t, "ACC1002", results[1].AccountID)
	assert.Equal(t, 20, results[1].RiskScore)

	assert.Equal(t, "ACC1003", results[2].AccountID)
	assert.Equal(t, 100, results[2].RiskScore)
	assert.Equal(t, "HIGH", results[2].RiskLevel)
	assert.Equal(t, "FRAUD", results[2].MLPrediction)

	assert.Equal(t, []string{"score_batch"}, recorder.operations)
	assert.Len(t, recorder.levels, 3)
}

func TestScoreBatch_FromSourceError(t *testing.T) {
	uc := newBatchUseCase(t, &mockSource{err: errors.New("connection refused")}, &mockRecorder{})

	_, err := uc.FromSource(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, port.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestScoreBatch_EmptySource(t *testing.T) {
	uc := newBatchUseCase(t, &mockSource{}, &mockRecorder{})

	results, err := uc.FromSource(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestScoreBatch_Execute(t *testing.T) {
	uc := newBatchUseCase(t, &mockSource{}, &mockRecorder{})

	reqs := []dto.ScoreTransactionRequest{
		dto.NewScoreTransactionRequest("A", decimal.NewFromInt(60000), "Germany", 2, false),
		dto.NewScoreTransactionRequest("B", decimal.NewFromInt(10), " PAKISTAN ", 9, false),
	}

	results, err := uc.Execute(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].AccountID)
	assert.Equal(t, 50, results[0].RiskScore)
	assert.Equal(t, "B", results[1].AccountID)
	assert.Equal(t, 65, results[1].RiskScore)
	assert.Equal(t, []string{"watchlist_country", "high_velocity"}, results[1].Signals)
}

func TestScoreBatch_ExecuteRejectsInvalidRecord(t *testing.T) {
	recorder := &mockRecorder{}
	uc := newBatchUseCase(t, &mockSource{}, recorder)

	bad := dto.NewScoreTransactionRequest("B", decimal.NewFromInt(10), "India", 1, false)
	bad.Country = nil

	_, err := uc.Execute(context.Background(), []dto.ScoreTransactionRequest{
		dto.NewScoreTransactionRequest("A", decimal.NewFromInt(10), "India", 1, false),
		bad,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidTransaction)
	assert.Contains(t, err.Error(), "transactions[1]")
	assert.Empty(t, recorder.levels)
}
