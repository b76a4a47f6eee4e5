package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/fraudshield/internal/domain/model"
)

func TestNewTransactionRecord_Valid(t *testing.T) {
	r, err := model.NewTransactionRecord("ACC1003", decimal.NewFromInt(90000), " Nigeria ", 8, true)
	require.NoError(t, err)

	assert.Equal(t, "ACC1003", r.AccountID())
	assert.True(t, decimal.NewFromInt(90000).Equal(r.Amount()))
	assert.Equal(t, " Nigeria ", r.Country())
	assert.Equal(t, 8, r.TransactionsLast24h())
	assert.True(t, r.IsNewDevice())
}

func TestNewTransactionRecord_ZeroValuesAllowed(t *testing.T) {
	r, err := model.NewTransactionRecord("", decimal.Zero, "", 0, false)
	require.NoError(t, err)
	assert.True(t, r.Amount().IsZero())
}

func TestNewTransactionRecord_Validation(t *testing.T) {
	tests := []struct {
		name    string
		amount  decimal.Decimal
		wantErr string
		count   int
	}{
		{
			name:    "negative amount",
			amount:  decimal.NewFromFloat(-0.01),
			count:   1,
			wantErr: "amount must be non-negative",
		},
		{
			name:    "negative velocity",
			amount:  decimal.NewFromInt(10),
			count:   -1,
			wantErr: "transactions_last_24h must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewTransactionRecord("ACC1", tt.amount, "India", tt.count, false)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrInvalidTransaction)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
