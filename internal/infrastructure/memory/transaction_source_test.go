package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/fraudshield/internal/infrastructure/memory"
)

func TestSampleTransactions(t *testing.T) {
	records := memory.SampleTransactions()
	require.Len(t, records, 3)

	assert.Equal(t, "ACC1001", records[0].AccountID())
	assert.Equal(t, "ACC1002", records[1].AccountID())
	assert.Equal(t, "ACC1003", records[2].AccountID())
	assert.Equal(t, "Nigeria", records[2].Country())
	assert.Equal(t, 8, records[2].TransactionsLast24h())
	assert.True(t, records[2].IsNewDevice())
}

func TestTransactionSource_ReturnsCopies(t *testing.T) {
	src := memory.NewTransactionSource(memory.SampleTransactions())
	assert.Equal(t, "memory", src.Name())

	first, err := src.Transactions(context.Background())
	require.NoError(t, err)
	first[0] = first[2]

	second, err := src.Transactions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ACC1001", second[0].AccountID())
}

func TestTransactionSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := memory.NewTransactionSource(nil).Transactions(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
