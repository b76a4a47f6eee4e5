// Package memory holds an in-process transaction source used for local runs
// and as the default batch fixture.
package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bibbank/fraudshield/internal/domain/model"
)

// TransactionSource serves a fixed slice of records.
type TransactionSource struct {
	records []model.TransactionRecord
}

// NewTransactionSource creates a source over a copy of records.
func NewTransactionSource(records []model.TransactionRecord) *TransactionSource {
	cp := make([]model.TransactionRecord, len(records))
	copy(cp, records)
	return &TransactionSource{records: cp}
}

// Transactions returns the records in insertion order.
func (s *TransactionSource) Transactions(ctx context.Context) ([]model.TransactionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.TransactionRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Name identifies the source.
func (s *TransactionSource) Name() string { return "memory" }

// SampleTransactions returns the three reference transactions served by
// GET /auto-check out of the box.
func SampleTransactions() []model.TransactionRecord {
	return []model.TransactionRecord{
		mustRecord("ACC1001", 500, "India", 1, false),
		mustRecord("ACC1002", 45000, "India", 4, false),
		mustRecord("ACC1003", 90000, "Nigeria", 8, true),
	}
}

func mustRecord(accountID string, amount int64, country string, count int, newDevice bool) model.TransactionRecord {
	r, err := model.NewTransactionRecord(accountID, decimal.NewFromInt(amount), country, count, newDevice)
	if err != nil {
		panic(err)
	}
	return r
}
