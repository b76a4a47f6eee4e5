package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionRecord is the immutable input to a scoring call.
type TransactionRecord struct {
	amount              decimal.Decimal
	accountID           string
	country             string
	transactionsLast24h int
	isNewDevice         bool
}

// NewTransactionRecord validates and constructs a TransactionRecord.
// Amount and velocity must be non-negative; country is kept as supplied.
func NewTransactionRecord(
	accountID string,
	amount decimal.Decimal,
	country string,
	transactionsLast24h int,
	isNewDevice bool,
) (TransactionRecord, error) {
	if amount.IsNegative() {
		return TransactionRecord{}, fmt.Errorf("%w: amount must be non-negative, got %s", ErrInvalidTransaction, amount)
	}
	if transactionsLast24h < 0 {
		return TransactionRecord{}, fmt.Errorf("%w: transactions_last_24h must be non-negative, got %d",
			ErrInvalidTransaction, transactionsLast24h)
	}

	return TransactionRecord{
		accountID:           accountID,
		amount:              amount,
		country:             country,
		transactionsLast24h: transactionsLast24h,
		isNewDevice:         isNewDevice,
	}, nil
}

// --- Accessors ---

func (r TransactionRecord) AccountID() string        { return r.accountID }
func (r TransactionRecord) Amount() decimal.Decimal  { return r.amount }
func (r TransactionRecord) Country() string          { return r.country }
func (r TransactionRecord) TransactionsLast24h() int { return r.transactionsLast24h }
func (r TransactionRecord) IsNewDevice() bool        { return r.isNewDevice }
