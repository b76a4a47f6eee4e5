package service

import (
	"github.com/bibbank/fraudshield/internal/domain/model"
	"github.com/bibbank/fraudshield/internal/domain/valueobject"
)

// ExtractFeatures maps a record to the classifier's input layout
// [amount, transactions_last_24h, is_new_device]. Values pass through
// unchanged; the device flag is encoded as 1 or 0.
func ExtractFeatures(record model.TransactionRecord) valueobject.FeatureVector {
	var v valueobject.FeatureVector
	v[valueobject.FeatureAmount] = record.Amount().InexactFloat64()
	v[valueobject.FeatureTransactionsLast24h] = float64(record.TransactionsLast24h())
	if record.IsNewDevice() {
		v[valueobject.FeatureIsNewDevice] = 1
	}
	return v
}
