package valueobject

// FeatureCount is the number of features a classifier receives.
const FeatureCount = 3

// Feature positions within a FeatureVector.
const (
	FeatureAmount = iota
	FeatureTransactionsLast24h
	FeatureIsNewDevice
)

// FeatureNames lists the feature layout in positional order. Classifier
// artifacts must declare exactly these names in this order.
var FeatureNames = [FeatureCount]string{
	FeatureAmount:              "amount",
	FeatureTransactionsLast24h: "transactions_last_24h",
	FeatureIsNewDevice:         "is_new_device",
}

// FeatureVector is the fixed-order numeric input to a classifier.
type FeatureVector [FeatureCount]float64

// Amount returns the amount feature.
func (v FeatureVector) Amount() float64 { return v[FeatureAmount] }

// TransactionsLast24h returns the velocity feature.
func (v FeatureVector) TransactionsLast24h() float64 { return v[FeatureTransactionsLast24h] }

// IsNewDevice returns the device feature, 1 for an unrecognised device and 0 otherwise.
func (v FeatureVector) IsNewDevice() float64 { return v[FeatureIsNewDevice] }
