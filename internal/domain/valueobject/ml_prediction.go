package valueobject

import "fmt"

// Label is the raw binary output of a classifier.
type Label int

const (
	LabelNormal Label = 0
	LabelFraud  Label = 1
)

// Valid reports whether l is one of the two known labels.
func (l Label) Valid() bool {
	return l == LabelNormal || l == LabelFraud
}

// MLPrediction is the classifier verdict exposed on an assessment.
type MLPrediction struct {
	value string
}

var (
	MLPredictionFraud  = MLPrediction{value: "FRAUD"}
	MLPredictionNormal = MLPrediction{value: "NORMAL"}
)

// PredictionFromLabel maps a classifier label to its prediction.
func PredictionFromLabel(l Label) (MLPrediction, error) {
	switch l {
	case LabelFraud:
		return MLPredictionFraud, nil
	case LabelNormal:
		return MLPredictionNormal, nil
	default:
		return MLPrediction{}, fmt.Errorf("invalid classifier label: %d", l)
	}
}

// MLPredictionFromString reconstructs an MLPrediction from its string representation.
func MLPredictionFromString(s string) (MLPrediction, error) {
	switch s {
	case "FRAUD":
		return MLPredictionFraud, nil
	case "NORMAL":
		return MLPredictionNormal, nil
	default:
		return MLPrediction{}, fmt.Errorf("invalid ml prediction: %q", s)
	}
}

func (p MLPrediction) String() string {
	return p.value
}

// IsFraud reports whether the classifier flagged the transaction.
func (p MLPrediction) IsFraud() bool {
	return p == MLPredictionFraud
}

func (p MLPrediction) IsZero() bool {
	return p.value == ""
}

func (p MLPrediction) Equal(other MLPrediction) bool {
	return p.value == other.value
}
