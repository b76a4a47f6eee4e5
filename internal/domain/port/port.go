package port

import (
	"context"
	"errors"
	"time"

	"github.com/bibbank/fraudshield/internal/domain/model"
	"github.com/bibbank/fraudshield/internal/domain/valueobject"
	"github.com/bibbank/fraudshield/pkg/events"
)

// ErrClassifierUnavailable is returned when no usable classifier could be
// loaded. It is fatal at startup and never produced per scoring call.
var ErrClassifierUnavailable = errors.New("classifier unavailable")

// ErrSourceUnavailable is returned when the transaction source cannot
// supply records for a batch.
var ErrSourceUnavailable = errors.New("transaction source unavailable")

// Classifier is a trained binary predictor over a FeatureVector. Implementations
// are loaded once and must be safe for concurrent use.
type Classifier interface {
	Predict(ctx context.Context, features valueobject.FeatureVector) (valueobject.Label, error)
}

// ProbabilityClassifier is a Classifier that also exposes its confidence that
// the transaction is fraudulent, in [0, 1].
type ProbabilityClassifier interface {
	Classifier
	PredictProba(ctx context.Context, features valueobject.FeatureVector) (float64, error)
}

// TransactionSource supplies the records scored in batch mode.
type TransactionSource interface {
	// Transactions returns every record in source order.
	Transactions(ctx context.Context) ([]model.TransactionRecord, error)

	// Name identifies the source in logs and readiness output.
	Name() string
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, events ...events.DomainEvent) error
}

// AssessmentRecorder records scoring telemetry.
type AssessmentRecorder interface {
	// RecordAssessment counts one assessment by level and prediction.
	RecordAssessment(ctx context.Context, assessment *model.RiskAssessment)

	// RecordLatency records how long a scoring operation took.
	RecordLatency(ctx context.Context, operation string, elapsed time.Duration)
}
