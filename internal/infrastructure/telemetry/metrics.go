package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Intake submission outcomes.
const (
	OutcomeAccepted  = "accepted"
	OutcomeRejected  = "rejected"
	OutcomeThrottled = "throttled"
	OutcomeFailed    = "failed"
)

type Metrics struct {
	IntakeSubmissionsTotal metric.Int64Counter
	ValidationErrorsTotal  metric.Int64Counter
}

// InitMetrics registers instruments on the global meter provider, which is
// a no-op until InitProvider installs an exporting one.
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("clinic-intake")

	submissions, err := meter.Int64Counter(
		"intake_submissions_total",
		metric.WithDescription("Intake form submissions by outcome"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, err
	}

	validationErrors, err := meter.Int64Counter(
		"intake_validation_errors_total",
		metric.WithDescription("Validation errors reported on rejected submissions"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		IntakeSubmissionsTotal: submissions,
		ValidationErrorsTotal:  validationErrors,
	}, nil
}

func (m *Metrics) RecordSubmission(ctx context.Context, outcome string) {
	m.IntakeSubmissionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *Metrics) RecordValidationErrors(ctx context.Context, count int) {
	m.ValidationErrorsTotal.Add(ctx, int64(count))
}
