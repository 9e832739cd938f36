package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Tracer returns the tracer used for console command spans.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// CommandInstruments records console command counts and latency.
type CommandInstruments struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
}

// NewCommandInstruments creates the console command instruments on the
// global meter provider.
func NewCommandInstruments() (*CommandInstruments, error) {
	meter := otel.Meter(instrumentationName)

	duration, err := meter.Float64Histogram(
		"library.console.command.duration",
		metric.WithDescription("Console command handling time in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	total, err := meter.Int64Counter(
		"library.console.command.total",
		metric.WithDescription("Console commands handled, by command and outcome"),
	)
	if err != nil {
		return nil, err
	}

	return &CommandInstruments{duration: duration, total: total}, nil
}

// Record records one handled command. A nil receiver records nothing.
func (m *CommandInstruments) Record(ctx context.Context, command, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("command", command),
		attribute.String("outcome", outcome),
	)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
	m.total.Add(ctx, 1, attrs)
}
