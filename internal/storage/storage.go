// Package storage holds helpers shared by the storage backends.
package storage

import (
	"context"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
)

// TxMetrics counts transaction outcomes of a connection manager.
type TxMetrics struct {
	commits   metric.Int64Counter
	rollbacks metric.Int64Counter
	attrs     metric.MeasurementOption
}

// NewTxMetrics registers the transaction counters of backend on mp.
func NewTxMetrics(mp metric.MeterProvider, backend string) (*TxMetrics, error) {
	meter := mp.Meter("github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/storage")
	commits, err := meter.Int64Counter("orders.storage.tx.commits",
		metric.WithDescription("Committed transactions"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create commits counter")
	}
	rollbacks, err := meter.Int64Counter("orders.storage.tx.rollbacks",
		metric.WithDescription("Rolled back transactions"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create rollbacks counter")
	}
	return &TxMetrics{
		commits:   commits,
		rollbacks: rollbacks,
		attrs:     metric.WithAttributes(attribute.String("backend", backend)),
	}, nil
}

func (m *TxMetrics) Commit(ctx context.Context)   { m.commits.Add(ctx, 1, m.attrs) }
func (m *TxMetrics) Rollback(ctx context.Context) { m.rollbacks.Add(ctx, 1, m.attrs) }

// EndSpan records err on span unless it is a not-found result, then ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, faults.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
