// Package telemetry installs an in-process OpenTelemetry meter provider and
// reports the arena counters through zerolog.
package telemetry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Telemetry owns the meter provider and its manual reader
type Telemetry struct {
	reader   *sdkmetric.ManualReader
	provider *sdkmetric.MeterProvider
	logger   zerolog.Logger
}

// Setup creates a provider and installs it as the global meter provider.
// Instruments created before Setup are forwarded to it by the otel API.
func Setup(logger zerolog.Logger) *Telemetry {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)
	return &Telemetry{
		reader:   reader,
		provider: provider,
		logger:   logger.With().Str("component", "telemetry").Logger(),
	}
}

// Snapshot returns every int64 sum keyed by instrument name. Data points with
// attributes are keyed as name{k=v,...}.
func (t *Telemetry) Snapshot(ctx context.Context) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := t.reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("collecting metrics: %w", err)
	}

	out := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				out[seriesKey(m.Name, dp)] += dp.Value
			}
		}
	}
	return out, nil
}

func seriesKey(name string, dp metricdata.DataPoint[int64]) string {
	if dp.Attributes.Len() == 0 {
		return name
	}
	parts := make([]string, 0, dp.Attributes.Len())
	for _, kv := range dp.Attributes.ToSlice() {
		parts = append(parts, string(kv.Key)+"="+kv.Value.Emit())
	}
	sort.Strings(parts)
	return name + "{" + strings.Join(parts, ",") + "}"
}

// Report logs the current snapshot at info level
func (t *Telemetry) Report(ctx context.Context) {
	snap, err := t.Snapshot(ctx)
	if err != nil {
		t.logger.Warn().Err(err).Msg("metrics unavailable")
		return
	}
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)

	ev := t.logger.Info()
	for _, name := range names {
		ev = ev.Int64(name, snap[name])
	}
	ev.Msg("metrics")
}

// Run reports every interval until ctx is done
func (t *Telemetry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Report(ctx)
		}
	}
}

// Shutdown flushes and stops the provider
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if err := t.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down meter provider: %w", err)
	}
	return nil
}
