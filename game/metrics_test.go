package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				sums[m.Name] += dp.Value
			}
		}
	}
	return sums
}

func TestMetricsCountEvents(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	prev := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	t.Cleanup(func() {
		otel.SetMeterProvider(prev)
		_ = provider.Shutdown(context.Background())
	})

	m, err := NewMetrics()
	require.NoError(t, err)

	m.targetSpawned()
	m.targetSpawned()
	m.shotFired()
	m.damageApplied()
	m.modeChanged(ModeMenu, ModePlaying)

	sums := collectSums(t, reader)
	assert.Equal(t, int64(2), sums["arena.targets.spawned"])
	assert.Equal(t, int64(1), sums["arena.projectiles.fired"])
	assert.Equal(t, int64(1), sums["arena.player.damage"])
	assert.Equal(t, int64(1), sums["arena.mode.transitions"])
	assert.Zero(t, sums["arena.player.deaths"])
}

func TestMetricsNilAndEmptyAreNoOps(t *testing.T) {
	var nilMetrics *Metrics
	assert.NotPanics(t, func() {
		nilMetrics.targetSpawned()
		nilMetrics.modeChanged(ModeMenu, ModePlaying)
	})

	empty := &Metrics{}
	assert.NotPanics(t, func() {
		empty.targetKilled()
		empty.playerDied()
		empty.modeChanged(ModePlaying, ModePaused)
	})
}
