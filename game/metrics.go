package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "grannyarena/game"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics counts gameplay events on the global OTel meter.
// Without an installed provider every counter is a no-op.
type Metrics struct {
	spawned     metric.Int64Counter
	killed      metric.Int64Counter
	damage      metric.Int64Counter
	deaths      metric.Int64Counter
	respawns    metric.Int64Counter
	shots       metric.Int64Counter
	transitions metric.Int64Counter
}

// NewMetrics creates the gameplay counters
func NewMetrics() (*Metrics, error) {
	m := meter()
	met := &Metrics{}

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&met.spawned, "arena.targets.spawned", "Hostile targets spawned"},
		{&met.killed, "arena.targets.killed", "Hostile targets destroyed by projectiles"},
		{&met.damage, "arena.player.damage", "Proximity damage events applied to the player"},
		{&met.deaths, "arena.player.deaths", "Player deaths"},
		{&met.respawns, "arena.player.respawns", "Player respawns"},
		{&met.shots, "arena.projectiles.fired", "Projectiles fired"},
		{&met.transitions, "arena.mode.transitions", "Game mode transitions"},
	}
	for _, c := range counters {
		counter, err := m.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("creating %s counter: %w", c.name, err)
		}
		*c.dst = counter
	}
	return met, nil
}

func inc(c metric.Int64Counter, opts ...metric.AddOption) {
	if c == nil {
		return
	}
	c.Add(context.Background(), 1, opts...)
}

func (m *Metrics) targetSpawned() {
	if m != nil {
		inc(m.spawned)
	}
}

func (m *Metrics) targetKilled() {
	if m != nil {
		inc(m.killed)
	}
}

func (m *Metrics) damageApplied() {
	if m != nil {
		inc(m.damage)
	}
}

func (m *Metrics) playerDied() {
	if m != nil {
		inc(m.deaths)
	}
}

func (m *Metrics) playerRespawned() {
	if m != nil {
		inc(m.respawns)
	}
}

func (m *Metrics) shotFired() {
	if m != nil {
		inc(m.shots)
	}
}

func (m *Metrics) modeChanged(from, to Mode) {
	if m != nil {
		inc(m.transitions, metric.WithAttributes(
			attribute.String("from", from.String()),
			attribute.String("to", to.String()),
		))
	}
}
