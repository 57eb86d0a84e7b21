package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel/metric"
)

// Gauge is a reading taken every time the meter provider collects. Exactly
// one of Int and Float is set.
type Gauge struct {
	Name        string
	Description string
	Unit        string
	Int         func() int64
	Float       func() float64
}

// ObserveGauges registers gauges on meter. They are read on every collection
// until the returned registration is unregistered.
func ObserveGauges(meter metric.Meter, gauges ...Gauge) (metric.Registration, error) {
	ints := map[int]metric.Int64ObservableGauge{}
	floats := map[int]metric.Float64ObservableGauge{}
	var observables []metric.Observable

	for i, g := range gauges {
		var err error
		switch {
		case g.Int != nil:
			ints[i], err = meter.Int64ObservableGauge(
				g.Name,
				metric.WithDescription(g.Description),
				metric.WithUnit(g.Unit),
			)
			observables = append(observables, ints[i])
		case g.Float != nil:
			floats[i], err = meter.Float64ObservableGauge(
				g.Name,
				metric.WithDescription(g.Description),
				metric.WithUnit(g.Unit),
			)
			observables = append(observables, floats[i])
		default:
			err = errors.New("gauge has no reader")
		}
		if err != nil {
			return nil, fmt.Errorf("gauge %s: %w", g.Name, err)
		}
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		for i, g := range gauges {
			if inst, ok := ints[i]; ok {
				o.ObserveInt64(inst, g.Int())
				continue
			}
			o.ObserveFloat64(floats[i], g.Float())
		}
		return nil
	}, observables...)
}

func readMemStats() runtime.MemStats {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return stats
}

// InstrumentPerfStats reports the memory, goroutine and cpu usage of this
// process on every metric collection of provider.
func InstrumentPerfStats(provider metric.MeterProvider) (metric.Registration, error) {
	return ObserveGauges(
		provider.Meter("tabroomapi/lib/telemetry"),
		Gauge{
			Name: "process.memory.allocated",
			Unit: "MB",
			Int: func() int64 {
				return int64(readMemStats().Alloc / 1_000_000)
			},
		},
		Gauge{
			Name:        "process.objects.live",
			Description: "heap objects allocated and not yet freed",
			Int: func() int64 {
				stats := readMemStats()
				return int64(stats.Mallocs) - int64(stats.Frees)
			},
		},
		Gauge{
			Name: "process.goroutines",
			Int: func() int64 {
				return int64(runtime.NumGoroutine())
			},
		},
		Gauge{
			Name:        "process.cpu.usage",
			Description: "system cpu usage since the previous collection",
			Unit:        "%",
			Float: func() float64 {
				usage, err := cpu.Percent(0, false)
				if err != nil || len(usage) == 0 {
					slog.Debug("failed to read cpu usage", "err", err)
					return 0
				}
				return usage[0]
			},
		},
	)
}
