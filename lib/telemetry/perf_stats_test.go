package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestObserveGauges(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	count := int64(0)
	reads := 0
	reg, err := ObserveGauges(
		provider.Meter("test"),
		Gauge{Name: "count", Int: func() int64 {
			reads++
			return count
		}},
		Gauge{Name: "ratio", Float: func() float64 { return 0.5 }},
	)
	require.Nil(t, err)

	count = 3
	gauges, err := CollectGauges(context.Background(), reader)
	require.Nil(t, err)
	require.Equal(t, map[string]float64{"count": 3, "ratio": 0.5}, gauges)
	require.Equal(t, 1, reads)

	require.Nil(t, reg.Unregister())
	_, err = CollectGauges(context.Background(), reader)
	require.Nil(t, err)
	require.Equal(t, 1, reads)
}

func TestObserveGaugesWithoutReader(t *testing.T) {
	provider := sdkmetric.NewMeterProvider()
	_, err := ObserveGauges(provider.Meter("test"), Gauge{Name: "empty"})
	require.NotNil(t, err)
}

func TestInstrumentPerfStats(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	reg, err := InstrumentPerfStats(provider)
	require.Nil(t, err)
	defer reg.Unregister()

	gauges, err := CollectGauges(context.Background(), reader)
	require.Nil(t, err)
	require.Greater(t, gauges["process.goroutines"], 0.0)
	require.Greater(t, gauges["process.objects.live"], 0.0)
	require.Contains(t, gauges, "process.cpu.usage")
}
