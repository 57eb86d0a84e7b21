package telemetry

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type Report struct {
	Kind   string
	Id     string
	Params []any
}

// TestAPI records every report it receives so tests can assert on them.
type TestAPI struct {
	mutex   sync.Mutex
	reports []Report
}

func (t *TestAPI) add(kind, id string, params []any) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.reports = append(t.reports, Report{Kind: kind, Id: id, Params: params})
}

func (t *TestAPI) ReportBroken(id string, params ...any) {
	t.add("broken", id, params)
}

func (t *TestAPI) ReportWarning(id string, params ...any) {
	t.add("warning", id, params)
}

func (t *TestAPI) ReportDebug(msg string, params ...any) {
	t.add("debug", msg, params)
}

func (t *TestAPI) ReportCount(id string, count int64) {
	t.add("count", id, []any{count})
}

func (t *TestAPI) Reports() []Report {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	out := make([]Report, len(t.reports))
	copy(out, t.reports)
	return out
}

// Find returns the reports of the given kind whose id contains `id`.
func (t *TestAPI) Find(kind, id string) []Report {
	var out []Report
	for _, r := range t.Reports() {
		if r.Kind == kind && strings.Contains(r.Id, id) {
			out = append(out, r)
		}
	}
	return out
}

func (r Report) String() string {
	return fmt.Sprintf("[%s] %s %v", r.Kind, r.Id, r.Params)
}

// CollectGauges reads the latest value of every gauge reader holds, keyed by
// gauge name.
func CollectGauges(ctx context.Context, reader *metric.ManualReader) (map[string]float64, error) {
	var rm metricdata.ResourceMetrics
	err := reader.Collect(ctx, &rm)
	if err != nil {
		return nil, err
	}

	gauges := map[string]float64{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Gauge[int64]:
				if len(data.DataPoints) > 0 {
					gauges[m.Name] = float64(data.DataPoints[0].Value)
				}
			case metricdata.Gauge[float64]:
				if len(data.DataPoints) > 0 {
					gauges[m.Name] = data.DataPoints[0].Value
				}
			}
		}
	}
	return gauges, nil
}
