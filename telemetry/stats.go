package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats summarizes frame timing over one stats window.
type WindowStats struct {
	Window    int     `csv:"window"`
	Frames    int     `csv:"frames"`
	Instances int     `csv:"instances"`
	MeanMs    float64 `csv:"mean_ms"`
	P50Ms     float64 `csv:"p50_ms"`
	P90Ms     float64 `csv:"p90_ms"`
	P99Ms     float64 `csv:"p99_ms"`
	FPS       float64 `csv:"fps"`
}

// ComputeWindowStats aggregates frame durations (seconds) into a stats
// record. Returns a zeroed record for an empty window.
func ComputeWindowStats(window, instances int, durations []float64) WindowStats {
	ws := WindowStats{Window: window, Frames: len(durations), Instances: instances}
	if len(durations) == 0 {
		return ws
	}

	sorted := make([]float64, len(durations))
	copy(sorted, durations)
	sort.Float64s(sorted)

	ws.MeanMs = stat.Mean(sorted, nil) * 1000
	ws.P50Ms = stat.Quantile(0.5, stat.Empirical, sorted, nil) * 1000
	ws.P90Ms = stat.Quantile(0.9, stat.Empirical, sorted, nil) * 1000
	ws.P99Ms = stat.Quantile(0.99, stat.Empirical, sorted, nil) * 1000
	if ws.MeanMs > 0 {
		ws.FPS = 1000 / ws.MeanMs
	}
	return ws
}
