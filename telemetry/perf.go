// Package telemetry collects frame timing for the vegetation field and
// writes windowed summaries to CSV.
package telemetry

import (
	"time"
)

// Phase names for one rendered frame.
const (
	PhaseAdvance = "advance"
	PhaseLOD     = "lod"
	PhaseDraw    = "draw"
	PhaseOverlay = "overlay"
)

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to aggregate over (e.g. 120 for 2 seconds at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 120
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, closing the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// SampleCount returns the number of frames recorded in the window.
func (p *PerfCollector) SampleCount() int {
	return p.sampleCount
}

// FrameDurations returns the recorded frame durations in seconds,
// oldest first.
func (p *PerfCollector) FrameDurations() []float64 {
	out := make([]float64, 0, p.sampleCount)
	start := p.writeIndex - p.sampleCount
	for i := 0; i < p.sampleCount; i++ {
		idx := (start + i + p.windowSize) % p.windowSize
		out = append(out, p.samples[idx].FrameDuration.Seconds())
	}
	return out
}

// PhaseAvg returns the average duration of the named phase over the window.
func (p *PerfCollector) PhaseAvg(phase string) time.Duration {
	if p.sampleCount == 0 {
		return 0
	}
	var total time.Duration
	start := p.writeIndex - p.sampleCount
	for i := 0; i < p.sampleCount; i++ {
		idx := (start + i + p.windowSize) % p.windowSize
		total += p.samples[idx].Phases[phase]
	}
	return total / time.Duration(p.sampleCount)
}
