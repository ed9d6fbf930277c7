package telemetry

import "testing"

func TestPerfCollectorWindow(t *testing.T) {
	p := NewPerfCollector(4)

	for i := 0; i < 6; i++ {
		p.StartFrame()
		p.StartPhase(PhaseAdvance)
		p.StartPhase(PhaseDraw)
		p.EndFrame()
	}

	// Rolling window: only the last 4 samples are retained.
	if p.SampleCount() != 4 {
		t.Errorf("sample count = %d, want window size 4", p.SampleCount())
	}
	if got := len(p.FrameDurations()); got != 4 {
		t.Errorf("frame durations = %d entries, want 4", got)
	}
	for _, d := range p.FrameDurations() {
		if d < 0 {
			t.Errorf("negative frame duration %v", d)
		}
	}
	if p.PhaseAvg(PhaseDraw) < 0 {
		t.Error("negative phase average")
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	p := NewPerfCollector(8)
	if p.SampleCount() != 0 {
		t.Error("fresh collector should hold no samples")
	}
	if p.PhaseAvg(PhaseDraw) != 0 {
		t.Error("phase average of an empty window should be 0")
	}
	if len(p.FrameDurations()) != 0 {
		t.Error("empty window should yield no durations")
	}
}
