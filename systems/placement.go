package systems

import (
	"math"
	"runtime"
	"sync"
)

// Hash streams consumed per instance during placement.
const (
	streamJitterX = iota
	streamJitterZ
	streamRotation
	streamHeight
)

// parallelThreshold is the minimum instance count to use parallel placement.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 4096

// Record describes one placed instance. The field plane is X/Z, centered on
// the origin. Records are written exactly once by the placement pass and
// never mutated afterward.
type Record struct {
	Index    int
	X, Z     float32 // field-plane position
	Rotation float32 // about the vertical axis, [0, 2*pi)
	Height   float32 // height scale, [HeightMin, HeightMax]
}

// PlacementParams configures the placement pass.
type PlacementParams struct {
	FieldSize float32 // side length of the square field
	HeightMin float32
	HeightMax float32
	Workers   int // 0 = GOMAXPROCS
}

// PlaceInstances runs the one-time placement pass: a parallel map from
// instance index to Record. Instance i lands in cell (i mod g, i / g) of a
// g*g grid over the field, g = ceil(sqrt(count)), jittered within half a
// cell by its index hash. Output depends only on (count, params); identical
// inputs yield bit-identical records regardless of worker count.
func PlaceInstances(count int, p PlacementParams) []Record {
	if count <= 0 {
		return []Record{}
	}

	records := make([]Record, count)

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if count < parallelThreshold || workers == 1 {
		placeChunk(records, 0, count, p)
		return records
	}

	chunkSize := (count + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, count)
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			placeChunk(records, start, end, p)
		}(start, end)
	}
	wg.Wait()

	return records
}

// placeChunk fills records[start:end]. Each index touches only its own slot,
// so chunks share no mutable state.
func placeChunk(records []Record, start, end int, p PlacementParams) {
	grid := GridDim(len(records))
	cell := p.FieldSize / float32(grid)
	half := p.FieldSize / 2

	for i := start; i < end; i++ {
		col := i % grid
		row := i / grid

		// Cell center, then jitter within +/- half a cell.
		x := -half + (float32(col)+0.5)*cell
		z := -half + (float32(row)+0.5)*cell
		x += (HashFloat01(uint32(i), streamJitterX) - 0.5) * cell
		z += (HashFloat01(uint32(i), streamJitterZ) - 0.5) * cell

		records[i] = Record{
			Index:    i,
			X:        x,
			Z:        z,
			Rotation: HashFloat01(uint32(i), streamRotation) * 2 * math.Pi,
			Height:   p.HeightMin + HashFloat01(uint32(i), streamHeight)*(p.HeightMax-p.HeightMin),
		}
	}
}

// GridDim returns the cells-per-axis of the conceptual placement grid for
// the given instance count. Counts that are not perfect squares leave the
// final row partially filled.
func GridDim(count int) int {
	if count <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(count))))
}
