// Package field assembles the blade template, the placement pass, and the
// wind material into one renderable instance set.
package field

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/renderer"
	"github.com/pthm-cable/meadow/systems"
)

// MaxInstances is the practical per-set limit: one rl.Matrix per instance
// keeps the largest instanced draw under 64 MiB of transform data.
const MaxInstances = 1 << 20

var (
	// ErrConfiguration rejects invalid (count, fieldSize) pairs before any
	// state is created.
	ErrConfiguration = errors.New("field: invalid configuration")

	// ErrNotPlaced is returned when rendering is requested before the
	// placement pass has completed. Rendering default-zeroed instance data
	// is never silently allowed.
	ErrNotPlaced = errors.New("field: placement pass has not completed")

	// ErrAlreadyPlaced guards the one-shot placement pass.
	ErrAlreadyPlaced = errors.New("field: placement pass already ran")
)

// Set owns the blade templates and the full instance record collection.
// Lifecycle: Create -> Place (exactly once) -> InitRender (windowed use)
// -> per frame Advance + Draw. Records and transforms are written only by
// Place and read-only afterward; Advance touches nothing but the elapsed
// time scalar.
type Set struct {
	count     int
	fieldSize float32
	clamped   bool

	template    *systems.Template
	templateLow *systems.Template
	wind        *systems.Wind
	placement   systems.PlacementParams

	records    []systems.Record
	transforms []rl.Matrix
	placed     bool

	time float32

	actorX, actorZ float32
	actorOn        bool
	proxRadius     float32
	proxStrength   float32

	lodEnabled    bool
	lodThreshold  float32
	lodHysteresis float32
	tilesPerAxis  int

	world       *ecs.World
	tileMapper  *ecs.Map2[components.Tile, components.Detail]
	tileFilter  *ecs.Filter2[components.Tile, components.Detail]
	tileBuckets [][]rl.Matrix

	meshHigh *renderer.BladeMesh
	meshLow  *renderer.BladeMesh
	material *renderer.GrassMaterial
}

// Create builds an empty set for the given instance count and field side
// length. count 0 yields a valid empty set; count < 0 or fieldSize <= 0 is
// a configuration error and no set is created. Counts above MaxInstances
// are clamped with a warning. Blade, wind, LOD, and proximity parameters
// come from the loaded config.
func Create(count int, fieldSize float32) (*Set, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: instance count %d is negative", ErrConfiguration, count)
	}
	if fieldSize <= 0 {
		return nil, fmt.Errorf("%w: field size %g is not positive", ErrConfiguration, fieldSize)
	}

	cfg := config.Cfg()

	clamped := false
	if count > MaxInstances {
		slog.Warn("instance count exceeds capacity, clamping",
			"requested", count,
			"max", MaxInstances,
		)
		count = MaxInstances
		clamped = true
	}

	template, err := systems.NewTemplate(cfg.Blade.Segments, cfg.Derived.BladeWidth32, cfg.Derived.BladeHeight32)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	templateLow, err := systems.NewTemplate(cfg.Blade.SegmentsLow, cfg.Derived.BladeWidth32, cfg.Derived.BladeHeight32)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	windParams := systems.WindParams{
		Strength:  float32(cfg.Wind.Strength),
		Frequency: float32(cfg.Wind.Frequency),
		TimeScale: float32(cfg.Wind.TimeScale),
		DriftX:    float32(cfg.Wind.DriftX),
		DriftZ:    float32(cfg.Wind.DriftZ),
	}

	world := ecs.NewWorld()

	s := &Set{
		count:     count,
		fieldSize: fieldSize,
		clamped:   clamped,

		template:    template,
		templateLow: templateLow,
		wind:        systems.NewWind(windParams, cfg.Wind.Seed, cfg.Derived.BladeHeight32),
		placement: systems.PlacementParams{
			FieldSize: fieldSize,
			HeightMin: cfg.Derived.HeightMin32,
			HeightMax: cfg.Derived.HeightMax32,
			Workers:   cfg.Field.Workers,
		},

		proxRadius:   float32(cfg.Proximity.Radius),
		proxStrength: float32(cfg.Proximity.Strength),

		lodEnabled:    cfg.LOD.Enabled,
		lodThreshold:  float32(cfg.LOD.Distance),
		lodHysteresis: float32(cfg.LOD.Hysteresis),
		tilesPerAxis:  cfg.LOD.TilesPerAxis,

		world:      world,
		tileMapper: ecs.NewMap2[components.Tile, components.Detail](world),
		tileFilter: ecs.NewFilter2[components.Tile, components.Detail](world),
	}
	if !cfg.Proximity.Enabled {
		s.proxRadius = 0
	}
	if !s.lodEnabled || s.tilesPerAxis < 1 {
		s.tilesPerAxis = 1
	}

	return s, nil
}

// Place runs the placement pass: the parallel map from instance index to
// record, the baked per-instance transforms, and the LOD tile buckets.
// Must complete exactly once before the first Draw.
func (s *Set) Place() error {
	if s.placed {
		return ErrAlreadyPlaced
	}

	s.records = systems.PlaceInstances(s.count, s.placement)

	s.transforms = make([]rl.Matrix, len(s.records))
	for i, rec := range s.records {
		scale := rl.MatrixScale(1, rec.Height, 1)
		rotate := rl.MatrixRotateY(rec.Rotation)
		translate := rl.MatrixTranslate(rec.X, 0, rec.Z)
		s.transforms[i] = rl.MatrixMultiply(rl.MatrixMultiply(scale, rotate), translate)
	}

	s.buildTiles()
	s.placed = true

	slog.Info("placement complete",
		"instances", len(s.records),
		"field_size", s.fieldSize,
		"tiles", s.tilesPerAxis*s.tilesPerAxis,
	)
	return nil
}

// buildTiles assigns every instance to its LOD tile and spawns one tile
// entity per cell. Buckets are write-once, like the record array.
func (s *Set) buildTiles() {
	n := s.tilesPerAxis
	tileSize := s.fieldSize / float32(n)
	half := s.fieldSize / 2

	s.tileBuckets = make([][]rl.Matrix, n*n)
	for i, rec := range s.records {
		tx := tileCoord(rec.X, half, tileSize, n)
		tz := tileCoord(rec.Z, half, tileSize, n)
		idx := tz*n + tx
		s.tileBuckets[idx] = append(s.tileBuckets[idx], s.transforms[i])
	}

	for tz := 0; tz < n; tz++ {
		for tx := 0; tx < n; tx++ {
			tile := components.Tile{
				Index:      tz*n + tx,
				CenterX:    -half + (float32(tx)+0.5)*tileSize,
				CenterZ:    -half + (float32(tz)+0.5)*tileSize,
				HalfExtent: tileSize / 2,
			}
			detail := components.Detail{Level: systems.HighDetail}
			s.tileMapper.NewEntity(&tile, &detail)
		}
	}
}

// tileCoord maps a field coordinate to a tile index, clamped so jittered
// edge instances stay inside the grid.
func tileCoord(v, half, tileSize float32, n int) int {
	c := int((v + half) / tileSize)
	if c < 0 {
		return 0
	}
	if c >= n {
		return n - 1
	}
	return c
}

// InitRender uploads the blade meshes and compiles the grass material.
// Requires an active raylib window and a completed placement pass.
func (s *Set) InitRender() error {
	if !s.placed {
		return ErrNotPlaced
	}
	s.meshHigh = renderer.UploadTemplate(s.template)
	s.meshLow = renderer.UploadTemplate(s.templateLow)
	s.material = renderer.NewGrassMaterial(s.wind.Params())
	return nil
}

// Advance feeds the frame loop's elapsed time to the wind function. It has
// no other effect; the instance data is never rewritten after placement.
func (s *Set) Advance(elapsed float32) {
	s.time = elapsed
}

// SetActor reports the external actor's field-plane position for the
// proximity push. Refresh once per frame.
func (s *Set) SetActor(x, z float32) {
	s.actorX, s.actorZ = x, z
	s.actorOn = true
}

// ClearActor disables the proximity push.
func (s *Set) ClearActor() {
	s.actorOn = false
}

// Draw issues the instanced draws for the whole set. Without LOD this is
// exactly one draw covering every instance; per-instance culling is left
// to the GPU by design. Must be called between BeginMode3D and EndMode3D.
// camPos is the external camera position, used only for tile LOD.
func (s *Set) Draw(camPos rl.Vector3) error {
	if !s.placed {
		return ErrNotPlaced
	}
	if len(s.transforms) == 0 {
		// Empty set: rendering is a no-op, not an error.
		return nil
	}
	if s.material == nil {
		return fmt.Errorf("%w: render resources not initialized", ErrNotPlaced)
	}

	s.material.SetTime(s.time)
	if s.actorOn && s.proxRadius > 0 {
		s.material.SetActor(s.actorX, s.actorZ, s.proxRadius, s.proxStrength)
	} else {
		s.material.SetActor(0, 0, 0, 0)
	}

	if !s.lodEnabled {
		rl.DrawMeshInstanced(s.meshHigh.Raw(), s.material.Material(), s.transforms, len(s.transforms))
		return nil
	}

	query := s.tileFilter.Query()
	for query.Next() {
		tile, detail := query.Get()
		bucket := s.tileBuckets[tile.Index]
		if len(bucket) == 0 {
			continue
		}

		dist := tileDistance(camPos, tile.CenterX, tile.CenterZ)
		detail.Level = systems.SelectDetail(detail.Level, dist, s.lodThreshold, s.lodHysteresis)

		mesh := s.meshHigh
		if detail.Level == systems.LowDetail {
			mesh = s.meshLow
		}
		rl.DrawMeshInstanced(mesh.Raw(), s.material.Material(), bucket, len(bucket))
	}
	return nil
}

// tileDistance is the camera distance to a tile center on the ground plane.
func tileDistance(camPos rl.Vector3, cx, cz float32) float32 {
	dx := camPos.X - cx
	dy := camPos.Y
	dz := camPos.Z - cz
	return float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
}

// CPUDisplaceSum evaluates the wind displacement of every vertex of every
// instance on the CPU at time t and returns the coordinate sum. This is the
// headless equivalent of one animated frame; the GPU path evaluates the
// same function in the vertex stage.
func (s *Set) CPUDisplaceSum(t float32) float64 {
	if !s.placed {
		return 0
	}

	var sum float64
	verts := s.template.Vertices
	for _, rec := range s.records {
		for v := 0; v+2 < len(verts); v += 3 {
			var x, y, z float32
			if s.actorOn && s.proxRadius > 0 {
				x, y, z = s.wind.DisplaceWithPush(verts[v], verts[v+1], verts[v+2], rec, t,
					s.actorX, s.actorZ, s.proxRadius, s.proxStrength)
			} else {
				x, y, z = s.wind.Displace(verts[v], verts[v+1], verts[v+2], rec, t)
			}
			sum += float64(x) + float64(y) + float64(z)
		}
	}
	return sum
}

// Count returns the instance count after any capacity clamping.
func (s *Set) Count() int {
	return s.count
}

// FieldSize returns the side length of the field.
func (s *Set) FieldSize() float32 {
	return s.fieldSize
}

// Clamped reports whether the requested count exceeded MaxInstances.
func (s *Set) Clamped() bool {
	return s.clamped
}

// Placed reports whether the placement pass has completed.
func (s *Set) Placed() bool {
	return s.placed
}

// Records exposes the instance records. The slice is write-once; callers
// must treat it as read-only.
func (s *Set) Records() []systems.Record {
	return s.records
}

// Wind returns the CPU wind field shared with the shader parameters.
func (s *Set) Wind() *systems.Wind {
	return s.wind
}

// Template returns the high-detail blade template.
func (s *Set) Template() *systems.Template {
	return s.template
}

// Unload releases GPU resources. Safe to call when InitRender never ran.
func (s *Set) Unload() {
	if s.meshHigh != nil {
		s.meshHigh.Unload()
	}
	if s.meshLow != nil {
		s.meshLow.Unload()
	}
	if s.material != nil {
		s.material.Unload()
	}
}
