package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/field"
	"github.com/pthm-cable/meadow/renderer"
	"github.com/pthm-cable/meadow/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run the CPU displacement sweep without graphics")
	frames := flag.Int("frames", 300, "Frame count for headless runs")
	instances := flag.Int("instances", -1, "Instance count override (-1 = use config)")
	fieldSize := flag.Float64("field", 0, "Field size override (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logPerf := flag.Bool("log-perf", false, "Log per-window frame stats via slog")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	count := cfg.Field.Instances
	if *instances >= 0 {
		count = *instances
	}
	size := cfg.Derived.FieldSize32
	if *fieldSize > 0 {
		size = float32(*fieldSize)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to initialize output", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	set, err := field.Create(count, size)
	if err != nil {
		slog.Error("failed to create field", "error", err)
		os.Exit(1)
	}

	if *headless {
		runHeadless(set, *frames, output)
		return
	}
	runWindowed(set, cfg, output, *logPerf)
}

// runHeadless places the field and sweeps the CPU displacement path for the
// requested frame count, reporting throughput.
func runHeadless(set *field.Set, frames int, output *telemetry.OutputManager) {
	start := time.Now()
	if err := set.Place(); err != nil {
		slog.Error("placement failed", "error", err)
		os.Exit(1)
	}
	slog.Info("starting headless sweep",
		"instances", set.Count(),
		"frames", frames,
		"placement_ms", float64(time.Since(start).Microseconds())/1000,
	)

	vertsPerFrame := set.Count() * set.Template().VertexCount()
	const dt = 1.0 / 60.0

	durations := make([]float64, 0, frames)
	var checksum float64
	for f := 0; f < frames; f++ {
		t := float32(f) * dt
		set.Advance(t)

		frameStart := time.Now()
		checksum += set.CPUDisplaceSum(t)
		durations = append(durations, time.Since(frameStart).Seconds())
	}

	stats := telemetry.ComputeWindowStats(0, set.Count(), durations)
	slog.Info("headless sweep complete",
		"frames", frames,
		"vertices_per_frame", vertsPerFrame,
		"mean_ms", stats.MeanMs,
		"p90_ms", stats.P90Ms,
		"checksum", checksum,
	)
	if err := output.WriteWindow(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
}

// runWindowed opens the window, places and uploads the field, and drives
// the frame loop: the camera orbits the field and the actor walks it with
// the arrow keys, bending nearby blades.
func runWindowed(set *field.Set, cfg *config.Config, output *telemetry.OutputManager, logPerf bool) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "meadow")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	if err := set.Place(); err != nil {
		slog.Error("placement failed", "error", err)
		os.Exit(1)
	}
	if err := set.InitRender(); err != nil {
		slog.Error("render init failed", "error", err)
		os.Exit(1)
	}
	defer set.Unload()

	ground := renderer.NewGround(set.FieldSize() * 1.2)
	defer ground.Unload()

	camera := rl.Camera3D{
		Position:   rl.NewVector3(set.FieldSize()*0.6, set.FieldSize()*0.35, set.FieldSize()*0.6),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	windowFrames := int(cfg.Telemetry.StatsWindow * float64(cfg.Screen.TargetFPS))
	perf := telemetry.NewPerfCollector(windowFrames)
	window := 0

	var actorX, actorZ float32
	const actorSpeed = 6.0

	for !rl.WindowShouldClose() {
		perf.StartFrame()
		dt := rl.GetFrameTime()

		rl.UpdateCamera(&camera, rl.CameraOrbital)

		// Actor walk (collaborator side: the field only receives the position).
		if rl.IsKeyDown(rl.KeyRight) {
			actorX += actorSpeed * dt
		}
		if rl.IsKeyDown(rl.KeyLeft) {
			actorX -= actorSpeed * dt
		}
		if rl.IsKeyDown(rl.KeyUp) {
			actorZ -= actorSpeed * dt
		}
		if rl.IsKeyDown(rl.KeyDown) {
			actorZ += actorSpeed * dt
		}
		set.SetActor(actorX, actorZ)

		perf.StartPhase(telemetry.PhaseAdvance)
		set.Advance(float32(rl.GetTime()))

		perf.StartPhase(telemetry.PhaseDraw)
		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 12, G: 16, B: 24, A: 255})

		rl.BeginMode3D(camera)
		ground.Draw()
		if err := set.Draw(camera.Position); err != nil {
			slog.Error("draw failed", "error", err)
			rl.EndMode3D()
			rl.EndDrawing()
			break
		}
		rl.DrawSphere(rl.NewVector3(actorX, 0.3, actorZ), 0.25, rl.Beige)
		rl.EndMode3D()

		perf.StartPhase(telemetry.PhaseOverlay)
		rl.DrawFPS(10, 10)
		rl.DrawText(fmt.Sprintf("instances: %d", set.Count()), 10, 35, 20, rl.RayWhite)
		rl.DrawText("arrows: move actor", 10, 60, 20, rl.Gray)
		rl.EndDrawing()

		perf.EndFrame()

		if perf.SampleCount() >= windowFrames {
			stats := telemetry.ComputeWindowStats(window, set.Count(), perf.FrameDurations())
			window++
			if logPerf {
				slog.Info("frame window",
					"window", stats.Window,
					"mean_ms", stats.MeanMs,
					"p90_ms", stats.P90Ms,
					"fps", stats.FPS,
				)
			}
			if err := output.WriteWindow(stats); err != nil {
				slog.Error("failed to write stats", "error", err)
			}
			perf = telemetry.NewPerfCollector(windowFrames)
		}
	}
}
