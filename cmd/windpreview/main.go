// Wind field preview tool - interactive top-down visualization with sliders.
//
// Usage: go run ./cmd/windpreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30

	gridSize  = 128
	fieldSize = float32(40.0)
	seed      = int64(1337)
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Wind Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := systems.WindParams{
		Strength:  0.25,
		Frequency: 0.35,
		TimeScale: 1.2,
		DriftX:    0.4,
		DriftZ:    0.15,
	}
	wind := systems.NewWind(params, seed, 1)

	sway := make([]float32, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var time float32
	animating := true

	sampleField(wind, sway, time)
	updateTexture(texture, sway, params.Strength)

	for !rl.WindowShouldClose() {
		if animating {
			time += rl.GetFrameTime()
		}
		sampleField(wind, sway, time)
		updateTexture(texture, sway, params.Strength)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridSize), Height: float32(gridSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Time: %.1f", time), 15, statsY, 16, rl.DarkGray)
		rl.DrawText("Red: sway toward +X  Blue: toward -X", 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Wind Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		next := params

		rl.DrawText("Strength (tip displacement)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		next.Strength = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.0", "1.0",
			params.Strength, 0.0, 1.0,
		)
		panelY += 30

		rl.DrawText("Frequency (spatial)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		next.Frequency = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.05", "2.0",
			params.Frequency, 0.05, 2.0,
		)
		panelY += 30

		rl.DrawText("Time scale", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		next.TimeScale = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.0", "5.0",
			params.TimeScale, 0.0, 5.0,
		)
		panelY += 30

		rl.DrawText("Gust drift X", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		next.DriftX = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.0", "2.0",
			params.DriftX, 0.0, 2.0,
		)
		panelY += 30

		rl.DrawText("Gust drift Z", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		next.DriftZ = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.0", "2.0",
			params.DriftZ, 0.0, 2.0,
		)
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 28}, pauseLabel(animating)) {
			animating = !animating
		}

		rl.EndDrawing()

		if next != params {
			params = next
			wind = systems.NewWind(params, seed, 1)
		}
	}
}

func pauseLabel(animating bool) string {
	if animating {
		return "Pause"
	}
	return "Play"
}

// sampleField evaluates the tip sway of a virtual instance at every texel.
func sampleField(wind *systems.Wind, out []float32, time float32) {
	for gy := 0; gy < gridSize; gy++ {
		for gx := 0; gx < gridSize; gx++ {
			rec := systems.Record{
				X: (float32(gx)/gridSize - 0.5) * fieldSize,
				Z: (float32(gy)/gridSize - 0.5) * fieldSize,
			}
			out[gy*gridSize+gx] = wind.Sway(rec, 1, time)
		}
	}
}

// updateTexture maps sway values to a diverging blue/red ramp.
func updateTexture(texture rl.Texture2D, sway []float32, strength float32) {
	pixels := make([]rl.Color, len(sway))
	for i, s := range sway {
		v := float32(0.5)
		if strength > 0 {
			v = s/strength*0.5 + 0.5 // [-strength, strength] -> [0, 1]
		}
		pixels[i] = rl.Color{
			R: uint8(v * 255),
			G: uint8(40 + v*40),
			B: uint8((1 - v) * 255),
			A: 255,
		}
	}
	rl.UpdateTexture(texture, pixels)
}
