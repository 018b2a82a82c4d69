package game

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"infinicity/internal/city"
	"infinicity/internal/config"
	"infinicity/internal/scene"
)

// titleInterval is how often (seconds) the HUD in the title bar refreshes.
const titleInterval = 0.25

// RunDesktop opens the window and runs the city until it is closed or
// ctx is cancelled.
func RunDesktop(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, err := initWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Debug("gl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	var audio *AudioSystem
	if cfg.Audio.Enabled {
		audio, err = InitAudio(cfg.Audio.Volume)
		if err != nil {
			log.Warn("audio init failed, continuing without sound", "err", err)
		} else {
			audio.StartAmbience()
			defer audio.Close()
		}
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.MULTISAMPLE)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	bus := NewEventLog(log, audio)
	session := scene.NewSession(bus)

	grid := city.NewGrid(rend)
	defer grid.Close()
	grid.Initialize(ctx)
	bus.Emit(scene.Event{Type: scene.EventGridReset})

	cam := scene.NewCamera(CameraSlide, CameraHeight, CameraDist, CameraAim, CameraFovY, CameraNear, CameraFar)
	input := NewInput(cfg.Scroll)

	var titleTimer float64
	last := glfw.GetTime()
	for !window.ShouldClose() {
		if ctx.Err() != nil {
			break
		}
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > MaxFrameDt {
			dt = MaxFrameDt
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		if delta := input.ScrollDelta(window, dt); delta != 0 {
			grid.Advance(delta)
			bus.Emit(scene.Event{Type: scene.EventScrolled, Delta: delta, Shift: grid.Shift()})
		}
		if t := grid.SyncRows(ctx); t != city.TransitionNone {
			bus.Emit(scene.Event{
				Type:       scene.EventRowRecycled,
				Transition: t,
				Boundary:   grid.Boundary(),
				Shift:      grid.Shift(),
			})
		}
		input.UpdateCamera(window, &cam, dt)

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		rend.Draw(grid, &cam, fbW, fbH)
		window.SwapBuffers()
		session.Tick()

		titleTimer += dt
		if titleTimer >= titleInterval {
			titleTimer = 0
			window.SetTitle(session.Title(cfg.Window.Title, grid.Stats()))
		}
	}

	log.Info("session ended",
		"frames", session.Frames,
		"rows_forward", session.RowsForward,
		"rows_backward", session.RowsBackward,
		"distance", session.Distance,
		"meshes_live", rend.Live(),
	)
	return nil
}
