package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"infinicity/internal/config"
	"infinicity/internal/scene"
)

// cameraKey binds a debug key to one camera axis and direction.
type cameraKey struct {
	key  glfw.Key
	axis scene.CameraAxis
	sign float64
}

var cameraKeys = []cameraKey{
	{glfw.KeyW, scene.AxisDist, -1},
	{glfw.KeyS, scene.AxisDist, 1},
	{glfw.KeyA, scene.AxisSlide, -1},
	{glfw.KeyD, scene.AxisSlide, 1},
	{glfw.KeyQ, scene.AxisHeight, 1},
	{glfw.KeyE, scene.AxisHeight, -1},
	{glfw.KeyR, scene.AxisAim, -1},
	{glfw.KeyF, scene.AxisAim, 1},
}

type Input struct {
	step    float64
	forward *scene.KeyRepeat
	back    *scene.KeyRepeat
	camera  map[glfw.Key]*scene.KeyRepeat
}

func NewInput(cfg config.ScrollConfig) *Input {
	in := &Input{
		step:    cfg.Step,
		forward: scene.NewKeyRepeat(cfg.RepeatDelay, cfg.RepeatRate),
		back:    scene.NewKeyRepeat(cfg.RepeatDelay, cfg.RepeatRate),
		camera:  make(map[glfw.Key]*scene.KeyRepeat, len(cameraKeys)),
	}
	for _, k := range cameraKeys {
		in.camera[k.key] = scene.NewKeyRepeat(cfg.RepeatDelay, cfg.RepeatRate)
	}
	return in
}

// ScrollDelta returns how far the city scrolls this frame. Space moves
// forward (towards -z), B moves back.
func (in *Input) ScrollDelta(window *glfw.Window, dt float64) float64 {
	fwd := in.forward.Update(window.GetKey(glfw.KeySpace) == glfw.Press, dt)
	back := in.back.Update(window.GetKey(glfw.KeyB) == glfw.Press, dt)
	return float64(back-fwd) * in.step
}

// UpdateCamera applies the debug camera keys.
func (in *Input) UpdateCamera(window *glfw.Window, cam *scene.Camera, dt float64) {
	for _, k := range cameraKeys {
		n := in.camera[k.key].Update(window.GetKey(k.key) == glfw.Press, dt)
		if n > 0 {
			cam.Nudge(k.axis, k.sign*float64(n)*CameraStep)
		}
	}
}
