package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infinicity/internal/city"
)

func testCamera() Camera {
	return NewCamera(0, 3, -0.5, -7, 45, 0.05, 60)
}

func TestCameraFollowsShift(t *testing.T) {
	cam := testCamera()
	assert.Equal(t, mgl32.Vec3{0, 3, -0.5}, cam.Eye(0))
	assert.Equal(t, mgl32.Vec3{0, 3, -2.5}, cam.Eye(-2))

	// The eye maps to the origin in view space whatever the shift.
	for _, shift := range []float64{0, -1.5, 4} {
		eye := cam.Eye(shift)
		p := cam.View(shift).Mul4x1(eye.Vec4(1))
		assert.InDelta(t, 0, p.Vec3().Len(), 1e-4, "shift %v", shift)
	}
}

func TestCameraLooksDownTheStreet(t *testing.T) {
	cam := testCamera()
	// A point on the aim line ahead of the camera lands in front of it (negative view z).
	ahead := cam.View(0).Mul4x1(mgl32.Vec4{0, 0, -7, 1})
	assert.Less(t, ahead.Z(), float32(0))
	behind := cam.View(0).Mul4x1(mgl32.Vec4{0, 3, 5, 1})
	assert.Greater(t, behind.Z(), float32(0))
}

func TestCameraProjection(t *testing.T) {
	cam := testCamera()
	wide := cam.Projection(800, 400)
	square := cam.Projection(0, 0)
	assert.InDelta(t, square[0]/2, wide[0], 1e-5, "x scale halves at 2:1 aspect")
	assert.Equal(t, square[5], wide[5])
}

func TestCameraNudge(t *testing.T) {
	cam := testCamera()
	cam.Nudge(AxisDist, 0.1)
	cam.Nudge(AxisSlide, -0.2)
	cam.Nudge(AxisHeight, 0.3)
	cam.Nudge(AxisAim, -0.4)
	assert.InDelta(t, -0.4, cam.Dist, 1e-9)
	assert.InDelta(t, -0.2, cam.Slide, 1e-9)
	assert.InDelta(t, 3.3, cam.Height, 1e-9)
	assert.InDelta(t, -7.4, cam.Aim, 1e-9)
}

func TestKeyRepeat(t *testing.T) {
	k := NewKeyRepeat(0.35, 10)
	assert.Equal(t, 0, k.Update(false, 0.016))
	assert.Equal(t, 1, k.Update(true, 0.016), "press fires immediately")
	assert.Equal(t, 0, k.Update(true, 0.2))
	assert.Equal(t, 1, k.Update(true, 0.16), "first repeat after the delay")
	assert.Equal(t, 0, k.Update(true, 0.05))
	assert.Equal(t, 1, k.Update(true, 0.06))
	assert.Equal(t, 3, k.Update(true, 0.3), "long frames fire every missed repeat")
	assert.Equal(t, 0, k.Update(false, 0.016))
	assert.Equal(t, 1, k.Update(true, 0.016), "release resets")
}

func TestKeyRepeatZeroRate(t *testing.T) {
	k := NewKeyRepeat(0, 0)
	assert.Equal(t, 1, k.Update(true, 0.1))
	assert.Equal(t, 0, k.Update(true, 5))
}

func TestEventBus(t *testing.T) {
	bus := NewEventBus()
	var got []Event
	bus.Subscribe(EventRowRecycled, func(e Event) { got = append(got, e) })
	bus.Subscribe(EventRowRecycled, func(e Event) { got = append(got, e) })

	bus.Emit(Event{Type: EventScrolled, Delta: 1})
	assert.Empty(t, got)
	bus.Emit(Event{Type: EventRowRecycled, Transition: city.TransitionForward, Boundary: -1})
	require.Len(t, got, 2)
	assert.Equal(t, -1, got[1].Boundary)
}

func TestSessionCounts(t *testing.T) {
	bus := NewEventBus()
	s := NewSession(bus)

	bus.Emit(Event{Type: EventScrolled, Delta: -0.5})
	bus.Emit(Event{Type: EventScrolled, Delta: 0.25})
	bus.Emit(Event{Type: EventRowRecycled, Transition: city.TransitionForward, Boundary: -1})
	bus.Emit(Event{Type: EventRowRecycled, Transition: city.TransitionForward, Boundary: -2})
	bus.Emit(Event{Type: EventRowRecycled, Transition: city.TransitionBackward, Boundary: -1})
	s.Tick()

	assert.Equal(t, 2, s.RowsForward)
	assert.Equal(t, 1, s.RowsBackward)
	assert.Equal(t, -1, s.Boundary)
	assert.InDelta(t, 0.75, s.Distance, 1e-12)
	assert.Equal(t, 1, s.Frames)

	title := s.Title("Infinicity", city.Stats{Cells: 100, Windows: 40, LitWindows: 20})
	assert.Contains(t, title, "block 1")
	assert.Contains(t, title, "rows +2/-1")
	assert.Contains(t, title, "20/40 windows lit")

	bus.Emit(Event{Type: EventGridReset})
	assert.Zero(t, s.RowsForward)
	assert.Zero(t, s.Distance)
	assert.Equal(t, 1, s.Resets)
}
