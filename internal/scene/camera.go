// Package scene holds the window-independent parts of the desktop front
// end: the street camera, key repeat timing, the event bus and session
// counters.
package scene

import "github.com/go-gl/mathgl/mgl32"

// Camera is a street-level look-at camera that rides along with the
// scroll value. All positions are in city units.
type Camera struct {
	Slide  float64 // sideways eye offset
	Height float64 // eye height
	Dist   float64 // eye z relative to the scroll value
	Aim    float64 // look-at z relative to the scroll value

	FovY      float64 // degrees
	Near, Far float64
}

// NewCamera returns a camera with the given placement and lens.
func NewCamera(slide, height, dist, aim, fovY, near, far float64) Camera {
	return Camera{
		Slide: slide, Height: height, Dist: dist, Aim: aim,
		FovY: fovY, Near: near, Far: far,
	}
}

// Eye returns the eye position for scroll value shift.
func (c *Camera) Eye(shift float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.Slide), float32(c.Height), float32(shift + c.Dist)}
}

// View returns the view matrix for scroll value shift.
func (c *Camera) View(shift float64) mgl32.Mat4 {
	eye := c.Eye(shift)
	center := mgl32.Vec3{0, 0, float32(shift + c.Aim)}
	return mgl32.LookAtV(eye, center, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for a framebuffer size.
func (c *Camera) Projection(fbW, fbH int) mgl32.Mat4 {
	aspect := float32(1)
	if fbW > 0 && fbH > 0 {
		aspect = float32(fbW) / float32(fbH)
	}
	return mgl32.Perspective(mgl32.DegToRad(float32(c.FovY)), aspect, float32(c.Near), float32(c.Far))
}

// CameraAxis selects which placement value a debug key adjusts.
type CameraAxis uint8

const (
	AxisDist CameraAxis = iota
	AxisSlide
	AxisHeight
	AxisAim
)

// Nudge moves one placement value by delta.
func (c *Camera) Nudge(axis CameraAxis, delta float64) {
	switch axis {
	case AxisDist:
		c.Dist += delta
	case AxisSlide:
		c.Slide += delta
	case AxisHeight:
		c.Height += delta
	case AxisAim:
		c.Aim += delta
	}
}
