package game

// GL context.
const (
	GLMajor = 4
	GLMinor = 1
)

// Camera defaults (world units). The camera sits just in front of the
// near row and looks down the street towards -z.
const (
	CameraHeight = 3.0
	CameraDist   = -0.5
	CameraAim    = -7.0
	CameraSlide  = 0.0
	CameraFovY   = 45.0 // degrees
	CameraNear   = 0.05
	CameraFar    = 60.0

	// Debug camera keys move by this much per step.
	CameraStep = 0.1
)

// Clear colour (grey night sky).
var SkyColor = [3]float32{0.2, 0.2, 0.2}

// Frame timing.
const MaxFrameDt = 0.1

// Help is printed once at startup.
const Help = "Move camera with 'space' and 'b'. Debug: w/s distance, a/d slide, q/e height, r/f aim, esc quits."
