package city

// Grid dimensions.
const (
	GridCols = 10
	GridRows = 10
)

// Seed hashing: cell coordinates are offset, dotted with two fixed
// weights and scaled before truncation.
const (
	seedColOffset = 0.525
	seedRowOffset = 0.164
	seedColWeight = 69.83
	seedRowWeight = 11.17
	seedScale     = 1000
)

// Main block dimensions.
const (
	MainWidthMin  = 0.4
	MainWidthMax  = 0.8
	MainHeightMin = 0.8
	MainHeightMax = 2.2
)

// Upper block.
const (
	UpperChance    = 0.5
	UpperHeightMin = 0.5
	UpperHeightMax = 1.5
	UpperWidthPad  = 0.15 // added to the drawn width while it still fits
)

// Window lattice.
const (
	WindowSize    = 0.13
	WindowPadding = 0.02 // bottom and left of each window
	WindowOutset  = 0.001
	WindowCell    = WindowSize + WindowPadding
	LitChance     = 0.5
)

// Colours (linear RGB, 0..1).
var (
	WallColor     = [3]float32{0.6, 0.6, 0.6}
	WindowLit     = [3]float32{0.5, 0.5, 0}
	WindowDark    = [3]float32{0, 0, 0}
	GroundColor   = [3]float32{1, 1, 1}
	GroundSize    = float32(10)
	GroundOriginX = float32(-5)
	GroundOriginZ = float32(-9.8)
	CellOriginX   = float32(-4.8)
)
