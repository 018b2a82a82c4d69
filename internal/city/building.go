package city

import "github.com/chewxy/math32"

// Face names one of the three walls that carry windows. The back wall
// faces away from the camera and is never drawn.
type Face uint8

const (
	FaceFront Face = iota
	FaceLeft
	FaceRight
	faceCount
)

var faceNames = [...]string{"front", "left", "right"}

func (f Face) String() string {
	if int(f) < len(faceNames) {
		return faceNames[f]
	}
	return "unknown"
}

// Block is a box with a square footprint (depth equals width). Its
// front-left corner sits at (Inset, Base, -Inset) in cell space.
type Block struct {
	Base   float32
	Width  float32
	Height float32
	Inset  float32
}

// Lattice is the whole-window tiling of one face.
type Lattice struct {
	Face   Face
	Cols   int
	Rows   int
	Offset float32 // position of the first column along the face
}

// Count returns the number of window slots in the lattice.
func (l Lattice) Count() int { return l.Cols * l.Rows }

// Window is one lattice slot and its lit state.
type Window struct {
	Face Face
	Col  int
	Row  int
	Lit  bool
}

// Building is everything generated for one cell.
type Building struct {
	Seed int64

	Main         Block
	MainLattices [faceCount]Lattice
	MainWindows  []Window

	HasUpper      bool
	Upper         Block
	UpperLattices [faceCount]Lattice
	UpperWindows  []Window
}

// WindowCount returns the number of windows on both blocks.
func (b *Building) WindowCount() int {
	return len(b.MainWindows) + len(b.UpperWindows)
}

// LitCount returns the number of lit windows on both blocks.
func (b *Building) LitCount() int {
	n := 0
	for _, w := range b.MainWindows {
		if w.Lit {
			n++
		}
	}
	for _, w := range b.UpperWindows {
		if w.Lit {
			n++
		}
	}
	return n
}

// TopHeight returns the height of the roof of the tallest block.
func (b *Building) TopHeight() float32 {
	if b.HasUpper {
		return b.Upper.Base + b.Upper.Height
	}
	return b.Main.Base + b.Main.Height
}

// TileFace fits whole windows onto a face of the given size. Leftover
// width becomes a centering offset; windows are never stretched. A face
// smaller than one window cell gets an empty lattice.
func TileFace(face Face, width, height float32) Lattice {
	l := Lattice{Face: face}
	if !(width >= WindowCell) || !(height >= WindowCell) {
		return l
	}
	l.Cols = int(math32.Floor(width / WindowCell))
	l.Rows = int(math32.Floor(height / WindowCell))
	l.Offset = width/2 - float32(l.Cols)*WindowCell/2 + WindowPadding/2
	return l
}

// Generate builds the building for seed. All randomness comes from a
// stream seeded here, so the same seed always yields the same building.
func Generate(seed int64) Building {
	r := NewRand(seed)
	b := Building{Seed: seed}

	b.Main = Block{
		Width:  nonNeg(r.RangeF(MainWidthMin, MainWidthMax)),
		Height: nonNeg(r.RangeF(MainHeightMin, MainHeightMax)),
	}
	b.MainLattices, b.MainWindows = tileBlock(r, b.Main)

	if !r.Chance(UpperChance) {
		return b
	}
	b.HasUpper = true

	w := r.RangeF(WindowCell, b.Main.Width)
	if w+UpperWidthPad < b.Main.Width {
		w += UpperWidthPad
	}
	h := r.RangeF(UpperHeightMin, UpperHeightMax)
	inset := r.RangeF(0, (b.Main.Width-w)/2)
	b.Upper = Block{
		Base:   b.Main.Base + b.Main.Height,
		Width:  nonNeg(w),
		Height: nonNeg(h),
		Inset:  nonNeg(inset),
	}
	b.UpperLattices, b.UpperWindows = tileBlock(r, b.Upper)
	return b
}

// tileBlock lays out the lattices of a block and draws the lit state of
// each window, face by face, column by column.
func tileBlock(r *Rand, blk Block) ([faceCount]Lattice, []Window) {
	var lattices [faceCount]Lattice
	total := 0
	for f := FaceFront; f < faceCount; f++ {
		lattices[f] = TileFace(f, blk.Width, blk.Height)
		total += lattices[f].Count()
	}
	windows := make([]Window, 0, total)
	for _, l := range lattices {
		for c := 0; c < l.Cols; c++ {
			for row := 0; row < l.Rows; row++ {
				windows = append(windows, Window{
					Face: l.Face,
					Col:  c,
					Row:  row,
					Lit:  r.Chance(LitChance),
				})
			}
		}
	}
	return lattices, windows
}

func nonNeg(v float32) float32 {
	if v < 0 || math32.IsNaN(v) {
		return 0
	}
	return v
}
