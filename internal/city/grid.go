package city

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"

	"infinicity/internal/telemetry"
)

// MeshID is an opaque handle to the GPU resources of one building.
type MeshID uint32

// NoMesh is the handle of a cell whose meshes were never uploaded.
const NoMesh MeshID = 0

// MeshStore owns the renderer-side meshes of buildings. Upload is called
// once per (re)generated cell and Release once per evicted cell.
type MeshStore interface {
	Upload(b *Building) MeshID
	Release(id MeshID)
}

// Cell is one slot of the grid.
type Cell struct {
	Building Building
	Mesh     MeshID
	Live     bool

	// World coordinate the building was generated for.
	Col, WorldRow int
}

// Transition reports what SyncRows did.
type Transition int8

const (
	TransitionNone     Transition = iota
	TransitionForward             // near row evicted, new far row generated
	TransitionBackward            // far row evicted, new near row generated
)

func (t Transition) String() string {
	switch t {
	case TransitionForward:
		return "forward"
	case TransitionBackward:
		return "backward"
	default:
		return "none"
	}
}

// Grid is a fixed window of GridCols x GridRows buildings over an
// endless city. Row 0 is nearest the camera. Rows are recycled in place
// as the scroll value crosses integer boundaries.
//
// A Grid is not safe for concurrent use.
type Grid struct {
	cells    [GridCols][GridRows]Cell
	shift    float64
	boundary int
	store    MeshStore
}

// NewGrid returns an empty grid. store may be nil when no renderer is
// attached; Initialize must be called before the grid is drawn.
func NewGrid(store MeshStore) *Grid {
	return &Grid{store: store}
}

// Initialize generates every cell from its coordinate seed and resets
// the scroll state. Any previous contents are released first.
func (g *Grid) Initialize(ctx context.Context) {
	_, span := telemetry.Tracer("city").Start(ctx, "grid.initialize")
	defer span.End()

	g.releaseAll()
	g.shift = 0
	g.boundary = 0
	for c := range g.cells {
		for r := range g.cells[c] {
			g.cells[c][r] = g.build(c, r)
		}
	}

	st := g.Stats()
	span.SetAttributes(
		attribute.Int("grid.cells", st.Cells),
		attribute.Int("grid.upper_blocks", st.UpperBlocks),
		attribute.Int("grid.windows", st.Windows),
		attribute.Int("grid.lit_windows", st.LitWindows),
	)
}

// Advance moves the scroll accumulator by delta. It never recycles rows;
// call SyncRows afterwards. A non-finite delta is a caller bug and panics.
func (g *Grid) Advance(delta float64) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		panic(fmt.Sprintf("city: non-finite scroll delta %v", delta))
	}
	g.shift += delta
}

// SyncRows recycles at most one row when the scroll value has crossed an
// integer boundary since the last call, and moves the boundary to
// floor(shift). A jump of more than one row still recycles a single row;
// the rows in between are never generated.
func (g *Grid) SyncRows(ctx context.Context) Transition {
	floor := int(math.Floor(g.shift))
	switch {
	case floor < g.boundary:
		g.boundary = floor
		g.recycle(ctx, TransitionForward)
		return TransitionForward
	case floor > g.boundary:
		g.boundary = floor
		g.recycle(ctx, TransitionBackward)
		return TransitionBackward
	}
	return TransitionNone
}

func (g *Grid) recycle(ctx context.Context, t Transition) {
	_, span := telemetry.Tracer("city").Start(ctx, "grid.recycle")
	defer span.End()

	evict, fresh := 0, GridRows-1
	if t == TransitionBackward {
		evict, fresh = GridRows-1, 0
	}
	for c := range g.cells {
		col := &g.cells[c]
		g.release(&col[evict])
		if t == TransitionForward {
			copy(col[:GridRows-1], col[1:])
		} else {
			copy(col[1:], col[:GridRows-1])
		}
		col[fresh] = g.build(c, fresh-g.boundary)
	}

	span.SetAttributes(
		attribute.String("grid.transition", t.String()),
		attribute.Int("grid.boundary", g.boundary),
		attribute.Int("grid.evicted_row", evict),
		attribute.Int("grid.world_row", fresh-g.boundary),
	)
}

func (g *Grid) build(col, worldRow int) Cell {
	b := Generate(CellSeed(col, worldRow))
	id := NoMesh
	if g.store != nil {
		id = g.store.Upload(&b)
	}
	return Cell{Building: b, Mesh: id, Live: true, Col: col, WorldRow: worldRow}
}

func (g *Grid) release(c *Cell) {
	if c.Live && g.store != nil && c.Mesh != NoMesh {
		g.store.Release(c.Mesh)
	}
	*c = Cell{}
}

func (g *Grid) releaseAll() {
	for c := range g.cells {
		for r := range g.cells[c] {
			g.release(&g.cells[c][r])
		}
	}
}

// Close releases every cell's meshes. The grid is empty afterwards.
func (g *Grid) Close() {
	g.releaseAll()
}

// CellAt returns a copy of the cell at (col, row). Indices outside the
// grid are a caller bug and panic.
func (g *Grid) CellAt(col, row int) Cell {
	if col < 0 || col >= GridCols || row < 0 || row >= GridRows {
		panic(fmt.Sprintf("city: cell (%d,%d) outside %dx%d grid", col, row, GridCols, GridRows))
	}
	return g.cells[col][row]
}

// Each calls fn for every cell, column by column, near row first.
func (g *Grid) Each(fn func(col, row int, c *Cell)) {
	for c := range g.cells {
		for r := range g.cells[c] {
			fn(c, r, &g.cells[c][r])
		}
	}
}

// Shift returns the scroll accumulator.
func (g *Grid) Shift() float64 { return g.shift }

// Boundary returns the last integer scroll value rows were synced to.
func (g *Grid) Boundary() int { return g.boundary }

// Stats summarises the grid contents.
type Stats struct {
	Cells       int
	UpperBlocks int
	Windows     int
	LitWindows  int
}

// Stats counts live cells, upper blocks and windows.
func (g *Grid) Stats() Stats {
	var s Stats
	for c := range g.cells {
		for r := range g.cells[c] {
			cell := &g.cells[c][r]
			if !cell.Live {
				continue
			}
			s.Cells++
			if cell.Building.HasUpper {
				s.UpperBlocks++
			}
			s.Windows += cell.Building.WindowCount()
			s.LitWindows += cell.Building.LitCount()
		}
	}
	return s
}

// CellOrigin returns the translation of the cell at (col, row) relative
// to the city origin for the current boundary.
func (g *Grid) CellOrigin(col, row int) (x, z float32) {
	return float32(col) + CellOriginX, float32(g.boundary - row)
}

// GroundOrigin returns the translation of the road plane.
func (g *Grid) GroundOrigin() (x, z float32) {
	return GroundOriginX, GroundOriginZ + float32(g.boundary)
}
