package city

import "github.com/go-gl/mathgl/mgl32"

// Mesh is an indexed triangle list with interleavable attributes, ready
// for upload. TexCoords is only set on the ground plane.
type Mesh struct {
	Positions []float32
	Normals   []float32
	Colors    []float32
	TexCoords []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }

// Empty reports whether the mesh has nothing to draw.
func (m *Mesh) Empty() bool { return len(m.Indices) == 0 }

// quad appends a parallelogram spanned by u and v from origin, split
// into two triangles (bl, br, tl) and (br, tl, tr).
func (m *Mesh) quad(origin, u, v, normal mgl32.Vec3, color [3]float32) {
	base := uint32(m.VertexCount())
	corners := [4]mgl32.Vec3{origin, origin.Add(u), origin.Add(v), origin.Add(u).Add(v)}
	for _, p := range corners {
		m.Positions = append(m.Positions, p[0], p[1], p[2])
		m.Normals = append(m.Normals, normal[0], normal[1], normal[2])
		m.Colors = append(m.Colors, color[0], color[1], color[2])
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base+1, base+2, base+3)
}

var (
	normalFront = mgl32.Vec3{0, 0, 1}
	normalLeft  = mgl32.Vec3{-1, 0, 0}
	normalRight = mgl32.Vec3{1, 0, 0}
	normalUp    = mgl32.Vec3{0, 1, 0}
	axisX       = mgl32.Vec3{1, 0, 0}
	axisY       = mgl32.Vec3{0, 1, 0}
	axisBack    = mgl32.Vec3{0, 0, -1}
)

// faceFrame returns the origin of a face's lower-left corner, the
// direction windows run along it and its outward normal.
func faceFrame(b Block, f Face) (origin, along, normal mgl32.Vec3) {
	corner := mgl32.Vec3{b.Inset, b.Base, -b.Inset}
	switch f {
	case FaceLeft:
		return corner, axisBack, normalLeft
	case FaceRight:
		return corner.Add(axisX.Mul(b.Width)), axisBack, normalRight
	default:
		return corner, axisX, normalFront
	}
}

// BoxMesh builds the visible walls and roof of a block: 16 vertices,
// 24 indices.
func BoxMesh(b Block, color [3]float32) Mesh {
	var m Mesh
	up := axisY.Mul(b.Height)
	for f := FaceFront; f < faceCount; f++ {
		origin, along, normal := faceFrame(b, f)
		m.quad(origin, along.Mul(b.Width), up, normal, color)
	}
	roof := mgl32.Vec3{b.Inset, b.Base + b.Height, -b.Inset}
	m.quad(roof, axisX.Mul(b.Width), axisBack.Mul(b.Width), normalUp, color)
	return m
}

// WindowMesh builds one quad per window, placed by its face lattice and
// pushed just outside the wall so it does not z-fight.
func WindowMesh(b Block, lattices [faceCount]Lattice, windows []Window) Mesh {
	m := Mesh{
		Positions: make([]float32, 0, len(windows)*12),
		Normals:   make([]float32, 0, len(windows)*12),
		Colors:    make([]float32, 0, len(windows)*12),
		Indices:   make([]uint32, 0, len(windows)*6),
	}
	for _, w := range windows {
		l := lattices[w.Face]
		origin, along, normal := faceFrame(b, w.Face)
		pos := origin.
			Add(normal.Mul(WindowOutset)).
			Add(along.Mul(l.Offset + float32(w.Col)*WindowCell)).
			Add(axisY.Mul(WindowPadding + float32(w.Row)*WindowCell))
		color := WindowDark
		if w.Lit {
			color = WindowLit
		}
		m.quad(pos, along.Mul(WindowSize), axisY.Mul(WindowSize), normal, color)
	}
	return m
}

// BuildingMeshes returns the meshes for a building in draw order: main
// block, its windows, then the upper block and its windows when present.
func BuildingMeshes(b *Building) []Mesh {
	meshes := make([]Mesh, 0, 4)
	meshes = append(meshes,
		BoxMesh(b.Main, WallColor),
		WindowMesh(b.Main, b.MainLattices, b.MainWindows),
	)
	if b.HasUpper {
		meshes = append(meshes,
			BoxMesh(b.Upper, WallColor),
			WindowMesh(b.Upper, b.UpperLattices, b.UpperWindows),
		)
	}
	return meshes
}

// GroundMesh builds the road plane of side size, lying in y=0 and
// extending towards +z from the origin. Texture coordinates repeat once
// per world unit.
func GroundMesh(size float32) Mesh {
	var m Mesh
	m.quad(mgl32.Vec3{0, 0, 0}, axisX.Mul(size), mgl32.Vec3{0, 0, size}, normalUp, GroundColor)
	m.TexCoords = []float32{0, 0, size, 0, 0, size, size, size}
	return m
}
