package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"infinicity/internal/city"
	"infinicity/internal/scene"
)

// Lighting (eye space).
var (
	lightDir     = mgl32.Vec3{0.4, 0.8, 0.6}
	ambientLevel = float32(0.45)
)

// Vertex attribute locations shared by both programs.
const (
	attrPos    = 0
	attrNormal = 1
	attrColor  = 2
	attrUV     = 3
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// gpuMesh is one uploaded city.Mesh: a VAO over separate attribute VBOs
// and an element buffer.
type gpuMesh struct {
	vao   uint32
	vbos  []uint32
	ebo   uint32
	count int32
}

type Renderer struct {
	// Building program.
	buildingProg uint32
	bUProjection int32
	bUModelView  int32
	bULightDir   int32
	bUAmbient    int32

	// Ground program.
	groundProg   uint32
	gUProjection int32
	gUModelView  int32
	ground       gpuMesh

	meshes map[city.MeshID][]gpuMesh
	nextID city.MeshID
}

func NewRenderer() (*Renderer, error) {
	buildingProg, err := linkProgram(buildingVertSrc, buildingFragSrc)
	if err != nil {
		return nil, fmt.Errorf("building program: %w", err)
	}
	groundProg, err := linkProgram(groundVertSrc, groundFragSrc)
	if err != nil {
		gl.DeleteProgram(buildingProg)
		return nil, fmt.Errorf("ground program: %w", err)
	}

	r := &Renderer{
		buildingProg: buildingProg,
		bUProjection: gl.GetUniformLocation(buildingProg, gl.Str("uProjection\x00")),
		bUModelView:  gl.GetUniformLocation(buildingProg, gl.Str("uModelView\x00")),
		bULightDir:   gl.GetUniformLocation(buildingProg, gl.Str("uLightDir\x00")),
		bUAmbient:    gl.GetUniformLocation(buildingProg, gl.Str("uAmbient\x00")),

		groundProg:   groundProg,
		gUProjection: gl.GetUniformLocation(groundProg, gl.Str("uProjection\x00")),
		gUModelView:  gl.GetUniformLocation(groundProg, gl.Str("uModelView\x00")),

		meshes: make(map[city.MeshID][]gpuMesh),
	}
	ground := city.GroundMesh(city.GroundSize)
	r.ground = uploadMesh(&ground)
	return r, nil
}

// Upload implements city.MeshStore.
func (r *Renderer) Upload(b *city.Building) city.MeshID {
	meshes := city.BuildingMeshes(b)
	gpu := make([]gpuMesh, 0, len(meshes))
	for i := range meshes {
		if meshes[i].Empty() {
			continue
		}
		gpu = append(gpu, uploadMesh(&meshes[i]))
	}
	r.nextID++
	r.meshes[r.nextID] = gpu
	return r.nextID
}

// Release implements city.MeshStore.
func (r *Renderer) Release(id city.MeshID) {
	gpu, ok := r.meshes[id]
	if !ok {
		return
	}
	for i := range gpu {
		gpu[i].delete()
	}
	delete(r.meshes, id)
}

// Live returns the number of uploaded buildings.
func (r *Renderer) Live() int { return len(r.meshes) }

func uploadMesh(m *city.Mesh) gpuMesh {
	g := gpuMesh{count: int32(len(m.Indices))}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	attrib := func(loc uint32, data []float32, size int32) {
		if len(data) == 0 {
			return
		}
		var vbo uint32
		gl.GenBuffers(1, &vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, size, gl.FLOAT, false, size*4, glOffset(0))
		g.vbos = append(g.vbos, vbo)
	}
	attrib(attrPos, m.Positions, 3)
	attrib(attrNormal, m.Normals, 3)
	attrib(attrColor, m.Colors, 3)
	attrib(attrUV, m.TexCoords, 2)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return g
}

func (g *gpuMesh) draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, glOffset(0))
}

func (g *gpuMesh) delete() {
	if len(g.vbos) > 0 {
		gl.DeleteBuffers(int32(len(g.vbos)), &g.vbos[0])
	}
	gl.DeleteBuffers(1, &g.ebo)
	gl.DeleteVertexArrays(1, &g.vao)
	*g = gpuMesh{}
}

// Draw renders the ground and every live cell of grid.
func (r *Renderer) Draw(grid *city.Grid, cam *scene.Camera, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(SkyColor[0], SkyColor[1], SkyColor[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	proj := cam.Projection(fbW, fbH)
	view := cam.View(grid.Shift())

	gx, gz := grid.GroundOrigin()
	gl.UseProgram(r.groundProg)
	gl.UniformMatrix4fv(r.gUProjection, 1, false, &proj[0])
	groundMV := view.Mul4(mgl32.Translate3D(gx, 0, gz))
	gl.UniformMatrix4fv(r.gUModelView, 1, false, &groundMV[0])
	r.ground.draw()

	gl.UseProgram(r.buildingProg)
	gl.UniformMatrix4fv(r.bUProjection, 1, false, &proj[0])
	gl.Uniform3f(r.bULightDir, lightDir[0], lightDir[1], lightDir[2])
	gl.Uniform1f(r.bUAmbient, ambientLevel)
	grid.Each(func(col, row int, c *city.Cell) {
		gpu := r.meshes[c.Mesh]
		if !c.Live || len(gpu) == 0 {
			return
		}
		x, z := grid.CellOrigin(col, row)
		mv := view.Mul4(mgl32.Translate3D(x, 0, z))
		gl.UniformMatrix4fv(r.bUModelView, 1, false, &mv[0])
		for i := range gpu {
			gpu[i].draw()
		}
	})
	gl.BindVertexArray(0)
}

// Destroy frees every GL object the renderer still owns.
func (r *Renderer) Destroy() {
	for id := range r.meshes {
		r.Release(id)
	}
	r.ground.delete()
	gl.DeleteProgram(r.buildingProg)
	gl.DeleteProgram(r.groundProg)
}
