package view3d

import (
	"errors"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Errors reported by the mesh builders.
var (
	// ErrInvalidDimensions is returned when tessellation parameters cannot
	// produce a non-degenerate solid.
	ErrInvalidDimensions = errors.New("view3d: invalid mesh dimensions")

	// ErrMeshTooLarge is returned when a mesh would need more vertices than
	// a 16-bit index buffer can address.
	ErrMeshTooLarge = errors.New("view3d: mesh exceeds 16-bit index capacity")
)

// MaxVertices is the largest vertex count addressable by the uint16 index
// buffers this package produces.
const MaxVertices = 1 << 16

// Vertex is one point of a triangle mesh.
// The struct is tightly packed (8 contiguous float32 values) so a []Vertex
// can be uploaded to a GPU as-is; renderers rely on this layout via
// unsafe.Sizeof and unsafe.Offsetof.
type Vertex struct {
	Position mgl32.Vec3 // On-surface position
	Normal   mgl32.Vec3 // Unit outward normal
	TexCoord mgl32.Vec2 // Texture coordinates (u, v)
}

// VertexStride is the size in bytes of one packed Vertex.
const VertexStride = int(unsafe.Sizeof(Vertex{}))

// VertexAttribute describes one named attribute within the packed Vertex
// layout, for renderers that bind attributes by location and byte offset.
type VertexAttribute struct {
	Name       string  // Attribute name as exposed to shaders
	Components int32   // Number of float32 components
	Offset     uintptr // Byte offset from the start of the Vertex
}

// VertexLayout returns the attribute layout of Vertex in declaration order:
// position, normal, texcoord. The slice is freshly allocated on each call.
func VertexLayout() []VertexAttribute {
	return []VertexAttribute{
		{Name: "position", Components: 3, Offset: unsafe.Offsetof(Vertex{}.Position)},
		{Name: "normal", Components: 3, Offset: unsafe.Offsetof(Vertex{}.Normal)},
		{Name: "texcoord", Components: 2, Offset: unsafe.Offsetof(Vertex{}.TexCoord)},
	}
}

// Mesh is an indexed triangle list. Indices are grouped in triples, each
// triple one triangle wound counter-clockwise when viewed from outside the
// solid. A Mesh is immutable once built and owned by its caller; builders
// never retain references to the buffers they return.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
}

// NumVertices returns the number of vertices in the mesh.
func (m *Mesh) NumVertices() int { return len(m.Vertices) }

// NumIndices returns the number of index values in the mesh.
func (m *Mesh) NumIndices() int { return len(m.Indices) }

// NumTriangles returns the number of triangles described by the index buffer.
func (m *Mesh) NumTriangles() int { return len(m.Indices) / 3 }

// Triangle returns the three vertices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c Vertex) {
	a = m.Vertices[m.Indices[3*i]]
	b = m.Vertices[m.Indices[3*i+1]]
	c = m.Vertices[m.Indices[3*i+2]]
	return a, b, c
}
