package view3d_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/view3d"
)

// TestVertexLayout pins the packed layout renderers rely on: 8 contiguous
// float32 values, attributes at fixed byte offsets.
func TestVertexLayout(t *testing.T) {
	assert.Equal(t, 32, view3d.VertexStride)
	assert.Equal(t, uintptr(32), unsafe.Sizeof(view3d.Vertex{}))

	layout := view3d.VertexLayout()
	require.Len(t, layout, 3)

	assert.Equal(t, "position", layout[0].Name)
	assert.Equal(t, int32(3), layout[0].Components)
	assert.Equal(t, uintptr(0), layout[0].Offset)

	assert.Equal(t, "normal", layout[1].Name)
	assert.Equal(t, int32(3), layout[1].Components)
	assert.Equal(t, uintptr(12), layout[1].Offset)

	assert.Equal(t, "texcoord", layout[2].Name)
	assert.Equal(t, int32(2), layout[2].Components)
	assert.Equal(t, uintptr(24), layout[2].Offset)
}

func TestMeshAccessors(t *testing.T) {
	mesh, err := view3d.UVSphere(4, 2)
	require.NoError(t, err)

	assert.Equal(t, 6, mesh.NumVertices())
	assert.Equal(t, 24, mesh.NumIndices())
	assert.Equal(t, 8, mesh.NumTriangles())

	a, b, c := mesh.Triangle(0)
	assert.Equal(t, mesh.Vertices[mesh.Indices[0]], a)
	assert.Equal(t, mesh.Vertices[mesh.Indices[1]], b)
	assert.Equal(t, mesh.Vertices[mesh.Indices[2]], c)
}

func TestBox(t *testing.T) {
	mesh, err := view3d.Box(1, 2, 3)
	require.NoError(t, err)
	require.Len(t, mesh.Vertices, 24)
	require.Len(t, mesh.Indices, 36)

	for _, idx := range mesh.Indices {
		assert.Less(t, int(idx), len(mesh.Vertices))
	}

	// Corners stay within the half extents and normals are axis-aligned
	// unit vectors.
	for _, v := range mesh.Vertices {
		assert.LessOrEqual(t, abs32(v.Position.X()), float32(0.5))
		assert.LessOrEqual(t, abs32(v.Position.Y()), float32(1))
		assert.LessOrEqual(t, abs32(v.Position.Z()), float32(1.5))
		assert.InDelta(t, 1.0, v.Normal.Len(), 1e-6)
	}

	// Every face winds counter-clockwise from outside.
	for i := 0; i < mesh.NumTriangles(); i++ {
		a, b, c := mesh.Triangle(i)
		face := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		assert.Greater(t, face.Dot(a.Normal), float32(0), "triangle %d", i)
	}
}

func TestBoxInvalid(t *testing.T) {
	for _, dims := range [][3]float32{
		{0, 1, 1}, {1, -1, 1}, {1, 1, 0},
	} {
		_, err := view3d.Box(dims[0], dims[1], dims[2])
		assert.ErrorIs(t, err, view3d.ErrInvalidDimensions)
	}
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
