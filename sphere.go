package view3d

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// UVSphere returns a closed sphere mesh of unit diameter centered at the
// origin, tessellated by slices longitude divisions and stacks latitude
// divisions. slices must be at least 3 and stacks at least 1; stacks == 1
// yields the degenerate two-pole mesh with no triangles.
//
// The result is deterministic: identical inputs produce identical buffers.
func UVSphere(slices, stacks int) (*Mesh, error) {
	if slices < 3 || stacks < 1 {
		return nil, fmt.Errorf("%w: slices=%d stacks=%d (need slices >= 3, stacks >= 1)",
			ErrInvalidDimensions, slices, stacks)
	}
	numVertex, _ := SphereCounts(slices, stacks)
	if numVertex > MaxVertices {
		return nil, fmt.Errorf("%w: %d vertices (limit %d)", ErrMeshTooLarge, numVertex, MaxVertices)
	}
	return &Mesh{
		Vertices: SphereVertices(slices, stacks),
		Indices:  SphereIndices(slices, stacks),
	}, nil
}

// SphereCounts returns the vertex and index counts UVSphere produces for
// the given tessellation, without generating the buffers. A sphere has one
// pole vertex at each end plus stacks-1 latitude rings of slices vertices,
// and every ring band contributes 6*slices indices.
func SphereCounts(slices, stacks int) (numVertex, numIndex int) {
	numVertex = slices*(stacks-1) + 2
	numIndex = 6 * slices * (stacks - 1)
	return numVertex, numIndex
}

// SphereVertices generates the sphere vertex buffer. Ordering is fixed and
// load-bearing for SphereIndices: vertex 0 is the top pole, vertices
// 1..slices*(stacks-1) are the latitude rings from top to bottom (each ring
// wound east from the prime meridian), and the last vertex is the bottom
// pole. Positions have magnitude 0.5; normals are the unit radial
// directions; U maps the slice angle and V runs 1 at the top pole to 0 at
// the bottom.
//
// Arguments are assumed valid (see UVSphere).
func SphereVertices(slices, stacks int) []Vertex {
	numVertex, _ := SphereCounts(slices, stacks)
	verts := make([]Vertex, 0, numVertex)

	verts = append(verts, Vertex{
		Position: mgl32.Vec3{0, 0.5, 0},
		Normal:   mgl32.Vec3{0, 1, 0},
		TexCoord: mgl32.Vec2{0.5, 1},
	})
	for i := 1; i < stacks; i++ {
		elev := math32.Pi * float32(i) / float32(stacks)
		sinElev, cosElev := math32.Sincos(elev)
		for j := 0; j < slices; j++ {
			azim := 2 * math32.Pi * float32(j) / float32(slices)
			sinAzim, cosAzim := math32.Sincos(azim)

			x := cosAzim * sinElev
			y := cosElev
			z := sinAzim * sinElev

			verts = append(verts, Vertex{
				Position: mgl32.Vec3{x / 2, y / 2, z / 2},
				Normal:   mgl32.Vec3{x, y, z},
				TexCoord: mgl32.Vec2{
					float32(j) / float32(slices),
					1 - float32(i)/float32(stacks),
				},
			})
		}
	}
	verts = append(verts, Vertex{
		Position: mgl32.Vec3{0, -0.5, 0},
		Normal:   mgl32.Vec3{0, -1, 0},
		TexCoord: mgl32.Vec2{0.5, 0},
	})
	return verts
}

// SphereIndices generates the sphere index buffer matching the vertex
// ordering of SphereVertices. Triangles are emitted in three bands, in
// order: the top cap fanning pole to first ring, the middle quads between
// adjacent rings (two triangles each), and the bottom cap fanning the last
// ring to the bottom pole. All triangles are counter-clockwise viewed from
// outside.
//
// Arguments are assumed valid (see UVSphere).
func SphereIndices(slices, stacks int) []uint16 {
	_, numIndex := SphereCounts(slices, stacks)
	idx := make([]uint16, 0, numIndex)
	if stacks < 2 {
		// Two poles and no rings: no triangles.
		return idx
	}

	// Top cap: fan the pole to the first ring, wrapping the last slice
	// back to slice 0.
	for i := 1; i <= slices; i++ {
		next := i + 1
		if i == slices {
			next = 1
		}
		idx = append(idx, 0, uint16(next), uint16(i))
	}

	// Middle bands: one quad per slice between each pair of adjacent
	// rings. prev and curr are the first vertex index of each ring.
	prev := 1
	curr := 1 + slices
	for band := 0; band < stacks-2; band++ {
		for j := 0; j < slices; j++ {
			jn := j + 1
			if jn == slices {
				jn = 0
			}
			idx = append(idx,
				uint16(prev+j), uint16(prev+jn), uint16(curr+j),
				uint16(curr+j), uint16(prev+jn), uint16(curr+jn),
			)
		}
		prev += slices
		curr += slices
	}

	// Bottom cap: prev now points at the last ring, and the bottom pole
	// immediately follows it in the vertex buffer.
	bottom := prev + slices
	for i := 0; i < slices; i++ {
		next := prev + i + 1
		if i == slices-1 {
			next = prev
		}
		idx = append(idx, uint16(bottom), uint16(prev+i), uint16(next))
	}
	return idx
}
