package view3d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Box returns an axis-aligned box mesh centered at the origin with the
// given edge lengths. Each face has its own four vertices so normals stay
// flat across the face: 24 vertices and 36 indices, counter-clockwise
// viewed from outside. Texture coordinates cover each face 0..1.
func Box(width, height, depth float32) (*Mesh, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("%w: box %g x %g x %g (need positive extents)",
			ErrInvalidDimensions, width, height, depth)
	}
	hx, hy, hz := width/2, height/2, depth/2

	// Four corners per face in counter-clockwise order from outside.
	faces := [6]struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
	}
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	m := &Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint16, 0, 36),
	}
	for _, f := range faces {
		base := uint16(len(m.Vertices))
		for c, pos := range f.corners {
			m.Vertices = append(m.Vertices, Vertex{
				Position: pos,
				Normal:   f.normal,
				TexCoord: uvs[c],
			})
		}
		m.Indices = append(m.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return m, nil
}
