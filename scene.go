package view3d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MeshHandle identifies a mesh uploaded to a Renderer. Zero is never a
// valid handle.
type MeshHandle uint32

// TextureHandle identifies a texture uploaded to a Renderer. Zero means
// "no texture".
type TextureHandle uint32

// Renderer is the boundary to the rendering collaborator. It receives
// contiguous, tightly packed buffers (see VertexLayout) and flat draw
// submissions; it owns nothing in the view tree.
type Renderer interface {
	// UploadMesh copies the mesh's vertex and index buffers to the GPU
	// and returns a handle for drawing.
	UploadMesh(m *Mesh) (MeshHandle, error)

	// ReleaseMesh frees the GPU buffers behind a handle. Unknown handles
	// are ignored.
	ReleaseMesh(h MeshHandle)

	// UploadTexture copies RGBA texture data to the GPU.
	UploadTexture(t *TextureData) (TextureHandle, error)

	// ReleaseTexture frees the GPU texture behind a handle. Unknown
	// handles are ignored.
	ReleaseTexture(h TextureHandle)

	// Draw renders one frame.
	Draw(f *Frame) error

	// Resize updates the viewport size.
	Resize(width, height int)
}

// DrawItem is one mesh instance within a Frame.
type DrawItem struct {
	Mesh    MeshHandle
	Texture TextureHandle // 0 = untextured; Color is used instead
	Model   mgl32.Mat4
	Color   mgl32.Vec4
}

// Frame is the flat draw submission a Scene hands to its Renderer each
// frame. Items appear in view-tree pre-order.
type Frame struct {
	Items      []DrawItem
	View       mgl32.Mat4
	Projection mgl32.Mat4
	ClearColor mgl32.Vec4
	LightDir   mgl32.Vec3
}

// Camera describes the eye for a perspective projection.
type Camera struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3
	Up     mgl32.Vec3
	FOV    float32 // Vertical field of view, degrees
	Near   float32
	Far    float32
}

// DefaultCamera returns a camera two units back on +Z looking at the
// origin.
func DefaultCamera() Camera {
	return Camera{
		Eye:    mgl32.Vec3{0, 0, 2},
		Center: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		FOV:    45,
		Near:   0.1,
		Far:    100,
	}
}

// ViewMatrix returns the camera's view matrix.
func (c Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Center, c.Up)
}

// ProjectionMatrix returns the camera's perspective projection for the
// given aspect ratio.
func (c Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Scene owns a view tree and submits it to a Renderer. Meshes and textures
// attached to views are uploaded on first render; the resulting GPU
// handles are registered as owned resources of their view, so removing a
// view releases its GPU side synchronously.
type Scene struct {
	renderer Renderer
	root     *View

	Camera     Camera
	ClearColor mgl32.Vec4
	LightDir   mgl32.Vec3
}

// NewScene creates a scene rendering through the given renderer.
func NewScene(renderer Renderer, opts ...SceneOption) *Scene {
	s := &Scene{
		renderer:   renderer,
		root:       NewView("root"),
		Camera:     DefaultCamera(),
		ClearColor: mgl32.Vec4{0.12, 0.12, 0.14, 1},
		LightDir:   mgl32.Vec3{-0.4, -1, -0.6},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the root view. Attach content below it.
func (s *Scene) Root() *View { return s.root }

// Render walks the view tree, uploads any not-yet-uploaded geometry, and
// draws one frame at the given surface size.
func (s *Scene) Render(width, height int) error {
	frame := &Frame{
		View:       s.Camera.ViewMatrix(),
		Projection: s.Camera.ProjectionMatrix(aspect(width, height)),
		ClearColor: s.ClearColor,
		LightDir:   s.LightDir,
	}

	var uploadErr error
	s.root.Walk(func(v *View) bool {
		if !v.Visible {
			return false
		}
		if v.mesh == nil {
			return true
		}
		if err := s.ensureUploaded(v); err != nil {
			uploadErr = err
			return false
		}
		frame.Items = append(frame.Items, DrawItem{
			Mesh:    v.gpu.mesh,
			Texture: v.gpu.texture,
			Model:   v.WorldTransform(),
			Color:   v.Color,
		})
		return true
	})
	if uploadErr != nil {
		return uploadErr
	}
	return s.renderer.Draw(frame)
}

// Dispose releases the whole view tree, including uploaded GPU resources.
// The scene must not be rendered again afterward.
func (s *Scene) Dispose() {
	s.root.Dispose()
}

// ensureUploaded uploads the view's mesh and texture once and ties the GPU
// handles to the view's lifetime.
func (s *Scene) ensureUploaded(v *View) error {
	if !v.gpu.meshUploaded {
		h, err := s.renderer.UploadMesh(v.mesh)
		if err != nil {
			return fmt.Errorf("upload mesh for view %q: %w", v.name, err)
		}
		v.gpu.mesh = h
		v.gpu.meshUploaded = true
		v.OwnResource(DisposeFunc(func() { s.renderer.ReleaseMesh(h) }))
	}
	if v.texture != nil && !v.gpu.texUploaded {
		h, err := s.renderer.UploadTexture(v.texture)
		if err != nil {
			return fmt.Errorf("upload texture for view %q: %w", v.name, err)
		}
		v.gpu.texture = h
		v.gpu.texUploaded = true
		v.OwnResource(DisposeFunc(func() { s.renderer.ReleaseTexture(h) }))
	}
	return nil
}

func aspect(width, height int) float32 {
	if height == 0 {
		return 1
	}
	return float32(width) / float32(height)
}
