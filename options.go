package view3d

import "github.com/go-gl/mathgl/mgl32"

// ViewOption configures a View at construction time.
type ViewOption func(*View)

// WithMesh attaches a mesh to the view.
func WithMesh(m *Mesh) ViewOption {
	return func(v *View) { v.mesh = m }
}

// WithTexture attaches texture data to the view. The Scene uploads it to
// the renderer on first use.
func WithTexture(t *TextureData) ViewOption {
	return func(v *View) { v.texture = t }
}

// WithPosition sets the view's local position.
func WithPosition(p mgl32.Vec3) ViewOption {
	return func(v *View) { v.Position = p }
}

// WithRotation sets the view's local rotation.
func WithRotation(q mgl32.Quat) ViewOption {
	return func(v *View) { v.Rotation = q }
}

// WithScale sets a uniform local scale.
func WithScale(s float32) ViewOption {
	return func(v *View) { v.Scale = mgl32.Vec3{s, s, s} }
}

// WithColor sets the tint applied to untextured geometry.
func WithColor(c mgl32.Vec4) ViewOption {
	return func(v *View) { v.Color = c }
}

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithCamera sets the scene camera.
func WithCamera(c Camera) SceneOption {
	return func(s *Scene) { s.Camera = c }
}

// WithClearColor sets the background color (RGBA, 0..1).
func WithClearColor(c mgl32.Vec4) SceneOption {
	return func(s *Scene) { s.ClearColor = c }
}

// WithLightDir sets the directional light used for shading. The vector
// points from the light toward the scene and is normalized by the backend.
func WithLightDir(d mgl32.Vec3) SceneOption {
	return func(s *Scene) { s.LightDir = d }
}
