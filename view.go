package view3d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Disposable is a resource released by an explicit call, such as a GPU
// buffer or texture registered with a View.
type Disposable interface {
	Dispose()
}

// DisposeFunc adapts a plain function to the Disposable interface.
type DisposeFunc func()

// Dispose calls f.
func (f DisposeFunc) Dispose() { f() }

// View is a node in a scene tree. A view owns its children and any
// resources attached with OwnResource; removing a view from its parent
// disposes the whole subtree synchronously. Critical resources (GPU
// buffers, textures) must never rely on garbage collection timing, so
// disposal is always an explicit, immediate operation.
//
// Views are not safe for concurrent mutation.
type View struct {
	name string

	// Position, Rotation, and Scale form the view's local transform,
	// applied in scale-rotate-translate order.
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3

	// Color tints untextured geometry (RGBA, 0..1).
	Color mgl32.Vec4

	// Visible excludes the view and its subtree from rendering when false.
	Visible bool

	mesh    *Mesh
	texture *TextureData

	parent    *View
	children  []*View
	resources []Disposable
	disposed  bool

	// Backend bookkeeping, managed by Scene.
	gpu viewGPU
}

// viewGPU tracks per-view handles a Scene has uploaded to its Renderer.
type viewGPU struct {
	mesh         MeshHandle
	texture      TextureHandle
	meshUploaded bool
	texUploaded  bool
}

// NewView creates a view with identity transform and the given options.
func NewView(name string, opts ...ViewOption) *View {
	v := &View{
		name:     name,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Color:    mgl32.Vec4{1, 1, 1, 1},
		Visible:  true,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Name returns the name the view was created with.
func (v *View) Name() string { return v.name }

// Mesh returns the view's mesh, or nil if it has none.
func (v *View) Mesh() *Mesh { return v.mesh }

// Texture returns the view's texture data, or nil if it has none.
func (v *View) Texture() *TextureData { return v.texture }

// Parent returns the view's parent, or nil for a detached or root view.
func (v *View) Parent() *View { return v.parent }

// Children returns the view's children in insertion order.
// The returned slice must not be modified.
func (v *View) Children() []*View { return v.children }

// Disposed reports whether the view has been disposed.
func (v *View) Disposed() bool { return v.disposed }

// AddChild appends child to the view's children, taking ownership of it.
// It fails if the child already has a parent or either view is disposed.
func (v *View) AddChild(child *View) error {
	if v.disposed || child.disposed {
		return fmt.Errorf("view3d: add %q to %q: view is disposed", child.name, v.name)
	}
	if child.parent != nil {
		return fmt.Errorf("view3d: add %q to %q: already owned by %q",
			child.name, v.name, child.parent.name)
	}
	if child == v {
		return fmt.Errorf("view3d: add %q to itself", v.name)
	}
	child.parent = v
	v.children = append(v.children, child)
	return nil
}

// RemoveChild detaches child and disposes it and its entire subtree
// immediately, releasing every owned resource. It returns false if child
// is not a direct child of v.
func (v *View) RemoveChild(child *View) bool {
	for i, c := range v.children {
		if c == child {
			v.children = append(v.children[:i], v.children[i+1:]...)
			child.parent = nil
			child.Dispose()
			return true
		}
	}
	return false
}

// OwnResource registers a resource to be released when the view is
// disposed. Resources are released in reverse registration order.
func (v *View) OwnResource(d Disposable) {
	if v.disposed {
		// Late registration on a dead view: release immediately rather
		// than leak.
		d.Dispose()
		return
	}
	v.resources = append(v.resources, d)
}

// Dispose releases the view's subtree and owned resources. Children are
// disposed before the view's own resources. Dispose is idempotent.
func (v *View) Dispose() {
	if v.disposed {
		return
	}
	v.disposed = true
	for _, c := range v.children {
		c.parent = nil
		c.Dispose()
	}
	v.children = nil
	for i := len(v.resources) - 1; i >= 0; i-- {
		v.resources[i].Dispose()
	}
	v.resources = nil
}

// Walk calls fn for v and every descendant in pre-order. If fn returns
// false the subtree below that view is skipped.
func (v *View) Walk(fn func(*View) bool) {
	if !fn(v) {
		return
	}
	for _, c := range v.children {
		c.Walk(fn)
	}
}

// LocalTransform returns the view's transform relative to its parent.
func (v *View) LocalTransform() mgl32.Mat4 {
	t := mgl32.Translate3D(v.Position.X(), v.Position.Y(), v.Position.Z())
	r := v.Rotation.Mat4()
	s := mgl32.Scale3D(v.Scale.X(), v.Scale.Y(), v.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// WorldTransform returns the view's transform composed with all ancestors.
func (v *View) WorldTransform() mgl32.Mat4 {
	if v.parent == nil {
		return v.LocalTransform()
	}
	return v.parent.WorldTransform().Mul4(v.LocalTransform())
}
