package view3d_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/view3d"
)

func TestViewAddRemove(t *testing.T) {
	root := view3d.NewView("root")
	child := view3d.NewView("child")

	require.NoError(t, root.AddChild(child))
	assert.Same(t, root, child.Parent())
	assert.Equal(t, []*view3d.View{child}, root.Children())

	// A view cannot be owned twice.
	other := view3d.NewView("other")
	assert.Error(t, other.AddChild(child))

	// Nor added to itself.
	assert.Error(t, root.AddChild(root))

	assert.True(t, root.RemoveChild(child))
	assert.Empty(t, root.Children())
	assert.Nil(t, child.Parent())
	assert.True(t, child.Disposed())

	// Removing again reports not-a-child.
	assert.False(t, root.RemoveChild(child))
}

// TestViewRemovalDisposesSubtree verifies the ownership contract: removing
// a view releases every resource in its subtree before RemoveChild
// returns. Nothing is deferred to the garbage collector.
func TestViewRemovalDisposesSubtree(t *testing.T) {
	root := view3d.NewView("root")
	parent := view3d.NewView("parent")
	child := view3d.NewView("child")
	require.NoError(t, root.AddChild(parent))
	require.NoError(t, parent.AddChild(child))

	var released []string
	parent.OwnResource(view3d.DisposeFunc(func() { released = append(released, "parent") }))
	child.OwnResource(view3d.DisposeFunc(func() { released = append(released, "child") }))

	require.True(t, root.RemoveChild(parent))

	// Children release before the parent's own resources.
	assert.Equal(t, []string{"child", "parent"}, released)
	assert.True(t, parent.Disposed())
	assert.True(t, child.Disposed())
}

func TestViewDisposeIdempotent(t *testing.T) {
	v := view3d.NewView("v")
	count := 0
	v.OwnResource(view3d.DisposeFunc(func() { count++ }))

	v.Dispose()
	v.Dispose()
	assert.Equal(t, 1, count)
}

func TestViewResourcesReleasedInReverseOrder(t *testing.T) {
	v := view3d.NewView("v")
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		v.OwnResource(view3d.DisposeFunc(func() { order = append(order, i) }))
	}
	v.Dispose()
	assert.Equal(t, []int{2, 1, 0}, order)
}

func TestViewOwnResourceAfterDispose(t *testing.T) {
	v := view3d.NewView("v")
	v.Dispose()

	released := false
	v.OwnResource(view3d.DisposeFunc(func() { released = true }))
	assert.True(t, released, "late registrations release immediately instead of leaking")
}

func TestViewAddToDisposed(t *testing.T) {
	v := view3d.NewView("v")
	v.Dispose()
	assert.Error(t, v.AddChild(view3d.NewView("child")))
	assert.Error(t, view3d.NewView("p").AddChild(v))
}

func TestViewWalkOrder(t *testing.T) {
	root := view3d.NewView("root")
	a := view3d.NewView("a")
	b := view3d.NewView("b")
	a1 := view3d.NewView("a1")
	require.NoError(t, root.AddChild(a))
	require.NoError(t, root.AddChild(b))
	require.NoError(t, a.AddChild(a1))

	var names []string
	root.Walk(func(v *view3d.View) bool {
		names = append(names, v.Name())
		return true
	})
	assert.Equal(t, []string{"root", "a", "a1", "b"}, names)

	// Returning false prunes the subtree.
	names = nil
	root.Walk(func(v *view3d.View) bool {
		names = append(names, v.Name())
		return v.Name() != "a"
	})
	assert.Equal(t, []string{"root", "a", "b"}, names)
}

func TestViewWorldTransform(t *testing.T) {
	parent := view3d.NewView("parent", view3d.WithPosition(mgl32.Vec3{1, 0, 0}))
	child := view3d.NewView("child", view3d.WithPosition(mgl32.Vec3{0, 2, 0}))
	require.NoError(t, parent.AddChild(child))

	origin := mgl32.Vec4{0, 0, 0, 1}
	world := child.WorldTransform().Mul4x1(origin)
	assert.InDelta(t, 1, world.X(), 1e-6)
	assert.InDelta(t, 2, world.Y(), 1e-6)
	assert.InDelta(t, 0, world.Z(), 1e-6)
}

func TestViewScaleTransform(t *testing.T) {
	v := view3d.NewView("v", view3d.WithScale(2), view3d.WithPosition(mgl32.Vec3{0, 0, 1}))
	p := v.LocalTransform().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 2, p.X(), 1e-6)
	assert.InDelta(t, 1, p.Z(), 1e-6)
}
