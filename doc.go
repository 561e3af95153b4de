/*
Package view3d provides procedural triangle-mesh generation and a small
retained view tree for handing that geometry to a rendering backend.

# Overview

The package has three layers:

  - Mesh builders (UVSphere, Box) produce immutable vertex and index
    buffers in a fixed interleaved layout (position, normal, texcoord),
    ready for upload to a GPU as a triangle list with counter-clockwise,
    outward-facing winding.
  - A View tree owns meshes, textures, and any GPU-side resources
    attached to a view. Removing a view releases everything it owns
    synchronously; nothing waits for the garbage collector.
  - A Scene walks the view tree each frame, uploads geometry through the
    Renderer interface on first use, and submits a flat Frame of draw
    items. The OpenGL implementation lives in backend/opengl.

# Quick Start

	// Build geometry.
	mesh, err := view3d.UVSphere(32, 16)
	if err != nil {
	    log.Fatal(err)
	}

	// Assemble a scene.
	scene := view3d.NewScene(renderer)
	sphere := view3d.NewView("sphere", view3d.WithMesh(mesh))
	scene.Root().AddChild(sphere)

	// Render loop (driven by a backend window).
	scene.Render(width, height)

	// Explicit teardown: GPU buffers are released here, not by the GC.
	scene.Root().RemoveChild(sphere)

Rendering backends drive caller code through the RenderCallbacks
interface: OnInitialize exactly once, OnRenderFrame repeatedly, OnResize
between frames, OnTerminate exactly once. The Lifecycle type enforces
that order and is what backend/opengl.Window runs internally.
*/
package view3d
