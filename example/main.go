// Example renders spinning spheres and demonstrates explicit view
// disposal: satellite spheres are added and removed on a timer, and each
// removal releases the view's GPU buffers synchronously.
//
// Run with:
//
//	go run ./example/
//	go run ./example/ -texture path/to/image.png
package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/go-theft-auto/view3d"
	"github.com/go-theft-auto/view3d/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "view3d example"

	// Satellites are cycled on this period, in seconds.
	cyclePeriod = 3.0
)

var log = logrus.New()

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	texturePath := flag.String("texture", "", "PNG or JPEG to wrap around the center sphere")
	flag.Parse()

	demo := &app{texturePath: *texturePath}
	win, err := opengl.NewWindow(demo,
		opengl.WithTitle(windowTitle),
		opengl.WithSize(windowWidth, windowHeight),
		opengl.WithMSAA(4),
	)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	if err := win.Run(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// app implements view3d.RenderCallbacks.
type app struct {
	texturePath string

	renderer *opengl.Renderer
	scene    *view3d.Scene
	center   *view3d.View
	orbit    *view3d.View

	satellites []*view3d.View
	cycleClock float32
	spin       float32
	generation int

	width, height int
}

func (a *app) OnInitialize(width, height int) error {
	log.WithFields(logrus.Fields{"width": width, "height": height}).Info("initializing")
	a.width, a.height = width, height

	r, err := opengl.NewRenderer(width, height)
	if err != nil {
		return err
	}
	a.renderer = r
	a.scene = view3d.NewScene(r,
		view3d.WithCamera(view3d.Camera{
			Eye:    mgl32.Vec3{0, 0.6, 2.2},
			Center: mgl32.Vec3{0, 0, 0},
			Up:     mgl32.Vec3{0, 1, 0},
			FOV:    45,
			Near:   0.1,
			Far:    100,
		}),
	)

	tex, err := a.loadTexture()
	if err != nil {
		return err
	}

	mesh, err := view3d.UVSphere(48, 24)
	if err != nil {
		return err
	}
	a.center = view3d.NewView("center",
		view3d.WithMesh(mesh),
		view3d.WithTexture(tex),
	)
	if err := a.scene.Root().AddChild(a.center); err != nil {
		return err
	}

	box, err := view3d.Box(0.2, 0.2, 0.2)
	if err != nil {
		return err
	}
	a.orbit = view3d.NewView("orbit-box",
		view3d.WithMesh(box),
		view3d.WithPosition(mgl32.Vec3{1, 0, 0}),
		view3d.WithColor(mgl32.Vec4{0.9, 0.6, 0.2, 1}),
	)
	// Parenting the box to the sphere makes it orbit with the spin.
	return a.center.AddChild(a.orbit)
}

func (a *app) OnRenderFrame(delta float32) bool {
	a.spin += delta * 0.7
	a.center.Rotation = mgl32.QuatRotate(a.spin, mgl32.Vec3{0, 1, 0})

	a.cycleClock += delta
	if a.cycleClock >= cyclePeriod {
		a.cycleClock -= cyclePeriod
		a.cycleSatellites()
	}

	if err := a.scene.Render(a.width, a.height); err != nil {
		log.WithError(err).Error("render failed")
		return false
	}
	return true
}

func (a *app) OnResize(width, height int) {
	log.WithFields(logrus.Fields{"width": width, "height": height}).Info("resized")
	a.width, a.height = width, height
	a.renderer.Resize(width, height)
}

func (a *app) OnTerminate() {
	log.Info("terminating")
	// Dispose the tree first so GPU handles are released through their
	// owning views, then drop whatever the renderer still holds.
	a.scene.Dispose()
	a.renderer.Delete()
}

// cycleSatellites adds one satellite sphere and, once three are up,
// removes the oldest. RemoveChild disposes the view and frees its GPU
// buffers before this function returns.
func (a *app) cycleSatellites() {
	a.generation++
	slices := 8 + 4*(a.generation%6)
	mesh, err := view3d.UVSphere(slices, slices/2)
	if err != nil {
		log.WithError(err).Error("satellite mesh")
		return
	}

	angle := float32(a.generation) * 2.1
	sin, cos := math32.Sincos(angle)
	sat := view3d.NewView("satellite",
		view3d.WithMesh(mesh),
		view3d.WithScale(0.25),
		view3d.WithPosition(mgl32.Vec3{1.4 * cos, 0.3, 1.4 * sin}),
		view3d.WithColor(mgl32.Vec4{0.4, 0.7, 1, 1}),
	)
	if err := a.scene.Root().AddChild(sat); err != nil {
		log.WithError(err).Error("add satellite")
		return
	}
	a.satellites = append(a.satellites, sat)
	log.WithFields(logrus.Fields{"slices": slices, "stacks": slices / 2}).Info("satellite added")

	if len(a.satellites) > 3 {
		oldest := a.satellites[0]
		a.satellites = a.satellites[1:]
		a.scene.Root().RemoveChild(oldest)
		log.Info("oldest satellite removed and disposed")
	}
}

// loadTexture loads the -texture file, or builds a checkerboard when no
// file was given.
func (a *app) loadTexture() (*view3d.TextureData, error) {
	if a.texturePath != "" {
		tex, err := view3d.LoadTextureFile(a.texturePath)
		if err != nil {
			return nil, err
		}
		return tex.Downscale(2048), nil
	}

	const size, cell = 256, 32
	tex := view3d.NewTextureData(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				tex.SetPixel(x, y, 235, 235, 235, 255)
			} else {
				tex.SetPixel(x, y, 40, 90, 160, 255)
			}
		}
	}
	return tex, nil
}
