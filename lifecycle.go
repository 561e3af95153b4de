package view3d

import "errors"

// Lifecycle state errors.
var (
	ErrNotInitialized     = errors.New("view3d: lifecycle not initialized")
	ErrAlreadyInitialized = errors.New("view3d: lifecycle already initialized")
	ErrTerminated         = errors.New("view3d: lifecycle terminated")
)

// RenderCallbacks is the capability set a rendering backend drives caller
// code through. The backend owns the render thread and GL context; callers
// only see this fixed order:
//
//	OnInitialize   exactly once, with the initial surface size, before any
//	               other callback. Returning an error aborts the lifecycle.
//	OnRenderFrame  repeatedly, once per frame, with the elapsed seconds
//	               since the previous frame. Return false to stop rendering.
//	OnResize       between frames whenever the surface size changed, never
//	               during OnRenderFrame.
//	OnTerminate    exactly once, after the final frame.
type RenderCallbacks interface {
	OnInitialize(width, height int) error
	OnRenderFrame(delta float32) bool
	OnResize(width, height int)
	OnTerminate()
}

// CallbackFuncs adapts plain functions to RenderCallbacks. Nil fields are
// no-ops (OnRenderFrame defaults to continuing).
type CallbackFuncs struct {
	Initialize  func(width, height int) error
	RenderFrame func(delta float32) bool
	Resize      func(width, height int)
	Terminate   func()
}

func (f CallbackFuncs) OnInitialize(width, height int) error {
	if f.Initialize == nil {
		return nil
	}
	return f.Initialize(width, height)
}

func (f CallbackFuncs) OnRenderFrame(delta float32) bool {
	if f.RenderFrame == nil {
		return true
	}
	return f.RenderFrame(delta)
}

func (f CallbackFuncs) OnResize(width, height int) {
	if f.Resize != nil {
		f.Resize(width, height)
	}
}

func (f CallbackFuncs) OnTerminate() {
	if f.Terminate != nil {
		f.Terminate()
	}
}

type lifecycleState int

const (
	lifecycleNew lifecycleState = iota
	lifecycleRunning
	lifecycleTerminated
)

// Lifecycle enforces the RenderCallbacks ordering contract on behalf of a
// backend: initialize once, render repeatedly, resize only between frames,
// terminate once. Resize notifications may arrive at any time (backends
// receive them from window-system callbacks); they are coalesced and the
// latest size is delivered immediately before the next frame.
//
// Lifecycle is not safe for concurrent use; the backend must call it from
// its render thread only.
type Lifecycle struct {
	callbacks RenderCallbacks
	state     lifecycleState

	width, height int
	pendingResize bool
	pendingW      int
	pendingH      int
}

// NewLifecycle creates a lifecycle driver for the given callbacks.
func NewLifecycle(cb RenderCallbacks) *Lifecycle {
	return &Lifecycle{callbacks: cb}
}

// Size returns the most recently delivered surface size.
func (l *Lifecycle) Size() (width, height int) { return l.width, l.height }

// Initialize delivers OnInitialize with the initial surface size. It must
// be called exactly once, before Frame or Terminate.
func (l *Lifecycle) Initialize(width, height int) error {
	switch l.state {
	case lifecycleRunning:
		return ErrAlreadyInitialized
	case lifecycleTerminated:
		return ErrTerminated
	}
	if err := l.callbacks.OnInitialize(width, height); err != nil {
		// A failed initialize leaves the lifecycle dead: the contract
		// promises OnInitialize runs at most once.
		l.state = lifecycleTerminated
		return err
	}
	l.width, l.height = width, height
	l.state = lifecycleRunning
	return nil
}

// NotifyResize records a surface size change. The newest size is delivered
// via OnResize before the next frame; intermediate sizes are dropped.
// Notifications after termination are ignored.
func (l *Lifecycle) NotifyResize(width, height int) {
	if l.state == lifecycleTerminated {
		return
	}
	l.pendingResize = true
	l.pendingW, l.pendingH = width, height
}

// Frame delivers any pending resize followed by OnRenderFrame. It returns
// false when the callbacks request no further frames.
func (l *Lifecycle) Frame(delta float32) (bool, error) {
	switch l.state {
	case lifecycleNew:
		return false, ErrNotInitialized
	case lifecycleTerminated:
		return false, ErrTerminated
	}
	if l.pendingResize {
		l.pendingResize = false
		if l.pendingW != l.width || l.pendingH != l.height {
			l.width, l.height = l.pendingW, l.pendingH
			l.callbacks.OnResize(l.width, l.height)
		}
	}
	return l.callbacks.OnRenderFrame(delta), nil
}

// Terminate delivers OnTerminate. It must be called exactly once, after
// Initialize succeeded.
func (l *Lifecycle) Terminate() error {
	switch l.state {
	case lifecycleNew:
		return ErrNotInitialized
	case lifecycleTerminated:
		return ErrTerminated
	}
	l.state = lifecycleTerminated
	l.callbacks.OnTerminate()
	return nil
}
