package view3d_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/view3d"
)

// recordingCallbacks logs every delivered callback in order.
type recordingCallbacks struct {
	events    []string
	initErr   error
	stopAfter int // stop rendering after this many frames (0 = never)
	frames    int
}

func (r *recordingCallbacks) OnInitialize(w, h int) error {
	r.events = append(r.events, fmt.Sprintf("init %dx%d", w, h))
	return r.initErr
}

func (r *recordingCallbacks) OnRenderFrame(delta float32) bool {
	r.frames++
	r.events = append(r.events, "frame")
	return r.stopAfter == 0 || r.frames < r.stopAfter
}

func (r *recordingCallbacks) OnResize(w, h int) {
	r.events = append(r.events, fmt.Sprintf("resize %dx%d", w, h))
}

func (r *recordingCallbacks) OnTerminate() {
	r.events = append(r.events, "terminate")
}

func TestLifecycleOrder(t *testing.T) {
	rec := &recordingCallbacks{}
	l := view3d.NewLifecycle(rec)

	require.NoError(t, l.Initialize(800, 600))
	for i := 0; i < 3; i++ {
		more, err := l.Frame(0.016)
		require.NoError(t, err)
		assert.True(t, more)
	}
	require.NoError(t, l.Terminate())

	assert.Equal(t, []string{"init 800x600", "frame", "frame", "frame", "terminate"}, rec.events)
}

func TestLifecycleFrameBeforeInitialize(t *testing.T) {
	l := view3d.NewLifecycle(&recordingCallbacks{})
	_, err := l.Frame(0.016)
	assert.ErrorIs(t, err, view3d.ErrNotInitialized)
	assert.ErrorIs(t, l.Terminate(), view3d.ErrNotInitialized)
}

func TestLifecycleDoubleInitialize(t *testing.T) {
	l := view3d.NewLifecycle(&recordingCallbacks{})
	require.NoError(t, l.Initialize(1, 1))
	assert.ErrorIs(t, l.Initialize(1, 1), view3d.ErrAlreadyInitialized)
}

func TestLifecycleTerminateOnce(t *testing.T) {
	rec := &recordingCallbacks{}
	l := view3d.NewLifecycle(rec)
	require.NoError(t, l.Initialize(1, 1))
	require.NoError(t, l.Terminate())

	assert.ErrorIs(t, l.Terminate(), view3d.ErrTerminated)
	_, err := l.Frame(0.016)
	assert.ErrorIs(t, err, view3d.ErrTerminated)
	assert.Equal(t, []string{"init 1x1", "terminate"}, rec.events)
}

func TestLifecycleInitializeError(t *testing.T) {
	boom := errors.New("no context")
	rec := &recordingCallbacks{initErr: boom}
	l := view3d.NewLifecycle(rec)

	assert.ErrorIs(t, l.Initialize(1, 1), boom)

	// A failed initialize is terminal: OnInitialize never runs twice and
	// OnTerminate never runs at all.
	assert.ErrorIs(t, l.Initialize(1, 1), view3d.ErrTerminated)
	assert.ErrorIs(t, l.Terminate(), view3d.ErrTerminated)
	assert.Equal(t, []string{"init 1x1"}, rec.events)
}

// TestLifecycleResizeCoalescing checks that resize notifications never
// interrupt a frame: they are folded together and only the newest size is
// delivered, immediately before the next frame.
func TestLifecycleResizeCoalescing(t *testing.T) {
	rec := &recordingCallbacks{}
	l := view3d.NewLifecycle(rec)
	require.NoError(t, l.Initialize(800, 600))

	l.NotifyResize(900, 700)
	l.NotifyResize(1024, 768)
	_, err := l.Frame(0.016)
	require.NoError(t, err)

	assert.Equal(t, []string{"init 800x600", "resize 1024x768", "frame"}, rec.events)

	w, h := l.Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
}

func TestLifecycleResizeToSameSizeDropped(t *testing.T) {
	rec := &recordingCallbacks{}
	l := view3d.NewLifecycle(rec)
	require.NoError(t, l.Initialize(800, 600))

	l.NotifyResize(800, 600)
	_, err := l.Frame(0.016)
	require.NoError(t, err)
	assert.Equal(t, []string{"init 800x600", "frame"}, rec.events)
}

func TestLifecycleStopRequest(t *testing.T) {
	rec := &recordingCallbacks{stopAfter: 2}
	l := view3d.NewLifecycle(rec)
	require.NoError(t, l.Initialize(1, 1))

	more, err := l.Frame(0.016)
	require.NoError(t, err)
	assert.True(t, more)

	more, err = l.Frame(0.016)
	require.NoError(t, err)
	assert.False(t, more)
}

func TestCallbackFuncsZeroValue(t *testing.T) {
	l := view3d.NewLifecycle(view3d.CallbackFuncs{})
	require.NoError(t, l.Initialize(1, 1))
	l.NotifyResize(2, 2)

	more, err := l.Frame(0.016)
	require.NoError(t, err)
	assert.True(t, more, "nil RenderFrame keeps rendering")
	require.NoError(t, l.Terminate())
}
