package session

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"glbspinner/internal/assets"
	"glbspinner/internal/rotation"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	path     string
	unloaded int
}

func (m *fakeModel) Unload() { m.unloaded++ }

type fakeLoader struct {
	loaded []*fakeModel
	fail   error
}

func (l *fakeLoader) Load(path string) (Model, error) {
	if l.fail != nil {
		return nil, l.fail
	}
	m := &fakeModel{path: path}
	l.loaded = append(l.loaded, m)
	return m, nil
}

func newTestSession(t *testing.T, loader Loader) *Session {
	t.Helper()
	s := New(Options{
		Loader: loader,
		Stager: assets.Stager{Dir: t.TempDir()},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	t.Cleanup(s.Close)
	return s
}

func writeModel(t *testing.T, name string) string {
	t.Helper()
	doc := gltf.NewDocument()
	doc.Meshes = []*gltf.Mesh{{Name: "body"}}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func TestNewSessionIsEmpty(t *testing.T) {
	s := newTestSession(t, &fakeLoader{})

	assert.Equal(t, StatusEmpty, s.Status())
	assert.False(t, s.HasModel())
	assert.Empty(t, s.FileName())
	assert.Equal(t, rotation.State{AutoRotateSpeed: rotation.DefaultSpeed}, s.Rotation())
}

func TestOpenLoadsStagedCopy(t *testing.T) {
	loader := &fakeLoader{}
	s := newTestSession(t, loader)
	src := writeModel(t, "duck.glb")

	require.NoError(t, s.Open(src))

	require.Len(t, loader.loaded, 1)
	assert.NotEqual(t, src, loader.loaded[0].path, "loader must receive the staged copy")
	assert.FileExists(t, loader.loaded[0].path)
	assert.Equal(t, StatusLoaded, s.Status())
	assert.Equal(t, "duck.glb", s.FileName())
	assert.Equal(t, 1, s.Info().Meshes)
	assert.NoError(t, s.Err())
}

func TestModelChangeDisposesPreviousAndResets(t *testing.T) {
	loader := &fakeLoader{}
	s := newTestSession(t, loader)

	require.NoError(t, s.Open(writeModel(t, "first.glb")))
	first := loader.loaded[0]

	s.Dispatch(CommandRotateRight)
	s.Dispatch(CommandToggleAutoRotate)
	s.Tick(0.5)
	require.NotZero(t, s.Rotation().DisplayedAngle)

	require.NoError(t, s.Open(writeModel(t, "second.glb")))

	assert.Equal(t, 1, first.unloaded, "previous model must be unloaded exactly once")
	assert.NoFileExists(t, first.path, "previous staged copy must be released")
	assert.Equal(t, "second.glb", s.FileName())

	state := s.Rotation()
	assert.Zero(t, state.TargetAngle)
	assert.Zero(t, state.DisplayedAngle)
	assert.False(t, state.AutoRotating)
}

func TestOnModelChangedFromAnyState(t *testing.T) {
	s := newTestSession(t, &fakeLoader{})
	prev := &fakeModel{}
	s.OnModelChanged(prev, nil, assets.Info{Name: "a.glb"})

	for i := 0; i < 7; i++ {
		s.Dispatch(CommandRotateLeft)
	}
	s.Dispatch(CommandToggleAutoRotate)
	s.Tick(12.3)

	next := &fakeModel{}
	s.OnModelChanged(next, nil, assets.Info{Name: "b.glb"})

	assert.Equal(t, 1, prev.unloaded)
	assert.Zero(t, next.unloaded)
	assert.Same(t, next, s.Model())
	assert.Zero(t, s.Rotation().TargetAngle)
	assert.Zero(t, s.Rotation().DisplayedAngle)
}

func TestOpenFailureKeepsPreviousModel(t *testing.T) {
	loader := &fakeLoader{}
	s := newTestSession(t, loader)
	require.NoError(t, s.Open(writeModel(t, "keep.glb")))
	kept := loader.loaded[0]
	s.Dispatch(CommandRotateRight)

	loader.fail = errors.New("gpu upload failed")
	err := s.Open(writeModel(t, "bad.glb"))

	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.Equal(t, StatusFailed, s.Status())
	assert.ErrorIs(t, s.Err(), ErrLoadFailed)
	assert.Same(t, kept, s.Model())
	assert.Zero(t, kept.unloaded)
	assert.Equal(t, "keep.glb", s.FileName())
	assert.InDelta(t, math.Pi/4, s.Rotation().TargetAngle, 1e-12)

	// A later success clears the failure.
	loader.fail = nil
	require.NoError(t, s.Open(writeModel(t, "next.glb")))
	assert.Equal(t, StatusLoaded, s.Status())
	assert.NoError(t, s.Err())
}

func TestOpenLoaderFailureReleasesStagedCopy(t *testing.T) {
	stageDir := t.TempDir()
	s := New(Options{
		Loader: LoaderFunc(func(string) (Model, error) { return nil, errors.New("boom") }),
		Stager: assets.Stager{Dir: stageDir},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	defer s.Close()

	require.Error(t, s.Open(writeModel(t, "x.glb")))

	entries, err := os.ReadDir(stageDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenRejectsBadFiles(t *testing.T) {
	loader := &fakeLoader{}
	s := newTestSession(t, loader)

	err := s.Open(filepath.Join(t.TempDir(), "model.obj"))
	assert.ErrorIs(t, err, assets.ErrUnsupportedFormat)

	garbage := filepath.Join(t.TempDir(), "junk.glb")
	require.NoError(t, os.WriteFile(garbage, []byte("nope"), 0o644))
	err = s.Open(garbage)
	assert.ErrorIs(t, err, assets.ErrInvalidModel)

	assert.Empty(t, loader.loaded)
	assert.Equal(t, StatusFailed, s.Status())
	assert.False(t, s.HasModel())
}

func TestDispatchIgnoredWithoutModel(t *testing.T) {
	s := newTestSession(t, &fakeLoader{})

	for _, cmd := range []Command{CommandRotateLeft, CommandRotateRight, CommandToggleAutoRotate, CommandReset} {
		assert.False(t, s.Dispatch(cmd), cmd.String())
	}
	assert.Equal(t, rotation.State{AutoRotateSpeed: rotation.DefaultSpeed}, s.Rotation())
}

func TestDispatchMapsCommands(t *testing.T) {
	s := newTestSession(t, &fakeLoader{})
	s.OnModelChanged(&fakeModel{}, nil, assets.Info{Name: "m.glb"})

	require.True(t, s.Dispatch(CommandRotateRight))
	require.True(t, s.Dispatch(CommandRotateRight))
	require.True(t, s.Dispatch(CommandRotateLeft))
	assert.Equal(t, rotation.DefaultStep, s.Rotation().TargetAngle)

	require.True(t, s.Dispatch(CommandToggleAutoRotate))
	assert.True(t, s.Rotation().AutoRotating)
	s.Tick(2.0)
	assert.InDelta(t, rotation.DefaultStep+1.0, s.Rotation().TargetAngle, 1e-12)

	require.True(t, s.Dispatch(CommandReset))
	assert.Zero(t, s.Rotation().TargetAngle)
	assert.False(t, s.Rotation().AutoRotating)
	assert.NotZero(t, s.Rotation().DisplayedAngle, "reset eases, it does not snap")

	assert.False(t, s.Dispatch(Command(99)))
}

func TestCloseUnloadsOnce(t *testing.T) {
	loader := &fakeLoader{}
	s := New(Options{
		Loader: loader,
		Stager: assets.Stager{Dir: t.TempDir()},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, s.Open(writeModel(t, "m.glb")))
	m := loader.loaded[0]

	s.Close()
	s.Close()

	assert.Equal(t, 1, m.unloaded)
	assert.NoFileExists(t, m.path)
	assert.False(t, s.HasModel())
	assert.ErrorIs(t, s.Open(writeModel(t, "late.glb")), ErrLoadFailed)
}

func TestStatusAndCommandStrings(t *testing.T) {
	assert.Equal(t, "loaded", StatusLoaded.String())
	assert.Equal(t, "Status(9)", Status(9).String())
	assert.Equal(t, "toggle-auto-rotate", CommandToggleAutoRotate.String())
	assert.Equal(t, "Command(0)", Command(0).String())
}
