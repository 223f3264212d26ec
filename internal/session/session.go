// Package session owns the model currently on screen and the rotation state
// that goes with it.
package session

import (
	"errors"
	"fmt"
	"log/slog"

	"glbspinner/internal/assets"
	"glbspinner/internal/rotation"
)

var ErrLoadFailed = errors.New("failed to load model")

// Model is a loaded model holding renderer resources.
type Model interface {
	Unload()
}

// Loader turns a staged file into a Model.
type Loader interface {
	Load(path string) (Model, error)
}

type LoaderFunc func(path string) (Model, error)

func (f LoaderFunc) Load(path string) (Model, error) { return f(path) }

type Status int

const (
	StatusEmpty Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

type Options struct {
	Loader   Loader
	Stager   assets.Stager
	Rotation rotation.Config
	Logger   *slog.Logger
}

type Session struct {
	loader Loader
	stager assets.Stager
	log    *slog.Logger

	rotation *rotation.Controller
	model    Model
	source   *assets.Staged
	info     assets.Info
	status   Status
	err      error
	closed   bool
}

func New(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		loader:   opts.Loader,
		stager:   opts.Stager,
		log:      log.With("component", "session"),
		rotation: rotation.New(opts.Rotation),
	}
}

// Open validates, stages and loads the model at path. On failure the
// previously loaded model, if any, stays on screen.
func (s *Session) Open(path string) error {
	if err := s.open(path); err != nil {
		s.status = StatusFailed
		s.err = err
		s.log.Warn("model rejected", "path", path, "error", err)
		return err
	}
	return nil
}

func (s *Session) open(path string) error {
	if s.closed {
		return fmt.Errorf("%w: session closed", ErrLoadFailed)
	}
	if s.loader == nil {
		return fmt.Errorf("%w: no loader configured", ErrLoadFailed)
	}

	info, err := assets.Inspect(path)
	if err != nil {
		return err
	}

	staged, err := s.stager.Stage(path, info)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	model, err := s.loader.Load(staged.Path)
	if err != nil {
		s.release(staged)
		return fmt.Errorf("%w: %s: %v", ErrLoadFailed, info.Name, err)
	}

	s.OnModelChanged(model, staged, info)
	s.log.Info("model loaded",
		"file", info.Name,
		"format", info.Format,
		"meshes", info.Meshes,
		"primitives", info.Primitives,
		"materials", info.Materials,
		"generator", info.Generator,
	)
	return nil
}

// OnModelChanged swaps in a new model. The previous model is unloaded and
// its staged copy released before the new handle is assigned, and the
// rotation snaps back to zero.
func (s *Session) OnModelChanged(model Model, source *assets.Staged, info assets.Info) {
	s.dispose()

	s.model = model
	s.source = source
	s.info = info
	s.status = StatusLoaded
	s.err = nil
	s.rotation.HardReset()
}

type Command int

const (
	CommandRotateLeft Command = iota + 1
	CommandRotateRight
	CommandToggleAutoRotate
	CommandReset
)

func (c Command) String() string {
	switch c {
	case CommandRotateLeft:
		return "rotate-left"
	case CommandRotateRight:
		return "rotate-right"
	case CommandToggleAutoRotate:
		return "toggle-auto-rotate"
	case CommandReset:
		return "reset"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Dispatch applies a user command. Commands are ignored while no model is
// loaded; the return value reports whether cmd took effect.
func (s *Session) Dispatch(cmd Command) bool {
	if s.model == nil {
		return false
	}
	switch cmd {
	case CommandRotateLeft:
		s.rotation.StepLeft()
	case CommandRotateRight:
		s.rotation.StepRight()
	case CommandToggleAutoRotate:
		s.rotation.ToggleAutoRotate()
	case CommandReset:
		s.rotation.Reset()
	default:
		return false
	}
	s.log.Debug("command", "cmd", cmd, "target", s.rotation.TargetAngle(), "auto", s.rotation.AutoRotating())
	return true
}

func (s *Session) Tick(elapsed float64) {
	s.rotation.Tick(elapsed)
}

func (s *Session) Rotation() rotation.State { return s.rotation.State() }
func (s *Session) Model() Model             { return s.model }
func (s *Session) HasModel() bool           { return s.model != nil }
func (s *Session) Info() assets.Info        { return s.info }
func (s *Session) Status() Status           { return s.status }
func (s *Session) Err() error               { return s.err }

// FileName is the name of the model on screen, empty if none.
func (s *Session) FileName() string {
	if s.model == nil {
		return ""
	}
	return s.info.Name
}

// Close unloads the model and releases its staged copy.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.dispose()
	s.status = StatusEmpty
}

func (s *Session) dispose() {
	if s.model != nil {
		s.model.Unload()
		s.model = nil
	}
	s.release(s.source)
	s.source = nil
	s.info = assets.Info{}
}

func (s *Session) release(staged *assets.Staged) {
	if err := staged.Release(); err != nil {
		s.log.Warn("release staged model", "path", staged.Path, "error", err)
	}
}
