// Package viewer runs the window: it feeds frame time and user input into the
// session and draws the model, the stage and the control bar.
package viewer

import (
	"context"
	"log/slog"
	"math"

	"glbspinner/internal/assets"
	"glbspinner/internal/camera"
	"glbspinner/internal/clock"
	"glbspinner/internal/config"
	"glbspinner/internal/rotation"
	"glbspinner/internal/session"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jonboulle/clockwork"
)

const noticeDuration = 3.0 // seconds

type Viewer struct {
	cfg     *config.Config
	log     *slog.Logger
	session *session.Session
	camera  *camera.OrbitCamera
	clock   *clock.FrameClock

	dragging bool

	// A dropped file is opened one frame after it arrives so the loading
	// overlay gets drawn first.
	pending      string
	pendingDrawn bool

	notice     string
	noticeTime float64
}

func New(cfg *config.Config, log *slog.Logger) *Viewer {
	if log == nil {
		log = slog.Default()
	}
	cam := camera.New(cfg.Camera.Distance, cfg.Camera.Fovy)
	cam.LookSpeed = cfg.Camera.LookSpeed
	cam.ZoomSpeed = cfg.Camera.ZoomSpeed

	return &Viewer{
		cfg: cfg,
		log: log,
		session: session.New(session.Options{
			Loader: session.LoaderFunc(loadModel),
			Stager: assets.Stager{Dir: cfg.Staging.Dir},
			Rotation: rotation.Config{
				Step:            cfg.Rotation.StepDegrees * math.Pi / 180,
				AutoRotateSpeed: cfg.Rotation.AutoRotateSpeed,
				Damping:         cfg.Rotation.Damping,
			},
			Logger: log,
		}),
		camera: cam,
		clock:  clock.New(clockwork.NewRealClock(), cfg.MaxFrameDuration()),
	}
}

// Run opens the window and blocks until it is closed or ctx is done. If
// initial is not empty that model is loaded first.
func (v *Viewer) Run(ctx context.Context, initial string) error {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if v.cfg.Window.HighDPI {
		flags |= rl.FlagWindowHighdpi
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(v.cfg.Window.Width, v.cfg.Window.Height, v.cfg.Window.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(v.cfg.Window.TargetFPS)
	initStyle()

	// Models hold GPU resources; release them while the context is alive.
	defer v.session.Close()

	if initial != "" {
		v.open(initial)
	}

	v.log.Info("viewer started", "width", v.cfg.Window.Width, "height", v.cfg.Window.Height)
	for !rl.WindowShouldClose() {
		if err := ctx.Err(); err != nil {
			v.log.Info("viewer stopping", "reason", context.Cause(ctx))
			break
		}
		v.Update()
		v.Draw()
	}
	return nil
}

func (v *Viewer) Update() {
	if v.pending != "" && v.pendingDrawn {
		path := v.pending
		v.pending = ""
		v.pendingDrawn = false
		v.open(path)
	}

	dt := v.clock.Tick()

	v.handleFileDrop()
	v.handleKeys()
	v.handlePointer()

	v.session.Tick(dt)
}

func (v *Viewer) open(path string) {
	if err := v.session.Open(path); err != nil {
		v.setNotice("Failed to load " + displayName(path))
	} else {
		if m, ok := v.session.Model().(*raylibModel); ok {
			v.camera.Frame(m.bounds)
		}
		v.setNotice("Loaded " + v.session.FileName())
	}
	// Loading blocks the loop; keep that time out of the animation.
	v.clock.Restart()
}

func (v *Viewer) dispatch(cmd session.Command) {
	if v.session.Dispatch(cmd) && cmd == session.CommandReset {
		v.camera.Home()
	}
}

func (v *Viewer) handlePointer() {
	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !rl.CheckCollisionPointRec(mouse, controlBarBounds()) {
		v.dragging = true
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		v.dragging = false
	}

	v.camera.Update(camera.Input{
		Dragging:   v.dragging,
		MouseDelta: rl.GetMouseDelta(),
		Wheel:      rl.GetMouseWheelMove(),
	})
}

func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	rl.BeginMode3D(v.camera.GetRaylibCamera())
	v.drawStage()
	if m, ok := v.session.Model().(*raylibModel); ok {
		m.Draw(v.session.Rotation().DisplayedAngle)
	}
	rl.EndMode3D()

	v.DrawUI()
	rl.EndDrawing()

	if v.pending != "" {
		v.pendingDrawn = true
	}
}

// drawStage draws a floor grid scaled to the model.
func (v *Viewer) drawStage() {
	spacing := float32(0.25)
	if m, ok := v.session.Model().(*raylibModel); ok {
		size := rl.Vector3Subtract(m.bounds.Max, m.bounds.Min)
		extent := float32(math.Max(float64(size.X), float64(size.Z)))
		if extent > 0 {
			spacing = extent / 4
		}
	}
	rl.DrawGrid(24, spacing)
}

func (v *Viewer) setNotice(msg string) {
	v.notice = msg
	v.noticeTime = rl.GetTime()
}
