package viewer

import (
	"path/filepath"

	"glbspinner/internal/assets"
	"glbspinner/internal/session"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// keyBindings maps keyboard shortcuts to session commands.
var keyBindings = []struct {
	key int32
	cmd session.Command
}{
	{rl.KeyLeft, session.CommandRotateLeft},
	{rl.KeyA, session.CommandRotateLeft},
	{rl.KeyRight, session.CommandRotateRight},
	{rl.KeyD, session.CommandRotateRight},
	{rl.KeySpace, session.CommandToggleAutoRotate},
	{rl.KeyR, session.CommandReset},
}

func (v *Viewer) handleKeys() {
	for _, b := range keyBindings {
		if rl.IsKeyPressed(b.key) {
			v.dispatch(b.cmd)
		}
	}
	if rl.IsKeyPressed(rl.KeyH) {
		v.camera.Home()
	}
}

// handleFileDrop queues the first supported file dropped onto the window.
func (v *Viewer) handleFileDrop() {
	if !rl.IsFileDropped() {
		return
	}

	files := rl.LoadDroppedFiles()
	defer rl.UnloadDroppedFiles()

	path, rejected := pickModel(files)
	for _, f := range rejected {
		v.log.Warn("unsupported file dropped", "file", f)
	}
	if path == "" {
		if len(rejected) > 0 {
			v.setNotice("Unsupported file type: " + filepath.Ext(rejected[0]))
		}
		return
	}
	v.pending = path
	v.pendingDrawn = false
}

// pickModel returns the first supported model among files and the files
// that were not supported.
func pickModel(files []string) (string, []string) {
	var picked string
	var rejected []string
	for _, f := range files {
		if !assets.IsSupported(f) {
			rejected = append(rejected, f)
			continue
		}
		if picked == "" {
			picked = f
		}
	}
	return picked, rejected
}

func displayName(path string) string {
	return filepath.Base(path)
}
