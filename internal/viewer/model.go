package viewer

import (
	"fmt"
	"path/filepath"

	"glbspinner/internal/camera"
	"glbspinner/internal/session"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// raylibModel is a model uploaded to the GPU, translated so it spins about
// its own vertical axis and rests on the floor.
type raylibModel struct {
	model  rl.Model
	bounds rl.BoundingBox // after centering
}

func loadModel(path string) (session.Model, error) {
	model := rl.LoadModel(path)
	if model.MeshCount == 0 {
		rl.UnloadModel(model)
		return nil, fmt.Errorf("no meshes decoded from %s", filepath.Base(path))
	}

	box := rl.GetModelBoundingBox(model)
	off := camera.CenterOffset(box)
	model.Transform = rl.MatrixMultiply(model.Transform, rl.MatrixTranslate(off.X, off.Y, off.Z))

	return &raylibModel{
		model:  model,
		bounds: camera.Offset(box, off),
	}, nil
}

func (m *raylibModel) Draw(angle float64) {
	rl.DrawModelEx(m.model, rl.Vector3Zero(), rl.Vector3{X: 0, Y: 1, Z: 0}, float32(angle*rl.Rad2deg), rl.Vector3One(), rl.White)
}

func (m *raylibModel) Unload() {
	rl.UnloadModel(m.model)
}
