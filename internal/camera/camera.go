package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitCamera circles a target point. Yaw and pitch are in degrees.
type OrbitCamera struct {
	Target    rl.Vector3
	Yaw       float32
	Pitch     float32
	Distance  float32
	Fovy      float32
	LookSpeed float32 // degrees per pixel of drag
	ZoomSpeed float32 // fraction of distance per wheel notch

	MinDistance float32
	MaxDistance float32

	home orbit
}

type orbit struct {
	target   rl.Vector3
	yaw      float32
	pitch    float32
	distance float32
}

// Input is one frame of pointer state.
type Input struct {
	Dragging   bool
	MouseDelta rl.Vector2
	Wheel      float32
}

func New(distance, fovy float32) *OrbitCamera {
	c := &OrbitCamera{
		Yaw:         90,
		Pitch:       15,
		Distance:    distance,
		Fovy:        fovy,
		LookSpeed:   0.3,
		ZoomSpeed:   0.1,
		MinDistance: 0.05,
		MaxDistance: 1000,
	}
	c.saveHome()
	return c
}

func (c *OrbitCamera) Update(in Input) {
	if in.Dragging {
		c.Yaw -= in.MouseDelta.X * c.LookSpeed
		c.Pitch += in.MouseDelta.Y * c.LookSpeed
	}

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}

	if in.Wheel != 0 {
		c.Distance *= float32(math.Pow(float64(1-c.ZoomSpeed), float64(in.Wheel)))
	}
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// Frame points the camera at the box and backs off far enough for its
// bounding sphere to fit the vertical field of view. The result becomes the
// new home view.
func (c *OrbitCamera) Frame(box rl.BoundingBox) {
	center := rl.Vector3Scale(rl.Vector3Add(box.Min, box.Max), 0.5)
	radius := rl.Vector3Length(rl.Vector3Subtract(box.Max, box.Min)) / 2
	if radius <= 0 {
		radius = 0.5
	}

	half := float64(c.Fovy) * math.Pi / 360
	dist := float32(float64(radius)/math.Sin(half)) * 1.1

	c.Target = center
	c.Distance = dist
	c.MinDistance = radius * 0.1
	c.MaxDistance = dist * 20
	c.Yaw = 90
	c.Pitch = 15
	c.saveHome()
}

// Home restores the view set by the last Frame.
func (c *OrbitCamera) Home() {
	c.Target = c.home.target
	c.Yaw = c.home.yaw
	c.Pitch = c.home.pitch
	c.Distance = c.home.distance
}

func (c *OrbitCamera) saveHome() {
	c.home = orbit{target: c.Target, yaw: c.Yaw, pitch: c.Pitch, distance: c.Distance}
}

func (c *OrbitCamera) Position() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180
	d := float64(c.Distance)

	return rl.Vector3{
		X: c.Target.X + float32(d*math.Cos(pitchRad)*math.Cos(yawRad)),
		Y: c.Target.Y + float32(d*math.Sin(pitchRad)),
		Z: c.Target.Z + float32(d*math.Cos(pitchRad)*math.Sin(yawRad)),
	}
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// CenterOffset is the translation that centers box on the vertical axis and
// rests its bottom on y=0, so rotating about Y spins the model in place.
func CenterOffset(box rl.BoundingBox) rl.Vector3 {
	return rl.Vector3{
		X: -(box.Min.X + box.Max.X) / 2,
		Y: -box.Min.Y,
		Z: -(box.Min.Z + box.Max.Z) / 2,
	}
}

// Offset returns box moved by off.
func Offset(box rl.BoundingBox, off rl.Vector3) rl.BoundingBox {
	return rl.BoundingBox{
		Min: rl.Vector3Add(box.Min, off),
		Max: rl.Vector3Add(box.Max, off),
	}
}
