// Package rotation blends discrete step input with continuous auto-rotation
// and damps the displayed angle toward the target once per frame.
package rotation

import "math"

const (
	DefaultStep    = math.Pi / 4
	DefaultSpeed   = 0.5
	DefaultDamping = 5.0
)

// Config tunes the controller. Zero fields fall back to the defaults.
type Config struct {
	Step            float64 // radians per StepLeft/StepRight
	AutoRotateSpeed float64 // radians per second
	Damping         float64 // lambda of the exponential filter
}

// State is a snapshot of the controller.
type State struct {
	TargetAngle     float64
	DisplayedAngle  float64
	AutoRotating    bool
	AutoRotateSpeed float64
}

type Controller struct {
	step    float64
	damping float64
	speed   float64

	// The target is steps*step + drift. Keeping the step count integral
	// makes any sequence of steps land on an exact multiple of step.
	steps     int
	drift     float64
	displayed float64
	auto      bool
}

func New(cfg Config) *Controller {
	if cfg.Step <= 0 {
		cfg.Step = DefaultStep
	}
	if cfg.AutoRotateSpeed == 0 {
		cfg.AutoRotateSpeed = DefaultSpeed
	}
	if cfg.Damping <= 0 {
		cfg.Damping = DefaultDamping
	}
	return &Controller{
		step:    cfg.Step,
		damping: cfg.Damping,
		speed:   cfg.AutoRotateSpeed,
	}
}

// StepLeft stops auto-rotation and moves the target back one step.
func (c *Controller) StepLeft() {
	c.auto = false
	c.steps--
}

// StepRight stops auto-rotation and moves the target forward one step.
func (c *Controller) StepRight() {
	c.auto = false
	c.steps++
}

func (c *Controller) ToggleAutoRotate() {
	c.auto = !c.auto
}

// Reset sends the target back to zero and stops auto-rotation. The displayed
// angle keeps easing toward zero on subsequent ticks.
func (c *Controller) Reset() {
	c.steps = 0
	c.drift = 0
	c.auto = false
}

// HardReset zeroes target and displayed angle at once, discarding any
// in-flight damping.
func (c *Controller) HardReset() {
	c.Reset()
	c.displayed = 0
}

// Tick advances the controller by elapsed seconds.
func (c *Controller) Tick(elapsed float64) {
	if elapsed <= 0 || math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		return
	}
	if c.auto {
		c.drift += c.speed * elapsed
	}

	target := c.target()
	// 1-exp(-x) stays in [0, 1] for any x >= 0, so the step never overshoots.
	alpha := -math.Expm1(-c.damping * elapsed)
	c.displayed += (target - c.displayed) * alpha
	if alpha == 1 {
		c.displayed = target
	}
}

func (c *Controller) State() State {
	return State{
		TargetAngle:     c.target(),
		DisplayedAngle:  c.displayed,
		AutoRotating:    c.auto,
		AutoRotateSpeed: c.speed,
	}
}

func (c *Controller) TargetAngle() float64    { return c.target() }
func (c *Controller) DisplayedAngle() float64 { return c.displayed }
func (c *Controller) AutoRotating() bool      { return c.auto }

func (c *Controller) target() float64 {
	return float64(c.steps)*c.step + c.drift
}
