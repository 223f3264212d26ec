package viewer

import (
	"fmt"

	"glbspinner/internal/session"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme colors - zinc dark with an indigo accent
var (
	colorBackground = rl.NewColor(9, 9, 11, 255)
	colorBar        = rl.NewColor(24, 24, 27, 235)
	colorBgElement  = rl.NewColor(39, 39, 42, 255)
	colorBgHover    = rl.NewColor(63, 63, 70, 255)
	colorAccent     = rl.NewColor(99, 102, 241, 255)
	colorAccentDim  = rl.NewColor(99, 102, 241, 40)

	colorTextPrimary   = rl.NewColor(228, 228, 231, 255)
	colorTextSecondary = rl.NewColor(161, 161, 170, 255)
	colorTextMuted     = rl.NewColor(113, 113, 122, 255)
	colorError         = rl.NewColor(248, 113, 113, 255)
)

const (
	barMaxWidth  = 640
	barHeight    = 72
	barMargin    = 24
	buttonHeight = 32
)

func initStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBar))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// controlBarBounds is the rectangle of the bottom control bar for the
// current screen size.
func controlBarBounds() rl.Rectangle {
	sw := float32(rl.GetScreenWidth())
	sh := float32(rl.GetScreenHeight())
	w := sw * 0.9
	if w > barMaxWidth {
		w = barMaxWidth
	}
	return rl.Rectangle{X: (sw - w) / 2, Y: sh - barMargin - barHeight, Width: w, Height: barHeight}
}

func (v *Viewer) DrawUI() {
	v.drawHeader()
	if !v.session.HasModel() && v.pending == "" {
		v.drawEmptyHint()
	}
	if v.pending != "" {
		v.drawLoading()
	}
	v.drawControlBar()
	v.drawNotice()
}

func (v *Viewer) drawHeader() {
	rl.DrawText("GLB", barMargin, barMargin, 28, rl.White)
	rl.DrawText("Spinner", barMargin+rl.MeasureText("GLB", 28), barMargin, 28, colorAccent)
	rl.DrawText("INTERACTIVE 3D VIEWER", barMargin, barMargin+34, 12, colorTextSecondary)
}

func (v *Viewer) drawEmptyHint() {
	drawCentered("No model loaded", float32(rl.GetScreenHeight())/2-20, 20, colorTextMuted)
	drawCentered("Drop a .glb or .gltf file to start", float32(rl.GetScreenHeight())/2+8, 14, colorTextMuted)
}

func (v *Viewer) drawLoading() {
	drawCentered(fmt.Sprintf("Loading %s...", displayName(v.pending)), float32(rl.GetScreenHeight())/2-10, 18, colorTextPrimary)
}

func (v *Viewer) drawControlBar() {
	bar := controlBarBounds()
	rl.DrawRectangleRounded(bar, 0.3, 8, colorBar)

	// Model badge
	badge := rl.Rectangle{X: bar.X + 16, Y: bar.Y + 12, Width: 48, Height: 48}
	rl.DrawRectangleRounded(badge, 0.3, 8, colorAccentDim)
	rl.DrawText("3D", int32(badge.X)+13, int32(badge.Y)+15, 18, colorAccent)

	title, subtitle, subColor := v.statusText()
	textX := int32(badge.X + badge.Width + 12)
	rl.DrawText(truncate(title, 28), textX, int32(bar.Y)+18, 16, colorTextPrimary)
	rl.DrawText(subtitle, textX, int32(bar.Y)+40, 12, subColor)

	// Buttons, right aligned
	x := bar.X + bar.Width - 16
	y := bar.Y + (bar.Height-buttonHeight)/2
	next := func(w float32) rl.Rectangle {
		x -= w
		r := rl.Rectangle{X: x, Y: y, Width: w, Height: buttonHeight}
		x -= 6
		return r
	}

	resetBounds := next(64)
	rightBounds := next(36)
	toggleBounds := next(64)
	leftBounds := next(36)

	if !v.session.HasModel() {
		gui.Disable()
	}
	if gui.Button(leftBounds, "<") {
		v.dispatch(session.CommandRotateLeft)
	}
	rotating := v.session.Rotation().AutoRotating
	label := "Play"
	if rotating {
		label = "Pause"
	}
	if gui.Toggle(toggleBounds, label, rotating) != rotating {
		v.dispatch(session.CommandToggleAutoRotate)
	}
	if gui.Button(rightBounds, ">") {
		v.dispatch(session.CommandRotateRight)
	}
	if gui.Button(resetBounds, "Reset") {
		v.dispatch(session.CommandReset)
	}
	gui.Enable()
}

// statusText returns the status panel lines for the current session state.
func (v *Viewer) statusText() (title, subtitle string, subColor rl.Color) {
	switch {
	case v.session.Status() == session.StatusFailed && v.session.HasModel():
		return v.session.FileName(), "Failed to load the last file", colorError
	case v.session.Status() == session.StatusFailed:
		return "Failed to load", "Supports .glb & .gltf", colorError
	case v.session.HasModel():
		info := v.session.Info()
		return v.session.FileName(), fmt.Sprintf("Model loaded successfully - %d meshes", info.Meshes), colorTextMuted
	default:
		return "Ready to view", "Supports .glb & .gltf", colorTextMuted
	}
}

func (v *Viewer) drawNotice() {
	if v.notice == "" || rl.GetTime()-v.noticeTime > noticeDuration {
		return
	}
	bar := controlBarBounds()
	w := rl.MeasureText(v.notice, 14)
	rl.DrawText(v.notice, int32(bar.X+bar.Width)-w, int32(bar.Y)-22, 14, colorTextSecondary)
}

func drawCentered(text string, y float32, size int32, color rl.Color) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, (int32(rl.GetScreenWidth())-w)/2, int32(y), size, color)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
