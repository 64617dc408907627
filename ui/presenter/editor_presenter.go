package presenter

import (
	"image"
	"image/color"
	"math"

	"github.com/soocke/roi-editor-go/domain/roi"
	"github.com/soocke/roi-editor-go/ui/images"
	"github.com/soocke/roi-editor-go/ui/model"
)

// Editor exposes the workspace operations driven from the canvas.
type Editor interface {
	Image() image.Image
	Controller() *roi.Controller
	HandlePointerEvent(ev roi.PointerEvent) bool
}

// CanvasView shows the composed canvas raster.
type CanvasView interface {
	UpdateCanvas(img image.Image)
}

// zoomStep is the scale applied per wheel notch.
const zoomStep = 1.25

// gesture tracks one pressed button until release.
type gesture struct {
	button         roi.Button
	startX, startY float64
	lastX, lastY   float64
	dragging       bool
}

// EditorPresenter turns raw canvas input into ROI pointer events and keeps
// the canvas raster current. A press followed by motion beyond the drag
// threshold is a drag, otherwise the release is a click. Primary drags pan
// the view; everything else is forwarded to the editor in display space.
type EditorPresenter struct {
	editor    Editor
	vp        *model.Viewport
	view      CanvasView
	threshold float64 // canvas pixels
	palette   images.OverlayPalette
	bg        color.Color

	g       *gesture
	dirty   bool
	lastImg image.Image
}

// NewEditorPresenter returns a presenter drawing into view.
func NewEditorPresenter(editor Editor, vp *model.Viewport, view CanvasView, dragThreshold int) *EditorPresenter {
	if dragThreshold < 0 {
		dragThreshold = 0
	}
	return &EditorPresenter{
		editor:    editor,
		vp:        vp,
		view:      view,
		threshold: float64(dragThreshold),
		palette:   images.DefaultOverlayPalette,
		bg:        color.Gray{Y: 48},
		dirty:     true,
	}
}

// SetColors changes the overlay palette and canvas background.
func (p *EditorPresenter) SetColors(pal images.OverlayPalette, bg color.Color) {
	if p == nil {
		return
	}
	p.palette = pal
	if bg != nil {
		p.bg = bg
	}
	p.dirty = true
}

// SetDragThreshold changes the distance a press must travel to become a drag.
func (p *EditorPresenter) SetDragThreshold(px int) {
	if p == nil || px < 0 {
		return
	}
	p.threshold = float64(px)
}

// Invalidate forces a redraw on the next Tick.
func (p *EditorPresenter) Invalidate() {
	if p != nil {
		p.dirty = true
	}
}

// Viewport returns the viewport the canvas is drawn through.
func (p *EditorPresenter) Viewport() *model.Viewport {
	if p == nil {
		return nil
	}
	return p.vp
}

// Fit resets the view to show the whole image.
func (p *EditorPresenter) Fit() {
	if p == nil || p.editor == nil {
		return
	}
	if img := p.editor.Image(); img != nil {
		p.vp.Fit(img.Bounds().Dx(), img.Bounds().Dy())
	}
	p.dirty = true
}

// Resize adapts the viewport to a new canvas size.
func (p *EditorPresenter) Resize(w, h int) {
	if p == nil {
		return
	}
	cw, ch := p.vp.CanvasSize()
	if w == cw && h == ch {
		return
	}
	p.vp.Resize(w, h)
	p.dirty = true
}

// Press starts a gesture. Presses while another button is held are ignored.
func (p *EditorPresenter) Press(b roi.Button, px, py float64) {
	if p == nil || p.g != nil || b == roi.ButtonNone {
		return
	}
	p.g = &gesture{button: b, startX: px, startY: py, lastX: px, lastY: py}
}

// Motion advances the current gesture.
func (p *EditorPresenter) Motion(px, py float64) {
	if p == nil || p.g == nil {
		return
	}
	g := p.g
	if !g.dragging {
		if math.Hypot(px-g.startX, py-g.startY) < p.threshold {
			return
		}
		g.dragging = true
		if g.button != roi.ButtonPrimary {
			p.forward(roi.EventDragStart, g.startX, g.startY, g.button)
		}
	}
	if g.button == roi.ButtonPrimary {
		p.vp.Pan(px-g.lastX, py-g.lastY)
		p.dirty = true
	} else {
		p.forward(roi.EventDragUpdate, px, py, g.button)
	}
	g.lastX, g.lastY = px, py
}

// Release ends the gesture started with the same button.
func (p *EditorPresenter) Release(b roi.Button, px, py float64) {
	if p == nil || p.g == nil || p.g.button != b {
		return
	}
	g := p.g
	p.g = nil
	if g.dragging {
		if b != roi.ButtonPrimary {
			p.forward(roi.EventDragStop, px, py, b)
		}
		return
	}
	switch b {
	case roi.ButtonPrimary:
		p.forward(roi.EventPrimaryClick, px, py, b)
	case roi.ButtonSecondary:
		p.forward(roi.EventSecondaryClick, px, py, b)
	case roi.ButtonMiddle:
		p.forward(roi.EventMiddleClick, px, py, b)
	}
}

// Wheel zooms around the pointer; positive steps zoom in.
func (p *EditorPresenter) Wheel(steps int, px, py float64) {
	if p == nil || steps == 0 {
		return
	}
	p.vp.ZoomBy(math.Pow(zoomStep, float64(steps)), px, py)
	p.dirty = true
}

// ZoomCenter zooms around the canvas center.
func (p *EditorPresenter) ZoomCenter(steps int) {
	if p == nil {
		return
	}
	w, h := p.vp.CanvasSize()
	p.Wheel(steps, float64(w)/2, float64(h)/2)
}

func (p *EditorPresenter) forward(kind roi.EventKind, px, py float64, b roi.Button) {
	if p.editor == nil {
		return
	}
	ax, ay := p.vp.ToAbsolute(px, py)
	if p.editor.HandlePointerEvent(roi.PointerEvent{Kind: kind, X: ax, Y: ay, Button: b}) {
		p.dirty = true
	}
}

// Tick redraws the canvas when something changed since the last frame.
// A newly opened image is fitted to the canvas first.
func (p *EditorPresenter) Tick() {
	if p == nil || p.editor == nil || p.view == nil {
		return
	}
	img := p.editor.Image()
	if img != p.lastImg {
		p.lastImg = img
		if img != nil {
			p.vp.Fit(img.Bounds().Dx(), img.Bounds().Dy())
		}
		p.dirty = true
	}
	if !p.dirty {
		return
	}
	p.dirty = false
	canvas := images.RenderView(img, p.vp, p.bg)
	var out image.Image = canvas
	if img != nil {
		out = images.DrawOverlay(canvas, p.editor.Controller().Shapes(), p.vp, p.palette)
	}
	p.view.UpdateCanvas(out)
}
