package model

import (
	"math"

	"github.com/soocke/roi-editor-go/domain/roi"
)

// Viewport maps the canvas (pixels, origin top-left, y down) onto absolute
// display space (y up, image top row at y=0) with a uniform scale, so the
// image keeps its aspect ratio. The zero value maps nothing and is usable.
// No synchronization needed: updates occur on the UI thread tick.
type Viewport struct {
	canvasW, canvasH int
	zoom             float64 // canvas pixels per display unit
	minZoom, maxZoom float64
	centerX, centerY float64
}

// NewViewport returns a viewport for a canvas of w x h pixels.
func NewViewport(w, h int, maxZoom float64) *Viewport {
	if maxZoom < 1 {
		maxZoom = 1
	}
	return &Viewport{canvasW: w, canvasH: h, zoom: 1, minZoom: 1, maxZoom: maxZoom}
}

// CanvasSize returns the canvas dimensions in pixels.
func (v *Viewport) CanvasSize() (int, int) {
	if v == nil {
		return 0, 0
	}
	return v.canvasW, v.canvasH
}

// Resize changes the canvas size keeping the view center.
func (v *Viewport) Resize(w, h int) {
	if v == nil || w <= 0 || h <= 0 {
		return
	}
	v.canvasW, v.canvasH = w, h
}

// Fit zooms so that a w x h image fills the canvas without margins along
// its limiting axis, centered.
func (v *Viewport) Fit(w, h int) {
	if v == nil || w <= 0 || h <= 0 || v.canvasW <= 0 || v.canvasH <= 0 {
		return
	}
	v.zoom = math.Min(float64(v.canvasW)/float64(w), float64(v.canvasH)/float64(h))
	v.minZoom = v.zoom / 4
	if v.maxZoom < v.zoom {
		v.maxZoom = v.zoom
	}
	v.centerX, v.centerY = float64(w)/2, -float64(h)/2
}

// Zoom returns the current scale in canvas pixels per display unit.
func (v *Viewport) Zoom() float64 {
	if v == nil {
		return 0
	}
	return v.zoom
}

// Bounds returns the visible rectangle in absolute display space.
func (v *Viewport) Bounds() roi.ViewBounds {
	if v == nil || v.zoom <= 0 {
		return roi.ViewBounds{}
	}
	hw := float64(v.canvasW) / (2 * v.zoom)
	hh := float64(v.canvasH) / (2 * v.zoom)
	return roi.ViewBounds{
		MinX: v.centerX - hw,
		MaxY: v.centerY + hh,
		MaxX: v.centerX + hw,
		MinY: v.centerY - hh,
	}
}

// ToAbsolute converts a canvas pixel position to display space.
func (v *Viewport) ToAbsolute(px, py float64) (float64, float64) {
	if v == nil || v.zoom <= 0 {
		return 0, 0
	}
	b := v.Bounds()
	return b.MinX + px/v.zoom, b.MaxY - py/v.zoom
}

// ToCanvas converts a display space position to canvas pixels.
func (v *Viewport) ToCanvas(ax, ay float64) (float64, float64) {
	if v == nil {
		return 0, 0
	}
	b := v.Bounds()
	return (ax - b.MinX) * v.zoom, (b.MaxY - ay) * v.zoom
}

// Pan moves the content by (dx, dy) canvas pixels, following the pointer.
func (v *Viewport) Pan(dx, dy float64) {
	if v == nil || v.zoom <= 0 {
		return
	}
	v.centerX -= dx / v.zoom
	v.centerY += dy / v.zoom
}

// ZoomBy scales the view by factor keeping the display point under the
// canvas position (px, py) fixed. The zoom is clamped to the allowed range.
func (v *Viewport) ZoomBy(factor, px, py float64) {
	if v == nil || v.zoom <= 0 || factor <= 0 {
		return
	}
	ax, ay := v.ToAbsolute(px, py)
	z := math.Max(v.minZoom, math.Min(v.maxZoom, v.zoom*factor))
	v.zoom = z
	v.centerX = ax - px/z + float64(v.canvasW)/(2*z)
	v.centerY = ay + py/z - float64(v.canvasH)/(2*z)
}
