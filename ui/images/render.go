// Package images composes the editor canvas: the visible part of the image
// scaled to the viewport with the ROI overlay drawn on top.
package images

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/soocke/roi-editor-go/ui/model"
)

// RenderView returns a canvas-sized raster showing the part of img visible
// through vp, scaled nearest-neighbour so pixels stay sharp when zoomed.
// Areas outside the image are filled with bg.
func RenderView(img image.Image, vp *model.Viewport, bg color.Color) *image.NRGBA {
	cw, ch := vp.CanvasSize()
	if cw <= 0 || ch <= 0 {
		return imaging.New(1, 1, bg)
	}
	canvas := imaging.New(cw, ch, bg)
	if img == nil || vp.Zoom() <= 0 {
		return canvas
	}
	ib := img.Bounds()
	w, h := float64(ib.Dx()), float64(ib.Dy())
	vb := vp.Bounds()
	// display y is negated image y
	x0 := math.Floor(math.Max(vb.MinX, 0))
	x1 := math.Ceil(math.Min(vb.MaxX, w))
	y0 := math.Floor(math.Max(-vb.MaxY, 0))
	y1 := math.Ceil(math.Min(-vb.MinY, h))
	if x0 >= x1 || y0 >= y1 {
		return canvas
	}
	src := image.Rect(int(x0), int(y0), int(x1), int(y1)).Add(ib.Min)
	crop := imaging.Crop(img, src)

	px0, py0 := vp.ToCanvas(x0, -y0)
	px1, py1 := vp.ToCanvas(x1, -y1)
	dw := int(math.Round(px1 - px0))
	dh := int(math.Round(py1 - py0))
	if dw < 1 || dh < 1 {
		return canvas
	}
	scaled := imaging.Resize(crop, dw, dh, imaging.NearestNeighbor)
	return imaging.Paste(canvas, scaled, image.Pt(int(math.Round(px0)), int(math.Round(py0))))
}
