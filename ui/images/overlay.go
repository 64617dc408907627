package images

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/soocke/roi-editor-go/domain/roi"
)

// OverlayPalette holds the colors used to draw ROIs.
type OverlayPalette struct {
	Box      color.Color // unselected outlines and names
	Selected color.Color // handles of the selected box
	Active   color.Color // handle being dragged
}

// DefaultOverlayPalette matches the plot colors of the editor.
var DefaultOverlayPalette = OverlayPalette{
	Box:      color.White,
	Selected: color.RGBA{G: 255, A: 255},
	Active:   color.RGBA{R: 255, G: 255, A: 255},
}

const (
	boxLineWidth    = 2
	activeLineWidth = 4
)

// CanvasMapper converts display space to canvas pixels.
type CanvasMapper interface {
	ToCanvas(ax, ay float64) (float64, float64)
}

// DrawOverlay draws shapes over dst. Unselected boxes are outlined and
// labelled. The selected box is drawn as its four handles, each a line
// spanning the whole canvas, with the dragged handle emphasised.
func DrawOverlay(dst image.Image, shapes []roi.Shape, m CanvasMapper, pal OverlayPalette) image.Image {
	if dst == nil || len(shapes) == 0 || m == nil {
		return dst
	}
	dc := gg.NewContextForImage(dst)
	w, h := float64(dc.Width()), float64(dc.Height())
	for _, s := range shapes {
		p := s.Polygon
		x1, y1 := m.ToCanvas(p[0][0], p[0][1])
		x2, y2 := m.ToCanvas(p[2][0], p[2][1])
		if !s.Selected {
			dc.SetColor(pal.Box)
			dc.SetLineWidth(boxLineWidth)
			dc.DrawRectangle(x1, y1, x2-x1, y2-y1)
			dc.Stroke()
			if s.Name != "" {
				dc.DrawString(s.Name, x1+3, y1+13)
			}
			continue
		}
		handles := []struct {
			corner         roi.Corner
			ax, ay, bx, by float64
		}{
			{roi.CornerX1, x1, 0, x1, h},
			{roi.CornerY1, 0, y1, w, y1},
			{roi.CornerX2, x2, 0, x2, h},
			{roi.CornerY2, 0, y2, w, y2},
		}
		for _, hd := range handles {
			if hd.corner == s.ActiveCorner {
				dc.SetColor(pal.Active)
				dc.SetLineWidth(activeLineWidth)
			} else {
				dc.SetColor(pal.Selected)
				dc.SetLineWidth(boxLineWidth)
			}
			dc.DrawLine(hd.ax, hd.ay, hd.bx, hd.by)
			dc.Stroke()
		}
	}
	return dc.Image()
}
