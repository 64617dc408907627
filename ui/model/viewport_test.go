package model

import (
	"math"
	"testing"

	"github.com/soocke/roi-editor-go/domain/roi"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestViewport_FitWideImage(t *testing.T) {
	v := NewViewport(400, 400, 16)
	v.Fit(200, 100)
	if v.Zoom() != 2 {
		t.Fatalf("expected zoom 2, got %v", v.Zoom())
	}
	b := v.Bounds()
	want := roi.ViewBounds{MinX: 0, MaxY: 50, MaxX: 200, MinY: -150}
	if b != want {
		t.Fatalf("bounds: got %+v want %+v", b, want)
	}
}

func TestViewport_CanvasRoundTrip(t *testing.T) {
	v := NewViewport(300, 200, 16)
	v.Fit(150, 100)
	ax, ay := v.ToAbsolute(0, 0)
	if !near(ax, 0) || !near(ay, 0) {
		t.Fatalf("top-left canvas should map to image origin, got (%v,%v)", ax, ay)
	}
	ax, ay = v.ToAbsolute(300, 200)
	if !near(ax, 150) || !near(ay, -100) {
		t.Fatalf("bottom-right canvas should map to image corner, got (%v,%v)", ax, ay)
	}
	px, py := v.ToCanvas(75, -50)
	if !near(px, 150) || !near(py, 100) {
		t.Fatalf("image center should map to canvas center, got (%v,%v)", px, py)
	}
}

func TestViewport_Pan(t *testing.T) {
	v := NewViewport(100, 100, 16)
	v.Fit(100, 100)
	v.Pan(10, 20)
	ax, ay := v.ToAbsolute(10, 20)
	if !near(ax, 0) || !near(ay, 0) {
		t.Fatalf("content should follow the pointer, got (%v,%v)", ax, ay)
	}
}

func TestViewport_ZoomKeepsPointFixed(t *testing.T) {
	v := NewViewport(200, 100, 16)
	v.Fit(200, 100)
	before := [2]float64{}
	before[0], before[1] = v.ToAbsolute(50, 30)
	v.ZoomBy(2, 50, 30)
	if v.Zoom() != 2 {
		t.Fatalf("expected zoom 2, got %v", v.Zoom())
	}
	ax, ay := v.ToAbsolute(50, 30)
	if !near(ax, before[0]) || !near(ay, before[1]) {
		t.Fatalf("point under cursor moved: (%v,%v) -> (%v,%v)", before[0], before[1], ax, ay)
	}
}

func TestViewport_ZoomClamped(t *testing.T) {
	v := NewViewport(100, 100, 4)
	v.Fit(100, 100)
	v.ZoomBy(100, 0, 0)
	if v.Zoom() != 4 {
		t.Fatalf("expected max zoom 4, got %v", v.Zoom())
	}
	v.ZoomBy(0.0001, 0, 0)
	if v.Zoom() != 0.25 {
		t.Fatalf("expected min zoom 0.25, got %v", v.Zoom())
	}
}

func TestViewport_NilSafe(t *testing.T) {
	var v *Viewport
	v.Fit(10, 10)
	v.Pan(1, 1)
	v.ZoomBy(2, 0, 0)
	if v.Zoom() != 0 || v.Bounds() != (roi.ViewBounds{}) {
		t.Fatalf("nil viewport should be inert")
	}
}
