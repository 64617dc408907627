package view

import (
	"image"
	"runtime"

	"github.com/soocke/roi-editor-go/domain/roi"
	"github.com/soocke/roi-editor-go/ui/images"
	"github.com/soocke/roi-editor-go/ui/model"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PointerHandlers receive canvas input in canvas pixels.
type PointerHandlers struct {
	Press   func(b roi.Button, x, y float64)
	Motion  func(x, y float64)
	Release func(b roi.Button, x, y float64)
	Wheel   func(steps int, x, y float64)
}

// CanvasView shows the composed editor raster in a label and forwards
// pointer input on it.
type CanvasView interface {
	UpdateCanvas(img image.Image)
	Reset()
}

type canvasView struct {
	label     *LabelWidget
	prevPhoto *Img // disposed before replacement to avoid accumulating photo data
	w, h      int
}

// NewCanvasView creates the canvas label inside parent and binds pointer
// events to h.
func NewCanvasView(parent *FrameWidget, w, h int, hd PointerHandlers) CanvasView {
	v := &canvasView{w: w, h: h}
	v.prevPhoto = NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, w, h)))))
	v.label = parent.Label(Image(v.prevPhoto), Borderwidth(1), Relief("sunken"), Cursor("crosshair"))
	Grid(v.label, Row(0), Column(0), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	v.bind(hd)
	return v
}

func (v *canvasView) bind(hd PointerHandlers) {
	for n := 1; n <= 3; n++ {
		b := model.PointerButton(runtime.GOOS, n)
		press, release, motion := buttonEvents(n)
		Bind(v.label, press, Command(func(e *Event) {
			if hd.Press != nil {
				hd.Press(b, float64(e.X), float64(e.Y))
			}
		}))
		Bind(v.label, motion, Command(func(e *Event) {
			if hd.Motion != nil {
				hd.Motion(float64(e.X), float64(e.Y))
			}
		}))
		Bind(v.label, release, Command(func(e *Event) {
			if hd.Release != nil {
				hd.Release(b, float64(e.X), float64(e.Y))
			}
		}))
	}
	Bind(v.label, "<MouseWheel>", Command(func(e *Event) {
		if hd.Wheel != nil {
			hd.Wheel(model.WheelSteps(e.Delta), float64(e.X), float64(e.Y))
		}
	}))
	// Tk 8.6 on X11 reports wheel notches as buttons 4 and 5
	for seq, steps := range map[string]int{"<Button-4>": 1, "<Button-5>": -1} {
		Bind(v.label, seq, Command(func(e *Event) {
			if hd.Wheel != nil {
				hd.Wheel(steps, float64(e.X), float64(e.Y))
			}
		}))
	}
}

func buttonEvents(n int) (press, release, motion string) {
	switch n {
	case 1:
		return "<ButtonPress-1>", "<ButtonRelease-1>", "<B1-Motion>"
	case 2:
		return "<ButtonPress-2>", "<ButtonRelease-2>", "<B2-Motion>"
	default:
		return "<ButtonPress-3>", "<ButtonRelease-3>", "<B3-Motion>"
	}
}

func (v *canvasView) UpdateCanvas(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(img)
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(pngBytes))
	v.label.Configure(Image(v.prevPhoto))
}

func (v *canvasView) Reset() {
	if v == nil {
		return
	}
	v.UpdateCanvas(image.NewRGBA(image.Rect(0, 0, v.w, v.h)))
}
