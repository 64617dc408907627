package presenter

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/soocke/roi-editor-go/domain/workspace"
)

// StatusSource provides the workspace summary.
type StatusSource interface {
	Status() workspace.Status
}

// StatusView sets the status line.
type StatusView interface{ SetStatus(string) }

// StatusPresenter formats the workspace summary and the zoom level into the
// status line. The view is only touched when the text changes.
type StatusPresenter struct {
	src    StatusSource
	zoom   func() float64
	view   StatusView
	latest string
}

func NewStatusPresenter(src StatusSource, zoom func() float64, view StatusView) *StatusPresenter {
	return &StatusPresenter{src: src, zoom: zoom, view: view}
}

// Tick refreshes the status line.
func (p *StatusPresenter) Tick() {
	if p == nil || p.src == nil || p.view == nil {
		return
	}
	z := 0.0
	if p.zoom != nil {
		z = p.zoom()
	}
	text := FormatStatus(p.src.Status(), z)
	if text == p.latest {
		return
	}
	p.latest = text
	p.view.SetStatus(text)
}

// FormatStatus renders a one-line summary, e.g.
// "shot.png 1,920x1,080 (2.1 MP) | roi_shot_(1).json* | 3 ROIs | 150%".
func FormatStatus(s workspace.Status, zoom float64) string {
	if s.Image == "" {
		return "No image. Add images or record sets to start."
	}
	parts := make([]string, 0, 4)
	img := s.Image
	if s.Width > 0 && s.Height > 0 {
		img = fmt.Sprintf("%s %sx%s (%sP)", s.Image,
			humanize.Comma(int64(s.Width)), humanize.Comma(int64(s.Height)),
			humanize.SIWithDigits(float64(s.Width*s.Height), 1, ""))
	}
	parts = append(parts, img)
	if s.RecordSet == "" {
		parts = append(parts, "no record set")
	} else {
		set := s.RecordSet
		if s.Dirty {
			set += "*"
		}
		parts = append(parts, set, fmt.Sprintf("%d ROI%s", s.ROIs, plural(s.ROIs)))
	}
	if zoom > 0 {
		parts = append(parts, fmt.Sprintf("%.0f%%", zoom*100))
	}
	return strings.Join(parts, " | ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
