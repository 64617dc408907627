package view

import (
	"github.com/soocke/roi-editor-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusBar shows the workspace summary and the latest notice.
type StatusBar interface {
	SetStatus(text string)
	Notify(msg string)
}

type statusBar struct {
	statusLbl *TLabelWidget
	noticeLbl *TLabelWidget
}

// NewStatusBar creates the status and notice labels at row, spanning span
// columns of the root grid.
func NewStatusBar(row, span int) StatusBar {
	s := &statusBar{
		statusLbl: TLabel(Style(theme.StyleStatusLabel), Anchor("w")),
		noticeLbl: TLabel(Style(theme.StyleNoticeLabel), Anchor("w")),
	}
	Grid(s.statusLbl, Row(row), Column(0), Columnspan(span), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	Grid(s.noticeLbl, Row(row+1), Column(0), Columnspan(span), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	s.statusLbl.Configure(Txt("No image."))
	s.noticeLbl.Configure(Txt("Right-click a box to select it, middle-click to remove it."))
	return s
}

func (s *statusBar) SetStatus(text string) {
	if s == nil || s.statusLbl == nil {
		return
	}
	s.statusLbl.Configure(Txt(text))
}

func (s *statusBar) Notify(msg string) {
	if s == nil || s.noticeLbl == nil {
		return
	}
	s.noticeLbl.Configure(Txt(msg))
}
