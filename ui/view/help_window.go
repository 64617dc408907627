package view

import (
	"strings"

	"github.com/soocke/roi-editor-go/assets"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// HelpWindow shows the usage notes in a separate toplevel.
type HelpWindow interface {
	OpenOrFocus()
}

type helpWindow struct {
	win *ToplevelWidget
}

func NewHelpWindow() HelpWindow { return &helpWindow{} }

func (v *helpWindow) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("ROI Editor Help")
	v.win = win
	lines := strings.Count(assets.HelpText, "\n") + 1
	txt := win.Text(Width(80), Height(lines))
	Grid(txt, Row(0), Column(0), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
	txt.Insert("1.0", assets.HelpText)
	txt.Configure(State("disabled"))
	closeBtn := win.Button(Txt("Close [Esc]"), Command(v.destroy))
	Grid(closeBtn, Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Escape>", Command(v.destroy))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.destroy)
}

func (v *helpWindow) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}
