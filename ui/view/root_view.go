package view

import (
	"image"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/roi-editor-go/config"
	"github.com/soocke/roi-editor-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Canvas      CanvasView
	Status      StatusBar
	ConfigPanel ConfigPanel
	Help        HelpWindow

	// Widgets
	ImageSelect     *TComboboxWidget
	RecordSetSelect *TComboboxWidget
	ROISelect       *TComboboxWidget
	NameText        *TextWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	UpdateCanvas(img image.Image)
	SetImages(names []string, selected int)
	SetRecordSets(names []string, selected int)
	SetROIs(names []string, selected int)
	SetROIName(name string)
	SetStatus(text string)
	Notify(msg string)
}

var _ UI = (*RootView)(nil)

// Handlers are invoked on user actions. Nil handlers are skipped.
type Handlers struct {
	Pointer PointerHandlers

	Zoom     func(steps int)
	Fit      func()
	AddFiles func(paths []string)
	Capture  func()
	Exit     func()

	SelectImage     func(idx int)
	RemoveImage     func()
	SelectRecordSet func(idx int)
	NewRecordSet    func()
	RemoveRecordSet func()
	Save            func()

	SelectROI func(idx int)
	AddROI    func()
	RemoveROI func()
	RenameROI func(name string)

	ApplyConfig func(cfg *config.Config)
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

func call(fn func()) func() {
	return func() {
		if fn != nil {
			fn()
		}
	}
}

// Build constructs the layout.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	rv.Help = NewHelpWindow()

	// Row 0: toolbar
	bar := Frame()
	Grid(bar, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	tools := []struct {
		label string
		fn    func()
	}{
		{"Add Files...", rv.openFiles(h.AddFiles)},
		{"Capture Screen", call(h.Capture)},
		{"Fit", call(h.Fit)},
		{"Zoom +", func() { zoom(h.Zoom, 1) }},
		{"Zoom -", func() { zoom(h.Zoom, -1) }},
		{"Help", rv.Help.OpenOrFocus},
		{"Exit", call(h.Exit)},
	}
	for i, t := range tools {
		btn := Button(Txt(t.label), Command(t.fn))
		Grid(btn, In(bar), Row(0), Column(i), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	}

	// Row 1: canvas and side panel
	canvasFrame := Frame()
	Grid(canvasFrame, Row(1), Column(0), Sticky("nw"))
	rv.Canvas = NewCanvasView(canvasFrame, rv.cfg.CanvasWidth, rv.cfg.CanvasHeight, h.Pointer)

	side := Frame()
	Grid(side, Row(1), Column(1), Sticky("n"), Padx("0.4m"))
	row := 0
	heading := func(text string) {
		lbl := Label(Txt(text), Anchor("w"))
		Grid(lbl, In(side), Row(row), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
		row++
	}
	combo := func(onSelect func(int)) *TComboboxWidget {
		cb := TCombobox(Values([]string{}), Width(30), State("readonly"))
		Grid(cb, In(side), Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		row++
		rv.bindSelect(cb, onSelect)
		return cb
	}
	type item struct {
		label string
		style string
		fn    func()
	}
	buttons := func(items ...item) {
		f := Frame()
		Grid(f, In(side), Row(row), Column(0), Columnspan(2), Sticky("we"))
		row++
		for i, it := range items {
			btn := TButton(Txt(it.label), Style(it.style), Command(it.fn))
			Grid(btn, In(f), Row(0), Column(i), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		}
	}

	heading("Images")
	rv.ImageSelect = combo(h.SelectImage)
	buttons(item{"Remove Image", theme.StyleDangerButton, call(h.RemoveImage)})

	heading("Record sets")
	rv.RecordSetSelect = combo(h.SelectRecordSet)
	buttons(
		item{"New", theme.StylePrimaryButton, call(h.NewRecordSet)},
		item{"Save [Ctrl+S]", theme.StylePrimaryButton, call(h.Save)},
		item{"Remove", theme.StyleDangerButton, call(h.RemoveRecordSet)},
	)

	heading("ROIs")
	rv.ROISelect = combo(h.SelectROI)
	rv.NameText = Text(Height(1), Width(30))
	Grid(rv.NameText, In(side), Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	row++
	buttons(
		item{"Rename", theme.StylePrimaryButton, func() {
			if h.RenameROI != nil {
				h.RenameROI(rv.roiName())
			}
		}},
		item{"Add ROI", theme.StylePrimaryButton, call(h.AddROI)},
		item{"Remove ROI", theme.StyleDangerButton, call(h.RemoveROI)},
	)

	heading("Settings")
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.ApplyConfig)
	rv.ConfigPanel.Build(side, row)

	// Rows 2-3: status
	rv.Status = NewStatusBar(2, 2)

	Bind(App, "<Control-s>", Command(call(h.Save)))
	Bind(App, "<plus>", Command(func() { zoom(h.Zoom, 1) }))
	Bind(App, "<KP_Add>", Command(func() { zoom(h.Zoom, 1) }))
	Bind(App, "<minus>", Command(func() { zoom(h.Zoom, -1) }))
	Bind(App, "<KP_Subtract>", Command(func() { zoom(h.Zoom, -1) }))
}

func zoom(fn func(int), steps int) {
	if fn != nil {
		fn(steps)
	}
}

func (rv *RootView) openFiles(fn func([]string)) func() {
	return func() {
		if fn == nil {
			return
		}
		paths := GetOpenFile(Title("Add images or record sets"), Multiple(true))
		if len(paths) > 0 {
			fn(paths)
		}
	}
}

func (rv *RootView) bindSelect(cb *TComboboxWidget, onSelect func(int)) {
	Bind(cb, "<<ComboboxSelected>>", Command(func() {
		if onSelect == nil {
			return
		}
		idx, err := strconv.Atoi(cb.Current(nil))
		if err != nil {
			if rv.logger != nil {
				rv.logger.Error("selection parse error", "error", err)
			}
			return
		}
		onSelect(idx)
	}))
}

func (rv *RootView) roiName() string {
	if rv.NameText == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(rv.NameText.Get("1.0", END), ""))
}

func setChoices(cb *TComboboxWidget, names []string, selected int) {
	if cb == nil {
		return
	}
	if names == nil {
		names = []string{}
	}
	cb.Configure(Values(names))
	if selected >= 0 && selected < len(names) {
		cb.Current(selected)
	}
}

// UpdateCanvas proxies to the canvas view.
func (rv *RootView) UpdateCanvas(img image.Image) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.UpdateCanvas(img)
	}
}

func (rv *RootView) SetImages(names []string, selected int) {
	if rv != nil {
		setChoices(rv.ImageSelect, names, selected)
	}
}

func (rv *RootView) SetRecordSets(names []string, selected int) {
	if rv != nil {
		setChoices(rv.RecordSetSelect, names, selected)
	}
}

func (rv *RootView) SetROIs(names []string, selected int) {
	if rv != nil {
		setChoices(rv.ROISelect, names, selected)
	}
}

// SetROIName fills the name field with the selected box's name.
func (rv *RootView) SetROIName(name string) {
	if rv == nil || rv.NameText == nil {
		return
	}
	rv.NameText.Delete("1.0", END)
	rv.NameText.Insert("1.0", name)
}

func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetStatus(text)
	}
}

func (rv *RootView) Notify(msg string) {
	if rv != nil && rv.Status != nil {
		rv.Status.Notify(msg)
	}
}
