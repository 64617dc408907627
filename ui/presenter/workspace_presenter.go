package presenter

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/soocke/roi-editor-go/domain/roi"
	"github.com/soocke/roi-editor-go/domain/workspace"
	"github.com/soocke/roi-editor-go/ui/model"
)

// Workspace narrows the workspace operations behind the side panel.
type Workspace interface {
	AddPaths(paths ...string) (images, recordSets int)
	ImagePaths() []string
	RecordSetPaths() []string
	SelectedImage() int
	SelectedRecordSet() int
	SelectImage(idx int) error
	RemoveImage(idx int)
	CreateRecordSet() (int, error)
	SelectRecordSet(idx int) error
	RemoveRecordSet(idx int)
	SaveRecordSet() (string, error)
	AddROI(bounds roi.ViewBounds) (int, error)
	RenameROI(idx int, name string)
	RemoveROI(idx int)
	SelectROI(idx int)
	CaptureScreen(s workspace.Snapshotter) (string, error)
	Controller() *roi.Controller
}

// ListView shows the file lists, the ROI list and user notices.
type ListView interface {
	SetImages(names []string, selected int)
	SetRecordSets(names []string, selected int)
	SetROIs(names []string, selected int)
	SetROIName(name string)
	Notify(msg string)
}

// Canvas is the part of the editor presenter the side panel needs.
type Canvas interface {
	Invalidate()
	Viewport() *model.Viewport
}

// listState is what was last pushed for one list.
type listState struct {
	names    []string
	selected int
	pushed   bool
}

func (s *listState) changed(names []string, selected int) bool {
	if s.pushed && s.selected == selected && slices.Equal(s.names, names) {
		return false
	}
	s.names, s.selected, s.pushed = names, selected, true
	return true
}

// WorkspacePresenter handles the side panel commands and keeps its lists in
// sync with the workspace.
type WorkspacePresenter struct {
	ws      Workspace
	canvas  Canvas
	view    ListView
	snap    workspace.Snapshotter
	logger  *slog.Logger
	imgs    listState
	sets    listState
	rois    listState
	lastSel int
}

// NewWorkspacePresenter wires the side panel. snap may be nil when screen
// capture is unavailable.
func NewWorkspacePresenter(ws Workspace, canvas Canvas, view ListView, snap workspace.Snapshotter, logger *slog.Logger) *WorkspacePresenter {
	return &WorkspacePresenter{ws: ws, canvas: canvas, view: view, snap: snap, logger: logger, lastSel: -1}
}

func (p *WorkspacePresenter) ready() bool { return p != nil && p.ws != nil && p.view != nil }

func (p *WorkspacePresenter) fail(msg string, err error, args ...any) {
	if p.logger != nil {
		p.logger.Error(msg, append(args, "error", err)...)
	}
	p.view.Notify(fmt.Sprintf("%s: %v", msg, err))
}

func (p *WorkspacePresenter) redraw() {
	if p.canvas != nil {
		p.canvas.Invalidate()
	}
}

// AddPaths registers dropped or opened files.
func (p *WorkspacePresenter) AddPaths(paths ...string) {
	if !p.ready() || len(paths) == 0 {
		return
	}
	ni, nr := p.ws.AddPaths(paths...)
	if p.logger != nil {
		p.logger.Info("paths added", "images", ni, "record_sets", nr)
	}
	if skipped := len(paths) - ni - nr; skipped > 0 {
		p.view.Notify(fmt.Sprintf("added %d image(s), %d record set(s), skipped %d", ni, nr, skipped))
	}
}

// SelectImage opens the image at idx.
func (p *WorkspacePresenter) SelectImage(idx int) {
	if !p.ready() {
		return
	}
	if err := p.ws.SelectImage(idx); err != nil {
		p.fail("open image", err, "index", idx)
		return
	}
	p.redraw()
}

// RemoveImage forgets the selected image.
func (p *WorkspacePresenter) RemoveImage() {
	if !p.ready() {
		return
	}
	p.ws.RemoveImage(p.ws.SelectedImage())
	p.redraw()
}

// NewRecordSet creates a record set for the open image and opens it.
func (p *WorkspacePresenter) NewRecordSet() {
	if !p.ready() {
		return
	}
	idx, err := p.ws.CreateRecordSet()
	if err != nil {
		p.fail("new record set", err)
		return
	}
	p.SelectRecordSet(idx)
}

// SelectRecordSet opens the record set at idx.
func (p *WorkspacePresenter) SelectRecordSet(idx int) {
	if !p.ready() {
		return
	}
	if err := p.ws.SelectRecordSet(idx); err != nil {
		p.fail("open record set", err, "index", idx)
		return
	}
	p.redraw()
}

// RemoveRecordSet forgets the selected record set.
func (p *WorkspacePresenter) RemoveRecordSet() {
	if !p.ready() {
		return
	}
	p.ws.RemoveRecordSet(p.ws.SelectedRecordSet())
	p.redraw()
}

// Save writes the open record set.
func (p *WorkspacePresenter) Save() {
	if !p.ready() {
		return
	}
	path, err := p.ws.SaveRecordSet()
	if err != nil {
		p.fail("save", err, "path", path)
		return
	}
	p.view.Notify("saved " + filepath.Base(path))
}

// Capture snapshots the screen and opens the result.
func (p *WorkspacePresenter) Capture() {
	if !p.ready() {
		return
	}
	if p.snap == nil {
		p.view.Notify("screen capture unavailable")
		return
	}
	path, err := p.ws.CaptureScreen(p.snap)
	if err != nil {
		p.fail("capture", err)
		return
	}
	if p.logger != nil {
		p.logger.Info("screen captured", "path", path)
	}
	p.redraw()
}

// AddROI places a new box in the visible part of the image.
func (p *WorkspacePresenter) AddROI() {
	if !p.ready() || p.canvas == nil {
		return
	}
	if _, err := p.ws.AddROI(p.canvas.Viewport().Bounds()); err != nil {
		p.fail("add roi", err)
		return
	}
	p.redraw()
}

// RenameROI renames the selected box.
func (p *WorkspacePresenter) RenameROI(name string) {
	if !p.ready() {
		return
	}
	idx := p.selectedROI()
	if idx < 0 {
		p.view.Notify("select a roi to rename")
		return
	}
	p.ws.RenameROI(idx, name)
	p.redraw()
}

// RemoveROI deletes the selected box.
func (p *WorkspacePresenter) RemoveROI() {
	if !p.ready() {
		return
	}
	if idx := p.selectedROI(); idx >= 0 {
		p.ws.RemoveROI(idx)
		p.redraw()
	}
}

// SelectROI selects the box at idx for editing.
func (p *WorkspacePresenter) SelectROI(idx int) {
	if !p.ready() {
		return
	}
	p.ws.SelectROI(idx)
	p.redraw()
}

func (p *WorkspacePresenter) selectedROI() int {
	idx, _, ok := p.ws.Controller().Collection().Edit()
	if !ok {
		return -1
	}
	return idx
}

// Tick pushes list changes to the view.
func (p *WorkspacePresenter) Tick() {
	if !p.ready() {
		return
	}
	if names := baseNames(p.ws.ImagePaths()); p.imgs.changed(names, p.ws.SelectedImage()) {
		p.view.SetImages(names, p.imgs.selected)
	}
	if names := baseNames(p.ws.RecordSetPaths()); p.sets.changed(names, p.ws.SelectedRecordSet()) {
		p.view.SetRecordSets(names, p.sets.selected)
	}
	boxes := p.ws.Controller().Collection().Boxes()
	names := make([]string, len(boxes))
	for i, b := range boxes {
		names[i] = b.Name
	}
	sel := p.selectedROI()
	if p.rois.changed(names, sel) {
		p.view.SetROIs(names, sel)
	}
	if sel != p.lastSel {
		p.lastSel = sel
		if sel >= 0 {
			p.view.SetROIName(names[sel])
		} else {
			p.view.SetROIName("")
		}
	}
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, s := range paths {
		out[i] = filepath.Base(s)
	}
	return out
}
