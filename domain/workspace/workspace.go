// Package workspace holds the editor session: the known images and record
// sets, which of them are open, and the controller editing the open record
// set over the open image.
package workspace

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/soocke/roi-editor-go/domain/imagefile"
	"github.com/soocke/roi-editor-go/domain/records"
	"github.com/soocke/roi-editor-go/domain/roi"
)

var (
	// ErrNoImage is returned by operations that need an open image.
	ErrNoImage = errors.New("no image selected")
	// ErrNoRecordSet is returned by operations that need an open record set.
	ErrNoRecordSet = errors.New("no record set selected")
)

// ImageSource decodes images by path.
type ImageSource interface {
	Open(path string) (image.Image, error)
	Add(path string, img image.Image)
	Forget(path string)
}

// RecordStore reads and writes record set files.
type RecordStore interface {
	Load(path string) ([]roi.Box, error)
	Save(path string, boxes []roi.Box) error
	IsRecordSet(path string) bool
}

// Snapshotter produces a new image file from the screen.
type Snapshotter interface {
	Snapshot() (string, image.Image, error)
}

// Options tunes ROI placement.
type Options struct {
	Inset           float64
	NewName         string
	HandleThreshold float64
}

// Status summarises the workspace for display.
type Status struct {
	Image     string
	Width     int
	Height    int
	RecordSet string
	ROIs      int
	Dirty     bool
}

// Workspace is driven from the UI thread only.
type Workspace struct {
	logger *slog.Logger
	images ImageSource
	store  RecordStore
	opts   Options
	ctrl   *roi.Controller

	imagePaths  []string
	imageIdx    int
	image       image.Image
	recordPaths []string
	recordIdx   int
	dirty       bool
}

// New returns an empty workspace.
func New(images ImageSource, store RecordStore, opts Options, logger *slog.Logger) *Workspace {
	ctrl := roi.NewController(nil)
	ctrl.SetThreshold(opts.HandleThreshold)
	return &Workspace{
		logger:    logger,
		images:    images,
		store:     store,
		opts:      opts,
		ctrl:      ctrl,
		imageIdx:  -1,
		recordIdx: -1,
	}
}

// SetOptions replaces the placement options and the handle threshold.
func (w *Workspace) SetOptions(opts Options) {
	w.opts = opts
	w.ctrl.SetThreshold(opts.HandleThreshold)
}

// Controller exposes the ROI controller for rendering.
func (w *Workspace) Controller() *roi.Controller { return w.ctrl }

// Image returns the open image, or nil.
func (w *Workspace) Image() image.Image { return w.image }

// ImagePaths returns the known images.
func (w *Workspace) ImagePaths() []string { return slices.Clone(w.imagePaths) }

// RecordSetPaths returns the known record sets.
func (w *Workspace) RecordSetPaths() []string { return slices.Clone(w.recordPaths) }

// SelectedImage returns the index of the open image or -1.
func (w *Workspace) SelectedImage() int { return w.imageIdx }

// SelectedRecordSet returns the index of the open record set or -1.
func (w *Workspace) SelectedRecordSet() int { return w.recordIdx }

// Dirty reports unsaved ROI changes.
func (w *Workspace) Dirty() bool { return w.dirty }

// AddPaths registers images and record sets. Unknown files, malformed
// record sets and duplicates are skipped.
func (w *Workspace) AddPaths(paths ...string) (images, recordSets int) {
	for _, p := range paths {
		switch {
		case imagefile.IsImage(p):
			if !slices.Contains(w.imagePaths, p) {
				w.imagePaths = append(w.imagePaths, p)
				images++
			}
		case records.HasRecordExt(p):
			if slices.Contains(w.recordPaths, p) {
				continue
			}
			if !w.store.IsRecordSet(p) {
				if w.logger != nil {
					w.logger.Warn("skipping malformed record set", "path", p)
				}
				continue
			}
			w.recordPaths = append(w.recordPaths, p)
			recordSets++
		}
	}
	return images, recordSets
}

// SelectImage opens the image at idx. On failure the previous image stays
// open.
func (w *Workspace) SelectImage(idx int) error {
	if idx < 0 || idx >= len(w.imagePaths) {
		return nil
	}
	img, err := w.images.Open(w.imagePaths[idx])
	if err != nil {
		return err
	}
	w.imageIdx = idx
	w.image = img
	b := img.Bounds()
	w.ctrl.SetImageSize(b.Dx(), b.Dy())
	return nil
}

// RemoveImage forgets the image at idx. Removing the open image closes it
// and drops the edit state.
func (w *Workspace) RemoveImage(idx int) {
	if idx < 0 || idx >= len(w.imagePaths) {
		return
	}
	w.images.Forget(w.imagePaths[idx])
	w.imagePaths = slices.Delete(w.imagePaths, idx, idx+1)
	switch {
	case idx == w.imageIdx:
		w.imageIdx = -1
		w.image = nil
		w.ctrl.SetImageSize(0, 0)
		w.ctrl.Collection().ClearSelection()
	case idx < w.imageIdx:
		w.imageIdx--
	}
}

// CreateRecordSet adds a new, not yet saved record set named after the open
// image and returns its index.
func (w *Workspace) CreateRecordSet() (int, error) {
	if w.imageIdx < 0 {
		return -1, ErrNoImage
	}
	p, err := records.NextPath(w.imagePaths[w.imageIdx], func(s string) bool {
		return slices.Contains(w.recordPaths, s)
	})
	if err != nil {
		return -1, err
	}
	w.recordPaths = append(w.recordPaths, p)
	return len(w.recordPaths) - 1, nil
}

// SelectRecordSet opens the record set at idx. A file that does not exist
// yet opens as an empty set. A file that fails to load leaves the current
// boxes in place.
func (w *Workspace) SelectRecordSet(idx int) error {
	if idx < 0 || idx >= len(w.recordPaths) {
		return nil
	}
	p := w.recordPaths[idx]
	var boxes []roi.Box
	if records.Exists(p) {
		loaded, err := w.store.Load(p)
		if err != nil {
			return err
		}
		boxes = loaded
	}
	w.recordIdx = idx
	w.ctrl.Replace(boxes)
	w.dirty = false
	return nil
}

// RemoveRecordSet forgets the record set at idx. Removing the open set
// closes it.
func (w *Workspace) RemoveRecordSet(idx int) {
	if idx < 0 || idx >= len(w.recordPaths) {
		return
	}
	w.recordPaths = slices.Delete(w.recordPaths, idx, idx+1)
	switch {
	case idx == w.recordIdx:
		w.recordIdx = -1
		w.ctrl.Replace(nil)
		w.dirty = false
	case idx < w.recordIdx:
		w.recordIdx--
	}
}

// SaveRecordSet writes the open record set.
func (w *Workspace) SaveRecordSet() (string, error) {
	if w.recordIdx < 0 {
		return "", ErrNoRecordSet
	}
	p := w.recordPaths[w.recordIdx]
	if err := w.store.Save(p, w.ctrl.Collection().Boxes()); err != nil {
		return p, err
	}
	w.dirty = false
	return p, nil
}

// AddROI places a new box inside the visible bounds.
func (w *Workspace) AddROI(bounds roi.ViewBounds) (int, error) {
	if w.imageIdx < 0 {
		return -1, ErrNoImage
	}
	if w.recordIdx < 0 {
		return -1, ErrNoRecordSet
	}
	idx := w.ctrl.AddInView(bounds, w.opts.Inset, w.opts.NewName)
	if idx >= 0 {
		w.dirty = true
	}
	return idx, nil
}

// RenameROI renames the box at idx.
func (w *Workspace) RenameROI(idx int, name string) {
	b, ok := w.ctrl.Collection().Box(idx)
	if !ok || b.Name == name {
		return
	}
	w.ctrl.Collection().Rename(idx, name)
	w.dirty = true
}

// RemoveROI deletes the box at idx.
func (w *Workspace) RemoveROI(idx int) {
	if idx < 0 || idx >= w.ctrl.Collection().Len() {
		return
	}
	w.ctrl.Collection().RemoveAt(idx)
	w.dirty = true
}

// SelectROI selects the box at idx for editing.
func (w *Workspace) SelectROI(idx int) { w.ctrl.Collection().Select(idx) }

// HandlePointerEvent forwards a pointer event to the controller and reports
// whether the view needs redrawing.
func (w *Workspace) HandlePointerEvent(ev roi.PointerEvent) bool {
	changed := w.ctrl.HandlePointerEvent(ev)
	if changed && (ev.Kind == roi.EventDragUpdate || ev.Kind == roi.EventMiddleClick) {
		w.dirty = true
	}
	return changed
}

// CaptureScreen takes a screen snapshot, registers it and opens it.
func (w *Workspace) CaptureScreen(s Snapshotter) (string, error) {
	p, img, err := s.Snapshot()
	if err != nil {
		return "", err
	}
	w.images.Add(p, img)
	w.AddPaths(p)
	idx := slices.Index(w.imagePaths, p)
	if err := w.SelectImage(idx); err != nil {
		return p, fmt.Errorf("open capture: %w", err)
	}
	return p, nil
}

// Status summarises the workspace.
func (w *Workspace) Status() Status {
	s := Status{ROIs: w.ctrl.Collection().Len(), Dirty: w.dirty}
	if w.imageIdx >= 0 {
		s.Image = filepath.Base(w.imagePaths[w.imageIdx])
		if w.image != nil {
			s.Width, s.Height = w.image.Bounds().Dx(), w.image.Bounds().Dy()
		}
	}
	if w.recordIdx >= 0 {
		s.RecordSet = filepath.Base(w.recordPaths[w.recordIdx])
	}
	return s
}
