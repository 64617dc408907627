package presenter

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soocke/roi-editor-go/domain/records"
	"github.com/soocke/roi-editor-go/domain/workspace"
	"github.com/soocke/roi-editor-go/ui/model"
)

type memImages map[string]image.Image

func (m memImages) Open(path string) (image.Image, error) {
	if img, ok := m[path]; ok {
		return img, nil
	}
	return nil, errors.New("no such image")
}
func (m memImages) Add(path string, img image.Image) { m[path] = img }
func (m memImages) Forget(string)                    {}

type mockCanvas struct {
	vp          *model.Viewport
	invalidated int
}

func (c *mockCanvas) Invalidate()               { c.invalidated++ }
func (c *mockCanvas) Viewport() *model.Viewport { return c.vp }

type mockListView struct {
	images, sets, rois []string
	imageSel, setSel   int
	roiSel             int
	roiName            string
	notices            []string
}

func (v *mockListView) SetImages(n []string, s int)     { v.images, v.imageSel = n, s }
func (v *mockListView) SetRecordSets(n []string, s int) { v.sets, v.setSel = n, s }
func (v *mockListView) SetROIs(n []string, s int)       { v.rois, v.roiSel = n, s }
func (v *mockListView) SetROIName(name string)          { v.roiName = name }
func (v *mockListView) Notify(msg string)               { v.notices = append(v.notices, msg) }

type stubSnapshotter struct {
	path string
	img  image.Image
}

func (s stubSnapshotter) Snapshot() (string, image.Image, error) { return s.path, s.img, nil }

func newPanelFixture(t *testing.T, snap workspace.Snapshotter) (*WorkspacePresenter, *mockListView, *mockCanvas, string) {
	t.Helper()
	dir := t.TempDir()
	imgs := memImages{filepath.Join(dir, "a.png"): image.NewGray(image.Rect(0, 0, 100, 50))}
	ws := workspace.New(imgs, records.NewStore(nil), workspace.Options{Inset: 0.3, NewName: "new_roi", HandleThreshold: 10}, nil)
	vp := model.NewViewport(100, 50, 16)
	vp.Fit(100, 50)
	canvas := &mockCanvas{vp: vp}
	view := &mockListView{}
	return NewWorkspacePresenter(ws, canvas, view, snap, nil), view, canvas, dir
}

func TestWorkspacePresenter_EditFlow(t *testing.T) {
	p, view, canvas, dir := newPanelFixture(t, nil)
	p.AddPaths(filepath.Join(dir, "a.png"))
	p.Tick()
	if len(view.images) != 1 || view.images[0] != "a.png" || view.imageSel != -1 {
		t.Fatalf("unexpected image list %v sel=%d", view.images, view.imageSel)
	}

	p.SelectImage(0)
	p.NewRecordSet()
	p.AddROI()
	p.Tick()
	if view.imageSel != 0 {
		t.Fatalf("image should be selected")
	}
	if len(view.sets) != 1 || view.sets[0] != "roi_a_(1).json" || view.setSel != 0 {
		t.Fatalf("unexpected record sets %v sel=%d", view.sets, view.setSel)
	}
	if len(view.rois) != 1 || view.rois[0] != "new_roi" || view.roiSel != -1 {
		t.Fatalf("unexpected rois %v sel=%d", view.rois, view.roiSel)
	}
	if canvas.invalidated == 0 {
		t.Fatalf("commands should invalidate the canvas")
	}

	p.SelectROI(0)
	p.Tick()
	if view.roiSel != 0 || view.roiName != "new_roi" {
		t.Fatalf("selection not reflected: sel=%d name=%q", view.roiSel, view.roiName)
	}
	p.RenameROI("dial")
	p.Save()
	p.Tick()
	if view.rois[0] != "dial" {
		t.Fatalf("rename not reflected: %v", view.rois)
	}
	if last := view.notices[len(view.notices)-1]; last != "saved roi_a_(1).json" {
		t.Fatalf("unexpected notice %q", last)
	}
	data, err := os.ReadFile(filepath.Join(dir, "roi_a_(1).json"))
	if err != nil || !strings.Contains(string(data), `"dial"`) {
		t.Fatalf("saved file missing rename: %s %v", data, err)
	}

	p.RemoveROI()
	p.Tick()
	if len(view.rois) != 0 || view.roiName != "" {
		t.Fatalf("remove not reflected: %v %q", view.rois, view.roiName)
	}
}

func TestWorkspacePresenter_ErrorsAreNotified(t *testing.T) {
	p, view, _, _ := newPanelFixture(t, nil)
	p.NewRecordSet()
	p.AddROI()
	p.Save()
	p.Capture()
	p.RenameROI("x")
	if len(view.notices) != 5 {
		t.Fatalf("expected 5 notices, got %v", view.notices)
	}
	if !strings.HasPrefix(view.notices[0], "new record set:") {
		t.Fatalf("unexpected notice %q", view.notices[0])
	}
}

func TestWorkspacePresenter_CaptureOpensSnapshot(t *testing.T) {
	dir := t.TempDir()
	shot := filepath.Join(dir, "screen.png")
	p, view, _, _ := newPanelFixture(t, stubSnapshotter{path: shot, img: image.NewGray(image.Rect(0, 0, 30, 20))})
	p.Capture()
	p.Tick()
	if len(view.images) != 1 || view.images[0] != "screen.png" || view.imageSel != 0 {
		t.Fatalf("capture not opened: %v sel=%d", view.images, view.imageSel)
	}
}

func TestWorkspacePresenter_RemoveSelected(t *testing.T) {
	p, view, _, dir := newPanelFixture(t, nil)
	p.AddPaths(filepath.Join(dir, "a.png"))
	p.SelectImage(0)
	p.NewRecordSet()
	p.RemoveRecordSet()
	p.RemoveImage()
	p.Tick()
	if len(view.images) != 0 || len(view.sets) != 0 {
		t.Fatalf("lists should be empty: %v %v", view.images, view.sets)
	}
}
