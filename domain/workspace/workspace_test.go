package workspace

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/soocke/roi-editor-go/domain/records"
	"github.com/soocke/roi-editor-go/domain/roi"
)

type fakeImages struct {
	imgs   map[string]image.Image
	forgot []string
}

func (f *fakeImages) Open(path string) (image.Image, error) {
	if img, ok := f.imgs[path]; ok {
		return img, nil
	}
	return nil, errors.New("no such image")
}
func (f *fakeImages) Add(path string, img image.Image) { f.imgs[path] = img }
func (f *fakeImages) Forget(path string)               { f.forgot = append(f.forgot, path) }

type fakeSnapshotter struct {
	path string
	img  image.Image
	err  error
}

func (s fakeSnapshotter) Snapshot() (string, image.Image, error) { return s.path, s.img, s.err }

func newTestWorkspace(t *testing.T) (*Workspace, *fakeImages, string) {
	t.Helper()
	dir := t.TempDir()
	imgs := &fakeImages{imgs: map[string]image.Image{
		filepath.Join(dir, "a.png"): image.NewGray(image.Rect(0, 0, 100, 50)),
		filepath.Join(dir, "b.jpg"): image.NewGray(image.Rect(0, 0, 20, 20)),
	}}
	ws := New(imgs, records.NewStore(nil), Options{Inset: 0.3, NewName: "new_roi"}, nil)
	return ws, imgs, dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWorkspace_AddPathsFiltersAndDedupes(t *testing.T) {
	ws, _, dir := newTestWorkspace(t)
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	writeFile(t, good, `[]`)
	writeFile(t, bad, `{}`)
	a := filepath.Join(dir, "a.png")
	imgs, sets := ws.AddPaths(a, a, filepath.Join(dir, "notes.txt"), good, good, bad)
	if imgs != 1 || sets != 1 {
		t.Fatalf("expected 1 image and 1 record set, got %d and %d", imgs, sets)
	}
	if len(ws.ImagePaths()) != 1 || len(ws.RecordSetPaths()) != 1 {
		t.Fatalf("unexpected lists %v %v", ws.ImagePaths(), ws.RecordSetPaths())
	}
}

func TestWorkspace_SelectImageSetsMapper(t *testing.T) {
	ws, _, dir := newTestWorkspace(t)
	ws.AddPaths(filepath.Join(dir, "a.png"), filepath.Join(dir, "missing.png"))
	if err := ws.SelectImage(0); err != nil {
		t.Fatalf("select: %v", err)
	}
	if m := ws.Controller().Mapper(); m.Width != 100 || m.Height != 50 {
		t.Fatalf("unexpected mapper %+v", m)
	}
	if err := ws.SelectImage(1); err == nil {
		t.Fatalf("expected decode failure")
	}
	if ws.SelectedImage() != 0 {
		t.Fatalf("failed open must keep previous image, got %d", ws.SelectedImage())
	}
}

func TestWorkspace_RemoveSelectedImageClearsEdit(t *testing.T) {
	ws, imgs, dir := newTestWorkspace(t)
	ws.AddPaths(filepath.Join(dir, "a.png"), filepath.Join(dir, "b.jpg"))
	_ = ws.SelectImage(1)
	ws.Controller().Replace([]roi.Box{{X1: 0, Y1: 0, X2: 1, Y2: 1}})
	ws.SelectROI(0)

	ws.RemoveImage(0)
	if ws.SelectedImage() != 0 {
		t.Fatalf("selection should shift down, got %d", ws.SelectedImage())
	}
	ws.RemoveImage(0)
	if ws.SelectedImage() != -1 || ws.Image() != nil {
		t.Fatalf("expected no open image")
	}
	if _, _, ok := ws.Controller().Collection().Edit(); ok {
		t.Fatalf("edit state should be cleared")
	}
	if len(imgs.forgot) != 2 {
		t.Fatalf("expected removed images to be evicted, got %v", imgs.forgot)
	}
	if ws.Controller().HandlePointerEvent(roi.PointerEvent{Kind: roi.EventSecondaryClick}) {
		t.Fatalf("events must be ignored without an image")
	}
}

func TestWorkspace_RecordSetLifecycle(t *testing.T) {
	ws, _, dir := newTestWorkspace(t)
	if _, err := ws.CreateRecordSet(); !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
	ws.AddPaths(filepath.Join(dir, "a.png"))
	_ = ws.SelectImage(0)

	idx, err := ws.CreateRecordSet()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := filepath.Base(ws.RecordSetPaths()[idx]); got != "roi_a_(1).json" {
		t.Fatalf("unexpected name %s", got)
	}
	idx2, err := ws.CreateRecordSet()
	if err != nil || filepath.Base(ws.RecordSetPaths()[idx2]) != "roi_a_(2).json" {
		t.Fatalf("second set should take the next free name: %v %v", ws.RecordSetPaths(), err)
	}

	if _, err := ws.AddROI(roi.ViewBounds{MinX: 0, MaxY: 0, MaxX: 100, MinY: -50}); !errors.Is(err, ErrNoRecordSet) {
		t.Fatalf("expected ErrNoRecordSet, got %v", err)
	}
	if err := ws.SelectRecordSet(idx); err != nil {
		t.Fatalf("select new set: %v", err)
	}
	if ws.Controller().Collection().Len() != 0 {
		t.Fatalf("new set should be empty")
	}
	roiIdx, err := ws.AddROI(roi.ViewBounds{MinX: 0, MaxY: 0, MaxX: 100, MinY: -50})
	if err != nil || roiIdx != 0 {
		t.Fatalf("add roi: %d %v", roiIdx, err)
	}
	ws.RenameROI(0, "dial")
	if !ws.Dirty() {
		t.Fatalf("expected dirty after edits")
	}
	path, err := ws.SaveRecordSet()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if ws.Dirty() {
		t.Fatalf("save should clear dirty")
	}

	boxes, err := records.NewStore(nil).Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	want := roi.Box{X1: 0.3, Y1: 0.3, X2: 0.7, Y2: 0.7, Name: "dial"}
	if len(boxes) != 1 || boxes[0] != want {
		t.Fatalf("got %+v want %+v", boxes, want)
	}
}

func TestWorkspace_SelectRecordSetMalformedKeepsBoxes(t *testing.T) {
	ws, _, dir := newTestWorkspace(t)
	good := filepath.Join(dir, "good.json")
	writeFile(t, good, `[{"x1":0,"y1":0,"x2":0.5,"y2":0.5,"name":"a"}]`)
	ws.AddPaths(good)
	if err := ws.SelectRecordSet(0); err != nil {
		t.Fatalf("select: %v", err)
	}
	writeFile(t, good, `garbage`)
	if err := ws.SelectRecordSet(0); err == nil {
		t.Fatalf("expected load error")
	}
	if ws.Controller().Collection().Len() != 1 {
		t.Fatalf("boxes should be kept on failed load")
	}
}

func TestWorkspace_RemoveOpenRecordSet(t *testing.T) {
	ws, _, dir := newTestWorkspace(t)
	a := filepath.Join(dir, "one.json")
	b := filepath.Join(dir, "two.json")
	writeFile(t, a, `[]`)
	writeFile(t, b, `[{"x1":0,"y1":0,"x2":1,"y2":1,"name":"x"}]`)
	ws.AddPaths(a, b)
	_ = ws.SelectRecordSet(1)
	ws.SelectROI(0)
	ws.RemoveRecordSet(0)
	if ws.SelectedRecordSet() != 0 {
		t.Fatalf("selection should shift down, got %d", ws.SelectedRecordSet())
	}
	ws.RemoveRecordSet(0)
	if ws.SelectedRecordSet() != -1 || ws.Controller().Collection().Len() != 0 {
		t.Fatalf("expected closed record set")
	}
	if _, err := ws.SaveRecordSet(); !errors.Is(err, ErrNoRecordSet) {
		t.Fatalf("expected ErrNoRecordSet, got %v", err)
	}
}

func TestWorkspace_PointerEventsMarkDirty(t *testing.T) {
	ws, _, dir := newTestWorkspace(t)
	ws.AddPaths(filepath.Join(dir, "a.png"))
	_ = ws.SelectImage(0)
	ws.Controller().Replace([]roi.Box{{X1: 0.2, Y1: 0.2, X2: 0.8, Y2: 0.8}})

	if !ws.HandlePointerEvent(roi.PointerEvent{Kind: roi.EventSecondaryClick, X: 50, Y: -25}) {
		t.Fatalf("expected selection")
	}
	if ws.Dirty() {
		t.Fatalf("selection alone must not mark dirty")
	}
	ws.HandlePointerEvent(roi.PointerEvent{Kind: roi.EventDragStart, X: 20, Y: -25, Button: roi.ButtonSecondary})
	if ws.HandlePointerEvent(roi.PointerEvent{Kind: roi.EventDragUpdate, X: 20.4, Y: -30, Button: roi.ButtonSecondary}) {
		t.Fatalf("sub-pixel drag should not report a change")
	}
	if ws.Dirty() {
		t.Fatalf("drag that leaves the box unchanged must not mark dirty")
	}
	ws.HandlePointerEvent(roi.PointerEvent{Kind: roi.EventDragUpdate, X: 30, Y: -25, Button: roi.ButtonSecondary})
	if !ws.Dirty() {
		t.Fatalf("drag should mark dirty")
	}
}

func TestWorkspace_CaptureScreen(t *testing.T) {
	ws, _, dir := newTestWorkspace(t)
	p := filepath.Join(dir, "screen_1.png")
	got, err := ws.CaptureScreen(fakeSnapshotter{path: p, img: image.NewRGBA(image.Rect(0, 0, 64, 48))})
	if err != nil || got != p {
		t.Fatalf("capture: %s %v", got, err)
	}
	st := ws.Status()
	if st.Image != "screen_1.png" || st.Width != 64 || st.Height != 48 {
		t.Fatalf("unexpected status %+v", st)
	}
	boom := errors.New("no display")
	if _, err := ws.CaptureScreen(fakeSnapshotter{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("expected snapshot error, got %v", err)
	}
}

func TestWorkspace_SetOptionsAppliesToNewROIs(t *testing.T) {
	ws, _, dir := newTestWorkspace(t)
	ws.AddPaths(filepath.Join(dir, "a.png"))
	if err := ws.SelectImage(0); err != nil {
		t.Fatal(err)
	}
	idx, _ := ws.CreateRecordSet()
	if err := ws.SelectRecordSet(idx); err != nil {
		t.Fatal(err)
	}
	ws.SetOptions(Options{Inset: 0.25, NewName: "gauge", HandleThreshold: 5})
	if _, err := ws.AddROI(roi.ViewBounds{MinX: 0, MaxY: 0, MaxX: 100, MinY: -50}); err != nil {
		t.Fatal(err)
	}
	b, _ := ws.Controller().Collection().Box(0)
	if b.Name != "gauge" || b.X1 != 0.25 || b.X2 != 0.75 {
		t.Fatalf("options not applied: %+v", b)
	}
}
