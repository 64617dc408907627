package imagefile

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestIsImage(t *testing.T) {
	for path, want := range map[string]bool{
		"a.png":      true,
		"b.JPG":      true,
		"c.jpeg":     true,
		"d.webp":     true,
		"e.tiff":     true,
		"f.json":     false,
		"noext":      false,
		"dir/x.Bmp":  true,
		"roi.png.gz": false,
	} {
		if got := IsImage(path); got != want {
			t.Errorf("IsImage(%q) = %v want %v", path, got, want)
		}
	}
}

func TestLoader_OpenAndCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	writePNG(t, path, 40, 30)

	l := NewLoader(1, nil)
	img, err := l.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("unexpected size %v", b)
	}
	// cached copy survives removal of the file
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Open(path); err != nil {
		t.Fatalf("expected cached image, got %v", err)
	}
	l.Forget(path)
	if _, err := l.Open(path); err == nil {
		t.Fatalf("expected error after forget")
	}
}

func TestLoader_EvictsOldest(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")
	writePNG(t, a, 4, 4)
	writePNG(t, b, 4, 4)
	l := NewLoader(1, nil)
	if _, err := l.Open(a); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Open(b); err != nil {
		t.Fatal(err)
	}
	if l.Cached() != 1 {
		t.Fatalf("expected 1 cached image, got %d", l.Cached())
	}
}

func TestLoader_OpenNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLoader(0, nil).Open(path); err == nil {
		t.Fatalf("expected decode error")
	}
}
