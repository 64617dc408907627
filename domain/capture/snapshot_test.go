package capture

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSnapshotter_WritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := &Snapshotter{
		Dir:  dir,
		Grab: func() (*image.RGBA, error) { return image.NewRGBA(image.Rect(0, 0, 32, 16)), nil },
		Now:  func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) },
	}
	path, img, err := s.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if filepath.Base(path) != "screen_20240506_070809.000.png" {
		t.Fatalf("unexpected name %s", path)
	}
	if img.Bounds().Dx() != 32 {
		t.Fatalf("unexpected image %v", img.Bounds())
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() != 32 || decoded.Bounds().Dy() != 16 {
		t.Fatalf("unexpected decoded size %v", decoded.Bounds())
	}
}

func TestSnapshotter_GrabError(t *testing.T) {
	boom := errors.New("no display")
	s := &Snapshotter{Dir: t.TempDir(), Grab: func() (*image.RGBA, error) { return nil, boom }}
	if _, _, err := s.Snapshot(); !errors.Is(err, boom) {
		t.Fatalf("expected grab error, got %v", err)
	}
}

func TestSnapshotter_EmptyFrame(t *testing.T) {
	s := &Snapshotter{Dir: t.TempDir(), Grab: func() (*image.RGBA, error) { return &image.RGBA{}, nil }}
	if _, _, err := s.Snapshot(); err == nil {
		t.Fatalf("expected error for empty frame")
	}
}
