package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/vova616/screenshot"
)

// GrabFunc captures the screen. Replaced in tests.
type GrabFunc func() (*image.RGBA, error)

// Grab returns a capture of the primary screen.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	return img, nil
}

// Snapshotter writes screen captures into a directory as PNG files so they
// can be annotated like any other image.
type Snapshotter struct {
	Dir  string
	Grab GrabFunc
	Now  func() time.Time
}

// NewSnapshotter returns a Snapshotter writing into dir.
func NewSnapshotter(dir string) *Snapshotter {
	return &Snapshotter{Dir: dir, Grab: Grab, Now: time.Now}
}

// Snapshot captures the screen and returns the written file path and the
// captured image.
func (s *Snapshotter) Snapshot() (string, image.Image, error) {
	grab, now := s.Grab, s.Now
	if grab == nil {
		grab = Grab
	}
	if now == nil {
		now = time.Now
	}
	img, err := grab()
	if err != nil {
		return "", nil, err
	}
	if img == nil || img.Rect.Empty() {
		return "", nil, fmt.Errorf("capture screen: empty frame")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("create capture dir: %w", err)
	}
	name := fmt.Sprintf("screen_%s.png", now().Format("20060102_150405.000"))
	path := filepath.Join(s.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", nil, fmt.Errorf("create %s: %w", name, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", nil, fmt.Errorf("encode %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", nil, fmt.Errorf("close %s: %w", name, err)
	}
	return path, img, nil
}
