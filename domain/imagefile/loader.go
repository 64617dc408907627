// Package imagefile decodes the raster images ROIs are drawn over and keeps
// the most recently used ones in memory.
package imagefile

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"

	// Extra formats beyond the png/jpeg/gif decoders imaging registers.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultCacheSize is the number of decoded images kept by a Loader.
const DefaultCacheSize = 4

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImage reports whether path has a supported image extension.
func IsImage(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// Loader decodes images from disk, honouring EXIF orientation, and caches
// the decoded result by path.
type Loader struct {
	logger *slog.Logger
	cache  *lru.Cache[string, image.Image]
}

// NewLoader returns a Loader caching up to size images. Non-positive sizes
// use DefaultCacheSize.
func NewLoader(size int, logger *slog.Logger) *Loader {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, image.Image](size)
	if err != nil {
		// only returned for non-positive sizes
		panic(err)
	}
	return &Loader{logger: logger, cache: cache}
}

// Open returns the decoded image at path.
func (l *Loader) Open(path string) (image.Image, error) {
	if img, ok := l.cache.Get(path); ok {
		return img, nil
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", filepath.Base(path), err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("decode image %s: empty image", filepath.Base(path))
	}
	if evicted := l.cache.Add(path, img); evicted && l.logger != nil {
		l.logger.Debug("image cache eviction", "path", path)
	}
	if l.logger != nil {
		l.logger.Debug("image decoded", "path", path, "width", b.Dx(), "height", b.Dy())
	}
	return img, nil
}

// Add stores an already decoded image under path, e.g. a fresh screen
// capture.
func (l *Loader) Add(path string, img image.Image) {
	if img == nil {
		return
	}
	l.cache.Add(path, img)
}

// Forget drops path from the cache.
func (l *Loader) Forget(path string) { l.cache.Remove(path) }

// Cached returns the number of images held in memory.
func (l *Loader) Cached() int { return l.cache.Len() }
