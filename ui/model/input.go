package model

import (
	"fmt"
	"image"
	"regexp"
	"strconv"
	"strings"

	"github.com/soocke/roi-editor-go/domain/roi"
)

// PointerButton maps a Tk button number to a pointer button. Tk numbers the
// right button 3 except on macOS, where right is 2 and middle is 3.
func PointerButton(goos string, n int) roi.Button {
	switch n {
	case 1:
		return roi.ButtonPrimary
	case 2:
		if goos == "darwin" {
			return roi.ButtonSecondary
		}
		return roi.ButtonMiddle
	case 3:
		if goos == "darwin" {
			return roi.ButtonMiddle
		}
		return roi.ButtonSecondary
	default:
		return roi.ButtonNone
	}
}

// WheelSteps turns a Tk <MouseWheel> delta into zoom steps. Only the sign
// is used since the delta magnitude differs per platform (120 per notch on
// Windows and X11, small values on macOS).
func WheelSteps(delta int) int {
	switch {
	case delta > 0:
		return 1
	case delta < 0:
		return -1
	default:
		return 0
	}
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y"
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// ParseGeometry parses a Tk geometry string into a screen rectangle.
func ParseGeometry(g string) (image.Rectangle, bool) {
	m := geomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}

// FormatGeometry is the inverse of ParseGeometry.
func FormatGeometry(r image.Rectangle) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
}
