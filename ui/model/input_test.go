package model

import (
	"image"
	"testing"

	"github.com/soocke/roi-editor-go/domain/roi"
)

func TestPointerButton(t *testing.T) {
	cases := []struct {
		goos string
		n    int
		want roi.Button
	}{
		{"linux", 1, roi.ButtonPrimary},
		{"linux", 2, roi.ButtonMiddle},
		{"windows", 3, roi.ButtonSecondary},
		{"darwin", 2, roi.ButtonSecondary},
		{"darwin", 3, roi.ButtonMiddle},
		{"linux", 4, roi.ButtonNone},
	}
	for _, c := range cases {
		if got := PointerButton(c.goos, c.n); got != c.want {
			t.Fatalf("%s button %d: got %v want %v", c.goos, c.n, got, c.want)
		}
	}
}

func TestWheelSteps(t *testing.T) {
	for delta, want := range map[int]int{120: 1, 3: 1, -240: -1, -1: -1, 0: 0} {
		if got := WheelSteps(delta); got != want {
			t.Fatalf("delta %d: got %d want %d", delta, got, want)
		}
	}
}

func TestParseGeometry(t *testing.T) {
	r, ok := ParseGeometry(" 1280x820+10+-5 ")
	if !ok || r != image.Rect(10, -5, 1290, 815) {
		t.Fatalf("unexpected %v %v", r, ok)
	}
	if FormatGeometry(r) != "1280x820+10+-5" {
		t.Fatalf("format mismatch: %s", FormatGeometry(r))
	}
	for _, bad := range []string{"", "0x10+0+0", "10x10", "axb+1+1"} {
		if _, ok := ParseGeometry(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
