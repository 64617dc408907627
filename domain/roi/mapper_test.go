package roi

import (
	"math"
	"testing"
)

func TestMapper_RoundTripGridAligned(t *testing.T) {
	m := NewMapper(100, 50)
	b := Box{X1: 0.2, Y1: 0.2, X2: 0.8, Y2: 0.8}
	x1, y1, x2, y2 := m.ToAbsolute(b)
	if x1 != 20 || y1 != -10 || x2 != 80 || y2 != -40 {
		t.Fatalf("ToAbsolute: got (%v,%v,%v,%v), want (20,-10,80,-40)", x1, y1, x2, y2)
	}
	got := Box{X1: m.X1(x1), Y1: m.Y1(y1), X2: m.X2(x2), Y2: m.Y2(y2)}
	if got != b {
		t.Fatalf("inverse: got %+v, want %+v", got, b)
	}
}

func TestMapper_RoundsOutward(t *testing.T) {
	m := NewMapper(10, 10)
	x1, y1, x2, y2 := m.ToAbsolute(Box{X1: 0.15, Y1: 0.15, X2: 0.55, Y2: 0.55})
	if x1 != 1 || y1 != -1 || x2 != 6 || y2 != -6 {
		t.Fatalf("expected outward rounding (1,-1,6,-6), got (%v,%v,%v,%v)", x1, y1, x2, y2)
	}
}

func TestMapper_InverseClamps(t *testing.T) {
	m := NewMapper(100, 50)
	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"x1 below", m.X1(-30), 0},
		{"x2 above", m.X2(250), 1},
		{"y1 above image", m.Y1(12), 0},
		{"y2 below image", m.Y2(-80), 1},
		{"x1 floors", m.X1(10.9), 0.1},
		{"x2 ceils", m.X2(10.1), 0.11},
		{"y1 ceils", m.Y1(-10.2), 11.0 / 50},
		{"y2 floors", m.Y2(-10.8), 0.2},
	}
	for _, tc := range cases {
		if math.Abs(tc.got-tc.want) > 1e-12 {
			t.Errorf("%s: got %v want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestMapper_InverseDispatch(t *testing.T) {
	m := NewMapper(100, 50)
	if v := m.Inverse(CornerX1, 20, -99); v != 0.2 {
		t.Errorf("X1 should read ax only, got %v", v)
	}
	if v := m.Inverse(CornerY2, -99, -40); v != 0.8 {
		t.Errorf("Y2 should read ay only, got %v", v)
	}
	if v := m.Inverse(CornerNone, 20, -10); v != 0 {
		t.Errorf("CornerNone should map to 0, got %v", v)
	}
}

func TestMapper_RelativeBoxOrdersCorners(t *testing.T) {
	m := NewMapper(100, 50)
	b := m.RelativeBox(80, -40, 20, -10)
	want := Box{X1: 0.2, Y1: 0.2, X2: 0.8, Y2: 0.8}
	if b != want {
		t.Fatalf("got %+v want %+v", b, want)
	}
	if !b.Ordered() {
		t.Fatalf("relative box not ordered: %+v", b)
	}
}

func TestMapper_Polygon(t *testing.T) {
	m := NewMapper(100, 50)
	p := m.Polygon(Box{X1: 0.2, Y1: 0.2, X2: 0.8, Y2: 0.8})
	want := [4][2]float64{{20, -10}, {80, -10}, {80, -40}, {20, -40}}
	if p != want {
		t.Fatalf("got %v want %v", p, want)
	}
}
