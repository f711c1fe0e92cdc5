package internal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approxPoint = cmpopts.EquateApprox(0, 1e-9)

func TestToRelative(t *testing.T) {
	vp := Viewport{Width: 1000, Height: 800}
	tests := []struct {
		name string
		abs  Point
		size Size
		want Point
	}{
		{name: "centred box", abs: Point{X: 440, Y: 340}, size: DefaultNoteSize, want: Point{X: 5, Y: 5}},
		{name: "box at 400,300", abs: Point{X: 400, Y: 300}, size: DefaultNoteSize, want: Point{X: 4.6, Y: 5.5}},
		{name: "top-left corner", abs: Point{X: -60, Y: -60}, size: DefaultNoteSize, want: Point{X: 0, Y: 10}},
		{name: "bottom-right corner", abs: Point{X: 940, Y: 740}, size: DefaultNoteSize, want: Point{X: 10, Y: 0}},
		{name: "wide box", abs: Point{X: 0, Y: 0}, size: Size{Width: 200, Height: 100}, want: Point{X: 1, Y: 9.375}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToRelative(tt.abs, tt.size, vp)
			if !ok {
				t.Fatal("ToRelative() reported an unmeasured viewport")
			}
			if diff := cmp.Diff(tt.want, got, approxPoint); diff != "" {
				t.Errorf("ToRelative() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToAbsolute(t *testing.T) {
	vp := Viewport{Width: 1000, Height: 800}
	tests := []struct {
		name string
		rel  Point
		want Point
	}{
		{name: "centre", rel: Point{X: 5, Y: 5}, want: Point{X: 440, Y: 340}},
		{name: "origin is bottom-left", rel: Point{X: 0, Y: 0}, want: Point{X: -60, Y: 740}},
		{name: "top-right", rel: Point{X: 10, Y: 10}, want: Point{X: 940, Y: -60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToAbsolute(tt.rel, DefaultNoteSize, vp)
			if !ok {
				t.Fatal("ToAbsolute() reported an unmeasured viewport")
			}
			if diff := cmp.Diff(tt.want, got, approxPoint); diff != "" {
				t.Errorf("ToAbsolute() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCoordinateRoundTrip(t *testing.T) {
	viewports := []Viewport{{Width: 1000, Height: 800}, {Width: 1920, Height: 1080}, {Width: 375, Height: 667}}
	sizes := []Size{DefaultNoteSize, {Width: 300, Height: 80}}

	for _, vp := range viewports {
		for _, size := range sizes {
			for x := 0.0; x <= GridMax; x += 2.5 {
				for y := 0.0; y <= GridMax; y += 2.5 {
					rel := Point{X: x, Y: y}
					abs, _ := ToAbsolute(rel, size, vp)
					back, _ := ToRelative(abs, size, vp)
					if diff := cmp.Diff(rel, back, approxPoint); diff != "" {
						t.Errorf("round trip %+v in %+v with %+v (-want +got):\n%s", rel, vp, size, diff)
					}
				}
			}
		}
	}
}

func TestUnmeasuredViewport(t *testing.T) {
	for _, vp := range []Viewport{{}, {Width: 100}, {Height: 100}, {Width: -1, Height: 5}} {
		if _, ok := ToAbsolute(Point{X: 5, Y: 5}, DefaultNoteSize, vp); ok {
			t.Errorf("ToAbsolute() accepted viewport %+v", vp)
		}
		if p, ok := ToRelative(Point{X: 5, Y: 5}, DefaultNoteSize, vp); ok || p != (Point{}) {
			t.Errorf("ToRelative() = %+v, %v for viewport %+v", p, ok, vp)
		}
	}
}

func TestInGrid(t *testing.T) {
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{X: 0, Y: 0}, true},
		{Point{X: 10, Y: 10}, true},
		{Point{X: 5.5, Y: 2}, true},
		{Point{X: -0.1, Y: 5}, false},
		{Point{X: 5, Y: 10.01}, false},
	}
	for _, tt := range tests {
		if got := InGrid(tt.p); got != tt.want {
			t.Errorf("InGrid(%+v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Min: Point{X: 10, Y: 10}, Size: Size{Width: 20, Height: 20}}
	if !r.Contains(Point{X: 10, Y: 30}) || !r.Contains(Point{X: 20, Y: 20}) {
		t.Error("Contains() should include the edges and interior")
	}
	if r.Contains(Point{X: 31, Y: 20}) || r.Contains(Point{X: 20, Y: 9}) {
		t.Error("Contains() should exclude points outside")
	}
}

func TestViewportContains(t *testing.T) {
	vp := Viewport{Width: 100, Height: 50}
	if !vp.Contains(Point{X: 100, Y: 50}) || vp.Contains(Point{X: -1, Y: 0}) || vp.Contains(Point{X: 10, Y: 51}) {
		t.Error("Viewport.Contains() boundary check failed")
	}
	if (Viewport{}).Contains(Point{}) {
		t.Error("an unmeasured viewport contains nothing")
	}
}
