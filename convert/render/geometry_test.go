package render

import (
	"testing"

	"pptxhtml/pptx"
)

func TestPx(t *testing.T) {
	tests := []struct {
		emu  pptx.Emu
		want float64
	}{
		{0, 0},
		{914400, 96},
		{457200, 48},
		{9525, 1},
		{9144000, 960},
		{-9525, -1},
	}
	for _, tt := range tests {
		if got := px(tt.emu); got != tt.want {
			t.Errorf("px(%d) = %v, want %v", tt.emu, got, tt.want)
		}
	}
}

func TestFormatPx(t *testing.T) {
	if got := formatPx(px(274638)); got != "28.83333333333333px" && got != "28.833333333333332px" {
		t.Errorf("formatPx = %q", got)
	}
	if got := formatPx(48); got != "48px" {
		t.Errorf("formatPx(48) = %q", got)
	}
}

func TestRotation(t *testing.T) {
	tests := []struct {
		rot  int64
		want int64
	}{
		{0, 0},
		{5400000, 90},
		{5430000, 90},
		{-2700000, -45},
		{21599999, 359},
	}
	for _, tt := range tests {
		if got := rotation(&pptx.Transform{Rotation: tt.rot}); got != tt.want {
			t.Errorf("rotation(%d) = %d, want %d", tt.rot, got, tt.want)
		}
	}
	if got := rotation(nil); got != 0 {
		t.Errorf("rotation(nil) = %d", got)
	}
}

func TestChildFrame(t *testing.T) {
	x := &pptx.Transform{
		Offset:      &pptx.Point{X: 914400, Y: 914400},
		Extent:      &pptx.Size{CX: 1828800, CY: 914400},
		ChildOffset: &pptx.Point{X: 457200, Y: 0},
		ChildExtent: &pptx.Size{CX: 914400, CY: 914400},
	}
	f := childFrame(slideFrame, x)
	if got := f.x(457200); got != 0 {
		t.Errorf("x(child origin) = %v, want 0", got)
	}
	if got := f.x(914400); got != 96 {
		t.Errorf("x = %v, want 96 (48px scaled by 2)", got)
	}
	if got := f.y(914400); got != 96 {
		t.Errorf("y = %v, want 96", got)
	}
	if got := f.w(914400); got != 192 {
		t.Errorf("w = %v, want 192", got)
	}
	if got := f.h(914400); got != 96 {
		t.Errorf("h = %v, want 96", got)
	}

	// degenerate child extent keeps unit scale
	f = childFrame(slideFrame, &pptx.Transform{ChildExtent: &pptx.Size{}, Extent: &pptx.Size{CX: 10, CY: 10}})
	if f.scaleX != 1 || f.scaleY != 1 {
		t.Errorf("scale = %v,%v, want 1,1", f.scaleX, f.scaleY)
	}
	if childFrame(slideFrame, nil) != slideFrame {
		t.Errorf("childFrame(nil) != slideFrame")
	}

	// inner group at unit scale inside outer group scaled 2x by 3x
	outer := frame{originX: 100, originY: 100, scaleX: 2, scaleY: 3}
	inner := childFrame(outer, &pptx.Transform{
		Offset:      &pptx.Point{X: 914400, Y: 914400},
		Extent:      &pptx.Size{CX: 914400, CY: 914400},
		ChildOffset: &pptx.Point{X: 0, Y: 0},
		ChildExtent: &pptx.Size{CX: 914400, CY: 914400},
	})
	if inner.scaleX != 2 || inner.scaleY != 3 {
		t.Errorf("nested scale = %v,%v, want 2,3", inner.scaleX, inner.scaleY)
	}
	if got := inner.x(457200); got != 96 {
		t.Errorf("nested x = %v, want 96", got)
	}
	if got := inner.h(457200); got != 144 {
		t.Errorf("nested h = %v, want 144", got)
	}
	if inner = childFrame(outer, nil); inner.scaleX != 2 || inner.scaleY != 3 || inner.originX != 0 {
		t.Errorf("childFrame(outer, nil) = %+v", inner)
	}
}

func TestPlacementDeclarations(t *testing.T) {
	pl := placement{hasOffset: true, left: 10, top: 20, hasExtent: true, width: 30, height: 40}
	if got, want := pl.declarations().Inline(), "top:20px;left:10px;width:30px;height:40px;"; got != want {
		t.Errorf("declarations = %q, want %q", got, want)
	}
	if got := (placement{}).declarations(); len(got) != 0 {
		t.Errorf("empty placement produced %v", got)
	}
}

func TestPathData(t *testing.T) {
	pt := func(kind pptx.PathCommandKind, seq int, x, y pptx.Emu) pptx.PathPoint {
		return pptx.PathPoint{Kind: kind, Seq: seq, Pt: pptx.Point{X: x * 9525, Y: y * 9525}}
	}
	tests := []struct {
		name string
		path pptx.Path
		want string
	}{
		{
			name: "lines in sequence order",
			path: pptx.Path{
				Start: &pptx.Point{},
				Points: []pptx.PathPoint{
					pt(pptx.PathLineTo, 3, 0, 10),
					pt(pptx.PathLineTo, 1, 10, 0),
					pt(pptx.PathLineTo, 2, 10, 10),
				},
				Closed: true,
			},
			want: "M 0,0 L 10,0 L 10,10 L 0,10 Z",
		},
		{
			name: "cubic takes three points",
			path: pptx.Path{
				Start: &pptx.Point{X: 9525, Y: 9525},
				Points: []pptx.PathPoint{
					pt(pptx.PathCubicTo, 1, 2, 2),
					pt(pptx.PathCubicTo, 1, 3, 3),
					pt(pptx.PathCubicTo, 1, 4, 4),
					pt(pptx.PathMoveTo, 2, 5, 5),
					pt(pptx.PathLineTo, 3, 6, 6),
				},
			},
			want: "M 1,1 C 2,2 3,3 4,4 M 5,5 L 6,6",
		},
		{
			name: "incomplete cubic dropped",
			path: pptx.Path{
				Points: []pptx.PathPoint{
					pt(pptx.PathLineTo, 1, 1, 1),
					pt(pptx.PathCubicTo, 2, 2, 2),
					pt(pptx.PathCubicTo, 2, 3, 3),
				},
			},
			want: "M 0,0 L 1,1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pathData(tt.path); got != tt.want {
				t.Errorf("pathData() = %q, want %q", got, tt.want)
			}
		})
	}
}
