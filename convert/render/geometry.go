package render

import (
	"slices"
	"strconv"
	"strings"

	"pptxhtml/css"
	"pptxhtml/pptx"
)

// pixelsPerInch is CSS reference resolution.
const pixelsPerInch = 96

// px converts EMU into CSS pixels.
func px(v pptx.Emu) float64 {
	return float64(v*pixelsPerInch) / pptx.EmuPerInch
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPx(v float64) string {
	return formatNumber(v) + "px"
}

// frame maps node coordinates into pixels relative to the containing block.
// Slide children use identity frame, group children are expressed in group
// child space: difference of origins, scaled independently per axis.
type frame struct {
	originX, originY pptx.Emu
	scaleX, scaleY   float64
}

var slideFrame = frame{scaleX: 1, scaleY: 1}

func (f frame) x(v pptx.Emu) float64 { return px(v-f.originX) * f.scaleX }
func (f frame) y(v pptx.Emu) float64 { return px(v-f.originY) * f.scaleY }
func (f frame) w(v pptx.Emu) float64 { return px(v) * f.scaleX }
func (f frame) h(v pptx.Emu) float64 { return px(v) * f.scaleY }

// childFrame returns frame for children of a group with the given transform
// placed in parent frame. Scales of nested groups multiply.
func childFrame(parent frame, x *pptx.Transform) frame {
	f := frame{scaleX: parent.scaleX, scaleY: parent.scaleY}
	if x == nil {
		return f
	}
	if x.ChildOffset != nil {
		f.originX, f.originY = x.ChildOffset.X, x.ChildOffset.Y
	}
	if x.Extent != nil && x.ChildExtent != nil {
		if x.ChildExtent.CX != 0 {
			f.scaleX *= float64(x.Extent.CX) / float64(x.ChildExtent.CX)
		}
		if x.ChildExtent.CY != 0 {
			f.scaleY *= float64(x.Extent.CY) / float64(x.ChildExtent.CY)
		}
	}
	return f
}

// placement is resolved geometry of a block.
type placement struct {
	hasOffset bool
	hasExtent bool
	left, top float64
	width     float64
	height    float64
}

func place(in inheritance, f frame) placement {
	var pl placement
	if off, ok := in.offset(); ok {
		pl.hasOffset = true
		pl.left, pl.top = f.x(off.X), f.y(off.Y)
	}
	if ext, ok := in.extent(); ok {
		pl.hasExtent = true
		pl.width, pl.height = f.w(ext.CX), f.h(ext.CY)
	}
	return pl
}

// declarations produces position and size properties. Missing geometry
// produces nothing.
func (pl placement) declarations() css.Declarations {
	var decls css.Declarations
	if pl.hasOffset {
		decls = append(decls,
			css.Declaration{Property: "top", Value: formatPx(pl.top)},
			css.Declaration{Property: "left", Value: formatPx(pl.left)})
	}
	if pl.hasExtent {
		decls = append(decls,
			css.Declaration{Property: "width", Value: formatPx(pl.width)},
			css.Declaration{Property: "height", Value: formatPx(pl.height)})
	}
	return decls
}

// rotation converts 60000ths of a degree into whole degrees.
func rotation(x *pptx.Transform) int64 {
	if x == nil {
		return 0
	}
	return x.Rotation / 60000
}

// blockDeclarations are common properties of every positioned block.
func blockDeclarations(n *pptx.Node, pl placement) css.Declarations {
	decls := pl.declarations()
	decls = append(decls,
		css.Declaration{Property: "z-index", Value: strconv.Itoa(n.Order)},
		css.Declaration{Property: "transform", Value: "rotate(" + strconv.FormatInt(rotation(n.Xfrm()), 10) + "deg)"})
	return decls
}

func point(pt pptx.Point) string {
	return formatNumber(px(pt.X)) + "," + formatNumber(px(pt.Y))
}

// pathData builds SVG path description. Commands are ordered by their sequence
// number first; cubic command takes three consecutive points, incomplete
// cubic at the end is dropped.
func pathData(p pptx.Path) string {
	points := slices.Clone(p.Points)
	slices.SortStableFunc(points, func(a, b pptx.PathPoint) int {
		return a.Seq - b.Seq
	})

	var sb strings.Builder
	start := pptx.Point{}
	if p.Start != nil {
		start = *p.Start
	}
	sb.WriteString("M " + point(start))
	for k := 0; k < len(points); {
		pt := points[k]
		switch pt.Kind {
		case pptx.PathCubicTo:
			if k+2 >= len(points) {
				k = len(points)
				continue
			}
			sb.WriteString(" C " + point(pt.Pt) + " " + point(points[k+1].Pt) + " " + point(points[k+2].Pt))
			k += 3
		case pptx.PathMoveTo:
			sb.WriteString(" M " + point(pt.Pt))
			k++
		default:
			sb.WriteString(" L " + point(pt.Pt))
			k++
		}
	}
	if p.Closed {
		sb.WriteString(" Z")
	}
	return sb.String()
}
