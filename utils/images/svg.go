package images

import (
	"bytes"
	"image"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const (
	// side used when viewBox does not give one
	svgFallbackSide = 1024
	// hard limit for any rasterized side
	svgRasterLimit = 8192
)

// svgSize returns raster size for viewBox w x h fitted into maxDim (0 - no
// fitting), keeping aspect ratio and never exceeding svgRasterLimit.
func svgSize(vw, vh float64, maxDim int) (int, int) {
	w, h := math.Ceil(vw), math.Ceil(vh)
	if w <= 0 {
		w = svgFallbackSide
	}
	if h <= 0 {
		h = svgFallbackSide
	}

	limit := float64(svgRasterLimit)
	if maxDim > 0 {
		limit = min(limit, float64(maxDim))
	}
	if w > limit || h > limit {
		scale := min(limit/w, limit/h)
		w, h = math.Round(w*scale), math.Round(h*scale)
	}
	return max(int(w), 1), max(int(h), 1)
}

// rasterizeSVG draws SVG picture onto transparent RGBA image.
func rasterizeSVG(data []byte, maxDim int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	w, h := svgSize(icon.ViewBox.W, icon.ViewBox.H, maxDim)
	icon.SetTarget(0, 0, float64(w), float64(h))

	// zero RGBA is transparent
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return dst, nil
}
