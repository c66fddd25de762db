// Package images prepares pictures for embedding into HTML pages.
package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Options controls Prepare.
type Options struct {
	// re-encode formats browsers do not display as PNG
	ConvertUnsupported bool
	RasterizeSVG       bool
	// 0 - keep original dimensions
	MaxDimension int
	JPEGQuality  int
}

// Image is picture data ready to be placed into a data URI.
type Image struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
	// true when Data differs from original bytes
	Changed bool
}

// browserUnfriendly lists decodable formats browsers commonly refuse to show.
func browserUnfriendly(format string) bool {
	switch format {
	case "bmp", "tiff", "webp":
		return true
	}
	return false
}

// Prepare decodes picture data and applies requested transformations. Data
// which cannot be decoded (EMF, WMF and such) is returned untouched together
// with decoding error so caller may decide what to do.
func Prepare(data []byte, mime string, opts Options) (*Image, error) {
	res := &Image{Data: data, MIME: mime}

	if strings.HasSuffix(strings.ToLower(mime), "svg+xml") {
		res.MIME = "image/svg+xml"
		if !opts.RasterizeSVG {
			return res, nil
		}
		img, err := rasterizeSVG(data, opts.MaxDimension)
		if err != nil {
			return res, fmt.Errorf("unable to rasterize svg: %w", err)
		}
		return encode(res, img, "png", opts)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return res, fmt.Errorf("unable to decode image: %w", err)
	}
	res.Width, res.Height = img.Bounds().Dx(), img.Bounds().Dy()

	changed := false
	target := format
	if opts.ConvertUnsupported && browserUnfriendly(format) {
		target = "png"
		changed = true
	}
	if opts.MaxDimension > 0 && (res.Width > opts.MaxDimension || res.Height > opts.MaxDimension) {
		img = imaging.Fit(img, opts.MaxDimension, opts.MaxDimension, imaging.Lanczos)
		if target == "gif" {
			// animation is lost anyway
			target = "png"
		}
		changed = true
	}
	if !changed {
		return res, nil
	}
	return encode(res, img, target, opts)
}

func encode(res *Image, img image.Image, format string, opts Options) (*Image, error) {
	buf := new(bytes.Buffer)
	switch format {
	case "jpeg":
		if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(opts.JPEGQuality)); err != nil {
			return res, fmt.Errorf("unable to encode jpeg: %w", err)
		}
		res.MIME = "image/jpeg"
	case "png":
		if err := imaging.Encode(buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
			return res, fmt.Errorf("unable to encode png: %w", err)
		}
		res.MIME = "image/png"
	default:
		return res, fmt.Errorf("unable to encode %s image", format)
	}
	res.Data = buf.Bytes()
	res.Width, res.Height = img.Bounds().Dx(), img.Bounds().Dy()
	res.Changed = true
	return res, nil
}
