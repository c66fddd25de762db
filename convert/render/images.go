package render

import (
	"encoding/base64"

	"go.uber.org/zap"

	"pptxhtml/pptx"
	"pptxhtml/utils/images"
)

// preparedImage is cached result of embedding a package part.
type preparedImage struct {
	uri  string
	mime string
	ok   bool
}

// resolvePart follows relationship to package part or external target.
func (s *slideRenderer) resolvePart(rels pptx.Relationships, relID string) (pptx.Relationship, bool) {
	if relID == "" {
		return pptx.Relationship{}, false
	}
	rel, ok := rels.ByID(relID)
	if !ok {
		s.warn("Relationship not found, ignoring", zap.String("id", relID))
	}
	return rel, ok
}

// imageURI returns data URI for the image referenced by relID. External
// targets are returned as is.
func (s *slideRenderer) imageURI(rels pptx.Relationships, relID string) (string, bool) {
	rel, ok := s.resolvePart(rels, relID)
	if !ok {
		return "", false
	}
	if rel.External {
		return rel.Target, true
	}
	img := s.embed(rel.Target, true)
	return img.uri, img.ok
}

// embed reads part and encodes it as data URI. Pictures go through image
// preparation, other media are embedded untouched. Results are cached for
// the whole document.
func (s *slideRenderer) embed(part string, picture bool) preparedImage {
	if img, ok := s.images[part]; ok {
		return img
	}

	data, err := s.pres.ReadPart(part)
	if err != nil {
		s.warn("Unable to read media part, ignoring", zap.String("part", part), zap.Error(err))
		s.images[part] = preparedImage{}
		return preparedImage{}
	}

	mime := pptx.DetectMIME(part, data)
	if picture {
		cfg := s.cfg.Images
		prepared, err := images.Prepare(data, mime, images.Options{
			ConvertUnsupported: cfg.ConvertUnsupported,
			RasterizeSVG:       cfg.RasterizeSVG,
			MaxDimension:       cfg.MaxDimension,
			JPEGQuality:        cfg.JPEGQuality,
		})
		if err != nil {
			s.log.Debug("Image cannot be processed, embedding as is", zap.String("part", part), zap.Error(err))
		}
		data, mime = prepared.Data, prepared.MIME
		if prepared.Changed {
			s.log.Debug("Image converted", zap.String("part", part), zap.String("mime", mime),
				zap.Int("width", prepared.Width), zap.Int("height", prepared.Height))
		}
	}

	img := preparedImage{
		uri:  "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		mime: mime,
		ok:   true,
	}
	s.images[part] = img
	return img
}
