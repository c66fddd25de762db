package render

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"pptxhtml/pptx"
)

func (s *slideRenderer) picture(parent *etree.Element, n *pptx.Node, f frame) {
	in := inherit(n, s.chain)
	pl := place(in, f)
	div := s.block(parent, n, in, "picture")
	div.CreateAttr("style", blockDeclarations(n, pl).Inline())

	pic := n.Picture
	if pic == nil {
		s.warn("Picture without image data, skipping", zap.String("id", n.ID))
		return
	}
	if pic.Media != nil && s.media(div, pic.Media) {
		return
	}

	relID := pic.EmbedID
	if relID == "" {
		relID = pic.LinkID
	}
	uri, ok := s.imageURI(s.chain.Slide.Rels, relID)
	if !ok {
		return
	}
	img := div.CreateElement("img")
	img.CreateAttr("src", uri)
	img.CreateAttr("style", "width:100%;height:100%;")
	if n.Name != "" {
		img.CreateAttr("alt", n.Name)
	}
}

// media places video or audio player. Returns false when poster image should
// be rendered instead.
func (s *slideRenderer) media(div *etree.Element, m *pptx.Media) bool {
	var (
		tag      string
		enabled  bool
		playable func(string) bool
	)
	switch m.Kind {
	case pptx.MediaVideo:
		tag, enabled, playable = "video", s.cfg.Media.EmbedVideo, pptx.PlayableVideo
	case pptx.MediaAudio:
		tag, enabled, playable = "audio", s.cfg.Media.EmbedAudio, pptx.PlayableAudio
	default:
		return false
	}
	if !enabled {
		return false
	}

	rel, ok := s.resolvePart(s.chain.Slide.Rels, m.RelID)
	if !ok {
		return false
	}

	var src, mime string
	if rel.External {
		src, mime = rel.Target, pptx.DetectMIME(rel.Target, nil)
	} else {
		data := s.embed(rel.Target, false)
		if !data.ok {
			return false
		}
		src, mime = data.uri, data.mime
	}

	if !playable(mime) {
		s.warn("Media type is not supported, skipping", zap.String("kind", string(m.Kind)), zap.String("mime", mime))
		span := div.CreateElement("span")
		span.CreateAttr("class", "unsupported-media")
		span.CreateAttr("style", "color:red;")
		span.SetText("This " + tag + " type is not supported by the browser")
		return true
	}

	player := div.CreateElement(tag)
	player.CreateAttr("src", src)
	player.CreateAttr("controls", "")
	player.CreateAttr("style", "width:100%;height:100%;")
	player.SetText("This browser does not support the " + tag + " tag")
	return true
}
