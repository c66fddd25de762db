package convert

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"pptxhtml/convert/render"
	"pptxhtml/css"
)

// pageSink collects rendered slides and interned styles, the page itself is
// assembled after rendering succeeded.
type pageSink struct {
	slides        []string
	styles        string
	width, height float64
	done          bool
}

func (s *pageSink) Emit(ev *render.Event) error {
	switch ev.Type {
	case render.EventMetadata:
		s.width, s.height = ev.Width, ev.Height
	case render.EventSlide:
		s.slides = append(s.slides, ev.Markup)
	case render.EventStyles:
		s.styles = ev.Markup
	case render.EventDone:
		s.done = true
	}
	return nil
}

// page combines base stylesheets with interned styles, everything scoped
// under the wrapper class.
func (s *pageSink) page(title, scope string, stylesheets [][]byte, log *zap.Logger) *render.Page {
	parser := css.NewParser(log)

	sheet := &css.Stylesheet{}
	for i, data := range stylesheets {
		sheet.Append(parser.Parse(data, fmt.Sprintf("stylesheet #%d", i+1)))
	}
	sheet.Append(parser.Parse([]byte(s.styles), "interned styles"))
	for _, w := range sheet.Warnings {
		log.Warn("Stylesheet problem", zap.String("warning", w))
	}

	return &render.Page{
		Title:      title,
		Scope:      scope,
		Stylesheet: sheet.Scoped("." + scope),
		Slides:     s.slides,
		Width:      s.width,
		Height:     s.height,
	}
}

// eventSink streams events as JSON lines.
type eventSink struct {
	enc *json.Encoder
}

func newEventSink(w io.Writer) *eventSink {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &eventSink{enc: enc}
}

func (s *eventSink) Emit(ev *render.Event) error {
	return s.enc.Encode(ev)
}
