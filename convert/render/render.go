// Package render turns loaded presentation into HTML markup: one section per
// slide with absolutely positioned blocks, plus a stylesheet of interned run
// styles. Output is delivered as an ordered sequence of events.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"pptxhtml/config"
	"pptxhtml/css"
	"pptxhtml/pptx"
)

// Renderer keeps state shared by all slides of one document: interned styles,
// document color map, prepared images and numeral labels. Slides are rendered
// strictly in order since later slides depend on state established by earlier
// ones. Renderer must not be reused for another document or used
// concurrently.
type Renderer struct {
	pres *pptx.Presentation
	cfg  *config.DocumentConfig

	styles *StyleTable
	// first color map observed, kept for the rest of the document
	colorMap pptx.ColorMap
	images   map[string]preparedImage
	labels   *labelCache
	// slide part name -> slide number, for internal links
	slideNumbers map[string]int

	sink Sink
	log  *zap.Logger
}

func NewRenderer(pres *pptx.Presentation, cfg *config.DocumentConfig, log *zap.Logger) *Renderer {
	r := &Renderer{
		pres:         pres,
		cfg:          cfg,
		styles:       NewStyleTable(),
		images:       make(map[string]preparedImage),
		labels:       newLabelCache(),
		slideNumbers: make(map[string]int, len(pres.Slides)),
		log:          log.Named("render"),
	}
	for _, s := range pres.Slides {
		r.slideNumbers[s.Path] = s.Number
	}
	return r
}

// Styles returns stylesheet with every run style interned so far.
func (r *Renderer) Styles() *css.Stylesheet {
	return r.styles.Stylesheet()
}

// PageSize returns slide size in CSS pixels.
func (r *Renderer) PageSize() (float64, float64) {
	return px(r.pres.Size.CX), px(r.pres.Size.CY)
}

// Render converts presentation slides emitting events to sink in document
// order. Fatal problems (missing relationships or theme, cancellation, sink
// failures) stop processing, are reported with a single failure event and
// returned.
func Render(ctx context.Context, pres *pptx.Presentation, cfg *config.DocumentConfig, sink Sink, log *zap.Logger) error {
	return NewRenderer(pres, cfg, log).Render(ctx, sink)
}

// Render runs the pipeline. See package level Render.
func (r *Renderer) Render(ctx context.Context, sink Sink) error {
	r.sink = sink
	start := time.Now()

	if err := r.run(ctx, start); err != nil {
		r.log.Error("Unable to render presentation", zap.Error(err))
		if emitErr := sink.Emit(&Event{Type: EventFailure, Message: err.Error()}); emitErr != nil {
			r.log.Debug("Unable to deliver failure event", zap.Error(emitErr))
		}
		return err
	}
	return nil
}

func (r *Renderer) run(ctx context.Context, start time.Time) error {
	width, height := r.PageSize()
	if err := r.emit(&Event{Type: EventMetadata, Width: width, Height: height}); err != nil {
		return err
	}

	total := len(r.pres.Slides)
	for i, slide := range r.pres.Slides {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("rendering interrupted before slide %d: %w", slide.Number, err)
		}
		if slide.Hidden && r.cfg.SkipHidden {
			r.info(fmt.Sprintf("Skipping hidden slide %d", slide.Number))
		} else {
			r.info(fmt.Sprintf("Processing slide %d", slide.Number))
			markup, err := r.RenderSlide(slide)
			if err != nil {
				return err
			}
			if err := r.emit(&Event{Type: EventSlide, Slide: slide.Number, Markup: markup}); err != nil {
				return err
			}
		}
		if err := r.emit(&Event{Type: EventProgress, Slide: slide.Number, Progress: float64(i+1) * 100 / float64(total)}); err != nil {
			return err
		}
	}

	if err := r.emit(&Event{Type: EventStyles, Markup: r.styles.Stylesheet().String()}); err != nil {
		return err
	}
	return r.emit(&Event{
		Type:      EventDone,
		Width:     width,
		Height:    height,
		ElapsedMS: time.Since(start).Milliseconds(),
	})
}

// RenderSlide produces markup of a single slide. Color map, styles and image
// caches of the renderer are updated.
func (r *Renderer) RenderSlide(slide *pptx.Slide) (string, error) {
	section, err := r.slideElement(slide)
	if err != nil {
		return "", err
	}
	return renderMarkup(section)
}

func (r *Renderer) slideElement(slide *pptx.Slide) (*etree.Element, error) {
	chain, err := r.pres.Chain(slide)
	if err != nil {
		return nil, fmt.Errorf("slide %d: %w", slide.Number, err)
	}
	r.observeColorMap(chain)

	sr := &slideRenderer{
		Renderer: r,
		chain:    chain,
		colors:   colorResolver{theme: chain.Theme, colorMap: r.colorMap},
		log:      r.log.With(zap.Int("slide", slide.Number)),
	}

	width, height := r.PageSize()
	section := etree.NewElement("section")
	section.CreateAttr("id", slideAnchor(slide.Number))
	section.CreateAttr("style", css.Declarations{
		{Property: "width", Value: formatPx(width)},
		{Property: "height", Value: formatPx(height)},
	}.Inline())
	sr.renderNodes(section, slide.Tree, slideFrame)
	applyNumbering(section, r.labels)
	return section, nil
}

// observeColorMap establishes document color map once: slide override, then
// layout override, then master mapping of the first rendered slide. It is
// never re-read afterwards.
func (r *Renderer) observeColorMap(chain *pptx.Chain) {
	if r.colorMap != nil {
		return
	}
	switch {
	case chain.Slide.ColorMapOverride != nil:
		r.colorMap = chain.Slide.ColorMapOverride
	case chain.Layout.ColorMapOverride != nil:
		r.colorMap = chain.Layout.ColorMapOverride
	case chain.Master.ColorMap != nil:
		r.colorMap = chain.Master.ColorMap
	default:
		return
	}
	r.log.Debug("Document color map established", zap.Any("map", r.colorMap))
}

func (r *Renderer) emit(ev *Event) error {
	if r.sink == nil {
		return nil
	}
	if err := r.sink.Emit(ev); err != nil {
		return fmt.Errorf("unable to deliver %s event: %w", ev.Type, err)
	}
	return nil
}

func (r *Renderer) info(msg string) {
	r.log.Debug(msg)
	if err := r.emit(&Event{Type: EventInfo, Message: msg}); err != nil {
		r.log.Debug("Unable to deliver info event", zap.Error(err))
	}
}

// slideRenderer renders one slide with its inheritance chain.
type slideRenderer struct {
	*Renderer
	chain  *pptx.Chain
	colors colorResolver
	log    *zap.Logger
}

// warn reports ignorable problem. Rendering continues.
func (s *slideRenderer) warn(msg string, fields ...zap.Field) {
	s.log.Warn(msg, fields...)
	text := fmt.Sprintf("slide %d: %s", s.chain.Slide.Number, msg)
	if err := s.emit(&Event{Type: EventWarning, Slide: s.chain.Slide.Number, Message: text}); err != nil {
		s.log.Debug("Unable to deliver warning event", zap.Error(err))
	}
}

func slideAnchor(number int) string {
	return fmt.Sprintf("slide-%d", number)
}
