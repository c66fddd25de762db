package convert

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"pptxhtml/common"
	"pptxhtml/content"
	"pptxhtml/convert/render"
	"pptxhtml/state"
)

// generate renders the deck and writes output in the requested format.
func generate(ctx context.Context, c *content.Content, format common.OutputFmt, outputName string, env *state.LocalEnv, log *zap.Logger) error {
	switch format {
	case common.OutputFmtEvents:
		return generateEvents(ctx, c, outputName, env, log)
	case common.OutputFmtHtml:
		return generatePage(ctx, c, outputName, env, log)
	default:
		return fmt.Errorf("unsupported output format %s", format)
	}
}

// generatePage writes nothing unless whole deck was rendered.
func generatePage(ctx context.Context, c *content.Content, outputName string, env *state.LocalEnv, log *zap.Logger) error {
	sink := &pageSink{}
	if err := render.Render(ctx, c.Deck, &env.Cfg.Document, sink, log); err != nil {
		return err
	}
	if !sink.done {
		return errors.New("rendering has not been completed")
	}

	buf := new(bytes.Buffer)
	if err := render.WritePage(buf, sink.page(c.Title(), env.Cfg.Document.ScopeSelector, env.Stylesheets, log)); err != nil {
		return err
	}
	if err := os.WriteFile(outputName, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write page: %w", err)
	}
	return nil
}

// generateEvents streams events as they come, failure event included.
func generateEvents(ctx context.Context, c *content.Content, outputName string, env *state.LocalEnv, log *zap.Logger) (err error) {
	f, err := os.Create(outputName)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	w := bufio.NewWriter(f)
	err = render.Render(ctx, c.Deck, &env.Cfg.Document, newEventSink(w), log)
	return multierr.Append(err, w.Flush())
}
