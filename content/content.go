// Package content opens presentation packages and prepares them for
// conversion.
package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pptxhtml/archive"
	"pptxhtml/misc"
	"pptxhtml/pptx"
	"pptxhtml/state"
)

// Content keeps opened package together with its part index.
type Content struct {
	SrcName   string
	RefID     string
	Container *archive.Container
	Deck      *pptx.Presentation
	WorkDir   string
}

// Prepare opens package read from r, builds part index and loads all slides.
// When requested damaged archives are repacked before opening.
func Prepare(ctx context.Context, r io.ReaderAt, size int64, srcName string, log *zap.Logger) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	if env.Cfg.Document.FixZip {
		data, err := archive.RepackReader(io.NewSectionReader(r, 0, size))
		if err != nil {
			return nil, fmt.Errorf("unable to repack presentation: %w", err)
		}
		r, size = bytes.NewReader(data), int64(len(data))
	}

	container, err := archive.NewContainer(r, size)
	if err != nil {
		return nil, err
	}

	deck, err := pptx.Load(container, log)
	if err != nil {
		return nil, fmt.Errorf("unable to load presentation: %w", err)
	}

	refID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to generate reference id: %w", err)
	}

	c := &Content{
		SrcName:   srcName,
		RefID:     refID.String(),
		Container: container,
		Deck:      deck,
	}

	if env.Rpt == nil {
		return c, nil
	}

	tmpDir, err := os.MkdirTemp("", misc.GetAppName()+"-")
	if err != nil {
		return nil, fmt.Errorf("unable to create temporary directory: %w", err)
	}
	env.Rpt.Store(fmt.Sprintf("%s-%s", misc.GetAppName(), c.RefID), tmpDir)
	c.WorkDir = tmpDir

	// Save parsed package to file for debugging
	if err := os.WriteFile(filepath.Join(tmpDir, filepath.Base(srcName)+"_parsed"), []byte(c.String()), 0644); err != nil {
		return nil, fmt.Errorf("unable to write parsed presentation for debugging: %w", err)
	}
	return c, nil
}

// Title returns deck title falling back to source name without extension.
func (c *Content) Title() string {
	if c.Deck != nil && c.Deck.Meta.Title != "" {
		return c.Deck.Meta.Title
	}
	base := filepath.Base(c.SrcName)
	return base[:len(base)-len(filepath.Ext(base))]
}
