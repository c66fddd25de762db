package content

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"pptxhtml/config"
	"pptxhtml/pptx/pptxtest"
	"pptxhtml/state"
)

func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = zaptest.NewLogger(t)
	env.Cfg = cfg
	return ctx, env
}

func prepareDeck(t *testing.T, ctx context.Context, deck pptxtest.Deck, name string) (*Content, error) {
	t.Helper()
	data := deck.Zip(t)
	return Prepare(ctx, bytes.NewReader(data), int64(len(data)), name, state.EnvFromContext(ctx).Log)
}

func TestPrepare(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	c, err := prepareDeck(t, ctx, pptxtest.Default(), "decks/sample.pptx")
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if c.SrcName != "decks/sample.pptx" {
		t.Errorf("SrcName = %q", c.SrcName)
	}
	if _, err := uuid.Parse(c.RefID); err != nil {
		t.Errorf("RefID %q is not uuid: %v", c.RefID, err)
	}
	if got := len(c.Deck.Slides); got != 1 {
		t.Errorf("slides = %d, want 1", got)
	}
	if !c.Container.Has(pptxtest.Slide1) {
		t.Errorf("container misses %s", pptxtest.Slide1)
	}
	if got := c.Title(); got != "Test deck" {
		t.Errorf("Title() = %q, want %q", got, "Test deck")
	}
	if c.WorkDir != "" {
		t.Errorf("WorkDir = %q without report", c.WorkDir)
	}
}

func TestPrepare_UniqueRefID(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	a, err := prepareDeck(t, ctx, pptxtest.Default(), "a.pptx")
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	b, err := prepareDeck(t, ctx, pptxtest.Default(), "b.pptx")
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if a.RefID == b.RefID {
		t.Errorf("reference ids collide: %s", a.RefID)
	}
}

func TestPrepare_TitleFallback(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	deck := pptxtest.Default().With(pptxtest.CoreProps, pptxtest.CorePropsXML("", ""))
	c, err := prepareDeck(t, ctx, deck, "dir/Quarterly review.pptx")
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if got := c.Title(); got != "Quarterly review" {
		t.Errorf("Title() = %q, want %q", got, "Quarterly review")
	}
}

func TestPrepare_FixZip(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.Cfg.Document.FixZip = true

	c, err := prepareDeck(t, ctx, pptxtest.Default(), "fixed.pptx")
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if got := len(c.Deck.Slides); got != 1 {
		t.Errorf("slides = %d, want 1", got)
	}
}

func TestPrepare_Errors(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	tests := []struct {
		name string
		data []byte
	}{
		{"not a zip", []byte("definitely not a presentation")},
		{"no slides", pptxtest.Deck{"docProps/app.xml": "<Properties/>"}.Zip(t)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Prepare(ctx, bytes.NewReader(tt.data), int64(len(tt.data)), "bad.pptx", zaptest.NewLogger(t))
			if err == nil {
				t.Fatal("Prepare() succeeded, want error")
			}
		})
	}
}

func TestPrepare_Cancelled(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	if _, err := prepareDeck(t, ctx, pptxtest.Default(), "x.pptx"); err == nil {
		t.Fatal("Prepare() on cancelled context succeeded")
	}
}

func TestPrepare_DebugDump(t *testing.T) {
	ctx, env := setupTestEnv(t)

	rc := &config.ReporterConfig{Destination: filepath.Join(t.TempDir(), "report.zip")}
	rpt, err := rc.Prepare()
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	env.Rpt = rpt
	t.Cleanup(func() { _ = rpt.Close() })

	c, err := prepareDeck(t, ctx, pptxtest.Default(), "sample.pptx")
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if c.WorkDir == "" {
		t.Fatal("WorkDir is empty with report enabled")
	}
	data, err := os.ReadFile(filepath.Join(c.WorkDir, "sample.pptx_parsed"))
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	dump := string(data)
	for _, want := range []string{"sample.pptx", c.RefID, pptxtest.Slide1, "Presentation part="} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump misses %q", want)
		}
	}
}

func TestContent_StringNil(t *testing.T) {
	var c *Content
	if got := c.String(); got != "<nil Content>" {
		t.Errorf("String() = %q", got)
	}
}
