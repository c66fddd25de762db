package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"pptxhtml/common"
	"pptxhtml/config"
	"pptxhtml/content"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	Author     string
	Subject    string
	Modified   string
	Slides     int
	Format     string
	SourceFile string
	DeckID     string
}

func expandTemplate(c *content.Content, name config.TemplateFieldName, field string, format common.OutputFmt) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		Title:      c.Title(),
		Format:     format.String(),
		SourceFile: strings.TrimSuffix(filepath.Base(c.SrcName), filepath.Ext(c.SrcName)),
		DeckID:     c.RefID,
	}
	if c.Deck != nil {
		values.Author = c.Deck.Meta.Creator
		values.Subject = c.Deck.Meta.Subject
		values.Modified = c.Deck.Meta.Modified
		values.Slides = len(c.Deck.Slides)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
