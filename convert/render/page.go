package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"pptxhtml/css"
)

// renderMarkup serializes markup tree as HTML5.
func renderMarkup(el *etree.Element) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, toHTML(el)); err != nil {
		return "", fmt.Errorf("unable to serialize markup: %w", err)
	}
	return buf.String(), nil
}

func toHTML(el *etree.Element) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     el.Tag,
		DataAtom: atom.Lookup([]byte(el.Tag)),
	}
	for _, a := range el.Attr {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Value})
	}
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Element:
			n.AppendChild(toHTML(t))
		case *etree.CharData:
			n.AppendChild(&html.Node{Type: html.TextNode, Data: t.Data})
		}
	}
	return n
}

// Page is a standalone document with all slides of a deck.
type Page struct {
	Title string
	Lang  string
	// class of the element wrapping slides
	Scope      string
	Stylesheet *css.Stylesheet
	// rendered slide sections, in order
	Slides        []string
	Width, Height float64
}

// WritePage writes complete HTML document.
func WritePage(w io.Writer, p *Page) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	if p.Lang != "" {
		root.Attr = append(root.Attr, html.Attribute{Key: "lang", Val: p.Lang})
	}
	doc.AppendChild(root)

	head := element(atom.Head)
	root.AppendChild(head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	title := element(atom.Title)
	title.AppendChild(&html.Node{Type: html.TextNode, Data: p.Title})
	head.AppendChild(title)
	if p.Stylesheet != nil {
		style := element(atom.Style)
		style.AppendChild(&html.Node{Type: html.TextNode, Data: p.Stylesheet.String()})
		head.AppendChild(style)
	}

	body := element(atom.Body)
	root.AppendChild(body)
	wrapper := element(atom.Div)
	if p.Scope != "" {
		wrapper.Attr = append(wrapper.Attr, html.Attribute{Key: "class", Val: p.Scope})
	}
	wrapper.Attr = append(wrapper.Attr, html.Attribute{Key: "style", Val: css.Declarations{
		{Property: "width", Value: formatPx(p.Width)},
	}.Inline()})
	body.AppendChild(wrapper)
	for _, s := range p.Slides {
		wrapper.AppendChild(&html.Node{Type: html.RawNode, Data: s})
	}

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("unable to write page: %w", err)
	}
	return nil
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}
