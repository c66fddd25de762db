package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// ErrPartNotFound is returned when requested part is absent from container.
var ErrPartNotFound = errors.New("part not found")

// maxPartSize limits amount of data read from a single part.
const maxPartSize = 512 << 20

// Container gives access to parts of a zip based package by part name. Part
// names are matched case-insensitively and without leading slash, as OPC
// requires.
type Container struct {
	parts map[string]*zip.File
	names []string
}

// NewContainer indexes all entries of the archive.
func NewContainer(r io.ReaderAt, size int64) (*Container, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("unable to open container: %w", err)
	}

	c := &Container{parts: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !isSafePath(f.Name) {
			return nil, fmt.Errorf("container entry %q: unsafe path (absolute or contains path traversal)", f.Name)
		}
		key := partKey(f.Name)
		if _, exists := c.parts[key]; exists {
			continue
		}
		c.parts[key] = f
		c.names = append(c.names, strings.TrimPrefix(f.Name, "/"))
	}
	slices.Sort(c.names)
	return c, nil
}

func partKey(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, "/"))
}

// Names returns sorted names of all parts in container.
func (c *Container) Names() []string {
	return slices.Clone(c.names)
}

// Has reports whether the named part is present.
func (c *Container) Has(name string) bool {
	_, ok := c.parts[partKey(name)]
	return ok
}

// ReadBytes returns raw content of the named part.
func (c *Container) ReadBytes(name string) ([]byte, error) {
	f, ok := c.parts[partKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	if f.UncompressedSize64 > maxPartSize {
		return nil, fmt.Errorf("part %s is too large (%d bytes)", name, f.UncompressedSize64)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open part %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxPartSize))
	if err != nil {
		return nil, fmt.Errorf("unable to read part %s: %w", name, err)
	}
	return data, nil
}

// ReadText returns content of the named part as string.
func (c *Container) ReadText(name string) (string, error) {
	data, err := c.ReadBytes(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadXML parses the named part as XML document. Declared non UTF-8 encodings
// are honored.
func (c *Container) ReadXML(name string) (*etree.Document, error) {
	data, err := c.ReadBytes(name)
	if err != nil {
		return nil, err
	}
	return ParseXML(data)
}

// ParseXML reads XML document from data the same way ReadXML does.
func ParseXML(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("unable to parse XML: %w", err)
	}
	if doc.Root() == nil {
		return nil, errors.New("unable to parse XML: no root element")
	}
	return doc, nil
}
