// Package parser recovers the worksheet/drawing/media relationship graph
// from the raw ZIP/XML internals of an xlsx package.
package parser

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
)

// ErrEntryNotFound reports a package entry that does not exist.
var ErrEntryNotFound = errors.New("package entry not found")

// PackageReader exposes the named entries of an opened workbook package.
type PackageReader interface {
	// HasEntry reports whether the package contains the named entry.
	HasEntry(name string) bool
	// ReadText reads the named entry as text.
	ReadText(name string) (string, error)
	// ReadBinary reads the named entry's raw bytes.
	ReadBinary(name string) ([]byte, error)
}

// zipPackage adapts a zip.Reader to PackageReader. Entry names are full
// package paths ("xl/workbook.xml").
type zipPackage struct {
	files map[string]*zip.File
}

// NewPackage wraps an opened zip archive as a PackageReader.
func NewPackage(r *zip.Reader) PackageReader {
	files := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		files[f.Name] = f
	}
	return &zipPackage{files: files}
}

func (p *zipPackage) HasEntry(name string) bool {
	_, ok := p.files[name]
	return ok
}

func (p *zipPackage) ReadText(name string) (string, error) {
	data, err := p.ReadBinary(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (p *zipPackage) ReadBinary(name string) ([]byte, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open entry %s: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", name, err)
	}
	return data, nil
}
