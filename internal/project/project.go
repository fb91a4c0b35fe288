// Package project reads and writes annotation documents on disk.
package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"region-tracer/internal/document"
	"region-tracer/internal/svgdoc"
)

// Load reads and decodes an annotation document. fallback supplies the
// canvas size when the file carries none.
func Load(path string, fallback svgdoc.Size) (*svgdoc.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := svgdoc.Decode(bytes.NewReader(data), fallback)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return res, nil
}

// Save writes the document to path, creating parent directories as needed.
func Save(path string, doc *document.Document) error {
	data, err := svgdoc.Marshal(doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve returns p relative to the directory of base, unless p is absolute
// or empty.
func Resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(base), p)
}
