// Package image handles reference photo intake: media-type checks, dimension
// sniffing and data-URI embedding.
package image

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"mime"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedType is returned for media types outside the allow-list.
var ErrUnsupportedType = errors.New("image: unsupported media type")

// DefaultTypes is the default raster allow-list.
var DefaultTypes = []string{"image/png", "image/jpeg", "image/tiff"}

// Source is a loaded reference photo.
type Source struct {
	MediaType string // normalized declared type
	Format    string // format reported by the decoder
	Width     int    // natural width in pixels
	Height    int    // natural height in pixels
	DataURI   string // self-contained reference for embedding
}

// NormalizeMediaType lower-cases t, strips parameters and maps common aliases.
func NormalizeMediaType(t string) string {
	mt, _, err := mime.ParseMediaType(t)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(t))
	}
	switch mt {
	case "image/jpg", "image/pjpeg":
		return "image/jpeg"
	case "image/tif":
		return "image/tiff"
	case "image/x-ms-bmp":
		return "image/bmp"
	}
	return mt
}

// Allowed reports whether mediaType is in the allow-list.
func Allowed(mediaType string, allowed []string) bool {
	mt := NormalizeMediaType(mediaType)
	for _, a := range allowed {
		if NormalizeMediaType(a) == mt {
			return true
		}
	}
	return false
}

// Load validates raw bytes against the allow-list and reads their dimensions.
// Nothing is retained on failure.
func Load(data []byte, mediaType string, allowed []string) (*Source, error) {
	mt := NormalizeMediaType(mediaType)
	if !Allowed(mt, allowed) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, mediaType)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("failed to decode image: empty %dx%d", cfg.Width, cfg.Height)
	}
	// The bytes decide the embedded type, and it must be allowed as well.
	if detected := "image/" + format; detected != mt {
		if !Allowed(detected, allowed) {
			return nil, fmt.Errorf("%w: %q content declared as %q", ErrUnsupportedType, format, mediaType)
		}
		mt = detected
	}

	return &Source{
		MediaType: mt,
		Format:    format,
		Width:     cfg.Width,
		Height:    cfg.Height,
		DataURI:   "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// LoadFile reads an image from disk, deriving the media type from its extension.
func LoadFile(path string, allowed []string) (*Source, error) {
	mt := MediaTypeForPath(path)
	if !Allowed(mt, allowed) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return Load(data, mt, allowed)
}

// MediaTypeForPath guesses a media type from the file extension.
func MediaTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	}
	return ""
}

// Fit returns the canvas size for the image: its natural size scaled down so
// the width does not exceed maxWidth. maxWidth <= 0 disables fitting.
func (s *Source) Fit(maxWidth int) (int, int) {
	if maxWidth <= 0 || s.Width <= maxWidth {
		return s.Width, s.Height
	}
	scale := float64(maxWidth) / float64(s.Width)
	h := int(math.Round(float64(s.Height) * scale))
	if h < 1 {
		h = 1
	}
	return maxWidth, h
}

// IsDocumentType reports whether a file looks like a canonical SVG document,
// by declared type or, when the type is blank or unknown, by name.
func IsDocumentType(mediaType, name string) bool {
	if strings.HasSuffix(strings.ToLower(name), ".svg") {
		return true
	}
	mt := NormalizeMediaType(mediaType)
	return mt == "" || mt == "image/svg+xml"
}
