// Package colorutil provides shared color utilities for the region tracer.
package colorutil

import (
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultColor is used for imported shapes that carry no colour at all.
const DefaultColor = "#ff7043"

// Common overlay colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
)

// named covers the CSS keywords likely to show up in hand-edited documents.
var named = map[string]color.RGBA{
	"black":   Black,
	"white":   White,
	"red":     {R: 255, A: 255},
	"green":   {G: 128, A: 255},
	"lime":    {G: 255, A: 255},
	"blue":    {B: 255, A: 255},
	"yellow":  {R: 255, G: 255, A: 255},
	"cyan":    {G: 255, B: 255, A: 255},
	"magenta": Magenta,
	"orange":  {R: 255, G: 165, A: 255},
	"purple":  {R: 128, B: 128, A: 255},
	"gray":    {R: 128, G: 128, B: 128, A: 255},
	"grey":    {R: 128, G: 128, B: 128, A: 255},
}

// NormalizeKey returns the palette key for a colour value: trimmed and lower-cased.
func NormalizeKey(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

// SameColor reports whether two colour values share a palette key.
func SameColor(a, b string) bool {
	return NormalizeKey(a) == NormalizeKey(b)
}

// ParseRGBA converts a hex (#rgb / #rrggbb) or CSS keyword colour to RGBA.
// ok is false for anything else; callers fall back to their own default.
func ParseRGBA(c string) (color.RGBA, bool) {
	key := NormalizeKey(c)
	if rgba, ok := named[key]; ok {
		return rgba, true
	}
	cf, err := colorful.Hex(key)
	if err != nil {
		return color.RGBA{}, false
	}
	r, g, b := cf.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, true
}

// WithAlpha returns the opaque colour c as a non-premultiplied colour with
// its alpha taken from an opacity in [0,1].
func WithAlpha(c color.RGBA, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(opacity*255 + 0.5)}
}
