// Package palette maps region colours to user-facing display names.
package palette

import (
	"errors"
	"strings"
	"unicode/utf8"

	"region-tracer/pkg/colorutil"
)

var (
	// ErrEmptyName is returned when a rename trims to nothing.
	ErrEmptyName = errors.New("palette: name is empty")
	// ErrInvalidText is returned for names or colours that cannot be stored
	// in an XML attribute: invalid UTF-8 or control characters.
	ErrInvalidText = errors.New("palette: text contains invalid characters")
)

// IsXMLChar reports whether r may appear in XML 1.0 character data.
func IsXMLChar(r rune) bool {
	switch {
	case r == 0x9 || r == 0xA || r == 0xD:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= utf8.MaxRune:
		return true
	}
	return false
}

// ValidText reports whether s is valid UTF-8 made only of XML characters.
func ValidText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if !IsXMLChar(r) {
			return false
		}
	}
	return true
}

// Entry is one colour in the palette.
type Entry struct {
	Color string `yaml:"color" json:"color"` // normalized key
	Name  string `yaml:"name" json:"name"`
}

// Registry holds palette entries in insertion order. Keys are unique under
// colorutil.NormalizeKey.
type Registry struct {
	entries []Entry
	index   map[string]int
}

// New creates a registry seeded with the given entries. Duplicate keys keep
// the first occurrence.
func New(seed ...Entry) *Registry {
	r := &Registry{index: make(map[string]int)}
	for _, e := range seed {
		r.RegisterIfAbsent(e.Color, e.Name)
	}
	return r
}

// RegisterIfAbsent adds colorKey with name unless the key is already known
// or is not valid text. An empty or invalid name defaults to the key. It reports whether an entry was added.
func (r *Registry) RegisterIfAbsent(colorKey, name string) bool {
	key := colorutil.NormalizeKey(colorKey)
	if key == "" || !ValidText(key) {
		return false
	}
	if _, ok := r.index[key]; ok {
		return false
	}
	name = strings.TrimSpace(name)
	if name == "" || !ValidText(name) {
		name = key
	}
	r.index[key] = len(r.entries)
	r.entries = append(r.entries, Entry{Color: key, Name: name})
	return true
}

// Rename sets the display name for colorKey, registering the key if it is
// unknown. Callers propagate the name to regions themselves.
func (r *Registry) Rename(colorKey, newName string) error {
	name := strings.TrimSpace(newName)
	if name == "" {
		return ErrEmptyName
	}
	if !ValidText(name) {
		return ErrInvalidText
	}
	key := colorutil.NormalizeKey(colorKey)
	if i, ok := r.index[key]; ok {
		r.entries[i].Name = name
		return nil
	}
	r.RegisterIfAbsent(key, name)
	return nil
}

// Apply merges names learned from an imported document: known keys take the
// imported name, unknown keys are appended.
func (r *Registry) Apply(updates []Entry) {
	for _, u := range updates {
		if err := r.Rename(u.Color, u.Name); err != nil {
			r.RegisterIfAbsent(u.Color, u.Color)
		}
	}
}

// ResolveName returns the display name for colorKey, or the key itself.
func (r *Registry) ResolveName(colorKey string) string {
	key := colorutil.NormalizeKey(colorKey)
	if i, ok := r.index[key]; ok {
		return r.entries[i].Name
	}
	return key
}

// Has reports whether colorKey is registered.
func (r *Registry) Has(colorKey string) bool {
	_, ok := r.index[colorutil.NormalizeKey(colorKey)]
	return ok
}

// Entries returns a copy of the palette in insertion order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}
