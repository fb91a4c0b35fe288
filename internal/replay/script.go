// Package replay drives an engine from a YAML list of recorded steps.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"region-tracer/internal/app"
	"region-tracer/internal/image"
	"region-tracer/internal/project"

	"gopkg.in/yaml.v3"
)

var ErrBadStep = errors.New("replay: step must set exactly one action")

// XY is a canvas point written as [x, y].
type XY [2]float64

// Calibrate measures two points and answers the distance prompt.
type Calibrate struct {
	From   XY     `yaml:"from"`
	To     XY     `yaml:"to"`
	Meters string `yaml:"meters"`
}

// Recolor paints the region under At with Color.
type Recolor struct {
	At    XY     `yaml:"at"`
	Color string `yaml:"color"`
}

// Rename gives a palette colour a display name.
type Rename struct {
	Color string `yaml:"color"`
	Name  string `yaml:"name"`
}

// Step is one recorded action. Exactly one field is set.
type Step struct {
	Select    string     `yaml:"select,omitempty"`
	Draw      []XY       `yaml:"draw,omitempty"`
	Calibrate *Calibrate `yaml:"calibrate,omitempty"`
	Recolor   *Recolor   `yaml:"recolor,omitempty"`
	Delete    *XY        `yaml:"delete,omitempty"`
	Rename    *Rename    `yaml:"rename,omitempty"`
}

// Name returns the action's name for messages.
func (s Step) Name() string {
	switch {
	case s.Select != "":
		return "select"
	case s.Draw != nil:
		return "draw"
	case s.Calibrate != nil:
		return "calibrate"
	case s.Recolor != nil:
		return "recolor"
	case s.Delete != nil:
		return "delete"
	case s.Rename != nil:
		return "rename"
	}
	return "empty"
}

func (s Step) count() int {
	n := 0
	for _, set := range []bool{s.Select != "", s.Draw != nil, s.Calibrate != nil, s.Recolor != nil, s.Delete != nil, s.Rename != nil} {
		if set {
			n++
		}
	}
	return n
}

// Script is a replayable session. Image and Document paths are relative to
// the script file.
type Script struct {
	Image    string `yaml:"image,omitempty"`
	Document string `yaml:"document,omitempty"`
	Steps    []Step `yaml:"steps"`
}

// Parse decodes and validates a script.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	for i, st := range s.Steps {
		if st.count() != 1 {
			return nil, fmt.Errorf("step %d: %w", i+1, ErrBadStep)
		}
	}
	return &s, nil
}

// Load reads a script file and rebases its paths on the file's directory.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, err
	}
	s.Image = project.Resolve(path, s.Image)
	s.Document = project.Resolve(path, s.Document)
	return s, nil
}

// Run loads the script's sources into e and applies every step, stopping at
// the first failure.
func (s *Script) Run(e *app.Engine) error {
	if s.Image != "" {
		data, err := os.ReadFile(s.Image)
		if err != nil {
			return err
		}
		if err := e.LoadImage(data, image.MediaTypeForPath(s.Image)); err != nil {
			return fmt.Errorf("image %s: %w", s.Image, err)
		}
	}
	if s.Document != "" {
		data, err := os.ReadFile(s.Document)
		if err != nil {
			return err
		}
		if err := e.Import(data, image.MediaTypeForPath(s.Document), s.Document); err != nil {
			return fmt.Errorf("document %s: %w", s.Document, err)
		}
	}

	for i, st := range s.Steps {
		if err := apply(e, st); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Name(), err)
		}
	}
	return nil
}

func apply(e *app.Engine, st Step) error {
	switch {
	case st.Select != "":
		return e.SelectColor(st.Select)

	case st.Draw != nil:
		if err := e.StartDrawing(); err != nil {
			return err
		}
		for _, p := range st.Draw {
			if err := e.Click(p[0], p[1]); err != nil {
				return err
			}
		}
		_, err := e.ConfirmRegion()
		return err

	case st.Calibrate != nil:
		c := st.Calibrate
		if err := e.StartScaleCalibration(); err != nil {
			return err
		}
		if err := e.Click(c.From[0], c.From[1]); err != nil {
			return err
		}
		if err := e.Click(c.To[0], c.To[1]); err != nil {
			return err
		}
		return e.Submit(c.Meters)

	case st.Recolor != nil:
		if err := e.SelectColor(st.Recolor.Color); err != nil {
			return err
		}
		if err := e.ToggleColorAssign(); err != nil {
			return err
		}
		defer e.Cancel()
		return e.Click(st.Recolor.At[0], st.Recolor.At[1])

	case st.Delete != nil:
		if err := e.StartDelete(); err != nil {
			return err
		}
		if err := e.Click(st.Delete[0], st.Delete[1]); err != nil {
			e.Cancel()
			return err
		}
		return nil

	case st.Rename != nil:
		return e.RenameColor(st.Rename.Color, st.Rename.Name)
	}
	return ErrBadStep
}
