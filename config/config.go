// Package config loads breakpoint definitions from YAML or TOML files and
// writes registry snapshots.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/comalice/breakpointx"
	"github.com/comalice/breakpointx/viewport"
)

var (
	ErrInvalid       = errors.New("invalid breakpoint config")
	ErrUnknownFormat = errors.New("unknown config format")
)

// File is the top-level document:
//
//	breakpoints:
//	  - name: narrow
//	    maxWidth: 100
//	  - name: wide
//	    minWidth: 100
//	    options:
//	      columns: 2
type File struct {
	Breakpoints []Definition `yaml:"breakpoints" toml:"breakpoints"`
}

// Definition describes one breakpoint as a viewport range. Zero bounds are
// unbounded; max bounds are exclusive.
type Definition struct {
	Name        string         `yaml:"name" toml:"name"`
	MinWidth    int            `yaml:"minWidth,omitempty" toml:"minWidth,omitempty"`
	MaxWidth    int            `yaml:"maxWidth,omitempty" toml:"maxWidth,omitempty"`
	MinHeight   int            `yaml:"minHeight,omitempty" toml:"minHeight,omitempty"`
	MaxHeight   int            `yaml:"maxHeight,omitempty" toml:"maxHeight,omitempty"`
	Orientation string         `yaml:"orientation,omitempty" toml:"orientation,omitempty"`
	Options     map[string]any `yaml:"options,omitempty" toml:"options,omitempty"`
}

// Load reads path, choosing the decoder from its extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var f *File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err = DecodeYAML(bytes.NewReader(data))
	case ".toml":
		f, err = DecodeTOML(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func DecodeYAML(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func DecodeTOML(r io.Reader) (*File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("toml decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %s", ErrInvalid, undecoded[0])
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks names are present and unique and every range is non-empty.
func (f *File) Validate() error {
	seen := make(map[string]bool, len(f.Breakpoints))
	for i, d := range f.Breakpoints {
		if d.Name == "" {
			return fmt.Errorf("%w: breakpoint %d has no name", ErrInvalid, i)
		}
		if seen[d.Name] {
			return fmt.Errorf("%w: duplicate breakpoint %q", ErrInvalid, d.Name)
		}
		seen[d.Name] = true
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (d Definition) Validate() error {
	if d.MinWidth < 0 || d.MaxWidth < 0 || d.MinHeight < 0 || d.MaxHeight < 0 {
		return fmt.Errorf("%w: %q has a negative bound", ErrInvalid, d.Name)
	}
	if d.MaxWidth > 0 && d.MinWidth >= d.MaxWidth {
		return fmt.Errorf("%w: %q minWidth %d >= maxWidth %d", ErrInvalid, d.Name, d.MinWidth, d.MaxWidth)
	}
	if d.MaxHeight > 0 && d.MinHeight >= d.MaxHeight {
		return fmt.Errorf("%w: %q minHeight %d >= maxHeight %d", ErrInvalid, d.Name, d.MinHeight, d.MaxHeight)
	}
	if d.Orientation != "" {
		if _, err := viewport.ParseOrientation(d.Orientation); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalid, d.Name, err)
		}
	}
	return nil
}

// Range converts d to a viewport.Range. d must be valid.
func (d Definition) Range() viewport.Range {
	r := viewport.Range{
		MinWidth:  d.MinWidth,
		MaxWidth:  d.MaxWidth,
		MinHeight: d.MinHeight,
		MaxHeight: d.MaxHeight,
	}
	if d.Orientation != "" {
		if o, err := viewport.ParseOrientation(d.Orientation); err == nil {
			r.Orientation = &o
		}
	}
	return r
}

// Breakpoint builds a breakpoint over vp with no hooks set.
func (d Definition) Breakpoint(vp *viewport.Viewport) *breakpointx.Breakpoint {
	return &breakpointx.Breakpoint{
		Name:      d.Name,
		Condition: d.Range().Condition(vp),
	}
}

// Apply registers every definition in file order. hooks, if not nil, is called on
// each breakpoint before registration to install its hooks. Registration stops at
// the first error.
func (f *File) Apply(reg *breakpointx.Registry, vp *viewport.Viewport, hooks func(*breakpointx.Breakpoint)) ([]*breakpointx.Breakpoint, error) {
	out := make([]*breakpointx.Breakpoint, 0, len(f.Breakpoints))
	for _, d := range f.Breakpoints {
		b := d.Breakpoint(vp)
		if hooks != nil {
			hooks(b)
		}
		if err := reg.Register(b, breakpointx.Options(d.Options)); err != nil {
			return out, fmt.Errorf("register %q: %w", d.Name, err)
		}
		out = append(out, b)
	}
	return out, nil
}
