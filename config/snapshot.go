package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/comalice/breakpointx"
)

type snapshotDoc struct {
	Breakpoints []breakpointx.State `yaml:"breakpoints"`
}

// WriteSnapshot writes states as a YAML document.
func WriteSnapshot(w io.Writer, states []breakpointx.State) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snapshotDoc{Breakpoints: states}); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// ReadSnapshot parses a document written by WriteSnapshot.
func ReadSnapshot(r io.Reader) ([]breakpointx.State, error) {
	var doc snapshotDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}
	return doc.Breakpoints, nil
}
