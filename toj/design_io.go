// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toj

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// OpenDesign loads a Design from a YAML file and validates it. Unknown
// fields in the file are an error, so typos in hand-edited designs are
// caught rather than silently ignored.
func OpenDesign(fname string) (*Design, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("toj: open design: %w", err)
	}
	defer fp.Close()
	dz, err := ReadDesign(fp)
	if err != nil {
		return nil, fmt.Errorf("toj: design %s: %w", fname, err)
	}
	return dz, nil
}

// ReadDesign decodes and validates a YAML Design from the given reader.
func ReadDesign(r io.Reader) (*Design, error) {
	dz := &Design{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(dz); err != nil {
		return nil, err
	}
	if err := dz.Validate(); err != nil {
		return nil, err
	}
	return dz, nil
}

// SaveYAML writes the design to the given YAML file.
func (dz *Design) SaveYAML(fname string) error {
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("toj: save design: %w", err)
	}
	defer fp.Close()
	return dz.WriteYAML(fp)
}

// WriteYAML encodes the design as YAML to the given writer.
func (dz *Design) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(dz); err != nil {
		return fmt.Errorf("toj: encode design %s: %w", dz.Name, err)
	}
	return enc.Close()
}
