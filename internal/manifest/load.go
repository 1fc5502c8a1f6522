package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads and decodes a pre-commit manifest from path.
// Unknown keys are rejected so typos surface here rather than at hook
// invocation time; syntax errors are reported with file:line:column.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := Decode(bytes.NewReader(data))
	if err != nil {
		// Prefer the positioned syntax error when the document is malformed.
		if synErr := ValidateSyntaxBytes(data, path); synErr != nil {
			return nil, synErr
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Decode decodes a manifest from r with strict field checking.
// An empty document yields an empty manifest.
func Decode(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &Manifest{}, nil
		}
		return nil, err
	}
	return &m, nil
}

// Encode writes the manifest to w in canonical form: two-space indent,
// struct field order. Load(Encode(m)) yields a manifest equal to m.
func (m *Manifest) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}

// Save writes the manifest to path in canonical form.
func (m *Manifest) Save(path string) error {
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Discover returns the path of the pre-commit manifest in dir, or an
// error satisfying os.IsNotExist when none is present.
func Discover(dir, name string) (string, error) {
	if name == "" {
		name = ConfigFileName
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}
