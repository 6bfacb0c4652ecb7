package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
)

const (
	// FileName is the manifest's base name inside the Packages directory.
	FileName = "manifest.json"

	// DependenciesKey is the only top-level key this package interprets.
	DependenciesKey = "dependencies"

	// WildcardVersion is recorded for every identifier added by usl.
	WildcardVersion = "*"
)

// Dependency is one entry of the manifest's dependencies object.
type Dependency struct {
	ID      string
	Version string
}

// Manifest is an in-memory manifest.json. Unknown top-level keys are kept
// as raw JSON in their original order.
type Manifest struct {
	keys   []string
	fields map[string]json.RawMessage
	deps   map[string]string
}

// New returns an empty manifest: {"dependencies": {}}.
func New() *Manifest {
	return &Manifest{
		keys:   []string{DependenciesKey},
		fields: make(map[string]json.RawMessage),
		deps:   make(map[string]string),
	}
}

// Parse decodes and validates manifest JSON.
func Parse(data []byte) (*Manifest, error) {
	return parse(data, "")
}

func parse(data []byte, path string) (*Manifest, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, &Error{Path: path, Op: "parse", Err: err}
	}
	if !result.Valid {
		return nil, &Error{Path: path, Op: "validate", Issues: result.Issues}
	}

	m := New()
	m.keys = m.keys[:0]

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, &Error{Path: path, Op: "parse", Err: err}
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &Error{Path: path, Op: "parse", Err: err}
		}
		key, ok := tok.(string)
		if !ok {
			return nil, &Error{Path: path, Op: "parse", Err: fmt.Errorf("unexpected token %v", tok)}
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, &Error{Path: path, Op: "parse", Err: err}
		}

		// A repeated key keeps its first position and its last value.
		if !slices.Contains(m.keys, key) {
			m.keys = append(m.keys, key)
		}

		if key == DependenciesKey {
			deps := make(map[string]string)
			if err := json.Unmarshal(raw, &deps); err != nil {
				return nil, &Error{Path: path, Op: "parse", Err: err}
			}
			m.deps = deps
			continue
		}
		m.fields[key] = raw
	}

	return m, nil
}

// Has reports whether id is already a dependency.
func (m *Manifest) Has(id string) bool {
	_, ok := m.deps[id]
	return ok
}

// Add records id with the wildcard version. It returns false and leaves the
// manifest untouched when id is already present, whatever its version.
func (m *Manifest) Add(id string) bool {
	if m.Has(id) {
		return false
	}
	m.deps[id] = WildcardVersion
	if !slices.Contains(m.keys, DependenciesKey) {
		m.keys = append(m.keys, DependenciesKey)
	}
	return true
}

// Dependencies returns the dependencies sorted by identifier.
func (m *Manifest) Dependencies() []Dependency {
	out := make([]Dependency, 0, len(m.deps))
	for id, v := range m.deps {
		out = append(out, Dependency{ID: id, Version: v})
	}
	slices.SortFunc(out, func(a, b Dependency) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Keys returns the top-level keys in output order.
func (m *Manifest) Keys() []string {
	keys := slices.Clone(m.keys)
	if !slices.Contains(keys, DependenciesKey) {
		keys = append(keys, DependenciesKey)
	}
	return keys
}

// Marshal encodes the manifest as 2-space indented JSON with a trailing
// newline. Dependency keys are sorted.
func (m *Manifest) Marshal() ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, key := range m.Keys() {
		if i > 0 {
			compact.WriteByte(',')
		}
		if err := encodeCompact(&compact, key); err != nil {
			return nil, err
		}
		compact.WriteByte(':')

		if key == DependenciesKey {
			if err := encodeCompact(&compact, m.deps); err != nil {
				return nil, err
			}
			continue
		}
		if err := json.Compact(&compact, m.fields[key]); err != nil {
			return nil, fmt.Errorf("compacting %q: %w", key, err)
		}
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indenting manifest: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// encodeCompact writes v as JSON without HTML escaping or a trailing newline.
func encodeCompact(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding manifest value: %w", err)
	}
	_, err := w.Write(bytes.TrimRight(buf.Bytes(), "\n"))
	return err
}
