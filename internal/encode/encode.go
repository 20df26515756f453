// Package encode turns arbitrary values into the canonical text stored in
// snapshot files. Both encoders are deterministic: map keys are sorted and
// output is LF-terminated, so encoding an unchanged value twice yields the
// same bytes.
package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"snapshot-matcher/internal/textutil"
)

// ErrUnknownFormat is returned by ForFormat for unsupported format names.
var ErrUnknownFormat = errors.New("encode: unknown snapshot format")

// Encoder produces the canonical text form of a value.
type Encoder interface {
	Encode(v any) ([]byte, error)
	// Ext is the snapshot file extension, including the dot.
	Ext() string
	Name() string
}

// JSON encodes with two-space indentation and no HTML escaping.
type JSON struct{}

func (JSON) Name() string { return "json" }
func (JSON) Ext() string  { return ".json" }

func (JSON) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return canonical(buf.Bytes()), nil
}

// YAML encodes with two-space indentation.
type YAML struct{}

func (YAML) Name() string { return "yaml" }
func (YAML) Ext() string  { return ".yaml" }

func (YAML) Encode(v any) (out []byte, err error) {
	// yaml.v3 panics on some unsupported kinds (e.g. funcs); keep the
	// error-return contract.
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("encode yaml: %v", r)
		}
	}()
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return canonical(buf.Bytes()), nil
}

// ForFormat returns the encoder registered under name (case-insensitive).
func ForFormat(name string) (Encoder, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "", "json":
		return JSON{}, nil
	case "yaml", "yml":
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

func canonical(b []byte) []byte {
	return textutil.EnsureTrailingLF(textutil.NormalizeUTF8LF(b))
}
