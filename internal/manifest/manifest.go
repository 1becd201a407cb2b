// Package manifest decodes the scene, group and step documents.
//
// YAML documents are decoded with yaml.v3 and the `yaml` tags. JSON
// documents are parsed with encoding/json, so every JSON escape is
// accepted, then re-emitted as YAML and decoded through the same `yaml`
// tags. TOML documents use go-toml/v2 and the `toml` tags. Every format
// rejects fields the target type does not declare.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Format identifies a document encoding.
type Format int

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatJSON
	FormatTOML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// FormatOf guesses the format from a file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatUnknown
	}
}

// Load reads path and decodes it into v according to its extension.
func Load(path string, v any) error {
	format := FormatOf(path)
	if format == FormatUnknown {
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := Decode(data, format, v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// Decode decodes data of the given format into v.
func Decode(data []byte, format Format, v any) error {
	switch format {
	case FormatYAML:
		return decodeYAML(data, v)
	case FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		var tree any
		if err := json.Unmarshal(data, &tree); err != nil {
			return err
		}
		out, err := yaml.Marshal(tree)
		if err != nil {
			return err
		}
		return decodeYAML(out, v)
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	default:
		return ErrUnsupportedFormat
	}
}

func decodeYAML(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		// An empty document leaves v untouched.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}
