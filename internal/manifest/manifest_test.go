package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type doc struct {
	Name  string     `yaml:"name" toml:"name"`
	Items []string   `yaml:"items" toml:"items"`
	At    [3]float32 `yaml:"at" toml:"at"`
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		file    string
		content string
	}{
		{"doc.yaml", "name: frame\nitems: [a, b]\nat: [1, 2, 3]\n"},
		{"doc.yml", "name: frame\nitems:\n  - a\n  - b\nat: [1, 2, 3]\n"},
		{"doc.json", `{"name": "frame", "items": ["a", "b"], "at": [1, 2, 3]}`},
		{"doc.toml", "name = \"frame\"\nitems = [\"a\", \"b\"]\nat = [1.0, 2.0, 3.0]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			var d doc
			if err := Load(writeFile(t, tt.file, tt.content), &d); err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if d.Name != "frame" || len(d.Items) != 2 || d.Items[1] != "b" {
				t.Errorf("unexpected decode result: %+v", d)
			}
			if d.At != [3]float32{1, 2, 3} {
				t.Errorf("at = %v, want [1 2 3]", d.At)
			}
		})
	}
}

func TestLoadUnsupported(t *testing.T) {
	var d doc
	err := Load(writeFile(t, "doc.ini", "name=x"), &d)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	tests := []struct {
		file    string
		content string
	}{
		{"doc.yaml", "name: x\nnmae: y\n"},
		{"doc.json", `{"name": "x", "nmae": "y"}`},
		{"doc.toml", "name = \"x\"\nnmae = \"y\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			var d doc
			if err := Load(writeFile(t, tt.file, tt.content), &d); err == nil {
				t.Errorf("expected error for unknown field, got %+v", d)
			}
		})
	}
}

func TestLoadJSONEscapes(t *testing.T) {
	var d doc
	content := `{"name": "wing\/left", "items": ["tab\there", "\u00e9"], "at": [1, 2.5, -3]}`
	if err := Load(writeFile(t, "doc.json", content), &d); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.Name != "wing/left" {
		t.Errorf("name = %q, want wing/left", d.Name)
	}
	if d.Items[0] != "tab\there" || d.Items[1] != "é" {
		t.Errorf("items = %q", d.Items)
	}
	if d.At != [3]float32{1, 2.5, -3} {
		t.Errorf("at = %v", d.At)
	}
}

func TestDecodeEmptyJSON(t *testing.T) {
	d := doc{Name: "keep"}
	if err := Decode([]byte("  \n"), FormatJSON, &d); err != nil {
		t.Fatalf("Decode(empty) error = %v", err)
	}
	if d.Name != "keep" {
		t.Errorf("empty document should leave value untouched, got %+v", d)
	}
}

func TestDecodeEmptyYAML(t *testing.T) {
	d := doc{Name: "keep"}
	if err := Decode(nil, FormatYAML, &d); err != nil {
		t.Fatalf("Decode(empty) error = %v", err)
	}
	if d.Name != "keep" {
		t.Errorf("empty document should leave value untouched, got %+v", d)
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a.YAML":    FormatYAML,
		"b.json":    FormatJSON,
		"c.toml":    FormatTOML,
		"d.txt":     FormatUnknown,
		"no-ext":    FormatUnknown,
		"steps.yml": FormatYAML,
	}
	for path, want := range tests {
		if got := FormatOf(path); got != want {
			t.Errorf("FormatOf(%q) = %v, want %v", path, got, want)
		}
	}
}
