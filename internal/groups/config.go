package groups

import "github.com/Faultbox/assembly-guide/internal/manifest"

// Config is the group declaration document.
type Config struct {
	BaseNames       []string        `yaml:"baseNames" toml:"baseNames"`
	AssembledGroups []CompositeDecl `yaml:"assembledGroups" toml:"assembledGroups"`
}

// CompositeDecl declares a composite group as a list of child group names.
type CompositeDecl struct {
	Name   string   `yaml:"name" toml:"name"`
	Groups []string `yaml:"groups" toml:"groups"`
}

// LoadConfig reads a group document from a YAML, JSON or TOML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := manifest.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
