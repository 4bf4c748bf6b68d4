// Package formats provides level file parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel is the on-disk layout of a level file:
//
//	id: lvl01
//	name: First Pour
//	bottles:
//	  - colors: [red, red, red, blue]
//	  - colors: [blue, blue, blue, red]
//	    count: 4
//	  - colors: []
type YAMLLevel struct {
	ID       string            `yaml:"id" validate:"required"`
	Name     string            `yaml:"name"`
	Bottles  []YAMLBottle      `yaml:"bottles" validate:"required,min=1,dive"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLBottle is one bottle, colors listed bottom first.
// Count limits how many listed colors are filled; nil means all of them.
type YAMLBottle struct {
	Colors []string `yaml:"colors" validate:"max=4,dive,liquidcolor"`
	Count  *int     `yaml:"count,omitempty" validate:"omitempty,min=0,max=4"`
}

// Layers returns the listed colors that are actually filled.
func (b YAMLBottle) Layers() []string {
	n := len(b.Colors)
	if b.Count != nil && *b.Count < n {
		n = max(*b.Count, 0)
	}
	return b.Colors[:n]
}

// ParseYAML decodes a YAML level file. It does not validate the content.
func ParseYAML(data []byte) (YAMLLevel, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return YAMLLevel{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yl, nil
}

// MarshalYAML encodes a level file.
func MarshalYAML(yl YAMLLevel) ([]byte, error) {
	data, err := yaml.Marshal(yl)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
