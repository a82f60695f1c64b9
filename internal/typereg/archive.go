package typereg

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const ArchiveSchemaV1 = "tessera.types.v1"

// Archive is the on-disk form of the generator's recognized-name output: a
// YAML document listing the name sets per metadata type.
type Archive struct {
	Schema string        `yaml:"schema" json:"schema"`
	Types  []ArchiveType `yaml:"types" json:"types"`
}

type ArchiveType struct {
	Name       string   `yaml:"name" json:"name"`
	Properties []string `yaml:"properties" json:"properties"`
	Attributes []string `yaml:"attributes" json:"attributes"`
	Enums      []string `yaml:"enums,omitempty" json:"enums,omitempty"`
	Maps       []string `yaml:"maps,omitempty" json:"maps,omitempty"`
}

// ParseArchive decodes and validates a type archive document.
func ParseArchive(input []byte) (Archive, error) {
	var archive Archive
	if err := yaml.Unmarshal(input, &archive); err != nil {
		return Archive{}, fmt.Errorf("decode archive: %w", err)
	}
	if err := archive.Validate(); err != nil {
		return Archive{}, err
	}
	return archive, nil
}

func (a Archive) Validate() error {
	if strings.TrimSpace(a.Schema) != ArchiveSchemaV1 {
		return fmt.Errorf("archive.schema must be %q", ArchiveSchemaV1)
	}
	if len(a.Types) == 0 {
		return errors.New("archive.types must be non-empty")
	}
	seen := make(map[string]struct{}, len(a.Types))
	for i, t := range a.Types {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return fmt.Errorf("archive.types[%d].name is required", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("archive.types[%d]: duplicate type name %q", i, name)
		}
		seen[name] = struct{}{}
		if _, err := NewNameSets(name, t.Properties, t.Attributes, t.Enums, t.Maps); err != nil {
			return fmt.Errorf("archive.types[%d]: %w", i, err)
		}
	}
	return nil
}

// Apply registers every type in the archive. A type already registered is
// overwritten; the archive is the later word.
func (a Archive) Apply(registry *Registry) error {
	if registry == nil {
		return errors.New("registry is required")
	}
	for _, t := range a.Types {
		sets, err := NewNameSets(t.Name, t.Properties, t.Attributes, t.Enums, t.Maps)
		if err != nil {
			return err
		}
		registry.Register(sets)
	}
	return nil
}
