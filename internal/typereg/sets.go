// Package typereg holds the recognized-property name sets generated for
// each metadata type, and the registry the composition root builds from
// them. The sets are produced offline by the bean generator and consumed
// here as static input; no type inheritance is resolved at runtime, a
// subtype's sets must already include everything its supertypes define.
package typereg

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a property name against one type's recognized name sets.
type Kind int

const (
	Unknown Kind = iota
	KnownAttribute
	KnownEnum
	KnownMap
)

func (k Kind) String() string {
	switch k {
	case KnownAttribute:
		return "attribute"
	case KnownEnum:
		return "enum"
	case KnownMap:
		return "map"
	default:
		return "unknown"
	}
}

// NameSets holds the recognized property names for one metadata type.
type NameSets struct {
	typeName   string
	properties map[string]struct{}
	attributes map[string]struct{}
	enums      map[string]struct{}
	maps       map[string]struct{}
}

// NewNameSets builds the sets for a type. Every enum and map name must also
// appear in the property names.
func NewNameSets(typeName string, properties, attributes, enums, maps []string) (NameSets, error) {
	typeName = strings.TrimSpace(typeName)
	if typeName == "" {
		return NameSets{}, errors.New("type name is required")
	}
	sets := NameSets{
		typeName:   typeName,
		properties: toSet(properties),
		attributes: toSet(attributes),
		enums:      toSet(enums),
		maps:       toSet(maps),
	}
	for name := range sets.enums {
		if _, ok := sets.properties[name]; !ok {
			return NameSets{}, fmt.Errorf("type %s: enum name %q is not a property name", typeName, name)
		}
	}
	for name := range sets.maps {
		if _, ok := sets.properties[name]; !ok {
			return NameSets{}, fmt.Errorf("type %s: map name %q is not a property name", typeName, name)
		}
	}
	return sets, nil
}

// MustNameSets is NewNameSets for generated, statically-known inputs.
func MustNameSets(typeName string, properties, attributes, enums, maps []string) NameSets {
	sets, err := NewNameSets(typeName, properties, attributes, enums, maps)
	if err != nil {
		panic(err)
	}
	return sets
}

func (s NameSets) TypeName() string { return s.typeName }

// Classify decides where a property value belongs: on a typed bean field
// (attribute, enum or map) or preserved as an extra. Unmatched names always
// classify as Unknown, never an error.
func (s NameSets) Classify(name string) Kind {
	if _, ok := s.enums[name]; ok {
		return KnownEnum
	}
	if _, ok := s.maps[name]; ok {
		return KnownMap
	}
	if _, ok := s.attributes[name]; ok {
		return KnownAttribute
	}
	return Unknown
}

// IsProperty reports whether the name is recognized at all for the type.
func (s NameSets) IsProperty(name string) bool {
	_, ok := s.properties[name]
	return ok
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}
