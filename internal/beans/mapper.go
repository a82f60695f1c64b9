// Package beans holds the generated-style domain beans, one per metadata
// type, and the mappers that convert them to and from the generic instance
// representation. Unrecognized properties survive a round trip verbatim in
// the bean's extras so that properties added to a type after generation
// pass through unmodified.
package beans

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/tessera-labs/tessera-go/internal/omr"
	"github.com/tessera-labs/tessera-go/internal/typereg"
)

// TypeMismatchError reports an instance whose type name does not match the
// bean the caller asked for. It is recoverable per instance: the caller
// decides whether to skip, log or surface it.
type TypeMismatchError struct {
	GUID     string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("instance %s has type %q, expected %q", e.GUID, e.Actual, e.Expected)
}

// propertySink receives recognized property values during unpack. Each bean
// implements it over its dispatch tables, which are built once per type
// from the static name sets; a false return (no table entry, or a payload
// of the wrong kind) routes the value to the extras instead.
type propertySink interface {
	setAttribute(name string, value omr.PrimitiveValue) bool
	setEnum(name string, value omr.EnumValue) bool
	setMap(name string, value omr.MapValue) bool
}

// unpackProperties walks every property, routes recognized values onto the
// sink and collects everything else as extras, keyed by name with the
// original wrapped value. Array, struct and unknown categories have no
// typed-field shape; they are preserved as extras too, with a warning, so a
// later pack can restore them byte-for-byte.
func unpackProperties(logger *slog.Logger, sets typereg.NameSets, props *omr.Properties, sink propertySink) map[string]omr.PropertyValue {
	var extras map[string]omr.PropertyValue
	if props == nil {
		return nil
	}
	keep := func(name string, value omr.PropertyValue) {
		if extras == nil {
			extras = make(map[string]omr.PropertyValue)
		}
		extras[name] = value
	}
	for _, name := range props.Names() {
		value, _ := props.Get(name)
		switch v := value.(type) {
		case omr.PrimitiveValue:
			if sets.Classify(name) == typereg.KnownAttribute && sink.setAttribute(name, v) {
				continue
			}
			keep(name, value)
		case omr.EnumValue:
			if sets.Classify(name) == typereg.KnownEnum && sink.setEnum(name, v) {
				continue
			}
			keep(name, value)
		case omr.MapValue:
			if sets.Classify(name) == typereg.KnownMap && sink.setMap(name, v) {
				continue
			}
			keep(name, value)
		default:
			if logger != nil {
				logger.Warn("property category has no typed field, preserved as extra",
					"type", sets.TypeName(),
					"property", name,
					"category", value.Category().String(),
				)
			}
			keep(name, value)
		}
	}
	return extras
}

// packExtras re-emits preserved extras onto the instance properties,
// unchanged. Names are written in sorted order for determinism.
func packExtras(props *omr.Properties, extras map[string]omr.PropertyValue) {
	for _, name := range sortedKeys(extras) {
		props.Set(name, extras[name])
	}
}

// packExtraClassifications rebuilds the generic classification list from the
// preserved originals, in name order.
func packExtraClassifications(extras map[string]omr.Classification) []omr.Classification {
	if len(extras) == 0 {
		return nil
	}
	out := make([]omr.Classification, 0, len(extras))
	for _, name := range sortedKeys(extras) {
		out = append(out, extras[name])
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// presence records which recognized properties the source instance carried.
// Pack consults it so a zero-valued attribute that was present round-trips
// instead of vanishing, while a never-set field stays absent.
type presence map[string]struct{}

func (p *presence) mark(name string) {
	if *p == nil {
		*p = make(presence)
	}
	(*p)[name] = struct{}{}
}

func (p presence) has(name string) bool {
	_, ok := p[name]
	return ok
}

// assignString assigns a string primitive to a bean field. A payload of any
// other kind is refused so the value rides along as an extra instead.
func assignString(dst *string, value omr.PrimitiveValue) bool {
	s, ok := value.Value.(string)
	if !ok {
		return false
	}
	*dst = s
	return true
}

func assignInt(dst *int, value omr.PrimitiveValue) bool {
	switch v := value.Value.(type) {
	case int:
		*dst = v
	case int64:
		*dst = int(v)
	default:
		return false
	}
	return true
}

// setKnownString writes a recognized string attribute during pack. A zero
// value is written only when the source instance carried the property.
func setKnownString(props *omr.Properties, present presence, name, value string) {
	if value == "" && !present.has(name) {
		return
	}
	props.Set(name, omr.StringValue(value))
}

func setKnownInt(props *omr.Properties, present presence, name string, value int) {
	if value == 0 && !present.has(name) {
		return
	}
	props.Set(name, omr.IntValue(value))
}

// stringMap flattens a map value to plain strings, dropping entries whose
// values are not string primitives.
func stringMap(value omr.MapValue) map[string]string {
	if value.Props == nil || value.Props.Len() == 0 {
		return nil
	}
	out := make(map[string]string, value.Props.Len())
	for _, name := range value.Props.Names() {
		entry, _ := value.Props.Get(name)
		primitive, ok := entry.(omr.PrimitiveValue)
		if !ok {
			continue
		}
		if s, ok := primitive.Value.(string); ok {
			out[name] = s
		}
	}
	return out
}

// mapValueFromStrings is the pack-side inverse of stringMap. Entries are
// written in sorted key order.
func mapValueFromStrings(values map[string]string) omr.MapValue {
	props := omr.NewProperties()
	for _, name := range sortedKeys(values) {
		props.Set(name, omr.StringValue(values[name]))
	}
	return omr.MapValue{Props: props}
}
