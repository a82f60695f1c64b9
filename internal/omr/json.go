package omr

import (
	"encoding/json"
	"fmt"
	"time"
)

// The JSON form keeps the category tag and declared kind alongside the
// payload so property values survive a store round trip byte-for-byte.
// Properties marshal as an array to preserve insertion order.

type propertyEnvelope struct {
	Name     string             `json:"name,omitempty"`
	Category string             `json:"category"`
	Kind     string             `json:"kind,omitempty"`
	Value    json.RawMessage    `json:"value,omitempty"`
	Ordinal  int                `json:"ordinal,omitempty"`
	Symbol   string             `json:"symbol,omitempty"`
	Props    []propertyEnvelope `json:"props,omitempty"`
	Values   []propertyEnvelope `json:"values,omitempty"`
}

func (p *Properties) MarshalJSON() ([]byte, error) {
	envelopes := make([]propertyEnvelope, 0, p.Len())
	if p != nil {
		for _, name := range p.order {
			env, err := encodeValue(p.values[name])
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			env.Name = name
			envelopes = append(envelopes, env)
		}
	}
	return json.Marshal(envelopes)
}

func (p *Properties) UnmarshalJSON(data []byte) error {
	var envelopes []propertyEnvelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return err
	}
	p.order = nil
	p.values = make(map[string]PropertyValue, len(envelopes))
	for _, env := range envelopes {
		if env.Name == "" {
			return fmt.Errorf("property entry missing name")
		}
		value, err := decodeValue(env)
		if err != nil {
			return fmt.Errorf("property %q: %w", env.Name, err)
		}
		p.Set(env.Name, value)
	}
	return nil
}

func encodeValue(value PropertyValue) (propertyEnvelope, error) {
	switch v := value.(type) {
	case PrimitiveValue:
		raw, err := json.Marshal(primitiveToJSON(v))
		if err != nil {
			return propertyEnvelope{}, err
		}
		return propertyEnvelope{Category: "primitive", Kind: v.Kind.String(), Value: raw}, nil
	case EnumValue:
		return propertyEnvelope{Category: "enum", Ordinal: v.Ordinal, Symbol: v.Symbol}, nil
	case MapValue:
		props, err := encodeNested(v.Props)
		if err != nil {
			return propertyEnvelope{}, err
		}
		return propertyEnvelope{Category: "map", Props: props}, nil
	case StructValue:
		props, err := encodeNested(v.Props)
		if err != nil {
			return propertyEnvelope{}, err
		}
		return propertyEnvelope{Category: "struct", Props: props}, nil
	case ArrayValue:
		items := make([]propertyEnvelope, 0, len(v.Values))
		for _, item := range v.Values {
			env, err := encodeValue(item)
			if err != nil {
				return propertyEnvelope{}, err
			}
			items = append(items, env)
		}
		return propertyEnvelope{Category: "array", Values: items}, nil
	default:
		return propertyEnvelope{}, fmt.Errorf("unsupported property value %T", value)
	}
}

func encodeNested(props *Properties) ([]propertyEnvelope, error) {
	out := make([]propertyEnvelope, 0, props.Len())
	if props == nil {
		return out, nil
	}
	for _, name := range props.order {
		env, err := encodeValue(props.values[name])
		if err != nil {
			return nil, fmt.Errorf("nested property %q: %w", name, err)
		}
		env.Name = name
		out = append(out, env)
	}
	return out, nil
}

func decodeValue(env propertyEnvelope) (PropertyValue, error) {
	switch env.Category {
	case "primitive":
		return decodePrimitive(env)
	case "enum":
		return EnumValue{Ordinal: env.Ordinal, Symbol: env.Symbol}, nil
	case "map":
		props, err := decodeNested(env.Props)
		if err != nil {
			return nil, err
		}
		return MapValue{Props: props}, nil
	case "struct":
		props, err := decodeNested(env.Props)
		if err != nil {
			return nil, err
		}
		return StructValue{Props: props}, nil
	case "array":
		values := make([]PropertyValue, 0, len(env.Values))
		for _, item := range env.Values {
			value, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
		return ArrayValue{Values: values}, nil
	default:
		return nil, fmt.Errorf("unsupported property category %q", env.Category)
	}
}

func decodeNested(envelopes []propertyEnvelope) (*Properties, error) {
	props := NewProperties()
	for _, env := range envelopes {
		if env.Name == "" {
			return nil, fmt.Errorf("nested property entry missing name")
		}
		value, err := decodeValue(env)
		if err != nil {
			return nil, fmt.Errorf("nested property %q: %w", env.Name, err)
		}
		props.Set(env.Name, value)
	}
	return props, nil
}

func primitiveToJSON(v PrimitiveValue) any {
	if t, ok := v.Value.(time.Time); ok {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return v.Value
}

func decodePrimitive(env propertyEnvelope) (PrimitiveValue, error) {
	kind := primitiveKindFromName(env.Kind)
	if kind == KindUnknown {
		return PrimitiveValue{}, fmt.Errorf("unsupported primitive kind %q", env.Kind)
	}
	if len(env.Value) == 0 || string(env.Value) == "null" {
		return PrimitiveValue{Kind: kind}, nil
	}

	switch kind {
	case KindBoolean:
		var v bool
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Kind: kind, Value: v}, nil
	case KindInt:
		var v int
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Kind: kind, Value: v}, nil
	case KindLong:
		var v int64
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Kind: kind, Value: v}, nil
	case KindFloat:
		var v float32
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Kind: kind, Value: v}, nil
	case KindDouble:
		var v float64
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Kind: kind, Value: v}, nil
	case KindString:
		var v string
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Kind: kind, Value: v}, nil
	case KindDate:
		var raw string
		if err := json.Unmarshal(env.Value, &raw); err != nil {
			return PrimitiveValue{}, err
		}
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return PrimitiveValue{}, fmt.Errorf("parse date: %w", err)
		}
		return PrimitiveValue{Kind: kind, Value: t.UTC()}, nil
	default:
		return PrimitiveValue{}, fmt.Errorf("unsupported primitive kind %q", env.Kind)
	}
}
