package omr

// Properties is an insertion-ordered mapping of property name to value.
// Names are unique; setting an existing name replaces the value in place
// without changing its position.
type Properties struct {
	order  []string
	values map[string]PropertyValue
}

func NewProperties() *Properties {
	return &Properties{values: make(map[string]PropertyValue)}
}

func (p *Properties) Set(name string, value PropertyValue) {
	if p.values == nil {
		p.values = make(map[string]PropertyValue)
	}
	if _, ok := p.values[name]; !ok {
		p.order = append(p.order, name)
	}
	p.values[name] = value
}

func (p *Properties) Get(name string) (PropertyValue, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[name]
	return v, ok
}

func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.order)
}

// Names returns the property names in insertion order.
func (p *Properties) Names() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// AsMap flattens the properties to a plain mapping: primitives keep their
// scalar, enums contribute their symbolic name, nested maps and structs
// become nested plain maps, arrays become slices.
func (p *Properties) AsMap() map[string]any {
	out := map[string]any{}
	if p == nil {
		return out
	}
	for _, name := range p.order {
		out[name] = flattenValue(p.values[name])
	}
	return out
}

func flattenValue(value PropertyValue) any {
	switch v := value.(type) {
	case PrimitiveValue:
		return v.Value
	case EnumValue:
		return v.Symbol
	case MapValue:
		return v.Props.AsMap()
	case StructValue:
		return v.Props.AsMap()
	case ArrayValue:
		items := make([]any, 0, len(v.Values))
		for _, item := range v.Values {
			items = append(items, flattenValue(item))
		}
		return items
	default:
		return nil
	}
}
