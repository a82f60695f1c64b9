package omr

import "time"

// PropertyCategory identifies the storage shape of one property value.
type PropertyCategory int

const (
	CategoryUnknown PropertyCategory = iota
	CategoryPrimitive
	CategoryEnum
	CategoryMap
	CategoryArray
	CategoryStruct
)

func (c PropertyCategory) String() string {
	switch c {
	case CategoryPrimitive:
		return "primitive"
	case CategoryEnum:
		return "enum"
	case CategoryMap:
		return "map"
	case CategoryArray:
		return "array"
	case CategoryStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// PrimitiveKind is the declared scalar kind of a primitive property value.
type PrimitiveKind int

const (
	KindUnknown PrimitiveKind = iota
	KindBoolean
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindDate
)

func (k PrimitiveKind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

func primitiveKindFromName(name string) PrimitiveKind {
	switch name {
	case "boolean":
		return KindBoolean
	case "int":
		return KindInt
	case "long":
		return KindLong
	case "float":
		return KindFloat
	case "double":
		return KindDouble
	case "string":
		return KindString
	case "date":
		return KindDate
	default:
		return KindUnknown
	}
}

// PropertyValue is one property's value tagged with its storage category.
// The set of implementations is closed; the tag is fixed by the concrete
// type and cannot change after construction.
type PropertyValue interface {
	Category() PropertyCategory

	sealed()
}

// PrimitiveValue carries a scalar plus its declared kind.
type PrimitiveValue struct {
	Kind  PrimitiveKind
	Value any
}

func (PrimitiveValue) Category() PropertyCategory { return CategoryPrimitive }
func (PrimitiveValue) sealed()                    {}

// EnumValue carries an enum ordinal and its symbolic name.
type EnumValue struct {
	Ordinal int
	Symbol  string
}

func (EnumValue) Category() PropertyCategory { return CategoryEnum }
func (EnumValue) sealed()                    {}

// MapValue carries a nested name-to-value mapping.
type MapValue struct {
	Props *Properties
}

func (MapValue) Category() PropertyCategory { return CategoryMap }
func (MapValue) sealed()                    {}

// ArrayValue carries a nested ordered sequence of values.
type ArrayValue struct {
	Values []PropertyValue
}

func (ArrayValue) Category() PropertyCategory { return CategoryArray }
func (ArrayValue) sealed()                    {}

// StructValue carries a nested named mapping treated as a single value.
type StructValue struct {
	Props *Properties
}

func (StructValue) Category() PropertyCategory { return CategoryStruct }
func (StructValue) sealed()                    {}

func BoolValue(v bool) PrimitiveValue      { return PrimitiveValue{Kind: KindBoolean, Value: v} }
func IntValue(v int) PrimitiveValue        { return PrimitiveValue{Kind: KindInt, Value: v} }
func LongValue(v int64) PrimitiveValue     { return PrimitiveValue{Kind: KindLong, Value: v} }
func FloatValue(v float32) PrimitiveValue  { return PrimitiveValue{Kind: KindFloat, Value: v} }
func DoubleValue(v float64) PrimitiveValue { return PrimitiveValue{Kind: KindDouble, Value: v} }
func StringValue(v string) PrimitiveValue  { return PrimitiveValue{Kind: KindString, Value: v} }
func DateValue(v time.Time) PrimitiveValue { return PrimitiveValue{Kind: KindDate, Value: v.UTC()} }
