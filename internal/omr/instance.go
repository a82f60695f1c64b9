package omr

// InstanceType describes the open metadata type of an instance as recorded
// by the type registry that defined it.
type InstanceType struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     int64  `json:"version,omitempty"`
	SuperType   string `json:"superType,omitempty"`
}

// EntityDetail is a generic, runtime-typed entity record. Its property set
// is defined by the type registry, not by code.
type EntityDetail struct {
	SystemAttributes
	Type            *InstanceType    `json:"type,omitempty"`
	URL             string           `json:"url,omitempty"`
	Properties      *Properties      `json:"properties,omitempty"`
	Classifications []Classification `json:"classifications,omitempty"`
}

// EntityProxy is a lightweight reference to one endpoint entity of a
// relationship. It carries enough identity and type information to resolve
// the full entity separately.
type EntityProxy struct {
	SystemAttributes
	Type             *InstanceType `json:"type,omitempty"`
	UniqueProperties *Properties   `json:"uniqueProperties,omitempty"`
}

// Relationship links two entities, stored as proxies on either end.
type Relationship struct {
	SystemAttributes
	Type           *InstanceType `json:"type,omitempty"`
	Properties     *Properties   `json:"properties,omitempty"`
	EntityOneProxy *EntityProxy  `json:"entityOneProxy,omitempty"`
	EntityTwoProxy *EntityProxy  `json:"entityTwoProxy,omitempty"`
}

// Classification attaches a governance marker to an entity. Origin records
// whether the classification was assigned directly or propagated.
type Classification struct {
	SystemAttributes
	Name       string        `json:"name"`
	Origin     string        `json:"origin,omitempty"`
	OriginGUID string        `json:"originGuid,omitempty"`
	Type       *InstanceType `json:"type,omitempty"`
	Properties *Properties   `json:"properties,omitempty"`
}
