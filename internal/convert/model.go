// Package convert maps generic instance records onto the simplified view
// objects served to catalog and search consumers, and assembles the lineage
// context chain on asset views.
package convert

import "time"

// Type is the view of an instance's type descriptor.
type Type struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Version     int64  `json:"version,omitempty"`
	SuperType   string `json:"superType,omitempty"`
}

// Classification is the flattened view of a generic classification.
type Classification struct {
	Name       string         `json:"name,omitempty"`
	Origin     string         `json:"origin,omitempty"`
	OriginGUID string         `json:"originGuid,omitempty"`
	CreatedBy  string         `json:"createdBy,omitempty"`
	CreateTime *time.Time     `json:"createTime,omitempty"`
	UpdatedBy  string         `json:"updatedBy,omitempty"`
	UpdateTime *time.Time     `json:"updateTime,omitempty"`
	Version    int64          `json:"version,omitempty"`
	Status     string         `json:"status,omitempty"`
	Type       *Type          `json:"type,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Element is a single node of an asset's context: identity, type and audit
// information plus the chain of elements one hop further from the root.
// ParentElement points in the descendant direction despite the name, which
// is kept for compatibility with the wire contract.
type Element struct {
	GUID                 string         `json:"guid,omitempty"`
	Name                 string         `json:"name,omitempty"`
	MetadataCollectionID string         `json:"metadataCollectionId,omitempty"`
	CreatedBy            string         `json:"createdBy,omitempty"`
	CreateTime           *time.Time     `json:"createTime,omitempty"`
	UpdatedBy            string         `json:"updatedBy,omitempty"`
	UpdateTime           *time.Time     `json:"updateTime,omitempty"`
	Version              int64          `json:"version,omitempty"`
	Status               string         `json:"status,omitempty"`
	Type                 *Type          `json:"type,omitempty"`
	Properties           map[string]any `json:"properties,omitempty"`
	ParentElement        []*Element     `json:"parentElement,omitempty"`
}

// AssetDescription is the catalog view of an entity.
type AssetDescription struct {
	GUID                 string           `json:"guid,omitempty"`
	MetadataCollectionID string           `json:"metadataCollectionId,omitempty"`
	CreatedBy            string           `json:"createdBy,omitempty"`
	CreateTime           *time.Time       `json:"createTime,omitempty"`
	UpdatedBy            string           `json:"updatedBy,omitempty"`
	UpdateTime           *time.Time       `json:"updateTime,omitempty"`
	Version              int64            `json:"version,omitempty"`
	Type                 *Type            `json:"type,omitempty"`
	URL                  string           `json:"url,omitempty"`
	Status               string           `json:"status,omitempty"`
	Properties           map[string]any   `json:"properties,omitempty"`
	Classifications      []Classification `json:"classifications"`
}

// Relationship is the catalog view of a generic relationship, with both
// entity proxies resolved to Elements.
type Relationship struct {
	GUID       string     `json:"guid,omitempty"`
	CreatedBy  string     `json:"createdBy,omitempty"`
	CreateTime *time.Time `json:"createTime,omitempty"`
	UpdatedBy  string     `json:"updatedBy,omitempty"`
	UpdateTime *time.Time `json:"updateTime,omitempty"`
	Version    int64      `json:"version,omitempty"`
	Status     string     `json:"status,omitempty"`
	Type       *Type      `json:"type,omitempty"`
	FromEntity *Element   `json:"fromEntity,omitempty"`
	ToEntity   *Element   `json:"toEntity,omitempty"`
}

// AssetElement is an asset view carrying the lineage context chain built so
// far while tracing the asset's provenance path.
type AssetElement struct {
	AssetDescription
	Context []*Element `json:"context,omitempty"`
}
