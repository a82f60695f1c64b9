package convert

import (
	"time"

	"github.com/tessera-labs/tessera-go/internal/omr"
)

// elementNameProperty is the well-known key used to resolve a display name
// from a proxy's unique properties.
const elementNameProperty = "name"

// ToAssetDescription builds the catalog view of an entity. Missing optional
// upstream fields (type, status, properties) are omitted, never defaulted.
func ToAssetDescription(entity omr.EntityDetail) AssetDescription {
	description := AssetDescription{
		GUID:                 entity.GUID,
		MetadataCollectionID: entity.MetadataCollectionID,
		CreatedBy:            entity.CreatedBy,
		CreateTime:           timeOrNil(entity.CreateTime),
		UpdatedBy:            entity.UpdatedBy,
		UpdateTime:           timeOrNil(entity.UpdateTime),
		Version:              entity.Version,
		URL:                  entity.URL,
		Classifications:      ToClassifications(entity.Classifications),
	}
	if entity.Type != nil && entity.Type.Name != "" {
		description.Type = convertInstanceType(entity.Type)
	}
	if name := entity.Status.String(); name != "" {
		description.Status = name
	}
	if entity.Properties != nil {
		description.Properties = entity.Properties.AsMap()
	}
	return description
}

// ToRelationships converts a list of generic relationships. A nil input
// yields an empty, non-nil slice.
func ToRelationships(relationships []omr.Relationship) []Relationship {
	out := make([]Relationship, 0, len(relationships))
	for _, rel := range relationships {
		out = append(out, ToRelationship(rel))
	}
	return out
}

// ToRelationship converts one generic relationship, resolving both entity
// proxies into Elements.
func ToRelationship(rel omr.Relationship) Relationship {
	relationship := Relationship{
		GUID:       rel.GUID,
		CreatedBy:  rel.CreatedBy,
		CreateTime: timeOrNil(rel.CreateTime),
		UpdatedBy:  rel.UpdatedBy,
		UpdateTime: timeOrNil(rel.UpdateTime),
		Version:    rel.Version,
	}
	if name := rel.Status.String(); name != "" {
		relationship.Status = name
	}
	if rel.Type != nil && rel.Type.Name != "" {
		relationship.Type = convertInstanceType(rel.Type)
	}
	if rel.EntityOneProxy != nil {
		relationship.FromEntity = ToElement(*rel.EntityOneProxy)
	}
	if rel.EntityTwoProxy != nil {
		relationship.ToEntity = ToElement(*rel.EntityTwoProxy)
	}
	return relationship
}

// ToClassifications converts every classification independently. Nil and
// empty inputs both yield an empty, non-nil slice so downstream consumers
// have a uniform contract.
func ToClassifications(classifications []omr.Classification) []Classification {
	out := make([]Classification, 0, len(classifications))
	for _, c := range classifications {
		view := Classification{
			Name:       c.Name,
			Origin:     c.Origin,
			OriginGUID: c.OriginGUID,
			CreatedBy:  c.CreatedBy,
			CreateTime: timeOrNil(c.CreateTime),
			UpdatedBy:  c.UpdatedBy,
			UpdateTime: timeOrNil(c.UpdateTime),
			Version:    c.Version,
		}
		if name := c.Status.String(); name != "" {
			view.Status = name
		}
		if c.Type != nil {
			view.Type = convertInstanceType(c.Type)
		}
		if c.Properties != nil {
			view.Properties = c.Properties.AsMap()
		}
		out = append(out, view)
	}
	return out
}

// ToElement converts a relationship endpoint proxy, resolving its display
// name from the proxy's unique properties.
func ToElement(proxy omr.EntityProxy) *Element {
	element := &Element{
		GUID:                 proxy.GUID,
		MetadataCollectionID: proxy.MetadataCollectionID,
		CreatedBy:            proxy.CreatedBy,
		CreateTime:           timeOrNil(proxy.CreateTime),
		UpdatedBy:            proxy.UpdatedBy,
		UpdateTime:           timeOrNil(proxy.UpdateTime),
		Version:              proxy.Version,
	}
	if name := proxy.Status.String(); name != "" {
		element.Status = name
	}
	if proxy.Type != nil {
		element.Type = convertInstanceType(proxy.Type)
	}
	if proxy.UniqueProperties != nil {
		if value, ok := proxy.UniqueProperties.Get(elementNameProperty); ok {
			if primitive, ok := value.(omr.PrimitiveValue); ok {
				if name, ok := primitive.Value.(string); ok {
					element.Name = name
				}
			}
		}
	}
	return element
}

// BuildAssetElements maps an entity to a context Element carrying its GUID,
// type and flattened properties.
func BuildAssetElements(entity omr.EntityDetail) *Element {
	element := &Element{GUID: entity.GUID}
	if entity.Type != nil {
		element.Type = convertInstanceType(entity.Type)
	}
	if entity.Properties != nil {
		element.Properties = entity.Properties.AsMap()
	}
	return element
}

func convertInstanceType(instanceType *omr.InstanceType) *Type {
	return &Type{
		Name:        instanceType.Name,
		Description: instanceType.Description,
		Version:     instanceType.Version,
		SuperType:   instanceType.SuperType,
	}
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	value := t
	return &value
}
