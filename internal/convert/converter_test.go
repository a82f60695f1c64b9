package convert

import (
	"testing"
	"time"

	"github.com/tessera-labs/tessera-go/internal/omr"
)

func orderEntity() omr.EntityDetail {
	props := omr.NewProperties()
	props.Set("name", omr.StringValue("Orders"))
	props.Set("description", omr.StringValue("Order fact table"))

	return omr.EntityDetail{
		SystemAttributes: omr.SystemAttributes{
			GUID:                 "entity-1",
			MetadataCollectionID: "collection-1",
			CreatedBy:            "alice",
			CreateTime:           time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
			UpdatedBy:            "bob",
			UpdateTime:           time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
			Version:              3,
			Status:               omr.StatusActive,
		},
		Type:       &omr.InstanceType{Name: "RelationalTable", Description: "A table", Version: 2},
		URL:        "/assets/entity-1",
		Properties: props,
		Classifications: []omr.Classification{
			{Name: "Confidentiality", Origin: "Assigned"},
		},
	}
}

func TestToAssetDescription(t *testing.T) {
	description := ToAssetDescription(orderEntity())

	if description.GUID != "entity-1" {
		t.Fatalf("guid=%q, want entity-1", description.GUID)
	}
	if description.Type == nil || description.Type.Name != "RelationalTable" {
		t.Fatalf("type=%v, want RelationalTable", description.Type)
	}
	if description.Status != "Active" {
		t.Fatalf("status=%q, want Active", description.Status)
	}
	if description.Version != 3 {
		t.Fatalf("version=%d, want 3", description.Version)
	}
	if description.Properties["name"] != "Orders" {
		t.Fatalf("properties[name]=%v, want Orders", description.Properties["name"])
	}
	if len(description.Classifications) != 1 || description.Classifications[0].Name != "Confidentiality" {
		t.Fatalf("classifications=%v, want Confidentiality", description.Classifications)
	}
}

func TestToAssetDescriptionOmitsMissingOptionalFields(t *testing.T) {
	description := ToAssetDescription(omr.EntityDetail{
		SystemAttributes: omr.SystemAttributes{GUID: "entity-2"},
	})

	if description.Type != nil {
		t.Fatalf("type=%v, want nil for missing type", description.Type)
	}
	if description.Status != "" {
		t.Fatalf("status=%q, want empty for unknown status", description.Status)
	}
	if description.CreateTime != nil {
		t.Fatalf("createTime=%v, want nil when absent", description.CreateTime)
	}
	if description.Classifications == nil {
		t.Fatalf("classifications is nil, want empty slice")
	}
}

func TestToClassificationsNormalizesEmptiness(t *testing.T) {
	if got := ToClassifications(nil); got == nil || len(got) != 0 {
		t.Fatalf("ToClassifications(nil)=%v, want empty non-nil slice", got)
	}
	if got := ToClassifications([]omr.Classification{}); got == nil || len(got) != 0 {
		t.Fatalf("ToClassifications([])=%v, want empty non-nil slice", got)
	}
}

func TestToRelationshipResolvesProxies(t *testing.T) {
	uniqueOne := omr.NewProperties()
	uniqueOne.Set("name", omr.StringValue("Orders"))
	uniqueTwo := omr.NewProperties()
	uniqueTwo.Set("qualifiedName", omr.StringValue("glossary.customer"))

	rel := omr.Relationship{
		SystemAttributes: omr.SystemAttributes{GUID: "rel-1", Version: 1, Status: omr.StatusActive},
		Type:             &omr.InstanceType{Name: "SemanticAssignment"},
		EntityOneProxy: &omr.EntityProxy{
			SystemAttributes: omr.SystemAttributes{GUID: "entity-1", Status: omr.StatusActive},
			Type:             &omr.InstanceType{Name: "RelationalTable"},
			UniqueProperties: uniqueOne,
		},
		EntityTwoProxy: &omr.EntityProxy{
			SystemAttributes: omr.SystemAttributes{GUID: "entity-2"},
			Type:             &omr.InstanceType{Name: "GlossaryTerm"},
			UniqueProperties: uniqueTwo,
		},
	}

	relationship := ToRelationship(rel)
	if relationship.GUID != "rel-1" {
		t.Fatalf("guid=%q, want rel-1", relationship.GUID)
	}
	if relationship.Type == nil || relationship.Type.Name != "SemanticAssignment" {
		t.Fatalf("type=%v, want SemanticAssignment", relationship.Type)
	}
	if relationship.FromEntity == nil || relationship.FromEntity.Name != "Orders" {
		t.Fatalf("fromEntity=%v, want name Orders", relationship.FromEntity)
	}
	// The display name comes from the fixed key only.
	if relationship.ToEntity == nil || relationship.ToEntity.Name != "" {
		t.Fatalf("toEntity=%v, want empty name", relationship.ToEntity)
	}
	if relationship.ToEntity.GUID != "entity-2" {
		t.Fatalf("toEntity guid=%q, want entity-2", relationship.ToEntity.GUID)
	}
}

func TestToRelationshipsNilInput(t *testing.T) {
	if got := ToRelationships(nil); got == nil || len(got) != 0 {
		t.Fatalf("ToRelationships(nil)=%v, want empty non-nil slice", got)
	}
}
