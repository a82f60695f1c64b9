package beans

import (
	"reflect"
	"testing"

	"github.com/tessera-labs/tessera-go/internal/omr"
)

func glossaryTermEntity() omr.EntityDetail {
	props := omr.NewProperties()
	props.Set("displayName", omr.StringValue("Customer"))
	props.Set("summary", omr.StringValue("A party purchasing goods or services"))
	props.Set("abbreviation", omr.StringValue("CUST"))
	props.Set("qualifiedName", omr.StringValue("glossary.customer"))

	return omr.EntityDetail{
		SystemAttributes: omr.SystemAttributes{GUID: "term-1", Version: 1},
		Type:             &omr.InstanceType{Name: GlossaryTermTypeName},
		Properties:       props,
	}
}

func TestGlossaryTermUnpackAndPack(t *testing.T) {
	mapper := NewGlossaryTermMapper(nil)
	original := glossaryTermEntity()

	bean, err := mapper.Unpack(original)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if bean.DisplayName != "Customer" || bean.Abbreviation != "CUST" {
		t.Fatalf("bean=%+v, want displayName/abbreviation populated", bean)
	}

	packed := mapper.Pack(bean)
	for _, name := range original.Properties.Names() {
		want, _ := original.Properties.Get(name)
		got, ok := packed.Properties.Get(name)
		if !ok || !reflect.DeepEqual(got, want) {
			t.Fatalf("property %q=%#v, want %#v", name, got, want)
		}
	}
}

func TestGlossaryTermSchemaEvolutionPassThrough(t *testing.T) {
	// A property added to the type after the bean was generated must pass
	// through a round trip unmodified.
	entity := glossaryTermEntity()
	entity.Properties.Set("translationOf", omr.StringValue("glossary.kunde"))

	mapper := NewGlossaryTermMapper(nil)
	bean, err := mapper.Unpack(entity)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	packed := mapper.Pack(bean)

	got, ok := packed.Properties.Get("translationOf")
	if !ok || got.(omr.PrimitiveValue).Value != "glossary.kunde" {
		t.Fatalf("translationOf=%#v, want pass-through", got)
	}
}

func TestGlossaryTermUnpackWithoutProperties(t *testing.T) {
	entity := omr.EntityDetail{
		SystemAttributes: omr.SystemAttributes{GUID: "term-2"},
		Type:             &omr.InstanceType{Name: GlossaryTermTypeName},
	}
	bean, err := NewGlossaryTermMapper(nil).Unpack(entity)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if bean.DisplayName != "" || len(bean.ExtraAttributes) != 0 {
		t.Fatalf("bean=%+v, want empty fields for absent properties", bean)
	}
	if bean.Classifications == nil {
		t.Fatalf("classifications is nil, want empty slice")
	}
}
