package omr

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestPropertiesJSONRoundTrip(t *testing.T) {
	nested := NewProperties()
	nested.Set("owner", StringValue("data-office"))
	nested.Set("retention", StringValue("7y"))

	props := NewProperties()
	props.Set("displayName", StringValue("Orders"))
	props.Set("rowCount", LongValue(120000))
	props.Set("verified", BoolValue(true))
	props.Set("status", EnumValue{Ordinal: 2, Symbol: "Active"})
	props.Set("additionalProperties", MapValue{Props: nested})
	props.Set("lastProfiled", DateValue(time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)))
	props.Set("aliases", ArrayValue{Values: []PropertyValue{StringValue("orders_v1"), IntValue(3)}})

	raw, err := json.Marshal(props)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	decoded := NewProperties()
	if err := json.Unmarshal(raw, decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(decoded.Names(), props.Names()) {
		t.Fatalf("names=%v, want %v", decoded.Names(), props.Names())
	}
	for _, name := range props.Names() {
		want, _ := props.Get(name)
		got, _ := decoded.Get(name)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("property %q=%#v, want %#v", name, got, want)
		}
	}
}

func TestPropertiesJSONRejectsUnknownCategory(t *testing.T) {
	raw := []byte(`[{"name":"x","category":"tensor"}]`)
	decoded := NewProperties()
	if err := json.Unmarshal(raw, decoded); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestPropertiesJSONRejectsMissingName(t *testing.T) {
	raw := []byte(`[{"category":"primitive","kind":"string","value":"x"}]`)
	decoded := NewProperties()
	if err := json.Unmarshal(raw, decoded); err == nil {
		t.Fatalf("expected error for missing name")
	}
}

func TestStatusNameRoundTrip(t *testing.T) {
	statuses := []InstanceStatus{StatusDraft, StatusPrepared, StatusProposed, StatusApproved, StatusActive, StatusDeprecated, StatusDeleted}
	for _, status := range statuses {
		if got := StatusFromName(status.String()); got != status {
			t.Fatalf("status %v round-tripped to %v", status, got)
		}
	}
	if got := StatusFromName("Retired"); got != StatusUnknown {
		t.Fatalf("unrecognized status=%v, want StatusUnknown", got)
	}
}
