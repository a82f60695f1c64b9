package beans

import (
	"log/slog"

	"github.com/tessera-labs/tessera-go/internal/convert"
	"github.com/tessera-labs/tessera-go/internal/omr"
	"github.com/tessera-labs/tessera-go/internal/typereg"
)

const GovernanceRuleTypeName = "GovernanceRule"

// GovernanceDefinitionStatus is the lifecycle of a governance definition.
type GovernanceDefinitionStatus int

const (
	GovernanceDefinitionDraft GovernanceDefinitionStatus = iota
	GovernanceDefinitionProposed
	GovernanceDefinitionActive
	GovernanceDefinitionDeprecated
	GovernanceDefinitionOther
)

func (s GovernanceDefinitionStatus) String() string {
	switch s {
	case GovernanceDefinitionDraft:
		return "Draft"
	case GovernanceDefinitionProposed:
		return "Proposed"
	case GovernanceDefinitionActive:
		return "Active"
	case GovernanceDefinitionDeprecated:
		return "Deprecated"
	default:
		return "Other"
	}
}

func governanceDefinitionStatusFromEnum(value omr.EnumValue) (GovernanceDefinitionStatus, bool) {
	switch value.Symbol {
	case "Draft":
		return GovernanceDefinitionDraft, true
	case "Proposed":
		return GovernanceDefinitionProposed, true
	case "Active":
		return GovernanceDefinitionActive, true
	case "Deprecated":
		return GovernanceDefinitionDeprecated, true
	case "Other":
		return GovernanceDefinitionOther, true
	default:
		return 0, false
	}
}

// GovernanceRule is the bean for the GovernanceRule entity type: a
// technical control expressed as a logic expression.
type GovernanceRule struct {
	SystemAttributes          omr.SystemAttributes        `json:"systemAttributes,omitzero"`
	Title                     string                      `json:"title,omitempty"`
	Summary                   string                      `json:"summary,omitempty"`
	Description               string                      `json:"description,omitempty"`
	Scope                     string                      `json:"scope,omitempty"`
	Priority                  string                      `json:"priority,omitempty"`
	ImplementationDescription string                      `json:"implementationDescription,omitempty"`
	QualifiedName             string                      `json:"qualifiedName,omitempty"`
	Status                    *GovernanceDefinitionStatus `json:"status,omitempty"`
	AdditionalProperties      map[string]string           `json:"additionalProperties,omitempty"`
	Classifications           []convert.Classification    `json:"classifications,omitempty"`
	ExtraAttributes           map[string]omr.PropertyValue `json:"extraAttributes,omitempty"`
	ExtraClassifications      map[string]omr.Classification `json:"extraClassifications,omitempty"`

	present presence
}

var governanceRuleNameSets = typereg.MustNameSets(
	GovernanceRuleTypeName,
	[]string{
		"title",
		"summary",
		"description",
		"scope",
		"priority",
		"implementationDescription",
		"qualifiedName",
		"status",
		"additionalProperties",
	},
	[]string{
		"title",
		"summary",
		"description",
		"scope",
		"priority",
		"implementationDescription",
		"qualifiedName",
	},
	[]string{"status"},
	[]string{"additionalProperties"},
)

var governanceRuleAttributeSetters = map[string]func(*GovernanceRule, omr.PrimitiveValue) bool{
	"title":                     func(b *GovernanceRule, v omr.PrimitiveValue) bool { return assignString(&b.Title, v) },
	"summary":                   func(b *GovernanceRule, v omr.PrimitiveValue) bool { return assignString(&b.Summary, v) },
	"description":               func(b *GovernanceRule, v omr.PrimitiveValue) bool { return assignString(&b.Description, v) },
	"scope":                     func(b *GovernanceRule, v omr.PrimitiveValue) bool { return assignString(&b.Scope, v) },
	"priority":                  func(b *GovernanceRule, v omr.PrimitiveValue) bool { return assignString(&b.Priority, v) },
	"implementationDescription": func(b *GovernanceRule, v omr.PrimitiveValue) bool { return assignString(&b.ImplementationDescription, v) },
	"qualifiedName":             func(b *GovernanceRule, v omr.PrimitiveValue) bool { return assignString(&b.QualifiedName, v) },
}

type governanceRuleSink struct {
	bean *GovernanceRule
}

func (s governanceRuleSink) setAttribute(name string, value omr.PrimitiveValue) bool {
	set, ok := governanceRuleAttributeSetters[name]
	if !ok || !set(s.bean, value) {
		return false
	}
	s.bean.present.mark(name)
	return true
}

func (s governanceRuleSink) setEnum(name string, value omr.EnumValue) bool {
	if name != "status" {
		return false
	}
	status, ok := governanceDefinitionStatusFromEnum(value)
	if !ok {
		return false
	}
	s.bean.Status = &status
	return true
}

func (s governanceRuleSink) setMap(name string, value omr.MapValue) bool {
	if name != "additionalProperties" {
		return false
	}
	s.bean.AdditionalProperties = stringMap(value)
	s.bean.present.mark(name)
	return true
}

// GovernanceRuleMapper converts between generic entity records and
// GovernanceRule beans.
type GovernanceRuleMapper struct {
	logger *slog.Logger
}

func NewGovernanceRuleMapper(logger *slog.Logger) *GovernanceRuleMapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &GovernanceRuleMapper{logger: logger}
}

// Unpack builds a bean from a generic entity. An entity of a different type
// yields a *TypeMismatchError and no bean.
func (m *GovernanceRuleMapper) Unpack(entity omr.EntityDetail) (*GovernanceRule, error) {
	if err := checkEntityType(entity, GovernanceRuleTypeName); err != nil {
		return nil, err
	}
	bean := &GovernanceRule{SystemAttributes: entity.SystemAttributes}
	bean.ExtraAttributes = unpackProperties(m.logger, governanceRuleNameSets, entity.Properties, governanceRuleSink{bean: bean})
	bean.Classifications = convert.ToClassifications(entity.Classifications)
	bean.ExtraClassifications = keepClassifications(entity.Classifications)
	return bean, nil
}

// Pack rebuilds the generic entity from the bean: recognized fields become
// typed values with their declared kinds, extras are re-emitted unchanged.
func (m *GovernanceRuleMapper) Pack(bean *GovernanceRule) omr.EntityDetail {
	props := omr.NewProperties()
	setKnownString(props, bean.present, "title", bean.Title)
	setKnownString(props, bean.present, "summary", bean.Summary)
	setKnownString(props, bean.present, "description", bean.Description)
	setKnownString(props, bean.present, "scope", bean.Scope)
	setKnownString(props, bean.present, "priority", bean.Priority)
	setKnownString(props, bean.present, "implementationDescription", bean.ImplementationDescription)
	setKnownString(props, bean.present, "qualifiedName", bean.QualifiedName)
	if bean.Status != nil {
		props.Set("status", omr.EnumValue{Ordinal: int(*bean.Status), Symbol: bean.Status.String()})
	}
	if len(bean.AdditionalProperties) > 0 || bean.present.has("additionalProperties") {
		props.Set("additionalProperties", mapValueFromStrings(bean.AdditionalProperties))
	}
	packExtras(props, bean.ExtraAttributes)

	return omr.EntityDetail{
		SystemAttributes: bean.SystemAttributes,
		Type:             &omr.InstanceType{Name: GovernanceRuleTypeName},
		Properties:       props,
		Classifications:  packExtraClassifications(bean.ExtraClassifications),
	}
}

func checkEntityType(entity omr.EntityDetail, expected string) error {
	actual := ""
	if entity.Type != nil {
		actual = entity.Type.Name
	}
	if actual != expected {
		return &TypeMismatchError{GUID: entity.GUID, Expected: expected, Actual: actual}
	}
	return nil
}

func keepClassifications(classifications []omr.Classification) map[string]omr.Classification {
	if len(classifications) == 0 {
		return nil
	}
	out := make(map[string]omr.Classification, len(classifications))
	for _, c := range classifications {
		out[c.Name] = c
	}
	return out
}
