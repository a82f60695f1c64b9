package beans

import (
	"log/slog"

	"github.com/tessera-labs/tessera-go/internal/convert"
	"github.com/tessera-labs/tessera-go/internal/omr"
	"github.com/tessera-labs/tessera-go/internal/typereg"
)

const GlossaryTermTypeName = "GlossaryTerm"

// GlossaryTerm is the bean for the GlossaryTerm entity type: a semantic
// definition within a glossary.
type GlossaryTerm struct {
	SystemAttributes     omr.SystemAttributes          `json:"systemAttributes,omitzero"`
	DisplayName          string                        `json:"displayName,omitempty"`
	Summary              string                        `json:"summary,omitempty"`
	Description          string                        `json:"description,omitempty"`
	Examples             string                        `json:"examples,omitempty"`
	Abbreviation         string                        `json:"abbreviation,omitempty"`
	Usage                string                        `json:"usage,omitempty"`
	QualifiedName        string                        `json:"qualifiedName,omitempty"`
	AdditionalProperties map[string]string             `json:"additionalProperties,omitempty"`
	Classifications      []convert.Classification      `json:"classifications,omitempty"`
	ExtraAttributes      map[string]omr.PropertyValue  `json:"extraAttributes,omitempty"`
	ExtraClassifications map[string]omr.Classification `json:"extraClassifications,omitempty"`

	present presence
}

var glossaryTermNameSets = typereg.MustNameSets(
	GlossaryTermTypeName,
	[]string{
		"displayName",
		"summary",
		"description",
		"examples",
		"abbreviation",
		"usage",
		"qualifiedName",
		"additionalProperties",
	},
	[]string{
		"displayName",
		"summary",
		"description",
		"examples",
		"abbreviation",
		"usage",
		"qualifiedName",
	},
	nil,
	[]string{"additionalProperties"},
)

var glossaryTermAttributeSetters = map[string]func(*GlossaryTerm, omr.PrimitiveValue) bool{
	"displayName":   func(b *GlossaryTerm, v omr.PrimitiveValue) bool { return assignString(&b.DisplayName, v) },
	"summary":       func(b *GlossaryTerm, v omr.PrimitiveValue) bool { return assignString(&b.Summary, v) },
	"description":   func(b *GlossaryTerm, v omr.PrimitiveValue) bool { return assignString(&b.Description, v) },
	"examples":      func(b *GlossaryTerm, v omr.PrimitiveValue) bool { return assignString(&b.Examples, v) },
	"abbreviation":  func(b *GlossaryTerm, v omr.PrimitiveValue) bool { return assignString(&b.Abbreviation, v) },
	"usage":         func(b *GlossaryTerm, v omr.PrimitiveValue) bool { return assignString(&b.Usage, v) },
	"qualifiedName": func(b *GlossaryTerm, v omr.PrimitiveValue) bool { return assignString(&b.QualifiedName, v) },
}

type glossaryTermSink struct {
	bean *GlossaryTerm
}

func (s glossaryTermSink) setAttribute(name string, value omr.PrimitiveValue) bool {
	set, ok := glossaryTermAttributeSetters[name]
	if !ok || !set(s.bean, value) {
		return false
	}
	s.bean.present.mark(name)
	return true
}

func (s glossaryTermSink) setEnum(string, omr.EnumValue) bool { return false }

func (s glossaryTermSink) setMap(name string, value omr.MapValue) bool {
	if name != "additionalProperties" {
		return false
	}
	s.bean.AdditionalProperties = stringMap(value)
	s.bean.present.mark(name)
	return true
}

// GlossaryTermMapper converts between generic entity records and
// GlossaryTerm beans.
type GlossaryTermMapper struct {
	logger *slog.Logger
}

func NewGlossaryTermMapper(logger *slog.Logger) *GlossaryTermMapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &GlossaryTermMapper{logger: logger}
}

func (m *GlossaryTermMapper) Unpack(entity omr.EntityDetail) (*GlossaryTerm, error) {
	if err := checkEntityType(entity, GlossaryTermTypeName); err != nil {
		return nil, err
	}
	bean := &GlossaryTerm{SystemAttributes: entity.SystemAttributes}
	bean.ExtraAttributes = unpackProperties(m.logger, glossaryTermNameSets, entity.Properties, glossaryTermSink{bean: bean})
	bean.Classifications = convert.ToClassifications(entity.Classifications)
	bean.ExtraClassifications = keepClassifications(entity.Classifications)
	return bean, nil
}

func (m *GlossaryTermMapper) Pack(bean *GlossaryTerm) omr.EntityDetail {
	props := omr.NewProperties()
	setKnownString(props, bean.present, "displayName", bean.DisplayName)
	setKnownString(props, bean.present, "summary", bean.Summary)
	setKnownString(props, bean.present, "description", bean.Description)
	setKnownString(props, bean.present, "examples", bean.Examples)
	setKnownString(props, bean.present, "abbreviation", bean.Abbreviation)
	setKnownString(props, bean.present, "usage", bean.Usage)
	setKnownString(props, bean.present, "qualifiedName", bean.QualifiedName)
	if len(bean.AdditionalProperties) > 0 || bean.present.has("additionalProperties") {
		props.Set("additionalProperties", mapValueFromStrings(bean.AdditionalProperties))
	}
	packExtras(props, bean.ExtraAttributes)

	return omr.EntityDetail{
		SystemAttributes: bean.SystemAttributes,
		Type:             &omr.InstanceType{Name: GlossaryTermTypeName},
		Properties:       props,
		Classifications:  packExtraClassifications(bean.ExtraClassifications),
	}
}
