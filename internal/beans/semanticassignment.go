package beans

import (
	"log/slog"

	"github.com/tessera-labs/tessera-go/internal/omr"
	"github.com/tessera-labs/tessera-go/internal/typereg"
)

const SemanticAssignmentTypeName = "SemanticAssignment"

// TermAssignmentStatus records how a semantic assignment came to be and how
// much it is trusted.
type TermAssignmentStatus int

const (
	TermAssignmentDiscovered TermAssignmentStatus = iota
	TermAssignmentProposed
	TermAssignmentImported
	TermAssignmentValidated
	TermAssignmentDeprecated
	TermAssignmentObsolete
	TermAssignmentOther
)

func (s TermAssignmentStatus) String() string {
	switch s {
	case TermAssignmentDiscovered:
		return "Discovered"
	case TermAssignmentProposed:
		return "Proposed"
	case TermAssignmentImported:
		return "Imported"
	case TermAssignmentValidated:
		return "Validated"
	case TermAssignmentDeprecated:
		return "Deprecated"
	case TermAssignmentObsolete:
		return "Obsolete"
	default:
		return "Other"
	}
}

func termAssignmentStatusFromEnum(value omr.EnumValue) (TermAssignmentStatus, bool) {
	switch value.Symbol {
	case "Discovered":
		return TermAssignmentDiscovered, true
	case "Proposed":
		return TermAssignmentProposed, true
	case "Imported":
		return TermAssignmentImported, true
	case "Validated":
		return TermAssignmentValidated, true
	case "Deprecated":
		return TermAssignmentDeprecated, true
	case "Obsolete":
		return TermAssignmentObsolete, true
	case "Other":
		return TermAssignmentOther, true
	default:
		return 0, false
	}
}

// SemanticAssignment is the bean for the relationship that links an asset
// element to the glossary term describing its meaning. Both endpoint
// proxies are carried through unchanged so a pack can restore them.
type SemanticAssignment struct {
	SystemAttributes omr.SystemAttributes         `json:"systemAttributes,omitzero"`
	Description      string                       `json:"description,omitempty"`
	Expression       string                       `json:"expression,omitempty"`
	Steward          string                       `json:"steward,omitempty"`
	Source           string                       `json:"source,omitempty"`
	Confidence       int                          `json:"confidence,omitempty"`
	Status           *TermAssignmentStatus        `json:"status,omitempty"`
	End1             *omr.EntityProxy             `json:"end1,omitempty"`
	End2             *omr.EntityProxy             `json:"end2,omitempty"`
	ExtraAttributes  map[string]omr.PropertyValue `json:"extraAttributes,omitempty"`

	present presence
}

var semanticAssignmentNameSets = typereg.MustNameSets(
	SemanticAssignmentTypeName,
	[]string{"description", "expression", "steward", "source", "confidence", "status"},
	[]string{"description", "expression", "steward", "source", "confidence"},
	[]string{"status"},
	nil,
)

var semanticAssignmentAttributeSetters = map[string]func(*SemanticAssignment, omr.PrimitiveValue) bool{
	"description": func(b *SemanticAssignment, v omr.PrimitiveValue) bool { return assignString(&b.Description, v) },
	"expression":  func(b *SemanticAssignment, v omr.PrimitiveValue) bool { return assignString(&b.Expression, v) },
	"steward":     func(b *SemanticAssignment, v omr.PrimitiveValue) bool { return assignString(&b.Steward, v) },
	"source":      func(b *SemanticAssignment, v omr.PrimitiveValue) bool { return assignString(&b.Source, v) },
	"confidence":  func(b *SemanticAssignment, v omr.PrimitiveValue) bool { return assignInt(&b.Confidence, v) },
}

type semanticAssignmentSink struct {
	bean *SemanticAssignment
}

func (s semanticAssignmentSink) setAttribute(name string, value omr.PrimitiveValue) bool {
	set, ok := semanticAssignmentAttributeSetters[name]
	if !ok || !set(s.bean, value) {
		return false
	}
	s.bean.present.mark(name)
	return true
}

func (s semanticAssignmentSink) setEnum(name string, value omr.EnumValue) bool {
	if name != "status" {
		return false
	}
	status, ok := termAssignmentStatusFromEnum(value)
	if !ok {
		return false
	}
	s.bean.Status = &status
	return true
}

func (s semanticAssignmentSink) setMap(string, omr.MapValue) bool { return false }

// SemanticAssignmentMapper converts between generic relationship records
// and SemanticAssignment beans.
type SemanticAssignmentMapper struct {
	logger *slog.Logger
}

func NewSemanticAssignmentMapper(logger *slog.Logger) *SemanticAssignmentMapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &SemanticAssignmentMapper{logger: logger}
}

func (m *SemanticAssignmentMapper) Unpack(rel omr.Relationship) (*SemanticAssignment, error) {
	actual := ""
	if rel.Type != nil {
		actual = rel.Type.Name
	}
	if actual != SemanticAssignmentTypeName {
		return nil, &TypeMismatchError{GUID: rel.GUID, Expected: SemanticAssignmentTypeName, Actual: actual}
	}
	bean := &SemanticAssignment{
		SystemAttributes: rel.SystemAttributes,
		End1:             rel.EntityOneProxy,
		End2:             rel.EntityTwoProxy,
	}
	bean.ExtraAttributes = unpackProperties(m.logger, semanticAssignmentNameSets, rel.Properties, semanticAssignmentSink{bean: bean})
	return bean, nil
}

func (m *SemanticAssignmentMapper) Pack(bean *SemanticAssignment) omr.Relationship {
	props := omr.NewProperties()
	setKnownString(props, bean.present, "description", bean.Description)
	setKnownString(props, bean.present, "expression", bean.Expression)
	setKnownString(props, bean.present, "steward", bean.Steward)
	setKnownString(props, bean.present, "source", bean.Source)
	setKnownInt(props, bean.present, "confidence", bean.Confidence)
	if bean.Status != nil {
		props.Set("status", omr.EnumValue{Ordinal: int(*bean.Status), Symbol: bean.Status.String()})
	}
	packExtras(props, bean.ExtraAttributes)

	return omr.Relationship{
		SystemAttributes: bean.SystemAttributes,
		Type:             &omr.InstanceType{Name: SemanticAssignmentTypeName},
		Properties:       props,
		EntityOneProxy:   bean.End1,
		EntityTwoProxy:   bean.End2,
	}
}
