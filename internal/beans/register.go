package beans

import "github.com/tessera-labs/tessera-go/internal/typereg"

// RegisterTypes registers the name sets of every generated bean type. The
// composition root calls this before applying any type archive, so archive
// entries for the same types take precedence.
func RegisterTypes(registry *typereg.Registry) {
	registry.Register(governanceRuleNameSets)
	registry.Register(glossaryTermNameSets)
	registry.Register(semanticAssignmentNameSets)
}
