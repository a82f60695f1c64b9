package typereg

import "sort"

// Registry maps type names to their recognized name sets. It is an explicit
// value owned by the process's composition root: built once at startup,
// read-only afterwards, safe for concurrent reads. Registering the same
// type name twice keeps the last registration.
type Registry struct {
	types map[string]NameSets
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]NameSets)}
}

func (r *Registry) Register(sets NameSets) {
	if sets.typeName == "" {
		return
	}
	r.types[sets.typeName] = sets
}

func (r *Registry) Lookup(typeName string) (NameSets, bool) {
	sets, ok := r.types[typeName]
	return sets, ok
}

// TypeNames returns the registered type names sorted for deterministic
// listings.
func (r *Registry) TypeNames() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
