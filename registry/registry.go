// Package registry implements the global string-ID registry contract
// (spec.md §3, §9): a bidirectional mapping between canonical
// identifier strings and small integer ids, populated once at startup
// and read without locking thereafter. It is consulted by the rest of
// the core only as an external collaborator for detecting
// double-registration; it does not participate in parsing or
// symbol-use scanning.
package registry

import (
	"fmt"

	"github.com/samber/lo"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/scriptlab/eidos/errs"
)

// Registry is a single-init, bidirectional name<->id table. The zero
// value is not usable; construct with New.
type Registry struct {
	byName *orderedmap.OrderedMap[string, int]
	byID   map[int]string
	frozen bool
}

// New creates an empty, writable registry.
func New() *Registry {
	return &Registry{
		byName: orderedmap.New[string, int](),
		byID:   make(map[int]string),
	}
}

// Register adds a name/id pair. It fails with ConfigError if either
// the name or the id is already registered, or if the registry has
// been frozen.
func (r *Registry) Register(name string, id int) error {
	if r.frozen {
		return errs.NewConfigError(fmt.Sprintf("registry is frozen, cannot register %q", name))
	}
	if _, ok := r.byName.Get(name); ok {
		return errs.NewConfigError(fmt.Sprintf("identifier %q is already registered", name))
	}
	if existing, ok := r.byID[id]; ok {
		return errs.NewConfigError(fmt.Sprintf("id %d is already registered to %q", id, existing))
	}
	r.byName.Set(name, id)
	r.byID[id] = name
	return nil
}

// RegisterAll registers a caller-supplied list of well-known names
// (spec.md §3's "populated once at program start"), assigning
// sequential ids starting at startID in list order. Callers routinely
// build this list by concatenating several prefix groups (mutation
// types, subpopulations, ...), so duplicates are tolerated here and
// quietly dropped with lo.Uniq before any id is assigned, rather than
// surfacing a ConfigError for what is almost always a harmless overlap.
// Returns the assigned id for each unique name, in the same order.
func (r *Registry) RegisterAll(names []string, startID int) ([]int, error) {
	unique := lo.Uniq(names)
	ids := make([]int, len(unique))
	for i, name := range unique {
		id := startID + i
		if err := r.Register(name, id); err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// Freeze rejects all future Register calls. Callers complete startup
// registration, then Freeze before any parser runs (spec.md §5).
func (r *Registry) Freeze() { r.frozen = true }

// Lookup returns the id registered for name.
func (r *Registry) Lookup(name string) (int, bool) {
	return r.byName.Get(name)
}

// Name returns the name registered for id.
func (r *Registry) Name(id int) (string, bool) {
	name, ok := r.byID[id]
	return name, ok
}

// Len reports how many names are currently registered.
func (r *Registry) Len() int { return r.byName.Len() }
