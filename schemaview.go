package linkml

import "sync"

// SchemaView is the elaborated form of a whole schema: a memoized
// name→ResolvedClass map plus the navigation queries generators and
// validators use. It is immutable once built and safe to share.
type SchemaView struct {
	Schema  *SchemaDefinition
	classes map[string]*ResolvedClass

	internMu sync.Mutex
	intern   map[string]string // process-local string interning pool
}

// Elaborate resolves imports-merged schema into a SchemaView: it
// linearizes every class's MRO, induces its slot set, resolves every
// slot's range, expands each class's URI (its class_uri, or else its name
// under the default prefix), and caches each class's identifier slot.
// Slot and type URIs are not expanded. Elaboration is deterministic and idempotent: re-elaborating an
// already-elaborated schema's raw form produces an equal SchemaView.
func Elaborate(schema *SchemaDefinition) (*SchemaView, error) {
	sv := &SchemaView{Schema: schema, classes: map[string]*ResolvedClass{}, intern: map[string]string{}}

	prefixes := schema.Prefixes
	if prefixes == nil {
		prefixes = map[string]string{}
	}

	for _, name := range schema.ClassOrder {
		mro, err := linearize(schema, sv, name, nil)
		if err != nil {
			return nil, err
		}
		induced, order, err := induceSlots(schema, sv, mro)
		if err != nil {
			return nil, err
		}

		resolvedRanges := make(map[string]*ResolvedRange, len(induced))
		var identifierSlot string
		identifierCount := 0
		for slotName, slot := range induced {
			rr, err := resolveRange(schema, slot.Range)
			if err != nil {
				return nil, wrapf(err, "class %s slot %s", name, slotName)
			}
			resolvedRanges[slotName] = rr
			if boolValue(slot.Identifier) {
				identifierCount++
				identifierSlot = slotName
			}
		}
		if identifierCount > 1 {
			return nil, wrapf(ErrDuplicateIdentifier, "class %s", name)
		}

		class := schema.Classes[name]
		classURI, err := expandURI(class.ClassURI, schema.DefaultPrefix, prefixes)
		if err != nil {
			return nil, err
		}
		if classURI == "" {
			expanded, _ := expandURI(name, schema.DefaultPrefix, prefixes)
			classURI = expanded
		}

		sv.classes[name] = &ResolvedClass{
			Name:           sv.interned(name),
			MRO:            mro,
			InducedSlots:   induced,
			SlotOrder:      order,
			ResolvedRanges: resolvedRanges,
			ClassURI:       classURI,
			Abstract:       boolValue(class.Abstract),
			TreeRoot:       boolValue(class.TreeRoot),
			IdentifierSlot: identifierSlot,
			Rules:          class.Rules,
			UniqueKeys:     class.UniqueKeys,
		}
	}

	return sv, nil
}

// wrapf is reused here with a non-sentinel first error (range-resolution
// failures already carry a sentinel); errors.go's wrapf requires an
// error, which a wrapped error still satisfies via %w chaining.

func (sv *SchemaView) interned(s string) string {
	sv.internMu.Lock()
	defer sv.internMu.Unlock()
	if existing, ok := sv.intern[s]; ok {
		return existing
	}
	sv.intern[s] = s
	return s
}

// TreeRootClass returns the first class declared with tree_root: true,
// in schema declaration order — the default validation target when a
// caller names no class.
func (sv *SchemaView) TreeRootClass() (string, bool) {
	for _, name := range sv.Schema.ClassOrder {
		if rc := sv.classes[name]; rc != nil && rc.TreeRoot {
			return name, true
		}
	}
	return "", false
}

// ResolvedClassByName returns the elaborated class, or ErrClassNotFound.
func (sv *SchemaView) ResolvedClassByName(name string) (*ResolvedClass, error) {
	rc, ok := sv.classes[name]
	if !ok {
		return nil, wrapf(ErrClassNotFound, "%s", name)
	}
	return rc, nil
}

// Ancestors returns name's MRO excluding itself, nearest-first.
func (sv *SchemaView) Ancestors(name string) ([]string, error) {
	rc, err := sv.ResolvedClassByName(name)
	if err != nil {
		return nil, err
	}
	if len(rc.MRO) == 0 {
		return nil, nil
	}
	return rc.MRO[1:], nil
}

// Descendants returns every class whose MRO contains name.
func (sv *SchemaView) Descendants(name string) []string {
	var out []string
	for _, candidate := range sv.Schema.ClassOrder {
		rc := sv.classes[candidate]
		if rc == nil || rc.Name == name {
			continue
		}
		if rc.isSubclassOf(name) {
			out = append(out, candidate)
		}
	}
	return out
}

// InducedSlots returns name's induced slot set in MRO-stable order.
func (sv *SchemaView) InducedSlots(name string) ([]string, map[string]*SlotDefinition, error) {
	rc, err := sv.ResolvedClassByName(name)
	if err != nil {
		return nil, nil, err
	}
	return rc.SlotOrder, rc.InducedSlots, nil
}

// IsSubclassOf reports whether a is b or inherits from b.
func (sv *SchemaView) IsSubclassOf(a, b string) bool {
	rc, ok := sv.classes[a]
	if !ok {
		return false
	}
	return rc.isSubclassOf(b)
}

// AllClassesThatUse returns every class whose induced slot set contains
// slotName, in schema declaration order.
func (sv *SchemaView) AllClassesThatUse(slotName string) []string {
	var out []string
	for _, name := range sv.Schema.ClassOrder {
		rc := sv.classes[name]
		if rc == nil {
			continue
		}
		if _, ok := rc.InducedSlots[slotName]; ok {
			out = append(out, name)
		}
	}
	return out
}
