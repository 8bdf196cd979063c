package linkml

// linearize computes the C3 method resolution order for className: the
// class itself, followed by its is_a parent's MRO, followed by each
// mixin's MRO left-to-right, merged so that a name in any of these lists
// never appears before a name it depends on. The result
// names classes nearest-first (className itself is index 0). Every class
// name that flows into the merge is first run through sv.interned so the
// repeated `==` comparisons c3Merge performs across large inheritance
// graphs compare identical string headers rather than distinct
// allocations of the same text.
func linearize(schema *SchemaDefinition, sv *SchemaView, className string, seen map[string]bool) ([]string, error) {
	className = sv.interned(className)
	if seen == nil {
		seen = map[string]bool{}
	}
	if seen[className] {
		return nil, wrapf(ErrInheritanceCycle, "%s", className)
	}
	class, ok := schema.Classes[className]
	if !ok {
		return nil, wrapf(ErrUnknownClass, "%s", className)
	}

	childSeen := make(map[string]bool, len(seen)+1)
	for k := range seen {
		childSeen[k] = true
	}
	childSeen[className] = true

	var sequences [][]string
	var tails []string // for the final merge step, parent then mixins

	if class.IsA != "" {
		parent := sv.interned(class.IsA)
		parentMRO, err := linearize(schema, sv, parent, childSeen)
		if err != nil {
			return nil, err
		}
		sequences = append(sequences, parentMRO)
		tails = append(tails, parent)
	}
	for _, mixin := range class.Mixins {
		mixin := sv.interned(mixin)
		mixinMRO, err := linearize(schema, sv, mixin, childSeen)
		if err != nil {
			return nil, err
		}
		sequences = append(sequences, mixinMRO)
		tails = append(tails, mixin)
	}
	sequences = append(sequences, tails)

	merged, err := c3Merge(sequences)
	if err != nil {
		return nil, wrapf(ErrInconsistentMRO, "%s", className)
	}
	return append([]string{className}, merged...), nil
}

// c3Merge implements the standard C3 linearization merge: repeatedly take
// the head of the first list whose head does not appear in the tail of
// any other list, until all lists are exhausted.
func c3Merge(sequences [][]string) ([]string, error) {
	var result []string
	lists := make([][]string, 0, len(sequences))
	for _, s := range sequences {
		if len(s) > 0 {
			lists = append(lists, append([]string{}, s...))
		}
	}

	for len(lists) > 0 {
		var head string
		found := false
		for _, candidate := range lists {
			head = candidate[0]
			okHead := true
			for _, other := range lists {
				if inTail(other, head) {
					okHead = false
					break
				}
			}
			if okHead {
				found = true
				break
			}
		}
		if !found {
			return nil, errInconsistentMerge
		}
		result = append(result, head)
		newLists := make([][]string, 0, len(lists))
		for _, l := range lists {
			filtered := removeFirstOccurrence(l, head)
			if len(filtered) > 0 {
				newLists = append(newLists, filtered)
			}
		}
		lists = newLists
	}
	return result, nil
}

var errInconsistentMerge = wrapf(ErrInconsistentMRO, "no consistent linearization")

func inTail(list []string, name string) bool {
	for i := 1; i < len(list); i++ {
		if list[i] == name {
			return true
		}
	}
	return false
}

func removeFirstOccurrence(list []string, name string) []string {
	out := make([]string, 0, len(list))
	removed := false
	for _, v := range list {
		if !removed && v == name {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out
}
