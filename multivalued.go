package linkml

// evaluateMultivalued enforces the list-shape rule: a
// multivalued slot's value must be a list; a non-multivalued slot must
// not be. It returns the element list to validate when multivalued (each
// element is revalidated by the caller with the same slot's remaining
// scalar actions).
func evaluateMultivalued(slotName string, value any, multivalued bool) (elements []any, issue *Issue) {
	list, isList := value.([]any)
	switch {
	case multivalued && !isList:
		i := newIssue("multivalued", "expected_list", "/"+slotName,
			"Slot {slot} is multivalued and must be a list", map[string]any{"slot": slotName})
		return nil, &i
	case !multivalued && isList:
		i := newIssue("multivalued", "unexpected_list", "/"+slotName,
			"Slot {slot} is single-valued and must not be a list", map[string]any{"slot": slotName})
		return nil, &i
	case multivalued:
		return list, nil
	default:
		return nil, nil
	}
}
