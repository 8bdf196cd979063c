package linkml

// evaluateRequired reports a missing-value issue when present is false.
func evaluateRequired(slotName string, present bool) *Issue {
	if present {
		return nil
	}
	issue := newIssue("required", "missing_required_slot", "/"+slotName,
		"Required slot {slot} is missing", map[string]any{"slot": slotName})
	return &issue
}
