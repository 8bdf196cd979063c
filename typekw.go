package linkml

// evaluateType checks value's jsonKind against rr's expected kind;
// integers satisfy a "number" expectation.
func evaluateType(slotName string, value any, rr *ResolvedRange) *Issue {
	if rr.JSONKind == "" {
		return nil // class/enum ranges are checked by classref/enum actions
	}
	observed := jsonKind(value)
	if observed != rr.JSONKind && !(rr.JSONKind == "number" && observed == "integer") {
		issue := newIssue("type", "type_mismatch", "/"+slotName,
			"Value is {received} but should be {expected}", map[string]any{
				"expected": rr.JSONKind,
				"received": observed,
			})
		return &issue
	}
	if check, ok := Formats[rr.BasePrimitive]; ok {
		str, isString := value.(string)
		if isString && !check(str) {
			issue := newIssue("type", "invalid_format", "/"+slotName,
				"Value is not a valid {format}", map[string]any{"format": rr.Name})
			return &issue
		}
	}
	return nil
}
