package linkml

// evaluateEnum checks value against pvs' Text by string equality;
// permissible values are always textual.
func evaluateEnum(slotName string, value any, pvs []*PermissibleValue) *Issue {
	text, ok := value.(string)
	if !ok {
		return nil // a type-kind mismatch was already reported by evaluateType
	}
	for _, pv := range pvs {
		if pv.Text == text {
			return nil
		}
	}
	issue := newIssue("enum", "value_not_in_enum", "/"+slotName,
		"Value {value} is not one of the permissible values for slot {slot}", map[string]any{
			"value": text,
			"slot":  slotName,
		})
	return &issue
}
