package linkml

// evaluateRange checks minimum_value <= value <= maximum_value. Both bounds may be numbers or numeric-valued strings; comparison
// goes through Numeric for exact boundary behavior (minimum_value ==
// maximum_value == k accepts exactly k). A non-numeric value under a
// numeric range fails with a type error, not a range error;
// ActionType already owns that failure mode, so a non-numeric value here
// returns no issue rather than a second, redundant one.
func evaluateRange(slotName string, value any, minVal, maxVal any) *Issue {
	v, err := numericValue(value)
	if err != nil {
		return nil
	}
	if minVal != nil {
		if min, err := numericValue(minVal); err == nil && v.Cmp(min) < 0 {
			issue := newIssue("range", "value_below_minimum", "/"+slotName,
				"{value} should be at least {minimum}", map[string]any{
					"value": v.String(), "minimum": min.String(),
				})
			return &issue
		}
	}
	if maxVal != nil {
		if max, err := numericValue(maxVal); err == nil && v.Cmp(max) > 0 {
			issue := newIssue("range", "value_above_maximum", "/"+slotName,
				"{value} should be at most {maximum}", map[string]any{
					"value": v.String(), "maximum": max.String(),
				})
			return &issue
		}
	}
	return nil
}
