package linkml

// evaluatePattern checks value against pattern using cache's compiled
// (and shared-cached) regexp. The slot's own pattern takes precedence
// over its range type's pattern; compiled forms come from the shared
// LRU of cache.go.
func evaluatePattern(slotName string, value any, slotPattern *string, typePattern *string, cache *patternCache) *Issue {
	pattern := slotPattern
	if pattern == nil {
		pattern = typePattern
	}
	if pattern == nil {
		return nil
	}
	str, ok := value.(string)
	if !ok {
		return nil // a type-kind mismatch was already reported by evaluateType
	}

	re, err := cache.compile(*pattern)
	if err != nil {
		issue := newIssue("pattern", "invalid_pattern", "/"+slotName,
			"Invalid regular expression pattern {pattern}", map[string]any{"pattern": *pattern})
		return &issue
	}
	if !re.MatchString(str) {
		issue := newIssue("pattern", "pattern_mismatch", "/"+slotName,
			"Value does not match the required pattern {pattern}", map[string]any{
				"pattern": *pattern, "value": str,
			})
		return &issue
	}
	return nil
}
