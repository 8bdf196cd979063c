package linkml

import "github.com/linkml-go/linkml/expr"

// evaluateRules checks each class-level rule's precondition against
// instance; when the precondition holds (or is absent, which is
// vacuously true), the postcondition must also hold, failing with one
// issue per violated rule.
func evaluateRules(rules []*Rule, instance map[string]any, instanceJSON []byte, engine *expr.Engine) []Issue {
	var issues []Issue
	tagged := func(code, message string, params map[string]any, title string) Issue {
		issue := newIssue("rule", code, "/", message, params)
		issue.Rule = title
		return issue
	}
	for _, rule := range rules {
		pre, err := conditionsHold(rule.Preconditions, instance, instanceJSON, engine)
		if err != nil {
			issues = append(issues, tagged("precondition_failed",
				"Rule {rule} precondition failed to evaluate: {error}",
				map[string]any{"rule": rule.Title, "error": err.Error()}, rule.Title))
			continue
		}
		if !pre {
			continue
		}
		post, err := conditionsHold(rule.Postconditions, instance, instanceJSON, engine)
		if err != nil {
			issues = append(issues, tagged("postcondition_failed",
				"Rule {rule} postcondition failed to evaluate: {error}",
				map[string]any{"rule": rule.Title, "error": err.Error()}, rule.Title))
			continue
		}
		if !post {
			issues = append(issues, tagged("rule_violated",
				"Instance satisfies the preconditions of rule {rule} but not its postconditions",
				map[string]any{"rule": rule.Title}, rule.Title))
		}
	}
	return issues
}

// conditionsHold reports whether every structured slot condition and the
// optional free-form expression of cond are satisfied. A nil cond is
// vacuously true, matching an absent pre/postcondition block.
func conditionsHold(cond *RuleConditions, instance map[string]any, instanceJSON []byte, engine *expr.Engine) (bool, error) {
	if cond == nil {
		return true, nil
	}
	for slotName, sc := range cond.SlotConditions {
		if !slotConditionHolds(sc, instance[slotName], hasKey(instance, slotName)) {
			return false, nil
		}
	}
	if cond.Expression != "" {
		result, err := engine.Evaluate(cond.Expression, instanceJSON)
		if err != nil {
			return false, err
		}
		return truthyAny(result), nil
	}
	return true, nil
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

func slotConditionHolds(sc *SlotCondition, value any, present bool) bool {
	if sc.Required != nil && boolValue(sc.Required) != present {
		return false
	}
	if sc.EqualsString != nil {
		s, ok := value.(string)
		if !ok || s != *sc.EqualsString {
			return false
		}
	}
	if sc.ValueIn != nil {
		found := false
		for _, candidate := range sc.ValueIn {
			if candidate == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func truthyAny(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
