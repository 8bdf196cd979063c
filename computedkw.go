package linkml

import (
	"math"

	"github.com/linkml-go/linkml/expr"
)

// floatEpsilon bounds the tolerance for comparing a provided value
// against a computed equals_expression result: float computation is not
// bit-exact across implementations, so two numbers are equal when their
// absolute difference is at most floatEpsilon, rather than strictly.
const floatEpsilon = 1e-9

// evaluateComputed runs slot.EqualsExpression against instanceJSON (the
// enclosing object, so the expression can reference sibling slots) and
// either checks it against the slot's provided value, or — when the slot
// is absent — returns the computed value for the caller to materialize
// the same way applyDefault does.
func evaluateComputed(slotName string, value any, present bool, expression string, instanceJSON []byte, engine *expr.Engine) (*Issue, any) {
	computed, err := engine.Evaluate(expression, instanceJSON)
	if err != nil {
		issue := newIssue("computed", "expression_failed", "/"+slotName,
			"equals_expression for slot {slot} failed to evaluate: {error}",
			map[string]any{"slot": slotName, "error": err.Error()})
		return &issue, nil
	}
	if !present {
		return nil, computed
	}
	if !computedEquals(value, computed) {
		issue := newIssue("computed", "computed_mismatch", "/"+slotName,
			"{value} does not match the value computed from equals_expression",
			map[string]any{"value": value, "computed": computed})
		return &issue, nil
	}
	return nil, nil
}

func computedEquals(value, computed any) bool {
	vf, vok := toFloatAny(value)
	cf, cok := toFloatAny(computed)
	if vok && cok {
		return math.Abs(vf-cf) <= floatEpsilon
	}
	return value == computed
}

func toFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}
