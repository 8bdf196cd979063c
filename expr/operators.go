package expr

import (
	"fmt"
	"reflect"
)

func evalUnary(op string, operand any) (any, error) {
	switch op {
	case "-":
		n, ok := toFloat(operand)
		if !ok {
			return nil, fmt.Errorf("%w: unary - on non-number", ErrEvaluation)
		}
		return -n, nil
	case "not":
		return !truthy(operand), nil
	}
	return nil, fmt.Errorf("%w: unknown unary operator %q", ErrEvaluation, op)
}

func evalBinary(op string, left, right any) (any, error) {
	switch op {
	case "and":
		return truthy(left) && truthy(right), nil
	case "or":
		return truthy(left) || truthy(right), nil
	case "==":
		return valuesEqual(left, right), nil
	case "!=":
		return !valuesEqual(left, right), nil
	case "+":
		if ls, ok := left.(string); ok {
			rs, ok := right.(string)
			if !ok {
				return nil, fmt.Errorf("%w: + mixes string and non-string", ErrEvaluation)
			}
			return ls + rs, nil
		}
		return arith(op, left, right)
	case "-", "*", "/", "%":
		return arith(op, left, right)
	case "<", "<=", ">", ">=":
		return compare(op, left, right)
	}
	return nil, fmt.Errorf("%w: unknown binary operator %q", ErrEvaluation, op)
}

func arith(op string, left, right any) (any, error) {
	l, ok1 := toFloat(left)
	r, ok2 := toFloat(right)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("%w: %s requires numeric operands", ErrEvaluation, op)
	}
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return nil, fmt.Errorf("%w: division by zero", ErrEvaluation)
		}
		return l / r, nil
	case "%":
		if r == 0 {
			return nil, fmt.Errorf("%w: modulo by zero", ErrEvaluation)
		}
		return float64(int64(l) % int64(r)), nil
	}
	return nil, fmt.Errorf("%w: unknown arithmetic operator %q", ErrEvaluation, op)
}

func compare(op string, left, right any) (any, error) {
	l, ok1 := toFloat(left)
	r, ok2 := toFloat(right)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("%w: %s requires numeric operands", ErrEvaluation, op)
	}
	switch op {
	case "<":
		return l < r, nil
	case "<=":
		return l <= r, nil
	case ">":
		return l > r, nil
	case ">=":
		return l >= r, nil
	}
	return nil, fmt.Errorf("%w: unknown comparison operator %q", ErrEvaluation, op)
}

func valuesEqual(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
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
