package expr

import (
	"fmt"

	"github.com/samber/lo"
)

// aggregationFuncs are the aggregation built-ins, operating over a
// list argument (typically a multivalued slot's value). Wraps
// github.com/samber/lo.
var aggregationFuncs = map[string]func([]any) (any, error){
	"sum": func(args []any) (any, error) {
		list, err := argList(args, 0)
		if err != nil {
			return nil, err
		}
		nums, err := toFloatSlice(list)
		if err != nil {
			return nil, err
		}
		return lo.Sum(nums), nil
	},
	"avg": func(args []any) (any, error) {
		list, err := argList(args, 0)
		if err != nil {
			return nil, err
		}
		nums, err := toFloatSlice(list)
		if err != nil {
			return nil, err
		}
		if len(nums) == 0 {
			return nil, fmt.Errorf("%w: avg() of an empty list", ErrEvaluation)
		}
		return lo.Sum(nums) / float64(len(nums)), nil
	},
	"count": func(args []any) (any, error) {
		list, err := argList(args, 0)
		if err != nil {
			return nil, err
		}
		return float64(len(list)), nil
	},
	"any": func(args []any) (any, error) {
		list, err := argList(args, 0)
		if err != nil {
			return nil, err
		}
		return lo.SomeBy(list, func(v any) bool { return truthy(v) }), nil
	},
	"all": func(args []any) (any, error) {
		list, err := argList(args, 0)
		if err != nil {
			return nil, err
		}
		return lo.EveryBy(list, func(v any) bool { return truthy(v) }), nil
	},
}

func argList(args []any, i int) ([]any, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("%w: missing argument %d", ErrEvaluation, i)
	}
	list, ok := args[i].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: argument %d must be a list", ErrEvaluation, i)
	}
	return list, nil
}

func toFloatSlice(list []any) ([]float64, error) {
	out := make([]float64, len(list))
	for i, v := range list {
		f, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: aggregation over a non-numeric list element", ErrEvaluation)
		}
		out[i] = f
	}
	return out, nil
}
