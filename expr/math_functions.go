package expr

import (
	"fmt"
	"math"

	"github.com/duke-git/lancet/v2/mathutil"
)

// mathFuncs wraps duke-git/lancet/v2's mathutil where it offers a direct
// equivalent (min/max/sum-style reducers), falling back to math.* for the
// single-argument transcendental functions lancet does not provide a
// float64 wrapper for.
var mathFuncs = map[string]func([]any) (any, error){
	"abs": func(args []any) (any, error) {
		f, err := argFloat(args, 0)
		if err != nil {
			return nil, err
		}
		return math.Abs(f), nil
	},
	"round": func(args []any) (any, error) {
		f, err := argFloat(args, 0)
		if err != nil {
			return nil, err
		}
		return math.Round(f), nil
	},
	"floor": func(args []any) (any, error) {
		f, err := argFloat(args, 0)
		if err != nil {
			return nil, err
		}
		return math.Floor(f), nil
	},
	"ceil": func(args []any) (any, error) {
		f, err := argFloat(args, 0)
		if err != nil {
			return nil, err
		}
		return math.Ceil(f), nil
	},
	"min": func(args []any) (any, error) {
		vals, err := argFloats(args)
		if err != nil {
			return nil, err
		}
		return mathutil.Min(vals...), nil
	},
	"max": func(args []any) (any, error) {
		vals, err := argFloats(args)
		if err != nil {
			return nil, err
		}
		return mathutil.Max(vals...), nil
	},
	"pow": func(args []any) (any, error) {
		base, err := argFloat(args, 0)
		if err != nil {
			return nil, err
		}
		exp, err := argFloat(args, 1)
		if err != nil {
			return nil, err
		}
		return float64(mathutil.Exponent(int64(base), int64(exp))), nil
	},
	"sqrt": func(args []any) (any, error) {
		f, err := argFloat(args, 0)
		if err != nil {
			return nil, err
		}
		if f < 0 {
			return nil, fmt.Errorf("%w: sqrt of negative number", ErrEvaluation)
		}
		return math.Sqrt(f), nil
	},
}

func argFloats(args []any) ([]float64, error) {
	out := make([]float64, len(args))
	for i := range args {
		f, err := argFloat(args, i)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
