package expr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/duke-git/lancet/v2/strutil"
)

// stringFuncs wraps duke-git/lancet/v2's strutil for the string
// built-ins. upper/lower use the standard library directly: lancet's
// strutil only exposes UpperFirst/LowerFirst (first-rune case folding),
// not whole-string case conversion.
var stringFuncs = map[string]func([]any) (any, error){
	"upper": func(args []any) (any, error) {
		s, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		return strings.ToUpper(s), nil
	},
	"lower": func(args []any) (any, error) {
		s, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		return strings.ToLower(s), nil
	},
	"len": func(args []any) (any, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: len() requires an argument", ErrEvaluation)
		}
		switch v := args[0].(type) {
		case string:
			return float64(len([]rune(v))), nil
		case []any:
			return float64(len(v)), nil
		default:
			return nil, fmt.Errorf("%w: len() requires a string or list", ErrEvaluation)
		}
	},
	"concat": func(args []any) (any, error) {
		out := ""
		for i := range args {
			s, err := argString(args, i)
			if err != nil {
				return nil, err
			}
			out += s
		}
		return out, nil
	},
	"substring": func(args []any) (any, error) {
		s, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		start, err := argFloat(args, 1)
		if err != nil {
			return nil, err
		}
		end := float64(len([]rune(s)))
		if len(args) > 2 {
			end, err = argFloat(args, 2)
			if err != nil {
				return nil, err
			}
		}
		runes := []rune(s)
		si, ei := int(start), int(end)
		if si < 0 || ei > len(runes) || si > ei {
			return nil, fmt.Errorf("%w: substring indices out of range", ErrEvaluation)
		}
		return string(runes[si:ei]), nil
	},
	"contains": func(args []any) (any, error) {
		s, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		sub, err := argString(args, 1)
		if err != nil {
			return nil, err
		}
		return strutil.ContainsAny(s, []string{sub}), nil
	},
	"startswith": func(args []any) (any, error) {
		s, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		prefix, err := argString(args, 1)
		if err != nil {
			return nil, err
		}
		return len(s) >= len(prefix) && s[:len(prefix)] == prefix, nil
	},
	"endswith": func(args []any) (any, error) {
		s, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		suffix, err := argString(args, 1)
		if err != nil {
			return nil, err
		}
		return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix, nil
	},
	"matches": func(args []any) (any, error) {
		s, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		pattern, err := argString(args, 1)
		if err != nil {
			return nil, err
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid regex %q", ErrEvaluation, pattern)
		}
		return re.MatchString(s), nil
	},
}
