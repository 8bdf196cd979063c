package expr

import (
	"fmt"
	"time"

	"github.com/duke-git/lancet/v2/datetime"
)

// dateFuncs are the date built-ins. today/now consult the injected
// Clock (deterministic in tests); year/days_between use
// duke-git/lancet/v2's datetime.
var dateFuncs = map[string]func([]any, Clock) (any, error){
	"today": func(args []any, clock Clock) (any, error) {
		return clock.Today().Format("2006-01-02"), nil
	},
	"now": func(args []any, clock Clock) (any, error) {
		return clock.Now().Format(time.RFC3339), nil
	},
	"year": func(args []any, clock Clock) (any, error) {
		s, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		t, err := parseDate(s)
		if err != nil {
			return nil, err
		}
		return float64(t.Year()), nil
	},
	"days_between": func(args []any, clock Clock) (any, error) {
		a, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := argString(args, 1)
		if err != nil {
			return nil, err
		}
		ta, err := parseDate(a)
		if err != nil {
			return nil, err
		}
		tb, err := parseDate(b)
		if err != nil {
			return nil, err
		}
		return float64(datetime.DaysBetween(ta, tb)), nil
	},
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a recognized date/datetime", ErrEvaluation, s)
}
