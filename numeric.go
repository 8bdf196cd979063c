package linkml

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/goccy/go-json"
)

// Numeric is the exact numeric domain slot-range bounds and unique-key
// tuples are compared in: a rational number, so the integer and float
// JSON encodings of the same value (1 vs 1.0) compare and hash
// identically, and minimum_value == maximum_value == k accepts exactly
// k with no float rounding at the boundary.
type Numeric struct {
	rat *big.Rat
}

// numericValue interprets an instance scalar or a schema bound as a
// Numeric. Go numbers, json.Number, and numeric-valued strings all
// qualify ("both bounds may be numbers or numeric-valued strings");
// anything else fails ErrNotNumeric.
func numericValue(v any) (Numeric, error) {
	var str string
	switch t := v.(type) {
	case json.Number:
		str = string(t)
	case float64, float32, int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		str = fmt.Sprint(t)
	case string:
		str = t
	default:
		return Numeric{}, wrapf(ErrNotNumeric, "%T", v)
	}

	rat := new(big.Rat)
	if _, ok := rat.SetString(str); !ok {
		return Numeric{}, wrapf(ErrNotNumeric, "%q", str)
	}
	return Numeric{rat: rat}, nil
}

// Cmp compares n and other, returning -1, 0, or +1.
func (n Numeric) Cmp(other Numeric) int {
	return n.rat.Cmp(other.rat)
}

// String renders n canonically: an integral value as a plain integer,
// anything else as a decimal trimmed of trailing zeros. Fractional
// precision is ten digits, the engine's documented decimal comparison
// precision for report messages and unique-key hashing.
func (n Numeric) String() string {
	if n.rat == nil {
		return "null"
	}
	if n.rat.IsInt() {
		return n.rat.Num().String()
	}
	dec := strings.TrimRight(n.rat.FloatString(10), "0")
	dec = strings.TrimRight(dec, ".")
	if dec == "" || dec == "-" {
		return "0"
	}
	return dec
}
