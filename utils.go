package linkml

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
)

// replace substitutes {key} placeholders in template with values from
// params.
func replace(template string, params map[string]any) string {
	for key, value := range params {
		placeholder := "{" + key + "}"
		template = strings.ReplaceAll(template, placeholder, fmt.Sprint(value))
	}
	return template
}

// jsonKind classifies a decoded instance value into LinkML's primitive
// kinds: null, boolean, integer, number, string, array, object.
// Numeric classification promotes through big.Float, so "1.0" and 1
// both report "integer".
func jsonKind(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		if _, ok := new(big.Int).SetString(string(val), 10); ok {
			return "integer"
		}
		if bf, ok := new(big.Float).SetString(string(val)); ok {
			if _, acc := bf.Int(nil); acc == big.Exact {
				return "integer"
			}
			return "number"
		}
		return "unknown"
	case float32, float64:
		bf := new(big.Float).SetFloat64(reflect.ValueOf(val).Float())
		if _, acc := bf.Int(nil); acc == big.Exact {
			return "integer"
		}
		return "number"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

