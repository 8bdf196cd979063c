package linkml

import "github.com/kaptinlin/jsonpointer"

// pointerPath renders tokens as a JSON-pointer path via
// jsonpointer.FormatJsonPointer: a token slice avoids ad hoc string concatenation
// and gets RFC 6901 `~0`/`~1` escaping of slot names for free. An empty
// token list is the root path.
func pointerPath(tokens ...string) string {
	path := make(jsonpointer.Path, len(tokens))
	for i, t := range tokens {
		path[i] = t
	}
	return jsonpointer.FormatJsonPointer(path)
}
