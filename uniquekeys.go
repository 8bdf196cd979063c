package linkml

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/kaptinlin/jsonpointer"
)

// uniqueKeyIndex tracks the canonical hash of every unique_key tuple seen
// so far within one validated collection,
// reporting a collision at the path of the element that repeats an
// earlier one.
type uniqueKeyIndex struct {
	seen map[string]string // canonical hash -> path of first occurrence
}

func newUniqueKeyIndex() *uniqueKeyIndex {
	return &uniqueKeyIndex{seen: map[string]string{}}
}

// check builds uk's canonical key for instance and records/reports a
// collision. Numeric slot values are canonicalized through Numeric so 1
// and 1.0 hash identically; every other value falls
// back to a type-tagged string form so e.g. the string "1" and the
// number 1 do not collide.
//
// elementPath is the collection element's own path (e.g. "/1"); the
// reported and recorded path is elementPath with the key's slot names
// appended (e.g. "/1/email").
func (idx *uniqueKeyIndex) check(uk *UniqueKey, instance map[string]any, elementPath string) *Issue {
	var parts []string
	for _, slotName := range uk.SlotNames {
		parts = append(parts, canonicalizeKeyPart(instance[slotName]))
	}
	key := uk.Name + "\x00" + strings.Join(parts, "\x00")
	parsed := jsonpointer.ParseJsonPointer(elementPath)
	elementTokens := make([]string, len(parsed))
	for i, step := range parsed {
		elementTokens[i] = fmt.Sprint(step)
	}
	path := pointerPath(append(elementTokens, uk.SlotNames...)...)

	if firstPath, ok := idx.seen[key]; ok {
		issue := newIssue("unique_keys", "unique_key_violation", path,
			"Violates unique key {key}, first seen at {first}",
			map[string]any{"key": uk.Name, "first": firstPath})
		return &issue
	}
	idx.seen[key] = path
	return nil
}

// canonicalizeKeyPart tags v by its own JSON kind before canonicalizing,
// so a numeric-looking string never collides with an actual number: only
// values that are already numeric in the instance (not numeric strings)
// go through Numeric canonicalization.
func canonicalizeKeyPart(v any) string {
	switch t := v.(type) {
	case nil:
		return "z:"
	case string:
		return "s:" + t
	case bool:
		if t {
			return "b:true"
		}
		return "b:false"
	default:
		if n, err := numericValue(v); err == nil {
			return "n:" + n.String()
		}
		// Arrays/objects: key by canonical JSON (map keys sort on encode),
		// so structurally equal composites collide and unequal ones don't.
		if data, err := json.Marshal(v); err == nil {
			return "j:" + string(data)
		}
		return "u:"
	}
}
