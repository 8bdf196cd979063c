package linkml

import (
	"strings"

	"github.com/tidwall/sjson"
)

// applyDefault materializes slot's default value into workingJSON, the
// JSON encoding of the object currently being validated.
// Defaults never override an explicit value, including explicit null, so
// callers must only invoke this when the slot is absent. Uses
// tidwall/sjson to write into the JSON byte buffer; the caller
// re-exposes the materialized value through the working map so
// downstream validators see it.
func applyDefault(workingJSON []byte, slot *SlotDefinition) ([]byte, error) {
	return materializeValue(workingJSON, slot.Name, slot.Default)
}

// materializeValue writes value under name in workingJSON; the computed
// path shares it so expression-materialized values are visible to later
// slots' expressions too.
func materializeValue(workingJSON []byte, name string, value any) ([]byte, error) {
	updated, err := sjson.SetBytes(workingJSON, sjsonKey(name), value)
	if err != nil {
		return nil, wrapf(ErrInstanceParse, "materializing %s: %v", name, err)
	}
	return updated, nil
}

// sjsonKey escapes a slot name for use as a single sjson path component.
func sjsonKey(key string) string {
	key = strings.ReplaceAll(key, `\`, `\\`)
	key = strings.ReplaceAll(key, ".", `\.`)
	return key
}
