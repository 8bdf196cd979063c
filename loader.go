package linkml

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// Format names a schema's textual encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// formatFromPath infers a Format from a file extension.
func formatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	default:
		return "", false
	}
}

// LoadSchemaBytes parses raw schema bytes into a SchemaDefinition. format
// is explicit when non-empty; otherwise it is inferred from path's
// extension. An unrecognized format fails with ErrUnsupportedFormat. The
// loader performs no cross-reference validation: it produces a
// syntactic tree only.
func LoadSchemaBytes(data []byte, path string, format Format) (*SchemaDefinition, error) {
	if format == "" {
		inferred, ok := formatFromPath(path)
		if !ok {
			return nil, wrapf(ErrUnsupportedFormat, "%s", path)
		}
		format = inferred
	}

	var schema SchemaDefinition
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &schema)
	case FormatJSON:
		err = json.Unmarshal(data, &schema)
	default:
		return nil, wrapf(ErrUnsupportedFormat, "%s", format)
	}
	if err != nil {
		return nil, wrapf(ErrSchemaParse, "%s: %v", path, err)
	}

	populateOrder(&schema, documentOrder(data, format))
	schema.SourceFile = path
	return &schema, nil
}

// populateOrder records each mapping's declaration order from the source
// document, filling Name fields along the way. Names the ordered re-read
// did not see fall back to a stable lexical order.
func populateOrder(s *SchemaDefinition, doc *orderedMap) {
	s.ClassOrder = orderedNames(doc.child("classes"), s.Classes)
	s.SlotOrder = orderedNames(doc.child("slots"), s.Slots)
	s.TypeOrder = orderedNames(doc.child("types"), s.Types)
	s.EnumOrder = orderedNames(doc.child("enums"), s.Enums)
	classDocs := doc.child("classes")
	for name, c := range s.Classes {
		c.Name = name
		c.AttributeOrder = orderedNames(classDocs.child(name).child("attributes"), c.Attributes)
		for attrName, attr := range c.Attributes {
			attr.Name = attrName
		}
	}
	for name, sl := range s.Slots {
		sl.Name = name
	}
	for name, t := range s.Types {
		t.Name = name
	}
	for name, e := range s.Enums {
		e.Name = name
	}
}

// orderedMap is the key order of one object node of the source document,
// with object-valued children tracked recursively. Go map decoding
// discards order, so the loader re-reads the document through an
// order-preserving path solely to recover it.
type orderedMap struct {
	keys     []string
	children map[string]*orderedMap
}

func (om *orderedMap) child(key string) *orderedMap {
	if om == nil {
		return nil
	}
	return om.children[key]
}

// documentOrder re-reads data as an ordered tree: goccy/go-yaml's
// UseOrderedMap for YAML, go-json-experiment's jsontext token stream for
// JSON. Returns nil when the re-read fails; callers then fall back to
// lexical order, which stays deterministic.
func documentOrder(data []byte, format Format) *orderedMap {
	switch format {
	case FormatYAML:
		var doc any
		if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
			return nil
		}
		return yamlOrder(doc)
	case FormatJSON:
		dec := jsontext.NewDecoder(bytes.NewReader(data))
		tok, err := dec.ReadToken()
		if err != nil || tok.Kind() != '{' {
			return nil
		}
		om, err := jsonObjectOrder(dec)
		if err != nil {
			return nil
		}
		return om
	}
	return nil
}

func yamlOrder(v any) *orderedMap {
	ms, ok := v.(yaml.MapSlice)
	if !ok {
		return nil
	}
	om := &orderedMap{children: map[string]*orderedMap{}}
	for _, item := range ms {
		key := fmt.Sprint(item.Key)
		om.keys = append(om.keys, key)
		if child := yamlOrder(item.Value); child != nil {
			om.children[key] = child
		}
	}
	return om
}

func jsonObjectOrder(dec *jsontext.Decoder) (*orderedMap, error) {
	om := &orderedMap{children: map[string]*orderedMap{}}
	for {
		tok, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind() == '}' {
			return om, nil
		}
		key := tok.String()
		om.keys = append(om.keys, key)
		child, err := jsonValueOrder(dec)
		if err != nil {
			return nil, err
		}
		if child != nil {
			om.children[key] = child
		}
	}
}

func jsonValueOrder(dec *jsontext.Decoder) (*orderedMap, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind() {
	case '{':
		return jsonObjectOrder(dec)
	case '[':
		for dec.PeekKind() != ']' {
			if _, err := jsonValueOrder(dec); err != nil {
				return nil, err
			}
		}
		_, err := dec.ReadToken()
		return nil, err
	default:
		return nil, nil
	}
}

// orderedNames returns m's keys in document order, stragglers sorted.
func orderedNames[V any](om *orderedMap, m map[string]V) []string {
	out := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	if om != nil {
		for _, key := range om.keys {
			if _, ok := m[key]; ok && !seen[key] {
				out = append(out, key)
				seen[key] = true
			}
		}
	}
	for _, key := range sortedKeys(m) {
		if !seen[key] {
			out = append(out, key)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// insertion sort is fine at schema sizes; keeps this dependency-free
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
