package linkml

// RangeKind classifies a resolved slot range.
type RangeKind int

const (
	RangeUnknown RangeKind = iota
	RangePrimitive
	RangeType
	RangeClass
	RangeEnum
)

// primitiveKinds are the built-in LinkML scalar types, each
// mapped to the JSON kind jsonKind reports for a conforming instance value.
var primitiveKinds = map[string]string{
	"string":   "string",
	"integer":  "integer",
	"float":    "number",
	"double":   "number",
	"decimal":  "number",
	"boolean":  "boolean",
	"date":     "string",
	"datetime": "string",
	"uri":      "string",
	"uriorcurie": "string",
}

const maxTypeChainDepth = 32

// ResolvedRange is the outcome of resolving a slot's range name.
type ResolvedRange struct {
	Kind          RangeKind
	Name          string  // the original range name
	JSONKind      string  // expected jsonKind for Primitive/Type kinds
	BasePrimitive string  // the terminating primitive name (Formats lookup key)
	Pattern       *string // effective pattern, from the type chain, if any
	ClassName     string  // set when Kind == RangeClass
	EnumName      string  // set when Kind == RangeEnum

	// PermissibleValues carries the enum's value list when Kind ==
	// RangeEnum, so the engine never walks back to the schema at
	// validation time.
	PermissibleValues []*PermissibleValue
}

// resolveRange classifies name against the schema's primitives, types,
// classes, and enums, walking a Type chain to its terminating primitive.
// An unresolvable name fails ErrUnknownRange; a chain deeper than
// maxTypeChainDepth fails ErrTypeChainTooDeep.
func resolveRange(schema *SchemaDefinition, name string) (*ResolvedRange, error) {
	if name == "" {
		name = schema.DefaultRange
	}
	if name == "" {
		name = "string"
	}

	if jsonKind, ok := primitiveKinds[name]; ok {
		return &ResolvedRange{Kind: RangePrimitive, Name: name, JSONKind: jsonKind, BasePrimitive: name}, nil
	}
	if _, ok := schema.Classes[name]; ok {
		return &ResolvedRange{Kind: RangeClass, Name: name, ClassName: name}, nil
	}
	if enum, ok := schema.Enums[name]; ok {
		return &ResolvedRange{Kind: RangeEnum, Name: name, EnumName: name, PermissibleValues: enum.PermissibleValues}, nil
	}
	if _, ok := schema.Types[name]; ok {
		return resolveTypeChain(schema, name, 0)
	}
	return nil, wrapf(ErrUnknownRange, "%s", name)
}

func resolveTypeChain(schema *SchemaDefinition, name string, depth int) (*ResolvedRange, error) {
	if depth > maxTypeChainDepth {
		return nil, wrapf(ErrTypeChainTooDeep, "%s", name)
	}
	t, ok := schema.Types[name]
	if !ok {
		return nil, wrapf(ErrUnknownRange, "%s", name)
	}

	var pattern *string
	if t.Pattern != nil {
		pattern = t.Pattern
	}

	base := t.TypeOf
	if base == "" {
		base = t.Base
	}

	if jsonKind, ok := primitiveKinds[base]; ok {
		return &ResolvedRange{Kind: RangeType, Name: name, JSONKind: jsonKind, BasePrimitive: base, Pattern: pattern}, nil
	}
	next, err := resolveTypeChain(schema, base, depth+1)
	if err != nil {
		return nil, err
	}
	if pattern != nil {
		next.Pattern = pattern // nearer-to-leaf pattern wins
	}
	next.Name = name
	next.Kind = RangeType
	return next, nil
}
