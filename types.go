package linkml

import (
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// SchemaDefinition is the root container of a LinkML schema. Name
// keys within Classes, Slots, Types, and Enums are unique; insertion
// order is preserved via the accompanying *Order slices so encoders and
// the elaborator can produce deterministic output.
type SchemaDefinition struct {
	ID             string            `json:"id,omitempty" yaml:"id,omitempty"`
	Name           string            `json:"name,omitempty" yaml:"name,omitempty"`
	Description    string            `json:"description,omitempty" yaml:"description,omitempty"`
	Prefixes       map[string]string `json:"prefixes,omitempty" yaml:"prefixes,omitempty"`
	DefaultPrefix  string            `json:"default_prefix,omitempty" yaml:"default_prefix,omitempty"`
	DefaultRange   string            `json:"default_range,omitempty" yaml:"default_range,omitempty"`
	Imports        []string          `json:"imports,omitempty" yaml:"imports,omitempty"`

	Classes    map[string]*ClassDefinition `json:"classes,omitempty" yaml:"classes,omitempty"`
	ClassOrder []string                    `json:"-" yaml:"-"`

	Slots    map[string]*SlotDefinition `json:"slots,omitempty" yaml:"slots,omitempty"`
	SlotOrder []string                  `json:"-" yaml:"-"`

	Types    map[string]*TypeDefinition `json:"types,omitempty" yaml:"types,omitempty"`
	TypeOrder []string                  `json:"-" yaml:"-"`

	Enums    map[string]*EnumDefinition `json:"enums,omitempty" yaml:"enums,omitempty"`
	EnumOrder []string                  `json:"-" yaml:"-"`

	// SourceFile is populated by the loader when known, for Parse-error
	// location reporting; it is not part of the wire format.
	SourceFile string `json:"-" yaml:"-"`
}

// ClassDefinition describes a named record type.
type ClassDefinition struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	IsA         string `json:"is_a,omitempty" yaml:"is_a,omitempty"`
	Mixins      []string `json:"mixins,omitempty" yaml:"mixins,omitempty"`
	Abstract    *bool  `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	ClassURI    string `json:"class_uri,omitempty" yaml:"class_uri,omitempty"`
	TreeRoot    *bool  `json:"tree_root,omitempty" yaml:"tree_root,omitempty"`

	Slots     []string `json:"slots,omitempty" yaml:"slots,omitempty"`
	Attributes map[string]*SlotDefinition `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	AttributeOrder []string `json:"-" yaml:"-"`

	SlotUsage map[string]*SlotDefinition `json:"slot_usage,omitempty" yaml:"slot_usage,omitempty"`

	Rules      []*Rule      `json:"rules,omitempty" yaml:"rules,omitempty"`
	UniqueKeys []*UniqueKey `json:"unique_keys,omitempty" yaml:"unique_keys,omitempty"`
}

// SlotDefinition describes a named attribute. Pointer fields are
// nil when absent from the source schema, which is significant for the
// overlay merge performed during induction: "later
// non-None fields win."
type SlotDefinition struct {
	Name             string   `json:"name,omitempty" yaml:"name,omitempty"`
	Range            string   `json:"range,omitempty" yaml:"range,omitempty"`
	Description      string   `json:"description,omitempty" yaml:"description,omitempty"`
	Required         *bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Multivalued      *bool    `json:"multivalued,omitempty" yaml:"multivalued,omitempty"`
	Identifier       *bool    `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Inlined          *bool    `json:"inlined,omitempty" yaml:"inlined,omitempty"`
	InlinedAsList    *bool    `json:"inlined_as_list,omitempty" yaml:"inlined_as_list,omitempty"`
	Pattern          *string  `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinimumValue     any      `json:"minimum_value,omitempty" yaml:"minimum_value,omitempty"`
	MaximumValue     any      `json:"maximum_value,omitempty" yaml:"maximum_value,omitempty"`
	PermissibleValues []*PermissibleValue `json:"permissible_values,omitempty" yaml:"permissible_values,omitempty"`
	EqualsExpression *string  `json:"equals_expression,omitempty" yaml:"equals_expression,omitempty"`
	Default          any      `json:"default,omitempty" yaml:"ifabsent,omitempty"`
	Inverse          *string  `json:"inverse,omitempty" yaml:"inverse,omitempty"`
	Domain           *string  `json:"domain,omitempty" yaml:"domain,omitempty"`
	SlotURI          *string  `json:"slot_uri,omitempty" yaml:"slot_uri,omitempty"`
}

// TypeDefinition describes a named scalar type. Types form a
// chain terminating at a primitive: TypeOf names the parent type or a
// primitive; Base is consulted only when TypeOf is empty.
type TypeDefinition struct {
	Name    string  `json:"name,omitempty" yaml:"name,omitempty"`
	TypeOf  string  `json:"typeof,omitempty" yaml:"typeof,omitempty"`
	Base    string  `json:"base,omitempty" yaml:"base,omitempty"`
	Pattern *string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	URI     string  `json:"uri,omitempty" yaml:"uri,omitempty"`
}

// EnumDefinition describes a named, closed set of permissible values.
type EnumDefinition struct {
	Name              string              `json:"name,omitempty" yaml:"name,omitempty"`
	PermissibleValues []*PermissibleValue `json:"permissible_values,omitempty" yaml:"permissible_values,omitempty"`
}

// PermissibleValue is one allowed value of an enum. A bare YAML/JSON
// string decodes to a PermissibleValue with only Text set.
type PermissibleValue struct {
	Text        string   `json:"text" yaml:"text"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Meaning     string   `json:"meaning,omitempty" yaml:"meaning,omitempty"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// permissibleValueRecord avoids recursing into the custom unmarshalers.
type permissibleValueRecord PermissibleValue

func (pv *PermissibleValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &pv.Text)
	}
	var rec permissibleValueRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*pv = PermissibleValue(rec)
	return nil
}

func (pv *PermissibleValue) UnmarshalYAML(data []byte) error {
	var text string
	if err := yaml.Unmarshal(data, &text); err == nil {
		pv.Text = text
		return nil
	}
	var rec permissibleValueRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return err
	}
	*pv = PermissibleValue(rec)
	return nil
}

// Rule is a conditional-requirement constraint evaluated against an
// instance at the class level.
type Rule struct {
	Title           string           `json:"title,omitempty" yaml:"title,omitempty"`
	Description     string           `json:"description,omitempty" yaml:"description,omitempty"`
	Preconditions   *RuleConditions  `json:"preconditions,omitempty" yaml:"preconditions,omitempty"`
	Postconditions  *RuleConditions  `json:"postconditions,omitempty" yaml:"postconditions,omitempty"`
}

// RuleConditions is one side (pre- or post-) of a Rule: any number of
// structured SlotConditions plus an optional free-form expression
// predicate. All must hold for the side to be satisfied.
type RuleConditions struct {
	SlotConditions map[string]*SlotCondition `json:"slot_conditions,omitempty" yaml:"slot_conditions,omitempty"`
	Expression     string                    `json:"expression,omitempty" yaml:"expression,omitempty"`
}

// SlotCondition is a structured predicate over a single slot's value,
// used by Rule pre/postconditions.
type SlotCondition struct {
	Required     *bool  `json:"required,omitempty" yaml:"required,omitempty"`
	EqualsString *string `json:"equals_string,omitempty" yaml:"equals_string,omitempty"`
	ValueIn      []any   `json:"value_in,omitempty" yaml:"value_in,omitempty"`
}

// UniqueKey names a tuple of slots whose combined value must be unique
// across a validated collection.
type UniqueKey struct {
	Name       string   `json:"unique_key_name,omitempty" yaml:"unique_key_name,omitempty"`
	SlotNames  []string `json:"unique_key_slots" yaml:"unique_key_slots"`
}

// boolValue dereferences a *bool, treating nil as false.
func boolValue(b *bool) bool {
	return b != nil && *b
}
