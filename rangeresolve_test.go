package linkml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRangePrimitive(t *testing.T) {
	schema := &SchemaDefinition{}
	rr, err := resolveRange(schema, "integer")
	require.NoError(t, err)
	assert.Equal(t, RangePrimitive, rr.Kind)
	assert.Equal(t, "integer", rr.BasePrimitive)
	assert.Equal(t, "integer", rr.JSONKind)
}

func TestResolveRangeDefaultsToStringWhenEmpty(t *testing.T) {
	schema := &SchemaDefinition{}
	rr, err := resolveRange(schema, "")
	require.NoError(t, err)
	assert.Equal(t, "string", rr.Name)
}

func TestResolveRangeUsesSchemaDefaultRange(t *testing.T) {
	schema := &SchemaDefinition{DefaultRange: "integer"}
	rr, err := resolveRange(schema, "")
	require.NoError(t, err)
	assert.Equal(t, "integer", rr.Name)
}

func TestResolveRangeClass(t *testing.T) {
	schema := &SchemaDefinition{Classes: map[string]*ClassDefinition{"Person": {}}}
	rr, err := resolveRange(schema, "Person")
	require.NoError(t, err)
	assert.Equal(t, RangeClass, rr.Kind)
	assert.Equal(t, "Person", rr.ClassName)
}

func TestResolveRangeEnum(t *testing.T) {
	schema := &SchemaDefinition{Enums: map[string]*EnumDefinition{"Status": {}}}
	rr, err := resolveRange(schema, "Status")
	require.NoError(t, err)
	assert.Equal(t, RangeEnum, rr.Kind)
	assert.Equal(t, "Status", rr.EnumName)
}

func TestResolveRangeTypeChainTerminatesAtPrimitive(t *testing.T) {
	schema := &SchemaDefinition{
		Types: map[string]*TypeDefinition{
			"PositiveInt": {TypeOf: "integer"},
		},
	}
	rr, err := resolveRange(schema, "PositiveInt")
	require.NoError(t, err)
	assert.Equal(t, RangeType, rr.Kind)
	assert.Equal(t, "integer", rr.BasePrimitive)
	assert.Equal(t, "PositiveInt", rr.Name)
}

func TestResolveRangeTypeChainMultipleHops(t *testing.T) {
	schema := &SchemaDefinition{
		Types: map[string]*TypeDefinition{
			"ISODate":    {TypeOf: "date", Pattern: strPtr(`^\d{4}-\d{2}-\d{2}$`)},
			"StrictDate": {TypeOf: "ISODate"},
		},
	}
	rr, err := resolveRange(schema, "StrictDate")
	require.NoError(t, err)
	assert.Equal(t, "date", rr.BasePrimitive)
	require.NotNil(t, rr.Pattern)
	assert.Equal(t, `^\d{4}-\d{2}-\d{2}$`, *rr.Pattern)
	assert.Equal(t, "StrictDate", rr.Name)
}

func TestResolveRangeNearerPatternWins(t *testing.T) {
	schema := &SchemaDefinition{
		Types: map[string]*TypeDefinition{
			"Base":  {TypeOf: "string", Pattern: strPtr("base-pattern")},
			"Outer": {TypeOf: "Base", Pattern: strPtr("outer-pattern")},
		},
	}
	rr, err := resolveRange(schema, "Outer")
	require.NoError(t, err)
	require.NotNil(t, rr.Pattern)
	assert.Equal(t, "outer-pattern", *rr.Pattern)
}

func TestResolveRangeUnknownFails(t *testing.T) {
	schema := &SchemaDefinition{}
	_, err := resolveRange(schema, "Ghost")
	assert.ErrorIs(t, err, ErrUnknownRange)
}

func TestResolveRangeTypeChainTooDeepFails(t *testing.T) {
	types := map[string]*TypeDefinition{}
	prev := "string"
	for i := 0; i < maxTypeChainDepth+5; i++ {
		name := "T" + string(rune('a'+i%26)) + string(rune('0'+i/26))
		types[name] = &TypeDefinition{TypeOf: prev}
		prev = name
	}
	schema := &SchemaDefinition{Types: types}
	_, err := resolveRange(schema, prev)
	assert.ErrorIs(t, err, ErrTypeChainTooDeep)
}

func strPtr(s string) *string { return &s }
