package linkml

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaServiceLoadSchemaStrValidatesInstance(t *testing.T) {
	svc := NewSchemaService()
	loaded, err := svc.LoadSchemaStr(context.Background(), `
name: person-schema
classes:
  Person:
    slots: [name]
slots:
  name:
    range: string
    required: true
`, "person.yaml")
	require.NoError(t, err)

	report, err := loaded.Validate(context.Background(), []byte(`{"name": "Ada"}`), "Person", nil)
	require.NoError(t, err)
	assert.True(t, report.Valid)
}

func TestSchemaServiceLoadSchemaStrRejectsInvalidInstance(t *testing.T) {
	svc := NewSchemaService()
	loaded, err := svc.LoadSchemaStr(context.Background(), `
name: person-schema
classes:
  Person:
    slots: [name]
slots:
  name:
    range: string
    required: true
`, "person.yaml")
	require.NoError(t, err)

	report, err := loaded.Validate(context.Background(), []byte(`{}`), "Person", nil)
	require.NoError(t, err)
	assert.False(t, report.Valid)
}

func TestSchemaServiceLoadSchemaResolvesImportsViaFilesystem(t *testing.T) {
	fs := MapFilesystem{
		"base.yaml": `
name: base-schema
slots:
  name:
    range: string
    required: true
`,
		"main.yaml": `
name: main-schema
imports: [base]
classes:
  Person:
    slots: [name]
`,
	}
	svc := NewSchemaService(WithFilesystem(fs))
	loaded, err := svc.LoadSchema(context.Background(), "main.yaml")
	require.NoError(t, err)

	rc, err := loaded.View.ResolvedClassByName("Person")
	require.NoError(t, err)
	assert.Contains(t, rc.InducedSlots, "name")
}

func TestSchemaServiceLoadSchemaMissingFileFails(t *testing.T) {
	svc := NewSchemaService(WithFilesystem(MapFilesystem{}))
	_, err := svc.LoadSchema(context.Background(), "ghost.yaml")
	assert.Error(t, err)
}

func TestSchemaServiceValidateTypedMarshalsGoValue(t *testing.T) {
	svc := NewSchemaService()
	loaded, err := svc.LoadSchemaStr(context.Background(), `
name: person-schema
classes:
  Person:
    slots: [name, age]
slots:
  name:
    range: string
    required: true
  age:
    range: integer
`, "person.yaml")
	require.NoError(t, err)

	instance := map[string]any{"name": "Ada", "age": 30}
	report, err := loaded.ValidateTyped(context.Background(), instance, "Person", nil)
	require.NoError(t, err)
	assert.True(t, report.Valid)
}

func TestValidateIntoDeserializesAfterSuccessfulValidation(t *testing.T) {
	svc := NewSchemaService()
	loaded, err := svc.LoadSchemaStr(context.Background(), `
name: person-schema
classes:
  Person:
    slots: [name, age]
slots:
  name:
    range: string
    required: true
  age:
    range: integer
`, "person.yaml")
	require.NoError(t, err)

	type person struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	got, report, err := ValidateInto[person](context.Background(), loaded, []byte(`{"name": "Ada", "age": 36}`), "Person", nil)
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Equal(t, person{Name: "Ada", Age: 36}, got)
}

func TestValidateIntoLeavesTargetZeroOnInvalidInstance(t *testing.T) {
	svc := NewSchemaService()
	loaded, err := svc.LoadSchemaStr(context.Background(), `
name: person-schema
classes:
  Person:
    slots: [name]
slots:
  name:
    range: string
    required: true
`, "person.yaml")
	require.NoError(t, err)

	type person struct {
		Name string `json:"name"`
	}
	got, report, err := ValidateInto[person](context.Background(), loaded, []byte(`{}`), "Person", nil)
	require.NoError(t, err)
	assert.False(t, report.Valid)
	assert.Zero(t, got)
}

func TestSchemaServiceWithServiceResourceLimitsAppliesToEngine(t *testing.T) {
	rl, err := NewResourceLimits(WithRecursionLimit(3))
	require.NoError(t, err)
	svc := NewSchemaService(WithServiceResourceLimits(rl))
	loaded, err := svc.LoadSchemaStr(context.Background(), `
name: s
classes:
  Thing:
    slots: [name]
slots:
  name:
    range: string
`, "s.yaml")
	require.NoError(t, err)
	assert.NotNil(t, loaded.Engine)
}

func TestSchemaServiceLoadSchemaStrPropagatesLoaderErrors(t *testing.T) {
	svc := NewSchemaService()
	_, err := svc.LoadSchemaStr(context.Background(), `not: [valid: yaml`, "s.yaml")
	assert.Error(t, err)
}
