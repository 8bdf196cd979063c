package linkml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileSlotIncludesOnlyTriggeredActionsInOrder(t *testing.T) {
	slot := &SlotDefinition{
		Name:     "email",
		Required: boolPtr(true),
		Pattern:  strPtr(`^.+@.+$`),
	}
	rr := &ResolvedRange{Kind: RangePrimitive, JSONKind: "string", BasePrimitive: "string"}
	sv := compileSlot("email", slot, rr)
	assert.Equal(t, []ActionKind{
		ActionRequired, ActionType, ActionMultivalued, ActionPattern,
	}, sv.Actions)
}

func TestCompileSlotMinimalSlotOnlyGetsTypeAndMultivalued(t *testing.T) {
	slot := &SlotDefinition{Name: "note"}
	rr := &ResolvedRange{Kind: RangePrimitive, JSONKind: "string", BasePrimitive: "string"}
	sv := compileSlot("note", slot, rr)
	assert.Equal(t, []ActionKind{ActionType, ActionMultivalued}, sv.Actions)
}

func TestCompileSlotEnumRangeAddsEnumAction(t *testing.T) {
	slot := &SlotDefinition{Name: "status"}
	rr := &ResolvedRange{Kind: RangeEnum, EnumName: "Status"}
	sv := compileSlot("status", slot, rr)
	assert.Contains(t, sv.Actions, ActionEnum)
}

func TestCompileSlotClassRangeAddsClassRefAction(t *testing.T) {
	slot := &SlotDefinition{Name: "owner"}
	rr := &ResolvedRange{Kind: RangeClass, ClassName: "Person"}
	sv := compileSlot("owner", slot, rr)
	assert.Contains(t, sv.Actions, ActionClassRef)
}

func TestCompileSlotRangeBoundsAddRangeAction(t *testing.T) {
	slot := &SlotDefinition{Name: "age", MinimumValue: 0}
	rr := &ResolvedRange{Kind: RangePrimitive, JSONKind: "integer", BasePrimitive: "integer"}
	sv := compileSlot("age", slot, rr)
	assert.Contains(t, sv.Actions, ActionRange)
}

func TestCompileSlotComputedAddsComputedAction(t *testing.T) {
	expr := "a + b"
	slot := &SlotDefinition{Name: "total", EqualsExpression: &expr}
	rr := &ResolvedRange{Kind: RangePrimitive, JSONKind: "integer", BasePrimitive: "integer"}
	sv := compileSlot("total", slot, rr)
	assert.Equal(t, []ActionKind{ActionType, ActionMultivalued, ActionComputed}, sv.Actions)
}

func TestCompileSlotTypeLevelPatternTriggersPatternAction(t *testing.T) {
	slot := &SlotDefinition{Name: "date"}
	typePattern := `^\d{4}-\d{2}-\d{2}$`
	rr := &ResolvedRange{Kind: RangeType, JSONKind: "string", BasePrimitive: "date", Pattern: &typePattern}
	sv := compileSlot("date", slot, rr)
	assert.Contains(t, sv.Actions, ActionPattern)
}
