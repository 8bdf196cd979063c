package linkml

// ActionKind names one of the fixed per-slot validator actions, in
// their mandated evaluation order.
type ActionKind int

const (
	ActionRequired ActionKind = iota
	ActionType
	ActionMultivalued
	ActionEnum
	ActionRange
	ActionPattern
	ActionClassRef
	ActionDefault
	ActionComputed
)

// SlotValidator is the compiled, ordered action list for one induced slot.
type SlotValidator struct {
	SlotName string
	Slot     *SlotDefinition
	Range    *ResolvedRange
	Actions  []ActionKind
}

// ValidatorProgram is the compiled form of a ResolvedClass: an
// ordered sequence of per-slot actions plus class-level actions. Immutable
// once built; safe to share and cache by (schema fingerprint, class name).
type ValidatorProgram struct {
	ClassName   string
	Fingerprint string
	SlotOrder   []string
	Slots       map[string]*SlotValidator
	Rules       []*Rule
	UniqueKeys  []*UniqueKey
	Abstract    bool
	IdentifierSlot string
}

// compileSlot selects the subset of actions applicable to slot/rr, in the
// fixed evaluation order. An action is included only when its trigger condition
// holds, so e.g. a slot with no pattern and no enum skips both steps.
func compileSlot(name string, slot *SlotDefinition, rr *ResolvedRange) *SlotValidator {
	sv := &SlotValidator{SlotName: name, Slot: slot, Range: rr}

	if boolValue(slot.Required) {
		sv.Actions = append(sv.Actions, ActionRequired)
	}
	sv.Actions = append(sv.Actions, ActionType)
	sv.Actions = append(sv.Actions, ActionMultivalued)
	if rr.Kind == RangeEnum || len(slot.PermissibleValues) > 0 {
		sv.Actions = append(sv.Actions, ActionEnum)
	}
	if slot.MinimumValue != nil || slot.MaximumValue != nil {
		sv.Actions = append(sv.Actions, ActionRange)
	}
	if slot.Pattern != nil || rr.Pattern != nil {
		sv.Actions = append(sv.Actions, ActionPattern)
	}
	if rr.Kind == RangeClass {
		sv.Actions = append(sv.Actions, ActionClassRef)
	}
	if slot.Default != nil {
		sv.Actions = append(sv.Actions, ActionDefault)
	}
	if slot.EqualsExpression != nil {
		sv.Actions = append(sv.Actions, ActionComputed)
	}
	return sv
}
