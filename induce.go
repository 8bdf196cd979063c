package linkml

// induceSlots computes C's resolved slot set: walk the MRO
// tail-first (most distant ancestor first, C itself last) collecting slot
// definitions; a slot named later overlays an earlier one field-by-field,
// later non-nil fields winning; C's own slot_usage is applied last as the
// strongest overlay. Inline attributes are treated as slots of the same
// name. Slot names are run through sv.interned before they ever become
// a map key or a comparison operand, the same fast-name-comparison
// discipline linearize applies to class names.
func induceSlots(schema *SchemaDefinition, sv *SchemaView, mro []string) (map[string]*SlotDefinition, []string, error) {
	induced := map[string]*SlotDefinition{}
	var order []string

	// tail-first: reverse mro (mro[0] is the class itself, nearest-first)
	for i := len(mro) - 1; i >= 0; i-- {
		className := mro[i]
		class, ok := schema.Classes[className]
		if !ok {
			return nil, nil, wrapf(ErrUnknownClass, "%s", className)
		}

		attrNames := class.AttributeOrder
		if len(attrNames) == 0 && len(class.Attributes) > 0 {
			// hand-built schemas that never went through the loader
			attrNames = sortedKeys(class.Attributes)
		}
		names := append(append([]string{}, class.Slots...), attrNames...)
		for _, rawName := range names {
			name := sv.interned(rawName)
			var def *SlotDefinition
			if attr, ok := class.Attributes[name]; ok {
				def = attr
			} else if global, ok := schema.Slots[name]; ok {
				def = global
			} else {
				def = &SlotDefinition{Name: name}
			}
			if existing, already := induced[name]; already {
				induced[name] = overlaySlot(existing, def)
			} else {
				induced[name] = overlaySlot(&SlotDefinition{Name: name}, def)
				order = append(order, name)
			}
		}
	}

	// The class itself (mro[0])'s slot_usage is the strongest overlay.
	self := schema.Classes[mro[0]]
	for rawName, usage := range self.SlotUsage {
		name := sv.interned(rawName)
		base, ok := induced[name]
		if !ok {
			base = &SlotDefinition{Name: name}
			order = append(order, name)
		}
		induced[name] = overlaySlot(base, usage)
	}

	return induced, order, nil
}

// overlaySlot returns a new SlotDefinition with every non-nil field of
// overlay replacing the corresponding field of base; nil/zero fields on
// overlay leave base's value untouched.
func overlaySlot(base, overlay *SlotDefinition) *SlotDefinition {
	if overlay == nil {
		return base
	}
	merged := *base
	if overlay.Range != "" {
		merged.Range = overlay.Range
	}
	if overlay.Description != "" {
		merged.Description = overlay.Description
	}
	if overlay.Required != nil {
		merged.Required = overlay.Required
	}
	if overlay.Multivalued != nil {
		merged.Multivalued = overlay.Multivalued
	}
	if overlay.Identifier != nil {
		merged.Identifier = overlay.Identifier
	}
	if overlay.Inlined != nil {
		merged.Inlined = overlay.Inlined
	}
	if overlay.InlinedAsList != nil {
		merged.InlinedAsList = overlay.InlinedAsList
	}
	if overlay.Pattern != nil {
		merged.Pattern = overlay.Pattern
	}
	if overlay.MinimumValue != nil {
		merged.MinimumValue = overlay.MinimumValue
	}
	if overlay.MaximumValue != nil {
		merged.MaximumValue = overlay.MaximumValue
	}
	if overlay.PermissibleValues != nil {
		merged.PermissibleValues = overlay.PermissibleValues
	}
	if overlay.EqualsExpression != nil {
		merged.EqualsExpression = overlay.EqualsExpression
	}
	if overlay.Default != nil {
		merged.Default = overlay.Default
	}
	if overlay.Inverse != nil {
		merged.Inverse = overlay.Inverse
	}
	if overlay.Domain != nil {
		merged.Domain = overlay.Domain
	}
	if overlay.SlotURI != nil {
		merged.SlotURI = overlay.SlotURI
	}
	if overlay.Name != "" {
		merged.Name = overlay.Name
	}
	return &merged
}
