package linkml

import "fmt"

// classRefShape classifies how a class-valued slot's instance data is
// shaped: an inlined object, an inlined list of objects, or a bare
// identifier reference.
type classRefShape int

const (
	classRefReference classRefShape = iota
	classRefInlineObject
	classRefInlineList
)

// classifyClassRef decides the shape a single element of value should be
// validated as, from the slot's inlined/inlined_as_list declaration and
// the value's own JSON shape (a string is always a reference regardless
// of slot.Inlined, since there is nothing to inline).
func classifyClassRef(slot *SlotDefinition, value any) classRefShape {
	if _, isString := value.(string); isString {
		return classRefReference
	}
	if boolValue(slot.InlinedAsList) {
		return classRefInlineList
	}
	if boolValue(slot.Inlined) {
		return classRefInlineObject
	}
	if _, isObject := value.(map[string]any); isObject {
		return classRefInlineObject
	}
	return classRefReference
}

// resolveDispatchedClass implements polymorphic instance dispatch: when instance carries typeDesignatorKey (commonly "@type"),
// the named class must be declaredClass or one of its descendants, and
// must not be abstract. Absent a type designator, declaredClass is used
// as-is.
func resolveDispatchedClass(sv *SchemaView, declaredClass string, instance map[string]any, typeDesignatorKey string) (*ResolvedClass, error) {
	declared, err := sv.ResolvedClassByName(declaredClass)
	if err != nil {
		return nil, err
	}
	if typeDesignatorKey == "" {
		return declared, nil
	}
	raw, ok := instance[typeDesignatorKey]
	if !ok {
		return declared, nil
	}
	named, ok := raw.(string)
	if !ok {
		return nil, wrapf(ErrTypeDesignatorMismatch, "%s value must be a string", typeDesignatorKey)
	}
	if named == declaredClass {
		return declared, nil
	}
	actual, err := sv.ResolvedClassByName(named)
	if err != nil {
		return nil, wrapf(ErrTypeDesignatorMismatch, "%s names unknown class %s", typeDesignatorKey, named)
	}
	if !actual.isSubclassOf(declaredClass) {
		return nil, wrapf(ErrTypeDesignatorMismatch, "%s is not %s or a subclass", named, declaredClass)
	}
	if actual.Abstract {
		return nil, wrapf(ErrAbstractInstantiation, "%s", named)
	}
	return actual, nil
}

// classRefIdentifierKey returns the identifier to key a reference value
// (or an inlined object's own identifier slot value) by, for
// RecursionTracker / unique-key bookkeeping.
func classRefIdentifierKey(rc *ResolvedClass, value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		if rc.IdentifierSlot == "" {
			return ""
		}
		if id, ok := v[rc.IdentifierSlot]; ok {
			return fmt.Sprintf("%v", id)
		}
	}
	return ""
}
