package linkml

import (
	"errors"
	"fmt"
)

// wrapf attaches context to a sentinel error while keeping it matchable
// with errors.Is.
func wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// === Parse errors ===
var (
	// ErrUnsupportedFormat is returned when a schema's encoding cannot be
	// determined from an explicit format argument or file extension.
	ErrUnsupportedFormat = errors.New("unsupported schema format")

	// ErrSchemaParse is returned when the raw schema bytes are not valid
	// YAML/JSON, or do not decode into the expected shape.
	ErrSchemaParse = errors.New("schema parse failed")

	// ErrInstanceParse is returned when instance data is not valid JSON.
	ErrInstanceParse = errors.New("instance parse failed")
)

// === Import errors ===
var (
	// ErrImportNotFound is returned when an import reference cannot be
	// located on the configured search path.
	ErrImportNotFound = errors.New("import not found")

	// ErrCircularImport is returned when the import graph contains a cycle.
	ErrCircularImport = errors.New("circular import")
)

// === Schema (elaboration) errors ===
var (
	// ErrInheritanceCycle is returned when a class's is_a/mixins graph
	// contains a cycle.
	ErrInheritanceCycle = errors.New("inheritance cycle")

	// ErrInconsistentMRO is returned when C3 linearization cannot produce
	// a consistent merge order for a class's parents and mixins.
	ErrInconsistentMRO = errors.New("inconsistent method resolution order")

	// ErrUnknownRange is returned when a slot's range does not resolve to
	// a known primitive, type, class, or enum.
	ErrUnknownRange = errors.New("unknown range")

	// ErrDuplicateIdentifier is returned when a class has more than one
	// slot with identifier: true.
	ErrDuplicateIdentifier = errors.New("duplicate identifier slot")

	// ErrUnresolvedPrefix is returned when a CURIE's prefix has no binding
	// in the unioned prefix map.
	ErrUnresolvedPrefix = errors.New("unresolved prefix")

	// ErrTypeChainTooDeep is returned when a type's base-type chain does
	// not terminate at a primitive within the configured depth.
	ErrTypeChainTooDeep = errors.New("type chain too deep")

	// ErrUnknownClass is returned when is_a, mixins, or a class range
	// name a class absent from the schema.
	ErrUnknownClass = errors.New("unknown class")
)

// === Expression errors ===
var (
	// ErrExpressionParse is returned when an expression fails to parse.
	ErrExpressionParse = errors.New("expression parse failed")

	// ErrExpressionEvaluation is returned when a parsed expression fails
	// to evaluate (type mismatch, division by zero, out-of-range index).
	ErrExpressionEvaluation = errors.New("expression evaluation failed")

	// ErrExpressionResourceLimit is returned when an expression exceeds
	// its instruction-count or stack-depth budget.
	ErrExpressionResourceLimit = errors.New("expression resource limit exceeded")
)

// === Resource errors ===
var (
	// ErrRecursionLimit is returned when inlined-reference validation
	// exceeds the configured recursion depth.
	ErrRecursionLimit = errors.New("recursion limit exceeded")

	// ErrPatternTooComplex is returned when a pattern fails to compile as
	// a regular expression.
	ErrPatternTooComplex = errors.New("pattern too complex")

	// ErrReportTruncated marks a report that stopped collecting issues
	// after reaching max_issues.
	ErrReportTruncated = errors.New("report truncated at max issues")
)

// ErrCancelled is returned when cooperative cancellation is observed
// mid-validation.
var ErrCancelled = errors.New("validation cancelled")

// === Numeric conversion (numeric.go) ===
var (
	// ErrNotNumeric is returned when a minimum_value/maximum_value bound
	// or an instance scalar cannot be interpreted as a number.
	ErrNotNumeric = errors.New("value is not numeric")
)

// === Compiler/cache plumbing ===
var (
	// ErrClassNotFound is returned when a requested class name is absent
	// from the elaborated schema.
	ErrClassNotFound = errors.New("class not found")

	// ErrAbstractInstantiation is returned when polymorphic dispatch would
	// instantiate an abstract class directly.
	ErrAbstractInstantiation = errors.New("cannot instantiate abstract class")

	// ErrTypeDesignatorMismatch is returned when an instance's @type names
	// a class that is not the expected class or one of its subclasses.
	ErrTypeDesignatorMismatch = errors.New("type designator is not a subclass of the expected range")
)
