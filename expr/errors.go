package expr

import "errors"

var (
	// ErrParse is returned when an expression fails to parse.
	ErrParse = errors.New("expression parse failed")

	// ErrEvaluation is returned when a parsed expression fails to evaluate
	// (type mismatch, division by zero, out-of-range index, unknown
	// identifier or function).
	ErrEvaluation = errors.New("expression evaluation failed")

	// ErrResourceLimit is returned when an expression exceeds its
	// instruction-count or stack-depth budget — the sandbox's security
	// boundary (design notes).
	ErrResourceLimit = errors.New("expression resource limit exceeded")
)
