package linkml

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"github.com/go-json-experiment/json"
)

// ValidatorCompiler turns a SchemaView's ResolvedClasses into cached
// ValidatorPrograms: a mutex-guarded cache plus functional WithXxx
// configuration.
type ValidatorCompiler struct {
	limits   *ResourceLimits
	programs *programCache
	logger   *slog.Logger
}

// CompilerOption configures a ValidatorCompiler at construction.
type CompilerOption func(*ValidatorCompiler)

// WithResourceLimits overrides the default resource limits.
func WithResourceLimits(rl *ResourceLimits) CompilerOption {
	return func(c *ValidatorCompiler) { c.limits = rl }
}

// WithLogger overrides the default slog.Logger used for cache-recovery
// diagnostics.
func WithLogger(logger *slog.Logger) CompilerOption {
	return func(c *ValidatorCompiler) { c.logger = logger }
}

// NewValidatorCompiler constructs a compiler with default resource limits,
// applying defaults first, then options.
func NewValidatorCompiler(opts ...CompilerOption) *ValidatorCompiler {
	limits, _ := NewResourceLimits()
	c := &ValidatorCompiler{limits: limits, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	c.programs = newProgramCache(c.limits.ProgramCacheSize, c.logger)
	return c
}

// Compile builds (or returns the cached) ValidatorProgram for className,
// keyed by (schema fingerprint, class name).
func (c *ValidatorCompiler) Compile(sv *SchemaView, className string) (*ValidatorProgram, error) {
	fp, err := schemaFingerprint(sv.Schema)
	if err != nil {
		return nil, err
	}
	key := fp + "/" + className

	return c.programs.getOrCompile(key, func() (*ValidatorProgram, error) {
		rc, err := sv.ResolvedClassByName(className)
		if err != nil {
			return nil, err
		}
		prog := &ValidatorProgram{
			ClassName:      className,
			Fingerprint:    fp,
			SlotOrder:      rc.SlotOrder,
			Slots:          make(map[string]*SlotValidator, len(rc.SlotOrder)),
			Rules:          rc.Rules,
			UniqueKeys:     rc.UniqueKeys,
			Abstract:       rc.Abstract,
			IdentifierSlot: rc.IdentifierSlot,
		}
		for _, name := range rc.SlotOrder {
			slot := rc.InducedSlots[name]
			rr := rc.ResolvedRanges[name]
			prog.Slots[name] = compileSlot(name, slot, rr)
		}
		return prog, nil
	})
}

// schemaFingerprint is a stable digest of the elaborated schema's
// canonical (deterministic-order) encoding, via go-json-experiment's
// deterministic marshaling mode.
func schemaFingerprint(schema *SchemaDefinition) (string, error) {
	encoded, err := json.Marshal(schema, json.Deterministic(true))
	if err != nil {
		return "", wrapf(ErrSchemaParse, "fingerprint: %v", err)
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}
