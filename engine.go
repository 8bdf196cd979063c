package linkml

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/kaptinlin/go-i18n"
	"golang.org/x/sync/errgroup"

	"github.com/linkml-go/linkml/expr"
)

// Options configures one Validate/ValidateCollection call.
type Options struct {
	MaxIssues         int
	FailFast          bool
	ApplyDefaults     bool
	ValidatePatterns  bool
	RecursionLimit    int
	TypeDesignatorKey string
	ParallelThreshold int
}

// DefaultOptions returns the documented defaults: default materialization
// and pattern checking on, at most 1000 issues, recursion limit 64,
// fan-out once a collection has 64 or more elements, "@type" as the
// polymorphic dispatch key.
func DefaultOptions() *Options {
	return &Options{
		MaxIssues:         1000,
		ApplyDefaults:     true,
		ValidatePatterns:  true,
		RecursionLimit:    64,
		TypeDesignatorKey: "@type",
		ParallelThreshold: 64,
	}
}

// Engine is the validation engine: a SchemaView plus its compiler,
// shared pattern cache, and expression engine, bound together so a host
// can call Validate/ValidateCollection repeatedly without re-elaborating
// or recompiling.
type Engine struct {
	sv         *SchemaView
	compiler   *ValidatorCompiler
	patterns   *patternCache
	exprEngine *expr.Engine
	clock      Clock
	logger     *slog.Logger
	localizer  *i18n.Localizer
}

type EngineOption func(*Engine)

func WithCompiler(c *ValidatorCompiler) EngineOption {
	return func(e *Engine) { e.compiler = c }
}

func WithExpressionEngine(ee *expr.Engine) EngineOption {
	return func(e *Engine) { e.exprEngine = ee }
}

func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// WithClock overrides the Clock that date-valued expression built-ins
// (today/now) consult, for deterministic tests.
func WithClock(clock Clock) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

// WithLocalizer renders every Issue's message through localizer (built
// from LocaleBundle) instead of the stable English default.
func WithLocalizer(localizer *i18n.Localizer) EngineOption {
	return func(e *Engine) { e.localizer = localizer }
}

// WithPatternTransformer installs a rewrite applied to every slot/type
// pattern before regexp compilation, for callers whose schemas use a
// regex dialect Go's regexp does not accept; the pattern cache stays
// keyed by the schema's original pattern text.
func WithPatternTransformer(fn func(string) string) EngineOption {
	return func(e *Engine) { e.patterns.transform = fn }
}

// NewEngine builds an Engine over sv, using limits (or the documented
// defaults when nil) to size the pattern, validator-program and
// expression caches and to set the expression instruction and stack
// ceilings. The recursion depth and issue cap of a call come from its
// Options; limits.RecursionLimit and limits.MaxIssues are not read by
// the Engine.
func NewEngine(sv *SchemaView, limits *ResourceLimits, opts ...EngineOption) *Engine {
	if limits == nil {
		limits, _ = NewResourceLimits()
	}
	logger := slog.Default()
	e := &Engine{
		sv:       sv,
		compiler: NewValidatorCompiler(WithResourceLimits(limits), WithLogger(logger)),
		patterns: newPatternCache(limits.PatternCacheSize, logger),
		clock:    SystemClock(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.exprEngine == nil {
		e.exprEngine = expr.NewEngine(
			expr.WithClock(e.clock),
			expr.WithLimits(expr.Limits{MaxInstructions: limits.ExpressionInstrLimit, MaxStackDepth: limits.ExpressionStackLimit}),
			expr.WithCacheSize(limits.ExpressionCacheSize, logger),
		)
	}
	return e
}

// Validate validates a single instance against className, or against the
// schema's tree_root class when className is empty.
func (e *Engine) Validate(ctx context.Context, instanceJSON []byte, className string, opts *Options) (*Report, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if className == "" {
		root, ok := e.sv.TreeRootClass()
		if !ok {
			return nil, wrapf(ErrClassNotFound, "no target class given and no class declares tree_root")
		}
		className = root
	}
	var instance map[string]any
	if err := json.Unmarshal(instanceJSON, &instance); err != nil {
		return nil, wrapf(ErrInstanceParse, "%v", err)
	}
	report := e.newStampedReport()
	tracker := newRecursionTracker(opts.RecursionLimit)
	if err := e.validateObjectAgainst(ctx, className, instance, nil, instanceJSON, tracker, report, opts); err != nil {
		if errors.Is(err, ErrCancelled) {
			report.Cancelled = true
			return report, nil
		}
		return nil, err
	}
	return report, nil
}

// ValidateCollection validates each element of items against className,
// preserving input order in the combined report, then checks className's unique_keys across the
// whole collection. Elements fan out across goroutines via
// golang.org/x/sync/errgroup once len(items) reaches
// opts.ParallelThreshold; below that, validation is
// sequential and the overhead of fanning out is not worth paying.
func (e *Engine) ValidateCollection(ctx context.Context, items [][]byte, className string, opts *Options) (*Report, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	rc, err := e.sv.ResolvedClassByName(className)
	if err != nil {
		return nil, err
	}

	reports := make([]*Report, len(items))
	instances := make([]map[string]any, len(items))

	validateOne := func(i int) error {
		var instance map[string]any
		if jsonErr := json.Unmarshal(items[i], &instance); jsonErr != nil {
			r := newReport()
			e.addIssue(r, newIssue("instance", "parse_failed", pointerPath(strconv.Itoa(i)),
				"Element {index} is not valid JSON", map[string]any{"index": i}), opts)
			reports[i] = r
			return nil
		}
		instances[i] = instance
		tracker := newRecursionTracker(opts.RecursionLimit)
		r := newReport()
		pathTokens := []string{strconv.Itoa(i)}
		if vErr := e.validateObjectAgainst(ctx, className, instance, pathTokens, items[i], tracker, r, opts); vErr != nil {
			if errors.Is(vErr, ErrCancelled) {
				r.Cancelled = true
				reports[i] = r
				return nil
			}
			return vErr
		}
		reports[i] = r
		return nil
	}

	if opts.ParallelThreshold > 0 && len(items) >= opts.ParallelThreshold {
		g, gctx := errgroup.WithContext(ctx)
		sem := make(chan struct{}, max(1, runtime.NumCPU()))
		for i := range items {
			i := i
			g.Go(func() error {
				select {
				case sem <- struct{}{}:
				case <-gctx.Done():
					return gctx.Err()
				}
				defer func() { <-sem }()
				return validateOne(i)
			})
		}
		if waitErr := g.Wait(); waitErr != nil && !errors.Is(waitErr, context.Canceled) {
			return nil, waitErr
		}
	} else {
		for i := range items {
			if vErr := validateOne(i); vErr != nil {
				return nil, vErr
			}
		}
	}

	combined := e.newStampedReport()
	for _, r := range reports {
		if r == nil {
			continue
		}
		if r.Cancelled {
			combined.Cancelled = true
		}
		for _, issue := range r.Issues {
			if !combined.addIssue(issue, opts.MaxIssues) {
				return combined, nil
			}
		}
	}

	for _, uk := range rc.UniqueKeys {
		idx := newUniqueKeyIndex()
		for i, instance := range instances {
			if instance == nil {
				continue
			}
			if issue := idx.check(uk, instance, pointerPath(strconv.Itoa(i))); issue != nil {
				if !e.addIssue(combined, *issue, opts) {
					return combined, nil
				}
			}
		}
	}

	return combined, nil
}

// validateObjectAgainst compiles (or retrieves) className's program and
// runs every induced slot's actions against instance in MRO-stable
// order, then its class-level rules. pathTokens locates instance within
// the top-level document being validated.
func (e *Engine) validateObjectAgainst(ctx context.Context, className string, instance map[string]any, pathTokens []string, instanceJSON []byte, tracker *RecursionTracker, report *Report, opts *Options) error {
	if err := ctx.Err(); err != nil {
		return ErrCancelled
	}
	prog, err := e.compiler.Compile(e.sv, className)
	if err != nil {
		return err
	}
	if prog.Abstract {
		e.addIssue(report, newIssue("class_ref", "abstract_instantiation", pointerPath(pathTokens...),
			"Cannot instantiate abstract class {class}", map[string]any{"class": className}), opts)
	}

	working := instanceJSON
	for _, name := range prog.SlotOrder {
		sv := prog.Slots[name]
		cont, err := e.validateSlot(ctx, sv, instance, pathTokens, &working, tracker, report, opts)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}

	for _, issue := range evaluateRules(prog.Rules, instance, working, e.exprEngine) {
		if len(pathTokens) > 0 {
			issue.Path = pointerPath(pathTokens...)
		}
		if !e.addIssue(report, issue, opts) {
			return nil
		}
	}
	return nil
}

// validateSlot runs one slot's compiled actions in order. Slot-level
// actions (Required/Default/Computed) run once; the remaining actions
// run once per element, iterating the list when the slot is
// multivalued. It returns false when the caller should stop validating
// the enclosing object (max_issues reached or fail_fast tripped).
func (e *Engine) validateSlot(ctx context.Context, sv *SlotValidator, instance map[string]any, pathTokens []string, instanceJSON *[]byte, tracker *RecursionTracker, report *Report, opts *Options) (bool, error) {
	name := sv.SlotName
	value, present := instance[name]
	slotTokens := append(append([]string{}, pathTokens...), name)

	for _, action := range sv.Actions {
		switch action {
		case ActionRequired:
			if issue := evaluateRequired(name, present); issue != nil {
				issue.Path = pointerPath(slotTokens...)
				if !e.addIssue(report, *issue, opts) {
					return false, nil
				}
			}
		case ActionDefault:
			if !present && opts.ApplyDefaults {
				updated, err := applyDefault(*instanceJSON, sv.Slot)
				if err == nil {
					*instanceJSON = updated
					value = sv.Slot.Default
					present = true
					instance[name] = value
				}
			}
		case ActionComputed:
			issue, computed := evaluateComputed(name, value, present, *sv.Slot.EqualsExpression, *instanceJSON, e.exprEngine)
			if issue != nil {
				issue.Path = pointerPath(slotTokens...)
				if !e.addIssue(report, *issue, opts) {
					return false, nil
				}
			} else if !present && computed != nil {
				if updated, merr := materializeValue(*instanceJSON, name, computed); merr == nil {
					*instanceJSON = updated
				}
				value = computed
				present = true
				instance[name] = value
			}
		}
	}

	if !present {
		return true, nil
	}

	isMultivalued := boolValue(sv.Slot.Multivalued)
	elements := []any{value}
	if hasAction(sv.Actions, ActionMultivalued) {
		els, issue := evaluateMultivalued(name, value, isMultivalued)
		if issue != nil {
			issue.Path = pointerPath(slotTokens...)
			if !e.addIssue(report, *issue, opts) {
				return false, nil
			}
			return true, nil
		}
		if isMultivalued {
			elements = els
		}
	}

	for i, el := range elements {
		elTokens := slotTokens
		if isMultivalued {
			elTokens = append(append([]string{}, slotTokens...), strconv.Itoa(i))
		}
		cont, err := e.validateElement(ctx, sv, el, elTokens, tracker, report, opts)
		if err != nil {
			return false, err
		}
		if !cont {
			return false, nil
		}
	}
	return true, nil
}

func (e *Engine) validateElement(ctx context.Context, sv *SlotValidator, el any, pathTokens []string, tracker *RecursionTracker, report *Report, opts *Options) (bool, error) {
	path := pointerPath(pathTokens...)
	for _, action := range sv.Actions {
		switch action {
		case ActionType:
			if issue := evaluateType(sv.SlotName, el, sv.Range); issue != nil {
				issue.Path = path
				if !e.addIssue(report, *issue, opts) {
					return false, nil
				}
			}
		case ActionEnum:
			pvs := sv.Slot.PermissibleValues
			if len(pvs) == 0 {
				pvs = sv.Range.PermissibleValues
			}
			if issue := evaluateEnum(sv.SlotName, el, pvs); issue != nil {
				issue.Path = path
				if !e.addIssue(report, *issue, opts) {
					return false, nil
				}
			}
		case ActionRange:
			if issue := evaluateRange(sv.SlotName, el, sv.Slot.MinimumValue, sv.Slot.MaximumValue); issue != nil {
				issue.Path = path
				if !e.addIssue(report, *issue, opts) {
					return false, nil
				}
			}
		case ActionPattern:
			if opts.ValidatePatterns {
				if issue := evaluatePattern(sv.SlotName, el, sv.Slot.Pattern, sv.Range.Pattern, e.patterns); issue != nil {
					issue.Path = path
					if !e.addIssue(report, *issue, opts) {
						return false, nil
					}
				}
			}
		case ActionClassRef:
			if err := e.validateClassRef(ctx, sv, el, pathTokens, tracker, report, opts); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}

// validateClassRef dispatches one class-ranged element: a bare reference
// needs no further structural check, an inlined list recurses per
// element, and an inlined object resolves its (possibly polymorphic)
// target class, guards against cycles via tracker, and recurses.
func (e *Engine) validateClassRef(ctx context.Context, sv *SlotValidator, el any, pathTokens []string, tracker *RecursionTracker, report *Report, opts *Options) error {
	switch classifyClassRef(sv.Slot, el) {
	case classRefReference:
		return nil
	case classRefInlineList:
		list, ok := el.([]any)
		if !ok {
			return nil
		}
		for i, item := range list {
			itemTokens := append(append([]string{}, pathTokens...), strconv.Itoa(i))
			if err := e.validateClassRef(ctx, sv, item, itemTokens, tracker, report, opts); err != nil {
				return err
			}
		}
		return nil
	case classRefInlineObject:
		obj, ok := el.(map[string]any)
		if !ok {
			return nil
		}
		path := pointerPath(pathTokens...)
		rc, err := resolveDispatchedClass(e.sv, sv.Range.ClassName, obj, opts.TypeDesignatorKey)
		if err != nil {
			e.addIssue(report, newIssue("class_ref", "dispatch_failed", path,
				"Polymorphic dispatch failed: {error}", map[string]any{"error": err.Error()}), opts)
			return nil
		}
		identifier := classRefIdentifierKey(rc, obj)
		leave, err := tracker.enter(rc.Name, identifier)
		if err != nil {
			e.addIssue(report, newIssue("class_ref", "recursion_limit", path,
				"Recursion limit exceeded: {error}", map[string]any{"error": err.Error()}), opts)
			return nil
		}
		defer leave()

		objJSON, err := json.Marshal(obj)
		if err != nil {
			return wrapf(ErrInstanceParse, "re-encoding inlined %s: %v", rc.Name, err)
		}
		return e.validateObjectAgainst(ctx, rc.Name, obj, pathTokens, objJSON, tracker, report, opts)
	}
	return nil
}

// newStampedReport returns an empty report carrying the schema id and
// the Clock's current instant, deterministic under a FixedClock.
func (e *Engine) newStampedReport() *Report {
	r := newReport()
	r.SchemaID = e.sv.Schema.ID
	r.Timestamp = e.clock.Now().UTC().Format(time.RFC3339)
	return r
}

func (e *Engine) addIssue(report *Report, issue Issue, opts *Options) bool {
	if e.localizer != nil {
		issue.Message = issue.Localize(e.localizer)
	}
	cont := report.addIssue(issue, opts.MaxIssues)
	if !cont {
		return false
	}
	if opts.FailFast && issue.Severity == SeverityError {
		return false
	}
	return true
}

func hasAction(actions []ActionKind, target ActionKind) bool {
	for _, a := range actions {
		if a == target {
			return true
		}
	}
	return false
}
