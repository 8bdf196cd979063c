package expr

import (
	"fmt"
	"log/slog"

	"github.com/tidwall/gjson"
)

// Engine ties the parser, compiler, VM and Cache together into the public
// surface the root package's computed-slot and rule evaluation
// (computedkw.go, rules.go) call into.
type Engine struct {
	cache  *Cache
	clock  Clock
	limits Limits
	level  OptimizationLevel
}

type EngineOption func(*Engine)

func WithClock(clock Clock) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

func WithLimits(limits Limits) EngineOption {
	return func(e *Engine) { e.limits = limits }
}

func WithCacheSize(size int, logger *slog.Logger) EngineOption {
	return func(e *Engine) { e.cache = NewCache(size, logger) }
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		cache:  NewCache(512, nil),
		clock:  systemClock{},
		limits: DefaultLimits(),
		level:  OptimizationCompile,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse validates expression syntax without evaluating it, surfacing
// parse errors at schema-compile time instead of at validation time.
func (e *Engine) Parse(text string) error {
	_, err := e.cache.getOrBuild(text, e.level)
	return err
}

// Evaluate parses (or retrieves from cache) and runs text against
// instanceJSON, the current object being validated. The whole object is
// decoded with github.com/tidwall/gjson into plain maps, slices and
// scalars, and member (x.y) and index (x[i]) access walk that decoded
// context.
func (e *Engine) Evaluate(text string, instanceJSON []byte) (any, error) {
	entry, err := e.cache.getOrBuild(text, e.level)
	if err != nil {
		return nil, err
	}
	ctx, err := contextFromJSON(instanceJSON)
	if err != nil {
		return nil, err
	}
	if entry.program != nil {
		return Eval(entry.program, ctx, e.clock, e.limits)
	}
	prog, err := Compile(entry.ast)
	if err != nil {
		return nil, err
	}
	return Eval(prog, ctx, e.clock, e.limits)
}

func contextFromJSON(instanceJSON []byte) (map[string]any, error) {
	if len(instanceJSON) == 0 {
		return map[string]any{}, nil
	}
	parsed := gjson.ParseBytes(instanceJSON)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("%w: expression context must be a JSON object", ErrEvaluation)
	}
	value, ok := parsed.Value().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expression context must decode to an object", ErrEvaluation)
	}
	return normalizeGJSON(value).(map[string]any), nil
}

// normalizeGJSON recursively copies gjson's decoded maps and slices into
// fresh map[string]any/[]any containers. Scalars are returned unchanged:
// gjson.Value() already yields numbers as float64.
func normalizeGJSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeGJSON(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeGJSON(val)
		}
		return out
	default:
		return v
	}
}
