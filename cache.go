package linkml

import (
	"log/slog"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ResourceLimits caps the shared caches and expression evaluation.
// RecursionLimit and MaxIssues are validated here, but the Engine takes a
// call's recursion depth and issue cap from that call's Options.
// Constructed via NewResourceLimits with documented defaults, then
// adjusted with functional options.
type ResourceLimits struct {
	PatternCacheSize     int
	ProgramCacheSize     int
	ExpressionCacheSize  int
	MaxIssues            int
	RecursionLimit       int
	ExpressionInstrLimit int
	ExpressionStackLimit int
}

// ResourceLimitsOption configures a ResourceLimits at construction.
type ResourceLimitsOption func(*ResourceLimits)

// NewResourceLimits returns the documented defaults, validating the
// final combination at construction so a bad configuration fails before
// any validation runs.
func NewResourceLimits(opts ...ResourceLimitsOption) (*ResourceLimits, error) {
	rl := &ResourceLimits{
		PatternCacheSize:     1024,
		ProgramCacheSize:     256,
		ExpressionCacheSize:  512,
		MaxIssues:            1000,
		RecursionLimit:       64,
		ExpressionInstrLimit: 1_000_000,
		ExpressionStackLimit: 128,
	}
	for _, opt := range opts {
		opt(rl)
	}
	if rl.MaxIssues == 0 {
		return nil, wrapf(ErrReportTruncated, "max_issues must be nonzero")
	}
	return rl, nil
}

func WithPatternCacheSize(n int) ResourceLimitsOption {
	return func(rl *ResourceLimits) { rl.PatternCacheSize = n }
}

func WithProgramCacheSize(n int) ResourceLimitsOption {
	return func(rl *ResourceLimits) { rl.ProgramCacheSize = n }
}

func WithMaxIssues(n int) ResourceLimitsOption {
	return func(rl *ResourceLimits) { rl.MaxIssues = n }
}

func WithRecursionLimit(n int) ResourceLimitsOption {
	return func(rl *ResourceLimits) { rl.RecursionLimit = n }
}

// Cache is the optional persistent backend collaborator: get/set/
// delete over opaque byte payloads, used only to persist compiled
// programs across process invocations. The default Engine does not use
// one; internal/cachestore provides a sqlite-backed implementation.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

// patternCache compiles and caches regexes by pattern text, recovering
// from a panicking compile by discarding the entry and rebuilding,
// never poisoning the lock for other callers. transform, when set, rewrites
// a pattern before compilation (e.g. translating named-capture dialects);
// entries stay keyed by the schema's original pattern text.
type patternCache struct {
	lru       *lru.Cache[string, *regexp.Regexp]
	logger    *slog.Logger
	transform func(string) string
}

func newPatternCache(size int, logger *slog.Logger) *patternCache {
	if logger == nil {
		logger = slog.Default()
	}
	c, _ := lru.New[string, *regexp.Regexp](size)
	return &patternCache{lru: c, logger: logger}
}

func (c *patternCache) compile(pattern string) (re *regexp.Regexp, err error) {
	if cached, ok := c.lru.Get(pattern); ok {
		return cached, nil
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("pattern cache recovered from panic, discarding entry", "pattern", pattern, "panic", r)
			err = wrapf(ErrPatternTooComplex, "%s", pattern)
		}
	}()
	source := pattern
	if c.transform != nil {
		source = c.transform(pattern)
	}
	re, err = regexp.Compile(source)
	if err != nil {
		return nil, wrapf(ErrPatternTooComplex, "%s: %v", pattern, err)
	}
	c.lru.Add(pattern, re)
	return re, nil
}

// programCache caches compiled ValidatorPrograms by (schema fingerprint,
// class name).
type programCache struct {
	lru    *lru.Cache[string, *ValidatorProgram]
	logger *slog.Logger
}

func newProgramCache(size int, logger *slog.Logger) *programCache {
	if logger == nil {
		logger = slog.Default()
	}
	c, _ := lru.New[string, *ValidatorProgram](size)
	return &programCache{lru: c, logger: logger}
}

func (c *programCache) getOrCompile(key string, build func() (*ValidatorProgram, error)) (prog *ValidatorProgram, err error) {
	if cached, ok := c.lru.Get(key); ok {
		return cached, nil
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("program cache recovered from panic, discarding entry", "key", key, "panic", r)
			prog, err = nil, wrapf(ErrClassNotFound, "compile panic for %s: %v", key, r)
		}
	}()
	prog, err = build()
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, prog)
	return prog, nil
}
