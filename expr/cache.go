package expr

import (
	"fmt"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// OptimizationLevel selects whether Engine.Parse additionally compiles to
// bytecode.
type OptimizationLevel int

const (
	OptimizationNone    OptimizationLevel = iota // AST only
	OptimizationCompile                          // AST + bytecode Program
)

type cacheEntry struct {
	ast     Node
	program *Program
}

// Cache holds parsed/compiled expressions keyed by (text, optimization
// level), backed by hashicorp/golang-lru/v2 the same as the root
// package's pattern and program caches (cache.go), recovering from a
// panicking compile rather than poisoning the shared lock.
type Cache struct {
	mu     sync.Mutex
	lru    *lru.Cache[string, cacheEntry]
	logger *slog.Logger
}

func NewCache(size int, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	c, _ := lru.New[string, cacheEntry](size)
	return &Cache{lru: c, logger: logger}
}

func cacheKey(text string, level OptimizationLevel) string {
	return fmt.Sprintf("%d\x00%s", level, text)
}

func (c *Cache) getOrBuild(text string, level OptimizationLevel) (entry cacheEntry, err error) {
	key := cacheKey(text, level)
	c.mu.Lock()
	if cached, ok := c.lru.Get(key); ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("expression cache recovered from panic, discarding entry", "text", text, "panic", r)
			err = fmt.Errorf("%w: parse panic: %v", ErrParse, r)
		}
	}()

	ast, parseErr := Parse(text)
	if parseErr != nil {
		return cacheEntry{}, parseErr
	}
	entry = cacheEntry{ast: ast}
	if level == OptimizationCompile {
		prog, compileErr := Compile(ast)
		if compileErr != nil {
			return cacheEntry{}, compileErr
		}
		entry.program = prog
	}

	c.mu.Lock()
	c.lru.Add(key, entry)
	c.mu.Unlock()
	return entry, nil
}
