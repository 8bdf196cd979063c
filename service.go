package linkml

import (
	"context"
	"log/slog"

	"github.com/goccy/go-json"
)

// SchemaService is the load-and-validate façade: load a schema (resolving its
// imports) and hand back an elaborated, ready-to-validate LoadedSchema,
// without the caller touching the loader/import/elaborator stages
// individually.
type SchemaService struct {
	fs         FilesystemOps
	searchPath []string
	limits     *ResourceLimits
	logger     *slog.Logger
}

type ServiceOption func(*SchemaService)

func WithFilesystem(fs FilesystemOps) ServiceOption {
	return func(s *SchemaService) { s.fs = fs }
}

func WithSearchPath(paths []string) ServiceOption {
	return func(s *SchemaService) { s.searchPath = paths }
}

func WithServiceResourceLimits(rl *ResourceLimits) ServiceOption {
	return func(s *SchemaService) { s.limits = rl }
}

func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *SchemaService) { s.logger = logger }
}

// NewSchemaService constructs a service reading from the local
// filesystem by default, with the documented resource-limit defaults.
func NewSchemaService(opts ...ServiceOption) *SchemaService {
	limits, _ := NewResourceLimits()
	s := &SchemaService{fs: OSFilesystem(), limits: limits, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadedSchema bundles one elaborated SchemaView with the Engine built
// over it, so a caller validates without re-threading limits/caches.
type LoadedSchema struct {
	View   *SchemaView
	Engine *Engine
}

// LoadSchema reads path through the service's FilesystemOps, resolves
// its import graph, and elaborates the merged result.
func (s *SchemaService) LoadSchema(ctx context.Context, path string) (*LoadedSchema, error) {
	text, err := s.fs.ReadToString(ctx, path)
	if err != nil {
		return nil, wrapf(ErrImportNotFound, "%s: %v", path, err)
	}
	return s.LoadSchemaStr(ctx, text, path)
}

// LoadSchemaStr loads an already-in-memory schema document; path is used
// only to infer format and as the base for resolving relative imports.
func (s *SchemaService) LoadSchemaStr(ctx context.Context, text, path string) (*LoadedSchema, error) {
	format, _ := formatFromPath(path)
	schema, err := LoadSchemaBytes([]byte(text), path, format)
	if err != nil {
		return nil, err
	}
	merged, err := ResolveImports(ctx, schema, s.fs, s.searchPath, s.logger)
	if err != nil {
		return nil, err
	}
	view, err := Elaborate(merged)
	if err != nil {
		return nil, err
	}
	engine := NewEngine(view, s.limits, WithEngineLogger(s.logger))
	return &LoadedSchema{View: view, Engine: engine}, nil
}

// Validate runs instanceJSON against className.
func (ls *LoadedSchema) Validate(ctx context.Context, instanceJSON []byte, className string, opts *Options) (*Report, error) {
	return ls.Engine.Validate(ctx, instanceJSON, className, opts)
}

// ValidateTyped marshals a Go value to JSON before validating it,
// letting a host pass an already-decoded instance (e.g. from its own
// API layer) instead of raw bytes.
func (ls *LoadedSchema) ValidateTyped(ctx context.Context, instance any, className string, opts *Options) (*Report, error) {
	data, err := json.Marshal(instance)
	if err != nil {
		return nil, wrapf(ErrInstanceParse, "%v", err)
	}
	return ls.Engine.Validate(ctx, data, className, opts)
}

// ValidateInto validates instanceJSON against className and, when the
// report comes back valid, deserializes the instance into T. On an invalid report T stays zero and the report
// carries the issues; only infrastructure errors return a non-nil error.
func ValidateInto[T any](ctx context.Context, ls *LoadedSchema, instanceJSON []byte, className string, opts *Options) (T, *Report, error) {
	var out T
	report, err := ls.Validate(ctx, instanceJSON, className, opts)
	if err != nil {
		return out, nil, err
	}
	if !report.Valid {
		return out, report, nil
	}
	if err := json.Unmarshal(instanceJSON, &out); err != nil {
		return out, report, wrapf(ErrInstanceParse, "%v", err)
	}
	return out, report, nil
}
