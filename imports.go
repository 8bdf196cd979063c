package linkml

import (
	"context"
	"log/slog"
	"path/filepath"
)

// FilesystemOps is the collaborator interface all import resolution I/O
// goes through, so sandboxing is composable.
type FilesystemOps interface {
	ReadToString(ctx context.Context, path string) (string, error)
	Exists(ctx context.Context, path string) bool
	ReadDir(ctx context.Context, path string) ([]string, error)
}

// ResolveImports transitively loads and merges root's imports, returning a
// single merged SchemaDefinition. searchPath is tried in order,
// first-match-wins, for each import reference that is not an absolute
// path. Each import reference is either a CURIE (resolved via root's
// prefixes) or a relative path.
func ResolveImports(ctx context.Context, root *SchemaDefinition, fs FilesystemOps, searchPath []string, logger *slog.Logger) (*SchemaDefinition, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &importResolver{fs: fs, searchPath: searchPath, logger: logger, resolved: map[string]*SchemaDefinition{}, inFlight: map[string]bool{}}
	return r.resolve(ctx, root, nil)
}

type importResolver struct {
	fs         FilesystemOps
	searchPath []string
	logger     *slog.Logger
	resolved   map[string]*SchemaDefinition // canonical URI -> merged result, memoized
	inFlight   map[string]bool              // cycle detection
}

func (r *importResolver) resolve(ctx context.Context, schema *SchemaDefinition, chain []string) (*SchemaDefinition, error) {
	// Depth-first, post-order: resolve each import (leaf schemas first),
	// then merge each resolved import into schema, importer-wins.
	merged := schema
	for _, ref := range schema.Imports {
		path, err := r.locate(ctx, schema, ref)
		if err != nil {
			return nil, wrapf(ErrImportNotFound, "%s (chain %v)", ref, chain)
		}
		if r.inFlight[path] {
			return nil, wrapf(ErrCircularImport, "%v -> %s", append(append([]string{}, chain...), path), path)
		}
		if cached, ok := r.resolved[path]; ok {
			merged = mergeSchemas(merged, cached)
			continue
		}

		r.inFlight[path] = true
		text, err := r.fs.ReadToString(ctx, path)
		if err != nil {
			delete(r.inFlight, path)
			return nil, wrapf(ErrImportNotFound, "%s: %v", path, err)
		}
		format, _ := formatFromPath(path)
		imported, err := LoadSchemaBytes([]byte(text), path, format)
		if err != nil {
			delete(r.inFlight, path)
			return nil, err
		}
		resolvedImport, err := r.resolve(ctx, imported, append(chain, path))
		delete(r.inFlight, path)
		if err != nil {
			return nil, err
		}
		r.resolved[path] = resolvedImport
		merged = mergeSchemas(merged, resolvedImport)
	}
	return merged, nil
}

// locate resolves ref (a CURIE or relative path) against schema's prefixes,
// then the importing schema's own directory, then the configured search
// path, first-match-wins. Outside the as-written ref, each directory is
// tried with no extension and then with .yaml, .yml and .json.
func (r *importResolver) locate(ctx context.Context, schema *SchemaDefinition, ref string) (string, error) {
	if prefix, local, ok := splitCURIE(ref); ok {
		if base, known := schema.Prefixes[prefix]; known {
			ref = base + local
		}
	}
	if r.fs.Exists(ctx, ref) {
		return ref, nil
	}
	sibling := filepath.Join(filepath.Dir(schema.SourceFile), ref)
	for _, ext := range []string{"", ".yaml", ".yml", ".json"} {
		if p := sibling + ext; r.fs.Exists(ctx, p) {
			return p, nil
		}
	}
	for _, dir := range r.searchPath {
		candidate := dir + "/" + ref
		for _, ext := range []string{"", ".yaml", ".yml", ".json"} {
			p := candidate + ext
			if r.fs.Exists(ctx, p) {
				return p, nil
			}
		}
	}
	return "", wrapf(ErrImportNotFound, "%s", ref)
}

// mergeSchemas implements the import merge rule: imported entities are added
// only when a name is not already present in the importer; the importer
// always wins. Prefix maps are unioned, importer wins on conflicts.
func mergeSchemas(importer, imported *SchemaDefinition) *SchemaDefinition {
	out := *importer
	out.Prefixes = unionPrefixes(importer.Prefixes, imported.Prefixes)

	out.Classes = mergeEntities(importer.Classes, imported.Classes)
	out.ClassOrder = mergeOrder(importer.ClassOrder, imported.ClassOrder, importer.Classes)
	out.Slots = mergeEntities(importer.Slots, imported.Slots)
	out.SlotOrder = mergeOrder(importer.SlotOrder, imported.SlotOrder, importer.Slots)
	out.Types = mergeEntities(importer.Types, imported.Types)
	out.TypeOrder = mergeOrder(importer.TypeOrder, imported.TypeOrder, importer.Types)
	out.Enums = mergeEntities(importer.Enums, imported.Enums)
	out.EnumOrder = mergeOrder(importer.EnumOrder, imported.EnumOrder, importer.Enums)
	return &out
}

func mergeEntities[V any](importer, imported map[string]V) map[string]V {
	out := make(map[string]V, len(importer)+len(imported))
	for k, v := range imported {
		out[k] = v
	}
	for k, v := range importer {
		out[k] = v // importer wins
	}
	return out
}

func mergeOrder[V any](importerOrder, importedOrder []string, importer map[string]V) []string {
	seen := make(map[string]bool, len(importerOrder))
	out := make([]string, 0, len(importerOrder)+len(importedOrder))
	for _, name := range importedOrder {
		if _, already := importer[name]; already {
			continue // importer already declares this name, importer wins and keeps its own position below
		}
		if !seen[name] {
			out = append(out, name)
			seen[name] = true
		}
	}
	for _, name := range importerOrder {
		if !seen[name] {
			out = append(out, name)
			seen[name] = true
		}
	}
	return out
}
