// Package linkml implements the core of a LinkML schema engine: it parses
// declarative YAML/JSON data-model schemas, elaborates their inheritance
// and import graph into a fully resolved view, and validates arbitrary
// JSON instance data against the elaborated classes.
//
// The package is organized as a five-stage pipeline whose later stages
// consume immutable outputs of earlier ones:
//
//  1. Loader      — parses schema bytes into a raw [SchemaDefinition].
//  2. Resolver     — transitively loads and merges imported schemas.
//  3. SchemaView   — elaborates the raw schema into per-class [ResolvedClass]
//     values (MRO, induced slots, resolved ranges, expanded URIs).
//  4. Compiler     — compiles a [ResolvedClass] into an ordered [ValidatorProgram].
//  5. Engine       — executes compiled programs against instance data.
//
// The expression sub-language used by computed slots and conditional
// rules lives in the sibling package [github.com/linkml-go/linkml/expr].
package linkml
