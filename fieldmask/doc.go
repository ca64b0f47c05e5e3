// Package fieldmask turns a GraphQL query's selected fields, resolved
// against a named object type, into the flat, dot-separated path list used
// to populate a field mask such as google.protobuf.FieldMask.
//
// # Overview
//
// The extractor is a recursive descent over the query AST:
//   - Field selections become path segments; a field with a sub-selection
//     contributes one path per leaf reachable below it, prefixed with the
//     field's schema name.
//   - Named fragments are resolved through the supplied fragment list and
//     inlined; inline fragments are inlined directly. A fragment whose type
//     condition matches the current concrete type (or is an abstract type the
//     current type belongs to) is transparent.
//   - A fragment narrowing an interface or union to a concrete member is
//     skipped unless Options.AbstractTypePaths is set; the hook decides how
//     member paths are prefixed (or dropped).
//   - __typename never contributes a path.
//
// The result is deduplicated and ordered by first occurrence across the
// traversal, so repeated selections of the same field (through aliases or
// repeated fragment inclusion) collapse to one path.
//
// # Customization
//
// Options carries three optional hooks: FieldName (rename a field, fan it
// out into several mask paths, or suppress it and its subtree), ExtraPaths
// (append dependency paths verbatim), and AbstractTypePaths (replace the
// default skip policy for member-narrowing fragments). Unset hooks preserve
// the defaults exactly: schema field names, no extra paths, skip narrowing.
//
// # Inputs and purity
//
// The AST, fragment list and schema are read-only snapshots for the
// duration of one call; extraction is synchronous, allocates only its local
// accumulator, and is safe to run concurrently from independent requests.
// Recursion depth follows query nesting depth. The walker does not guard
// against cyclic fragment spreads; it assumes the document was validated
// upstream (CollectFieldNodes, used to assemble the entry nodes, does carry
// a visited-fragment guard).
package fieldmask
