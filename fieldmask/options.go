package fieldmask

import (
	"github.com/proto-graphql/graphql-field-mask/language"
	"github.com/proto-graphql/graphql-field-mask/schema"
)

// Options customizes how selections are turned into mask paths. Every slot
// is optional; a nil Options value behaves like the zero value.
type Options struct {
	// FieldName determines the output path segment(s) for a field selection.
	// Returning more than one name fans the field's subtree out across all of
	// them; returning a nil or empty slice drops the field and its
	// sub-selections entirely. When unset, the schema field name is used
	// (never the query alias).
	FieldName func(ctx *FieldContext) ([]string, error)

	// ExtraPaths contributes additional mask paths for a field selection.
	// The returned paths are appended verbatim: they are not renamed by
	// FieldName and not recursed into. It runs before FieldName, so a field
	// suppressed by FieldName still contributes its extra paths.
	ExtraPaths func(ctx *FieldContext) ([]string, error)

	// AbstractTypePaths maps a fragment that narrows an interface or union
	// to one of its concrete member types. childPaths lazily computes the
	// member's own relative paths; the hook decides how (and whether) they
	// appear in the result. When unset, such fragments contribute nothing.
	AbstractTypePaths func(ctx *AbstractFieldContext, childPaths ChildPathsFn) ([]string, error)
}

// ChildPathsFn computes the narrowed member's relative paths on demand.
// Calling it more than once recomputes; results are not memoized.
type ChildPathsFn func() ([]string, error)

// FieldContext describes one field selection being turned into paths.
type FieldContext struct {
	// Node is the field selection from the query.
	Node *language.Field
	// Definition is the schema definition of the selected field.
	Definition *schema.Field
	// ObjectType is the object type the field was resolved on.
	ObjectType *schema.Type
	Schema     *schema.Schema
}

// AbstractFieldContext describes a fragment narrowing an abstract type to
// one of its concrete members.
type AbstractFieldContext struct {
	// Node is the fragment that narrows the type: either a
	// *language.InlineFragment or a *language.FragmentDefinition.
	Node any
	// AbstractType is the interface or union being narrowed.
	AbstractType *schema.Type
	// ConcreteType is the member type named by the fragment's type condition.
	ConcreteType *schema.Type
	// Field is the enclosing field typed as the abstract type.
	Field  *schema.Field
	Schema *schema.Schema
}

func (o *Options) fieldName(ctx *FieldContext) ([]string, error) {
	if o == nil || o.FieldName == nil {
		return []string{ctx.Definition.Name}, nil
	}
	return o.FieldName(ctx)
}

func (o *Options) extraPaths(ctx *FieldContext) ([]string, error) {
	if o == nil || o.ExtraPaths == nil {
		return nil, nil
	}
	return o.ExtraPaths(ctx)
}
