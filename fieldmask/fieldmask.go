package fieldmask

import (
	"fmt"

	"github.com/proto-graphql/graphql-field-mask/language"
	"github.com/proto-graphql/graphql-field-mask/schema"
)

const typenameField = "__typename"

// Paths computes the field mask paths requested by the given field nodes,
// resolved against typename. fields holds the AST occurrences of one
// resolved field (several when the same aliased field is reached through
// multiple fragments); every node's selection set is walked and the results
// are unioned into one duplicate-free list ordered by first occurrence.
//
// opts may be nil. Any error aborts the whole call; there are no partial
// results.
func Paths(typename string, fields []*language.Field, fragments language.FragmentDefinitionList, sch *schema.Schema, opts *Options) ([]string, error) {
	if _, err := resolveType(sch, typename); err != nil {
		return nil, err
	}
	set := newPathSet()
	for _, field := range fields {
		paths, err := extract(typename, nil, field.SelectionSet, fragments, sch, opts)
		if err != nil {
			return nil, err
		}
		set.add(paths...)
	}
	return set.ordered(), nil
}

// extract returns the relative paths contributed by selectionSet,
// interpreted as children of typename. currentField is the enclosing field
// definition; it is nil at the root.
func extract(typename string, currentField *schema.Field, selectionSet language.SelectionSet, fragments language.FragmentDefinitionList, sch *schema.Schema, opts *Options) ([]string, error) {
	var out []string
	for _, selection := range selectionSet {
		switch sel := selection.(type) {
		case *language.Field:
			if sel.Name == typenameField {
				continue
			}
			objectType, err := resolveObjectType(sch, typename)
			if err != nil {
				return nil, err
			}
			fieldDef := objectType.GetField(sel.Name)
			if fieldDef == nil {
				return nil, &UnknownFieldError{TypeName: typename, FieldName: sel.Name}
			}
			fctx := &FieldContext{Node: sel, Definition: fieldDef, ObjectType: objectType, Schema: sch}

			extra, err := opts.extraPaths(fctx)
			if err != nil {
				return nil, err
			}
			out = append(out, extra...)

			names, err := opts.fieldName(fctx)
			if err != nil {
				return nil, err
			}
			if len(names) == 0 {
				// Suppressed: no path, no recursion into children.
				continue
			}
			if len(sel.SelectionSet) == 0 {
				out = append(out, names...)
				continue
			}
			childPaths, err := extract(fieldDef.Type.GetNamedType(), fieldDef, sel.SelectionSet, fragments, sch, opts)
			if err != nil {
				return nil, err
			}
			for _, name := range names {
				for _, child := range childPaths {
					out = append(out, name+"."+child)
				}
			}

		case *language.FragmentSpread:
			frag := fragments.ForName(sel.Name)
			if frag == nil {
				return nil, &UnknownFragmentError{Name: sel.Name}
			}
			paths, err := extractFragment(typename, currentField, frag.TypeCondition, frag, frag.SelectionSet, fragments, sch, opts)
			if err != nil {
				return nil, err
			}
			out = append(out, paths...)

		case *language.InlineFragment:
			// A typeless inline fragment narrows nothing.
			condition := sel.TypeCondition
			if condition == "" {
				condition = typename
			}
			paths, err := extractFragment(typename, currentField, condition, sel, sel.SelectionSet, fragments, sch, opts)
			if err != nil {
				return nil, err
			}
			out = append(out, paths...)
		}
	}
	return out, nil
}

// extractFragment handles a named or inline fragment whose type condition is
// fragmentTypename, spread in a position of type typename.
func extractFragment(typename string, currentField *schema.Field, fragmentTypename string, node any, selectionSet language.SelectionSet, fragments language.FragmentDefinitionList, sch *schema.Schema, opts *Options) ([]string, error) {
	fragmentType, err := resolveType(sch, fragmentTypename)
	if err != nil {
		return nil, err
	}
	currentType, err := resolveType(sch, typename)
	if err != nil {
		return nil, err
	}

	if currentType.IsAbstract() {
		// A fragment targeting the abstract type itself is transparent; it
		// never descends into any concrete member's fields.
		if fragmentTypename == typename {
			return extract(typename, currentField, selectionSet, fragments, sch, opts)
		}
		if opts != nil && opts.AbstractTypePaths != nil {
			if currentField == nil {
				return nil, fmt.Errorf("fieldmask: no enclosing field while narrowing abstract type %q to %q; please report this as a bug", typename, fragmentTypename)
			}
			ctx := &AbstractFieldContext{
				Node:         node,
				AbstractType: currentType,
				ConcreteType: fragmentType,
				Field:        currentField,
				Schema:       sch,
			}
			childPaths := func() ([]string, error) {
				return extract(fragmentTypename, currentField, selectionSet, fragments, sch, opts)
			}
			return opts.AbstractTypePaths(ctx, childPaths)
		}
		// No hook: member narrowing contributes nothing.
		return nil, nil
	}

	// A condition naming an unrelated concrete type cannot apply here.
	if fragmentTypename != typename && !fragmentType.IsAbstract() {
		return nil, nil
	}
	return extract(typename, currentField, selectionSet, fragments, sch, opts)
}

func resolveType(sch *schema.Schema, name string) (*schema.Type, error) {
	t := sch.GetType(name)
	if t == nil {
		return nil, &UnknownTypeError{Name: name}
	}
	return t, nil
}

func resolveObjectType(sch *schema.Schema, name string) (*schema.Type, error) {
	t, err := resolveType(sch, name)
	if err != nil {
		return nil, err
	}
	if t.Kind != schema.TypeKindObject {
		return nil, &NotObjectTypeError{Name: name, Kind: t.Kind}
	}
	return t, nil
}
