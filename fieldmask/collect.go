package fieldmask

import (
	"github.com/proto-graphql/graphql-field-mask/language"
	"github.com/proto-graphql/graphql-field-mask/schema"
)

// CollectedField groups the AST occurrences of one response name.
type CollectedField struct {
	ResponseName string
	Fields       []*language.Field
}

// collectedFieldMap preserves field order from the original query
type collectedFieldMap struct {
	fields []CollectedField
	index  map[string]int
}

func newCollectedFieldMap() *collectedFieldMap {
	return &collectedFieldMap{
		fields: make([]CollectedField, 0),
		index:  make(map[string]int),
	}
}

func (cfm *collectedFieldMap) add(responseName string, field *language.Field) {
	if idx, exists := cfm.index[responseName]; exists {
		cfm.fields[idx].Fields = append(cfm.fields[idx].Fields, field)
	} else {
		cfm.index[responseName] = len(cfm.fields)
		cfm.fields = append(cfm.fields, CollectedField{
			ResponseName: responseName,
			Fields:       []*language.Field{field},
		})
	}
}

// CollectFieldNodes groups the field selections of selectionSet by response
// name, inlining fragment spreads and inline fragments whose type condition
// applies to typename. The groups are what Paths expects as its field nodes:
// every AST occurrence of one aliased field, in query order.
//
// @skip and @include are honored, looking up variable references in
// variables. Fragment cycles are broken by visiting each named fragment at
// most once.
func CollectFieldNodes(typename string, selectionSet language.SelectionSet, fragments language.FragmentDefinitionList, sch *schema.Schema, variables map[string]any) ([]CollectedField, error) {
	groupedFields := newCollectedFieldMap()
	visitedFragments := make(map[string]bool)

	if err := collectFieldNodes(typename, selectionSet, fragments, sch, variables, groupedFields, visitedFragments); err != nil {
		return nil, err
	}
	return groupedFields.fields, nil
}

func collectFieldNodes(typename string, selectionSet language.SelectionSet, fragments language.FragmentDefinitionList, sch *schema.Schema, variables map[string]any, groupedFields *collectedFieldMap, visitedFragments map[string]bool) error {
	for _, selection := range selectionSet {
		switch sel := selection.(type) {
		case *language.Field:
			if !shouldIncludeNode(sel.Directives, variables) {
				continue
			}
			responseName := sel.Alias
			if responseName == "" {
				responseName = sel.Name
			}
			groupedFields.add(responseName, sel)

		case *language.InlineFragment:
			if !shouldIncludeNode(sel.Directives, variables) {
				continue
			}
			applies, err := conditionAppliesTo(sel.TypeCondition, typename, sch)
			if err != nil {
				return err
			}
			if !applies {
				continue
			}
			if err := collectFieldNodes(typename, sel.SelectionSet, fragments, sch, variables, groupedFields, visitedFragments); err != nil {
				return err
			}

		case *language.FragmentSpread:
			if !shouldIncludeNode(sel.Directives, variables) {
				continue
			}
			if visitedFragments[sel.Name] {
				continue
			}
			visitedFragments[sel.Name] = true

			frag := fragments.ForName(sel.Name)
			if frag == nil {
				return &UnknownFragmentError{Name: sel.Name}
			}
			applies, err := conditionAppliesTo(frag.TypeCondition, typename, sch)
			if err != nil {
				return err
			}
			if !applies {
				continue
			}
			if !shouldIncludeNode(frag.Directives, variables) {
				continue
			}
			if err := collectFieldNodes(typename, frag.SelectionSet, fragments, sch, variables, groupedFields, visitedFragments); err != nil {
				return err
			}
		}
	}
	return nil
}

// conditionAppliesTo reports whether a fragment type condition selects
// fields for typename: an empty or equal condition always does, and an
// abstract condition does when typename is one of its possible types.
func conditionAppliesTo(condition, typename string, sch *schema.Schema) (bool, error) {
	if condition == "" || condition == typename {
		return true, nil
	}
	conditionType, err := resolveType(sch, condition)
	if err != nil {
		return false, err
	}
	return conditionType.IsAbstract() && conditionType.HasPossibleType(typename), nil
}

// shouldIncludeNode checks if a node should be included based on directives
func shouldIncludeNode(directives language.DirectiveList, variables map[string]any) bool {
	if skip := directives.ForName("skip"); skip != nil {
		if v, ok := directiveArgumentValue(skip, "if", variables); ok {
			if b, ok := v.(bool); ok && b {
				return false
			}
		}
	}
	if include := directives.ForName("include"); include != nil {
		if v, ok := directiveArgumentValue(include, "if", variables); ok {
			if b, ok := v.(bool); ok && !b {
				return false
			}
		}
	}
	return true
}

func directiveArgumentValue(directive *language.Directive, argName string, variables map[string]any) (any, bool) {
	for _, arg := range directive.Arguments {
		if arg.Name != argName {
			continue
		}
		switch arg.Value.Kind {
		case language.Variable:
			v, ok := variables[arg.Value.Raw]
			return v, ok
		case language.BooleanValue:
			return arg.Value.Raw == "true", true
		default:
			return nil, false
		}
	}
	return nil, false
}
