package schema

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/proto-graphql/graphql-field-mask/language"
)

// Load parses and validates an SDL source and builds a Schema from it.
func Load(name, source string) (*Schema, error) {
	sch, err := language.LoadSchema(name, source)
	if err != nil {
		return nil, err
	}
	return FromAST(sch), nil
}

// FromAST converts a validated gqlparser schema into the extractor's model.
func FromAST(src *ast.Schema) *Schema {
	s := NewSchema(src.Description)
	if src.Query != nil {
		s.SetQueryType(src.Query.Name)
	}
	if src.Mutation != nil {
		s.SetMutationType(src.Mutation.Name)
	}
	if src.Subscription != nil {
		s.SetSubscriptionType(src.Subscription.Name)
	}

	// Builtins
	s.AddType(stringType).
		AddType(intType).
		AddType(floatType).
		AddType(booleanType).
		AddType(idType)

	for name, def := range src.Types {
		if strings.HasPrefix(name, "__") {
			continue
		}
		if existing := s.Types[name]; existing != nil && def.BuiltIn {
			continue
		}
		s.AddType(buildType(src, def))
	}
	return s
}

func buildType(src *ast.Schema, def *ast.Definition) *Type {
	t := NewType(def.Name, buildKind(def.Kind), def.Description)

	switch def.Kind {
	case ast.Object:
		for _, name := range def.Interfaces {
			t.AddInterface(name)
		}
		buildFields(t, def)
	case ast.Interface:
		buildFields(t, def)
		for _, possible := range src.PossibleTypes[def.Name] {
			t.AddPossibleType(possible.Name)
		}
	case ast.Union:
		for _, name := range def.Types {
			t.AddPossibleType(name)
		}
	}
	return t
}

func buildFields(t *Type, def *ast.Definition) {
	for _, fieldDef := range def.Fields {
		if strings.HasPrefix(fieldDef.Name, "__") {
			continue
		}
		t.AddField(&Field{
			Name:        fieldDef.Name,
			Description: fieldDef.Description,
			Type:        typeRefFromAST(fieldDef.Type),
		})
	}
}

func buildKind(kind ast.DefinitionKind) TypeKind {
	switch kind {
	case ast.Object:
		return TypeKindObject
	case ast.Interface:
		return TypeKindInterface
	case ast.Union:
		return TypeKindUnion
	case ast.Enum:
		return TypeKindEnum
	case ast.InputObject:
		return TypeKindInputObject
	default:
		return TypeKindScalar
	}
}

func typeRefFromAST(t *ast.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return NonNullType(typeRefFromAST(&ast.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return NamedType(t.NamedType)
	}
	if t.Elem != nil {
		return ListType(typeRefFromAST(t.Elem))
	}
	return nil
}
