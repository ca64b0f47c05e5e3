package fieldmask

import (
	"testing"

	"github.com/proto-graphql/graphql-field-mask/language"
	"github.com/proto-graphql/graphql-field-mask/schema"
)

// mustParseQuery parses a GraphQL query and fails the test on error.
func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	d, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return d
}

// rootFieldNodes returns the top-level field nodes of the document's only
// operation, grouped under one response name the way a resolver sees them.
func rootFieldNodes(t *testing.T, doc *language.QueryDocument) []*language.Field {
	t.Helper()
	var fields []*language.Field
	for _, sel := range doc.Operations[0].SelectionSet {
		f, ok := sel.(*language.Field)
		if !ok {
			t.Fatalf("top-level selection is %T, want *language.Field", sel)
		}
		fields = append(fields, f)
	}
	return fields
}

func newTestSchema(types ...*schema.Type) *schema.Schema {
	sch := schema.NewSchema("")
	sch.AddType(schema.NewType("String", schema.TypeKindScalar, ""))
	sch.AddType(schema.NewType("Int", schema.TypeKindScalar, ""))
	for _, typ := range types {
		sch.AddType(typ)
	}
	return sch
}

func newObjectType(name string, fields ...*schema.Field) *schema.Type {
	typ := schema.NewType(name, schema.TypeKindObject, "")
	for _, field := range fields {
		typ.AddField(field)
	}
	return typ
}

func newField(name, typeName string) *schema.Field {
	return &schema.Field{Name: name, Type: schema.NamedType(typeName)}
}

func newListField(name, typeName string) *schema.Field {
	return &schema.Field{Name: name, Type: schema.ListType(schema.NamedType(typeName))}
}
