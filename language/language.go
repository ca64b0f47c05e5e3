package language

import (
	gqlparser "github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func ParseSchema(name, source string) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadSchema parses and validates an SDL schema source.
func LoadSchema(name, source string) (*ast.Schema, error) {
	sch, err := gqlparser.LoadSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return sch, nil
}

// LoadQuery parses a query and validates it against the given schema.
func LoadQuery(sch *ast.Schema, source string) (*QueryDocument, error) {
	doc, errs := gqlparser.LoadQuery(sch, source)
	if len(errs) > 0 {
		return nil, errs
	}
	return doc, nil
}
