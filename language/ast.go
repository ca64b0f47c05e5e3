package language

import "github.com/vektah/gqlparser/v2/ast"

type (
	QueryDocument          = ast.QueryDocument
	SchemaDocument         = ast.SchemaDocument
	OperationDefinition    = ast.OperationDefinition
	SelectionSet           = ast.SelectionSet
	Selection              = ast.Selection
	Field                  = ast.Field
	InlineFragment         = ast.InlineFragment
	FragmentDefinition     = ast.FragmentDefinition
	FragmentDefinitionList = ast.FragmentDefinitionList
	FragmentSpread         = ast.FragmentSpread
	Directive              = ast.Directive
	DirectiveList          = ast.DirectiveList
	Argument               = ast.Argument
	ArgumentList           = ast.ArgumentList
	Value                  = ast.Value
	FieldDefinition        = ast.FieldDefinition
	Type                   = ast.Type
	Definition             = ast.Definition
	Position               = ast.Position
)

type DefinitionKind = ast.DefinitionKind

type Operation = ast.Operation

type ValueKind = ast.ValueKind

const (
	Variable     ValueKind = ast.Variable
	BooleanValue ValueKind = ast.BooleanValue
)

const (
	Query        Operation = ast.Query
	Mutation     Operation = ast.Mutation
	Subscription Operation = ast.Subscription

	Object    DefinitionKind = ast.Object
	Interface DefinitionKind = ast.Interface
	Union     DefinitionKind = ast.Union
	Scalar    DefinitionKind = ast.Scalar
	Enum      DefinitionKind = ast.Enum
)
