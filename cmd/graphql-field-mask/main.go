package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/proto-graphql/graphql-field-mask/fieldmask"
	"github.com/proto-graphql/graphql-field-mask/language"
	"github.com/proto-graphql/graphql-field-mask/schema"
)

const rootUsage = `graphql-field-mask: compute field mask paths from a GraphQL query

USAGE:
  graphql-field-mask <command> [flags]

COMMANDS:
  paths            Print the field mask paths selected by a query field
  help             Show help for any command
`

const pathsUsage = `paths FLAGS:
  -schema <file>      GraphQL SDL schema file (required)
  -query <file>       GraphQL query file (required)
  -field <name>       Top-level response name whose selection set to use (required)
  -type <TypeName>    Object type the selection resolves against
                      (default: the field's declared type from the schema)
  -operation <name>   Operation to use when the document has several
  -variables <json>   JSON object with variable values for @skip/@include
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := args[0]
	cmdArgs := args[1:]
	switch cmd {
	case "paths":
		return cmdPaths(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "paths":
		fmt.Print(pathsUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

func cmdPaths(args []string) error {
	schemaFile := ""
	queryFile := ""
	fieldName := ""
	typeName := ""
	operationName := ""
	variablesJSON := ""

	fs := flag.NewFlagSet("paths", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL schema file")
	fs.StringVar(&queryFile, "query", queryFile, "GraphQL query file")
	fs.StringVar(&fieldName, "field", fieldName, "Top-level response name")
	fs.StringVar(&typeName, "type", typeName, "Object type the selection resolves against")
	fs.StringVar(&operationName, "operation", operationName, "Operation name")
	fs.StringVar(&variablesJSON, "variables", variablesJSON, "JSON object with variable values")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, pathsUsage)
		return err
	}
	if schemaFile == "" || queryFile == "" || fieldName == "" {
		fmt.Fprint(os.Stderr, pathsUsage)
		return fmt.Errorf("-schema, -query and -field are required")
	}

	variables := map[string]any{}
	if variablesJSON != "" {
		if err := json.Unmarshal([]byte(variablesJSON), &variables); err != nil {
			return fmt.Errorf("parse variables: %w", err)
		}
	}

	paths, err := maskPaths(schemaFile, queryFile, fieldName, typeName, operationName, variables)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(os.Stdout, p)
	}
	return nil
}

func maskPaths(schemaFile, queryFile, fieldName, typeName, operationName string, variables map[string]any) ([]string, error) {
	sdl, err := os.ReadFile(schemaFile)
	if err != nil {
		return nil, err
	}
	astSchema, err := language.LoadSchema(schemaFile, string(sdl))
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	sch := schema.FromAST(astSchema)

	querySrc, err := os.ReadFile(queryFile)
	if err != nil {
		return nil, err
	}
	doc, err := language.LoadQuery(astSchema, string(querySrc))
	if err != nil {
		return nil, fmt.Errorf("load query: %w", err)
	}

	operation, err := getOperation(doc, operationName)
	if err != nil {
		return nil, err
	}
	rootTypeName, err := rootTypeFor(sch, operation.Operation)
	if err != nil {
		return nil, err
	}

	collected, err := fieldmask.CollectFieldNodes(rootTypeName, operation.SelectionSet, doc.Fragments, sch, variables)
	if err != nil {
		return nil, err
	}
	var group *fieldmask.CollectedField
	for i := range collected {
		if collected[i].ResponseName == fieldName {
			group = &collected[i]
			break
		}
	}
	if group == nil {
		return nil, fmt.Errorf("operation has no top-level field %q", fieldName)
	}

	if typeName == "" {
		rootType := sch.GetType(rootTypeName)
		fieldDef := rootType.GetField(group.Fields[0].Name)
		if fieldDef == nil {
			return nil, fmt.Errorf("type %q has no field %q", rootTypeName, group.Fields[0].Name)
		}
		typeName = fieldDef.Type.GetNamedType()
	}

	return fieldmask.Paths(typeName, group.Fields, doc.Fragments, sch, nil)
}

func getOperation(doc *language.QueryDocument, name string) (*language.OperationDefinition, error) {
	if name == "" {
		if len(doc.Operations) != 1 {
			return nil, fmt.Errorf("document has %d operations; use -operation", len(doc.Operations))
		}
		return doc.Operations[0], nil
	}
	for _, op := range doc.Operations {
		if op.Name == name {
			return op, nil
		}
	}
	return nil, fmt.Errorf("operation %q not found", name)
}

func rootTypeFor(sch *schema.Schema, op language.Operation) (string, error) {
	switch op {
	case language.Query:
		if sch.QueryType != "" {
			return sch.QueryType, nil
		}
	case language.Mutation:
		if sch.MutationType != "" {
			return sch.MutationType, nil
		}
	case language.Subscription:
		if sch.SubscriptionType != "" {
			return sch.SubscriptionType, nil
		}
	}
	return "", fmt.Errorf("schema has no root type for %s operation", op)
}
