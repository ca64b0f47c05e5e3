package fieldmask

import (
	"fmt"

	"github.com/proto-graphql/graphql-field-mask/schema"
)

// UnknownTypeError is returned when a type name cannot be found in the
// schema, either for the root typename or for a fragment's type condition.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %q", e.Name)
}

// NotObjectTypeError is returned when a name expected to denote an object
// type resolves to something else.
type NotObjectTypeError struct {
	Name string
	Kind schema.TypeKind
}

func (e *NotObjectTypeError) Error() string {
	return fmt.Sprintf("type %q is %s, not %s", e.Name, e.Kind, schema.TypeKindObject)
}

// UnknownFieldError is returned when a field selection names a field absent
// from the resolved object type. It usually means the caller passed a
// typename that does not match the type the query was written against.
type UnknownFieldError struct {
	TypeName  string
	FieldName string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("type %q has no field %q", e.TypeName, e.FieldName)
}

// UnknownFragmentError is returned when a fragment spread names a fragment
// absent from the supplied fragment list.
type UnknownFragmentError struct {
	Name string
}

func (e *UnknownFragmentError) Error() string {
	return fmt.Sprintf("unknown fragment %q", e.Name)
}
