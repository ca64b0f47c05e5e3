// Package protomask provides fieldmask.Options driven by protobuf message
// descriptors, so computed paths come out in wire field-name form and can be
// used directly as google.protobuf.FieldMask paths for the backing messages.
package protomask

import (
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/proto-graphql/graphql-field-mask/fieldmask"
)

// Registry maps GraphQL type names to the protobuf messages backing them.
// Returning nil means the type has no backing message.
type Registry interface {
	MessageDescriptor(typename string) protoreflect.MessageDescriptor
}

// DescriptorMap is a Registry backed by a plain map.
type DescriptorMap map[string]protoreflect.MessageDescriptor

func (m DescriptorMap) MessageDescriptor(typename string) protoreflect.MessageDescriptor {
	return m[typename]
}

// Options returns hook bindings for reg:
//
//   - Field selections are renamed to the proto field whose JSON name (or
//     proto name) matches the GraphQL field name, so paths carry snake_case
//     wire names. Fields of a registered type with no matching proto field
//     are dropped from the mask, since they exist only on the GraphQL side.
//     Fields of an unregistered type keep their schema names.
//   - Fragments narrowing an interface or union are mapped onto the oneof
//     envelope layout: the member's paths are prefixed with the name of the
//     oneof variant field that carries the member message. Without an
//     envelope message or a matching variant the fragment is dropped.
func Options(reg Registry) *fieldmask.Options {
	return &fieldmask.Options{
		FieldName:         fieldName(reg),
		AbstractTypePaths: abstractTypePaths(reg),
	}
}

func fieldName(reg Registry) func(*fieldmask.FieldContext) ([]string, error) {
	return func(ctx *fieldmask.FieldContext) ([]string, error) {
		md := reg.MessageDescriptor(ctx.ObjectType.Name)
		if md == nil {
			return []string{ctx.Definition.Name}, nil
		}
		fd := fieldByGraphQLName(md, ctx.Definition.Name)
		if fd == nil {
			return nil, nil
		}
		return []string{string(fd.Name())}, nil
	}
}

func abstractTypePaths(reg Registry) func(*fieldmask.AbstractFieldContext, fieldmask.ChildPathsFn) ([]string, error) {
	return func(ctx *fieldmask.AbstractFieldContext, childPaths fieldmask.ChildPathsFn) ([]string, error) {
		envelope := reg.MessageDescriptor(ctx.AbstractType.Name)
		if envelope == nil {
			return nil, nil
		}
		variant := variantField(envelope, reg.MessageDescriptor(ctx.ConcreteType.Name), ctx.ConcreteType.Name)
		if variant == nil {
			return nil, nil
		}
		paths, err := childPaths()
		if err != nil {
			return nil, err
		}
		prefixed := make([]string, len(paths))
		for i, p := range paths {
			prefixed[i] = string(variant.Name()) + "." + p
		}
		return prefixed, nil
	}
}

func fieldByGraphQLName(md protoreflect.MessageDescriptor, name string) protoreflect.FieldDescriptor {
	fields := md.Fields()
	if fd := fields.ByJSONName(name); fd != nil {
		return fd
	}
	return fields.ByName(protoreflect.Name(name))
}

// variantField finds the oneof choice that carries the concrete member:
// first by the variant's message type, then by the member type name itself
// (the envelope layout names each choice after its member).
func variantField(envelope, member protoreflect.MessageDescriptor, memberName string) protoreflect.FieldDescriptor {
	oneofs := envelope.Oneofs()
	for i := 0; i < oneofs.Len(); i++ {
		choices := oneofs.Get(i).Fields()
		for j := 0; j < choices.Len(); j++ {
			fd := choices.Get(j)
			if fd.Kind() != protoreflect.MessageKind {
				continue
			}
			if member != nil && fd.Message().FullName() == member.FullName() {
				return fd
			}
			if string(fd.Name()) == memberName || fd.JSONName() == memberName {
				return fd
			}
		}
	}
	return nil
}
