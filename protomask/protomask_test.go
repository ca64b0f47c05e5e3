package protomask

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jhump/protoreflect/v2/protobuilder"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/proto-graphql/graphql-field-mask/fieldmask"
	"github.com/proto-graphql/graphql-field-mask/language"
	"github.com/proto-graphql/graphql-field-mask/schema"
)

func newTestRegistry(t *testing.T) DescriptorMap {
	t.Helper()

	newScalarField := func(name string, number int) *protobuilder.FieldBuilder {
		fb := protobuilder.NewField(protoreflect.Name(name), protobuilder.FieldTypeScalar(protoreflect.StringKind))
		fb.SetNumber(protoreflect.FieldNumber(number))
		return fb
	}

	profile := protobuilder.NewMessage("ProfileSource")
	profile.AddField(newScalarField("bio", 1))
	profile.AddField(newScalarField("avatar_url", 2))

	user := protobuilder.NewMessage("UserSource")
	user.AddField(newScalarField("id", 1))
	user.AddField(newScalarField("display_name", 2))
	user.AddField(newScalarField("email", 3))
	profileField := protobuilder.NewField("profile", protobuilder.FieldTypeMessage(profile))
	profileField.SetNumber(4)
	user.AddField(profileField)

	movie := protobuilder.NewMessage("MovieSource")
	movie.AddField(newScalarField("title", 1))
	movie.AddField(newScalarField("runtime", 2))

	series := protobuilder.NewMessage("SeriesSource")
	series.AddField(newScalarField("title", 1))
	series.AddField(newScalarField("episodes", 2))

	content := protobuilder.NewMessage("ContentSource")
	value := protobuilder.NewOneof("value")
	content.AddOneOf(value)
	movieChoice := protobuilder.NewField("Movie", protobuilder.FieldTypeMessage(movie))
	movieChoice.SetNumber(1)
	value.AddChoice(movieChoice)
	seriesChoice := protobuilder.NewField("Series", protobuilder.FieldTypeMessage(series))
	seriesChoice.SetNumber(2)
	value.AddChoice(seriesChoice)

	file := protobuilder.NewFile("masktest.proto")
	file.SetPackageName("masktest")
	file.SetSyntax(protoreflect.Proto3)
	file.AddMessage(profile)
	file.AddMessage(user)
	file.AddMessage(movie)
	file.AddMessage(series)
	file.AddMessage(content)

	fd, err := file.Build()
	require.NoError(t, err)

	return DescriptorMap{
		"User":    fd.Messages().ByName("UserSource"),
		"Profile": fd.Messages().ByName("ProfileSource"),
		"Movie":   fd.Messages().ByName("MovieSource"),
		"Series":  fd.Messages().ByName("SeriesSource"),
		"Content": fd.Messages().ByName("ContentSource"),
	}
}

func newTestSchema() *schema.Schema {
	sch := schema.NewSchema("")
	sch.AddType(schema.NewType("String", schema.TypeKindScalar, ""))
	sch.AddType(schema.NewType("Int", schema.TypeKindScalar, ""))
	sch.AddType(schema.NewType("Query", schema.TypeKindObject, "").
		AddField(&schema.Field{Name: "user", Type: schema.NamedType("User")}).
		AddField(&schema.Field{Name: "content", Type: schema.NamedType("Content")}))
	sch.AddType(schema.NewType("User", schema.TypeKindObject, "").
		AddField(&schema.Field{Name: "id", Type: schema.NamedType("String")}).
		AddField(&schema.Field{Name: "displayName", Type: schema.NamedType("String")}).
		AddField(&schema.Field{Name: "email", Type: schema.NamedType("String")}).
		AddField(&schema.Field{Name: "followerCount", Type: schema.NamedType("Int")}).
		AddField(&schema.Field{Name: "profile", Type: schema.NamedType("Profile")}))
	sch.AddType(schema.NewType("Profile", schema.TypeKindObject, "").
		AddField(&schema.Field{Name: "bio", Type: schema.NamedType("String")}).
		AddField(&schema.Field{Name: "avatarUrl", Type: schema.NamedType("String")}))
	sch.AddType(schema.NewType("Movie", schema.TypeKindObject, "").
		AddField(&schema.Field{Name: "title", Type: schema.NamedType("String")}).
		AddField(&schema.Field{Name: "runtime", Type: schema.NamedType("Int")}))
	sch.AddType(schema.NewType("Series", schema.TypeKindObject, "").
		AddField(&schema.Field{Name: "title", Type: schema.NamedType("String")}).
		AddField(&schema.Field{Name: "episodes", Type: schema.NamedType("Int")}))
	sch.AddType(schema.NewType("Content", schema.TypeKindUnion, "").
		AddPossibleType("Movie").
		AddPossibleType("Series"))
	return sch
}

func pathsForQuery(t *testing.T, typename, q string, opts *fieldmask.Options) ([]string, error) {
	t.Helper()
	doc, err := language.ParseQuery(q)
	require.NoError(t, err)
	var fields []*language.Field
	for _, sel := range doc.Operations[0].SelectionSet {
		fields = append(fields, sel.(*language.Field))
	}
	return fieldmask.Paths(typename, fields, doc.Fragments, newTestSchema(), opts)
}

func TestOptions_WireFieldNames(t *testing.T) {
	opts := Options(newTestRegistry(t))

	got, err := pathsForQuery(t, "User", `{ u { displayName email profile { avatarUrl bio } } }`, opts)
	require.NoError(t, err)

	want := []string{"display_name", "email", "profile.avatar_url", "profile.bio"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestOptions_UnbackedFieldDropped(t *testing.T) {
	opts := Options(newTestRegistry(t))

	got, err := pathsForQuery(t, "User", `{ u { displayName followerCount } }`, opts)
	require.NoError(t, err)

	want := []string{"display_name"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestOptions_UnregisteredTypeKeepsSchemaNames(t *testing.T) {
	// Query has no backing message; its own fields pass through untouched
	// while registered child types still map to wire names.
	opts := Options(newTestRegistry(t))

	got, err := pathsForQuery(t, "Query", `{ q { user { displayName } } }`, opts)
	require.NoError(t, err)

	want := []string{"user.display_name"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestOptions_AbstractEnvelope(t *testing.T) {
	opts := Options(newTestRegistry(t))

	got, err := pathsForQuery(t, "Query", `{ q { content {
		... on Movie { title }
		... on Series { episodes }
	} } }`, opts)
	require.NoError(t, err)

	want := []string{"content.Movie.title", "content.Series.episodes"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestOptions_AbstractWithoutEnvelopeDropped(t *testing.T) {
	reg := newTestRegistry(t)
	delete(reg, "Content")
	opts := Options(reg)

	got, err := pathsForQuery(t, "Query", `{ q { content { ... on Movie { title } } } }`, opts)
	require.NoError(t, err)
	require.Empty(t, got)
}
