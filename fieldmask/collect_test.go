package fieldmask

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func collectedNames(fields []CollectedField) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.ResponseName)
	}
	return names
}

func TestCollectFieldNodes_GroupsByResponseName(t *testing.T) {
	sch := newUserSchema()
	doc := mustParseQuery(t, `
		{ user { id } ...F user { name } }
		fragment F on Query { user { email } }
	`)

	got, err := CollectFieldNodes("Query", doc.Operations[0].SelectionSet, doc.Fragments, sch, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"user"}, collectedNames(got))
	require.Len(t, got[0].Fields, 3, "all occurrences of the response name are grouped")

	// The grouped nodes are exactly what Paths expects.
	paths, err := Paths("User", got[0].Fields, doc.Fragments, sch, nil)
	require.NoError(t, err)
	want := []string{"id", "email", "name"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectFieldNodes_AliasesAreDistinct(t *testing.T) {
	sch := newUserSchema()
	doc := mustParseQuery(t, `{ a: user { id } b: user { id } }`)

	got, err := CollectFieldNodes("Query", doc.Operations[0].SelectionSet, doc.Fragments, sch, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, collectedNames(got))
}

func TestCollectFieldNodes_TypeConditions(t *testing.T) {
	sch := newUserSchema()

	t.Run("abstract condition applies to its possible types", func(t *testing.T) {
		doc := mustParseQuery(t, `
			{ ...NodeFields name }
			fragment NodeFields on Node { id }
		`)
		got, err := CollectFieldNodes("User", doc.Operations[0].SelectionSet, doc.Fragments, sch, nil)
		require.NoError(t, err)
		require.Equal(t, []string{"id", "name"}, collectedNames(got))
	})

	t.Run("unrelated concrete condition is skipped", func(t *testing.T) {
		doc := mustParseQuery(t, `{ name ... on Movie { title } }`)
		got, err := CollectFieldNodes("User", doc.Operations[0].SelectionSet, doc.Fragments, sch, nil)
		require.NoError(t, err)
		require.Equal(t, []string{"name"}, collectedNames(got))
	})
}

func TestCollectFieldNodes_Directives(t *testing.T) {
	sch := newUserSchema()
	doc := mustParseQuery(t, `
		query ($yes: Boolean!, $no: Boolean!) {
			a: name
			b: name @skip(if: true)
			c: name @include(if: false)
			d: name @skip(if: $yes)
			e: name @include(if: $no)
			f: name @include(if: $yes)
		}
	`)

	vars := map[string]any{"yes": true, "no": false}
	got, err := CollectFieldNodes("User", doc.Operations[0].SelectionSet, doc.Fragments, sch, vars)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "f"}, collectedNames(got))
}

func TestCollectFieldNodes_FragmentCycle(t *testing.T) {
	sch := newUserSchema()
	doc := mustParseQuery(t, `
		{ ...A }
		fragment A on User { id ...B }
		fragment B on User { name ...A }
	`)

	got, err := CollectFieldNodes("User", doc.Operations[0].SelectionSet, doc.Fragments, sch, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "name"}, collectedNames(got))
}

func TestCollectFieldNodes_UnknownFragment(t *testing.T) {
	sch := newUserSchema()
	doc := mustParseQuery(t, `{ ...Nope }`)

	_, err := CollectFieldNodes("User", doc.Operations[0].SelectionSet, doc.Fragments, sch, nil)
	var unknownFragment *UnknownFragmentError
	require.ErrorAs(t, err, &unknownFragment)
	require.Equal(t, "Nope", unknownFragment.Name)
}
