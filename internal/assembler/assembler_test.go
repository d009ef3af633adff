package assembler

import (
	"slices"
	"testing"

	"github.com/gosmithy/gosmithy/internal/parser"
	"github.com/gosmithy/gosmithy/internal/testutil"
	"github.com/gosmithy/gosmithy/internal/types"
	"github.com/gosmithy/gosmithy/model"
)

func assembleSources(sources map[string]string) *model.Model {
	paths := make([]string, 0, len(sources))
	for path := range sources {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	files := make([]File, 0, len(sources))
	for _, path := range paths {
		src := []byte(sources[path])
		p := parser.New(path, src, nil, nil)
		files = append(files, File{Path: path, Source: src, AST: p.ParseFile()})
	}
	return Assemble(files, nil)
}

func assembleOne(text string) *model.Model {
	return assembleSources(map[string]string{"main.smithy": text})
}

func diagCodes(m *model.Model) []string {
	codes := make([]string, len(m.Diagnostics))
	for i, d := range m.Diagnostics {
		codes[i] = d.Code
	}
	return codes
}

func TestAssembleSimpleModel(t *testing.T) {
	m := assembleOne(`$version: "2.0"

namespace example.weather

string CityId
`)
	testutil.Len(t, m.Diagnostics, 0, "clean assembly")
	testutil.Equal(t, "2.0", m.Version, "version")
	testutil.Equal(t, 1, m.NumShapes(), "one shape")

	shape := m.Shape(model.ShapeID{Namespace: "example.weather", Name: "CityId"})
	testutil.NotNil(t, shape, "shape registered")
	testutil.Equal(t, model.ShapeTypeString, shape.Type, "shape type")
	testutil.Equal(t, "main.smithy", shape.Location.File, "location file")
	testutil.Equal(t, 5, shape.Location.Line, "location line")
}

func TestUnsupportedVersion(t *testing.T) {
	m := assembleOne(`$version: "1.0"

namespace example
`)
	testutil.SliceEqual(t, []string{types.DiagUnsupportedVersion}, diagCodes(m), "codes")
	testutil.Equal(t, "", m.Version, "bad version not adopted")
}

func TestRelativeTraitResolvesToCurrentNamespace(t *testing.T) {
	m := assembleOne(`namespace example

@trait
structure hints {}

@hints
string Foo
`)
	testutil.Len(t, m.Diagnostics, 0, "clean assembly")
	foo := m.Shape(model.ShapeID{Namespace: "example", Name: "Foo"})
	testutil.Len(t, foo.Traits, 1, "one trait")
	testutil.Equal(t, model.ShapeID{Namespace: "example", Name: "hints"}, foo.Traits[0].ID,
		"resolved against current namespace")
}

func TestRelativeTraitResolvesThroughUse(t *testing.T) {
	m := assembleSources(map[string]string{
		"a.smithy": `namespace lib

@trait
structure hints {}
`,
		"b.smithy": `namespace app

use lib#hints

@hints
string Foo
`,
	})
	testutil.Len(t, m.Diagnostics, 0, "clean assembly")
	foo := m.Shape(model.ShapeID{Namespace: "app", Name: "Foo"})
	testutil.Equal(t, model.ShapeID{Namespace: "lib", Name: "hints"}, foo.Traits[0].ID,
		"resolved through use")
}

func TestRelativeTraitFallsBackToPrelude(t *testing.T) {
	m := assembleOne(`namespace example

@required
string Foo
`)
	testutil.Len(t, m.Diagnostics, 0, "clean assembly")
	foo := m.Shape(model.ShapeID{Namespace: "example", Name: "Foo"})
	testutil.Equal(t, model.ShapeID{Namespace: "smithy.api", Name: "required"}, foo.Traits[0].ID,
		"prelude fallback")
}

func TestUnresolvedTrait(t *testing.T) {
	m := assembleOne(`namespace example

@noSuchTrait
string Foo
`)
	testutil.SliceEqual(t, []string{types.DiagUnresolvedTrait}, diagCodes(m), "codes")
}

func TestDocCommentBecomesDocumentationTrait(t *testing.T) {
	m := assembleOne(`namespace example

/// A city identifier.
string CityId
`)
	shape := m.Shape(model.ShapeID{Namespace: "example", Name: "CityId"})
	testutil.Equal(t, "A city identifier.", shape.Documentation(), "documentation text")
}

func TestForwardReferenceRewritten(t *testing.T) {
	m := assembleOne(`namespace example

service Weather {
    operations: [GetForecast]
}

operation GetForecast {}
`)
	testutil.Len(t, m.Diagnostics, 0, "clean assembly")
	weather := m.Shape(model.ShapeID{Namespace: "example", Name: "Weather"})
	ops := weather.Property("operations").(model.ArrayNode)
	ref := ops.Elems[0].(model.StringNode)
	testutil.True(t, ref.IsShapeRef, "still marked as reference")
	testutil.Equal(t, "example#GetForecast", ref.Value, "rewritten to absolute ID")
}

func TestForwardReferenceToPrelude(t *testing.T) {
	m := assembleOne(`namespace example

structure Holder {
    item: String
}
`)
	testutil.Len(t, m.Diagnostics, 0, "clean assembly")
	holder := m.Shape(model.ShapeID{Namespace: "example", Name: "Holder"})
	testutil.Equal(t, model.ShapeID{Namespace: "smithy.api", Name: "String"},
		holder.Members[0].Target, "member target resolved to prelude")
}

func TestUnresolvedShapeReference(t *testing.T) {
	m := assembleOne(`namespace example

structure Holder {
    item: Missing
}
`)
	testutil.SliceEqual(t, []string{types.DiagUnresolvedShape}, diagCodes(m), "codes")
	holder := m.Shape(model.ShapeID{Namespace: "example", Name: "Holder"})
	testutil.Equal(t, "example#Missing", holder.Members[0].Target.String(),
		"falls back to the current namespace")
}

func TestDuplicateShape(t *testing.T) {
	m := assembleSources(map[string]string{
		"a.smithy": "namespace example\n\nstring Foo\n",
		"b.smithy": "namespace example\n\ninteger Foo\n",
	})
	testutil.SliceEqual(t, []string{types.DiagDuplicateShape}, diagCodes(m), "codes")
	foo := m.Shape(model.ShapeID{Namespace: "example", Name: "Foo"})
	testutil.Equal(t, model.ShapeTypeString, foo.Type, "first definition wins")
}

func TestDuplicateTrait(t *testing.T) {
	m := assembleOne(`namespace example

@required
@required
string Foo
`)
	testutil.SliceEqual(t, []string{types.DiagDuplicateTrait}, diagCodes(m), "codes")
	foo := m.Shape(model.ShapeID{Namespace: "example", Name: "Foo"})
	testutil.Len(t, foo.Traits, 1, "first application kept")
}

func TestApplyTrait(t *testing.T) {
	m := assembleOne(`namespace example

string Foo

apply Foo @sensitive
`)
	testutil.Len(t, m.Diagnostics, 0, "clean assembly")
	foo := m.Shape(model.ShapeID{Namespace: "example", Name: "Foo"})
	testutil.Len(t, foo.Traits, 1, "applied trait")
	testutil.Equal(t, "smithy.api#sensitive", foo.Traits[0].ID.String(), "trait ID")
}

func TestApplyToMember(t *testing.T) {
	m := assembleOne(`namespace example

structure Foo {
    bar: String
}

apply Foo$bar @sensitive
`)
	testutil.Len(t, m.Diagnostics, 0, "clean assembly")
	foo := m.Shape(model.ShapeID{Namespace: "example", Name: "Foo"})
	testutil.Len(t, foo.Members[0].Traits, 1, "member trait applied")
}

func TestApplyDuplicateTrait(t *testing.T) {
	m := assembleOne(`namespace example

@sensitive
string Foo

apply Foo @sensitive
`)
	testutil.SliceEqual(t, []string{types.DiagDuplicateTrait}, diagCodes(m), "codes")
}

func TestApplyUnknownTarget(t *testing.T) {
	m := assembleOne(`namespace example

apply Missing @sensitive
`)
	codes := diagCodes(m)
	testutil.True(t, len(codes) >= 1, "diagnosed")
	testutil.Equal(t, types.DiagUnresolvedShape, codes[len(codes)-1], "unresolved apply target")
}

func TestDuplicateUse(t *testing.T) {
	m := assembleOne(`namespace example

use lib.a#Thing
use lib.b#Thing

structure Holder {
    item: Thing
}
`)
	testutil.SliceEqual(t, []string{types.DiagDuplicateUse}, diagCodes(m), "codes")
	holder := m.Shape(model.ShapeID{Namespace: "example", Name: "Holder"})
	testutil.Equal(t, "lib.a#Thing", holder.Members[0].Target.String(), "first use wins")
}

func TestBadUseTarget(t *testing.T) {
	m := assembleOne(`namespace example

use Thing
`)
	testutil.SliceEqual(t, []string{types.DiagBadUseTarget}, diagCodes(m), "codes")
}

func TestMetadataMerge(t *testing.T) {
	m := assembleSources(map[string]string{
		"a.smithy": `metadata alpha = 1` + "\n",
		"b.smithy": `metadata beta = 2` + "\n",
	})
	testutil.Len(t, m.Diagnostics, 0, "clean assembly")
	testutil.Equal(t, 2, len(m.Metadata), "both keys merged")
}

func TestMetadataConflict(t *testing.T) {
	m := assembleSources(map[string]string{
		"a.smithy": `metadata key = 1` + "\n",
		"b.smithy": `metadata key = 2` + "\n",
	})
	testutil.SliceEqual(t, []string{types.DiagMetadataConflict}, diagCodes(m), "codes")
	num := m.Metadata["key"].(model.NumberNode)
	testutil.Equal(t, int64(1), num.Int, "first definition wins")
}

func TestParseDiagnosticsLowered(t *testing.T) {
	m := assembleOne("namespace example\n\nstructure Foo {\n    a: String\n    a: String\n}\n")
	testutil.SliceEqual(t, []string{types.DiagDuplicateMember}, diagCodes(m), "codes")
	d := m.Diagnostics[0]
	testutil.Equal(t, 5, d.Location.Line, "line of the second member")
	testutil.Equal(t, 5, d.Location.Column, "column of the second member")
	testutil.True(t, m.HasErrors(), "model has errors")
}

func TestEnumShape(t *testing.T) {
	m := assembleOne(`namespace example

enum Precipitation {
    RAIN
    SNOW = "snow"
}
`)
	testutil.Len(t, m.Diagnostics, 0, "clean assembly")
	enum := m.Shape(model.ShapeID{Namespace: "example", Name: "Precipitation"})
	testutil.Len(t, enum.Members, 2, "members")
	testutil.Nil(t, enum.Members[0].EnumValue, "bare member")
	v := enum.Members[1].EnumValue.(model.StringNode)
	testutil.Equal(t, "snow", v.Value, "explicit value")
}

func TestShapesSortedByID(t *testing.T) {
	m := assembleOne(`namespace example

string Zebra
string Alpha
`)
	shapes := m.Shapes()
	testutil.Equal(t, "example#Alpha", shapes[0].ID.String(), "sorted first")
	testutil.Equal(t, "example#Zebra", shapes[1].ID.String(), "sorted second")
}

func TestLineIndex(t *testing.T) {
	ix := newLineIndex("f.smithy", []byte("ab\ncd\nef"))
	loc := ix.locate(types.NewSpan(0, 1))
	testutil.Equal(t, 1, loc.Line, "first line")
	testutil.Equal(t, 1, loc.Column, "first column")

	loc = ix.locate(types.NewSpan(4, 5))
	testutil.Equal(t, 2, loc.Line, "second line")
	testutil.Equal(t, 2, loc.Column, "second column")

	loc = ix.locate(types.NewSpan(6, 7))
	testutil.Equal(t, 3, loc.Line, "third line")
}
