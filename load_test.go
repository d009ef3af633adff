package gosmithy

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gosmithy/gosmithy/model"
)

func TestParseString(t *testing.T) {
	m, err := ParseString("city.smithy", `$version: "2.0"

namespace example.city

/// A city identifier.
@pattern("^[A-Za-z0-9 ]+$")
string CityId
`)
	if err != nil {
		t.Fatal(err)
	}
	if m.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", m.Diagnostics)
	}
	if m.Version != "2.0" {
		t.Errorf("version = %q", m.Version)
	}
	shape := m.Shape(model.ParseShapeID("example.city#CityId"))
	if shape == nil {
		t.Fatal("CityId not assembled")
	}
	if shape.Type != model.ShapeTypeString {
		t.Errorf("type = %v", shape.Type)
	}
	if shape.Documentation() != "A city identifier." {
		t.Errorf("documentation = %q", shape.Documentation())
	}
	if !shape.HasTrait(model.ParseShapeID("smithy.api#pattern")) {
		t.Error("pattern trait missing")
	}
}

func TestParseStringReportsDiagnostics(t *testing.T) {
	m, err := ParseString("bad.smithy", `$version: "2.0"

namespace example

@tags(["a", "a"
string Broken
`)
	if err != nil {
		t.Fatal(err)
	}
	if !m.HasErrors() {
		t.Fatal("expected diagnostics for the unclosed array")
	}
	d := m.Diagnostics[0]
	if d.Location.File != "bad.smithy" {
		t.Errorf("diagnostic file = %q", d.Location.File)
	}
}

func TestLoadMultipleFiles(t *testing.T) {
	m, err := Load(Mem(map[string][]byte{
		"a.smithy": []byte(`$version: "2.0"

namespace example.a

use example.b#Name

structure Person {
    name: Name
}
`),
		"b.smithy": []byte(`$version: "2.0"

namespace example.b

string Name
`),
	}))
	if err != nil {
		t.Fatal(err)
	}
	if m.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", m.Diagnostics)
	}
	person := m.Shape(model.ParseShapeID("example.a#Person"))
	if person == nil {
		t.Fatal("Person not assembled")
	}
	member := person.Member("name")
	if member == nil {
		t.Fatal("member name missing")
	}
	if got := member.Target.String(); got != "example.b#Name" {
		t.Errorf("target = %q", got)
	}
}

func TestLoadNoSources(t *testing.T) {
	if _, err := Load(nil); err != ErrNoSources {
		t.Errorf("err = %v, want ErrNoSources", err)
	}
}

func TestLoadContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadContext(ctx, Mem(map[string][]byte{
		"a.smithy": []byte("namespace example"),
	}))
	if err == nil {
		t.Fatal("canceled context must fail the load")
	}
}

func TestLoadFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"one.smithy": "$version: \"2.0\"\n\nnamespace example\n\ninteger Count\n",
	})
	m, err := LoadFile(filepath.Join(dir, "one.smithy"))
	if err != nil {
		t.Fatal(err)
	}
	if m.NumShapes() != 1 {
		t.Fatalf("shapes = %d", m.NumShapes())
	}
}

func TestLoadDeterministicOrder(t *testing.T) {
	files := map[string][]byte{
		// Both files define example#Dup; the lexically first file wins.
		"a.smithy": []byte("$version: \"2.0\"\n\nnamespace example\n\nstring Dup\n"),
		"b.smithy": []byte("$version: \"2.0\"\n\nnamespace example\n\ninteger Dup\n"),
	}
	for i := 0; i < 4; i++ {
		m, err := Load(Mem(files))
		if err != nil {
			t.Fatal(err)
		}
		shape := m.Shape(model.ParseShapeID("example#Dup"))
		if shape == nil {
			t.Fatal("Dup not assembled")
		}
		if shape.Type != model.ShapeTypeString {
			t.Fatalf("iteration %d: type = %v, want the first file's definition", i, shape.Type)
		}
	}
}
