package gosmithy

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	slices.Sort(out)
	return out
}

func TestDirSource(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.smithy":        "namespace a",
		"b.smithy":        "namespace b",
		"notes.txt":       "ignored",
		"nested/c.smithy": "namespace c",
	})
	src, err := Dir(dir)
	if err != nil {
		t.Fatal(err)
	}
	paths, err := src.Files()
	if err != nil {
		t.Fatal(err)
	}
	if got := baseNames(paths); !slices.Equal(got, []string{"a.smithy", "b.smithy"}) {
		t.Errorf("files = %v", got)
	}
	content, err := src.Read(filepath.Join(dir, "a.smithy"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "namespace a" {
		t.Errorf("content = %q", content)
	}
}

func TestDirRejectsFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.smithy": ""})
	if _, err := Dir(filepath.Join(dir, "a.smithy")); err == nil {
		t.Error("Dir on a regular file must fail")
	}
}

func TestDirTreeSource(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.smithy":             "namespace a",
		"nested/c.smithy":      "namespace c",
		"nested/deep/d.smithy": "namespace d",
		"nested/readme.md":     "ignored",
	})
	src, err := DirTree(dir)
	if err != nil {
		t.Fatal(err)
	}
	paths, err := src.Files()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.smithy", "c.smithy", "d.smithy"}
	if got := baseNames(paths); !slices.Equal(got, want) {
		t.Errorf("files = %v, want %v", got, want)
	}
}

func TestWithExtensions(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.smithy": "",
		"b.idl":    "",
	})
	src, err := Dir(dir, WithExtensions(".idl"))
	if err != nil {
		t.Fatal(err)
	}
	paths, err := src.Files()
	if err != nil {
		t.Fatal(err)
	}
	if got := baseNames(paths); !slices.Equal(got, []string{"b.idl"}) {
		t.Errorf("files = %v", got)
	}
}

func TestMemSourceSortedFiles(t *testing.T) {
	src := Mem(map[string][]byte{
		"z.smithy": []byte("z"),
		"a.smithy": []byte("a"),
		"m.smithy": []byte("m"),
	})
	paths, err := src.Files()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(paths, []string{"a.smithy", "m.smithy", "z.smithy"}) {
		t.Errorf("files = %v", paths)
	}
	if _, err := src.Read("missing.smithy"); err == nil {
		t.Error("reading an unknown path must fail")
	}
}

func TestMultiSourceFirstWins(t *testing.T) {
	first := Mem(map[string][]byte{"a.smithy": []byte("first")})
	second := Mem(map[string][]byte{
		"a.smithy": []byte("second"),
		"b.smithy": []byte("b"),
	})
	src := Multi(first, second)

	paths, err := src.Files()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(paths, []string{"a.smithy", "b.smithy"}) {
		t.Errorf("files = %v", paths)
	}
	content, err := src.Read("a.smithy")
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "first" {
		t.Errorf("content = %q, want the first source's copy", content)
	}
}

func TestHasExtension(t *testing.T) {
	if !hasExtension("model/Main.SMITHY", DefaultExtensions) {
		t.Error("extension match must be case-insensitive")
	}
	if hasExtension("model/main.json", DefaultExtensions) {
		t.Error("unrelated extension must not match")
	}
}
