package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/declare"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/emit"
)

func writeSources(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestListSourceFiles(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"b.swift":          "class B {}",
		"a.swift":          "class A {}",
		"sub/deep.swift":   "class Deep {}",
		"notes.txt":        "not a source",
		"sub/other.golang": "ignored",
	})
	files, err := ListSourceFiles([]string{dir})
	if err != nil {
		t.Fatalf("ListSourceFiles: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("files = %v", files)
	}
	// sorted: a.swift, b.swift, sub/deep.swift
	if filepath.Base(files[0]) != "a.swift" || filepath.Base(files[2]) != "deep.swift" {
		t.Fatalf("order = %v", files)
	}
}

func TestListSourceFilesEmpty(t *testing.T) {
	dir := writeSources(t, map[string]string{"readme.md": "x"})
	if _, err := ListSourceFiles([]string{dir}); err == nil {
		t.Fatalf("empty source set accepted")
	}
}

func TestCompileEndToEnd(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"model.swift": `
class Person {
    var name: String
    func friends() -> Array<Person> {}
    func employer() -> Company {}
}
`,
		"org.swift": `
class Company {
    func staff() -> Array<Person> {}
}
typealias Roster = Dictionary<String, Person>
`,
	})
	output := filepath.Join(dir, "out", "demo.ssimg")

	res, err := Compile(context.Background(), &CompileRequest{
		Sources:    []string{dir},
		ModuleName: "demo",
		Output:     output,
	})
	if err != nil {
		t.Fatalf("Compile: %v\ndiagnostics: %v", err, res.Bag.Items())
	}
	if len(res.Files) != 2 {
		t.Fatalf("files = %v", res.Files)
	}
	if got := len(res.Declare.Types); got != 3 {
		t.Fatalf("declared types = %d, want 3", got)
	}
	if got := res.Image.MethodCount(); got != 3 {
		t.Fatalf("methods = %d, want 3", got)
	}

	payload, err := emit.ReadPayload(output)
	if err != nil {
		t.Fatalf("ReadPayload: %v", err)
	}
	if payload.Module != "demo" {
		t.Fatalf("persisted module = %q", payload.Module)
	}
	if len(payload.Methods) != 3 {
		t.Fatalf("persisted methods = %d", len(payload.Methods))
	}
}

func TestCompileParseErrorStopsBeforeDeclaration(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"bad.swift": "class {",
	})
	res, err := Compile(context.Background(), &CompileRequest{
		Sources:    []string{dir},
		ModuleName: "demo",
	})
	if !errors.Is(err, ErrParseFailed) {
		t.Fatalf("expected ErrParseFailed, got %v", err)
	}
	if res.Registry != nil {
		t.Fatalf("registry built despite parse failure")
	}
}

func TestCompileDeclarationErrorSkipsPersist(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"bad.swift": "class C { func f() -> Missing {} }",
	})
	output := filepath.Join(dir, "never.ssimg")
	_, err := Compile(context.Background(), &CompileRequest{
		Sources:    []string{dir},
		ModuleName: "demo",
		Output:     output,
	})
	if !errors.Is(err, declare.ErrDeclarationFailed) {
		t.Fatalf("expected ErrDeclarationFailed, got %v", err)
	}
	if _, statErr := os.Stat(output); statErr == nil {
		t.Fatalf("image persisted despite declaration failure")
	}
}

func TestCompileRunsBodyCompiler(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"m.swift": "class C { func a() {}\n func b() {} }",
	})
	var ran []string
	_, err := Compile(context.Background(), &CompileRequest{
		Sources:    []string{dir},
		ModuleName: "demo",
		Compiler: declare.BodyCompilerFunc(func(task *declare.BodyTask) error {
			ran = append(ran, task.Name)
			return nil
		}),
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(ran) != 2 || ran[0] != "a" || ran[1] != "b" {
		t.Fatalf("bodies ran = %v", ran)
	}
}

func TestCompileValidatesRequest(t *testing.T) {
	if _, err := Compile(context.Background(), nil); err == nil {
		t.Fatalf("nil request accepted")
	}
	if _, err := Compile(context.Background(), &CompileRequest{Sources: []string{"x"}}); err == nil {
		t.Fatalf("missing module name accepted")
	}
}

func TestParseOne(t *testing.T) {
	dir := writeSources(t, map[string]string{"m.swift": "class C {}"})
	fset, file, bag, err := ParseOne(filepath.Join(dir, "m.swift"), 10)
	if err != nil {
		t.Fatalf("ParseOne: %v", err)
	}
	if fset.Len() != 1 || len(file.Stmts) != 1 || bag.HasErrors() {
		t.Fatalf("unexpected parse result: %d files, %d stmts", fset.Len(), len(file.Stmts))
	}
}
