package declare

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/diag"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/emit"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/parser"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/source"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/types"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/unit"
)

func testSeeds() []types.CoreSeed {
	return []types.CoreSeed{
		{Name: "Void", Arity: 0, Platform: "System.Void"},
		{Name: "AnyObject", Arity: 0, Platform: "System.Object"},
		{Name: "Int", Arity: 0, Platform: "System.Int64"},
		{Name: "String", Arity: 0, Platform: "System.String"},
		{Name: "Array", Arity: 1, Platform: "System.Collections.Generic.List"},
	}
}

// compile parses each source text as its own translation unit and runs the
// pipeline over all of them.
func compile(t *testing.T, opts Options, sources ...string) (*Result, *types.Registry, *emit.Image, error) {
	t.Helper()
	img := emit.NewImage("test")
	registry, err := types.NewRegistry(img, testSeeds())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	fset := source.NewFileSet()
	units := make([]*unit.Unit, 0, len(sources))
	for i, src := range sources {
		id := fset.AddVirtual(fmt.Sprintf("file%d.swift", i), []byte(src))
		res := parser.ParseFile(fset.Get(id), 100)
		if res.Bag.HasErrors() {
			t.Fatalf("parse file %d: %v", i, res.Bag.Items())
		}
		units = append(units, unit.New(res.File, registry))
	}
	res, runErr := Run(context.Background(), registry, units, opts)
	return res, registry, img, runErr
}

func compileOK(t *testing.T, opts Options, sources ...string) (*Result, *types.Registry, *emit.Image) {
	t.Helper()
	res, registry, img, err := compile(t, opts, sources...)
	if err != nil {
		t.Fatalf("pipeline failed: %v\ndiagnostics: %v", err, res.Bag.Items())
	}
	return res, registry, img
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestForwardReferenceWithinOneFile(t *testing.T) {
	res, registry, _ := compileOK(t, Options{}, `
class A {
    func makeB() -> B { return B() }
}
class B {
    func makeA() -> A { return A() }
}
`)
	if len(res.Types) != 2 {
		t.Fatalf("declared types = %d, want 2", len(res.Types))
	}
	if _, ok := registry.Lookup(types.Ident("B", 0)); !ok {
		t.Fatalf("B not declared")
	}
	if len(res.Tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(res.Tasks))
	}
}

func TestCrossUnitMutualRecursion(t *testing.T) {
	res, _, img := compileOK(t, Options{},
		"class Node { func owner() -> Tree {} }",
		"class Tree { func root() -> Node {} }",
	)
	if len(res.Types) != 2 {
		t.Fatalf("declared types = %d, want 2", len(res.Types))
	}
	for _, task := range res.Tasks {
		m, ok := img.Method(task.Method)
		if !ok {
			t.Fatalf("task %s.%s holds an invalid method handle", task.TypeName, task.Name)
		}
		if m.Return == types.NoTypeRef {
			t.Fatalf("method %s has no resolved return", m.Name)
		}
	}
}

func TestGenericParamInMethodSignature(t *testing.T) {
	res, registry, img := compileOK(t, Options{}, `
class Box<T> {
    func get() -> T {}
}
class Usage {
    func make() -> Box<Int> {}
}
`)
	box, ok := registry.LookupDefined(types.Ident("Box", 1))
	if !ok {
		t.Fatalf("Box`1 not declared")
	}
	var get, mk *BodyTask
	for i := range res.Tasks {
		switch res.Tasks[i].Name {
		case "get":
			get = &res.Tasks[i]
		case "make":
			mk = &res.Tasks[i]
		}
	}
	if get == nil || mk == nil {
		t.Fatalf("tasks missing: %+v", res.Tasks)
	}
	m, _ := img.Method(get.Method)
	if m.Return != box.Params[0] {
		t.Fatalf("get() should return Box's own generic parameter")
	}
	m, _ = img.Method(mk.Method)
	if got := img.DisplayName(m.Return); got != "Box<Int>" {
		t.Fatalf("make() returns %q", got)
	}
}

func TestOmittedReturnIsVoid(t *testing.T) {
	res, registry, img := compileOK(t, Options{}, "class C { func run() {} }")
	m, _ := img.Method(res.Tasks[0].Method)
	if m.Return != registry.Void() {
		t.Fatalf("omitted annotation resolved to %d, want Void", m.Return)
	}
}

func TestCurriedFunctionRejected(t *testing.T) {
	res, _, _, err := compile(t, Options{}, "class C { func add(a: Int)(b: Int) -> Int {} }")
	if !errors.Is(err, ErrDeclarationFailed) {
		t.Fatalf("expected ErrDeclarationFailed, got %v", err)
	}
	if !hasCode(res.Bag, diag.DeclCurriedFunction) {
		t.Fatalf("no curried-function diagnostic: %v", res.Bag.Items())
	}
	if len(res.Tasks) != 0 {
		t.Fatalf("tasks produced despite failure: %d", len(res.Tasks))
	}
}

func TestDuplicateTypeKeepsFirstDefinition(t *testing.T) {
	res, registry, _, err := compile(t, Options{},
		"class Pair<A, B> { func first() -> A {} }",
		"class Pair<A, B> {}",
	)
	if !errors.Is(err, ErrDeclarationFailed) {
		t.Fatalf("expected ErrDeclarationFailed, got %v", err)
	}
	if !hasCode(res.Bag, diag.DeclDuplicateType) {
		t.Fatalf("no duplicate-type diagnostic: %v", res.Bag.Items())
	}
	ids := registry.DefinedIdentities()
	count := 0
	for _, id := range ids {
		if id.Name == "Pair" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("Pair defined %d times", count)
	}
}

func TestSameNameDifferentArityIsNotADuplicate(t *testing.T) {
	res, _, _ := compileOK(t, Options{},
		"class Result {}",
		"class Result<T> {}",
	)
	if len(res.Types) != 2 {
		t.Fatalf("declared types = %d, want 2", len(res.Types))
	}
}

func TestErrorsAccumulateBeforeAbort(t *testing.T) {
	res, _, _, err := compile(t, Options{}, `
class C {
    func a() -> Missing1 {}
    func b() -> Missing2 {}
}
`)
	if !errors.Is(err, ErrDeclarationFailed) {
		t.Fatalf("expected ErrDeclarationFailed, got %v", err)
	}
	if res.Bag.ErrorCount() < 2 {
		t.Fatalf("expected both unresolved types reported, got %d errors", res.Bag.ErrorCount())
	}
	if !hasCode(res.Bag, diag.DeclUnresolvedType) {
		t.Fatalf("no unresolved-type diagnostic: %v", res.Bag.Items())
	}
}

func TestQualifiedReturnTypeRejected(t *testing.T) {
	res, _, _, err := compile(t, Options{}, "class C { func now() -> Foundation.NSDate {} }")
	if !errors.Is(err, ErrDeclarationFailed) {
		t.Fatalf("expected ErrDeclarationFailed, got %v", err)
	}
	if !hasCode(res.Bag, diag.DeclQualifiedPath) {
		t.Fatalf("no qualified-path diagnostic: %v", res.Bag.Items())
	}
}

func TestUntypedParameterWarnsAndSubstitutes(t *testing.T) {
	res, registry, img := compileOK(t, Options{}, "class C { func log(message) {} }")
	if !hasCode(res.Bag, diag.DeclUntypedParameter) {
		t.Fatalf("no untyped-parameter warning: %v", res.Bag.Items())
	}
	if res.Bag.HasErrors() {
		t.Fatalf("warning escalated to error: %v", res.Bag.Items())
	}
	m, _ := img.Method(res.Tasks[0].Method)
	if len(m.Params) != 1 || m.Params[0] != registry.Any() {
		t.Fatalf("untyped parameter params = %v, want [AnyObject]", m.Params)
	}
}

func TestEnumAndAliasAreDeclared(t *testing.T) {
	res, _, _ := compileOK(t, Options{}, `
enum Color { case red, green, blue }
typealias Names = Array<String>
class C {
    func paint(c: Color) -> Names {}
}
`)
	if len(res.Types) != 3 {
		t.Fatalf("declared types = %d, want 3", len(res.Types))
	}
	if len(res.Tasks) != 1 || res.Tasks[0].Name != "paint" {
		t.Fatalf("tasks = %+v", res.Tasks)
	}
}

func TestStoredPropertiesProduceNoTasks(t *testing.T) {
	res, _, img := compileOK(t, Options{}, `
class C {
    var x: Int
    let name: String
    func touch() {}
}
`)
	if len(res.Tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(res.Tasks))
	}
	if img.MethodCount() != 1 {
		t.Fatalf("methods = %d, want 1", img.MethodCount())
	}
}

func TestTasksRunExactlyOnceInProductionOrder(t *testing.T) {
	var ran []string
	compiler := BodyCompilerFunc(func(task *BodyTask) error {
		ran = append(ran, task.TypeName+"."+task.Name)
		return nil
	})
	res, _, _ := compileOK(t, Options{Compiler: compiler},
		"class A { func one() {}\n func two() {} }",
		"class B { func three() {} }",
	)
	want := []string{"A.one", "A.two", "B.three"}
	if len(ran) != len(want) {
		t.Fatalf("ran %v, want %v", ran, want)
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Fatalf("execution order %v, want %v", ran, want)
		}
	}
	if len(res.Tasks) != len(want) {
		t.Fatalf("recorded tasks = %d", len(res.Tasks))
	}
}

func TestBodyCompilerFailureIsFatal(t *testing.T) {
	boom := errors.New("boom")
	compiler := BodyCompilerFunc(func(task *BodyTask) error {
		if task.Name == "bad" {
			return boom
		}
		return nil
	})
	_, _, _, err := compile(t, Options{Compiler: compiler},
		"class C { func good() {}\n func bad() {} }",
	)
	if !errors.Is(err, boom) {
		t.Fatalf("compiler failure not surfaced: %v", err)
	}
}

func TestParallelJobsMatchSequentialOutput(t *testing.T) {
	sources := []string{
		"class A { func first() {} }",
		"class B<T> { func get() -> T {}\n func put(v: T) {} }",
		"class C { func mix(a: A, b: B<Int>) -> Array<String> {} }",
		"class D { func d1() {}\n func d2() {}\n func d3() {} }",
	}
	seq, _, seqImg := compileOK(t, Options{Jobs: 1}, sources...)
	par, _, parImg := compileOK(t, Options{Jobs: 8}, sources...)

	if len(seq.Tasks) != len(par.Tasks) {
		t.Fatalf("task count differs: %d vs %d", len(seq.Tasks), len(par.Tasks))
	}
	for i := range seq.Tasks {
		if seq.Tasks[i].TypeName != par.Tasks[i].TypeName || seq.Tasks[i].Name != par.Tasks[i].Name {
			t.Fatalf("task %d differs: %s.%s vs %s.%s", i,
				seq.Tasks[i].TypeName, seq.Tasks[i].Name,
				par.Tasks[i].TypeName, par.Tasks[i].Name)
		}
		if seq.Tasks[i].Method != par.Tasks[i].Method {
			t.Fatalf("method handle %d differs: %d vs %d", i, seq.Tasks[i].Method, par.Tasks[i].Method)
		}
	}
	if seqImg.MethodCount() != parImg.MethodCount() {
		t.Fatalf("method tables differ: %d vs %d", seqImg.MethodCount(), parImg.MethodCount())
	}
}

func TestProgressEventsCoverAllStages(t *testing.T) {
	ch := make(chan Event, 64)
	compileOK(t, Options{Progress: ChannelSink{Ch: ch}}, "class C { func f() {} }")
	close(ch)

	seen := make(map[Stage]bool)
	for evt := range ch {
		seen[evt.Stage] = true
	}
	for _, stage := range []Stage{StageTypes, StageMembers, StageBodies} {
		if !seen[stage] {
			t.Fatalf("no event for stage %s (saw %v)", stage, seen)
		}
	}
}

func TestCanceledContextStopsPipeline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img := emit.NewImage("test")
	registry, err := types.NewRegistry(img, testSeeds())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	fset := source.NewFileSet()
	id := fset.AddVirtual("f.swift", []byte("class C { func f() {} }"))
	pres := parser.ParseFile(fset.Get(id), 100)
	units := []*unit.Unit{unit.New(pres.File, registry)}

	res, runErr := Run(ctx, registry, units, Options{})
	if !errors.Is(runErr, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", runErr)
	}
	if len(res.Tasks) != 0 {
		t.Fatalf("tasks produced after cancellation")
	}
}

func TestResultIdentitiesMatchTypes(t *testing.T) {
	res, registry, _ := compileOK(t, Options{}, "class A {}\nclass B {}")
	if len(res.Identities) != len(res.Types) {
		t.Fatalf("identities/types length mismatch: %d vs %d", len(res.Identities), len(res.Types))
	}
	for i, id := range res.Identities {
		ref, ok := registry.Lookup(id)
		if !ok || ref != res.Types[i] {
			t.Fatalf("identity %s does not map to handle %d", id, res.Types[i])
		}
	}
}
