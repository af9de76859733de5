// Package declare orchestrates the three whole-program declaration passes:
// declare every top-level type skeleton, declare every member signature,
// then run the deferred body-compilation tasks. The full-program barrier
// between the first two passes is what makes forward and mutually-recursive
// type references work; it must never be relaxed.
package declare

import (
	"context"
	"fmt"
	"time"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/ast"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/diag"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/source"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/types"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/unit"
)

// Options configures one pipeline run.
type Options struct {
	// MaxDiagnostics caps the accumulated diagnostic count.
	MaxDiagnostics int
	// Jobs sets the worker count for the member-resolution pass. Values
	// below 2 keep the pass sequential.
	Jobs int
	// Compiler receives every deferred body task. Nil means NopCompiler.
	Compiler BodyCompiler
	// Progress receives stage events. Nil disables reporting.
	Progress ProgressSink
}

// Result captures everything one pipeline run produced.
type Result struct {
	// Types lists every defined type handle in definition order.
	Types []types.TypeRef
	// Identities lists the matching type identities.
	Identities []types.Identity
	// Tasks lists the body tasks in the order they were executed.
	Tasks []BodyTask
	// Bag holds all accumulated diagnostics.
	Bag *diag.Bag
	// Timings records per-stage durations.
	Timings Timings
}

// ErrDeclarationFailed is returned when any pass reported errors. The Bag
// on the Result carries the details.
var ErrDeclarationFailed = fmt.Errorf("declaration errors reported")

// typeDecl is the phase-1 output: one declared type skeleton plus the
// member declarations to process in phase 2.
type typeDecl struct {
	unit      *unit.Unit
	unitIndex int
	id        types.Identity
	def       types.Defined
	scope     unit.Scope
	members   []ast.Decl
	loc       source.Span
}

// Run executes the three passes over all units, in unit order then
// statement order. Phase boundaries are strict: no member signature is
// resolved before every type of the whole program is declared, and no body
// compiles before every signature exists.
func Run(ctx context.Context, registry *types.Registry, units []*unit.Unit, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}
	compiler := opts.Compiler
	if compiler == nil {
		compiler = NopCompiler{}
	}

	res := &Result{Bag: diag.NewBag(opts.MaxDiagnostics)}

	start := time.Now()
	decls := declareTypes(registry, units, res.Bag, opts.Progress)
	res.Timings.Set(StageTypes, time.Since(start))
	res.Types = registry.DefinedTypes()
	res.Identities = registry.DefinedIdentities()
	if res.Bag.HasErrors() {
		return res, ErrDeclarationFailed
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	start = time.Now()
	tasks, err := declareMembers(ctx, decls, res.Bag, opts)
	res.Timings.Set(StageMembers, time.Since(start))
	if err != nil {
		return res, err
	}
	if res.Bag.HasErrors() {
		return res, ErrDeclarationFailed
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	start = time.Now()
	notify(opts.Progress, "", StageBodies, StatusWorking, nil, 0)
	if err := executeBodies(tasks, compiler); err != nil {
		notify(opts.Progress, "", StageBodies, StatusError, err, time.Since(start))
		return res, err
	}
	res.Timings.Set(StageBodies, time.Since(start))
	notify(opts.Progress, "", StageBodies, StatusDone, nil, time.Since(start))

	res.Tasks = tasks
	return res, nil
}

// declareTypes is the first pass: every type-bearing statement becomes a
// registry entry, making every type name of the program resolvable before
// any member signature is looked at. Enum cases and alias targets are not
// materialized as members here; only the skeleton is declared.
func declareTypes(registry *types.Registry, units []*unit.Unit, bag *diag.Bag, sink ProgressSink) []typeDecl {
	var decls []typeDecl
	for unitIndex, u := range units {
		path := u.File().Path
		notify(sink, path, StageTypes, StatusWorking, nil, 0)
		for _, stmt := range u.Stmts() {
			var (
				name     string
				generics []string
				members  []ast.Decl
			)
			switch s := stmt.(type) {
			case *ast.ClassDecl:
				name, generics, members = s.DeclName, s.GenericParams, s.Members
			case *ast.EnumDecl:
				name, generics = s.DeclName, s.GenericParams
			case *ast.TypealiasDecl:
				name = s.DeclName
			default:
				continue
			}
			def, err := registry.DefineType(name, generics)
			if err != nil {
				bag.Add(diag.NewError(diag.DeclDuplicateType, stmt.Span(), err.Error()))
				continue
			}
			scope := make(unit.Scope, len(generics))
			for i, g := range generics {
				scope[g] = def.Params[i]
			}
			decls = append(decls, typeDecl{
				unit:      u,
				unitIndex: unitIndex,
				id:        types.Ident(name, len(generics)),
				def:       def,
				scope:     scope,
				members:   members,
				loc:       stmt.Span(),
			})
		}
		notify(sink, path, StageTypes, StatusDone, nil, 0)
	}
	publishExports(units, decls)
	return decls
}

// publishExports fills each unit's import cache with the types declared by
// every other unit, so cross-module references resolve through the local
// cache before falling back to the shared registry.
func publishExports(units []*unit.Unit, decls []typeDecl) {
	for _, d := range decls {
		for unitIndex, u := range units {
			if unitIndex == d.unitIndex {
				continue
			}
			u.Import(d.id, d.def.Type)
		}
	}
}

// executeBodies is the third pass: every deferred task runs exactly once,
// in production order. A body-compiler failure is fatal to the compilation.
func executeBodies(tasks []BodyTask, compiler BodyCompiler) error {
	for i := range tasks {
		if err := compiler.CompileBody(&tasks[i]); err != nil {
			return fmt.Errorf("compile body %s.%s: %w", tasks[i].TypeName, tasks[i].Name, err)
		}
	}
	return nil
}
