package declare

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/ast"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/diag"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/types"
)

// memberSig is one resolved function signature, not yet defined on its
// owner.
type memberSig struct {
	fn     *ast.FuncDecl
	params []types.TypeRef
	ret    types.TypeRef
	ok     bool
}

// declResolution collects one type declaration's resolved members together
// with the diagnostics its resolution produced.
type declResolution struct {
	sigs []memberSig
	bag  *diag.Bag
}

// declareMembers is the second pass. Signature resolution per declaration
// is independent, so it can fan out across workers; method definition and
// task production stay sequential in declaration order, which keeps the
// phase-3 ordering contract and the output image deterministic regardless
// of worker count.
func declareMembers(ctx context.Context, decls []typeDecl, bag *diag.Bag, opts Options) ([]BodyTask, error) {
	resolutions := make([]declResolution, len(decls))

	if opts.Jobs > 1 && len(decls) > 1 {
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(opts.Jobs)
		for i := range decls {
			i := i
			g.Go(func() error {
				resolutions[i] = resolveDecl(&decls[i], opts.MaxDiagnostics)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range decls {
			resolutions[i] = resolveDecl(&decls[i], opts.MaxDiagnostics)
		}
	}

	// deterministic re-serialization: merge diagnostics and define methods
	// in declaration order
	var tasks []BodyTask
	lastUnit := -1
	for i := range decls {
		d := &decls[i]
		if d.unitIndex != lastUnit {
			if lastUnit >= 0 {
				notify(opts.Progress, decls[i-1].unit.File().Path, StageMembers, StatusDone, nil, 0)
			}
			notify(opts.Progress, d.unit.File().Path, StageMembers, StatusWorking, nil, 0)
			lastUnit = d.unitIndex
		}
		bag.Merge(resolutions[i].bag)
		for _, sig := range resolutions[i].sigs {
			if !sig.ok {
				continue
			}
			backend := d.unit.Registry().Backend()
			method, err := backend.DefineMethod(d.def.Type, sig.fn.DeclName, sig.params, sig.ret)
			if err != nil {
				bag.Add(diag.NewError(diag.EmitBadTypeRef, sig.fn.Loc, err.Error()))
				continue
			}
			tasks = append(tasks, BodyTask{
				Owner:    d.def.Type,
				Method:   method,
				TypeName: d.id.Name,
				Name:     sig.fn.DeclName,
				Body:     sig.fn.Body,
				Loc:      sig.fn.Loc,
			})
		}
	}
	if lastUnit >= 0 {
		notify(opts.Progress, decls[len(decls)-1].unit.File().Path, StageMembers, StatusDone, nil, 0)
	}
	return tasks, nil
}

// resolveDecl resolves every function member of one declared type. By the
// time it runs, phase 1 has completed for the entire program, so forward,
// cross-module, and mutually-recursive references all succeed here.
func resolveDecl(d *typeDecl, maxDiagnostics int) declResolution {
	res := declResolution{bag: diag.NewBag(maxDiagnostics)}
	for _, member := range d.members {
		fn, ok := member.(*ast.FuncDecl)
		if !ok {
			continue
		}
		res.sigs = append(res.sigs, resolveSignature(d, fn, res.bag))
	}
	return res
}

func resolveSignature(d *typeDecl, fn *ast.FuncDecl, bag *diag.Bag) memberSig {
	sig := memberSig{fn: fn}

	if len(fn.ParamLists) > 1 {
		shapeErr := &types.UnsupportedShapeError{
			Shape:  "curried function declaration",
			Detail: fmt.Sprintf("%s has %d parameter lists", fn.DeclName, len(fn.ParamLists)),
		}
		bag.Add(diag.NewError(diag.DeclCurriedFunction, fn.Loc, shapeErr.Error()))
		return sig
	}

	ret, err := d.unit.ResolveOptional(fn.Return, d.scope)
	if err != nil {
		retSpan := fn.Loc
		if fn.Return != nil {
			retSpan = fn.Return.Loc
		}
		bag.Add(diag.NewError(codeForResolveErr(err), retSpan, err.Error()))
		return sig
	}
	sig.ret = ret

	var params []ast.Param
	if len(fn.ParamLists) == 1 {
		params = fn.ParamLists[0]
	}
	sig.params = make([]types.TypeRef, 0, len(params))
	failed := false
	for _, p := range params {
		if p.Type == nil {
			// named policy: a parameter with no annotation gets the
			// universal object type instead of failing
			bag.Add(diag.NewWarning(diag.DeclUntypedParameter, p.Loc,
				fmt.Sprintf("parameter %q of %s.%s has no type annotation; substituting AnyObject",
					p.LocalName, d.id.Name, fn.DeclName)))
			sig.params = append(sig.params, d.unit.Registry().Any())
			continue
		}
		ref, err := d.unit.Resolve(p.Type, d.scope)
		if err != nil {
			bag.Add(diag.NewError(codeForResolveErr(err), p.Type.Loc, err.Error()))
			failed = true
			continue
		}
		sig.params = append(sig.params, ref)
	}
	sig.ok = !failed
	return sig
}

func codeForResolveErr(err error) diag.Code {
	var unresolved *types.UnresolvedTypeError
	if errors.As(err, &unresolved) {
		return diag.DeclUnresolvedType
	}
	var shape *types.UnsupportedShapeError
	if errors.As(err, &shape) {
		return diag.DeclQualifiedPath
	}
	return diag.UnknownCode
}
