// Package driver wires file discovery, parsing, and the declaration
// pipeline into one compile call for the CLI.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/ast"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/declare"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/diag"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/emit"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/parser"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/project"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/source"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/types"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/unit"
)

// CompileRequest configures one compilation.
type CompileRequest struct {
	// Sources lists files or directories to compile.
	Sources []string
	// ModuleName names the output module.
	ModuleName string
	// CoreLib optionally points at a core type library file.
	CoreLib string
	// Output is the image artifact path; empty skips persistence.
	Output string
	// MaxDiagnostics caps accumulated diagnostics.
	MaxDiagnostics int
	// Jobs sets the worker count for parsing and member resolution.
	// Zero means one worker per CPU.
	Jobs int
	// Progress receives stage events.
	Progress declare.ProgressSink
	// Compiler handles deferred body tasks; nil compiles nothing.
	Compiler declare.BodyCompiler
}

// CompileResult captures compilation artifacts.
type CompileResult struct {
	Files    []string
	FileSet  *source.FileSet
	Image    *emit.Image
	Registry *types.Registry
	Declare  *declare.Result
	Bag      *diag.Bag
}

// ErrParseFailed is returned when parsing reported errors; the Bag has the
// details.
var ErrParseFailed = fmt.Errorf("parse errors reported")

// ListSourceFiles expands files and directories into a sorted list of
// .swift files.
func ListSourceFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".swift") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .swift files found")
	}
	sort.Strings(files)
	return files, nil
}

// Compile runs the whole front half: load, parse, declare, persist.
func Compile(ctx context.Context, req *CompileRequest) (*CompileResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return nil, fmt.Errorf("missing compile request")
	}
	if req.ModuleName == "" {
		return nil, fmt.Errorf("missing module name")
	}
	if req.MaxDiagnostics <= 0 {
		req.MaxDiagnostics = 100
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	files, err := ListSourceFiles(req.Sources)
	if err != nil {
		return nil, err
	}

	res := &CompileResult{
		Files:   files,
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(req.MaxDiagnostics),
	}

	parsed, err := parseAll(ctx, res.FileSet, files, jobs, req.MaxDiagnostics, req.Progress)
	if err != nil {
		return res, err
	}
	for _, pr := range parsed {
		res.Bag.Merge(pr.Bag)
	}
	if res.Bag.HasErrors() {
		return res, ErrParseFailed
	}

	seeds, err := project.LoadCoreLibrary(req.CoreLib)
	if err != nil {
		return res, err
	}
	res.Image = emit.NewImage(req.ModuleName)
	res.Registry, err = types.NewRegistry(res.Image, seeds)
	if err != nil {
		return res, err
	}

	units := make([]*unit.Unit, 0, len(parsed))
	for _, pr := range parsed {
		units = append(units, unit.New(pr.File, res.Registry))
	}

	res.Declare, err = declare.Run(ctx, res.Registry, units, declare.Options{
		MaxDiagnostics: req.MaxDiagnostics,
		Jobs:           jobs,
		Compiler:       req.Compiler,
		Progress:       req.Progress,
	})
	if res.Declare != nil {
		res.Bag.Merge(res.Declare.Bag)
	}
	if err != nil {
		return res, err
	}

	if req.Output != "" {
		start := time.Now()
		if err := res.Image.Persist(req.Output); err != nil {
			emitEvent(req.Progress, "", declare.StagePersist, declare.StatusError, err, time.Since(start))
			return res, fmt.Errorf("persist image: %w", err)
		}
		emitEvent(req.Progress, "", declare.StagePersist, declare.StatusDone, nil, time.Since(start))
	}
	return res, nil
}

// parseAll lexes and parses every file, fanning out across jobs workers.
// Results come back in file order regardless of completion order.
func parseAll(ctx context.Context, fset *source.FileSet, files []string, jobs, maxDiagnostics int, sink declare.ProgressSink) ([]parser.Result, error) {
	// FileSet mutation is not concurrency-safe, so loading stays serial;
	// only the parse itself fans out.
	loaded := make([]*source.File, len(files))
	for i, path := range files {
		id, err := fset.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		loaded[i] = fset.Get(id)
		emitEvent(sink, path, declare.StageParse, declare.StatusQueued, nil, 0)
	}

	results := make([]parser.Result, len(files))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range files {
		i := i
		g.Go(func() error {
			emitEvent(sink, files[i], declare.StageParse, declare.StatusWorking, nil, 0)
			start := time.Now()
			results[i] = parser.ParseFile(loaded[i], maxDiagnostics)
			status := declare.StatusDone
			if results[i].Bag.HasErrors() {
				status = declare.StatusError
			}
			emitEvent(sink, files[i], declare.StageParse, status, nil, time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func emitEvent(sink declare.ProgressSink, file string, stage declare.Stage, status declare.Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(declare.Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// ParseOne is a convenience for the parse/tokenize commands: load and parse
// a single file.
func ParseOne(path string, maxDiagnostics int) (*source.FileSet, *ast.File, *diag.Bag, error) {
	fset := source.NewFileSet()
	id, err := fset.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	res := parser.ParseFile(fset.Get(id), maxDiagnostics)
	return fset, res.File, res.Bag, nil
}
