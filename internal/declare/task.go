package declare

import (
	"github.com/nagyist/praeclarum-SwiftSharp/internal/source"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/token"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/types"
)

// BodyTask is one unit of deferred work: "compile this member's executable
// body". Tasks are produced by the member pass and consumed exactly once,
// in production order, by the body pass.
type BodyTask struct {
	Owner    types.TypeRef
	Method   types.MethodRef
	TypeName string
	Name     string
	Body     []token.Token
	Loc      source.Span
}

// BodyCompiler is the hook point for method-body code generation. The
// pipeline only guarantees ordering and exactly-once invocation; what a
// compiler does with the raw body tokens is its own business.
type BodyCompiler interface {
	CompileBody(task *BodyTask) error
}

// BodyCompilerFunc adapts a function to the BodyCompiler interface.
type BodyCompilerFunc func(task *BodyTask) error

func (f BodyCompilerFunc) CompileBody(task *BodyTask) error {
	return f(task)
}

// NopCompiler ignores every body. It is the default: code generation is a
// separate layer on top of the declaration pipeline.
type NopCompiler struct{}

func (NopCompiler) CompileBody(*BodyTask) error { return nil }
