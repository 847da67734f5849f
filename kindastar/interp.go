// Package kindastar executes transformed fuzzy programs on an embedded
// Starlark interpreter. The generated runtime module is evaluated once
// at construction; its helpers plus the host primitives form the
// predeclared environment of every program and REPL line.
package kindastar

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"

	"github.com/Kinda-lang-dev/kinda-lang/chaos"
	"github.com/Kinda-lang-dev/kinda-lang/grammar"
	"github.com/Kinda-lang-dev/kinda-lang/kindalang"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

type Interp struct {
	state  *chaos.State
	logger *slog.Logger
	output io.Writer
	opts   *syntax.FileOptions

	// primitives plus runtime helper globals
	predeclared starlark.StringDict
	// accumulated REPL bindings, seeded from predeclared
	globals starlark.StringDict
}

func NewInterp(state *chaos.State, logger *slog.Logger, output io.Writer) (*Interp, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if output == nil {
		output = os.Stdout
	}

	in := &Interp{
		state:  state,
		logger: logger,
		output: output,
		opts: &syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
			GlobalReassign:  true,
			Recursion:       true,
		},
	}

	prims := in.primitives()
	runtimeSrc := kindalang.GenerateRuntime(grammar.HelperNames())
	helperGlobals, err := starlark.ExecFileOptions(
		in.opts,
		in.newThread(kindalang.RuntimeModule),
		kindalang.RuntimeModule,
		runtimeSrc,
		prims,
	)
	if err != nil {
		return nil, fmt.Errorf("load fuzzy runtime: %w", err)
	}

	predeclared := make(starlark.StringDict, len(prims)+len(helperGlobals))
	maps.Copy(predeclared, prims)
	maps.Copy(predeclared, helperGlobals)
	in.predeclared = predeclared
	in.globals = maps.Clone(predeclared)

	return in, nil
}

func (in *Interp) print(msg string) {
	fmt.Fprintln(in.output, msg)
}

func (in *Interp) newThread(name string) *starlark.Thread {
	return &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			in.print(msg)
		},
		Load: in.load,
	}
}

// load resolves load() statements in emitted files: the runtime module
// resolves to the already-evaluated helpers, std modules to their
// members.
func (in *Interp) load(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	if module == kindalang.RuntimeModule {
		return in.predeclared, nil
	}
	if members, ok := stdModuleMembers(module); ok {
		return members, nil
	}
	return nil, fmt.Errorf("unknown load module %q", module)
}

// RunFile transforms and executes one dialect source file.
func (in *Interp) RunFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return in.RunSource(path, string(content))
}

// RunSource transforms dialect source and executes the result.
func (in *Interp) RunSource(path, src string) error {
	t := kindalang.New(path, in.logger)
	res, err := t.TransformSource(src)
	if err != nil {
		return err
	}
	return in.RunProgram(path, res.Body)
}

// RunProgram executes already-transformed Starlark source.
func (in *Interp) RunProgram(name, src string) error {
	_, err := starlark.ExecFileOptions(in.opts, in.newThread(name), name, src, in.predeclared)
	if err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return fmt.Errorf("%s", evalErr.Backtrace())
		}
		return err
	}
	return nil
}

// ExecLine transforms and executes one REPL line. Expressions return
// their value; statements bind into the persistent REPL globals and
// return nil.
func (in *Interp) ExecLine(line string) (starlark.Value, error) {
	t := kindalang.New("<repl>", in.logger)
	res, err := t.TransformSource(line)
	if err != nil {
		return nil, err
	}
	body := res.Body

	if expr, err := in.opts.ParseExpr("<repl>", body, 0); err == nil {
		return starlark.EvalExprOptions(in.opts, in.newThread("<repl>"), expr, in.globals)
	}

	f, err := in.opts.Parse("<repl>", body, 0)
	if err != nil {
		return nil, err
	}
	if err := starlark.ExecREPLChunk(f, in.newThread("<repl>"), in.globals); err != nil {
		return nil, err
	}
	return nil, nil
}

// Globals exposes the REPL bindings, for inspection in tests.
func (in *Interp) Globals() starlark.StringDict {
	return in.globals
}
