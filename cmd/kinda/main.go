package main

import (
	"context"
	"os"
	"strconv"

	"github.com/Kinda-lang-dev/kinda-lang/chaos"
	"github.com/Kinda-lang-dev/kinda-lang/cmds"
	"github.com/Kinda-lang-dev/kinda-lang/kindaconfigs"
	"github.com/Kinda-lang-dev/kinda-lang/kindalang"
	"github.com/Kinda-lang-dev/kinda-lang/kindastar"
	"github.com/Kinda-lang-dev/kinda-lang/logs"
	"github.com/Kinda-lang-dev/kinda-lang/modes"
	"github.com/reusee/dscope"
)

var (
	profileFlag = cmds.Var[string]("-profile")
	seedFlag    = cmds.Var[string]("-seed")
)

func main() {

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	).Fork(
		func() chaos.Options {
			options := chaos.Options{
				Profile: *profileFlag,
			}
			if *seedFlag != "" {
				seed, err := strconv.ParseUint(*seedFlag, 10, 64)
				ce(err)
				options.Seed = &seed
			}
			return options
		},
	)

	cmds.Define("transform", cmds.Func(func(path string) (err error) {
		scope.Call(func(
			logger logs.Logger,
			newSpan logs.NewSpan,
			outDir kindaconfigs.OutDir,
		) {
			ctx, _ := newSpan(context.Background(), "")
			written, werr := kindalang.TransformTree(path, string(outDir), logger)
			if werr != nil {
				err = werr
				return
			}
			logger.InfoContext(ctx, "transform done",
				"input", path,
				"out", string(outDir),
				"files", len(written),
			)
		})
		return
	}).Desc("transform .knda sources into starlark"))

	cmds.Define("run", cmds.Func(func(path string) (err error) {
		scope.Call(func(
			in *kindastar.Interp,
		) {
			err = in.RunFile(path)
		})
		return
	}).Desc("transform and execute a .knda program"))

	cmds.Define("interpret", cmds.Func(func() (err error) {
		scope.Call(func(
			in *kindastar.Interp,
		) {
			err = runREPL(in)
		})
		return
	}).Desc("interactive fuzzy session").Alias("repl"))

	cmds.Define("examples", cmds.Func(func() {
		printExamples()
	}).Desc("show example programs for each construct"))

	cmds.Define("syntax", cmds.Func(func(construct *string) {
		var name string
		if construct != nil {
			name = *construct
		}
		printSyntax(name)
	}).Desc("show syntax reference, optionally for one construct"))

	if len(os.Args) < 2 {
		cmds.GlobalExecutor.PrintUsage()
		os.Exit(1)
	}
	if err := cmds.Execute(os.Args[1:]); err != nil {
		os.Stderr.WriteString(err.Error())
		os.Stderr.WriteString("\n")
		os.Exit(1)
	}

}

func ce(err error) {
	if err != nil {
		panic(err)
	}
}
