package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"lumen/vm"
)

// exit codes mirror the classic sysexits.h convention the language's
// original implementation used: 64 for a bad invocation, 65 for a
// compile-time error, 70 for a runtime error.
const (
	exitUsageError   = subcommands.ExitStatus(64)
	exitCompileError = subcommands.ExitStatus(65)
	exitRuntimeError = subcommands.ExitStatus(70)
)

type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute a Lumen source file" }
func (*runCmd) Usage() string {
	return `run <file>:
  Compile and execute a Lumen source file.
`
}
func (r *runCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 file not provided\n")
		return exitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return exitUsageError
	}

	machine := vm.New()
	result, errs := machine.Interpret(string(data))
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}

	switch result {
	case vm.InterpretCompileError:
		return exitCompileError
	case vm.InterpretRuntimeError:
		return exitRuntimeError
	default:
		return subcommands.ExitSuccess
	}
}
